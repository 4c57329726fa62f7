// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package types

// Type is the base interface for all types.
type Type interface {
	TypeName() string
}

func (t *Var) TypeName() string    { return "Var" }
func (t *Const) TypeName() string  { return "Const" }
func (t *Set) TypeName() string    { return "Set" }
func (t *List) TypeName() string   { return "List" }
func (t *Func) TypeName() string   { return "Func" }
func (t *Tuple) TypeName() string  { return "Tuple" }
func (t *Oper) TypeName() string   { return "Oper" }
func (t *Record) TypeName() string { return "Record" }
func (t *Union) TypeName() string  { return "Union" }
func (t *Row) TypeName() string    { return "Row" }

// Names of the primitive type constants.
const (
	BoolName = "bool"
	IntName  = "int"
	StrName  = "str"
)

var (
	Bool = &Const{Name: BoolName}
	Int  = &Const{Name: IntName}
	Str  = &Const{Name: StrName}
)

// Type-variable (or row-variable, when used as the tail of a row)
type Var struct {
	Id int
	// Name is the source name of the variable within an annotation, if any. Names are only used
	// for printing.
	Name string
}

// Create a new type-variable with the given id.
func NewVar(id int) *Var { return &Var{Id: id} }

// Type constant: `int`, `bool`, `str`, or an uninterpreted type such as `PROC`
type Const struct {
	Name string
}

// Set type: `Set[int]`
type Set struct {
	Elem Type
}

// List type: `List[int]`
type List struct {
	Elem Type
}

// Function (map) type: `int -> str`
type Func struct {
	Arg    Type
	Result Type
}

// Tuple type: `(int, str)`
type Tuple struct {
	Elems []Type
}

// Operator type: `(int, int) => int`
type Oper struct {
	Params []Type
	Result Type
}

// Record type: `{ a: int, b: str | r }`
type Record struct {
	Row *Row
}

// Union of records, discriminated by the tag field:
//
//	| { tag: "a", x: int } | { tag: "b", y: str }
type Union struct {
	Tag     string
	Records []UnionRecord
}

// One alternative within a union type
type UnionRecord struct {
	TagValue string
	Row      *Row
}

// Row of labeled fields. A nil Tail closes the row; a *Var tail leaves it open for extension.
type Row struct {
	Fields FieldMap
	Tail   Type
}

// Create a row, flattening nested rows within the tail.
func NewRow(fields FieldMap, tail Type) *Row {
	r, ok := tail.(*Row)
	if !ok {
		if fields.m == nil {
			fields = EmptyFieldMap
		}
		return &Row{Fields: fields, Tail: tail}
	}
	b := r.Fields.Builder()
	fields.Range(func(label string, t Type) bool {
		b.Set(label, t)
		return true
	})
	return NewRow(b.Build(), r.Tail)
}

// Closed row with no fields: `{}`
func EmptyRow() *Row { return &Row{Fields: EmptyFieldMap} }

// IsClosed reports whether the row cannot be extended.
func (r *Row) IsClosed() bool { return r.Tail == nil }

// TailVar returns the variable which leaves the row open, or nil for closed rows.
func (r *Row) TailVar() *Var {
	tv, _ := r.Tail.(*Var)
	return tv
}

// Lookup a case of the union by its tag value.
func (u *Union) Case(tagValue string) (*Row, bool) {
	for _, rec := range u.Records {
		if rec.TagValue == tagValue {
			return rec.Row, true
		}
	}
	return nil, false
}
