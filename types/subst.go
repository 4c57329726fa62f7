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

import (
	"github.com/hashicorp/go-set/v3"

	"github.com/wdamron/tntc/internal/subst"
)

// Subst maps type-variable and row-variable ids to types.
type Subst = subst.Subst[Type]

type algebra struct{}

// Algebra is the substitution algebra for types. Rows are types, so row-variables and
// type-variables share a single substitution.
var Algebra subst.Algebra[Type] = algebra{}

// EmptySubst returns a substitution without bindings.
func EmptySubst() Subst { return subst.Empty[Type](Algebra) }

// SingletonSubst returns a substitution binding a single variable.
func SingletonSubst(id int, t Type) Subst { return subst.Singleton[Type](Algebra, id, t) }

func (algebra) Substitute(t Type, lookup func(int) (Type, bool)) Type {
	return substitute(t, lookup)
}

func substitute(t Type, lookup func(int) (Type, bool)) Type {
	switch t := t.(type) {
	case *Var:
		if bound, ok := lookup(t.Id); ok {
			return bound
		}
		return t
	case *Const, nil:
		return t
	case *Set:
		return &Set{Elem: substitute(t.Elem, lookup)}
	case *List:
		return &List{Elem: substitute(t.Elem, lookup)}
	case *Func:
		return &Func{Arg: substitute(t.Arg, lookup), Result: substitute(t.Result, lookup)}
	case *Tuple:
		elems := make([]Type, len(t.Elems))
		for i, elem := range t.Elems {
			elems[i] = substitute(elem, lookup)
		}
		return &Tuple{Elems: elems}
	case *Oper:
		params := make([]Type, len(t.Params))
		for i, param := range t.Params {
			params[i] = substitute(param, lookup)
		}
		return &Oper{Params: params, Result: substitute(t.Result, lookup)}
	case *Record:
		return &Record{Row: substituteRow(t.Row, lookup)}
	case *Union:
		records := make([]UnionRecord, len(t.Records))
		for i, rec := range t.Records {
			records[i] = UnionRecord{TagValue: rec.TagValue, Row: substituteRow(rec.Row, lookup)}
		}
		return &Union{Tag: t.Tag, Records: records}
	case *Row:
		return substituteRow(t, lookup)
	}
	panic("unexpected type " + t.TypeName())
}

func substituteRow(r *Row, lookup func(int) (Type, bool)) *Row {
	fields := r.Fields.Map(func(t Type) Type { return substitute(t, lookup) })
	if r.Tail == nil {
		return NewRow(fields, nil)
	}
	return NewRow(fields, substitute(r.Tail, lookup))
}

func (algebra) Vars(t Type, visit func(int)) { visitVars(t, visit) }

func visitVars(t Type, visit func(int)) {
	switch t := t.(type) {
	case *Var:
		visit(t.Id)
	case *Set:
		visitVars(t.Elem, visit)
	case *List:
		visitVars(t.Elem, visit)
	case *Func:
		visitVars(t.Arg, visit)
		visitVars(t.Result, visit)
	case *Tuple:
		for _, elem := range t.Elems {
			visitVars(elem, visit)
		}
	case *Oper:
		for _, param := range t.Params {
			visitVars(param, visit)
		}
		visitVars(t.Result, visit)
	case *Record:
		visitVars(t.Row, visit)
	case *Union:
		for _, rec := range t.Records {
			visitVars(rec.Row, visit)
		}
	case *Row:
		t.Fields.Range(func(_ string, ft Type) bool {
			visitVars(ft, visit)
			return true
		})
		if t.Tail != nil {
			visitVars(t.Tail, visit)
		}
	}
}

// FreeVars returns the ids of type-variables and row-variables in t.
func FreeVars(t Type) *set.Set[int] {
	vars := set.New[int](4)
	visitVars(t, func(id int) { vars.Insert(id) })
	return vars
}
