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

package ir

// BindingKind is the kind of declaration a name refers to.
type BindingKind uint8

const (
	BindingDef BindingKind = iota
	BindingConst
	BindingVar
	BindingParam
	BindingTypeDef
)

func (k BindingKind) String() string {
	switch k {
	case BindingDef:
		return "def"
	case BindingConst:
		return "const"
	case BindingVar:
		return "var"
	case BindingParam:
		return "param"
	case BindingTypeDef:
		return "typedef"
	}
	return "unknown"
}

// Binding describes the declaration an occurrence refers to. ID is the id of the declaring
// definition, let-bound definition or lambda parameter.
type Binding struct {
	Kind BindingKind
	Name string
	ID   ID
}

// LookupTable maps the id of a Name or App occurrence to its declaration. Builtin operators are
// absent from the table.
type LookupTable map[ID]Binding

// Lookup returns the declaration for the occurrence with the given id.
func (t LookupTable) Lookup(id ID) (Binding, bool) {
	b, ok := t[id]
	return b, ok
}
