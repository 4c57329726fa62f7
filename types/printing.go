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
	"strconv"
	"strings"
	"sync"
)

var printerPool = sync.Pool{
	New: func() interface{} {
		return &typePrinter{idNames: make(map[int]string, 16)}
	},
}

func newTypePrinter() *typePrinter { return printerPool.Get().(*typePrinter) }

func (p *typePrinter) Release() {
	for k := range p.idNames {
		delete(p.idNames, k)
	}
	p.sb.Reset()
	printerPool.Put(p)
}

// TypeString returns a string representation of a Type. Variables are named in order of first
// appearance, so equivalent types print identically regardless of their variable ids.
func TypeString(t Type) string {
	p := newTypePrinter()
	typeString(p, false, t)
	s := p.sb.String()
	p.Release()
	return s
}

// SchemeString returns a string representation of a Scheme, listing quantified variables.
func SchemeString(s Scheme) string {
	p := newTypePrinter()
	typeString(p, false, s.Type)
	body := p.sb.String()
	if len(s.Vars) == 0 {
		p.Release()
		return body
	}
	var sb strings.Builder
	sb.WriteString("forall ")
	for i, id := range s.Vars {
		if i > 0 {
			sb.WriteString(", ")
		}
		name, ok := p.idNames[id]
		if !ok {
			name = p.nameOf(id)
		}
		sb.WriteString(name)
	}
	sb.WriteString(" . ")
	sb.WriteString(body)
	p.Release()
	return sb.String()
}

type typePrinter struct {
	idNames map[int]string
	sb      strings.Builder
}

var _names [128]string

func init() {
	for i := range _names {
		_names[i] = varName(i)
	}
}

func varName(i int) string {
	if i >= 26 {
		return "'" + string(byte(97+i%26)) + strconv.Itoa(i/26)
	}
	return "'" + string(byte(97+i%26))
}

func getVarName(i int) string {
	if i < len(_names) {
		return _names[i]
	}
	return varName(i)
}

func (p *typePrinter) nameOf(id int) string {
	if name, ok := p.idNames[id]; ok {
		return name
	}
	name := getVarName(len(p.idNames))
	p.idNames[id] = name
	return name
}

func typeString(p *typePrinter, simple bool, t Type) {
	switch t := t.(type) {
	case nil:
		p.sb.WriteString("<nil>")

	case *Const:
		p.sb.WriteString(t.Name)

	case *Var:
		if t.Name != "" {
			p.sb.WriteString(t.Name)
			return
		}
		p.sb.WriteString(p.nameOf(t.Id))

	case *Set:
		p.sb.WriteString("Set[")
		typeString(p, false, t.Elem)
		p.sb.WriteByte(']')

	case *List:
		p.sb.WriteString("List[")
		typeString(p, false, t.Elem)
		p.sb.WriteByte(']')

	case *Func:
		if simple {
			p.sb.WriteByte('(')
		}
		typeString(p, true, t.Arg)
		p.sb.WriteString(" -> ")
		typeString(p, false, t.Result)
		if simple {
			p.sb.WriteByte(')')
		}

	case *Tuple:
		p.sb.WriteByte('(')
		for i, elem := range t.Elems {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			typeString(p, false, elem)
		}
		p.sb.WriteByte(')')

	case *Oper:
		if simple {
			p.sb.WriteByte('(')
		}
		p.sb.WriteByte('(')
		for i, param := range t.Params {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			typeString(p, false, param)
		}
		p.sb.WriteString(") => ")
		typeString(p, false, t.Result)
		if simple {
			p.sb.WriteByte(')')
		}

	case *Record:
		p.sb.WriteByte('{')
		rowString(p, t.Row)
		p.sb.WriteByte('}')

	case *Union:
		for i, rec := range t.Records {
			if i > 0 {
				p.sb.WriteByte(' ')
			}
			p.sb.WriteString("| { ")
			p.sb.WriteString(t.Tag)
			p.sb.WriteString(": ")
			p.sb.WriteString(strconv.Quote(rec.TagValue))
			if rec.Row.Fields.Len() > 0 || rec.Row.Tail != nil {
				p.sb.WriteString(", ")
				rowFields(p, rec.Row)
			}
			p.sb.WriteString(" }")
		}

	case *Row:
		p.sb.WriteByte('(')
		rowFields(p, t)
		p.sb.WriteByte(')')
	}
}

func rowString(p *typePrinter, r *Row) {
	if r.Fields.Len() == 0 && r.Tail == nil {
		return
	}
	p.sb.WriteByte(' ')
	rowFields(p, r)
	p.sb.WriteByte(' ')
}

func rowFields(p *typePrinter, r *Row) {
	i := 0
	r.Fields.Range(func(label string, t Type) bool {
		if i > 0 {
			p.sb.WriteString(", ")
		}
		p.sb.WriteString(label)
		p.sb.WriteString(": ")
		typeString(p, false, t)
		i++
		return true
	})
	if r.Tail == nil {
		return
	}
	if i > 0 {
		p.sb.WriteString(" | ")
	} else {
		p.sb.WriteString("| ")
	}
	typeString(p, false, r.Tail)
}
