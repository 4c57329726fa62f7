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

import (
	"strconv"
	"strings"

	"github.com/wdamron/tntc/types"
)

// ExprString returns a string representation of an expression.
func ExprString(e Expr) string {
	var sb strings.Builder
	exprString(&sb, e)
	return sb.String()
}

// DefString returns a string representation of a definition.
func DefString(d Def) string {
	var sb strings.Builder
	defString(&sb, d)
	return sb.String()
}

func exprString(sb *strings.Builder, e Expr) {
	switch e := e.(type) {
	case *Name:
		sb.WriteString(e.Name)

	case *Bool:
		sb.WriteString(strconv.FormatBool(e.Value))

	case *Int:
		if e.Value == nil {
			sb.WriteByte('0')
			return
		}
		sb.WriteString(e.Value.String())

	case *Str:
		sb.WriteString(strconv.Quote(e.Value))

	case *App:
		sb.WriteString(e.Opcode)
		sb.WriteByte('(')
		for i, arg := range e.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			exprString(sb, arg)
		}
		sb.WriteByte(')')

	case *Lambda:
		sb.WriteByte('(')
		for i, p := range e.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(p.Name)
		}
		sb.WriteString(") => ")
		exprString(sb, e.Body)

	case *Let:
		defString(sb, e.Def)
		sb.WriteString(" { ")
		exprString(sb, e.Body)
		sb.WriteString(" }")

	case nil:
		sb.WriteString("<nil>")
	}
}

func defString(sb *strings.Builder, d Def) {
	switch d := d.(type) {
	case *OpDef:
		sb.WriteString(d.Qualifier.String())
		sb.WriteByte(' ')
		sb.WriteString(d.Name)
		body := d.Expr
		if lam, ok := d.Expr.(*Lambda); ok {
			sb.WriteByte('(')
			for i, p := range lam.Params {
				if i > 0 {
					sb.WriteString(", ")
				}
				sb.WriteString(p.Name)
			}
			sb.WriteByte(')')
			body = lam.Body
		}
		if d.TypeAnnotation != nil {
			sb.WriteString(": ")
			sb.WriteString(types.TypeString(d.TypeAnnotation))
		}
		sb.WriteString(" = ")
		exprString(sb, body)

	case *Const:
		sb.WriteString("const ")
		sb.WriteString(d.Name)
		sb.WriteString(": ")
		sb.WriteString(types.TypeString(d.Type))

	case *Var:
		sb.WriteString("var ")
		sb.WriteString(d.Name)
		sb.WriteString(": ")
		sb.WriteString(types.TypeString(d.Type))

	case *Assume:
		sb.WriteString("assume ")
		sb.WriteString(d.Name)
		sb.WriteString(" = ")
		exprString(sb, d.Assumption)

	case *TypeDef:
		sb.WriteString("type ")
		sb.WriteString(d.Name)
		if d.Type != nil {
			sb.WriteString(" = ")
			sb.WriteString(types.TypeString(d.Type))
		}

	case *Import:
		sb.WriteString("import ")
		sb.WriteString(d.Path)
		sb.WriteByte('.')
		sb.WriteString(d.Name)

	case *Instance:
		sb.WriteString("import ")
		sb.WriteString(d.ProtoName)
		sb.WriteByte('(')
		for i, o := range d.Overrides {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(o.Name)
			sb.WriteString(" = ")
			exprString(sb, o.Expr)
		}
		if d.IdentityOverride {
			if len(d.Overrides) > 0 {
				sb.WriteString(", ")
			}
			sb.WriteByte('*')
		}
		sb.WriteString(") as ")
		sb.WriteString(d.Name)
	}
}
