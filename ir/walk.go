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

// WalkExpr calls f for e and each of its sub-expressions, in pre-order. Definitions nested in
// let-expressions are walked before their continuation.
func WalkExpr(e Expr, f func(Expr)) {
	switch e := e.(type) {
	case *Name, *Bool, *Int, *Str:
		f(e)

	case *App:
		f(e)
		for _, arg := range e.Args {
			WalkExpr(arg, f)
		}

	case *Lambda:
		f(e)
		WalkExpr(e.Body, f)

	case *Let:
		f(e)
		WalkExpr(e.Def.Expr, f)
		WalkExpr(e.Body, f)

	case nil:

	default:
		panic("unknown expression type: " + e.ExprName())
	}
}

// WalkDef calls f for each expression within d, in pre-order.
func WalkDef(d Def, f func(Expr)) {
	switch d := d.(type) {
	case *OpDef:
		WalkExpr(d.Expr, f)
	case *Assume:
		WalkExpr(d.Assumption, f)
	case *Instance:
		for _, o := range d.Overrides {
			WalkExpr(o.Expr, f)
		}
	}
}

// MaxID returns the largest id used by the module, its definitions, expressions or parameters.
func MaxID(m *Module) ID {
	max := m.ID
	see := func(id ID) {
		if id > max {
			max = id
		}
	}
	for _, d := range m.Defs {
		see(d.DefID())
		WalkDef(d, func(e Expr) {
			see(e.ExprID())
			switch e := e.(type) {
			case *Lambda:
				for _, p := range e.Params {
					see(p.ID)
				}
			case *Let:
				see(e.Def.ID)
			}
		})
	}
	return max
}
