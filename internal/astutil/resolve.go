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

package astutil

import (
	"github.com/wdamron/tntc/ir"
)

// Resolver builds lookup tables by lexical scoping. Names declared by a module are visible
// throughout the module and within every later module; lambda parameters and let-bound
// definitions shadow outer names within their scope. Names which cannot be resolved (builtins
// and undeclared names) are left out of the table.
type Resolver struct {
	Table      ir.LookupTable
	Scopes     map[string]ir.Binding // names currently in scope
	ScopeStash []StashedScope        // shadowed bindings

	// initial space:
	_scopeStash [16]StashedScope
}

// StashedScope is a binding shadowed by an inner scope.
type StashedScope struct {
	Name    string
	Binding ir.Binding
	Found   bool
}

// NewResolver creates a resolver with an empty table.
func NewResolver() *Resolver {
	r := &Resolver{Table: make(ir.LookupTable), Scopes: make(map[string]ir.Binding, 32)}
	r.ScopeStash = r._scopeStash[:0]
	return r
}

// Resolve builds a lookup table for modules, in order.
func Resolve(modules ...*ir.Module) ir.LookupTable {
	r := NewResolver()
	for _, m := range modules {
		r.ResolveModule(m)
	}
	return r.Table
}

// ResolveModule adds the declarations of m to the module scope, then resolves each
// occurrence within m.
func (r *Resolver) ResolveModule(m *ir.Module) {
	for _, d := range m.Defs {
		switch d := d.(type) {
		case *ir.OpDef:
			r.Scopes[d.Name] = ir.Binding{Kind: ir.BindingDef, Name: d.Name, ID: d.ID}
		case *ir.Const:
			r.Scopes[d.Name] = ir.Binding{Kind: ir.BindingConst, Name: d.Name, ID: d.ID}
		case *ir.Var:
			r.Scopes[d.Name] = ir.Binding{Kind: ir.BindingVar, Name: d.Name, ID: d.ID}
		case *ir.TypeDef:
			r.Scopes[d.Name] = ir.Binding{Kind: ir.BindingTypeDef, Name: d.Name, ID: d.ID}
		}
	}
	for _, d := range m.Defs {
		switch d := d.(type) {
		case *ir.OpDef:
			r.resolveExpr(d.Expr)
		case *ir.Assume:
			r.resolveExpr(d.Assumption)
		}
	}
}

// returns 1 if the name was stashed
func (r *Resolver) stash(name string) int {
	b, found := r.Scopes[name]
	r.ScopeStash = append(r.ScopeStash, StashedScope{Name: name, Binding: b, Found: found})
	return 1
}

func (r *Resolver) unstash(count int) {
	if count <= 0 {
		return
	}
	stash := r.ScopeStash
	unstashed := 0
	for i := len(stash) - 1; unstashed < count && i >= 0; i, unstashed = i-1, unstashed+1 {
		if stash[i].Found {
			r.Scopes[stash[i].Name] = stash[i].Binding
		} else {
			delete(r.Scopes, stash[i].Name)
		}
	}
	r.ScopeStash = r.ScopeStash[0 : len(stash)-unstashed]
}

func (r *Resolver) resolveName(occ ir.ID, name string) {
	if b, ok := r.Scopes[name]; ok {
		r.Table[occ] = b
	}
}

func (r *Resolver) resolveExpr(e ir.Expr) {
	switch e := e.(type) {
	case *ir.Name:
		r.resolveName(e.ID, e.Name)

	case *ir.App:
		r.resolveName(e.ID, e.Opcode)
		for _, arg := range e.Args {
			r.resolveExpr(arg)
		}

	case *ir.Lambda:
		stashed := 0
		for _, p := range e.Params {
			stashed += r.stash(p.Name)
			r.Scopes[p.Name] = ir.Binding{Kind: ir.BindingParam, Name: p.Name, ID: p.ID}
		}
		r.resolveExpr(e.Body)
		r.unstash(stashed)

	case *ir.Let:
		r.resolveExpr(e.Def.Expr)
		stashed := r.stash(e.Def.Name)
		r.Scopes[e.Def.Name] = ir.Binding{Kind: ir.BindingDef, Name: e.Def.Name, ID: e.Def.ID}
		r.resolveExpr(e.Body)
		r.unstash(stashed)
	}
}
