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
	"sort"

	"github.com/wdamron/tntc/internal/util"
	"github.com/wdamron/tntc/ir"
	"github.com/wdamron/tntc/types"
)

// Analysis of the dependencies between the top-level definitions of a module.
//
// Definitions are sorted into strongly-connected components, then checked in dependency order,
// so a definition may refer to definitions which appear later in the module. Definitions may
// not be recursive: each component with more than one member, or with a member which refers to
// itself, is cyclic.
type Analysis struct {
	// Components of the dependency graph, in dependency order
	Order [][]ir.Def
	// Ids of the definitions within cyclic components
	Cyclic map[ir.ID]bool
	// Direct dependencies of each definition, by id, in definition order
	Deps map[ir.ID][]ir.ID
}

// Analyze the definitions of m. References are resolved through table; references to
// uninterpreted types and aliases within annotations are resolved by name.
func Analyze(m *ir.Module, table ir.LookupTable) *Analysis {
	verts := make(map[ir.ID]int, len(m.Defs))
	typeNames := make(map[string]int)
	for i, d := range m.Defs {
		verts[d.DefID()] = i
		if td, ok := d.(*ir.TypeDef); ok {
			typeNames[td.Name] = i
		}
	}
	g := util.NewGraph(len(m.Defs))
	a := &Analysis{Cyclic: make(map[ir.ID]bool), Deps: make(map[ir.ID][]ir.ID, len(m.Defs))}
	for i, d := range m.Defs {
		addDep := func(j int) {
			if !g.HasEdge(j, i) {
				a.Deps[d.DefID()] = append(a.Deps[d.DefID()], m.Defs[j].DefID())
			}
			// edges point from a dependency to its dependents
			g.AddEdge(j, i)
		}
		ir.WalkDef(d, func(e ir.Expr) {
			var occ ir.ID
			switch e := e.(type) {
			case *ir.Name:
				occ = e.ID
			case *ir.App:
				occ = e.ID
			case *ir.Let:
				forEachTypeName(e.Def.TypeAnnotation, func(name string) {
					if j, ok := typeNames[name]; ok {
						addDep(j)
					}
				})
				return
			default:
				return
			}
			b, ok := table.Lookup(occ)
			if !ok || b.Kind == ir.BindingParam {
				return
			}
			if j, ok := verts[b.ID]; ok {
				addDep(j)
			}
		})
		forEachTypeName(annotationOf(d), func(name string) {
			if j, ok := typeNames[name]; ok {
				addDep(j)
			}
		})
	}
	for _, scc := range g.SCC() {
		comp := make([]ir.Def, len(scc))
		// members of a component are listed in definition order
		sort.Ints(scc)
		for k, v := range scc {
			comp[k] = m.Defs[v]
		}
		if len(scc) > 1 || g.HasEdge(scc[0], scc[0]) {
			for _, d := range comp {
				a.Cyclic[d.DefID()] = true
			}
		}
		a.Order = append(a.Order, comp)
	}
	return a
}

func annotationOf(d ir.Def) types.Type {
	switch d := d.(type) {
	case *ir.OpDef:
		return d.TypeAnnotation
	case *ir.Const:
		return d.Type
	case *ir.Var:
		return d.Type
	case *ir.TypeDef:
		return d.Type
	}
	return nil
}

// forEachTypeName calls f for the name of each type constant within t.
func forEachTypeName(t types.Type, f func(string)) {
	switch t := t.(type) {
	case *types.Const:
		f(t.Name)
	case *types.Set:
		forEachTypeName(t.Elem, f)
	case *types.List:
		forEachTypeName(t.Elem, f)
	case *types.Func:
		forEachTypeName(t.Arg, f)
		forEachTypeName(t.Result, f)
	case *types.Tuple:
		for _, elem := range t.Elems {
			forEachTypeName(elem, f)
		}
	case *types.Oper:
		for _, param := range t.Params {
			forEachTypeName(param, f)
		}
		forEachTypeName(t.Result, f)
	case *types.Record:
		forEachTypeName(t.Row, f)
	case *types.Union:
		for _, rec := range t.Records {
			forEachTypeName(rec.Row, f)
		}
	case *types.Row:
		t.Fields.Range(func(_ string, ft types.Type) bool {
			forEachTypeName(ft, f)
			return true
		})
		forEachTypeName(t.Tail, f)
	}
}
