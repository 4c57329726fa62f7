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

package tntc

import (
	"github.com/hashicorp/go-set/v3"

	"github.com/wdamron/tntc/errtree"
	"github.com/wdamron/tntc/internal/typeutil"
	"github.com/wdamron/tntc/ir"
	"github.com/wdamron/tntc/types"
)

// TypeEnv is a type-environment containing the schemes of declarations in scope, keyed by the
// id of each declaration, and the type aliases of the module.
//
// A type-environment cannot be used concurrently for inference.
type TypeEnv struct {
	// Type aliases and uninterpreted types, by name
	TypeDefs map[string]*ir.TypeDef

	schemes *typeutil.Env[types.Scheme]
}

// Create an empty type-environment.
func NewTypeEnv() *TypeEnv {
	return &TypeEnv{TypeDefs: make(map[string]*ir.TypeDef), schemes: typeutil.NewEnv[types.Scheme]()}
}

// Reset removes all declarations.
func (e *TypeEnv) Reset() {
	e.schemes.Reset()
	for k := range e.TypeDefs {
		delete(e.TypeDefs, k)
	}
}

// Declare a scheme for the declaration with the given id.
func (e *TypeEnv) Declare(id ir.ID, s types.Scheme) { e.schemes.Assign(id, s) }

// Lookup the scheme of a declaration.
func (e *TypeEnv) Lookup(id ir.ID) (types.Scheme, bool) { return e.schemes.Lookup(id) }

// Bind a scheme within a nested scope. The binding is removed by Unbind.
func (e *TypeEnv) Bind(id ir.ID, s types.Scheme) { e.schemes.Stash(id, s) }

// Bind a monomorphic type within a nested scope. Monomorphic bindings are not generalized.
func (e *TypeEnv) BindMono(id ir.ID, t types.Type) { e.schemes.StashMono(id, types.Mono(t)) }

// Unbind removes the count most recent nested bindings.
func (e *TypeEnv) Unbind(count int) { e.schemes.Unstash(count) }

// DeclareTypeDef adds a type alias or uninterpreted type.
func (e *TypeEnv) DeclareTypeDef(td *ir.TypeDef) { e.TypeDefs[td.Name] = td }

// FreeVars returns the variables free in the monomorphic bindings of the environment, after
// applying s.
func (e *TypeEnv) FreeVars(s types.Subst) *set.Set[int] {
	free := set.New[int](8)
	e.schemes.Monos(func(_ ir.ID, scheme types.Scheme) {
		free.InsertSet(s.FreeVars(scheme.Type))
	})
	return free
}

// annotationResolver converts annotations into types: named type-variables are renamed to fresh
// variables (consistently within one annotation) and aliases are expanded.
type annotationResolver struct {
	env   *TypeEnv
	fresh func() *types.Var
	names map[string]*types.Var
	refs  []ir.ID
}

func (ti *Context) newAnnotationResolver(refs ...ir.ID) *annotationResolver {
	return &annotationResolver{env: ti.env, fresh: ti.newVar, names: make(map[string]*types.Var), refs: refs}
}

func (r *annotationResolver) resolve(t types.Type) (types.Type, *errtree.Tree) {
	return r.resolveExpanding(t, nil)
}

func (r *annotationResolver) resolveExpanding(t types.Type, expanding []string) (types.Type, *errtree.Tree) {
	switch t := t.(type) {
	case nil:
		return nil, errtree.New(errtree.InvalidAnnot, "missing type", r.refs...)

	case *types.Var:
		if t.Name == "" {
			return t, nil
		}
		if v, ok := r.names[t.Name]; ok {
			return v, nil
		}
		v := r.fresh()
		r.names[t.Name] = v
		return v, nil

	case *types.Const:
		switch t.Name {
		case types.BoolName, types.IntName, types.StrName:
			return t, nil
		}
		td, ok := r.env.TypeDefs[t.Name]
		if !ok {
			return nil, errtree.New(errtree.InvalidAnnot, "unknown type "+t.Name, r.refs...)
		}
		if td.Type == nil {
			return t, nil
		}
		for _, name := range expanding {
			if name == t.Name {
				return nil, errtree.New(errtree.InvalidAnnot, "type alias "+t.Name+" refers to itself", append(r.refs, td.ID)...)
			}
		}
		return r.resolveExpanding(td.Type, append(expanding, t.Name))

	case *types.Set:
		elem, err := r.resolveExpanding(t.Elem, expanding)
		if err != nil {
			return nil, err
		}
		return &types.Set{Elem: elem}, nil

	case *types.List:
		elem, err := r.resolveExpanding(t.Elem, expanding)
		if err != nil {
			return nil, err
		}
		return &types.List{Elem: elem}, nil

	case *types.Func:
		arg, err := r.resolveExpanding(t.Arg, expanding)
		if err != nil {
			return nil, err
		}
		res, err := r.resolveExpanding(t.Result, expanding)
		if err != nil {
			return nil, err
		}
		return &types.Func{Arg: arg, Result: res}, nil

	case *types.Tuple:
		elems, err := r.resolveAll(t.Elems, expanding)
		if err != nil {
			return nil, err
		}
		return &types.Tuple{Elems: elems}, nil

	case *types.Oper:
		params, err := r.resolveAll(t.Params, expanding)
		if err != nil {
			return nil, err
		}
		res, err := r.resolveExpanding(t.Result, expanding)
		if err != nil {
			return nil, err
		}
		return &types.Oper{Params: params, Result: res}, nil

	case *types.Record:
		row, err := r.resolveRow(t.Row, expanding)
		if err != nil {
			return nil, err
		}
		return &types.Record{Row: row}, nil

	case *types.Union:
		u := &types.Union{Tag: t.Tag, Records: make([]types.UnionRecord, len(t.Records))}
		seen := make(map[string]bool, len(t.Records))
		for i, rec := range t.Records {
			if seen[rec.TagValue] {
				return nil, errtree.New(errtree.InvalidAnnot, "duplicate union case "+rec.TagValue, r.refs...)
			}
			seen[rec.TagValue] = true
			row, err := r.resolveRow(rec.Row, expanding)
			if err != nil {
				return nil, err
			}
			u.Records[i] = types.UnionRecord{TagValue: rec.TagValue, Row: row}
		}
		return u, nil

	case *types.Row:
		return r.resolveRow(t, expanding)
	}
	return nil, errtree.New(errtree.InvalidAnnot, "unsupported type "+t.TypeName(), r.refs...)
}

func (r *annotationResolver) resolveAll(ts []types.Type, expanding []string) ([]types.Type, *errtree.Tree) {
	out := make([]types.Type, len(ts))
	for i, t := range ts {
		rt, err := r.resolveExpanding(t, expanding)
		if err != nil {
			return nil, err
		}
		out[i] = rt
	}
	return out, nil
}

func (r *annotationResolver) resolveRow(row *types.Row, expanding []string) (*types.Row, *errtree.Tree) {
	b := types.NewFieldMapBuilder()
	var err *errtree.Tree
	row.Fields.Range(func(label string, t types.Type) bool {
		var rt types.Type
		if rt, err = r.resolveExpanding(t, expanding); err != nil {
			return false
		}
		b.Set(label, rt)
		return true
	})
	if err != nil {
		return nil, err
	}
	if row.Tail == nil {
		return types.NewRow(b.Build(), nil), nil
	}
	tail, err := r.resolveExpanding(row.Tail, expanding)
	if err != nil {
		return nil, err
	}
	return types.NewRow(b.Build(), tail), nil
}
