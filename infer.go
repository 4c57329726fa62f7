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
	"strconv"

	"github.com/wdamron/tntc/errtree"
	"github.com/wdamron/tntc/ir"
	"github.com/wdamron/tntc/types"
)

// unify expected with actual under the current substitution. On success, the unifier is composed
// into the substitution.
func (ti *Context) unify(expected, actual types.Type, refs ...ir.ID) *errtree.Tree {
	u := unifier{fresh: ti.newVar, refs: refs}
	s, err := u.unify(ti.sub.Apply(expected), ti.sub.Apply(actual))
	if err != nil {
		return err
	}
	ti.sub = s.Compose(ti.sub)
	return nil
}

func (ti *Context) inferOpDef(d *ir.OpDef) (types.Type, bool) {
	t, ok := ti.infer(d.Expr)
	if !ok {
		return nil, false
	}
	if d.TypeAnnotation != nil {
		at, err := ti.newAnnotationResolver(d.ID).resolve(d.TypeAnnotation)
		if err != nil {
			ti.report(err.At("checking the annotation of " + d.Name))
			return nil, false
		}
		if err := ti.unify(at, t, d.ID); err != nil {
			ti.report(errtree.Wrap(err, "the type of "+d.Name+" does not match its annotation", d.ID).
				At("checking the annotation of " + d.Name))
			return nil, false
		}
	}
	return ti.sub.Apply(t), true
}

// infer the type of e. When inference of e (or one of its sub-expressions) fails, the failure
// is reported once and ok is false; callers do not report further failures caused by e.
func (ti *Context) infer(e ir.Expr) (t types.Type, ok bool) {
	switch e := e.(type) {
	case *ir.Bool:
		t, ok = types.Bool, true

	case *ir.Int:
		t, ok = types.Int, true

	case *ir.Str:
		t, ok = types.Str, true

	case *ir.Name:
		t, ok = ti.inferName(e)

	case *ir.App:
		t, ok = ti.inferApp(e)

	case *ir.Lambda:
		params := make([]types.Type, len(e.Params))
		for i, p := range e.Params {
			tv := ti.newVar()
			params[i] = tv
			ti.env.BindMono(p.ID, tv)
		}
		var body types.Type
		body, ok = ti.infer(e.Body)
		ti.env.Unbind(len(e.Params))
		if ok {
			t = &types.Oper{Params: params, Result: body}
		}

	case *ir.Let:
		dt, defOk := ti.inferOpDef(e.Def)
		if defOk {
			var s types.Scheme
			if e.Def.Qualifier == ir.QualifierNondet {
				// nondeterministic choices are bound monomorphically
				s = types.Mono(dt)
				ti.env.BindMono(e.Def.ID, dt)
			} else {
				s = ti.generalize(dt, ti.env.FreeVars(ti.sub))
				ti.env.Bind(e.Def.ID, s)
			}
			ti.result.Schemes[e.Def.ID] = s
			ti.nested = append(ti.nested, e.Def.ID)
		} else {
			ti.failed[e.Def.ID] = true
		}
		t, ok = ti.infer(e.Body)
		if defOk {
			ti.env.Unbind(1)
		}

	default:
		ti.report(errtree.New(errtree.Unsupported, "unsupported expression "+e.ExprName(), e.ExprID()))
		return nil, false
	}
	if !ok {
		return nil, false
	}
	ti.record(e.ExprID(), t)
	return t, true
}

func (ti *Context) inferName(e *ir.Name) (types.Type, bool) {
	if b, found := ti.table.Lookup(e.ID); found {
		return ti.lookupBinding(e.ID, b)
	}
	if t, found := builtinValues[e.Name]; found {
		return t, true
	}
	if s, found := builtinSignatures[e.Name]; found {
		return ti.instantiate(s), true
	}
	ti.report(errtree.New(errtree.UnboundName, "name "+e.Name+" is not declared", e.ID))
	return nil, false
}

func (ti *Context) lookupBinding(occ ir.ID, b ir.Binding) (types.Type, bool) {
	if b.Kind == ir.BindingTypeDef {
		ti.report(errtree.New(errtree.Unsupported, "type "+b.Name+" cannot be used as a value", occ, b.ID))
		return nil, false
	}
	s, found := ti.env.Lookup(b.ID)
	if !found {
		if ti.failed[b.ID] {
			// already diagnosed
			return nil, false
		}
		ti.report(errtree.New(errtree.UnboundName, b.Kind.String()+" "+b.Name+" is not in scope", occ, b.ID))
		return nil, false
	}
	return ti.instantiate(s), true
}

func (ti *Context) inferApp(e *ir.App) (types.Type, bool) {
	args := make([]types.Type, len(e.Args))
	argsOk := true
	for i, arg := range e.Args {
		t, ok := ti.infer(arg)
		args[i], argsOk = t, argsOk && ok
	}

	var callee types.Type
	if b, found := ti.table.Lookup(e.ID); found {
		t, ok := ti.lookupBinding(e.ID, b)
		if !ok {
			return nil, false
		}
		callee = t
	} else if structuralBuiltins[e.Opcode] {
		if !argsOk {
			return nil, false
		}
		return ti.inferStructural(e, args)
	} else if s, found := builtinSignatures[e.Opcode]; found {
		callee = ti.instantiate(s)
	} else {
		ti.report(errtree.New(errtree.UnboundName, "operator "+e.Opcode+" is not declared", e.ID))
		return nil, false
	}
	if !argsOk {
		return nil, false
	}
	return ti.applyOper(e, callee, args)
}

func (ti *Context) applyOper(e *ir.App, callee types.Type, args []types.Type) (types.Type, bool) {
	switch oper := ti.sub.Apply(callee).(type) {
	case *types.Oper:
		if len(oper.Params) != len(args) {
			ti.report(errtree.New(errtree.ArityMismatch,
				"operator "+e.Opcode+" expects "+strconv.Itoa(len(oper.Params))+" arguments, found "+strconv.Itoa(len(args)), e.ID))
			return nil, false
		}
		if !ti.unifyArgs(e, oper.Params, args) {
			return nil, false
		}
		return oper.Result, true

	case *types.Var:
		result := ti.newVar()
		if err := ti.unify(oper, &types.Oper{Params: args, Result: result}, e.ID); err != nil {
			ti.report(errtree.Wrap(err, "application of "+e.Opcode+" failed", e.ID))
			return nil, false
		}
		return result, true

	default:
		ti.report(errtree.New(errtree.TypeMismatch, e.Opcode+" is not an operator: "+types.TypeString(oper), e.ID))
		return nil, false
	}
}

// unifyArgs unifies each argument with its parameter. Every failing argument is reported as a
// child of one diagnostic for the application.
func (ti *Context) unifyArgs(e *ir.App, params, args []types.Type) bool {
	var children []*errtree.Tree
	for i := range args {
		argId := e.Args[i].ExprID()
		if err := ti.unify(params[i], args[i], argId); err != nil {
			children = append(children, errtree.Wrap(err, "argument "+strconv.Itoa(i+1)+" has the wrong type", argId))
		}
	}
	if len(children) == 0 {
		return true
	}
	ti.report(&errtree.Tree{
		Code:     children[0].Code,
		Message:  "application of " + e.Opcode + " failed",
		Refs:     []ir.ID{e.ID},
		Children: children,
	})
	return false
}

func (ti *Context) expectArity(e *ir.App, n int) bool {
	if len(e.Args) == n {
		return true
	}
	ti.report(errtree.New(errtree.ArityMismatch,
		"operator "+e.Opcode+" expects "+strconv.Itoa(n)+" arguments, found "+strconv.Itoa(len(e.Args)), e.ID))
	return false
}

func (ti *Context) literalLabel(e *ir.App, arg ir.Expr) (string, bool) {
	if s, ok := arg.(*ir.Str); ok {
		return s.Value, true
	}
	ti.report(errtree.New(errtree.Unsupported, "field names of "+e.Opcode+" must be string literals", arg.ExprID(), e.ID))
	return "", false
}

func repeat(t types.Type, n int) []types.Type {
	ts := make([]types.Type, n)
	for i := range ts {
		ts[i] = t
	}
	return ts
}

// inferStructural infers applications of builtins which accept any number of arguments, or whose
// types depend on literal arguments.
func (ti *Context) inferStructural(e *ir.App, args []types.Type) (types.Type, bool) {
	switch e.Opcode {
	case "Set", "List":
		elem := ti.newVar()
		if !ti.unifyArgs(e, repeat(elem, len(args)), args) {
			return nil, false
		}
		if e.Opcode == "Set" {
			return &types.Set{Elem: elem}, true
		}
		return &types.List{Elem: elem}, true

	case "Tup":
		return &types.Tuple{Elems: append([]types.Type(nil), args...)}, true

	case "Rec":
		if len(args)%2 != 0 {
			ti.report(errtree.New(errtree.ArityMismatch, "Rec expects pairs of field names and values", e.ID))
			return nil, false
		}
		b := types.NewFieldMapBuilder()
		for i := 0; i < len(args); i += 2 {
			label, ok := ti.literalLabel(e, e.Args[i])
			if !ok {
				return nil, false
			}
			if _, dup := b.Build().Get(label); dup {
				ti.report(errtree.New(errtree.RowMismatch, "duplicate field "+label, e.Args[i].ExprID(), e.ID))
				return nil, false
			}
			b.Set(label, args[i+1])
		}
		return &types.Record{Row: types.NewRow(b.Build(), nil)}, true

	case "Map":
		k, v := ti.newVar(), ti.newVar()
		if !ti.unifyArgs(e, repeat(&types.Tuple{Elems: []types.Type{k, v}}, len(args)), args) {
			return nil, false
		}
		return &types.Func{Arg: k, Result: v}, true

	case "and", "or", "actionAll", "actionAny":
		if !ti.unifyArgs(e, repeat(types.Bool, len(args)), args) {
			return nil, false
		}
		return types.Bool, true

	case "field":
		if !ti.expectArity(e, 2) {
			return nil, false
		}
		label, ok := ti.literalLabel(e, e.Args[1])
		if !ok {
			return nil, false
		}
		ft := ti.newVar()
		rec := &types.Record{Row: types.NewRow(types.SingletonFieldMap(label, ft), ti.newVar())}
		if !ti.unifyArgs(e, []types.Type{rec, types.Str}, args) {
			return nil, false
		}
		return ft, true

	case "with":
		if !ti.expectArity(e, 3) {
			return nil, false
		}
		label, ok := ti.literalLabel(e, e.Args[1])
		if !ok {
			return nil, false
		}
		ft := ti.newVar()
		rec := &types.Record{Row: types.NewRow(types.SingletonFieldMap(label, ft), ti.newVar())}
		if !ti.unifyArgs(e, []types.Type{rec, types.Str, ft}, args) {
			return nil, false
		}
		return args[0], true

	case "fieldNames":
		if !ti.expectArity(e, 1) {
			return nil, false
		}
		rec := &types.Record{Row: types.NewRow(types.EmptyFieldMap, ti.newVar())}
		if !ti.unifyArgs(e, []types.Type{rec}, args) {
			return nil, false
		}
		return &types.Set{Elem: types.Str}, true

	case "item":
		return ti.inferItem(e, args)

	case "tuples":
		elems := make([]types.Type, len(args))
		sets := make([]types.Type, len(args))
		for i := range args {
			elems[i] = ti.newVar()
			sets[i] = &types.Set{Elem: elems[i]}
		}
		if !ti.unifyArgs(e, sets, args) {
			return nil, false
		}
		return &types.Set{Elem: &types.Tuple{Elems: elems}}, true
	}
	ti.report(errtree.New(errtree.Unsupported, "unsupported builtin "+e.Opcode, e.ID))
	return nil, false
}

// inferItem infers the projection of a tuple by a 1-based literal index. The type of the tuple
// must be known at the projection.
func (ti *Context) inferItem(e *ir.App, args []types.Type) (types.Type, bool) {
	if !ti.expectArity(e, 2) {
		return nil, false
	}
	lit, ok := e.Args[1].(*ir.Int)
	if !ok || lit.Value == nil || !lit.Value.IsInt64() {
		ti.report(errtree.New(errtree.Unsupported, "the index of item must be an integer literal", e.Args[1].ExprID(), e.ID))
		return nil, false
	}
	if err := ti.unify(types.Int, args[1], e.Args[1].ExprID()); err != nil {
		ti.report(err)
		return nil, false
	}
	switch tup := ti.sub.Apply(args[0]).(type) {
	case *types.Tuple:
		idx := lit.Value.Int64()
		if idx < 1 || idx > int64(len(tup.Elems)) {
			ti.report(errtree.New(errtree.ArityMismatch,
				"index "+lit.Value.String()+" is out of range for "+types.TypeString(tup), e.Args[1].ExprID(), e.ID))
			return nil, false
		}
		return tup.Elems[idx-1], true
	case *types.Var:
		ti.report(errtree.New(errtree.Unsupported, "the type of the tuple must be known before projecting an item", e.Args[0].ExprID(), e.ID))
		return nil, false
	default:
		ti.report(errtree.New(errtree.TypeMismatch, "expected a tuple, found "+types.TypeString(tup), e.Args[0].ExprID(), e.ID))
		return nil, false
	}
}
