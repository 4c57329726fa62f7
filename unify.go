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
	"strings"

	"github.com/wdamron/tntc/errtree"
	"github.com/wdamron/tntc/ir"
	"github.com/wdamron/tntc/types"
)

// unifier computes most general unifiers. Unification of rows which lack each other's labels
// allocates fresh row-variables.
type unifier struct {
	fresh func() *types.Var
	refs  []ir.ID
}

func (u *unifier) mismatch(a, b types.Type) *errtree.Tree {
	return errtree.New(errtree.TypeMismatch,
		"expected "+types.TypeString(a)+", found "+types.TypeString(b), u.refs...)
}

// unify returns a substitution which makes a and b equal. Both types must already have the
// current substitution applied.
func (u *unifier) unify(a, b types.Type) (types.Subst, *errtree.Tree) {
	empty := types.EmptySubst()
	if a == b {
		return empty, nil
	}

	// unify type variables:

	avar, _ := a.(*types.Var)
	bvar, _ := b.(*types.Var)
	switch {
	case avar != nil && bvar != nil && avar.Id == bvar.Id:
		return empty, nil
	case avar != nil:
		return u.bind(avar, b)
	case bvar != nil:
		return u.bind(bvar, a)
	}

	// unify types:

	switch a := a.(type) {
	case *types.Const:
		if b, ok := b.(*types.Const); ok && a.Name == b.Name {
			return empty, nil
		}

	case *types.Set:
		if b, ok := b.(*types.Set); ok {
			return u.unify(a.Elem, b.Elem)
		}

	case *types.List:
		if b, ok := b.(*types.List); ok {
			return u.unify(a.Elem, b.Elem)
		}

	case *types.Func:
		if b, ok := b.(*types.Func); ok {
			return u.unifyAll([]types.Type{a.Arg, a.Result}, []types.Type{b.Arg, b.Result}, nil)
		}

	case *types.Tuple:
		b, ok := b.(*types.Tuple)
		if !ok {
			break
		}
		if len(a.Elems) != len(b.Elems) {
			return empty, errtree.New(errtree.ArityMismatch,
				"expected a tuple of "+strconv.Itoa(len(a.Elems))+" elements, found "+types.TypeString(b), u.refs...)
		}
		return u.unifyAll(a.Elems, b.Elems, func(i int) string { return "tuple element " + strconv.Itoa(i+1) })

	case *types.Oper:
		b, ok := b.(*types.Oper)
		if !ok {
			break
		}
		if len(a.Params) != len(b.Params) {
			return empty, errtree.New(errtree.ArityMismatch,
				"expected an operator of "+strconv.Itoa(len(a.Params))+" parameters, found "+types.TypeString(b), u.refs...)
		}
		as := append(append(make([]types.Type, 0, len(a.Params)+1), a.Params...), a.Result)
		bs := append(append(make([]types.Type, 0, len(b.Params)+1), b.Params...), b.Result)
		return u.unifyAll(as, bs, func(i int) string {
			if i == len(a.Params) {
				return "operator result"
			}
			return "operator parameter " + strconv.Itoa(i+1)
		})

	case *types.Record:
		if b, ok := b.(*types.Record); ok {
			return u.unifyRows(a.Row, b.Row)
		}

	case *types.Row:
		if b, ok := b.(*types.Row); ok {
			return u.unifyRows(a, b)
		}

	case *types.Union:
		if b, ok := b.(*types.Union); ok {
			return u.unifyUnions(a, b)
		}
	}
	return empty, u.mismatch(a, b)
}

func (u *unifier) bind(v *types.Var, t types.Type) (types.Subst, *errtree.Tree) {
	if tv, ok := t.(*types.Var); ok && tv.Id == v.Id {
		return types.EmptySubst(), nil
	}
	if types.FreeVars(t).Contains(v.Id) {
		return types.EmptySubst(), errtree.New(errtree.InfiniteType,
			"type variable "+types.TypeString(v)+" occurs in "+types.TypeString(t), u.refs...)
	}
	return types.SingletonSubst(v.Id, t), nil
}

// unifyAll unifies as[i] with bs[i] in order, composing the substitutions. When describe is not
// nil, failures are wrapped with the description of the failing position.
func (u *unifier) unifyAll(as, bs []types.Type, describe func(int) string) (types.Subst, *errtree.Tree) {
	s := types.EmptySubst()
	for i := range as {
		si, err := u.unify(s.Apply(as[i]), s.Apply(bs[i]))
		if err != nil {
			if describe != nil {
				err = errtree.Wrap(err, "mismatch in "+describe(i), u.refs...)
			}
			return s, err
		}
		s = si.Compose(s)
	}
	return s, nil
}

func (u *unifier) unifyRows(a, b *types.Row) (types.Subst, *errtree.Tree) {
	s := types.EmptySubst()
	var onlyA, onlyB []string
	var err *errtree.Tree
	a.Fields.Range(func(label string, ta types.Type) bool {
		tb, ok := b.Fields.Get(label)
		if !ok {
			onlyA = append(onlyA, label)
			return true
		}
		var sl types.Subst
		if sl, err = u.unify(s.Apply(ta), s.Apply(tb)); err != nil {
			err = errtree.Wrap(err, "mismatch in field "+label, u.refs...)
			return false
		}
		s = sl.Compose(s)
		return true
	})
	if err != nil {
		return s, err
	}
	b.Fields.Range(func(label string, _ types.Type) bool {
		if _, ok := a.Fields.Get(label); !ok {
			onlyB = append(onlyB, label)
		}
		return true
	})

	tailA, tailB := applyTail(s, a.Tail), applyTail(s, b.Tail)
	varA, _ := tailA.(*types.Var)
	varB, _ := tailB.(*types.Var)
	rowMismatch := func(missing []string, in *types.Row) *errtree.Tree {
		return errtree.New(errtree.RowMismatch,
			"record "+types.TypeString(&types.Record{Row: in})+" lacks fields "+strings.Join(missing, ", "), u.refs...)
	}
	var st types.Subst
	switch {
	case len(onlyA) == 0 && len(onlyB) == 0:
		switch {
		case varA != nil && varB != nil:
			st, err = u.bind(varA, varB)
		case varA != nil:
			st, err = u.bind(varA, types.EmptyRow())
		case varB != nil:
			st, err = u.bind(varB, types.EmptyRow())
		}

	case len(onlyA) == 0:
		// a lacks the labels only found in b
		if varA == nil {
			return s, rowMismatch(onlyB, s.Apply(a).(*types.Row))
		}
		st, err = u.bind(varA, types.NewRow(pick(s, b, onlyB), tailB))

	case len(onlyB) == 0:
		if varB == nil {
			return s, rowMismatch(onlyA, s.Apply(b).(*types.Row))
		}
		st, err = u.bind(varB, types.NewRow(pick(s, a, onlyA), tailA))

	default:
		if varA == nil {
			return s, rowMismatch(onlyB, s.Apply(a).(*types.Row))
		}
		if varB == nil {
			return s, rowMismatch(onlyA, s.Apply(b).(*types.Row))
		}
		if varA.Id == varB.Id {
			return s, errtree.New(errtree.RowMismatch,
				"rows sharing the tail "+types.TypeString(varA)+" cannot differ in fields", u.refs...)
		}
		rest := u.fresh()
		st, err = u.bind(varA, types.NewRow(pick(s, b, onlyB), rest))
		if err == nil {
			var st2 types.Subst
			st2, err = u.bind(varB, st.Apply(types.NewRow(pick(s, a, onlyA), rest)))
			st = st2.Compose(st)
		}
	}
	if err != nil {
		return s, err
	}
	if st.IsEmpty() {
		return s, nil
	}
	return st.Compose(s), nil
}

func applyTail(s types.Subst, tail types.Type) types.Type {
	if tail == nil {
		return nil
	}
	t := s.Apply(tail)
	if r, ok := t.(*types.Row); ok && r.Fields.Len() == 0 {
		return r.Tail
	}
	return t
}

func pick(s types.Subst, r *types.Row, labels []string) types.FieldMap {
	b := types.NewFieldMapBuilder()
	for _, label := range labels {
		t, _ := r.Fields.Get(label)
		b.Set(label, s.Apply(t))
	}
	return b.Build()
}

func (u *unifier) unifyUnions(a, b *types.Union) (types.Subst, *errtree.Tree) {
	s := types.EmptySubst()
	if a.Tag != b.Tag || len(a.Records) != len(b.Records) {
		return s, u.mismatch(a, b)
	}
	for _, ra := range a.Records {
		rb, ok := b.Case(ra.TagValue)
		if !ok {
			return s, errtree.Wrap(u.mismatch(a, b), "union lacks the case "+strconv.Quote(ra.TagValue), u.refs...)
		}
		sr, err := u.unifyRows(s.Apply(ra.Row).(*types.Row), s.Apply(rb).(*types.Row))
		if err != nil {
			return s, errtree.Wrap(err, "mismatch in case "+strconv.Quote(ra.TagValue), u.refs...)
		}
		s = sr.Compose(s)
	}
	return s, nil
}
