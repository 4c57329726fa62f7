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

package effects

import (
	"strconv"

	"github.com/wdamron/tntc/errtree"
	"github.com/wdamron/tntc/ir"
)

// unifier computes unifiers of effects. Unlike types, unification of concrete effects is not
// equality: entity-variables absorb the entities of the other side, and two sets of concrete
// state variables are always compatible.
type unifier struct {
	refs []ir.ID
}

// Unify extends s with a unifier of expected and actual. Errors reference refs.
func Unify(s Substitution, expected, actual Effect, refs ...ir.ID) (Substitution, *errtree.Tree) {
	u := &unifier{refs: refs}
	return u.unify(s, expected, actual)
}

func (u *unifier) mismatch(a, b Effect, detail string) *errtree.Tree {
	msg := "expected " + EffectString(a) + ", found " + EffectString(b)
	if detail != "" {
		msg += ": " + detail
	}
	return errtree.New(errtree.EffectMismatch, msg, u.refs...)
}

// unify expected with actual, extending s.
func (u *unifier) unify(s Substitution, expected, actual Effect) (Substitution, *errtree.Tree) {
	expected, actual = s.Apply(expected), s.Apply(actual)

	ev, _ := expected.(*Var)
	av, _ := actual.(*Var)
	switch {
	case ev != nil && av != nil && ev.Id == av.Id:
		return s, nil
	case ev != nil:
		return u.bind(s, ev, actual)
	case av != nil:
		return u.bind(s, av, expected)
	}

	switch e := expected.(type) {
	case *Arrow:
		a, ok := actual.(*Arrow)
		if !ok {
			break
		}
		if len(e.Params) != len(a.Params) {
			return s, errtree.New(errtree.ArityMismatch,
				"expected an operator with "+strconv.Itoa(len(e.Params))+" parameters, found "+strconv.Itoa(len(a.Params)), u.refs...)
		}
		var err *errtree.Tree
		for i := range e.Params {
			if s, err = u.unify(s, e.Params[i], a.Params[i]); err != nil {
				return s, errtree.Wrap(err, "parameter "+strconv.Itoa(i+1)+" has an incompatible effect", u.refs...)
			}
		}
		if s, err = u.unify(s, e.Result, a.Result); err != nil {
			return s, errtree.Wrap(err, "the result has an incompatible effect", u.refs...)
		}
		return s, nil

	case *Concrete:
		if a, ok := actual.(*Concrete); ok {
			return u.unifyConcrete(s, e, a)
		}
	}
	return s, u.mismatch(expected, actual, "")
}

func (u *unifier) bind(s Substitution, v *Var, e Effect) (Substitution, *errtree.Tree) {
	if s.OccursEffect(v.Id, e) {
		return s, errtree.New(errtree.InfiniteType,
			"effect variable "+EffectString(v)+" occurs in "+EffectString(e), u.refs...)
	}
	return s.BindEffect(v.Id, e), nil
}

// fold moves the updates of e into its reads.
func fold(e *Concrete) *Concrete {
	return &Concrete{Reads: e.Reads.Union(e.Updates), Temporal: e.Temporal}
}

func (u *unifier) unifyConcrete(s Substitution, expected, actual *Concrete) (Substitution, *errtree.Tree) {
	// an update reaching a position which only reads is a read
	if expected.Updates.IsEmpty() && !actual.Updates.IsEmpty() {
		actual = fold(actual)
	} else if actual.Updates.IsEmpty() && expected.Updates.HasStateVars() {
		expected = fold(expected)
	}

	components := [...]struct {
		name             string
		expected, actual Entities
	}{
		{"reads", expected.Reads, actual.Reads},
		{"updates", expected.Updates, actual.Updates},
		{"temporal", expected.Temporal, actual.Temporal},
	}
	for _, c := range components {
		var ok bool
		if s, ok = unifyEntities(s, c.expected, c.actual); !ok {
			return s, u.mismatch(expected, actual, "incompatible "+c.name)
		}
	}
	return s, nil
}

// unifyEntities extends s so that both sets contain at least the entities of the other. It fails
// only when one side is empty and the other is concrete.
func unifyEntities(s Substitution, a, b Entities) (Substitution, bool) {
	a, b = s.ApplyEntities(a), s.ApplyEntities(b)
	switch {
	case a.Equal(b):
		return s, true
	case a.IsEmpty():
		return bindEmpty(s, b)
	case b.IsEmpty():
		return bindEmpty(s, a)
	case a.IsVarsOnly():
		return bindVars(s, a, b), true
	case b.IsVarsOnly():
		return bindVars(s, b, a), true
	}
	// both sides are concrete; the variables of each side absorb what the other adds
	s = bindMissing(s, a, b)
	a, b = s.ApplyEntities(a), s.ApplyEntities(b)
	return bindMissing(s, b, a), true
}

// bindMissing binds each entity-variable of vars to the entities of other which vars lacks.
func bindMissing(s Substitution, vars, other Entities) Substitution {
	missing := other.WithoutVars(vars).WithoutConcrete(vars)
	for _, id := range vars.Vars() {
		s = s.BindEntities(id, missing)
	}
	return s
}

// bindEmpty binds each entity-variable of e to the empty set. It fails when e contains a state
// variable or the temporal-operator mark.
func bindEmpty(s Substitution, e Entities) (Substitution, bool) {
	if e.HasConcrete() {
		return s, false
	}
	for _, id := range e.Vars() {
		s = s.BindEntities(id, NoEntities)
	}
	return s, true
}

// bindVars binds each entity-variable of vars to the entities of other.
func bindVars(s Substitution, vars, other Entities) Substitution {
	bound := other.WithoutVars(vars)
	for _, id := range vars.Vars() {
		s = s.BindEntities(id, bound)
	}
	return s
}
