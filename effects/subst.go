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
	"github.com/hashicorp/go-set/v3"

	"github.com/wdamron/tntc/internal/subst"
)

type effectAlgebra struct{}
type entityAlgebra struct{}

var (
	// EffectAlgebra substitutes effect-variables within effects.
	EffectAlgebra subst.Algebra[Effect] = effectAlgebra{}
	// EntityAlgebra substitutes entity-variables within sets of entities.
	EntityAlgebra subst.Algebra[Entities] = entityAlgebra{}
)

func (effectAlgebra) Substitute(e Effect, lookup func(int) (Effect, bool)) Effect {
	switch e := e.(type) {
	case *Var:
		if bound, ok := lookup(e.Id); ok {
			return bound
		}
		return e
	case *Arrow:
		params := make([]Effect, len(e.Params))
		for i, param := range e.Params {
			params[i] = effectAlgebra{}.Substitute(param, lookup)
		}
		return &Arrow{Params: params, Result: effectAlgebra{}.Substitute(e.Result, lookup)}
	}
	return e
}

func (effectAlgebra) Vars(e Effect, visit func(int)) {
	switch e := e.(type) {
	case *Var:
		visit(e.Id)
	case *Arrow:
		for _, param := range e.Params {
			effectAlgebra{}.Vars(param, visit)
		}
		effectAlgebra{}.Vars(e.Result, visit)
	}
}

func (entityAlgebra) Substitute(e Entities, lookup func(int) (Entities, bool)) Entities {
	if !e.HasVars() {
		return e
	}
	var evars []int
	vars, temporal := e.StateVars(), e.temporal
	for _, id := range e.Vars() {
		bound, ok := lookup(id)
		if !ok {
			evars = append(evars, id)
			continue
		}
		vars = append(vars, bound.StateVars()...)
		evars = append(evars, bound.Vars()...)
		temporal = temporal || bound.temporal
	}
	res := NewEntities(vars, evars)
	res.temporal = temporal
	return res
}

func (entityAlgebra) Vars(e Entities, visit func(int)) {
	for _, id := range e.Vars() {
		visit(id)
	}
}

// MapEntities rebuilds e with f applied to each component of each concrete effect.
func MapEntities(e Effect, f func(Entities) Entities) Effect {
	switch e := e.(type) {
	case *Concrete:
		return &Concrete{Reads: f(e.Reads), Updates: f(e.Updates), Temporal: f(e.Temporal)}
	case *Arrow:
		params := make([]Effect, len(e.Params))
		for i, param := range e.Params {
			params[i] = MapEntities(param, f)
		}
		return &Arrow{Params: params, Result: MapEntities(e.Result, f)}
	}
	return e
}

func visitEntityVars(e Effect, visit func(int)) {
	switch e := e.(type) {
	case *Concrete:
		for _, ents := range [...]Entities{e.Reads, e.Updates, e.Temporal} {
			for _, id := range ents.Vars() {
				visit(id)
			}
		}
	case *Arrow:
		for _, param := range e.Params {
			visitEntityVars(param, visit)
		}
		visitEntityVars(e.Result, visit)
	}
}

// Substitution binds effect-variables to effects and entity-variables to sets of entities.
type Substitution struct {
	Effects  subst.Subst[Effect]
	Entities subst.Subst[Entities]
}

// EmptySubstitution returns a substitution without bindings.
func EmptySubstitution() Substitution {
	return Substitution{Effects: subst.Empty[Effect](EffectAlgebra), Entities: subst.Empty[Entities](EntityAlgebra)}
}

// IsEmpty reports whether s has no bindings.
func (s Substitution) IsEmpty() bool { return s.Effects.IsEmpty() && s.Entities.IsEmpty() }

// BindEffect returns a copy of s with the effect-variable id bound to e.
func (s Substitution) BindEffect(id int, e Effect) Substitution {
	return Substitution{Effects: s.Effects.Bind(id, e), Entities: s.Entities}
}

// BindEntities returns a copy of s with the entity-variable id bound to e.
func (s Substitution) BindEntities(id int, e Entities) Substitution {
	return Substitution{Effects: s.Effects, Entities: s.Entities.Bind(id, e)}
}

// Apply resolves every effect-variable and entity-variable of e. Applying the result a second
// time is a no-op.
func (s Substitution) Apply(e Effect) Effect {
	e = s.Effects.Apply(e)
	if s.Entities.IsEmpty() {
		return e
	}
	return MapEntities(e, s.Entities.Apply)
}

// ApplyEntities resolves every entity-variable of e.
func (s Substitution) ApplyEntities(e Entities) Entities { return s.Entities.Apply(e) }

// Compose returns s ∘ earlier.
func (s Substitution) Compose(earlier Substitution) Substitution {
	return Substitution{
		Effects:  s.Effects.Compose(earlier.Effects),
		Entities: s.Entities.Compose(earlier.Entities),
	}
}

// FreeVars returns the effect-variables and entity-variables of e after applying s.
func (s Substitution) FreeVars(e Effect) (effectVars, entityVars *set.Set[int]) {
	e = s.Apply(e)
	effectVars, entityVars = set.New[int](4), set.New[int](4)
	EffectAlgebra.Vars(e, func(id int) { effectVars.Insert(id) })
	visitEntityVars(e, func(id int) { entityVars.Insert(id) })
	return effectVars, entityVars
}

// OccursEffect reports whether the effect-variable id occurs in e after applying s.
func (s Substitution) OccursEffect(id int, e Effect) bool { return s.Effects.Occurs(id, e) }
