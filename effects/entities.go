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
	"cmp"
	"strings"

	"github.com/hashicorp/go-set/v3"

	"github.com/wdamron/tntc/ir"
)

// StateVar is a concrete reference to a declared state variable.
type StateVar struct {
	Name string
	Ref  ir.ID
}

func compareStateVars(a, b StateVar) int {
	if c := cmp.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	return cmp.Compare(a.Ref, b.Ref)
}

// Entities is a set of concrete state variables and entity-variables. Entities values are
// immutable; operations return new sets.
//
// A set may also carry the temporal-operator mark, printed as `*`. The mark is concrete: it
// unifies like a state variable and survives substitution and union, so an effect remains
// temporal even when the temporal formula mentions no state variable.
//
// The zero value is the empty set.
type Entities struct {
	vars     *set.TreeSet[StateVar]
	evars    *set.TreeSet[int]
	temporal bool
}

// NoEntities is the empty set of entities.
var NoEntities = Entities{}

// TemporalOperator is the set holding only the temporal-operator mark.
var TemporalOperator = Entities{temporal: true}

// NewEntities creates a set of entities.
func NewEntities(vars []StateVar, evars []int) Entities {
	var e Entities
	if len(vars) > 0 {
		e.vars = set.TreeSetFrom[StateVar](vars, compareStateVars)
	}
	if len(evars) > 0 {
		e.evars = set.TreeSetFrom[int](evars, cmp.Compare[int])
	}
	return e
}

// StateVars creates a set of concrete state variables.
func StateVars(vars ...StateVar) Entities { return NewEntities(vars, nil) }

// EntityVars creates a set of entity-variables.
func EntityVars(ids ...int) Entities { return NewEntities(nil, ids) }

// IsEmpty reports whether the set contains neither state variables, entity-variables, nor the
// temporal-operator mark.
func (e Entities) IsEmpty() bool { return !e.HasConcrete() && !e.HasVars() }

// HasTemporalOperator reports whether the set carries the temporal-operator mark.
func (e Entities) HasTemporalOperator() bool { return e.temporal }

// HasConcrete reports whether the set contains a state variable or the temporal-operator mark.
func (e Entities) HasConcrete() bool { return e.temporal || e.HasStateVars() }

// HasStateVars reports whether the set contains a concrete state variable.
func (e Entities) HasStateVars() bool { return e.vars != nil && !e.vars.Empty() }

// HasVars reports whether the set contains an entity-variable.
func (e Entities) HasVars() bool { return e.evars != nil && !e.evars.Empty() }

// IsVarsOnly reports whether the set contains entity-variables and nothing concrete.
func (e Entities) IsVarsOnly() bool { return e.HasVars() && !e.HasConcrete() }

// StateVars returns the concrete state variables in sorted order.
func (e Entities) StateVars() []StateVar {
	if e.vars == nil {
		return nil
	}
	return e.vars.Slice()
}

// Names returns the names of the concrete state variables in sorted order.
func (e Entities) Names() []string {
	vars := e.StateVars()
	names := make([]string, len(vars))
	for i, v := range vars {
		names[i] = v.Name
	}
	return names
}

// Vars returns the entity-variables in ascending order.
func (e Entities) Vars() []int {
	if e.evars == nil {
		return nil
	}
	return e.evars.Slice()
}

// ContainsVar reports whether the set contains the entity-variable id.
func (e Entities) ContainsVar(id int) bool { return e.evars != nil && e.evars.Contains(id) }

// Union returns the union of e and o.
func (e Entities) Union(o Entities) Entities {
	if o.IsEmpty() {
		return e
	}
	if e.IsEmpty() {
		return o
	}
	u := NewEntities(append(e.StateVars(), o.StateVars()...), append(e.Vars(), o.Vars()...))
	u.temporal = e.temporal || o.temporal
	return u
}

// WithoutVars returns e without the entity-variables of o.
func (e Entities) WithoutVars(o Entities) Entities {
	if !o.HasVars() || !e.HasVars() {
		return e
	}
	var evars []int
	for _, id := range e.Vars() {
		if !o.ContainsVar(id) {
			evars = append(evars, id)
		}
	}
	w := NewEntities(e.StateVars(), evars)
	w.temporal = e.temporal
	return w
}

// WithoutConcrete returns e without the state variables and the temporal-operator mark of o.
func (e Entities) WithoutConcrete(o Entities) Entities {
	if !o.HasConcrete() || !e.HasConcrete() {
		return e
	}
	var vars []StateVar
	for _, v := range e.StateVars() {
		if o.vars == nil || !o.vars.Contains(v) {
			vars = append(vars, v)
		}
	}
	w := NewEntities(vars, e.Vars())
	w.temporal = e.temporal && !o.temporal
	return w
}

// Equal reports whether e and o contain the same entities.
func (e Entities) Equal(o Entities) bool {
	if e.temporal != o.temporal {
		return false
	}
	a, b := e.StateVars(), o.StateVars()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	av, bv := e.Vars(), o.Vars()
	if len(av) != len(bv) {
		return false
	}
	for i := range av {
		if av[i] != bv[i] {
			return false
		}
	}
	return true
}

func (e Entities) String() string {
	var sb strings.Builder
	entitiesString(&sb, e, func(id int) string { return "v" + itoa(id) })
	return sb.String()
}

func entitiesString(sb *strings.Builder, e Entities, varName func(int) string) {
	i := 0
	for _, v := range e.StateVars() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('\'')
		sb.WriteString(v.Name)
		sb.WriteByte('\'')
		i++
	}
	if e.temporal {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('*')
		i++
	}
	for _, id := range e.Vars() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(varName(id))
		i++
	}
}
