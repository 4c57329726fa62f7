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

// Package effects infers which state variables each expression reads and updates, and whether
// it contains temporal operators.
package effects

import "strconv"

// Effect is the base interface for all effects.
type Effect interface {
	EffectName() string
}

func (e *Concrete) EffectName() string { return "Concrete" }
func (e *Arrow) EffectName() string    { return "Arrow" }
func (e *Var) EffectName() string      { return "Var" }

// Concrete effect over sets of entities: `Read['x'] & Update['y'] & Temporal['z']`.
//
// All components empty denotes the pure effect. Updating an entity implies reading it; see
// AllReads.
type Concrete struct {
	Reads    Entities
	Updates  Entities
	Temporal Entities
}

// Operator effect: `(Read[r]) => Read[r] & Update['x']`
type Arrow struct {
	Params []Effect
	Result Effect
}

// Effect-variable
type Var struct {
	Id int
}

// Pure returns the effect without entities.
func Pure() *Concrete { return &Concrete{} }

// IsPure reports whether the effect has no entities in any component.
func (e *Concrete) IsPure() bool {
	return e.Reads.IsEmpty() && e.Updates.IsEmpty() && e.Temporal.IsEmpty()
}

// AllReads returns the entities read by the effect, including those it updates.
func (e *Concrete) AllReads() Entities { return e.Reads.Union(e.Updates) }

// IsTemporal reports whether the effect contains a temporal operator.
func (e *Concrete) IsTemporal() bool { return e.Temporal.HasConcrete() }

// HasUpdates reports whether the effect updates any entity.
func (e *Concrete) HasUpdates() bool { return !e.Updates.IsEmpty() }

// Union returns the component-wise union of e and o.
func (e *Concrete) Union(o *Concrete) *Concrete {
	return &Concrete{
		Reads:    e.Reads.Union(o.Reads),
		Updates:  e.Updates.Union(o.Updates),
		Temporal: e.Temporal.Union(o.Temporal),
	}
}

// Entities returns the union of all components.
func (e *Concrete) Entities() Entities { return e.Reads.Union(e.Updates).Union(e.Temporal) }

// ResultOf returns the effect produced by evaluating e: the result of an arrow, or e itself.
func ResultOf(e Effect) Effect {
	for {
		arrow, ok := e.(*Arrow)
		if !ok {
			return e
		}
		e = arrow.Result
	}
}

func itoa(i int) string { return strconv.Itoa(i) }
