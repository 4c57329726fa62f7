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

package subst

import (
	"github.com/benbjohnson/immutable"
	"github.com/hashicorp/go-set/v3"
)

// Algebra describes how substitutions reach the variables of one term sort.
type Algebra[T any] interface {
	// Substitute rebuilds t, replacing each variable for which lookup succeeds.
	// The replacement returned by lookup is already fully resolved.
	Substitute(t T, lookup func(id int) (T, bool)) T
	// Vars calls visit for each variable occurring in t.
	Vars(t T, visit func(id int))
}

// Subst is a persistent mapping from variable ids to terms of a single sort.
//
// Bindings are never mutated in place; Bind and Compose return new substitutions which share
// structure with their inputs.
type Subst[T any] struct {
	alg Algebra[T]
	m   *immutable.SortedMap
}

var emptyMap = immutable.NewSortedMap(nil)

// Empty returns a substitution without bindings.
func Empty[T any](alg Algebra[T]) Subst[T] { return Subst[T]{alg: alg, m: emptyMap} }

// Singleton returns a substitution binding id to t.
func Singleton[T any](alg Algebra[T], id int, t T) Subst[T] {
	return Subst[T]{alg: alg, m: emptyMap.Set(id, t)}
}

// Len returns the number of bindings.
func (s Subst[T]) Len() int {
	if s.m == nil {
		return 0
	}
	return s.m.Len()
}

// IsEmpty reports whether s has no bindings.
func (s Subst[T]) IsEmpty() bool { return s.Len() == 0 }

// Lookup returns the term bound to id, without resolving it further.
func (s Subst[T]) Lookup(id int) (T, bool) {
	var zero T
	if s.m == nil {
		return zero, false
	}
	v, ok := s.m.Get(id)
	if !ok {
		return zero, false
	}
	return v.(T), true
}

// Bind returns a copy of s with id bound to t. An existing binding for id is replaced.
func (s Subst[T]) Bind(id int, t T) Subst[T] {
	m := s.m
	if m == nil {
		m = emptyMap
	}
	return Subst[T]{alg: s.alg, m: m.Set(id, t)}
}

// Range calls f for each binding in ascending id order. If f returns false, iteration stops.
func (s Subst[T]) Range(f func(id int, t T) bool) {
	if s.m == nil {
		return
	}
	iter := s.m.Iterator()
	for !iter.Done() {
		k, v := iter.Next()
		if !f(k.(int), v.(T)) {
			return
		}
	}
}

// Apply resolves every variable of t through s, following chains of bindings until no bound
// variable remains. Applying the result a second time is a no-op.
func (s Subst[T]) Apply(t T) T {
	if s.IsEmpty() {
		return t
	}
	return s.alg.Substitute(t, s.resolve)
}

func (s Subst[T]) resolve(id int) (T, bool) {
	t, ok := s.Lookup(id)
	if !ok {
		return t, false
	}
	return s.Apply(t), true
}

// Compose returns s ∘ earlier: s is applied to the range of earlier, and bindings of s for
// variables not bound by earlier are added. Applying the composition is equivalent to applying
// earlier, then s.
func (s Subst[T]) Compose(earlier Subst[T]) Subst[T] {
	if s.IsEmpty() {
		return earlier
	}
	if earlier.IsEmpty() {
		return s
	}
	m := emptyMap
	earlier.Range(func(id int, t T) bool {
		m = m.Set(id, s.Apply(t))
		return true
	})
	s.Range(func(id int, t T) bool {
		if _, bound := m.Get(id); !bound {
			m = m.Set(id, t)
		}
		return true
	})
	alg := s.alg
	if alg == nil {
		alg = earlier.alg
	}
	return Subst[T]{alg: alg, m: m}
}

// Occurs reports whether the variable id occurs in t after applying s.
func (s Subst[T]) Occurs(id int, t T) bool {
	found := false
	s.alg.Vars(s.Apply(t), func(v int) {
		if v == id {
			found = true
		}
	})
	return found
}

// FreeVars returns the variables remaining in t after applying s.
func (s Subst[T]) FreeVars(t T) *set.Set[int] {
	vars := set.New[int](4)
	s.alg.Vars(s.Apply(t), func(v int) { vars.Insert(v) })
	return vars
}
