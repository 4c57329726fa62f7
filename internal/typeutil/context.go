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

package typeutil

import (
	"github.com/wdamron/tntc/ir"
)

type stashed[S any] struct {
	id    ir.ID
	prev  S
	found bool
}

// Env maps declaration ids to schemes. Bindings introduced within a scope are stashed and
// restored when the scope is left. Monomorphic bindings (lambda parameters and non-generalized
// definitions) are tracked separately, since only they may contain free variables.
type Env[S any] struct {
	bindings map[ir.ID]S
	stash    []stashed[S]
	monos    []ir.ID

	// initial space:
	_stash [32]stashed[S]
	_monos [32]ir.ID
}

// NewEnv creates an empty environment.
func NewEnv[S any]() *Env[S] {
	env := &Env[S]{bindings: make(map[ir.ID]S, 64)}
	env.stash, env.monos = env._stash[:0], env._monos[:0]
	return env
}

// Reset removes all bindings.
func (env *Env[S]) Reset() {
	for k := range env.bindings {
		delete(env.bindings, k)
	}
	var zero stashed[S]
	for i := range env._stash {
		env._stash[i] = zero
	}
	env.stash, env.monos = env._stash[:0], env._monos[:0]
}

// Lookup returns the scheme bound to id.
func (env *Env[S]) Lookup(id ir.ID) (S, bool) {
	s, ok := env.bindings[id]
	return s, ok
}

// Assign binds id without stashing the previous binding.
func (env *Env[S]) Assign(id ir.ID, s S) { env.bindings[id] = s }

// Stash binds id, stashing the previous binding. Stashed bindings are restored by Unstash.
func (env *Env[S]) Stash(id ir.ID, s S) {
	prev, found := env.bindings[id]
	env.stash = append(env.stash, stashed[S]{id: id, prev: prev, found: found})
	env.bindings[id] = s
}

// StashMono binds id to a monomorphic scheme, stashing the previous binding.
func (env *Env[S]) StashMono(id ir.ID, s S) {
	env.Stash(id, s)
	env.monos = append(env.monos, id)
}

// Unstash restores the count most recently stashed bindings.
func (env *Env[S]) Unstash(count int) {
	if count <= 0 {
		return
	}
	stash := env.stash
	unstashed := 0
	for i := len(stash) - 1; unstashed < count && i >= 0; i, unstashed = i-1, unstashed+1 {
		entry := stash[i]
		if entry.found {
			env.bindings[entry.id] = entry.prev
		} else {
			delete(env.bindings, entry.id)
		}
		for j := len(env.monos) - 1; j >= 0; j-- {
			if env.monos[j] == entry.id {
				env.monos = append(env.monos[:j], env.monos[j+1:]...)
				break
			}
		}
	}
	env.stash = env.stash[:len(stash)-unstashed]
}

// Monos calls f for each monomorphic binding in scope.
func (env *Env[S]) Monos(f func(ir.ID, S)) {
	for _, id := range env.monos {
		f(id, env.bindings[id])
	}
}
