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

package types

import "sort"

// Scheme is a type universally quantified over type-variables and row-variables. Instantiating
// a scheme replaces each quantified variable with a fresh one.
type Scheme struct {
	Vars []int
	Type Type
}

// Mono returns a scheme which quantifies no variables.
func Mono(t Type) Scheme { return Scheme{Type: t} }

// IsMono reports whether the scheme quantifies no variables.
func (s Scheme) IsMono() bool { return len(s.Vars) == 0 }

// FreeVars returns the variables of the scheme's type which are not quantified.
func (s Scheme) FreeVars() []int {
	free := FreeVars(s.Type)
	for _, id := range s.Vars {
		free.Remove(id)
	}
	ids := free.Slice()
	sort.Ints(ids)
	return ids
}
