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

	"github.com/wdamron/tntc/internal/typeutil"
	"github.com/wdamron/tntc/types"
)

// generalize quantifies the variables of t which are not free in envFree. The substitution is
// applied to t before quantifying.
func (ti *Context) generalize(t types.Type, envFree *set.Set[int]) types.Scheme {
	t = ti.sub.Apply(t)
	return types.Scheme{Vars: typeutil.Generalize(ti.sub, t, envFree), Type: t}
}

// Generalize quantifies every variable of t.
func Generalize(t types.Type) types.Scheme {
	return types.Scheme{Vars: typeutil.Generalize(types.EmptySubst(), t, nil), Type: t}
}
