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

package errtree

import "github.com/wdamron/tntc/ir"

// List accumulates diagnostics in the order they were reported.
type List []*Tree

// Add appends a diagnostic.
func (l *List) Add(t *Tree) {
	if t != nil {
		*l = append(*l, t)
	}
}

// Append appends every diagnostic of other.
func (l *List) Append(other List) { *l = append(*l, other...) }

// Len returns the number of diagnostics.
func (l List) Len() int { return len(l) }

// Empty reports whether no diagnostics were reported.
func (l List) Empty() bool { return len(l) == 0 }

// WithCode returns the diagnostics whose code matches.
func (l List) WithCode(code Code) List {
	var out List
	for _, t := range l {
		if t.Code == code {
			out = append(out, t)
		}
	}
	return out
}

// Referencing returns the diagnostics whose tree references id.
func (l List) Referencing(id ir.ID) List {
	var out List
	for _, t := range l {
		for _, ref := range t.AllRefs() {
			if ref == id {
				out = append(out, t)
				break
			}
		}
	}
	return out
}

// Codes returns the code names of each diagnostic, in order.
func (l List) Codes() []string {
	names := make([]string, len(l))
	for i, t := range l {
		names[i] = t.Code.Name
	}
	return names
}
