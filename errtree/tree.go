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

// Package errtree provides structured diagnostics: trees of explanations which reference
// the ids of the offending nodes.
package errtree

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wdamron/tntc/ir"
)

// Tree is a diagnostic explaining a failure, with nested causes.
type Tree struct {
	Code    Code
	Message string
	// Location describes where the failure was detected, e.g. "inferring type of def f".
	Location string
	Refs     []ir.ID
	Children []*Tree
}

// New creates a diagnostic referencing the given nodes.
func New(code Code, msg string, refs ...ir.ID) *Tree {
	return &Tree{Code: code, Message: msg, Refs: refs}
}

// Newf creates a diagnostic with a formatted message.
func Newf(code Code, refs []ir.ID, format string, args ...interface{}) *Tree {
	return &Tree{Code: code, Message: fmt.Sprintf(format, args...), Refs: refs}
}

// Wrap creates a diagnostic explaining a failure caused by child. The code of the wrapping tree
// is inherited from the child, so that the root of a diagnostic names its root cause.
func Wrap(child *Tree, msg string, refs ...ir.ID) *Tree {
	return &Tree{Code: child.Code, Message: msg, Refs: refs, Children: []*Tree{child}}
}

// At returns t with its location set.
func (t *Tree) At(location string) *Tree {
	t.Location = location
	return t
}

// Error implements error.
func (t *Tree) Error() string { return t.Message }

// RootCause returns the innermost first child of t.
func (t *Tree) RootCause() *Tree {
	for len(t.Children) > 0 {
		t = t.Children[0]
	}
	return t
}

// AllRefs returns the refs of t and its descendants, in pre-order, without duplicates.
func (t *Tree) AllRefs() []ir.ID {
	seen := make(map[ir.ID]struct{})
	var refs []ir.ID
	t.Walk(func(n *Tree, _ int) {
		for _, id := range n.Refs {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				refs = append(refs, id)
			}
		}
	})
	return refs
}

// Walk calls f for t and each descendant, in pre-order, with its depth.
func (t *Tree) Walk(f func(*Tree, int)) { t.walk(f, 0) }

func (t *Tree) walk(f func(*Tree, int), depth int) {
	f(t, depth)
	for _, c := range t.Children {
		c.walk(f, depth+1)
	}
}

// String returns the indented, multi-line representation of the tree.
func (t *Tree) String() string {
	var sb strings.Builder
	t.Walk(func(n *Tree, depth int) {
		for i := 0; i < depth; i++ {
			sb.WriteString("  ")
		}
		if depth == 0 {
			sb.WriteByte('[')
			sb.WriteString(n.Code.ID)
			sb.WriteByte(' ')
			sb.WriteString(n.Code.Name)
			sb.WriteString("] ")
		}
		sb.WriteString(n.Message)
		if len(n.Refs) > 0 {
			sb.WriteString(" (")
			for i, id := range n.Refs {
				if i > 0 {
					sb.WriteString(", ")
				}
				sb.WriteByte('#')
				sb.WriteString(strconv.FormatUint(uint64(id), 10))
			}
			sb.WriteByte(')')
		}
		if n.Location != "" {
			sb.WriteString(" while ")
			sb.WriteString(n.Location)
		}
		sb.WriteByte('\n')
	})
	return sb.String()
}
