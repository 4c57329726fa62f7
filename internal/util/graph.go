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

// Package util contains small data structures shared by the analysis passes.
package util

// Graph is a directed graph over vertices 0..n-1, stored as successor lists. Analysis of
// definitions adds an edge from each dependency to its dependents.
type Graph [][]int

// NewGraph creates a graph of numVerts vertices without edges.
func NewGraph(numVerts int) Graph { return Graph(make([][]int, numVerts)) }

// AddEdge adds the edge from -> to, unless it is already present.
func (g Graph) AddEdge(from, to int) {
	if !g.HasEdge(from, to) {
		g[from] = append(g[from], to)
	}
}

// HasEdge reports whether the edge from -> to is present.
func (g Graph) HasEdge(from, to int) bool {
	for _, succ := range g[from] {
		if succ == to {
			return true
		}
	}
	return false
}

// SCC returns the strongly-connected components of g in topological order: a component is
// listed after every component with an edge into it. Definitions that refer to each other share
// a component. A vertex with a self-edge forms a component of one member; callers check
// HasEdge(v, v) to detect it.
func (g Graph) SCC() [][]int {
	t := tarjan{
		g:       g,
		order:   make([]int, len(g)),
		low:     make([]int, len(g)),
		onStack: make([]bool, len(g)),
	}
	for v := range g {
		if t.order[v] == 0 {
			t.visit(v)
		}
	}
	// visit emits sinks first
	comps := t.components
	for i, j := 0, len(comps)-1; i < j; i, j = i+1, j-1 {
		comps[i], comps[j] = comps[j], comps[i]
	}
	return comps
}

// tarjan holds the traversal state of Tarjan's algorithm. order[v] is the 1-based visit
// number of v, or 0 while v is unvisited.
type tarjan struct {
	g          Graph
	visited    int
	order, low []int
	onStack    []bool
	stack      []int
	components [][]int
}

func (t *tarjan) visit(v int) {
	t.visited++
	t.order[v], t.low[v] = t.visited, t.visited
	t.stack = append(t.stack, v)
	t.onStack[v] = true

	for _, dependent := range t.g[v] {
		switch {
		case t.order[dependent] == 0:
			t.visit(dependent)
			t.low[v] = min(t.low[v], t.low[dependent])
		case t.onStack[dependent]:
			t.low[v] = min(t.low[v], t.order[dependent])
		}
	}
	if t.low[v] != t.order[v] {
		return
	}

	// v roots a component: everything above it on the stack belongs to it
	var comp []int
	for {
		top := t.stack[len(t.stack)-1]
		t.stack = t.stack[:len(t.stack)-1]
		t.onStack[top] = false
		comp = append(comp, top)
		if top == v {
			break
		}
	}
	t.components = append(t.components, comp)
}
