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

import (
	"github.com/benbjohnson/immutable"
)

var emptyMap = immutable.NewSortedMap(nil)

var EmptyFieldMap = FieldMap{emptyMap}

// FieldMap contains immutable mappings from labels to types. Labels are unique and sorted.
type FieldMap struct {
	m *immutable.SortedMap
}

func NewFieldMap() FieldMap { return FieldMap{emptyMap} }

// Create a FieldMap with a single entry.
func SingletonFieldMap(label string, t Type) FieldMap {
	return FieldMap{emptyMap.Set(label, t)}
}

// Create a FieldMap from a Go map.
func NewFlatFieldMap(m map[string]Type) FieldMap {
	b := NewFieldMapBuilder()
	for name, t := range m {
		b.Set(name, t)
	}
	return b.Build()
}

// Get the number of entries in the map.
func (m FieldMap) Len() int {
	if m.m == nil {
		return 0
	}
	return m.m.Len()
}

// Get the type for a label.
func (m FieldMap) Get(label string) (Type, bool) {
	if m.m == nil {
		return nil, false
	}
	t, ok := m.m.Get(label)
	if !ok {
		return nil, false
	}
	return t.(Type), true
}

// Set returns a copy of the map with label bound to t.
func (m FieldMap) Set(label string, t Type) FieldMap {
	imm := m.m
	if imm == nil {
		imm = emptyMap
	}
	return FieldMap{imm.Set(label, t)}
}

// Labels returns the labels of the map in sorted order.
func (m FieldMap) Labels() []string {
	labels := make([]string, 0, m.Len())
	m.Range(func(label string, _ Type) bool {
		labels = append(labels, label)
		return true
	})
	return labels
}

// Iterate over entries in the map, in sorted order.
// If f returns false, iteration will be stopped.
func (m FieldMap) Range(f func(string, Type) bool) {
	if m.m == nil {
		return
	}
	iter := m.m.Iterator()
	for !iter.Done() {
		k, v := iter.Next()
		if !f(k.(string), v.(Type)) {
			return
		}
	}
}

// Map returns a copy of the map with f applied to each type.
func (m FieldMap) Map(f func(Type) Type) FieldMap {
	b := NewFieldMapBuilder()
	m.Range(func(label string, t Type) bool {
		b.Set(label, f(t))
		return true
	})
	return b.Build()
}

// Convert the map to a builder for modification, without mutating the existing map.
func (m FieldMap) Builder() FieldMapBuilder {
	imm := m.m
	if imm == nil {
		imm = emptyMap
	}
	return FieldMapBuilder{imm}
}

// FieldMapBuilder enables incremental updates of a map before finalization.
type FieldMapBuilder struct {
	m *immutable.SortedMap
}

func NewFieldMapBuilder() FieldMapBuilder { return FieldMapBuilder{emptyMap} }

// Get the number of entries in the builder.
func (b FieldMapBuilder) Len() int { return b.m.Len() }

// Set the type for the given label in the builder.
func (b *FieldMapBuilder) Set(label string, t Type) *FieldMapBuilder {
	b.m = b.m.Set(label, t)
	return b
}

// Delete the given label and corresponding type from the builder.
func (b *FieldMapBuilder) Delete(label string) *FieldMapBuilder {
	b.m = b.m.Delete(label)
	return b
}

// Finalize the builder into an immutable map.
func (b FieldMapBuilder) Build() FieldMap {
	if b.m == nil {
		return EmptyFieldMap
	}
	return FieldMap{b.m}
}
