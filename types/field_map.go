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

// FieldMap contains immutable mappings from record labels to types. Entries are sorted by label.
type FieldMap struct {
	m *immutable.SortedMap
}

// Create a FieldMap from unscoped labels.
func NewFieldMap(m map[string]Type) FieldMap {
	b := NewFieldMapBuilder()
	for label, t := range m {
		b.Set(label, t)
	}
	return b.Build()
}

// Create a FieldMap with a single entry.
func SingletonFieldMap(label string, t Type) FieldMap {
	return FieldMap{emptyMap.Set(label, t)}
}

func (m FieldMap) imm() *immutable.SortedMap {
	if m.m == nil {
		return emptyMap
	}
	return m.m
}

// Get the number of entries in the map.
func (m FieldMap) Len() int { return m.imm().Len() }

// Get the type for a label.
func (m FieldMap) Get(label string) (Type, bool) {
	t, ok := m.imm().Get(label)
	if !ok {
		return nil, false
	}
	return t.(Type), true
}

// Set returns a new map with label bound to t. The receiver is not modified.
func (m FieldMap) Set(label string, t Type) FieldMap {
	return FieldMap{m.imm().Set(label, t)}
}

// Labels returns the labels of the map, in sorted order.
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
	iter := m.imm().Iterator()
	for !iter.Done() {
		k, v := iter.Next()
		if !f(k.(string), v.(Type)) {
			return
		}
	}
}

// Convert the map to a builder for modification, without mutating the existing map.
func (m FieldMap) Builder() FieldMapBuilder {
	return FieldMapBuilder{immutable.NewSortedMapBuilder(m.imm())}
}

// FieldMapBuilder enables in-place updates of a map before finalization.
type FieldMapBuilder struct {
	b *immutable.SortedMapBuilder
}

func NewFieldMapBuilder() FieldMapBuilder {
	return FieldMapBuilder{immutable.NewSortedMapBuilder(emptyMap)}
}

// Get the number of entries in the builder.
func (b FieldMapBuilder) Len() int { return b.b.Len() }

// Has reports whether label is already present in the builder.
func (b FieldMapBuilder) Has(label string) bool {
	_, ok := b.b.Get(label)
	return ok
}

// Set the type for the given label in the builder.
func (b FieldMapBuilder) Set(label string, t Type) FieldMapBuilder {
	b.b.Set(label, t)
	return b
}

// Finalize the builder into an immutable map.
func (b FieldMapBuilder) Build() FieldMap {
	return FieldMap{b.b.Map()}
}
