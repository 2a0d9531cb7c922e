package keydir

import (
	"maps"
	"slices"

	"github.com/backbone81/walkv/internal/encoding"
)

// Map is an Index backed by a Go map. Lookups are the fastest of all indexes, listing keys needs a sort.
type Map struct {
	entries map[string]encoding.Value
}

// Map implements Index.
var _ Index = (*Map)(nil)

// NewMap creates an empty Map.
func NewMap() *Map {
	return &Map{
		entries: make(map[string]encoding.Value),
	}
}

func (m *Map) Get(key string) (encoding.Value, bool) {
	value, ok := m.entries[key]
	return value, ok
}

func (m *Map) Put(key string, value encoding.Value) {
	m.entries[key] = value
}

func (m *Map) Delete(key string) bool {
	if _, ok := m.entries[key]; !ok {
		return false
	}
	delete(m.entries, key)
	return true
}

func (m *Map) Len() int {
	return len(m.entries)
}

func (m *Map) Keys() []string {
	return slices.Sorted(maps.Keys(m.entries))
}
