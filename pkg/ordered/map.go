// Package ordered provides an insertion-ordered map.
//
// Generated output must not depend on Go's randomized map iteration, so every
// container whose contents reach the rendered artifact is an ordered.Map.
package ordered

// Map is a map that remembers the order in which keys were first inserted.
// The zero value is not usable; create maps with New.
type Map[K comparable, V any] struct {
	keys   []K
	values map[K]V
}

// New creates an empty Map.
func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{values: make(map[K]V)}
}

// Set stores value under key. Overwriting an existing key keeps its position.
func (m *Map[K, V]) Set(key K, value V) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value stored under key.
func (m *Map[K, V]) Get(key K) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Map[K, V]) Has(key K) bool {
	_, ok := m.values[key]
	return ok
}

// Len returns the number of keys.
func (m *Map[K, V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in insertion order. The slice is a copy.
func (m *Map[K, V]) Keys() []K {
	if m == nil {
		return nil
	}
	out := make([]K, len(m.keys))
	copy(out, m.keys)
	return out
}

// Values returns the values in key insertion order.
func (m *Map[K, V]) Values() []V {
	if m == nil {
		return nil
	}
	out := make([]V, len(m.keys))
	for i, k := range m.keys {
		out[i] = m.values[k]
	}
	return out
}

// First returns the first inserted key and its value.
func (m *Map[K, V]) First() (K, V, bool) {
	var zk K
	var zv V
	if m.Len() == 0 {
		return zk, zv, false
	}
	k := m.keys[0]
	return k, m.values[k], true
}

// Each calls fn for every entry in insertion order until fn returns false.
func (m *Map[K, V]) Each(fn func(K, V) bool) {
	if m == nil {
		return
	}
	for _, k := range m.keys {
		if !fn(k, m.values[k]) {
			return
		}
	}
}
