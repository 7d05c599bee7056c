package hmap

import "github.com/benbjohnson/immutable"

// A simple implementation of a mutable hash map.
// Useful when the key type cannot be used with Go's maps directly, and we
// want to avoid the overhead of immutable maps for state that is updated in
// place, such as the node-keyed state of a dominator tree.

// Uses linked lists to resolve hash collisions.

type node[K, V any] struct {
	key   K
	value V
	next  *node[K, V]
}

type Map[K, V any] struct {
	hasher immutable.Hasher[K]
	mp     map[uint32]*node[K, V]
	size   int
}

// Order of V and K are swapped since K can be inferred by the argument.
func NewMap[V, K any](hasher immutable.Hasher[K]) *Map[K, V] {
	return &Map[K, V]{
		hasher: hasher,
		mp:     make(map[uint32]*node[K, V]),
	}
}

func (m *Map[K, V]) Set(key K, value V) {
	h := m.hasher.Hash(key)
	if snode, found := m.mp[h]; !found {
		m.mp[h] = &node[K, V]{key, value, nil}
		m.size++
	} else {
		for {
			if m.hasher.Equal(key, snode.key) {
				snode.value = value
				return
			}

			if next := snode.next; next == nil {
				// Hash collision :(
				snode.next = &node[K, V]{key, value, nil}
				m.size++
				return
			} else {
				snode = next
			}
		}
	}
}

func (m *Map[K, V]) GetOk(key K) (res V, ok bool) {
	for node := m.mp[m.hasher.Hash(key)]; node != nil; node = node.next {
		if m.hasher.Equal(key, node.key) {
			return node.value, true
		}
	}

	return
}

func (m *Map[K, V]) Get(key K) V {
	v, _ := m.GetOk(key)
	return v
}

func (m *Map[K, V]) Contains(key K) bool {
	_, ok := m.GetOk(key)
	return ok
}

// Delete removes the mapping for the given key, if one exists.
func (m *Map[K, V]) Delete(key K) {
	h := m.hasher.Hash(key)
	var prev *node[K, V]
	for snode := m.mp[h]; snode != nil; snode = snode.next {
		if m.hasher.Equal(key, snode.key) {
			if prev == nil {
				if snode.next == nil {
					delete(m.mp, h)
				} else {
					m.mp[h] = snode.next
				}
			} else {
				prev.next = snode.next
			}
			m.size--
			return
		}
		prev = snode
	}
}

func (m *Map[K, V]) Len() int {
	return m.size
}

// ForEach calls the given function once for every key-value pair in the map.
// Iteration order is unspecified.
func (m *Map[K, V]) ForEach(f func(key K, value V)) {
	for _, snode := range m.mp {
		for ; snode != nil; snode = snode.next {
			f(snode.key, snode.value)
		}
	}
}
