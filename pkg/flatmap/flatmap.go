// Package flatmap implements an open-addressing hash map with linear
// probing: all entries live in one flat slot array, so lookups touch
// contiguous memory instead of chasing bucket pointers. Keys are unique,
// insert/find/delete are average O(1), and iteration order is unspecified.
//
// Hashing is pluggable so the map works for any comparable key type; the
// provided hashers are built on xxhash64.
package flatmap

import (
	"encoding/binary"
	"iter"

	"github.com/cespare/xxhash/v2"
)

// minTableSize is the smallest slot array allocated. Always a power of two
// so the probe sequence can mask instead of mod.
const minTableSize = 8

type slotState uint8

const (
	slotEmpty slotState = iota
	slotLive
	slotTombstone
)

type slot[K comparable, V any] struct {
	state slotState
	key   K
	value V
}

// Map is an open-addressing hash map from K to V. The zero value is not
// usable; construct instances with New. Not safe for concurrent use.
type Map[K comparable, V any] struct {
	hash  func(K) uint64
	slots []slot[K, V]

	// live counts slots holding an entry; used also counts tombstones,
	// since both lengthen probe chains.
	live int
	used int
}

// New creates an empty map using hash to place keys.
func New[K comparable, V any](hash func(K) uint64) *Map[K, V] {
	return &Map[K, V]{
		hash:  hash,
		slots: make([]slot[K, V], minTableSize),
	}
}

// locate probes for key. It returns the slot holding key and true, or the
// slot an insert of key should use (the first tombstone on the probe path,
// else the terminating empty slot) and false.
func (m *Map[K, V]) locate(key K) (int, bool) {
	mask := uint64(len(m.slots) - 1)
	i := m.hash(key) & mask
	insert := -1
	for {
		s := &m.slots[i]
		switch s.state {
		case slotEmpty:
			if insert >= 0 {
				return insert, false
			}
			return int(i), false
		case slotTombstone:
			if insert < 0 {
				insert = int(i)
			}
		case slotLive:
			if s.key == key {
				return int(i), true
			}
		}
		i = (i + 1) & mask
	}
}

// Put inserts or replaces the entry for key.
func (m *Map[K, V]) Put(key K, value V) {
	// Grow before the table passes 3/4 occupancy, counting tombstones:
	// probe chains terminate only at empty slots.
	if (m.used+1)*4 > len(m.slots)*3 {
		m.rehash(len(m.slots) * 2)
	}
	i, found := m.locate(key)
	s := &m.slots[i]
	if !found {
		if s.state == slotEmpty {
			m.used++
		}
		m.live++
	}
	s.state = slotLive
	s.key = key
	s.value = value
}

// Get returns the value stored for key.
func (m *Map[K, V]) Get(key K) (V, bool) {
	i, found := m.locate(key)
	if !found {
		var zero V
		return zero, false
	}
	return m.slots[i].value, true
}

// Contains reports whether key has an entry.
func (m *Map[K, V]) Contains(key K) bool {
	_, found := m.locate(key)
	return found
}

// Delete removes the entry for key, reporting whether one existed. The slot
// becomes a tombstone so probe chains through it stay intact; the key and
// value are zeroed so they cannot pin memory.
func (m *Map[K, V]) Delete(key K) bool {
	i, found := m.locate(key)
	if !found {
		return false
	}
	s := &m.slots[i]
	var zeroK K
	var zeroV V
	s.state = slotTombstone
	s.key = zeroK
	s.value = zeroV
	m.live--
	return true
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int {
	return m.live
}

// All returns a key/value sequence over the entries, in no particular
// order. Mutating the map during iteration is not supported.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for i := range m.slots {
			if m.slots[i].state != slotLive {
				continue
			}
			if !yield(m.slots[i].key, m.slots[i].value) {
				return
			}
		}
	}
}

func (m *Map[K, V]) rehash(size int) {
	old := m.slots
	m.slots = make([]slot[K, V], size)
	m.live = 0
	m.used = 0
	for i := range old {
		if old[i].state != slotLive {
			continue
		}
		j, _ := m.locate(old[i].key)
		m.slots[j] = old[i]
		m.live++
		m.used++
	}
}

// StringHasher hashes string keys with xxhash64.
func StringHasher(s string) uint64 {
	return xxhash.Sum64String(s)
}

// Uint64Hasher hashes a 64-bit key by running its fixed-width encoding
// through xxhash64, scattering dense key ranges across the table.
func Uint64Hasher(v uint64) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return xxhash.Sum64(buf[:])
}

// IntHasher hashes an int key via Uint64Hasher.
func IntHasher(v int) uint64 {
	return Uint64Hasher(uint64(v))
}
