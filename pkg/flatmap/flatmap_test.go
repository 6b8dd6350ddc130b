package flatmap

import (
	"fmt"
	"testing"
)

func TestPutGetRoundTrip(t *testing.T) {
	m := New[string, int](StringHasher)
	m.Put("a", 1)
	m.Put("b", 2)
	m.Put("c", 3)

	if m.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", m.Len())
	}
	for key, want := range map[string]int{"a": 1, "b": 2, "c": 3} {
		got, ok := m.Get(key)
		if !ok || got != want {
			t.Errorf("Get(%q) = (%d, %v), want (%d, true)", key, got, ok, want)
		}
	}
	if _, ok := m.Get("missing"); ok {
		t.Error("Get of a missing key reported ok")
	}
}

func TestPutReplacesExistingKey(t *testing.T) {
	m := New[string, int](StringHasher)
	m.Put("k", 1)
	m.Put("k", 2)
	if m.Len() != 1 {
		t.Errorf("Len() after overwrite = %d, want 1", m.Len())
	}
	if got, _ := m.Get("k"); got != 2 {
		t.Errorf("Get after overwrite = %d, want 2", got)
	}
}

func TestDelete(t *testing.T) {
	m := New[string, int](StringHasher)
	m.Put("a", 1)
	m.Put("b", 2)

	if !m.Delete("a") {
		t.Error("Delete of an existing key returned false")
	}
	if m.Delete("a") {
		t.Error("second Delete of the same key returned true")
	}
	if m.Contains("a") {
		t.Error("deleted key still present")
	}
	if got, ok := m.Get("b"); !ok || got != 2 {
		t.Errorf("unrelated key damaged by Delete: Get(b) = (%d, %v)", got, ok)
	}
	if m.Len() != 1 {
		t.Errorf("Len() after Delete = %d, want 1", m.Len())
	}
}

func TestDeleteThenReinsert(t *testing.T) {
	m := New[string, int](StringHasher)
	m.Put("k", 1)
	m.Delete("k")
	m.Put("k", 9)
	if got, ok := m.Get("k"); !ok || got != 9 {
		t.Errorf("Get after reinsert = (%d, %v), want (9, true)", got, ok)
	}
	if m.Len() != 1 {
		t.Errorf("Len() after reinsert = %d, want 1", m.Len())
	}
}

func TestGrowthKeepsAllEntries(t *testing.T) {
	const n = 2000
	m := New[int, int](IntHasher)
	for i := 0; i < n; i++ {
		m.Put(i, i*i)
	}
	if m.Len() != n {
		t.Fatalf("Len() = %d, want %d", m.Len(), n)
	}
	for i := 0; i < n; i++ {
		got, ok := m.Get(i)
		if !ok || got != i*i {
			t.Fatalf("Get(%d) = (%d, %v), want (%d, true)", i, got, ok, i*i)
		}
	}
}

// A constant hasher forces every key onto one probe chain, exercising
// collision handling and tombstone traversal.
func TestCollidingHasher(t *testing.T) {
	m := New[string, int](func(string) uint64 { return 0 })
	keys := []string{"a", "b", "c", "d", "e"}
	for i, k := range keys {
		m.Put(k, i)
	}
	for i, k := range keys {
		if got, ok := m.Get(k); !ok || got != i {
			t.Errorf("Get(%q) = (%d, %v), want (%d, true)", k, got, ok, i)
		}
	}

	// Delete from the middle of the chain; later keys must stay reachable.
	m.Delete("b")
	for i, k := range keys {
		if k == "b" {
			continue
		}
		if got, ok := m.Get(k); !ok || got != i {
			t.Errorf("after Delete(b): Get(%q) = (%d, %v), want (%d, true)", k, got, ok, i)
		}
	}

	// Reinsert lands in the tombstone, not at the chain's end.
	m.Put("b", 42)
	if got, _ := m.Get("b"); got != 42 {
		t.Errorf("Get(b) after reinsert through tombstone = %d, want 42", got)
	}
}

func TestChurnThroughTombstones(t *testing.T) {
	m := New[string, int](StringHasher)
	for round := 0; round < 50; round++ {
		for i := 0; i < 40; i++ {
			m.Put(fmt.Sprintf("key-%d-%d", round, i), i)
		}
		for i := 0; i < 40; i++ {
			if !m.Delete(fmt.Sprintf("key-%d-%d", round, i)) {
				t.Fatalf("round %d: Delete(key-%d-%d) missed", round, round, i)
			}
		}
	}
	if m.Len() != 0 {
		t.Errorf("Len() after churn = %d, want 0", m.Len())
	}
	m.Put("final", 1)
	if got, ok := m.Get("final"); !ok || got != 1 {
		t.Errorf("Get(final) = (%d, %v), want (1, true)", got, ok)
	}
}

func TestAllVisitsEveryEntryOnce(t *testing.T) {
	m := New[int, string](IntHasher)
	for i := 0; i < 100; i++ {
		m.Put(i, fmt.Sprintf("v%d", i))
	}
	m.Delete(17)
	m.Delete(71)

	seen := make(map[int]int)
	for k, v := range m.All() {
		seen[k]++
		if want := fmt.Sprintf("v%d", k); v != want {
			t.Errorf("All yielded (%d, %q), want value %q", k, v, want)
		}
	}
	if len(seen) != 98 {
		t.Fatalf("All visited %d keys, want 98", len(seen))
	}
	for k, n := range seen {
		if n != 1 {
			t.Errorf("key %d visited %d times", k, n)
		}
	}
	if _, ok := seen[17]; ok {
		t.Error("All yielded a deleted key")
	}
}

func TestHashersDiffer(t *testing.T) {
	// Not a distribution test, just a sanity check that the provided hashers
	// are not degenerate.
	if StringHasher("a") == StringHasher("b") {
		t.Error("StringHasher collides on trivial input")
	}
	if Uint64Hasher(1) == Uint64Hasher(2) {
		t.Error("Uint64Hasher collides on trivial input")
	}
}
