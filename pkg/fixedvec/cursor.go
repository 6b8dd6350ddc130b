package fixedvec

// Cursor is a non-owning random-access position inside a vector's storage.
// Cursors are plain values: arithmetic methods return a moved copy rather
// than mutating the receiver, so they compose the way pointer arithmetic
// does. A cursor stays coherent only until the owning vector changes length
// or moves elements; after that it must be re-obtained.
//
// Comparisons and Distance are only meaningful between two cursors obtained
// from the same vector.
type Cursor[T any] struct {
	slots []T
	idx   int
}

// Valid reports whether the cursor addresses a slot inside the storage
// block. It says nothing about whether that slot is live.
func (c Cursor[T]) Valid() bool {
	return c.idx >= 0 && c.idx < len(c.slots)
}

// Index returns the slot index the cursor addresses.
func (c Cursor[T]) Index() int {
	return c.idx
}

// Get returns the element under the cursor.
func (c Cursor[T]) Get() T {
	return c.slots[c.idx]
}

// Ref returns the address of the element under the cursor.
func (c Cursor[T]) Ref() *T {
	return &c.slots[c.idx]
}

// Set assigns into the slot under the cursor, which must be live.
func (c Cursor[T]) Set(v T) {
	c.slots[c.idx] = v
}

// At returns the element off steps further along the traversal.
func (c Cursor[T]) At(off int) T {
	return c.slots[c.idx+off]
}

// Next returns the cursor advanced by one slot.
func (c Cursor[T]) Next() Cursor[T] {
	c.idx++
	return c
}

// Prev returns the cursor retreated by one slot.
func (c Cursor[T]) Prev() Cursor[T] {
	c.idx--
	return c
}

// Add returns the cursor advanced by n slots.
func (c Cursor[T]) Add(n int) Cursor[T] {
	c.idx += n
	return c
}

// Sub returns the cursor retreated by n slots.
func (c Cursor[T]) Sub(n int) Cursor[T] {
	c.idx -= n
	return c
}

// Equal reports whether both cursors address the same slot.
func (c Cursor[T]) Equal(o Cursor[T]) bool {
	return c.idx == o.idx
}

// Less reports whether c addresses a slot before o's.
func (c Cursor[T]) Less(o Cursor[T]) bool {
	return c.idx < o.idx
}

// Compare returns -1, 0, or +1 ordering c against o by slot address.
func (c Cursor[T]) Compare(o Cursor[T]) int {
	switch {
	case c.idx < o.idx:
		return -1
	case c.idx > o.idx:
		return 1
	default:
		return 0
	}
}

// Distance returns the number of forward steps from c to o, so
// Begin().Distance(End()) equals Len().
func (c Cursor[T]) Distance(o Cursor[T]) int {
	return o.idx - c.idx
}

// ReverseCursor adapts a Cursor so that advancing walks toward the front of
// the vector. Comparison, offset, and distance are all defined on the
// wrapped slot index, not the logical reverse position: two reverse cursors
// over the same vector order consistently with reverse-traversal progress
// when read through the adaptor, and REnd sorts strictly before RBegin for
// any non-empty vector.
type ReverseCursor[T any] struct {
	base Cursor[T]
}

// Base returns the forward cursor the adaptor wraps.
func (r ReverseCursor[T]) Base() Cursor[T] {
	return r.base
}

// Valid reports whether the wrapped index addresses a slot inside the
// storage block. REnd is never valid.
func (r ReverseCursor[T]) Valid() bool {
	return r.base.Valid()
}

// Index returns the wrapped slot index.
func (r ReverseCursor[T]) Index() int {
	return r.base.idx
}

// Get returns the element under the cursor.
func (r ReverseCursor[T]) Get() T {
	return r.base.Get()
}

// Ref returns the address of the element under the cursor.
func (r ReverseCursor[T]) Ref() *T {
	return r.base.Ref()
}

// Set assigns into the slot under the cursor, which must be live.
func (r ReverseCursor[T]) Set(v T) {
	r.base.Set(v)
}

// At returns the element off steps further along the reverse traversal,
// i.e. off slots below the wrapped index.
func (r ReverseCursor[T]) At(off int) T {
	return r.base.slots[r.base.idx-off]
}

// Next returns the cursor advanced one step toward the front.
func (r ReverseCursor[T]) Next() ReverseCursor[T] {
	r.base.idx--
	return r
}

// Prev returns the cursor retreated one step toward the back.
func (r ReverseCursor[T]) Prev() ReverseCursor[T] {
	r.base.idx++
	return r
}

// Add returns the cursor advanced by n reverse steps.
func (r ReverseCursor[T]) Add(n int) ReverseCursor[T] {
	r.base.idx -= n
	return r
}

// Sub returns the cursor retreated by n reverse steps.
func (r ReverseCursor[T]) Sub(n int) ReverseCursor[T] {
	r.base.idx += n
	return r
}

// Equal reports whether both cursors wrap the same slot.
func (r ReverseCursor[T]) Equal(o ReverseCursor[T]) bool {
	return r.base.idx == o.base.idx
}

// Less orders by the wrapped slot index, matching forward address order.
func (r ReverseCursor[T]) Less(o ReverseCursor[T]) bool {
	return r.base.idx < o.base.idx
}

// Compare returns -1, 0, or +1 ordering r against o by wrapped slot index.
func (r ReverseCursor[T]) Compare(o ReverseCursor[T]) int {
	return r.base.Compare(o.base)
}

// Distance returns the number of reverse steps from r to o, so
// RBegin().Distance(REnd()) equals Len().
func (r ReverseCursor[T]) Distance(o ReverseCursor[T]) int {
	return r.base.idx - o.base.idx
}

// Begin returns a cursor on slot 0. For an empty vector it equals End.
func (v *Vector[T]) Begin() Cursor[T] {
	return Cursor[T]{slots: v.storage.slots, idx: 0}
}

// End returns a cursor one past the last live slot. Never dereferenced.
func (v *Vector[T]) End() Cursor[T] {
	return Cursor[T]{slots: v.storage.slots, idx: v.length}
}

// RBegin returns a reverse cursor on the last live slot. For an empty
// vector it equals REnd.
func (v *Vector[T]) RBegin() ReverseCursor[T] {
	return ReverseCursor[T]{base: Cursor[T]{slots: v.storage.slots, idx: v.length - 1}}
}

// REnd returns a reverse cursor one reverse step past the first slot, at
// wrapped index -1. Never dereferenced.
func (v *Vector[T]) REnd() ReverseCursor[T] {
	return ReverseCursor[T]{base: Cursor[T]{slots: v.storage.slots, idx: -1}}
}
