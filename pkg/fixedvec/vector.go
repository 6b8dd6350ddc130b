// Package fixedvec provides a fixed-capacity vector: an ordered, randomly
// accessible sequence whose maximum length is set at construction and whose
// backing storage is allocated exactly once. No operation ever reallocates,
// so element addresses are stable between mutations and every operation
// completes in time bounded by the capacity.
//
// Slots at indices [0, Len()) hold live elements; slots at [Len(), Cap())
// are logically absent and are never handed out through any accessor.
// Vectors holding resource-owning elements can register a per-element
// release hook (WithRelease) that runs exactly once for every element the
// vector drops; vectors of pointer-free element types skip all per-slot
// teardown work.
//
// The type is a plain value container with no internal synchronization.
// Callers that share a vector across goroutines must provide their own
// exclusion.
package fixedvec

import (
	"errors"
	"iter"
)

var (
	// ErrInvalidCapacity is returned when a constructor is given a negative
	// capacity.
	ErrInvalidCapacity = errors.New("fixedvec: negative capacity")

	// ErrFull is returned by mutators that would grow the length past the
	// fixed capacity.
	ErrFull = errors.New("fixedvec: vector is at capacity")

	// ErrEmpty is returned by operations that need at least one live element.
	ErrEmpty = errors.New("fixedvec: vector is empty")

	// ErrIndexRange is returned when an index or range falls outside the
	// live portion of the vector.
	ErrIndexRange = errors.New("fixedvec: index out of range")

	// ErrCapacityOverflow is returned when a source sequence is longer than
	// the destination's capacity. Cross-capacity copies and moves check this
	// at runtime on every call, whatever the two declared capacities are.
	ErrCapacityOverflow = errors.New("fixedvec: source length exceeds destination capacity")
)

// Vector is a fixed-capacity sequence of T. The zero value is not usable;
// construct instances with New, NewSize, Of, or NewFrom.
type Vector[T any] struct {
	storage slotStorage[T]
	length  int

	// release, when set, runs once for every element the vector drops:
	// clear, erase, shrink, overwrite, close. Pop is exempt because the
	// popped value's ownership transfers to the caller.
	release func(*T)
}

// Option configures a Vector at construction time.
type Option[T any] func(*Vector[T])

// WithRelease registers fn as the per-element release hook. It is the
// destructor analog for resource-owning element types: fn receives the
// address of each element the vector drops, exactly once per element.
func WithRelease[T any](fn func(*T)) Option[T] {
	return func(v *Vector[T]) {
		v.release = fn
	}
}

// New creates an empty vector that can hold up to capacity elements.
func New[T any](capacity int, opts ...Option[T]) (*Vector[T], error) {
	if capacity < 0 {
		return nil, ErrInvalidCapacity
	}
	v := &Vector[T]{storage: newSlotStorage[T](capacity)}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

// NewSize creates a vector holding n copies of value.
func NewSize[T any](capacity, n int, value T, opts ...Option[T]) (*Vector[T], error) {
	v, err := New(capacity, opts...)
	if err != nil {
		return nil, err
	}
	if err := v.Assign(n, value); err != nil {
		return nil, err
	}
	return v, nil
}

// Of creates a vector holding the given values in order.
func Of[T any](capacity int, values ...T) (*Vector[T], error) {
	v, err := New[T](capacity)
	if err != nil {
		return nil, err
	}
	if len(values) > capacity {
		return nil, ErrCapacityOverflow
	}
	for _, val := range values {
		v.storage.construct(v.length, val)
		v.length++
	}
	return v, nil
}

// NewFrom creates a vector with the given capacity holding a copy of src's
// elements. The source's runtime length is checked against the new capacity
// on every call; a smaller declared capacity on the source proves nothing
// about whether its contents fit.
func NewFrom[T any](capacity int, src *Vector[T], opts ...Option[T]) (*Vector[T], error) {
	v, err := New(capacity, opts...)
	if err != nil {
		return nil, err
	}
	if err := v.CopyFrom(src); err != nil {
		return nil, err
	}
	return v, nil
}

// Clone returns a same-capacity deep copy of v, including its release hook.
func (v *Vector[T]) Clone() *Vector[T] {
	out := &Vector[T]{
		storage: newSlotStorage[T](v.storage.capacity()),
		release: v.release,
	}
	for i := 0; i < v.length; i++ {
		out.storage.construct(i, *v.storage.ref(i))
	}
	out.length = v.length
	return out
}

// CopyFrom replaces v's contents with a copy of src's elements. Copying a
// vector into itself is a no-op. Returns ErrCapacityOverflow when src holds
// more elements than v can.
func (v *Vector[T]) CopyFrom(src *Vector[T]) error {
	if v == src {
		return nil
	}
	if src.length > v.storage.capacity() {
		return ErrCapacityOverflow
	}
	v.Clear()
	for i := 0; i < src.length; i++ {
		v.storage.construct(i, *src.storage.ref(i))
	}
	v.length = src.length
	return nil
}

// MoveFrom replaces v's contents with src's elements and leaves src empty.
// Ownership of the elements transfers wholesale, so src's release hook does
// not run. Moving a vector into itself is a no-op.
func (v *Vector[T]) MoveFrom(src *Vector[T]) error {
	if v == src {
		return nil
	}
	if src.length > v.storage.capacity() {
		return ErrCapacityOverflow
	}
	v.Clear()
	for i := 0; i < src.length; i++ {
		v.storage.construct(i, *src.storage.ref(i))
		src.storage.destroy(i)
	}
	v.length = src.length
	src.length = 0
	return nil
}

// Push appends val. Returns ErrFull when the vector is at capacity.
func (v *Vector[T]) Push(val T) error {
	if v.length == v.storage.capacity() {
		return ErrFull
	}
	v.storage.construct(v.length, val)
	v.length++
	return nil
}

// Emplace appends a zero element and lets init build it in place, avoiding a
// copy of large element types. A nil init leaves the zero value.
func (v *Vector[T]) Emplace(init func(*T)) error {
	if v.length == v.storage.capacity() {
		return ErrFull
	}
	slot := v.storage.ref(v.length)
	var zero T
	*slot = zero
	if init != nil {
		init(slot)
	}
	v.length++
	return nil
}

// Pop removes and returns the last element. Ownership transfers to the
// caller, so the release hook does not run on the popped value.
func (v *Vector[T]) Pop() (T, error) {
	var zero T
	if v.length == 0 {
		return zero, ErrEmpty
	}
	v.length--
	out := *v.storage.ref(v.length)
	v.storage.destroy(v.length)
	return out, nil
}

// Insert places val at index idx, shifting elements at idx and above one
// slot toward the end. idx may equal Len(), in which case Insert degenerates
// to Push: the value is constructed straight into the fresh slot and no
// shifting happens. Every other move of the shift is an assignment between
// two already-live slots, except the topmost, which constructs the previous
// last element into the newly exposed slot.
func (v *Vector[T]) Insert(idx int, val T) error {
	if v.length == v.storage.capacity() {
		return ErrFull
	}
	if idx < 0 || idx > v.length {
		return ErrIndexRange
	}
	if idx == v.length {
		v.storage.construct(idx, val)
		v.length++
		return nil
	}
	v.storage.construct(v.length, *v.storage.ref(v.length - 1))
	for i := v.length - 1; i > idx; i-- {
		*v.storage.ref(i) = *v.storage.ref(i - 1)
	}
	*v.storage.ref(idx) = val
	v.length++
	return nil
}

// Erase removes the element at idx, shifting the tail left by one.
func (v *Vector[T]) Erase(idx int) error {
	return v.EraseRange(idx, idx+1)
}

// EraseRange removes the elements in the half-open range [from, to),
// shifting trailing elements left to close the gap. The removed elements are
// released (in range order) before the shift overwrites them, and the
// vacated trailing slots are destroyed so nothing beyond the new length
// stays live.
func (v *Vector[T]) EraseRange(from, to int) error {
	if from < 0 || to > v.length || from > to {
		return ErrIndexRange
	}
	n := to - from
	if n == 0 {
		return nil
	}
	if v.release != nil {
		for i := from; i < to; i++ {
			v.release(v.storage.ref(i))
		}
	}
	for i := to; i < v.length; i++ {
		*v.storage.ref(i - n) = *v.storage.ref(i)
	}
	for i := v.length - n; i < v.length; i++ {
		v.storage.destroy(i)
	}
	v.length -= n
	return nil
}

// Resize sets the length to n. Growing constructs zero values into the new
// slots; shrinking releases and destroys the removed elements immediately
// rather than deferring their teardown to a later grow or Close.
func (v *Vector[T]) Resize(n int) error {
	if n < 0 {
		return ErrIndexRange
	}
	if n > v.storage.capacity() {
		return ErrCapacityOverflow
	}
	var zero T
	switch {
	case n > v.length:
		for i := v.length; i < n; i++ {
			v.storage.construct(i, zero)
		}
	case n < v.length:
		for i := n; i < v.length; i++ {
			v.releaseAndDestroy(i)
		}
	}
	v.length = n
	return nil
}

// Assign replaces the contents with n copies of value.
func (v *Vector[T]) Assign(n int, value T) error {
	if n < 0 {
		return ErrIndexRange
	}
	if n > v.storage.capacity() {
		return ErrCapacityOverflow
	}
	v.Clear()
	for i := 0; i < n; i++ {
		v.storage.construct(i, value)
	}
	v.length = n
	return nil
}

// Clear releases and destroys every live element and sets the length to 0.
// For pointer-free element types with no release hook there is no per-slot
// work to do and only the length changes.
func (v *Vector[T]) Clear() {
	if v.release == nil && !v.storage.zeroOnDestroy {
		v.length = 0
		return
	}
	for i := 0; i < v.length; i++ {
		v.releaseAndDestroy(i)
	}
	v.length = 0
}

// Close tears down every live element. The emptied vector remains usable;
// Close exists so resource-owning vectors have an explicit end of life.
func (v *Vector[T]) Close() {
	v.Clear()
}

func (v *Vector[T]) releaseAndDestroy(i int) {
	if v.release != nil {
		v.release(v.storage.ref(i))
	}
	v.storage.destroy(i)
}

// Len returns the number of live elements.
func (v *Vector[T]) Len() int {
	return v.length
}

// Cap returns the fixed capacity.
func (v *Vector[T]) Cap() int {
	return v.storage.capacity()
}

// Empty reports whether the vector holds no elements.
func (v *Vector[T]) Empty() bool {
	return v.length == 0
}

// Full reports whether the length has reached the capacity.
func (v *Vector[T]) Full() bool {
	return v.length == v.storage.capacity()
}

// At returns the element at index i.
func (v *Vector[T]) At(i int) (T, error) {
	if i < 0 || i >= v.length {
		var zero T
		return zero, ErrIndexRange
	}
	return *v.storage.ref(i), nil
}

// MustAt is At for callers that have already established the index is live.
// It panics on a dead index the way slice indexing does.
func (v *Vector[T]) MustAt(i int) T {
	if i < 0 || i >= v.length {
		panic("fixedvec: index out of range")
	}
	return *v.storage.ref(i)
}

// Ref returns the address of the element at index i. The address is valid
// until the next length-changing or element-moving operation.
func (v *Vector[T]) Ref(i int) (*T, error) {
	if i < 0 || i >= v.length {
		return nil, ErrIndexRange
	}
	return v.storage.ref(i), nil
}

// Set replaces the element at index i. The previous occupant is released.
func (v *Vector[T]) Set(i int, val T) error {
	if i < 0 || i >= v.length {
		return ErrIndexRange
	}
	if v.release != nil {
		v.release(v.storage.ref(i))
	}
	*v.storage.ref(i) = val
	return nil
}

// Front returns the first element.
func (v *Vector[T]) Front() (T, error) {
	var zero T
	if v.length == 0 {
		return zero, ErrEmpty
	}
	return *v.storage.ref(0), nil
}

// Back returns the last element.
func (v *Vector[T]) Back() (T, error) {
	var zero T
	if v.length == 0 {
		return zero, ErrEmpty
	}
	return *v.storage.ref(v.length - 1), nil
}

// All returns a forward index/element sequence over the live elements.
func (v *Vector[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < v.length; i++ {
			if !yield(i, *v.storage.ref(i)) {
				return
			}
		}
	}
}

// Backward returns a back-to-front index/element sequence over the live
// elements.
func (v *Vector[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := v.length - 1; i >= 0; i-- {
			if !yield(i, *v.storage.ref(i)) {
				return
			}
		}
	}
}
