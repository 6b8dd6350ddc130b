package fixedvec

import "reflect"

// slotStorage is the raw backing block for a Vector: exactly capacity slots,
// allocated once and never regrown. It hands out slot addresses and performs
// the two lifetime primitives, construct and destroy, but it never decides
// which slots are live; that bookkeeping belongs to the owning Vector.
type slotStorage[T any] struct {
	slots []T

	// zeroOnDestroy is false for pointer-free element types. A vacated slot
	// of such a type cannot pin anything for the collector, so destroy can
	// leave its stale bits in place. The slot is logically absent either way.
	zeroOnDestroy bool
}

func newSlotStorage[T any](capacity int) slotStorage[T] {
	return slotStorage[T]{
		slots:         make([]T, capacity),
		zeroOnDestroy: typeHoldsPointers(reflect.TypeOf((*T)(nil)).Elem()),
	}
}

// capacity returns the fixed slot count.
func (s *slotStorage[T]) capacity() int {
	return len(s.slots)
}

// ref returns the address of slot i. Callers guarantee 0 <= i < capacity;
// liveness is not checked here.
func (s *slotStorage[T]) ref(i int) *T {
	return &s.slots[i]
}

// construct places v into slot i, which must not currently be live.
func (s *slotStorage[T]) construct(i int, v T) {
	s.slots[i] = v
}

// destroy ends the lifetime of the element in slot i. Pointer-bearing slots
// are zeroed so the collector can reclaim whatever they referenced.
func (s *slotStorage[T]) destroy(i int) {
	if s.zeroOnDestroy {
		var zero T
		s.slots[i] = zero
	}
}

// typeHoldsPointers reports whether values of t can reference other memory.
func typeHoldsPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return false
	case reflect.Array:
		return t.Len() > 0 && typeHoldsPointers(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if typeHoldsPointers(t.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		// Strings, pointers, slices, maps, channels, funcs, interfaces.
		return true
	}
}
