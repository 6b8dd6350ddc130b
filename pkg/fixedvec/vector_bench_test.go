package fixedvec

import "testing"

func BenchmarkPushPop(b *testing.B) {
	v, _ := New[int](1024)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if v.Full() {
			v.Clear()
		}
		_ = v.Push(i)
	}
}

func BenchmarkInsertFront(b *testing.B) {
	v, _ := New[int](256)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if v.Full() {
			v.Clear()
		}
		_ = v.Insert(0, i)
	}
}

func BenchmarkReverseCursorWalk(b *testing.B) {
	v, _ := New[int](1024)
	for i := 0; i < 1024; i++ {
		_ = v.Push(i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sum := 0
		for r := v.RBegin(); !r.Equal(v.REnd()); r = r.Next() {
			sum += r.Get()
		}
		if sum == 0 {
			b.Fatal("unexpected zero sum")
		}
	}
}

func BenchmarkClearPointerFree(b *testing.B) {
	v, _ := New[int](1024)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = v.Resize(1024)
		v.Clear()
	}
}
