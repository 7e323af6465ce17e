package ptrqueue

import (
	"runtime"
	"testing"
)

// Benchmark_TryPushTryPop_Uncontended measures a push/pop pair from one goroutine.
func Benchmark_TryPushTryPop_Uncontended(b *testing.B) {
	q, err := New[item](1024)
	if err != nil {
		b.Fatal(err)
	}
	v := &item{}

	b.ResetTimer()
	b.ReportAllocs()

	for range b.N {
		if !q.TryPush(v) {
			b.Fatal("push failed")
		}
		if q.TryPop() == nil {
			b.Fatal("pop failed")
		}
	}
}

// Benchmark_TryPushTryPop_Parallel measures pairs issued from GOMAXPROCS goroutines.
func Benchmark_TryPushTryPop_Parallel(b *testing.B) {
	q, err := New[item](1024)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()

	b.RunParallel(func(pb *testing.PB) {
		v := &item{}
		for pb.Next() {
			for !q.TryPush(v) {
				runtime.Gosched()
			}
			for q.TryPop() == nil {
				runtime.Gosched()
			}
		}
	})
}
