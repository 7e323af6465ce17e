package alloc

import (
	"math/rand"
	"testing"
)

// Benchmark_Alloc_FreeLIFO benchmarks the common push/pop pattern where the most
// recent allocation is released first.
func Benchmark_Alloc_FreeLIFO(b *testing.B) {
	ba, err := New(1<<20, nil)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := range b.N {
		item, allocErr := ba.Alloc(int32(64 + (i%64)*2))
		if allocErr != nil {
			b.Fatal(allocErr)
		}
		if freeErr := ba.Free(item); freeErr != nil {
			b.Fatal(freeErr)
		}
	}
}

// Benchmark_Alloc_Fragmented benchmarks first-fit scans over a free list with many holes.
func Benchmark_Alloc_Fragmented(b *testing.B) {
	ba, err := New(1<<20, nil)
	if err != nil {
		b.Fatal(err)
	}

	// Punch 256 holes of 64 bytes separated by live blocks
	var holes []HeapItem
	for range 256 {
		h, _ := ba.Alloc(64)
		_, _ = ba.Alloc(64)
		holes = append(holes, h)
	}
	for _, h := range holes {
		_ = ba.Free(h)
	}

	rng := rand.New(rand.NewSource(7))

	b.ResetTimer()
	b.ReportAllocs()

	for range b.N {
		item, allocErr := ba.Alloc(int32(1 + rng.Intn(128)))
		if allocErr != nil {
			b.Fatal(allocErr)
		}
		if freeErr := ba.Free(item); freeErr != nil {
			b.Fatal(freeErr)
		}
	}
}
