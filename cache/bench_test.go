package cache

import (
	"testing"

	"github.com/jonwraymond/simcache/clock"
)

// BenchmarkTable_Hit measures a fresh lookup.
func BenchmarkTable_Hit(b *testing.B) {
	tbl := NewTable[int, float64](clock.Ticks(clock.NewManual()))
	tbl.Store(1, 21, DefaultIntervalTicks)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = tbl.TryGetFresh(1)
	}
}

// BenchmarkTable_Miss measures a lookup of an absent key.
func BenchmarkTable_Miss(b *testing.B) {
	tbl := NewTable[int, float64](clock.Ticks(clock.NewManual()))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = tbl.TryGetFresh(i)
	}
}

// BenchmarkTable_FetchOrCompute_Steady measures the steady state of a
// working set that fits in one refresh window.
func BenchmarkTable_FetchOrCompute_Steady(b *testing.B) {
	clk := clock.NewManual()
	tbl := NewTable[int, float64](clock.Ticks(clk))
	policy := DefaultPolicy()
	compute := func() float64 { return 1 }

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tbl.FetchOrCompute(i%256, compute, policy)
		if i%64 == 0 {
			clk.Advance(1)
		}
	}
}

// BenchmarkMemoizer_Wrap measures the overhead of a wrapped cached call.
func BenchmarkMemoizer_Wrap(b *testing.B) {
	p := DefaultPolicy()
	m, err := NewMemoizer[int, int, int]("op", clock.Ticks(clock.NewManual()), &p, func(a int) int { return a })
	if err != nil {
		b.Fatal(err)
	}
	fn := m.Wrap(func(a int) int { return a * 2 })

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = fn(i % 16)
	}
}

// BenchmarkIdentity_Resolve measures a negative identity hit.
func BenchmarkIdentity_Resolve(b *testing.B) {
	m := NewIdentity[int, string]()
	miss := func() (string, bool) { return "", false }

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = m.Resolve(i%8, miss)
	}
}

// BenchmarkHasher_Coordinates measures hashing a coordinate and day pair.
func BenchmarkHasher_Coordinates(b *testing.B) {
	h := NewHasher()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = h.Reset().Float(41.5).Float(-12.25).Int(int64(i % 60)).Sum64()
	}
}
