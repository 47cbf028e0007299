package parallel

import (
	"sync/atomic"
	"testing"
)

var testConfigs = []Config{
	{Strategy: FixedChunk, Workers: 1},
	{Strategy: FixedChunk, Workers: 2},
	{Strategy: FixedChunk, Workers: 8},
	{Strategy: FixedChunk, Workers: 256},
	{Strategy: DivideConquer, Workers: 2, Grain: 16},
	{Strategy: DivideConquer, Workers: 8, Grain: 1},
	{Strategy: DivideConquer, Workers: 256, Grain: 7},
}

func TestChunks_ExactPartition(t *testing.T) {
	cases := []struct {
		lo, hi, n int
	}{
		{0, 100, 4},
		{0, 100, 7},
		{0, 7, 100}, // more workers than items: trailing empty chunks
		{5, 5, 3},   // empty range
		{3, 17, 1},
	}

	for _, c := range cases {
		chunks := Chunks(c.lo, c.hi, c.n)
		if len(chunks) != c.n {
			t.Errorf("Chunks(%d,%d,%d): got %d chunks, want %d", c.lo, c.hi, c.n, len(chunks), c.n)
		}
		next := c.lo
		for _, r := range chunks {
			if r.Empty() {
				continue
			}
			if r.Lo != next {
				t.Errorf("Chunks(%d,%d,%d): chunk %v does not continue from %d", c.lo, c.hi, c.n, r, next)
			}
			next = r.Hi
		}
		if c.hi > c.lo && next != c.hi {
			t.Errorf("Chunks(%d,%d,%d): chunks end at %d, want %d", c.lo, c.hi, c.n, next, c.hi)
		}
	}
}

func TestFor_EveryIndexExactlyOnce(t *testing.T) {
	const n = 1000
	for _, cfg := range testConfigs {
		visits := make([]int32, n)
		For(0, n, func(i int) {
			atomic.AddInt32(&visits[i], 1)
		}, cfg)

		for i, v := range visits {
			if v != 1 {
				t.Fatalf("%s workers=%d: index %d visited %d times", cfg.Strategy, cfg.Workers, i, v)
			}
		}
	}
}

func TestFor_NonZeroLo(t *testing.T) {
	visits := make([]int32, 100)
	For(25, 75, func(i int) {
		atomic.AddInt32(&visits[i], 1)
	}, Config{Strategy: DivideConquer, Workers: 4, Grain: 8})

	for i, v := range visits {
		want := int32(0)
		if i >= 25 && i < 75 {
			want = 1
		}
		if v != want {
			t.Fatalf("index %d visited %d times, want %d", i, v, want)
		}
	}
}

func TestFor_EmptyRange(t *testing.T) {
	var counter int64
	for _, cfg := range testConfigs {
		For(10, 10, func(_ int) {
			atomic.AddInt64(&counter, 1)
		}, cfg)
		For(10, 5, func(_ int) {
			atomic.AddInt64(&counter, 1)
		}, cfg)
	}
	if counter != 0 {
		t.Errorf("empty ranges invoked body %d times", counter)
	}
}

func TestFor_Sequential(t *testing.T) {
	// Workers == 1 must run inline, in index order.
	prev := -1
	ordered := true
	For(0, 100, func(i int) {
		if i != prev+1 {
			ordered = false
		}
		prev = i
	}, Sequential())

	if !ordered || prev != 99 {
		t.Errorf("sequential run was not an in-order inline loop (last=%d)", prev)
	}
}

func TestReduce_Sum(t *testing.T) {
	const n = 10000
	want := n * (n - 1) / 2

	for _, cfg := range testConfigs {
		got := Reduce(0, n, 0,
			func(a, b int) int { return a + b },
			func(lo, hi int) int {
				s := 0
				for i := lo; i < hi; i++ {
					s += i
				}
				return s
			}, cfg)
		if got != want {
			t.Errorf("%s workers=%d: sum = %d, want %d", cfg.Strategy, cfg.Workers, got, want)
		}
	}
}

func TestReduce_Max(t *testing.T) {
	data := make([]float64, 5000)
	for i := range data {
		data[i] = float64((i * 2654435761) % 99991)
	}
	data[3217] = 1e9

	for _, cfg := range testConfigs {
		got := Reduce(0, len(data), 0.0,
			func(a, b float64) float64 {
				if a > b {
					return a
				}
				return b
			},
			func(lo, hi int) float64 {
				local := 0.0
				for i := lo; i < hi; i++ {
					if data[i] > local {
						local = data[i]
					}
				}
				return local
			}, cfg)
		if got != 1e9 {
			t.Errorf("%s workers=%d: max = %v, want 1e9", cfg.Strategy, cfg.Workers, got)
		}
	}
}

func TestReduce_EmptyRangeReturnsIdentity(t *testing.T) {
	for _, cfg := range testConfigs {
		got := Reduce(4, 4, 42,
			func(a, b int) int { return a + b },
			func(lo, hi int) int {
				t.Errorf("leaf invoked on empty range [%d,%d)", lo, hi)
				return 0
			}, cfg)
		if got != 42 {
			t.Errorf("empty reduce = %d, want identity 42", got)
		}
	}
}

func BenchmarkFor(b *testing.B) {
	const n = 1 << 20
	out := make([]float64, n)

	b.Run("fixed-chunk", func(b *testing.B) {
		cfg := DefaultConfig()
		for i := 0; i < b.N; i++ {
			For(0, n, func(i int) { out[i] = float64(i) * 1.5 }, cfg)
		}
	})

	b.Run("divide-conquer", func(b *testing.B) {
		cfg := DefaultConfig()
		cfg.Strategy = DivideConquer
		for i := 0; i < b.N; i++ {
			For(0, n, func(i int) { out[i] = float64(i) * 1.5 }, cfg)
		}
	})

	b.Run("sequential", func(b *testing.B) {
		cfg := Sequential()
		for i := 0; i < b.N; i++ {
			For(0, n, func(i int) { out[i] = float64(i) * 1.5 }, cfg)
		}
	})
}
