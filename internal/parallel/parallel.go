// Package parallel provides the fork-join execution primitives the pixel
// pipelines are built on: a chunk partitioner, a parallel for-loop with two
// interchangeable scheduling strategies, and an associative reduction.
//
// Both strategies give the same guarantee: the body runs exactly once per
// index, writes from different indices must touch disjoint memory, and the
// call returns only after every invocation has completed. Given that, the
// final output is bit-identical for any worker count and either strategy.
package parallel

import (
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Strategy selects how a parallel loop is scheduled across workers.
type Strategy int

// Supported scheduling strategies.
const (
	// FixedChunk splits the index range into one near-equal contiguous
	// chunk per worker.
	FixedChunk Strategy = iota
	// DivideConquer bisects the range recursively down to the grain
	// size, fork-join style.
	DivideConquer
)

// String returns a human-readable strategy name.
func (s Strategy) String() string {
	switch s {
	case FixedChunk:
		return "fixed-chunk"
	case DivideConquer:
		return "divide-conquer"
	default:
		return "unknown"
	}
}

// DefaultGrain is the range width below which DivideConquer stops
// splitting and runs sequentially.
const DefaultGrain = 4096

// Config controls parallel execution behavior.
type Config struct {
	Strategy Strategy // Scheduling strategy.
	Workers  int      // Worker count; <= 0 means runtime.NumCPU(), 1 runs sequentially.
	Grain    int      // DivideConquer grain size; <= 0 means DefaultGrain.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	return Config{
		Strategy: FixedChunk,
		Workers:  runtime.NumCPU(),
		Grain:    DefaultGrain,
	}
}

// Sequential returns a config that runs everything inline on the calling
// goroutine. Used by the sequential oracle implementations.
func Sequential() Config {
	return Config{Strategy: FixedChunk, Workers: 1, Grain: DefaultGrain}
}

func (c Config) normalized() Config {
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Grain <= 0 {
		c.Grain = DefaultGrain
	}
	return c
}

// Range is a half-open index interval [Lo, Hi) assigned to one worker.
type Range struct {
	Lo, Hi int
}

// Len returns the number of indices in the range.
func (r Range) Len() int { return r.Hi - r.Lo }

// Empty reports whether the range contains no indices.
func (r Range) Empty() bool { return r.Hi <= r.Lo }

// Chunks splits [lo, hi) into n contiguous near-equal ranges using ceiling
// division. The ranges partition [lo, hi) exactly; when n exceeds the range
// width the trailing ranges are empty, which callers treat as no-ops.
func Chunks(lo, hi, n int) []Range {
	if n < 1 {
		n = 1
	}
	total := hi - lo
	if total < 0 {
		total = 0
	}
	size := (total + n - 1) / n
	if size < 1 {
		size = 1
	}
	out := make([]Range, 0, n)
	for k := 0; k < n; k++ {
		start := lo + k*size
		end := start + size
		if start > hi {
			start = hi
		}
		if end > hi {
			end = hi
		}
		out = append(out, Range{Lo: start, Hi: end})
	}
	return out
}

// For executes body(i) exactly once for every i in [lo, hi) and returns
// after all invocations complete. No ordering is guaranteed between
// indices; each invocation must write only to its own output slots.
// Shared mutable state written by two invocations is a caller bug, not
// something the engine prevents.
func For(lo, hi int, body func(i int), cfg Config) {
	cfg = cfg.normalized()
	if hi-lo <= 0 {
		return
	}
	if cfg.Workers == 1 {
		for i := lo; i < hi; i++ {
			body(i)
		}
		return
	}

	switch cfg.Strategy {
	case DivideConquer:
		forkJoinFor(lo, hi, body, cfg)
	default:
		chunkedFor(lo, hi, body, cfg)
	}
}

// chunkedFor runs one goroutine per non-empty chunk.
func chunkedFor(lo, hi int, body func(i int), cfg Config) {
	var wg sync.WaitGroup
	for _, r := range Chunks(lo, hi, cfg.Workers) {
		if r.Empty() {
			continue
		}
		wg.Add(1)
		go func(r Range) {
			defer wg.Done()
			for i := r.Lo; i < r.Hi; i++ {
				body(i)
			}
		}(r)
	}
	wg.Wait()
}

// forkJoinFor bisects the range recursively down to the grain size. The
// semaphore bounds goroutine fan-out to the worker count; when no slot is
// free both halves run inline on the current goroutine, so oversubscribed
// configurations degrade to sequential recursion instead of unbounded
// spawning.
func forkJoinFor(lo, hi int, body func(i int), cfg Config) {
	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup

	var recur func(lo, hi int)
	recur = func(lo, hi int) {
		if hi-lo <= cfg.Grain {
			for i := lo; i < hi; i++ {
				body(i)
			}
			return
		}
		mid := lo + (hi-lo)/2
		if sem.TryAcquire(1) {
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer sem.Release(1)
				recur(mid, hi)
			}()
			recur(lo, mid)
		} else {
			recur(lo, mid)
			recur(mid, hi)
		}
	}

	recur(lo, hi)
	wg.Wait()
}

// Reduce folds [lo, hi) into a single value. leaf computes the partial
// result for one chunk; combine folds partials and must be associative and
// commutative for the result to be independent of chunking and worker
// count (true for max and for histogram-bin addition). Each partial is
// owned by exactly one worker and folded only after the join barrier.
//
// An empty range returns identity.
func Reduce[T any](lo, hi int, identity T, combine func(a, b T) T, leaf func(lo, hi int) T, cfg Config) T {
	cfg = cfg.normalized()
	if hi-lo <= 0 {
		return identity
	}
	if cfg.Workers == 1 {
		return combine(identity, leaf(lo, hi))
	}

	if cfg.Strategy == DivideConquer {
		sem := semaphore.NewWeighted(int64(cfg.Workers))
		return combine(identity, forkJoinReduce(lo, hi, combine, leaf, cfg.Grain, sem))
	}

	chunks := Chunks(lo, hi, cfg.Workers)
	partials := make([]T, len(chunks))
	var wg sync.WaitGroup
	for k, r := range chunks {
		if r.Empty() {
			partials[k] = identity
			continue
		}
		wg.Add(1)
		go func(k int, r Range) {
			defer wg.Done()
			partials[k] = leaf(r.Lo, r.Hi)
		}(k, r)
	}
	wg.Wait()

	acc := identity
	for _, p := range partials {
		acc = combine(acc, p)
	}
	return acc
}

func forkJoinReduce[T any](lo, hi int, combine func(a, b T) T, leaf func(lo, hi int) T, grain int, sem *semaphore.Weighted) T {
	if hi-lo <= grain {
		return leaf(lo, hi)
	}
	mid := lo + (hi-lo)/2
	if sem.TryAcquire(1) {
		ch := make(chan T, 1)
		go func() {
			defer sem.Release(1)
			ch <- forkJoinReduce(mid, hi, combine, leaf, grain, sem)
		}()
		left := forkJoinReduce(lo, mid, combine, leaf, grain, sem)
		return combine(left, <-ch)
	}
	left := forkJoinReduce(lo, mid, combine, leaf, grain, sem)
	right := forkJoinReduce(mid, hi, combine, leaf, grain, sem)
	return combine(left, right)
}
