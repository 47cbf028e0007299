// Copyright 2026 GridCV. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package parallel provides the public API for gridcv's fork-join
// execution primitives: chunk partitioning, parallel for-loops with two
// interchangeable scheduling strategies, and associative reduction.
package parallel

import (
	"github.com/gridcv/gridcv/internal/parallel"
)

// Strategy selects how a parallel loop is scheduled across workers.
type Strategy = parallel.Strategy

// Supported scheduling strategies.
const (
	FixedChunk    Strategy = parallel.FixedChunk
	DivideConquer Strategy = parallel.DivideConquer
)

// DefaultGrain is the default divide-and-conquer grain size.
const DefaultGrain = parallel.DefaultGrain

// Config controls parallel execution behavior.
type Config = parallel.Config

// Range is a half-open index interval assigned to one worker.
type Range = parallel.Range

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	return parallel.DefaultConfig()
}

// Sequential returns a config that runs everything inline on the calling
// goroutine.
func Sequential() Config {
	return parallel.Sequential()
}

// Chunks splits [lo, hi) into n contiguous near-equal ranges.
func Chunks(lo, hi, n int) []Range {
	return parallel.Chunks(lo, hi, n)
}

// For executes body(i) exactly once for every i in [lo, hi), returning
// after all invocations complete.
func For(lo, hi int, body func(i int), cfg Config) {
	parallel.For(lo, hi, body, cfg)
}

// Reduce folds [lo, hi) into a single value from per-chunk partials.
// combine must be associative and commutative.
func Reduce[T any](lo, hi int, identity T, combine func(a, b T) T, leaf func(lo, hi int) T, cfg Config) T {
	return parallel.Reduce(lo, hi, identity, combine, leaf, cfg)
}
