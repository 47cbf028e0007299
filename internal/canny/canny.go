// Package canny implements the five-stage Canny edge detection pipeline
// over flat pixel grids:
//
//	input → blur → gradient → non-maximum suppression →
//	(global max barrier) → classify → hysteresis → edge map
//
// Every stage reads only immutable, fully committed upstream buffers and
// writes to a freshly allocated output with index-disjoint writes, so the
// stages run across workers without locks. The single synchronization
// point is the global-maximum reduction between suppression and
// classification, because both thresholds derive from it.
package canny

import (
	"fmt"

	"github.com/gridcv/gridcv/internal/grid"
	"github.com/gridcv/gridcv/internal/parallel"
)

// Threshold ratios applied to the global maximum suppressed magnitude.
const (
	DefaultHighRatio = 0.2
	DefaultLowRatio  = 0.1
)

// Options configures a pipeline run.
type Options struct {
	Parallel  parallel.Config // Scheduling strategy, worker count, grain size.
	HighRatio float64         // Strong threshold as a fraction of the global max.
	LowRatio  float64         // Weak threshold as a fraction of the global max.
}

// DefaultOptions returns the standard pipeline configuration.
func DefaultOptions() Options {
	return Options{
		Parallel:  parallel.DefaultConfig(),
		HighRatio: DefaultHighRatio,
		LowRatio:  DefaultLowRatio,
	}
}

// Edges computes the edge map of a grayscale image using the given worker
// count. workers <= 0 selects the CPU count; workers == 1 runs the whole
// pipeline sequentially on the calling goroutine. Output pixels are
// restricted to {0, 255} and are bit-identical for every worker count.
func Edges(pixels *grid.Grid[int], workers int) *grid.Grid[int] {
	opts := DefaultOptions()
	opts.Parallel.Workers = workers
	return EdgesWithOptions(pixels, opts)
}

// EdgesSequential is the sequential reference implementation, kept as the
// oracle for differential testing. It is the same stage code executed with
// the inline single-worker schedule, so parallel runs are compared against
// genuinely sequential execution rather than a second copy of the
// algorithm.
func EdgesSequential(pixels *grid.Grid[int]) *grid.Grid[int] {
	opts := DefaultOptions()
	opts.Parallel = parallel.Sequential()
	return EdgesWithOptions(pixels, opts)
}

// EdgesWithOptions runs the full pipeline with explicit options.
// Panics if the threshold ratios are not 0 <= low <= high.
func EdgesWithOptions(pixels *grid.Grid[int], opts Options) *grid.Grid[int] {
	if opts.LowRatio < 0 || opts.HighRatio < opts.LowRatio {
		panic(fmt.Sprintf("canny: invalid threshold ratios low=%v high=%v", opts.LowRatio, opts.HighRatio))
	}
	cfg := opts.Parallel

	if pixels.Len() == 0 {
		// Degenerate but well-defined: an empty image produces an
		// empty edge map.
		return grid.New[int](pixels.H(), pixels.W())
	}

	blurred := blur(pixels, cfg)
	gx, gy, mag := gradient(blurred, cfg)
	suppressed := nonMaxSuppress(gx, gy, mag, cfg)

	// Barrier: thresholds depend on the global maximum, so every
	// suppressed magnitude must be committed before classification.
	max := maxMagnitude(suppressed, cfg)
	if max == 0 {
		// Flat image: no gradient anywhere, so no pixel can be an
		// edge. Skipping classification avoids labeling every zero
		// magnitude Strong against a zero threshold.
		return grid.New[int](pixels.H(), pixels.W())
	}
	high := opts.HighRatio * max
	low := opts.LowRatio * max

	labels := classify(suppressed, low, high, cfg)
	return hysteresis(labels, cfg)
}
