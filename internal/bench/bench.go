// Package bench sweeps the Canny pipeline across worker counts and
// scheduling strategies, timing each run and cross-checking every parallel
// output against the sequential oracle.
package bench

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/gridcv/gridcv/internal/canny"
	"github.com/gridcv/gridcv/internal/grid"
	"github.com/gridcv/gridcv/internal/parallel"
)

// Result records one timed pipeline run.
type Result struct {
	Strategy parallel.Strategy
	Workers  int
	Elapsed  time.Duration
	Speedup  float64 // sequential time / parallel time
}

// Options configures a sweep.
type Options struct {
	WorkerCounts []int   // worker counts to sweep; defaults to {1,2,4,8,16}
	Strategies   []parallel.Strategy
	Grain        int
	HighRatio    float64
	LowRatio     float64
}

// DefaultOptions returns the standard sweep configuration.
func DefaultOptions() Options {
	return Options{
		WorkerCounts: []int{1, 2, 4, 8, 16},
		Strategies:   []parallel.Strategy{parallel.FixedChunk, parallel.DivideConquer},
		Grain:        parallel.DefaultGrain,
		HighRatio:    canny.DefaultHighRatio,
		LowRatio:     canny.DefaultLowRatio,
	}
}

// Run executes the sweep on img. The sequential oracle runs first and its
// output is the reference every configuration must reproduce bit-exactly;
// a mismatch is a defect in the execution model, never a transient
// condition, so Run fails immediately.
func Run(img *grid.Grid[int], opts Options, log zerolog.Logger) ([]Result, error) {
	if len(opts.WorkerCounts) == 0 {
		opts = DefaultOptions()
	}

	start := time.Now()
	oracle := canny.EdgesSequential(img)
	seqElapsed := time.Since(start)
	log.Info().
		Dur("elapsed", seqElapsed).
		Int("pixels", img.Len()).
		Msg("sequential oracle")

	results := make([]Result, 0, len(opts.WorkerCounts)*len(opts.Strategies))
	for _, strategy := range opts.Strategies {
		for _, workers := range opts.WorkerCounts {
			cannyOpts := canny.Options{
				Parallel: parallel.Config{
					Strategy: strategy,
					Workers:  workers,
					Grain:    opts.Grain,
				},
				HighRatio: opts.HighRatio,
				LowRatio:  opts.LowRatio,
			}

			start := time.Now()
			out := canny.EdgesWithOptions(img, cannyOpts)
			elapsed := time.Since(start)

			if !out.Equal(oracle) {
				return results, fmt.Errorf(
					"bench: output mismatch against sequential oracle (strategy=%s workers=%d)",
					strategy, workers)
			}

			r := Result{
				Strategy: strategy,
				Workers:  workers,
				Elapsed:  elapsed,
				Speedup:  seqElapsed.Seconds() / elapsed.Seconds(),
			}
			results = append(results, r)
			log.Info().
				Stringer("strategy", strategy).
				Int("workers", workers).
				Dur("elapsed", elapsed).
				Float64("speedup", r.Speedup).
				Msg("pipeline run")
		}
	}
	return results, nil
}
