package bench

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridcv/gridcv/internal/grid"
	"github.com/gridcv/gridcv/internal/parallel"
)

func TestRun_VerifiesAgainstOracle(t *testing.T) {
	img := grid.New[int](32, 32)
	state := uint32(99)
	for i := range img.Data() {
		state = state*1664525 + 1013904223
		img.Data()[i] = int(state >> 24)
	}

	opts := Options{
		WorkerCounts: []int{1, 2, 4},
		Strategies:   []parallel.Strategy{parallel.FixedChunk, parallel.DivideConquer},
		Grain:        64,
		HighRatio:    0.2,
		LowRatio:     0.1,
	}

	results, err := Run(img, opts, zerolog.Nop())
	require.NoError(t, err)
	assert.Len(t, results, 6)
	for _, r := range results {
		assert.Positive(t, r.Elapsed)
	}
}

func TestRun_EmptyOptionsUsesDefaults(t *testing.T) {
	img := grid.New[int](8, 8)
	results, err := Run(img, Options{}, zerolog.Nop())
	require.NoError(t, err)
	assert.Len(t, results, len(DefaultOptions().WorkerCounts)*len(DefaultOptions().Strategies))
}
