package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridcv/gridcv/internal/parallel"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, StrategyFixedChunk, cfg.Strategy)
	assert.Equal(t, 0.2, cfg.HighRatio)
	assert.Equal(t, 0.1, cfg.LowRatio)
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_OverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gridcv.yaml")
	body := "workers: 4\nstrategy: divide-conquer\ngrain: 128\nlog_level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, StrategyDivideConquer, cfg.Strategy)
	assert.Equal(t, 128, cfg.Grain)
	assert.Equal(t, "debug", cfg.LogLevel)
	// Untouched keys keep their defaults.
	assert.Equal(t, 0.2, cfg.HighRatio)

	p := cfg.Parallel()
	assert.Equal(t, parallel.DivideConquer, p.Strategy)
	assert.Equal(t, 4, p.Workers)
	assert.Equal(t, 128, p.Grain)
}

func TestLoad_RejectsInvalid(t *testing.T) {
	cases := []struct {
		name, body string
	}{
		{"bad strategy", "strategy: round-robin\n"},
		{"inverted ratios", "high_ratio: 0.1\nlow_ratio: 0.5\n"},
		{"negative low", "low_ratio: -0.2\n"},
		{"not yaml", ":\n:::\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			require.NoError(t, os.WriteFile(path, []byte(c.body), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestCannyOptions(t *testing.T) {
	cfg := Default()
	cfg.Workers = 3
	opts := cfg.CannyOptions()
	assert.Equal(t, 3, opts.Parallel.Workers)
	assert.Equal(t, 0.2, opts.HighRatio)
	assert.Equal(t, 0.1, opts.LowRatio)
}
