// Copyright 2026 GridCV. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package canny provides the public API for the five-stage Canny edge
// detection pipeline.
//
// Example:
//
//	img, _ := imageio.ReadFile("input.txt")
//	edges := canny.Edges(img, 8)
//	_ = imageio.WriteFile("edges.txt", edges)
package canny

import (
	"github.com/gridcv/gridcv/internal/canny"
	"github.com/gridcv/gridcv/internal/grid"
)

// Threshold ratios applied to the global maximum suppressed magnitude.
const (
	DefaultHighRatio = canny.DefaultHighRatio
	DefaultLowRatio  = canny.DefaultLowRatio
)

// Options configures a pipeline run.
type Options = canny.Options

// DefaultOptions returns the standard pipeline configuration.
func DefaultOptions() Options {
	return canny.DefaultOptions()
}

// Edges computes the edge map of a grayscale image using the given worker
// count. Output pixels are restricted to {0, 255} and bit-identical for
// every worker count.
func Edges(pixels *grid.Grid[int], workers int) *grid.Grid[int] {
	return canny.Edges(pixels, workers)
}

// EdgesSequential is the sequential reference implementation, the oracle
// for differential testing.
func EdgesSequential(pixels *grid.Grid[int]) *grid.Grid[int] {
	return canny.EdgesSequential(pixels)
}

// EdgesWithOptions runs the full pipeline with explicit options.
func EdgesWithOptions(pixels *grid.Grid[int], opts Options) *grid.Grid[int] {
	return canny.EdgesWithOptions(pixels, opts)
}
