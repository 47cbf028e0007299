// Copyright 2026 GridCV. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package segment provides the public API for the grayscale segmentation
// pipelines built on the same execution primitives as the edge detector.
package segment

import (
	"github.com/gridcv/gridcv/internal/grid"
	"github.com/gridcv/gridcv/internal/parallel"
	"github.com/gridcv/gridcv/internal/segment"
)

// DefaultMaxIterations bounds k-means refinement when maxIter <= 0.
const DefaultMaxIterations = segment.DefaultMaxIterations

// Otsu binarizes a grayscale image with the threshold that maximizes
// between-class variance, returning the binary image and the threshold.
func Otsu(img *grid.Grid[int], cfg parallel.Config) (*grid.Grid[int], int) {
	return segment.Otsu(img, cfg)
}

// KMeans clusters a grayscale image into k intensity levels, returning the
// quantized image and the final centroids.
func KMeans(img *grid.Grid[int], k, maxIter int, cfg parallel.Config) (*grid.Grid[int], []float64, error) {
	return segment.KMeans(img, k, maxIter, cfg)
}
