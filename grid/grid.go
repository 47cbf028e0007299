// Copyright 2026 GridCV. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package grid provides the public API for the flat row-major pixel
// buffers consumed and produced by the gridcv pipelines.
//
// A Grid is a logical H×W matrix stored as a flat slice indexed y*W + x.
// Reads outside the grid return 0, which is the boundary condition every
// stencil stage relies on.
package grid

import (
	"github.com/gridcv/gridcv/internal/grid"
)

// Scalar is the constraint for grid element types.
type Scalar = grid.Scalar

// Grid is a logical H×W matrix stored as a flat row-major slice.
type Grid[T Scalar] = grid.Grid[T]

// New allocates a zeroed h×w grid.
func New[T Scalar](h, w int) *Grid[T] {
	return grid.New[T](h, w)
}

// FromSlice wraps an existing flat slice as an h×w grid.
func FromSlice[T Scalar](h, w int, data []T) (*Grid[T], error) {
	return grid.FromSlice(h, w, data)
}
