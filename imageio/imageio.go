// Copyright 2026 GridCV. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package imageio provides the public API for reading and writing the
// text raster format shared by all gridcv tools.
package imageio

import (
	"io"

	"github.com/gridcv/gridcv/internal/grid"
	"github.com/gridcv/gridcv/internal/imageio"
)

// Common errors.
var (
	ErrMissingHeader = imageio.ErrMissingHeader
	ErrBadHeader     = imageio.ErrBadHeader
	ErrChannelCount  = imageio.ErrChannelCount
	ErrTruncated     = imageio.ErrTruncated
	ErrTooLarge      = imageio.ErrTooLarge
)

// ParseError reports where in the token stream a read failed.
type ParseError = imageio.ParseError

// Read parses a grayscale raster from r.
func Read(r io.Reader) (*grid.Grid[int], error) {
	return imageio.Read(r)
}

// ReadFile parses a grayscale raster from the file at path.
func ReadFile(path string) (*grid.Grid[int], error) {
	return imageio.ReadFile(path)
}

// Write serializes g to w in the text format with C = 1.
func Write(w io.Writer, g *grid.Grid[int]) error {
	return imageio.Write(w, g)
}

// WriteFile atomically serializes g to the file at path.
func WriteFile(path string, g *grid.Grid[int]) error {
	return imageio.WriteFile(path, g)
}
