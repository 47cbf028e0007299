// Package grid provides the flat row-major pixel buffer used by every
// pipeline stage.
package grid

import "fmt"

// Scalar is the constraint for grid element types: integer pixel
// intensities or floating-point gradient magnitudes.
type Scalar interface {
	~int | ~int32 | ~int64 | ~uint8 | ~float32 | ~float64
}

// Grid is a logical H×W matrix stored as a flat row-major slice
// (index y*W + x). A Grid produced by a pipeline stage is treated as
// immutable: stages read inputs and write only to freshly allocated
// outputs, which is what makes them safe to run across workers without
// locks.
type Grid[T Scalar] struct {
	h, w int
	data []T
}

// New allocates a zeroed h×w grid.
// Panics if h or w is negative.
func New[T Scalar](h, w int) *Grid[T] {
	if h < 0 || w < 0 {
		panic(fmt.Sprintf("grid: invalid dimensions %dx%d", h, w))
	}
	return &Grid[T]{h: h, w: w, data: make([]T, h*w)}
}

// FromSlice wraps an existing flat slice as an h×w grid.
// The slice is used directly, not copied.
func FromSlice[T Scalar](h, w int, data []T) (*Grid[T], error) {
	if h < 0 || w < 0 {
		return nil, fmt.Errorf("grid: invalid dimensions %dx%d", h, w)
	}
	if len(data) != h*w {
		return nil, fmt.Errorf("grid: flat length %d does not match %dx%d", len(data), h, w)
	}
	return &Grid[T]{h: h, w: w, data: data}, nil
}

// H returns the grid height.
func (g *Grid[T]) H() int { return g.h }

// W returns the grid width.
func (g *Grid[T]) W() int { return g.w }

// Len returns the number of cells (H·W).
func (g *Grid[T]) Len() int { return len(g.data) }

// Data returns the backing flat slice.
func (g *Grid[T]) Data() []T { return g.data }

// At returns the value at (y, x), or 0 when (y, x) lies outside
// [0,H)×[0,W). The zero sentinel is the boundary condition every stencil
// stage relies on; the function is total and never fails.
func (g *Grid[T]) At(y, x int) T {
	if y < 0 || y >= g.h || x < 0 || x >= g.w {
		var zero T
		return zero
	}
	return g.data[y*g.w+x]
}

// Set stores v at (y, x). Unlike At, indices must be in range; writing
// outside the grid is a caller bug.
func (g *Grid[T]) Set(y, x int, v T) {
	g.data[y*g.w+x] = v
}

// Clone returns a deep copy.
func (g *Grid[T]) Clone() *Grid[T] {
	data := make([]T, len(g.data))
	copy(data, g.data)
	return &Grid[T]{h: g.h, w: g.w, data: data}
}

// Equal reports whether two grids have identical dimensions and contents.
func (g *Grid[T]) Equal(other *Grid[T]) bool {
	if g.h != other.h || g.w != other.w {
		return false
	}
	for i, v := range g.data {
		if v != other.data[i] {
			return false
		}
	}
	return true
}
