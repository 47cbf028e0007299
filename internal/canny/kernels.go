package canny

import (
	"math"

	"github.com/gridcv/gridcv/internal/grid"
	"github.com/gridcv/gridcv/internal/parallel"
)

// Label classifies a pixel after thresholding.
type Label uint8

// Pixel labels produced by classify and consumed by hysteresis.
// NonEdge is the zero value, so out-of-bounds neighbor reads during
// hysteresis resolve to NonEdge through the grid's boundary sentinel.
const (
	NonEdge Label = iota
	Weak
	Strong
)

// blur applies the 3x3 smoothing stencil
//
//	1 2 1
//	2 4 2   / 16
//	1 2 1
//
// with truncating integer division, clamped to [0, 255]. Reads outside the
// grid replicate the nearest edge pixel, so a flat image stays flat all the
// way to the border and feeds no spurious gradients into the Sobel stage.
func blur(src *grid.Grid[int], cfg parallel.Config) *grid.Grid[int] {
	h, w := src.H(), src.W()
	out := grid.New[int](h, w)
	dst := out.Data()
	data := src.Data()

	at := func(y, x int) int {
		if y < 0 {
			y = 0
		} else if y >= h {
			y = h - 1
		}
		if x < 0 {
			x = 0
		} else if x >= w {
			x = w - 1
		}
		return data[y*w+x]
	}

	parallel.For(0, h*w, func(i int) {
		y, x := i/w, i%w
		sum := at(y-1, x-1) + 2*at(y-1, x) + at(y-1, x+1) +
			2*at(y, x-1) + 4*at(y, x) + 2*at(y, x+1) +
			at(y+1, x-1) + 2*at(y+1, x) + at(y+1, x+1)
		v := sum / 16
		if v < 0 {
			v = 0
		} else if v > 255 {
			v = 255
		}
		dst[i] = v
	}, cfg)
	return out
}

// gradient applies the horizontal and vertical Sobel kernels
//
//	Gx = -1 0 1    Gy =  1  2  1
//	     -2 0 2          0  0  0
//	     -1 0 1         -1 -2 -1
//
// to interior pixels and returns (gx, gy, magnitude) as float64 grids.
// The one-pixel border carries no gradient (all three outputs stay 0
// there); Sobel outputs are deliberately left unclamped.
func gradient(src *grid.Grid[int], cfg parallel.Config) (gx, gy, mag *grid.Grid[float64]) {
	h, w := src.H(), src.W()
	gx = grid.New[float64](h, w)
	gy = grid.New[float64](h, w)
	mag = grid.New[float64](h, w)
	dx, dy, dm := gx.Data(), gy.Data(), mag.Data()
	data := src.Data()

	parallel.For(0, h*w, func(i int) {
		y, x := i/w, i%w
		if y == 0 || y == h-1 || x == 0 || x == w-1 {
			return
		}
		nw, n, ne := data[i-w-1], data[i-w], data[i-w+1]
		west, east := data[i-1], data[i+1]
		sw, s, se := data[i+w-1], data[i+w], data[i+w+1]
		sx := float64(-nw + ne - 2*west + 2*east - sw + se)
		sy := float64(nw + 2*n + ne - sw - 2*s - se)
		dx[i] = sx
		dy[i] = sy
		dm[i] = math.Sqrt(sx*sx + sy*sy)
	}, cfg)
	return gx, gy, mag
}

// quantizeDirection maps a gradient vector to one of four orientation
// buckets. The angle is normalized to [0°, 180°); zero denominators follow
// a fixed convention (x=0,y>0 → 90°; x=0,y<0 → −90°; x=0,y=0 → 0°) rather
// than relying on division.
//
// Bucket 0: horizontal comparison (left/right neighbors)
// Bucket 1: anti-diagonal comparison
// Bucket 2: vertical comparison (up/down neighbors)
// Bucket 3: diagonal comparison
func quantizeDirection(gx, gy float64) int {
	var deg float64
	switch {
	case gx == 0 && gy > 0:
		deg = 90
	case gx == 0 && gy < 0:
		deg = -90
	case gx == 0:
		deg = 0
	default:
		deg = math.Atan2(gy, gx) * 180 / math.Pi
	}
	if deg < 0 {
		deg += 180
	}
	switch {
	case deg < 22.5 || deg >= 157.5:
		return 0
	case deg < 67.5:
		return 1
	case deg < 112.5:
		return 2
	default:
		return 3
	}
}

// directionOffsets holds the opposite neighbor pair compared by
// non-maximum suppression for each orientation bucket, as (dy, dx) pairs.
var directionOffsets = [4][2][2]int{
	{{0, -1}, {0, 1}},  // bucket 0: left / right
	{{-1, 1}, {1, -1}}, // bucket 1: anti-diagonal
	{{-1, 0}, {1, 0}},  // bucket 2: up / down
	{{-1, -1}, {1, 1}}, // bucket 3: diagonal
}

// nonMaxSuppress keeps a pixel's magnitude only if it is >= both neighbors
// along its quantized gradient direction, else writes 0. Out-of-grid
// neighbors read as 0. This is a data-dependent stencil: the neighbor pair
// depends on the pixel's own gradient, not a fixed offset.
func nonMaxSuppress(gx, gy, mag *grid.Grid[float64], cfg parallel.Config) *grid.Grid[float64] {
	h, w := mag.H(), mag.W()
	out := grid.New[float64](h, w)
	dst := out.Data()
	mg := mag.Data()
	dxs := gx.Data()
	dys := gy.Data()

	parallel.For(0, h*w, func(i int) {
		y, x := i/w, i%w
		offs := directionOffsets[quantizeDirection(dxs[i], dys[i])]
		a := mag.At(y+offs[0][0], x+offs[0][1])
		b := mag.At(y+offs[1][0], x+offs[1][1])
		if m := mg[i]; m >= a && m >= b {
			dst[i] = m
		}
	}, cfg)
	return out
}

// maxMagnitude reduces the suppressed magnitudes to their global maximum.
// This is the pipeline's one mandatory barrier: classification thresholds
// derive from the result, so no classify work may start before it
// completes. Returns 0 for an empty image.
func maxMagnitude(mag *grid.Grid[float64], cfg parallel.Config) float64 {
	data := mag.Data()
	return parallel.Reduce(0, len(data), 0,
		math.Max,
		func(lo, hi int) float64 {
			local := 0.0
			for i := lo; i < hi; i++ {
				if data[i] > local {
					local = data[i]
				}
			}
			return local
		}, cfg)
}

// classify labels each pixel from the thresholds derived from the global
// maximum: Strong when magnitude >= high, Weak when in [low, high),
// NonEdge otherwise.
func classify(mag *grid.Grid[float64], low, high float64, cfg parallel.Config) *grid.Grid[Label] {
	out := grid.New[Label](mag.H(), mag.W())
	dst := out.Data()
	src := mag.Data()

	parallel.For(0, len(src), func(i int) {
		switch m := src[i]; {
		case m >= high:
			dst[i] = Strong
		case m >= low:
			dst[i] = Weak
		}
	}, cfg)
	return out
}

// hysteresis produces the final edge map: 255 for Strong pixels, 255 for
// Weak pixels with at least one Strong 8-neighbor, else 0.
//
// Promotion is single-hop only: a Weak pixel chained to a Strong pixel
// through other Weak pixels stays 0. Textbook Canny floods connectivity
// transitively; this kernel intentionally does not, to preserve the
// established output semantics.
func hysteresis(labels *grid.Grid[Label], cfg parallel.Config) *grid.Grid[int] {
	h, w := labels.H(), labels.W()
	out := grid.New[int](h, w)
	dst := out.Data()
	src := labels.Data()

	parallel.For(0, h*w, func(i int) {
		switch src[i] {
		case Strong:
			dst[i] = 255
		case Weak:
			y, x := i/w, i%w
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dy == 0 && dx == 0 {
						continue
					}
					if labels.At(y+dy, x+dx) == Strong {
						dst[i] = 255
						return
					}
				}
			}
		}
	}, cfg)
	return out
}
