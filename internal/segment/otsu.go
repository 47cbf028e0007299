// Package segment implements the grayscale segmentation pipelines that
// share the edge detector's execution primitives: Otsu global thresholding
// and k-means intensity clustering. Both are point-wise or
// iterative-refinement computations, so they exercise the parallel-for and
// reduction engines without any stencil work.
package segment

import (
	"github.com/gridcv/gridcv/internal/grid"
	"github.com/gridcv/gridcv/internal/parallel"
)

const histogramBins = 256

type histogram [histogramBins]int64

func addHistograms(a, b histogram) histogram {
	for i := range a {
		a[i] += b[i]
	}
	return a
}

// Otsu binarizes a grayscale image with the threshold that maximizes
// between-class variance. The histogram is accumulated as per-chunk local
// histograms folded bin-wise after the join barrier, so the result is
// identical for every worker count. Returns the binary image (values in
// {0, 255}; pixels above the threshold map to 255) and the threshold.
func Otsu(img *grid.Grid[int], cfg parallel.Config) (*grid.Grid[int], int) {
	data := img.Data()

	hist := parallel.Reduce(0, len(data), histogram{}, addHistograms,
		func(lo, hi int) histogram {
			var local histogram
			for i := lo; i < hi; i++ {
				local[data[i]]++
			}
			return local
		}, cfg)

	threshold := otsuThreshold(hist, int64(len(data)))

	out := grid.New[int](img.H(), img.W())
	dst := out.Data()
	parallel.For(0, len(data), func(i int) {
		if data[i] > threshold {
			dst[i] = 255
		}
	}, cfg)
	return out, threshold
}

// otsuThreshold scans all candidate thresholds and returns the one with
// maximal between-class variance. The scan is over 256 bins, so it runs
// sequentially; the parallel work is the histogram accumulation.
func otsuThreshold(hist histogram, total int64) int {
	if total == 0 {
		return 0
	}

	var sumAll int64
	for v, n := range hist {
		sumAll += int64(v) * n
	}

	var (
		best    int
		bestVar float64
		wBack   int64 // background pixel count
		sumBack int64 // background intensity sum
	)
	for t := 0; t < histogramBins; t++ {
		wBack += hist[t]
		if wBack == 0 {
			continue
		}
		wFore := total - wBack
		if wFore == 0 {
			break
		}
		sumBack += int64(t) * hist[t]

		meanBack := float64(sumBack) / float64(wBack)
		meanFore := float64(sumAll-sumBack) / float64(wFore)
		diff := meanBack - meanFore
		between := float64(wBack) * float64(wFore) * diff * diff

		if between > bestVar {
			bestVar = between
			best = t
		}
	}
	return best
}
