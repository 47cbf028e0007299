package segment

import (
	"fmt"
	"math"

	"github.com/gridcv/gridcv/internal/grid"
	"github.com/gridcv/gridcv/internal/parallel"
)

// DefaultMaxIterations bounds k-means refinement when the caller passes
// maxIter <= 0.
const DefaultMaxIterations = 50

// clusterSums carries per-cluster running totals for one chunk. Intensity
// sums stay in int64 so folding partials is exact and order-independent,
// which keeps centroid updates bit-identical across worker counts.
type clusterSums struct {
	sum   []int64
	count []int64
}

func newClusterSums(k int) clusterSums {
	return clusterSums{sum: make([]int64, k), count: make([]int64, k)}
}

func (a clusterSums) add(b clusterSums) clusterSums {
	if a.sum == nil {
		return b
	}
	if b.sum == nil {
		return a
	}
	for i := range a.sum {
		a.sum[i] += b.sum[i]
		a.count[i] += b.count[i]
	}
	return a
}

// KMeans clusters a grayscale image into k intensity levels and returns
// the quantized image (each pixel replaced by its cluster's centroid,
// rounded) together with the final centroids.
//
// Centroids are seeded evenly over [0, 255], so the algorithm is fully
// deterministic: the same image, k, and iteration bound produce the same
// output for every worker count and strategy. Refinement stops when the
// assignments stabilize (centroids unchanged) or after maxIter iterations.
func KMeans(img *grid.Grid[int], k, maxIter int, cfg parallel.Config) (*grid.Grid[int], []float64, error) {
	if k < 1 {
		return nil, nil, fmt.Errorf("kmeans: k must be >= 1, got %d", k)
	}
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}

	data := img.Data()
	centroids := make([]float64, k)
	for j := range centroids {
		centroids[j] = float64(2*j+1) * 255.0 / float64(2*k)
	}

	if len(data) == 0 {
		return grid.New[int](img.H(), img.W()), centroids, nil
	}

	assign := make([]int, len(data))
	for iter := 0; iter < maxIter; iter++ {
		// Assignment step: each pixel picks its nearest centroid
		// (ties break toward the lower cluster index).
		parallel.For(0, len(data), func(i int) {
			assign[i] = nearest(centroids, float64(data[i]))
		}, cfg)

		// Update step: exact integer accumulation per chunk, folded
		// after the join barrier.
		totals := parallel.Reduce(0, len(data), clusterSums{}, clusterSums.add,
			func(lo, hi int) clusterSums {
				local := newClusterSums(k)
				for i := lo; i < hi; i++ {
					c := assign[i]
					local.sum[c] += int64(data[i])
					local.count[c]++
				}
				return local
			}, cfg)

		moved := false
		for j := 0; j < k; j++ {
			if totals.count[j] == 0 {
				continue // empty cluster keeps its centroid
			}
			next := float64(totals.sum[j]) / float64(totals.count[j])
			if next != centroids[j] {
				centroids[j] = next
				moved = true
			}
		}
		if !moved {
			break
		}
	}

	// Final projection re-runs the assignment against the final
	// centroids, so an iteration-capped run still maps every pixel to
	// its nearest centroid.
	out := grid.New[int](img.H(), img.W())
	dst := out.Data()
	parallel.For(0, len(data), func(i int) {
		dst[i] = int(math.Round(centroids[nearest(centroids, float64(data[i]))]))
	}, cfg)
	return out, centroids, nil
}

func nearest(centroids []float64, v float64) int {
	best := 0
	bestDist := math.Abs(v - centroids[0])
	for j := 1; j < len(centroids); j++ {
		if d := math.Abs(v - centroids[j]); d < bestDist {
			best = j
			bestDist = d
		}
	}
	return best
}
