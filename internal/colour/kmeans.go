package colour

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/mat"
)

// KMeansExtractor implements colour extraction using k-means clustering over
// every pixel of the image, normalised to [0,1].
type KMeansExtractor struct {
	maxIterations int
	tolerance     float64
	rng           *rand.Rand
}

// NewKMeansExtractor creates a new KMeansExtractor with default settings.
// A nil seed gives a different initialisation on every run.
func NewKMeansExtractor(seed *int64) *KMeansExtractor {
	src := time.Now().UnixNano()
	if seed != nil {
		src = *seed
	}
	return &KMeansExtractor{
		maxIterations: 300,
		tolerance:     1e-4,
		rng:           rand.New(rand.NewSource(src)), // #nosec G404 -- clustering initialisation, not security sensitive
	}
}

// Extract extracts exactly count colours from px using k-means clustering.
// When the image has fewer distinct pixels than count, some centres coincide.
// Weights are the relative cluster sizes.
func (e *KMeansExtractor) Extract(px Pixels, count int) (*Palette, error) {
	if err := validateCount(count); err != nil {
		return nil, err
	}

	data := PixelMatrix(px)
	if data == nil {
		return nil, fmt.Errorf("%w: no pixels found in image", ErrCluster)
	}

	centroids, weights := e.kmeans(data, count)

	colors := make([]RGB, len(centroids))
	for i, c := range centroids {
		colors[i] = FromUnit(c.R, c.G, c.B)
	}

	return NewPaletteWithWeights(colors, weights), nil
}

// point3D represents a point in normalised RGB space.
type point3D struct {
	R, G, B float64
}

// distanceSq returns the squared Euclidean distance between two points.
func (p point3D) distanceSq(other point3D) float64 {
	dr := p.R - other.R
	dg := p.G - other.G
	db := p.B - other.B
	return dr*dr + dg*dg + db*db
}

// kmeans runs Lloyd's algorithm on the rows of data.
// Returns centroids and their weights (relative cluster sizes).
func (e *KMeansExtractor) kmeans(data *mat.Dense, k int) ([]point3D, []float64) {
	n, _ := data.Dims()
	points := make([]point3D, n)
	for i := range n {
		row := data.RawRowView(i)
		points[i] = point3D{R: row[0], G: row[1], B: row[2]}
	}

	centroids := e.initializeCentroidsKMeansPlusPlus(points, k)
	assignments := make([]int, len(points))

	for iter := 0; iter < e.maxIterations; iter++ {
		changed := 0
		for i, point := range points {
			nearest := findNearestCentroid(point, centroids)
			if iter == 0 || assignments[i] != nearest {
				assignments[i] = nearest
				changed++
			}
		}
		if changed == 0 {
			break
		}

		newCentroids := e.recalculateCentroids(points, assignments, k)

		movement := 0.0
		for i := range centroids {
			movement += math.Sqrt(centroids[i].distanceSq(newCentroids[i]))
		}
		centroids = newCentroids

		if movement/float64(k) < e.tolerance {
			break
		}
	}

	weights := make([]float64, k)
	for _, assignment := range assignments {
		weights[assignment]++
	}
	for i := range weights {
		weights[i] /= float64(len(assignments))
	}

	return centroids, weights
}

// initializeCentroidsKMeansPlusPlus picks initial centroids with probability
// proportional to the squared distance from the nearest chosen centroid.
func (e *KMeansExtractor) initializeCentroidsKMeansPlusPlus(points []point3D, k int) []point3D {
	centroids := make([]point3D, 0, k)
	centroids = append(centroids, points[e.rng.Intn(len(points))])

	distances := make([]float64, len(points))
	for len(centroids) < k {
		total := 0.0
		for i, point := range points {
			minDist := math.MaxFloat64
			for _, centroid := range centroids {
				minDist = min(minDist, point.distanceSq(centroid))
			}
			distances[i] = minDist
			total += minDist
		}

		// Every point already coincides with a centroid: the image has fewer
		// distinct colours than k, so duplicate the last centre.
		if total == 0 {
			centroids = append(centroids, centroids[len(centroids)-1])
			continue
		}

		target := e.rng.Float64() * total
		cumulative := 0.0
		chosen := len(points) - 1
		for i, dist := range distances {
			cumulative += dist
			if cumulative >= target {
				chosen = i
				break
			}
		}
		centroids = append(centroids, points[chosen])
	}

	return centroids
}

// findNearestCentroid finds the index of the nearest centroid to a point.
func findNearestCentroid(point point3D, centroids []point3D) int {
	minDist := math.MaxFloat64
	nearest := 0

	for i, centroid := range centroids {
		dist := point.distanceSq(centroid)
		if dist < minDist {
			minDist = dist
			nearest = i
		}
	}

	return nearest
}

// recalculateCentroids recalculates centroid positions based on assigned points.
func (e *KMeansExtractor) recalculateCentroids(points []point3D, assignments []int, k int) []point3D {
	sums := make([]point3D, k)
	counts := make([]int, k)

	for i, point := range points {
		cluster := assignments[i]
		sums[cluster].R += point.R
		sums[cluster].G += point.G
		sums[cluster].B += point.B
		counts[cluster]++
	}

	centroids := make([]point3D, k)
	for i := range k {
		if counts[i] > 0 {
			centroids[i] = point3D{
				R: sums[i].R / float64(counts[i]),
				G: sums[i].G / float64(counts[i]),
				B: sums[i].B / float64(counts[i]),
			}
		} else {
			// Empty cluster - reinitialize randomly
			centroids[i] = points[e.rng.Intn(len(points))]
		}
	}

	return centroids
}

// ErrCluster is returned when an extraction algorithm cannot produce a palette.
var ErrCluster = errors.New("clustering failed")

func validateCount(count int) error {
	if count < 1 {
		return fmt.Errorf("%w: color count must be at least 1, got %d", ErrCluster, count)
	}
	if count > MaxColors {
		return fmt.Errorf("%w: color count too large: %d (maximum: %d)", ErrCluster, count, MaxColors)
	}
	return nil
}
