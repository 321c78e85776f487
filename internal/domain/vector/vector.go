// Package vector provides elementary operations over embedding vectors.
// All binary operations require equal-length inputs; a length mismatch is a
// data-integrity error, not a recoverable condition.
package vector

import (
	"fmt"
	"math"

	"github.com/fuse-search/fuse/internal/domain"
)

// Dot returns the sum of elementwise products. Accumulates in float64 to
// limit rounding drift on long vectors.
func Dot(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", domain.ErrDimensionMismatch, len(a), len(b))
	}
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum, nil
}

// Norm returns the Euclidean norm. Zero for an empty or all-zero vector.
func Norm(a []float32) float64 {
	var sum float64
	for _, v := range a {
		sum += float64(v) * float64(v)
	}
	return math.Sqrt(sum)
}

// Cosine returns the cosine similarity dot(a,b)/(norm(a)*norm(b)).
// When either vector is empty or has zero norm the similarity is undefined
// and NaN is returned; rankers must place such results below every defined
// score instead of letting NaN leak into sorted output.
func Cosine(a, b []float32) (float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return math.NaN(), nil
	}
	dot, err := Dot(a, b)
	if err != nil {
		return 0, err
	}
	na, nb := Norm(a), Norm(b)
	if na == 0 || nb == 0 {
		return math.NaN(), nil
	}
	return dot / (na * nb), nil
}

// Add returns the elementwise sum of two vectors.
func Add(a, b []float32) ([]float32, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("%w: %d vs %d", domain.ErrDimensionMismatch, len(a), len(b))
	}
	out := make([]float32, len(a))
	for i := range a {
		out[i] = a[i] + b[i]
	}
	return out, nil
}

// Scale returns a copy of the vector multiplied by a scalar.
func Scale(a []float32, k float64) []float32 {
	out := make([]float32, len(a))
	for i, v := range a {
		out[i] = float32(float64(v) * k)
	}
	return out
}

// Normalize returns the vector divided by its norm. A zero or empty vector
// is returned unchanged, so callers must not assume unit norm.
func Normalize(a []float32) []float32 {
	n := Norm(a)
	if n == 0 {
		return a
	}
	return Scale(a, 1/n)
}

// Mean returns the unweighted elementwise arithmetic mean of the given
// vectors. Returns nil for an empty input.
func Mean(vs [][]float32) ([]float32, error) {
	if len(vs) == 0 {
		return nil, nil
	}
	dim := len(vs[0])
	sum := make([]float64, dim)
	for _, v := range vs {
		if len(v) != dim {
			return nil, fmt.Errorf("%w: %d vs %d", domain.ErrDimensionMismatch, len(v), dim)
		}
		for i, x := range v {
			sum[i] += float64(x)
		}
	}
	out := make([]float32, dim)
	for i, s := range sum {
		out[i] = float32(s / float64(len(vs)))
	}
	return out, nil
}
