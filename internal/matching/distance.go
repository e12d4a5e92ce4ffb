// Package matching holds the descriptor arithmetic behind enrollment and
// verification: Euclidean distance, per-image pairwise distances, the
// duplicate-face gate and the verification ranking. Everything here is pure;
// loading records and locking are the caller's job.
package matching

import (
	"errors"
	"fmt"
	"math"

	"github.com/saturnino-fabrica-de-software/eventface/internal/domain"
)

// ErrDimensionMismatch is returned when two descriptors have different lengths
var ErrDimensionMismatch = errors.New("descriptor dimension mismatch")

// Distance calculates the Euclidean distance between two descriptors.
// Lower distance means more similar faces; identical vectors yield 0.
func Distance(a, b domain.DescriptorVector) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d != %d", ErrDimensionMismatch, len(a), len(b))
	}

	var sum float64
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}

	return math.Sqrt(sum), nil
}

// PairwiseDistances returns, for every descriptor, its distance to every
// descriptor in the same slice. Row i column i is always 0 and the matrix
// is symmetric.
func PairwiseDistances(descs []domain.DescriptorVector) ([][]float64, error) {
	out := make([][]float64, len(descs))
	for i := range descs {
		out[i] = make([]float64, len(descs))
	}

	for i := range descs {
		for j := i + 1; j < len(descs); j++ {
			d, err := Distance(descs[i], descs[j])
			if err != nil {
				return nil, fmt.Errorf("faces %d and %d: %w", i, j, err)
			}
			out[i][j] = d
			out[j][i] = d
		}
	}

	return out, nil
}
