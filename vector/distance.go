package vector

import (
	"fmt"
	"math"
	"strings"

	"github.com/viant/vec/search"
)

// Distance computes a distance between two equal-length vectors.
type Distance func(a, b []float64) (float64, error)

const (
	// DistanceL2 names L2Distance.
	DistanceL2 = "l2"
	// DistanceL2F32 names L2DistanceF32.
	DistanceL2F32 = "l2f32"
)

// DistanceByName resolves a Distance from its configuration name. "euclidean"
// is accepted as an alias of "l2".
func DistanceByName(name string) (Distance, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", DistanceL2, "euclidean":
		return L2Distance, nil
	case DistanceL2F32:
		return L2DistanceF32, nil
	}
	return nil, fmt.Errorf("vector: unsupported distance %q", name)
}

// L2Distance computes the Euclidean (L2) distance between two vectors.
// It returns an error if the vectors have different lengths.
func L2Distance(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector: L2 distance dimension mismatch: %d vs %d", len(a), len(b))
	}
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum), nil
}

// L2DistanceF32 computes the Euclidean distance with the float32 kernel of
// viant/vec. Inputs are narrowed to float32, so results carry about 7
// significant digits.
func L2DistanceF32(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector: L2 distance dimension mismatch: %d vs %d", len(a), len(b))
	}
	if len(a) == 0 {
		return 0, nil
	}
	return float64(search.Float32s(narrow(a)).EuclideanDistance(narrow(b))), nil
}

func narrow(v []float64) []float32 {
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(x)
	}
	return out
}
