package index

import "context"

// Index defines an exhaustive vector index. It is built from (id, vector)
// pairs and answers kNN queries ordered by ascending distance.
type Index interface {
	// Build loads the index from the given ids and vectors.
	// ids and vectors must have the same length and all vectors the same
	// dimension.
	Build(ids []string, vectors [][]float64) error

	// Query returns up to k matches as parallel slices of ids and distances,
	// nearest first. Equal distances keep build order. k <= 0 returns every
	// match.
	Query(ctx context.Context, query []float64, k int) (ids []string, distances []float64, err error)

	// Len reports the number of indexed vectors.
	Len() int
}
