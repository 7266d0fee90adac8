package bruteforce

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/viant/audiosim/index"
	"github.com/viant/audiosim/vector"
)

// minChunk is the smallest number of vectors handed to one worker.
const minChunk = 64

// Index is a brute-force vector index ranking by a vector.Distance,
// Euclidean by default.
type Index struct {
	ids      []string
	vecs     [][]float64
	dim      int
	distance vector.Distance
	workers  int
}

// Option configures an Index.
type Option func(*Index)

// WithDistance sets the distance function. Nil keeps vector.L2Distance.
func WithDistance(fn vector.Distance) Option {
	return func(i *Index) {
		if fn != nil {
			i.distance = fn
		}
	}
}

// WithWorkers bounds the goroutines used to compute distances. Values below
// 2 keep the scan on the calling goroutine.
func WithWorkers(n int) Option {
	return func(i *Index) { i.workers = n }
}

// New returns an empty Index.
func New(opts ...Option) *Index {
	i := &Index{distance: vector.L2Distance, workers: 1}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Build loads ids and vectors.
func (i *Index) Build(ids []string, vectors [][]float64) error {
	if len(ids) != len(vectors) {
		return fmt.Errorf("bruteforce: ids and vectors length mismatch: %d != %d", len(ids), len(vectors))
	}
	if len(ids) == 0 {
		i.ids, i.vecs, i.dim = nil, nil, 0
		return nil
	}
	dim := len(vectors[0])
	for j := range vectors {
		if len(vectors[j]) != dim {
			return fmt.Errorf("bruteforce: inconsistent vector dims %d vs %d", len(vectors[j]), dim)
		}
	}
	i.ids = append([]string(nil), ids...)
	i.vecs = append([][]float64(nil), vectors...)
	i.dim = dim
	return nil
}

// Len reports the number of indexed vectors.
func (i *Index) Len() int { return len(i.ids) }

// Query returns the top-k ids by ascending distance. Ties keep build order.
func (i *Index) Query(ctx context.Context, query []float64, k int) ([]string, []float64, error) {
	if len(i.vecs) == 0 {
		return nil, nil, nil
	}
	if len(query) != i.dim {
		return nil, nil, fmt.Errorf("bruteforce: query dim %d != index dim %d", len(query), i.dim)
	}
	dists, err := i.distances(ctx, query)
	if err != nil {
		return nil, nil, err
	}
	order := make([]int, len(dists))
	for j := range order {
		order[j] = j
	}
	sort.SliceStable(order, func(a, b int) bool { return dists[order[a]] < dists[order[b]] })
	if k <= 0 || k > len(order) {
		k = len(order)
	}
	outIDs := make([]string, k)
	outDists := make([]float64, k)
	for n := 0; n < k; n++ {
		outIDs[n] = i.ids[order[n]]
		outDists[n] = dists[order[n]]
	}
	return outIDs, outDists, nil
}

// distances fills one slot per indexed vector; each worker owns a disjoint
// range, so the result does not depend on scheduling.
func (i *Index) distances(ctx context.Context, query []float64) ([]float64, error) {
	distance := i.distance
	if distance == nil {
		distance = vector.L2Distance
	}
	out := make([]float64, len(i.vecs))
	scan := func(from, to int) error {
		for j := from; j < to; j++ {
			d, err := distance(query, i.vecs[j])
			if err != nil {
				return fmt.Errorf("bruteforce: %s: %w", i.ids[j], err)
			}
			out[j] = d
		}
		return nil
	}
	workers := i.workers
	if workers < 2 || len(i.vecs) <= minChunk {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return out, scan(0, len(i.vecs))
	}
	chunk := (len(i.vecs) + workers - 1) / workers
	if chunk < minChunk {
		chunk = minChunk
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for from := 0; from < len(i.vecs); from += chunk {
		to := min(from+chunk, len(i.vecs))
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return scan(from, to)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

var _ index.Index = (*Index)(nil)
