package knn

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/viant/audiosim/feature"
	"github.com/viant/audiosim/index/bruteforce"
	"github.com/viant/audiosim/source"
	"github.com/viant/audiosim/vector"
)

// DefaultK is the number of neighbours returned when k is not positive.
const DefaultK = 10

// Neighbor is a ranked candidate relative to a center record.
type Neighbor struct {
	Center   string
	ID       string
	Distance float64
}

// Searcher runs nearest-neighbour searches. It holds configuration only and
// is safe for concurrent use.
type Searcher struct {
	logger        *slog.Logger
	layout        feature.Layout
	distance      vector.Distance
	workers       int
	excludeCenter bool
}

// New returns a Searcher using Euclidean distance over feature.DefaultLayout.
func New(opts ...Option) *Searcher {
	s := &Searcher{
		logger:   slog.New(slog.DiscardHandler),
		layout:   feature.DefaultLayout,
		distance: vector.L2Distance,
		workers:  1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FindKNearest ranks candidates by distance to center and returns the first
// k. A center without features yields an empty result and no error.
// Candidates without features, nil candidates and candidates whose dimension
// differs from the center are skipped. When fewer than k candidates remain,
// all of them are returned and a warning is logged.
func (s *Searcher) FindKNearest(ctx context.Context, center *feature.Record, candidates []*feature.Record, k int) ([]Neighbor, error) {
	if k <= 0 {
		k = DefaultK
	}
	centerVec, err := s.layout.Extract(center)
	if err != nil {
		if !errors.Is(err, feature.ErrNoFeatures) {
			return nil, fmt.Errorf("knn: %w", err)
		}
		s.logger.WarnContext(ctx, "no features in record", "id", recordID(center), "role", "center", "reason", err)
		return nil, nil
	}

	ids := make([]string, 0, len(candidates))
	vecs := make([][]float64, 0, len(candidates))
	skipped := 0
	for _, cand := range candidates {
		if cand == nil {
			skipped++
			continue
		}
		if s.excludeCenter && sameID(cand.ID, center.ID) {
			continue
		}
		vec, err := s.layout.Extract(cand)
		if err != nil {
			s.logger.WarnContext(ctx, "no features in record", "id", cand.ID, "role", "candidate", "reason", err)
			skipped++
			continue
		}
		if len(vec) != len(centerVec) {
			s.logger.WarnContext(ctx, "candidate skipped", "id", cand.ID,
				"reason", "dimension mismatch", "dim", len(vec), "centerDim", len(centerVec))
			skipped++
			continue
		}
		ids = append(ids, cand.ID)
		vecs = append(vecs, vec)
	}

	idx := bruteforce.New(bruteforce.WithDistance(s.distance), bruteforce.WithWorkers(s.workers))
	if err := idx.Build(ids, vecs); err != nil {
		return nil, fmt.Errorf("knn: %w", err)
	}
	if idx.Len() < k {
		s.logger.WarnContext(ctx, "fewer candidates than k", "center", center.ID, "k", k, "available", idx.Len())
	}
	outIDs, dists, err := idx.Query(ctx, centerVec, k)
	if err != nil {
		return nil, fmt.Errorf("knn: %w", err)
	}
	result := make([]Neighbor, len(outIDs))
	for i := range outIDs {
		result[i] = Neighbor{Center: center.ID, ID: outIDs[i], Distance: dists[i]}
	}
	s.logger.DebugContext(ctx, "search completed", "center", center.ID, "k", k,
		"candidates", len(candidates), "skipped", skipped, "results", len(result))
	return result, nil
}

// NearestWithDistances loads the center and every candidate of src and
// ranks them with FindKNearest. A center that does not exist yields an empty
// result, like a center without features. Any other failure to load the
// center, and failing to list src, is returned as an error; a candidate that
// fails to load is logged and skipped.
func (s *Searcher) NearestWithDistances(ctx context.Context, centerID string, src source.Source, k int) ([]Neighbor, error) {
	center, err := src.Load(ctx, centerID)
	if err != nil {
		if errors.Is(err, source.ErrNotFound) {
			s.logger.WarnContext(ctx, "center not found", "id", centerID, "error", err)
			return nil, nil
		}
		return nil, fmt.Errorf("knn: center %s: %w", centerID, err)
	}
	ids, err := src.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("knn: list candidates: %w", err)
	}
	candidates, err := s.load(ctx, src, ids)
	if err != nil {
		return nil, err
	}
	return s.FindKNearest(ctx, center, candidates, k)
}

// Nearest is NearestWithDistances returning candidate identifiers only.
func (s *Searcher) Nearest(ctx context.Context, centerID string, src source.Source, k int) ([]string, error) {
	neighbors, err := s.NearestWithDistances(ctx, centerID, src, k)
	if err != nil {
		return nil, err
	}
	return IDs(neighbors), nil
}

// load returns one slot per id; slots of candidates that failed to load
// stay nil. Only cancellation aborts the load.
func (s *Searcher) load(ctx context.Context, src source.Source, ids []string) ([]*feature.Record, error) {
	records := make([]*feature.Record, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, id := range ids {
		g.Go(func() error {
			rec, err := src.Load(gctx, id)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				s.logger.WarnContext(gctx, "candidate skipped", "id", id, "error", err)
				return nil
			}
			records[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("knn: load candidates: %w", err)
	}
	return records, nil
}

// IDs returns the candidate identifiers of neighbors in rank order.
func IDs(neighbors []Neighbor) []string {
	out := make([]string, len(neighbors))
	for i, n := range neighbors {
		out[i] = n.ID
	}
	return out
}

// NearestNeighboursWithDistances searches the files of folder for the k
// nearest neighbours of the feature file at centerPath.
func NearestNeighboursWithDistances(ctx context.Context, centerPath, folder string, k int, opts ...Option) ([]Neighbor, error) {
	return New(opts...).NearestWithDistances(ctx, centerPath, source.NewDir(folder, ""), k)
}

// NearestNeighbours is NearestNeighboursWithDistances returning paths only.
func NearestNeighbours(ctx context.Context, centerPath, folder string, k int, opts ...Option) ([]string, error) {
	return New(opts...).Nearest(ctx, centerPath, source.NewDir(folder, ""), k)
}

func recordID(rec *feature.Record) string {
	if rec == nil {
		return ""
	}
	return rec.ID
}

func sameID(a, b string) bool {
	return a == b || filepath.Clean(a) == filepath.Clean(b)
}
