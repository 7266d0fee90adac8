package knn

import (
	"log/slog"

	"github.com/viant/audiosim/feature"
	"github.com/viant/audiosim/vector"
)

// Option configures a Searcher.
type Option func(*Searcher)

// WithLogger sets the logger receiving search diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithLayout sets where feature vectors are read from in a record.
func WithLayout(layout feature.Layout) Option {
	return func(s *Searcher) { s.layout = layout }
}

// WithDistance sets the Euclidean kernel used for ranking.
func WithDistance(fn vector.Distance) Option {
	return func(s *Searcher) {
		if fn != nil {
			s.distance = fn
		}
	}
}

// WithWorkers bounds the goroutines used to load candidates and compute
// distances. The ranking is identical for any value.
func WithWorkers(n int) Option {
	return func(s *Searcher) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithExcludeCenter drops candidates carrying the center's identifier.
// By default the center is ranked like any other candidate and, when
// present, comes back as its own nearest neighbour at distance 0.
func WithExcludeCenter(exclude bool) Option {
	return func(s *Searcher) { s.excludeCenter = exclude }
}
