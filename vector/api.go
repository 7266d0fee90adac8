package vector

import (
	"context"

	"github.com/viant/audiosim/feature"
	"github.com/viant/audiosim/source"
)

// Store is a writable feature catalog. It serves stored records as a
// source.Source so searches can run against it instead of a directory.
type Store interface {
	source.Source

	// Put inserts or replaces records and returns their IDs in input order.
	// Every record must have a non-empty ID.
	Put(ctx context.Context, records []*feature.Record) ([]string, error)

	// Remove deletes the record with the given ID. Removing a missing ID is
	// not an error.
	Remove(ctx context.Context, id string) error
}
