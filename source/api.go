package source

import (
	"context"
	"errors"

	"github.com/viant/audiosim/feature"
)

// ErrNotFound reports a record identifier that does not exist in a Source.
var ErrNotFound = errors.New("record not found")

// ErrMalformed reports record content that cannot be parsed. It is the same
// sentinel as feature.ErrMalformed so either may be used with errors.Is.
var ErrMalformed = feature.ErrMalformed

// Source is the record-loading collaborator of the search.
type Source interface {
	// List returns the identifiers of all candidate records. Callers must not
	// rely on the order beyond it being stable for a single call.
	List(ctx context.Context) ([]string, error)

	// Load returns the record for id. Errors wrap ErrNotFound when the record
	// does not exist and ErrMalformed when its content cannot be parsed.
	Load(ctx context.Context, id string) (*feature.Record, error)
}
