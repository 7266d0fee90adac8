package feature

import (
	"errors"
	"fmt"
)

var (
	// ErrNoFeatures reports a record without usable feature values: the data
	// collection is absent or empty, or the inspected frame carries too few
	// values. Such records are excluded from search, not failed.
	ErrNoFeatures = errors.New("no features")

	// ErrMalformed reports structurally invalid record content.
	ErrMalformed = errors.New("malformed record")
)

const (
	// DefaultFrame is the data entry holding the feature values.
	DefaultFrame = 0
	// DefaultSkip is the number of leading values that are metadata rather
	// than feature dimensions.
	DefaultSkip = 1
)

// Layout locates the feature vector inside a record.
type Layout struct {
	Frame int
	Skip  int
}

// DefaultLayout reads the first frame and drops its first value.
var DefaultLayout = Layout{Frame: DefaultFrame, Skip: DefaultSkip}

// Extract returns the feature vector of rec. It returns an error wrapping
// ErrNoFeatures when the record has no usable values; at least one value must
// remain after the leading metadata values are dropped. A negative Frame or
// Skip is an error of its own.
func (l Layout) Extract(rec *Record) ([]float64, error) {
	if l.Frame < 0 || l.Skip < 0 {
		return nil, fmt.Errorf("feature: invalid layout frame=%d skip=%d", l.Frame, l.Skip)
	}
	if rec == nil {
		return nil, fmt.Errorf("feature: nil record: %w", ErrNoFeatures)
	}
	if len(rec.Data) == 0 {
		return nil, fmt.Errorf("feature: %s: data absent or empty: %w", rec.ID, ErrNoFeatures)
	}
	if l.Frame >= len(rec.Data) {
		return nil, fmt.Errorf("feature: %s: frame %d not present (have %d): %w", rec.ID, l.Frame, len(rec.Data), ErrNoFeatures)
	}
	values := rec.Data[l.Frame].Values
	if len(values) < l.Skip+1 {
		return nil, fmt.Errorf("feature: %s: %d values, need at least %d: %w", rec.ID, len(values), l.Skip+1, ErrNoFeatures)
	}
	return append([]float64(nil), values[l.Skip:]...), nil
}

// Extract applies DefaultLayout.
func Extract(rec *Record) ([]float64, error) { return DefaultLayout.Extract(rec) }
