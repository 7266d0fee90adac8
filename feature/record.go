package feature

import (
	"encoding/json"
	"fmt"
)

// Frame is a single entry of a record's data collection.
type Frame struct {
	Values []float64 `json:"values"`
}

// Record is a parsed feature file. ID identifies the source it was loaded
// from (a file path or catalog key) and is not part of the JSON payload.
type Record struct {
	ID   string  `json:"-"`
	Data []Frame `json:"data"`
}

// Parse decodes a feature record from JSON. Content that is not valid JSON or
// that carries wrongly typed data/values fields yields an error wrapping
// ErrMalformed. A missing or empty data collection is not an error here; it
// is reported by Extract.
func Parse(id string, content []byte) (*Record, error) {
	rec := &Record{ID: id}
	if err := json.Unmarshal(content, rec); err != nil {
		return nil, fmt.Errorf("feature: %s: %w: %v", id, ErrMalformed, err)
	}
	return rec, nil
}
