package vector

import (
	"context"
	"database/sql"
)

const featuresSchema = `
CREATE TABLE IF NOT EXISTS features (
    id     TEXT PRIMARY KEY,
    frames BLOB
);
`

// EnsureSchema creates the features table in the provided database if it
// does not already exist. Frames hold the record's raw data collection as
// produced by EncodeFrames, leading metadata values included.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, featuresSchema)
	return err
}
