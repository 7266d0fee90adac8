package config

import (
	"context"
	"fmt"

	"github.com/viant/audiosim/engine"
	"github.com/viant/audiosim/source"
	"github.com/viant/audiosim/vector"
)

// OpenSource opens the configured candidate source. The returned close
// function releases any database handle and is never nil.
func (c *Config) OpenSource(ctx context.Context) (source.Source, func() error, error) {
	noop := func() error { return nil }
	switch c.Source.Kind {
	case SourceDir:
		if c.Source.Dir == "" {
			return nil, noop, fmt.Errorf("config: source.dir is required for source kind %q", SourceDir)
		}
		return source.NewDir(c.Source.Dir, c.Source.Pattern), noop, nil
	case SourceCatalog:
		store, closeFn, err := c.OpenCatalog(ctx)
		if err != nil {
			return nil, noop, err
		}
		return store, closeFn, nil
	}
	return nil, noop, fmt.Errorf("config: unsupported source kind %q", c.Source.Kind)
}

// OpenCatalog opens the SQLite feature catalog at Source.DB, creating its
// schema when needed.
func (c *Config) OpenCatalog(ctx context.Context) (*vector.SQLiteStore, func() error, error) {
	noop := func() error { return nil }
	if c.Source.DB == "" {
		return nil, noop, fmt.Errorf("config: source.db is required for the feature catalog")
	}
	db, err := engine.Open(c.Source.DB)
	if err != nil {
		return nil, noop, fmt.Errorf("config: open %s: %w", c.Source.DB, err)
	}
	store, err := vector.NewSQLiteStore(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, noop, fmt.Errorf("config: %w", err)
	}
	return store, db.Close, nil
}
