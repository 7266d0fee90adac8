package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/viant/audiosim/feature"
)

// Dir serves the regular files of a single directory as feature records.
// Record identifiers are file paths joined with the directory path, so the
// center file passed by a caller matches its own candidate entry.
type Dir struct {
	// Path is the directory holding the feature files.
	Path string

	// Pattern optionally restricts candidates to base names matching a
	// filepath.Match pattern such as "*.json". Empty means every file.
	Pattern string
}

// NewDir returns a Dir for path.
func NewDir(path, pattern string) *Dir {
	return &Dir{Path: path, Pattern: pattern}
}

// List returns the paths of the regular files in the directory, sorted by
// name. Subdirectories are not descended into.
func (d *Dir) List(ctx context.Context) ([]string, error) {
	if d.Pattern != "" {
		if _, err := filepath.Match(d.Pattern, ""); err != nil {
			return nil, fmt.Errorf("source: invalid pattern %q: %w", d.Pattern, err)
		}
	}
	entries, err := os.ReadDir(d.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("source: directory %s: %w", d.Path, ErrNotFound)
		}
		return nil, fmt.Errorf("source: list %s: %w", d.Path, err)
	}
	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !entry.Type().IsRegular() {
			continue
		}
		if d.Pattern != "" {
			if ok, _ := filepath.Match(d.Pattern, entry.Name()); !ok {
				continue
			}
		}
		ids = append(ids, filepath.Join(d.Path, entry.Name()))
	}
	return ids, nil
}

// Load reads and parses the feature file at id.
func (d *Dir) Load(ctx context.Context, id string) (*feature.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return LoadFile(id)
}

// LoadFile reads and parses a single feature file.
func LoadFile(path string) (*feature.Record, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("source: %s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("source: read %s: %w", path, err)
	}
	return feature.Parse(path, content)
}

var _ Source = (*Dir)(nil)
