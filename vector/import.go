package vector

import (
	"context"
	"errors"
	"log/slog"

	"github.com/viant/audiosim/feature"
	"github.com/viant/audiosim/source"
)

// ImportStats summarizes an Import run.
type ImportStats struct {
	Imported int
	Skipped  int
}

// Import copies every record of src into dst. Records that cannot be loaded
// because they vanished or are malformed are skipped and logged; any other
// error aborts the import. Records without features are imported as they
// are, since extraction decides at search time.
func Import(ctx context.Context, dst Store, src source.Source, logger *slog.Logger) (ImportStats, error) {
	var stats ImportStats
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	ids, err := src.List(ctx)
	if err != nil {
		return stats, err
	}
	const batchSize = 256
	batch := make([]*feature.Record, 0, batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if _, err := dst.Put(ctx, batch); err != nil {
			return err
		}
		stats.Imported += len(batch)
		batch = batch[:0]
		return nil
	}
	for _, id := range ids {
		rec, err := src.Load(ctx, id)
		if err != nil {
			if errors.Is(err, source.ErrNotFound) || errors.Is(err, source.ErrMalformed) {
				logger.WarnContext(ctx, "record skipped", "id", id, "error", err)
				stats.Skipped++
				continue
			}
			return stats, err
		}
		batch = append(batch, rec)
		if len(batch) == batchSize {
			if err := flush(); err != nil {
				return stats, err
			}
		}
	}
	if err := flush(); err != nil {
		return stats, err
	}
	logger.InfoContext(ctx, "import completed", "imported", stats.Imported, "skipped", stats.Skipped)
	return stats, nil
}
