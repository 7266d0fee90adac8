package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/viant/audiosim/config"
	"github.com/viant/audiosim/knn"
	"github.com/viant/audiosim/logging"
	"github.com/viant/audiosim/source"
	"github.com/viant/audiosim/vector"
)

func newApp() *cli.Command {
	common := []cli.Flag{
		&cli.StringFlag{Name: "config", Usage: "YAML config file"},
		&cli.StringFlag{Name: "env", Usage: "environment file", Value: ".env"},
		&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error"},
		&cli.StringFlag{Name: "log-format", Usage: "text or json"},
	}
	return &cli.Command{
		Name:  "audiosim",
		Usage: "find the audio feature files most similar to a given one",
		Commands: []*cli.Command{
			{
				Name:  "nearest",
				Usage: "list the k nearest neighbours of a center feature file",
				Flags: append([]cli.Flag{
					&cli.StringFlag{Name: "center", Usage: "center record: a file path, or a catalog id with --db", Required: true},
					&cli.StringFlag{Name: "dir", Usage: "directory of candidate feature files"},
					&cli.StringFlag{Name: "pattern", Usage: "candidate file name pattern, e.g. *.json"},
					&cli.StringFlag{Name: "db", Usage: "SQLite feature catalog to search instead of a directory"},
					&cli.IntFlag{Name: "k", Usage: "number of neighbours"},
					&cli.IntFlag{Name: "workers", Usage: "parallel workers"},
					&cli.StringFlag{Name: "distance", Usage: "l2 or l2f32"},
					&cli.BoolFlag{Name: "exclude-center", Usage: "do not return the center as its own neighbour"},
					&cli.BoolFlag{Name: "distances", Usage: "print distances next to identifiers"},
					&cli.BoolFlag{Name: "json", Usage: "print results as JSON"},
				}, common...),
				Action: nearestAction,
			},
			{
				Name:  "import",
				Usage: "import a directory of feature files into a SQLite catalog",
				Flags: append([]cli.Flag{
					&cli.StringFlag{Name: "dir", Usage: "directory of feature files", Required: true},
					&cli.StringFlag{Name: "pattern", Usage: "file name pattern, e.g. *.json"},
					&cli.StringFlag{Name: "db", Usage: "SQLite catalog path", Required: true},
				}, common...),
				Action: importAction,
			},
		},
	}
}

// loadConfig reads the config layers and applies explicitly set flags on top.
func loadConfig(cmd *cli.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(cmd.String("config"), cmd.String("env"))
	if err != nil {
		return nil, nil, err
	}
	if cmd.IsSet("dir") {
		cfg.Source.Kind = config.SourceDir
		cfg.Source.Dir = cmd.String("dir")
	}
	if cmd.IsSet("pattern") {
		cfg.Source.Pattern = cmd.String("pattern")
	}
	if cmd.IsSet("db") {
		cfg.Source.DB = cmd.String("db")
		if !cmd.IsSet("dir") {
			cfg.Source.Kind = config.SourceCatalog
		}
	}
	if cmd.IsSet("k") {
		cfg.K = cmd.Int("k")
	}
	if cmd.IsSet("workers") {
		cfg.Workers = cmd.Int("workers")
	}
	if cmd.IsSet("distance") {
		cfg.Distance = cmd.String("distance")
	}
	if cmd.IsSet("exclude-center") {
		cfg.ExcludeCenter = cmd.Bool("exclude-center")
	}
	if cmd.IsSet("log-level") {
		cfg.Log.Level = cmd.String("log-level")
	}
	if cmd.IsSet("log-format") {
		cfg.Log.Format = cmd.String("log-format")
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cfg.Log, cmd.Root().ErrWriter)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

type jsonNeighbor struct {
	ID       string  `json:"id"`
	Distance float64 `json:"distance"`
}

func nearestAction(ctx context.Context, cmd *cli.Command) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	src, closeSrc, err := cfg.OpenSource(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = closeSrc() }()

	opts, err := cfg.SearchOptions(logger)
	if err != nil {
		return err
	}
	neighbors, err := knn.New(opts...).NearestWithDistances(ctx, cmd.String("center"), src, cfg.K)
	if err != nil {
		return err
	}

	out := cmd.Root().Writer
	if cmd.Bool("json") {
		items := make([]jsonNeighbor, len(neighbors))
		for i, n := range neighbors {
			items[i] = jsonNeighbor{ID: n.ID, Distance: n.Distance}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}
	for _, n := range neighbors {
		if cmd.Bool("distances") {
			fmt.Fprintf(out, "%s\t%g\n", n.ID, n.Distance)
			continue
		}
		fmt.Fprintln(out, n.ID)
	}
	return nil
}

func importAction(ctx context.Context, cmd *cli.Command) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	store, closeStore, err := cfg.OpenCatalog(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	stats, err := vector.Import(ctx, store, source.NewDir(cfg.Source.Dir, cfg.Source.Pattern), logger)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.Root().Writer, "imported %d, skipped %d\n", stats.Imported, stats.Skipped)
	return nil
}
