package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/conference-cli/internal/extract"
	"github.com/sells-group/conference-cli/internal/pipeline"
	"github.com/sells-group/conference-cli/internal/store"
)

// initStore opens the configured store backend.
func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite", "":
		st, err := store.NewSQLite(cfg.Store.DatabaseURL)
		if err != nil {
			return nil, eris.Wrap(err, "init sqlite store")
		}
		return st, nil
	case "postgres":
		st, err := store.NewPostgres(ctx, cfg.Store.DatabaseURL)
		if err != nil {
			return nil, eris.Wrap(err, "init postgres store")
		}
		return st, nil
	default:
		return nil, eris.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// pipelineConfig builds pipeline settings from the loaded config.
func pipelineConfig() pipeline.Config {
	return pipeline.Config{
		MaxConcurrentDocuments: cfg.Parse.MaxConcurrentDocuments,
		Classifier: extract.ClassifierConfig{
			TeamOfMinCount:    cfg.Parse.TeamOfMinCount,
			MinAttendeeBlocks: cfg.Parse.MinAttendeeBlocks,
		},
	}
}
