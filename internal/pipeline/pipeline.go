// Package pipeline orchestrates the full parse: load documents, extract
// records per document, and reconcile everything into canonical company
// profiles. Per-document extraction is a pure function of that
// document's bytes, so documents run concurrently; reconciliation is a
// single-threaded reduction afterward because profile mutation is
// order-dependent without synchronization.
package pipeline

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/conference-cli/internal/docload"
	"github.com/sells-group/conference-cli/internal/extract"
	"github.com/sells-group/conference-cli/internal/model"
	"github.com/sells-group/conference-cli/internal/reconcile"
)

// Config tunes pipeline behavior.
type Config struct {
	MaxConcurrentDocuments int
	Classifier             extract.ClassifierConfig
}

// SkippedDocument reports a document that could not be read. Unreadable
// documents never abort the batch.
type SkippedDocument struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// Result is the outcome of one pipeline run.
type Result struct {
	RunID       string                 `json:"run_id"`
	Profiles    []model.CompanyProfile `json:"profiles"`
	Documents   int                    `json:"documents"`
	RecordCount int                    `json:"record_count"`
	Skipped     []SkippedDocument      `json:"skipped,omitempty"`
}

// Status derives the run status: partial when any document was skipped,
// failed when every document was.
func (r *Result) Status() model.RunStatus {
	switch {
	case r.Documents == 0 && len(r.Skipped) > 0:
		return model.RunStatusFailed
	case len(r.Skipped) > 0:
		return model.RunStatusPartial
	default:
		return model.RunStatusComplete
	}
}

// Pipeline runs extraction and reconciliation over a set of documents.
type Pipeline struct {
	loader docload.Loader
	cfg    Config
}

// New creates a Pipeline using the given document loader.
func New(loader docload.Loader, cfg Config) *Pipeline {
	if cfg.MaxConcurrentDocuments <= 0 {
		cfg.MaxConcurrentDocuments = 4
	}
	return &Pipeline{loader: loader, cfg: cfg}
}

// Run parses every document and reconciles the combined records into
// canonical profiles.
func (p *Pipeline) Run(ctx context.Context, paths []string) (*Result, error) {
	if len(paths) == 0 {
		return nil, eris.New("pipeline: no documents given")
	}

	perDoc := make([][]model.Record, len(paths))
	var mu sync.Mutex
	var skipped []SkippedDocument

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.MaxConcurrentDocuments)

	for i, path := range paths {
		g.Go(func() error {
			doc, err := p.loader.Load(gCtx, path)
			if err != nil {
				zap.L().Warn("pipeline: skipping unreadable document",
					zap.String("path", path),
					zap.Error(err),
				)
				mu.Lock()
				skipped = append(skipped, SkippedDocument{Path: path, Reason: err.Error()})
				mu.Unlock()
				return nil
			}
			perDoc[i] = extract.ExtractDocument(*doc, p.cfg.Classifier)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "pipeline: extraction")
	}

	acc := reconcile.NewAccumulator()
	records := 0
	for _, recs := range perDoc {
		records += len(recs)
		acc.AddAll(recs)
	}

	result := &Result{
		RunID:       uuid.New().String(),
		Profiles:    acc.Profiles(),
		Documents:   len(paths) - len(skipped),
		RecordCount: records,
		Skipped:     skipped,
	}

	zap.L().Info("pipeline: run complete",
		zap.String("run_id", result.RunID),
		zap.Int("documents", result.Documents),
		zap.Int("skipped", len(result.Skipped)),
		zap.Int("records", result.RecordCount),
		zap.Int("profiles", len(result.Profiles)),
	)
	return result, nil
}
