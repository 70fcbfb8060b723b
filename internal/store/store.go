package store

import (
	"context"
	"database/sql"

	"github.com/rotisserie/eris"

	"github.com/sells-group/conference-cli/internal/model"
)

// Store defines the persistence interface for parse runs and their
// canonical company profiles.
type Store interface {
	// Runs
	CreateRun(ctx context.Context, documents []string) (*model.ParseRun, error)
	CompleteRun(ctx context.Context, runID string, status model.RunStatus, profileCount, recordCount int) error
	GetRun(ctx context.Context, runID string) (*model.ParseRun, error)
	ListRuns(ctx context.Context, limit int) ([]model.ParseRun, error)

	// Profiles
	SaveProfiles(ctx context.Context, runID string, profiles []model.CompanyProfile) error
	ListProfiles(ctx context.Context, runID string) ([]model.CompanyProfile, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// ErrNotFound is returned when a requested run does not exist.
var ErrNotFound = eris.New("store: not found")

func checkRowsAffected(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrapf(err, "store: rows affected for %s %s", kind, id)
	}
	if n == 0 {
		return eris.Wrapf(ErrNotFound, "%s %s", kind, id)
	}
	return nil
}
