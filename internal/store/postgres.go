package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/conference-cli/internal/extract"
	"github.com/sells-group/conference-cli/internal/model"
)

// Pool is the subset of pgxpool.Pool the store uses, so pgxmock can
// stand in for tests.
type Pool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS parse_runs (
	id            TEXT PRIMARY KEY,
	documents     JSONB NOT NULL,
	status        TEXT NOT NULL DEFAULT 'running',
	profile_count INTEGER NOT NULL DEFAULT 0,
	record_count  INTEGER NOT NULL DEFAULT 0,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	completed_at  TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS company_profiles (
	run_id      TEXT NOT NULL REFERENCES parse_runs(id),
	company_key TEXT NOT NULL,
	company     TEXT NOT NULL,
	data        JSONB NOT NULL,
	PRIMARY KEY (run_id, company_key)
);

CREATE INDEX IF NOT EXISTS idx_parse_runs_status ON parse_runs(status);
CREATE INDEX IF NOT EXISTS idx_company_profiles_company ON company_profiles(company);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) CreateRun(ctx context.Context, documents []string) (*model.ParseRun, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	docsJSON, err := json.Marshal(documents)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal documents")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO parse_runs (id, documents, status, created_at) VALUES ($1, $2, $3, $4)`,
		id, string(docsJSON), string(model.RunStatusRunning), now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert run")
	}

	return &model.ParseRun{
		ID:        id,
		Documents: documents,
		Status:    model.RunStatusRunning,
		CreatedAt: now,
	}, nil
}

func (s *PostgresStore) CompleteRun(ctx context.Context, runID string, status model.RunStatus, profileCount, recordCount int) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE parse_runs SET status = $1, profile_count = $2, record_count = $3, completed_at = $4 WHERE id = $5`,
		string(status), profileCount, recordCount, time.Now().UTC(), runID,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: complete run %s", runID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Wrapf(ErrNotFound, "run %s", runID)
	}
	return nil
}

func (s *PostgresStore) GetRun(ctx context.Context, runID string) (*model.ParseRun, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, documents, status, profile_count, record_count, created_at, completed_at FROM parse_runs WHERE id = $1`,
		runID,
	)
	run, err := scanPgRun(row.Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, eris.Wrapf(ErrNotFound, "run %s", runID)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get run %s", runID)
	}
	return run, nil
}

func (s *PostgresStore) ListRuns(ctx context.Context, limit int) ([]model.ParseRun, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, documents, status, profile_count, record_count, created_at, completed_at FROM parse_runs ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list runs")
	}
	defer rows.Close()

	var runs []model.ParseRun
	for rows.Next() {
		run, err := scanPgRun(rows.Scan)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan run")
		}
		runs = append(runs, *run)
	}
	return runs, eris.Wrap(rows.Err(), "postgres: iterate runs")
}

func (s *PostgresStore) SaveProfiles(ctx context.Context, runID string, profiles []model.CompanyProfile) error {
	for _, p := range profiles {
		data, err := json.Marshal(p)
		if err != nil {
			return eris.Wrapf(err, "postgres: marshal profile %s", p.Company)
		}
		_, err = s.pool.Exec(ctx,
			`INSERT INTO company_profiles (run_id, company_key, company, data) VALUES ($1, $2, $3, $4)
			 ON CONFLICT (run_id, company_key) DO UPDATE SET company = EXCLUDED.company, data = EXCLUDED.data`,
			runID, extract.CanonicalKey(p.Company), p.Company, string(data),
		)
		if err != nil {
			return eris.Wrapf(err, "postgres: insert profile %s", p.Company)
		}
	}
	return nil
}

func (s *PostgresStore) ListProfiles(ctx context.Context, runID string) ([]model.CompanyProfile, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT data FROM company_profiles WHERE run_id = $1 ORDER BY company_key`,
		runID,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: list profiles for run %s", runID)
	}
	defer rows.Close()

	var profiles []model.CompanyProfile
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, eris.Wrap(err, "postgres: scan profile")
		}
		var p model.CompanyProfile
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal profile")
		}
		profiles = append(profiles, p)
	}
	return profiles, eris.Wrap(rows.Err(), "postgres: iterate profiles")
}

// scanPgRun decodes one parse_runs row via the given Scan function.
func scanPgRun(scan func(...any) error) (*model.ParseRun, error) {
	var run model.ParseRun
	var docsJSON []byte
	var status string
	var completed sql.NullTime

	if err := scan(&run.ID, &docsJSON, &status, &run.ProfileCount, &run.RecordCount, &run.CreatedAt, &completed); err != nil {
		return nil, err
	}
	run.Status = model.RunStatus(status)
	if err := json.Unmarshal(docsJSON, &run.Documents); err != nil {
		return nil, eris.Wrap(err, "store: unmarshal run documents")
	}
	if completed.Valid {
		t := completed.Time
		run.CompletedAt = &t
	}
	return &run, nil
}
