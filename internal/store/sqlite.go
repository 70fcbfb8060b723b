package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/conference-cli/internal/extract"
	"github.com/sells-group/conference-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS parse_runs (
	id            TEXT PRIMARY KEY,
	documents     TEXT NOT NULL,
	status        TEXT NOT NULL DEFAULT 'running',
	profile_count INTEGER NOT NULL DEFAULT 0,
	record_count  INTEGER NOT NULL DEFAULT 0,
	created_at    DATETIME NOT NULL DEFAULT (datetime('now')),
	completed_at  DATETIME
);

CREATE TABLE IF NOT EXISTS company_profiles (
	run_id      TEXT NOT NULL REFERENCES parse_runs(id),
	company_key TEXT NOT NULL,
	company     TEXT NOT NULL,
	data        TEXT NOT NULL,
	PRIMARY KEY (run_id, company_key)
);

CREATE INDEX IF NOT EXISTS idx_parse_runs_status ON parse_runs(status);
CREATE INDEX IF NOT EXISTS idx_company_profiles_company ON company_profiles(company);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateRun(ctx context.Context, documents []string) (*model.ParseRun, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	docsJSON, err := json.Marshal(documents)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal documents")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO parse_runs (id, documents, status, created_at) VALUES (?, ?, ?, ?)`,
		id, string(docsJSON), string(model.RunStatusRunning), now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert run")
	}

	return &model.ParseRun{
		ID:        id,
		Documents: documents,
		Status:    model.RunStatusRunning,
		CreatedAt: now,
	}, nil
}

func (s *SQLiteStore) CompleteRun(ctx context.Context, runID string, status model.RunStatus, profileCount, recordCount int) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE parse_runs SET status = ?, profile_count = ?, record_count = ?, completed_at = ? WHERE id = ?`,
		string(status), profileCount, recordCount, time.Now().UTC(), runID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: complete run %s", runID)
	}
	return checkRowsAffected(res, "run", runID)
}

func (s *SQLiteStore) GetRun(ctx context.Context, runID string) (*model.ParseRun, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, documents, status, profile_count, record_count, created_at, completed_at FROM parse_runs WHERE id = ?`,
		runID,
	)
	run, err := scanRun(row.Scan)
	if err == sql.ErrNoRows {
		return nil, eris.Wrapf(ErrNotFound, "run %s", runID)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get run %s", runID)
	}
	return run, nil
}

func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]model.ParseRun, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, documents, status, profile_count, record_count, created_at, completed_at FROM parse_runs ORDER BY created_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list runs")
	}
	defer rows.Close()

	var runs []model.ParseRun
	for rows.Next() {
		run, err := scanRun(rows.Scan)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan run")
		}
		runs = append(runs, *run)
	}
	return runs, eris.Wrap(rows.Err(), "sqlite: iterate runs")
}

func (s *SQLiteStore) SaveProfiles(ctx context.Context, runID string, profiles []model.CompanyProfile) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback()

	for _, p := range profiles {
		data, err := json.Marshal(p)
		if err != nil {
			return eris.Wrapf(err, "sqlite: marshal profile %s", p.Company)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO company_profiles (run_id, company_key, company, data) VALUES (?, ?, ?, ?)
			 ON CONFLICT (run_id, company_key) DO UPDATE SET company = excluded.company, data = excluded.data`,
			runID, extract.CanonicalKey(p.Company), p.Company, string(data),
		)
		if err != nil {
			return eris.Wrapf(err, "sqlite: insert profile %s", p.Company)
		}
	}

	return eris.Wrap(tx.Commit(), "sqlite: commit profiles")
}

func (s *SQLiteStore) ListProfiles(ctx context.Context, runID string) ([]model.CompanyProfile, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT data FROM company_profiles WHERE run_id = ? ORDER BY company_key`,
		runID,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: list profiles for run %s", runID)
	}
	defer rows.Close()

	var profiles []model.CompanyProfile
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan profile")
		}
		var p model.CompanyProfile
		if err := json.Unmarshal([]byte(data), &p); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal profile")
		}
		profiles = append(profiles, p)
	}
	return profiles, eris.Wrap(rows.Err(), "sqlite: iterate profiles")
}

// scanRun decodes one parse_runs row via the given Scan function.
func scanRun(scan func(...any) error) (*model.ParseRun, error) {
	var run model.ParseRun
	var docsJSON string
	var completed sql.NullTime

	if err := scan(&run.ID, &docsJSON, &run.Status, &run.ProfileCount, &run.RecordCount, &run.CreatedAt, &completed); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(docsJSON), &run.Documents); err != nil {
		return nil, eris.Wrap(err, "store: unmarshal run documents")
	}
	if completed.Valid {
		t := completed.Time
		run.CompletedAt = &t
	}
	return &run, nil
}
