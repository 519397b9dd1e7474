package state

import (
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/chuawjk/ecda/internal/forecast"
)

// SQLiteStore implements run-history persistence on SQLite.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// NewSQLiteStore creates an unopened store.
func NewSQLiteStore(logger *slog.Logger) *SQLiteStore {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &SQLiteStore{logger: logger}
}

// Open opens the database at path. Use ":memory:" for an in-memory
// store (tests).
func (s *SQLiteStore) Open(path string) error {
	dsn := path
	if path != ":memory:" {
		dsn = fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open state database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping state database: %w", err)
	}

	s.db = db
	s.path = path
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// CreateRun records the start of a forecast run.
func (s *SQLiteStore) CreateRun(referenceYear, horizonYear int) (*Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	run := &Run{
		ID:            uuid.New().String(),
		Status:        RunStatusRunning,
		ReferenceYear: referenceYear,
		HorizonYear:   horizonYear,
		StartedAt:     time.Now().UTC(),
	}

	s.logger.Debug("creating run", "id", run.ID, "reference_year", referenceYear, "horizon_year", horizonYear)

	_, err := s.db.Exec(
		`INSERT INTO runs (id, status, reference_year, horizon_year, started_at) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.Status, run.ReferenceYear, run.HorizonYear, run.StartedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}
	return run, nil
}

// CompleteRun marks a run finished with the given status.
func (s *SQLiteStore) CompleteRun(id string, status RunStatus, errMsg string) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	_, err := s.db.Exec(
		`UPDATE runs SET status = ?, completed_at = ?, error = ? WHERE id = ?`,
		status, time.Now().UTC(), errMsg, id,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	return nil
}

// GetRun retrieves a run by ID.
func (s *SQLiteStore) GetRun(id string) (*Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	run := &Run{}
	var completedAt sql.NullTime
	var errMsg sql.NullString

	err := s.db.QueryRow(
		`SELECT id, status, reference_year, horizon_year, started_at, completed_at, error FROM runs WHERE id = ?`,
		id,
	).Scan(&run.ID, &run.Status, &run.ReferenceYear, &run.HorizonYear, &run.StartedAt, &completedAt, &errMsg)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	if completedAt.Valid {
		run.CompletedAt = &completedAt.Time
	}
	run.Error = errMsg.String
	return run, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *SQLiteStore) ListRuns(limit int) ([]*Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, status, reference_year, horizon_year, started_at, completed_at, error
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run := &Run{}
		var completedAt sql.NullTime
		var errMsg sql.NullString
		if err := rows.Scan(&run.ID, &run.Status, &run.ReferenceYear, &run.HorizonYear,
			&run.StartedAt, &completedAt, &errMsg); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if completedAt.Valid {
			run.CompletedAt = &completedAt.Time
		}
		run.Error = errMsg.String
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// RecordManifest stores the per-subzone success/failure manifest.
func (s *SQLiteStore) RecordManifest(runID string, manifest []forecast.SubzoneOutcome) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO subzone_results (run_id, subzone, status, error) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare manifest insert: %w", err)
	}
	defer stmt.Close()

	for _, o := range manifest {
		if _, err := stmt.Exec(runID, o.Subzone, string(o.Status), o.Error); err != nil {
			return fmt.Errorf("failed to record outcome for %s: %w", o.Subzone, err)
		}
	}
	return tx.Commit()
}

// SaveGapResults stores the gap series for a run.
func (s *SQLiteStore) SaveGapResults(runID string, gaps []forecast.GapResult) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO gap_results (run_id, subzone, year, demand, capacity, surplus, centres_needed)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare gap insert: %w", err)
	}
	defer stmt.Close()

	for _, g := range gaps {
		if _, err := stmt.Exec(runID, g.Subzone, g.Year, g.Demand, g.Capacity, g.Surplus, g.CentresNeeded); err != nil {
			return fmt.Errorf("failed to save gap for %s year %d: %w", g.Subzone, g.Year, err)
		}
	}
	return tx.Commit()
}

// GetGapResults returns the stored gap series for a run, ordered by
// (subzone, year).
func (s *SQLiteStore) GetGapResults(runID string) ([]forecast.GapResult, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.Query(
		`SELECT subzone, year, demand, capacity, surplus, centres_needed
		 FROM gap_results WHERE run_id = ? ORDER BY subzone, year`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query gaps: %w", err)
	}
	defer rows.Close()

	var gaps []forecast.GapResult
	for rows.Next() {
		var g forecast.GapResult
		if err := rows.Scan(&g.Subzone, &g.Year, &g.Demand, &g.Capacity, &g.Surplus, &g.CentresNeeded); err != nil {
			return nil, fmt.Errorf("failed to scan gap: %w", err)
		}
		gaps = append(gaps, g)
	}
	return gaps, rows.Err()
}
