//go:build sqlite

package store

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"acovea/internal/report"

	_ "modernc.org/sqlite"
)

const timeLayout = time.RFC3339Nano

func parseTime(s string) time.Time {
	t, _ := time.Parse(timeLayout, s)
	return t
}

// SQLiteStore persists run history to a sqlite database file, for
// longer-lived comparisons across invocations. Built only with
// `-tags sqlite`; the default build uses MemoryStore instead.
type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func newSQLiteStore(path string) (Store, error) {
	return NewSQLiteStore(path), nil
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}
	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}
	s.db = db
	return nil
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func createTables(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			target_name TEXT NOT NULL,
			config_version TEXT NOT NULL,
			mode TEXT NOT NULL,
			seed INTEGER NOT NULL,
			started_at TEXT NOT NULL,
			finished_at TEXT NOT NULL,
			aborted INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS generations (
			run_id TEXT NOT NULL,
			generation INTEGER NOT NULL,
			avg_fitness REAL NOT NULL,
			PRIMARY KEY (run_id, generation)
		)`,
		`CREATE TABLE IF NOT EXISTS final_reports (
			run_id TEXT PRIMARY KEY,
			payload BLOB NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, errors.New("sqlite store not initialized")
	}
	return s.db, nil
}

func (s *SQLiteStore) SaveRun(ctx context.Context, run RunRecord) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}
	aborted := 0
	if run.Aborted {
		aborted = 1
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO runs (id, target_name, config_version, mode, seed, started_at, finished_at, aborted)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			target_name = excluded.target_name,
			config_version = excluded.config_version,
			mode = excluded.mode,
			seed = excluded.seed,
			started_at = excluded.started_at,
			finished_at = excluded.finished_at,
			aborted = excluded.aborted
	`, run.ID, run.TargetName, run.ConfigVersion, run.Mode, run.Seed,
		run.StartedAt.Format(timeLayout), run.FinishedAt.Format(timeLayout), aborted)
	return err
}

func (s *SQLiteStore) GetRun(ctx context.Context, id string) (RunRecord, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return RunRecord{}, false, err
	}
	row := db.QueryRowContext(ctx, `
		SELECT target_name, config_version, mode, seed, started_at, finished_at, aborted
		FROM runs WHERE id = ?
	`, id)
	var run RunRecord
	var started, finished string
	var aborted int
	run.ID = id
	if err := row.Scan(&run.TargetName, &run.ConfigVersion, &run.Mode, &run.Seed, &started, &finished, &aborted); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return RunRecord{}, false, nil
		}
		return RunRecord{}, false, err
	}
	run.StartedAt = parseTime(started)
	run.FinishedAt = parseTime(finished)
	run.Aborted = aborted != 0
	return run, true, nil
}

func (s *SQLiteStore) SaveGeneration(ctx context.Context, rec GenerationRecord) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO generations (run_id, generation, avg_fitness)
		VALUES (?, ?, ?)
		ON CONFLICT(run_id, generation) DO UPDATE SET avg_fitness = excluded.avg_fitness
	`, rec.RunID, rec.Generation, rec.AvgFitness)
	return err
}

func (s *SQLiteStore) GetGenerations(ctx context.Context, runID string) ([]GenerationRecord, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, false, err
	}
	rows, err := db.QueryContext(ctx, `
		SELECT generation, avg_fitness FROM generations WHERE run_id = ? ORDER BY generation
	`, runID)
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()

	var recs []GenerationRecord
	for rows.Next() {
		var rec GenerationRecord
		rec.RunID = runID
		if err := rows.Scan(&rec.Generation, &rec.AvgFitness); err != nil {
			return nil, false, err
		}
		recs = append(recs, rec)
	}
	return recs, len(recs) > 0, rows.Err()
}

func (s *SQLiteStore) SaveFinalReport(ctx context.Context, runID string, final report.FinalReport) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}
	payload, err := EncodeFinalReport(final)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO final_reports (run_id, payload) VALUES (?, ?)
		ON CONFLICT(run_id) DO UPDATE SET payload = excluded.payload
	`, runID, payload)
	return err
}

func (s *SQLiteStore) GetFinalReport(ctx context.Context, runID string) (report.FinalReport, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return report.FinalReport{}, false, err
	}
	row := db.QueryRowContext(ctx, `SELECT payload FROM final_reports WHERE run_id = ?`, runID)
	var payload []byte
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return report.FinalReport{}, false, nil
		}
		return report.FinalReport{}, false, err
	}
	final, err := DecodeFinalReport(payload)
	if err != nil {
		return report.FinalReport{}, false, err
	}
	return final, true, nil
}
