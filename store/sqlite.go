package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/minaorangina/arcade/registry"
	_ "modernc.org/sqlite"
)

// SQLiteResultStore keeps the win log in a SQLite file
type SQLiteResultStore struct {
	db *sql.DB
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// OpenSQLiteResultStore opens or creates the database at path
func OpenSQLiteResultStore(path string) (*SQLiteResultStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("results database path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Clean(path)+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// one writer; hubs record wins from their own goroutines
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}
	if err := createSchemas(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schemas: %w", err)
	}

	return &SQLiteResultStore{db: db}, nil
}

func createSchemas(db *sql.DB) error {
	schemas := []string{
		`CREATE TABLE IF NOT EXISTS results (
			id TEXT PRIMARY KEY,
			arcade_id TEXT NOT NULL,
			department_id TEXT NOT NULL,
			kind TEXT NOT NULL,
			started_at INTEGER NOT NULL,
			won_at INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_results_department_id ON results(department_id);`,
	}

	for _, query := range schemas {
		if _, err := db.Exec(query); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteResultStore) Record(ctx context.Context, r Result) error {
	if err := r.validate(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO results (id, arcade_id, department_id, kind, started_at, won_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.ArcadeID, r.DepartmentID, r.Kind.String(), toMillis(r.StartedAt), toMillis(r.WonAt),
	)
	if err != nil {
		return fmt.Errorf("record result %s: %w", r.ID, err)
	}
	return nil
}

func (s *SQLiteResultStore) List(ctx context.Context, departmentID string) ([]Result, error) {
	query := `SELECT id, arcade_id, department_id, kind, started_at, won_at FROM results`
	args := []interface{}{}
	if departmentID != "" {
		query += ` WHERE department_id = ?`
		args = append(args, departmentID)
	}
	query += ` ORDER BY won_at DESC, rowid DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	defer rows.Close()

	out := []Result{}
	for rows.Next() {
		var (
			r              Result
			kind           string
			started, wonAt int64
		)
		if err := rows.Scan(&r.ID, &r.ArcadeID, &r.DepartmentID, &kind, &started, &wonAt); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		if r.Kind, err = registry.ParseKind(kind); err != nil {
			return nil, fmt.Errorf("result %s: %w", r.ID, err)
		}
		r.StartedAt = fromMillis(started)
		r.WonAt = fromMillis(wonAt)
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLiteResultStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
