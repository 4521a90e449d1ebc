package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"jumpstat/internal/core/aggregate"
)

// DB wraps the SQLite scan-history store. Every load and merge run is
// recorded here so past aggregations can be reviewed without
// re-scanning. The store is a run log only; queries always re-scan
// the filesystem.
type DB struct {
	conn *sql.DB
}

// New creates a new database connection and initializes schema
func New(dbPath string) (*DB, error) {
	// Ensure parent directory exists
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open with WAL mode for concurrent reads
	dsn := dbPath + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(time.Hour)

	db := &DB{conn: conn}

	if err := db.initSchema(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// Scan is one recorded aggregation run.
type Scan struct {
	ID             int64
	DatasetID      string
	Action         string // "load" or "merge"
	BaseDir        string
	TotalFiles     int
	ProcessedFiles int
	FailedFiles    int
	EventCount     int
	UniqueTags     int
	MinDate        *time.Time
	MaxDate        *time.Time
	CreatedAt      time.Time
}

// RecordScan logs one aggregation run for a dataset.
func (db *DB) RecordScan(ds *aggregate.Dataset, action, baseDir string) error {
	stats := ds.Stats()
	_, err := db.conn.Exec(`
		INSERT INTO scans (
			dataset_id, action, base_dir, total_files, processed_files,
			failed_files, event_count, unique_tags, min_date, max_date
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		ds.ID,
		action,
		baseDir,
		stats.TotalFiles,
		stats.ProcessedFiles,
		stats.FailedFiles,
		stats.EventCount,
		stats.UniqueTags,
		stats.MinDate,
		stats.MaxDate,
	)
	if err != nil {
		return fmt.Errorf("failed to record scan: %w", err)
	}
	return nil
}

// ListScans returns recorded runs newest first. A zero since returns
// everything; otherwise only runs recorded after since.
func (db *DB) ListScans(since time.Time) ([]Scan, error) {
	rows, err := db.conn.Query(`
		SELECT id, dataset_id, action, base_dir, total_files, processed_files,
		       failed_files, event_count, unique_tags, min_date, max_date, created_at
		FROM scans
		WHERE created_at > ?
		ORDER BY created_at DESC, id DESC
	`, since.UTC().Format("2006-01-02 15:04:05"))
	if err != nil {
		return nil, fmt.Errorf("failed to query scans: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var scans []Scan
	for rows.Next() {
		var s Scan
		var minDate, maxDate sql.NullTime
		if err := rows.Scan(
			&s.ID, &s.DatasetID, &s.Action, &s.BaseDir, &s.TotalFiles,
			&s.ProcessedFiles, &s.FailedFiles, &s.EventCount, &s.UniqueTags,
			&minDate, &maxDate, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		if minDate.Valid {
			s.MinDate = &minDate.Time
		}
		if maxDate.Valid {
			s.MaxDate = &maxDate.Time
		}
		scans = append(scans, s)
	}
	return scans, rows.Err()
}
