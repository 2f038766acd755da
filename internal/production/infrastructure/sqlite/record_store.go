package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure go sqlite driver

	production "lgb-dashboard/internal/production/domain"
)

// Table is the record table name.
const Table = "production_records"

// RecordStore is an embedded SQLite record store. Records are listed in insertion order.
type RecordStore struct {
	db   *sql.DB
	path string
}

// Open opens or creates the database at path and ensures the schema.
func Open(path string) (*RecordStore, error) {
	if path == "" {
		path = "lgb-dashboard.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS ` + Table + ` (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		record_date TEXT NOT NULL,
		plant TEXT NOT NULL,
		machine TEXT NOT NULL,
		shift TEXT NOT NULL,
		process TEXT NOT NULL,
		oee REAL NOT NULL,
		downtime_minutes REAL NOT NULL,
		energy_kwh REAL NOT NULL,
		throughput REAL NOT NULL,
		scrap_percent REAL NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create %s table: %w", Table, err)
	}
	return &RecordStore{db: db, path: path}, nil
}

// DB exposes the handle for metrics.
func (s *RecordStore) DB() *sql.DB {
	return s.db
}

// Path returns the database file path.
func (s *RecordStore) Path() string {
	return s.path
}

// Close closes the database.
func (s *RecordStore) Close() error {
	return s.db.Close()
}

// List returns every record ordered by insertion.
func (s *RecordStore) List(ctx context.Context) ([]production.Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT record_date, plant, machine, shift, process,
		oee, downtime_minutes, energy_kwh, throughput, scrap_percent
		FROM `+Table+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("select records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	records := make([]production.Record, 0)
	for rows.Next() {
		var record production.Record
		if err := rows.Scan(
			&record.Date,
			&record.Plant,
			&record.Machine,
			&record.Shift,
			&record.Process,
			&record.OEE,
			&record.Downtime,
			&record.Energy,
			&record.Throughput,
			&record.Scrap,
		); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return records, nil
}

// Insert validates and stores records in one transaction.
func (s *RecordStore) Insert(ctx context.Context, records ...production.Record) (retErr error) {
	for i, record := range records {
		if err := record.Validate(); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO `+Table+` (record_date, plant, machine, shift, process,
		oee, downtime_minutes, energy_kwh, throughput, scrap_percent) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()
	for _, record := range records {
		if _, err := stmt.ExecContext(ctx,
			record.Date,
			record.Plant,
			record.Machine,
			record.Shift,
			record.Process,
			record.OEE,
			record.Downtime,
			record.Energy,
			record.Throughput,
			record.Scrap,
		); err != nil {
			return fmt.Errorf("insert record: %w", err)
		}
	}
	return tx.Commit()
}

// Count returns the number of stored records.
func (s *RecordStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+Table).Scan(&count); err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return count, nil
}
