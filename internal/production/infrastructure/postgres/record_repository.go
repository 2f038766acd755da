package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	production "lgb-dashboard/internal/production/domain"
)

const defaultRecordTable = "production_records"

// RecordRepository is a Postgres record store. Records are listed in insertion order.
type RecordRepository struct {
	db    *sql.DB
	table string
}

// RepositoryOption configures the repository.
type RepositoryOption func(*RecordRepository)

// WithTable overrides the default table name.
func WithTable(table string) RepositoryOption {
	return func(repo *RecordRepository) {
		if table != "" {
			repo.table = table
		}
	}
}

// NewRecordRepository creates a repository using the default table name.
func NewRecordRepository(db *sql.DB, opts ...RepositoryOption) (*RecordRepository, error) {
	if db == nil {
		return nil, errors.New("record repository: nil db")
	}
	repo := &RecordRepository{
		db:    db,
		table: defaultRecordTable,
	}
	for _, opt := range opts {
		opt(repo)
	}
	return repo, nil
}

// Table returns the backing table name.
func (r *RecordRepository) Table() string {
	return r.table
}

// EnsureSchema creates the record table when missing.
func (r *RecordRepository) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
	id BIGSERIAL PRIMARY KEY,
	record_date DATE NOT NULL,
	plant TEXT NOT NULL,
	machine TEXT NOT NULL,
	shift TEXT NOT NULL,
	process TEXT NOT NULL,
	oee DOUBLE PRECISION NOT NULL,
	downtime_minutes DOUBLE PRECISION NOT NULL,
	energy_kwh DOUBLE PRECISION NOT NULL,
	throughput DOUBLE PRECISION NOT NULL,
	scrap_percent DOUBLE PRECISION NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`, r.table)
	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("record repository: ensure schema: %w", err)
	}
	return nil
}

// List returns every record ordered by insertion.
func (r *RecordRepository) List(ctx context.Context) ([]production.Record, error) {
	query := fmt.Sprintf(`
SELECT
	record_date,
	plant,
	machine,
	shift,
	process,
	oee,
	downtime_minutes,
	energy_kwh,
	throughput,
	scrap_percent
FROM %s
ORDER BY id`, r.table)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("record repository: list: %w", err)
	}
	defer rows.Close()

	records := make([]production.Record, 0)
	for rows.Next() {
		var (
			record production.Record
			day    time.Time
		)
		if err := rows.Scan(
			&day,
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
			return nil, fmt.Errorf("record repository: scan: %w", err)
		}
		record.Date = production.FormatDate(day)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("record repository: rows: %w", err)
	}
	return records, nil
}

// Insert validates and stores records in one transaction.
func (r *RecordRepository) Insert(ctx context.Context, records ...production.Record) error {
	for i, record := range records {
		if err := record.Validate(); err != nil {
			return fmt.Errorf("record repository: record %d: %w", i, err)
		}
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	query := fmt.Sprintf(`
INSERT INTO %s (
	record_date, plant, machine, shift, process,
	oee, downtime_minutes, energy_kwh, throughput, scrap_percent
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`, r.table)
	for _, record := range records {
		if _, err := tx.ExecContext(ctx, query,
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
			return fmt.Errorf("record repository: insert: %w", err)
		}
	}
	return tx.Commit()
}

// Count returns the number of stored records.
func (r *RecordRepository) Count(ctx context.Context) (int, error) {
	var count int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", r.table)
	if err := r.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("record repository: count: %w", err)
	}
	return count, nil
}
