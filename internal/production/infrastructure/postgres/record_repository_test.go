package postgres_test

import (
	"context"
	"database/sql"
	"os"
	"testing"

	production "lgb-dashboard/internal/production/domain"
	"lgb-dashboard/internal/production/infrastructure/memory"
	"lgb-dashboard/internal/production/infrastructure/postgres"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func TestRecordRepository_Postgres(t *testing.T) {
	dsn := os.Getenv("PG_DSN")
	if dsn == "" {
		t.Skip("PG_DSN not set")
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	table := "production_records_it"
	_, _ = db.ExecContext(ctx, "DROP TABLE IF EXISTS "+table)
	defer func() { _, _ = db.ExecContext(ctx, "DROP TABLE IF EXISTS "+table) }()

	repo, err := postgres.NewRecordRepository(db, postgres.WithTable(table))
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	if err := repo.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}

	reference := memory.ReferenceRecords()
	if err := repo.Insert(ctx, reference...); err != nil {
		t.Fatalf("insert: %v", err)
	}
	count, err := repo.Count(ctx)
	if err != nil || count != len(reference) {
		t.Fatalf("count = %d, %v", count, err)
	}

	records, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != len(reference) {
		t.Fatalf("expected %d records, got %d", len(reference), len(records))
	}
	for i := range reference {
		if records[i] != reference[i] {
			t.Fatalf("record %d = %+v, want %+v", i, records[i], reference[i])
		}
	}

	bad := production.Record{Date: "bad"}
	if err := repo.Insert(ctx, bad); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestNewRecordRepository_NilDB(t *testing.T) {
	if _, err := postgres.NewRecordRepository(nil); err == nil {
		t.Fatalf("expected error for nil db")
	}
}
