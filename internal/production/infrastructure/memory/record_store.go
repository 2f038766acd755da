package memory

import (
	"context"
	"fmt"
	"sync"

	production "lgb-dashboard/internal/production/domain"
)

// RecordStore is an in-memory record store for demo/testing.
type RecordStore struct {
	mu      sync.RWMutex
	records []production.Record
}

// NewRecordStore constructs a store holding a copy of records.
func NewRecordStore(records ...production.Record) *RecordStore {
	store := &RecordStore{}
	store.records = append(store.records, records...)
	return store
}

// List returns a copy of the records in insertion order.
func (s *RecordStore) List(ctx context.Context) ([]production.Record, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]production.Record, len(s.records))
	copy(out, s.records)
	return out, nil
}

// Append validates and appends records. Nothing is stored when any record is invalid.
func (s *RecordStore) Append(ctx context.Context, records ...production.Record) error {
	_ = ctx
	for i, record := range records {
		if err := record.Validate(); err != nil {
			return fmt.Errorf("memory store: record %d: %w", i, err)
		}
	}
	s.mu.Lock()
	s.records = append(s.records, records...)
	s.mu.Unlock()
	return nil
}

// ReferenceRecords is the built-in sample data set of two plants over seven weeks.
func ReferenceRecords() []production.Record {
	return []production.Record{
		{Date: "2025-12-23", Plant: "Plant A", Machine: "M01", Shift: "Shift 1", Process: "Machining", OEE: 74, Downtime: 28, Energy: 120, Throughput: 9800, Scrap: 2.1},
		{Date: "2025-12-30", Plant: "Plant A", Machine: "M02", Shift: "Shift 2", Process: "Grinding", OEE: 76, Downtime: 26, Energy: 118, Throughput: 10300, Scrap: 1.8},
		{Date: "2026-01-06", Plant: "Plant A", Machine: "M03", Shift: "Shift 3", Process: "Heat Treatment", OEE: 73, Downtime: 30, Energy: 121, Throughput: 11200, Scrap: 2.6},
		{Date: "2026-01-13", Plant: "Plant B", Machine: "M04", Shift: "Shift 1", Process: "Machining", OEE: 76, Downtime: 24, Energy: 125, Throughput: 11800, Scrap: 2.0},
		{Date: "2026-01-20", Plant: "Plant B", Machine: "M05", Shift: "Shift 2", Process: "Inspection", OEE: 79, Downtime: 21, Energy: 132, Throughput: 12050, Scrap: 0.7},
		{Date: "2026-01-27", Plant: "Plant A", Machine: "M06", Shift: "Shift 3", Process: "Grinding", OEE: 77, Downtime: 23, Energy: 136, Throughput: 12400, Scrap: 1.2},
		{Date: "2026-02-03", Plant: "Plant A", Machine: "M07", Shift: "Shift 1", Process: "Machining", OEE: 78, Downtime: 20, Energy: 138, Throughput: 12600, Scrap: 1.9},
		{Date: "2026-02-06", Plant: "Plant B", Machine: "M01", Shift: "Shift 2", Process: "Heat Treatment", OEE: 80, Downtime: 18, Energy: 142, Throughput: 12950, Scrap: 2.4},
	}
}
