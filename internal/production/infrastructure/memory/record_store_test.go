package memory

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	production "lgb-dashboard/internal/production/domain"
)

func TestRecordStore_ListReturnsCopy(t *testing.T) {
	store := NewRecordStore(ReferenceRecords()...)
	records, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 8 {
		t.Fatalf("expected 8 reference records, got %d", len(records))
	}
	records[0].OEE = 0
	again, _ := store.List(context.Background())
	if again[0].OEE != 74 {
		t.Fatalf("store was mutated through a listed slice")
	}
}

func TestReferenceRecordsAreValid(t *testing.T) {
	for i, record := range ReferenceRecords() {
		if err := record.Validate(); err != nil {
			t.Fatalf("reference record %d invalid: %v", i, err)
		}
	}
}

func TestRecordStore_AppendRejectsInvalid(t *testing.T) {
	store := NewRecordStore()
	bad := production.Record{Date: "2026-02-30", Plant: "P", Machine: "M", Shift: "S", Process: "X"}
	if err := store.Append(context.Background(), ReferenceRecords()[0], bad); !errors.Is(err, production.ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
	records, _ := store.List(context.Background())
	if len(records) != 0 {
		t.Fatalf("partial append stored %d records", len(records))
	}
}

const seed = `records:
  - date: "2026-03-01"
    plant: Plant C
    machine: M10
    shift: Shift 1
    process: Machining
    oee: 81.5
    downtime: 12
    energy: 130
    throughput: 12000
    scrap: 1.1
  - date: "2026-03-02"
    plant: Plant C
    machine: M11
    shift: Shift 2
    process: Inspection
    oee: 79
    downtime: 15
    energy: 128
    throughput: 11800
    scrap: 0.9
`

func TestDecodeRecords(t *testing.T) {
	records, err := DecodeRecords(strings.NewReader(seed))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(records) != 2 || records[0].OEE != 81.5 || records[1].Process != "Inspection" {
		t.Fatalf("unexpected records %+v", records)
	}
}

func TestDecodeRecords_Errors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want error
	}{
		{name: "empty", doc: "", want: ErrNoRecords},
		{name: "no records", doc: "records: []\n", want: ErrNoRecords},
		{name: "invalid record", doc: "records:\n  - date: 2026-03-01\n    plant: P\n    machine: M\n    shift: S\n    process: X\n    oee: 120\n", want: production.ErrOEEOutOfRange},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := DecodeRecords(strings.NewReader(tc.doc)); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
	if _, err := DecodeRecords(strings.NewReader("records:\n  - colour: red\n")); err == nil {
		t.Fatalf("expected unknown field error")
	}
}

func TestLoadRecordsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.yaml")
	if err := os.WriteFile(path, []byte(seed), 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	records, err := LoadRecordsFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
}
