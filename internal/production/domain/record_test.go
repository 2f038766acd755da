package production

import (
	"errors"
	"testing"
)

func validRecord() Record {
	return Record{
		Date: "2026-01-06", Plant: "Plant A", Machine: "M03", Shift: "Shift 3", Process: "Heat Treatment",
		OEE: 73, Downtime: 30, Energy: 121, Throughput: 11200, Scrap: 2.6,
	}
}

func TestRecordValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Record)
		want   error
	}{
		{name: "valid", mutate: func(*Record) {}},
		{name: "bad date", mutate: func(r *Record) { r.Date = "2026-1-6" }, want: ErrInvalidDate},
		{name: "missing machine", mutate: func(r *Record) { r.Machine = "" }, want: ErrEmptyDimension},
		{name: "oee above range", mutate: func(r *Record) { r.OEE = 101 }, want: ErrOEEOutOfRange},
		{name: "negative scrap", mutate: func(r *Record) { r.Scrap = -0.1 }, want: ErrNegativeValue},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			record := validRecord()
			tc.mutate(&record)
			err := record.Validate()
			if tc.want == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.want != nil && !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestSortByDate_StableCopy(t *testing.T) {
	records := []Record{
		{Date: "2026-01-02", Machine: "A"},
		{Date: "2026-01-01", Machine: "B"},
		{Date: "2026-01-02", Machine: "C"},
	}
	sorted := SortByDate(records)
	got := sorted[0].Machine + sorted[1].Machine + sorted[2].Machine
	if got != "BAC" {
		t.Fatalf("sorted order = %s, want BAC", got)
	}
	if records[0].Machine != "A" {
		t.Fatalf("input was reordered")
	}
}

func TestBounds(t *testing.T) {
	bounds := Bounds([]Record{{Date: "2026-01-13"}, {Date: "2025-12-23"}, {Date: "2026-02-06"}})
	if bounds.Min != "2025-12-23" || bounds.Max != "2026-02-06" {
		t.Fatalf("unexpected bounds %+v", bounds)
	}
	if empty := Bounds(nil); empty.Min != "" || empty.Max != "" {
		t.Fatalf("expected empty bounds, got %+v", empty)
	}
}
