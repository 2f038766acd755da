package statistic

import (
	"testing"

	production "lgb-dashboard/internal/production/domain"
)

func TestBuildSeries_SortsByDateStable(t *testing.T) {
	records := []production.Record{
		{Date: "2026-01-03", Machine: "M03", OEE: 3},
		{Date: "2026-01-01", Machine: "M01", OEE: 1},
		{Date: "2026-01-03", Machine: "M04", OEE: 4},
		{Date: "2026-01-02", Machine: "M02", OEE: 2},
	}

	series := BuildSeries(records)
	if want := []string{"2026-01-01", "2026-01-02", "2026-01-03", "2026-01-03"}; !equalStrings(series.Dates, want) {
		t.Fatalf("dates = %v, want %v", series.Dates, want)
	}
	if want := []float64{1, 2, 3, 4}; !equalFloats(series.OEE, want) {
		t.Fatalf("oee = %v, want %v (ties keep input order)", series.OEE, want)
	}
	if records[0].Date != "2026-01-03" {
		t.Fatalf("input slice was reordered")
	}
}

func TestBuildSeries_AlignedLengths(t *testing.T) {
	series := BuildSeries(referenceRecords())
	for _, metric := range Metrics {
		if len(series.Values(metric)) != series.Len() {
			t.Fatalf("metric %s has %d points, want %d", metric, len(series.Values(metric)), series.Len())
		}
	}
	if series.LastDate() != "2026-02-06" {
		t.Fatalf("last date = %q", series.LastDate())
	}
}

func TestBuildSeries_Empty(t *testing.T) {
	series := BuildSeries(nil)
	if series.Len() != 0 || series.Dates == nil || series.Scrap == nil {
		t.Fatalf("expected empty non-nil sequences, got %+v", series)
	}
	if series.LastDate() != "" {
		t.Fatalf("expected empty last date")
	}
}
