package statistic

import (
	"testing"

	production "lgb-dashboard/internal/production/domain"
)

func TestFilter_ByPlant(t *testing.T) {
	criteria := fullRange()
	criteria.Plant = "Plant A"

	filtered := Filter(referenceRecords(), criteria)
	if len(filtered) != 5 {
		t.Fatalf("expected 5 Plant A records, got %d", len(filtered))
	}
	for _, record := range filtered {
		if record.Plant != "Plant A" {
			t.Fatalf("unexpected plant %q in filtered set", record.Plant)
		}
		if !Matches(record, criteria) {
			t.Fatalf("filtered record %+v does not satisfy criteria", record)
		}
	}
}

func TestFilter_PredicateCombinations(t *testing.T) {
	cases := []struct {
		name     string
		criteria production.Criteria
		want     int
	}{
		{name: "all", criteria: fullRange(), want: 8},
		{name: "empty values behave like all", criteria: production.Criteria{}, want: 8},
		{name: "machine", criteria: production.Criteria{Machine: "M01"}, want: 2},
		{name: "plant and process", criteria: production.Criteria{Plant: "Plant B", Process: "Heat Treatment"}, want: 1},
		{name: "date range inclusive", criteria: production.Criteria{Start: "2026-01-06", End: "2026-01-20"}, want: 3},
		{name: "start only", criteria: production.Criteria{Start: "2026-02-01"}, want: 2},
		{name: "start after end", criteria: production.Criteria{Start: "2026-02-06", End: "2026-01-01"}, want: 0},
		{name: "unknown value", criteria: production.Criteria{Shift: "Shift 9"}, want: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Filter(referenceRecords(), tc.criteria)
			if len(got) != tc.want {
				t.Fatalf("expected %d records, got %d", tc.want, len(got))
			}
		})
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	records := referenceRecords()
	before := records[0]
	filtered := Filter(records, production.Criteria{Plant: "Plant A"})
	filtered[0].OEE = 1
	if records[0] != before {
		t.Fatalf("filter mutated the base record set")
	}
}

func TestFilterOptions_Cascading(t *testing.T) {
	criteria := fullRange()
	criteria.Plant = "Plant A"

	options := FilterOptions(referenceRecords(), criteria)
	if want := []string{"M01", "M02", "M03", "M06", "M07"}; !equalStrings(options.Machine, want) {
		t.Fatalf("machine options = %v, want %v", options.Machine, want)
	}
	if want := []string{"Plant A", "Plant B"}; !equalStrings(options.Plant, want) {
		t.Fatalf("plant options must not narrow on own selection, got %v", options.Plant)
	}
	if want := []string{"Grinding", "Heat Treatment", "Machining"}; !equalStrings(options.Process, want) {
		t.Fatalf("process options = %v, want %v", options.Process, want)
	}
}

func TestFilterOptions_SubsetOfCrossFiltered(t *testing.T) {
	records := referenceRecords()
	criteria := production.Criteria{Process: "Machining", Start: "2026-01-01"}
	options := FilterOptions(records, criteria)

	for _, dimension := range production.Dimensions {
		for _, value := range options.For(dimension) {
			found := false
			for _, record := range records {
				if dimension.Value(record) == value && matchesExcept(record, criteria, dimension) {
					found = true
					break
				}
			}
			if !found {
				t.Fatalf("option %s=%q absent from the cross-filtered subset", dimension, value)
			}
		}
	}
	if want := []string{"Plant A", "Plant B"}; !equalStrings(options.Plant, want) {
		t.Fatalf("plant options = %v, want %v", options.Plant, want)
	}
	if want := []string{"M04", "M07"}; !equalStrings(options.Machine, want) {
		t.Fatalf("machine options = %v, want %v", options.Machine, want)
	}
}

func TestFilterOptions_Empty(t *testing.T) {
	options := FilterOptions(nil, production.Criteria{})
	if options.Plant == nil || len(options.Plant) != 0 || len(options.Machine) != 0 {
		t.Fatalf("expected empty non-nil options, got %+v", options)
	}
	if filtered := Filter(nil, production.Criteria{}); len(filtered) != 0 {
		t.Fatalf("expected empty filtered set, got %d", len(filtered))
	}
}
