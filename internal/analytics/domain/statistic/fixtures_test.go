package statistic

import production "lgb-dashboard/internal/production/domain"

func referenceRecords() []production.Record {
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

func fullRange() production.Criteria {
	return production.DefaultCriteria(production.DateBounds{Min: "2025-12-23", Max: "2026-02-06"})
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalFloats(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalBars(a, b []Bar) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
