package statistic

import (
	"sort"

	production "lgb-dashboard/internal/production/domain"
)

// Options are the values still selectable for each filter dimension.
type Options struct {
	Plant   []string `json:"plant"`
	Machine []string `json:"machine"`
	Shift   []string `json:"shift"`
	Process []string `json:"process"`
}

// For returns the options of a dimension.
func (o Options) For(d production.Dimension) []string {
	switch d {
	case production.DimensionPlant:
		return o.Plant
	case production.DimensionMachine:
		return o.Machine
	case production.DimensionShift:
		return o.Shift
	case production.DimensionProcess:
		return o.Process
	default:
		return nil
	}
}

// Matches reports whether a record satisfies every selected dimension and the date bounds.
func Matches(record production.Record, criteria production.Criteria) bool {
	return matchesExcept(record, criteria, "")
}

// Filter returns the records matching criteria, in input order.
func Filter(records []production.Record, criteria production.Criteria) []production.Record {
	filtered := make([]production.Record, 0, len(records))
	for _, record := range records {
		if Matches(record, criteria) {
			filtered = append(filtered, record)
		}
	}
	return filtered
}

// FilterOptions derives the option set of each dimension.
// A dimension's own selection never narrows its options; the other selections
// and the date bounds do.
func FilterOptions(records []production.Record, criteria production.Criteria) Options {
	return Options{
		Plant:   distinctValues(records, criteria, production.DimensionPlant),
		Machine: distinctValues(records, criteria, production.DimensionMachine),
		Shift:   distinctValues(records, criteria, production.DimensionShift),
		Process: distinctValues(records, criteria, production.DimensionProcess),
	}
}

func distinctValues(records []production.Record, criteria production.Criteria, dimension production.Dimension) []string {
	seen := make(map[string]struct{})
	values := make([]string, 0)
	for _, record := range records {
		if !matchesExcept(record, criteria, dimension) {
			continue
		}
		value := dimension.Value(record)
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		values = append(values, value)
	}
	sort.Strings(values)
	return values
}

func matchesExcept(record production.Record, criteria production.Criteria, skip production.Dimension) bool {
	for _, dimension := range production.Dimensions {
		if dimension == skip {
			continue
		}
		if selected, ok := criteria.Selected(dimension); ok && dimension.Value(record) != selected {
			return false
		}
	}
	if criteria.Start != "" && record.Date < criteria.Start {
		return false
	}
	if criteria.End != "" && record.Date > criteria.End {
		return false
	}
	return true
}
