package production

import "sort"

// Record is a single production observation for a machine shift on a calendar day.
// Records are supplied by a RecordStore and treated as immutable.
type Record struct {
	Date       string  `json:"date" yaml:"date"`
	Plant      string  `json:"plant" yaml:"plant"`
	Machine    string  `json:"machine" yaml:"machine"`
	Shift      string  `json:"shift" yaml:"shift"`
	Process    string  `json:"process" yaml:"process"`
	OEE        float64 `json:"oee" yaml:"oee"`
	Downtime   float64 `json:"downtime" yaml:"downtime"`
	Energy     float64 `json:"energy" yaml:"energy"`
	Throughput float64 `json:"throughput" yaml:"throughput"`
	Scrap      float64 `json:"scrap" yaml:"scrap"`
}

// Validate checks record invariants.
func (r Record) Validate() error {
	if _, err := ParseDate(r.Date); err != nil {
		return err
	}
	if r.Plant == "" || r.Machine == "" || r.Shift == "" || r.Process == "" {
		return ErrEmptyDimension
	}
	if r.OEE < 0 || r.OEE > 100 {
		return ErrOEEOutOfRange
	}
	if r.Downtime < 0 || r.Energy < 0 || r.Throughput < 0 || r.Scrap < 0 {
		return ErrNegativeValue
	}
	return nil
}

// SortByDate returns a copy of records ordered by date ascending.
// Records sharing a date keep their input order.
func SortByDate(records []Record) []Record {
	sorted := make([]Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})
	return sorted
}

// DateBounds is the earliest and latest date present in a record set.
type DateBounds struct {
	Min string `json:"min"`
	Max string `json:"max"`
}

// Bounds returns the lexical date bounds of records. Both are empty for an empty set.
func Bounds(records []Record) DateBounds {
	var bounds DateBounds
	for i, record := range records {
		if i == 0 || record.Date < bounds.Min {
			bounds.Min = record.Date
		}
		if i == 0 || record.Date > bounds.Max {
			bounds.Max = record.Date
		}
	}
	return bounds
}
