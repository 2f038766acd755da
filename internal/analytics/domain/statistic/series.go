package statistic

import production "lgb-dashboard/internal/production/domain"

// Metric names a numeric record field tracked over time.
type Metric string

const (
	MetricOEE        Metric = "oee"
	MetricDowntime   Metric = "downtime"
	MetricEnergy     Metric = "energy"
	MetricThroughput Metric = "throughput"
	MetricScrap      Metric = "scrap"
)

// Metrics lists the tracked metrics in display order.
var Metrics = []Metric{MetricOEE, MetricDowntime, MetricEnergy, MetricThroughput, MetricScrap}

// Value returns the record's value for the metric.
func (m Metric) Value(r production.Record) float64 {
	switch m {
	case MetricOEE:
		return r.OEE
	case MetricDowntime:
		return r.Downtime
	case MetricEnergy:
		return r.Energy
	case MetricThroughput:
		return r.Throughput
	case MetricScrap:
		return r.Scrap
	default:
		return 0
	}
}

// Series holds index-aligned per-metric sequences ordered by date.
type Series struct {
	Dates      []string  `json:"dates"`
	OEE        []float64 `json:"oee"`
	Downtime   []float64 `json:"downtime"`
	Energy     []float64 `json:"energy"`
	Throughput []float64 `json:"throughput"`
	Scrap      []float64 `json:"scrap"`
}

// BuildSeries sorts records by date and projects them into per-metric sequences.
func BuildSeries(records []production.Record) Series {
	sorted := production.SortByDate(records)
	series := Series{
		Dates:      make([]string, 0, len(sorted)),
		OEE:        make([]float64, 0, len(sorted)),
		Downtime:   make([]float64, 0, len(sorted)),
		Energy:     make([]float64, 0, len(sorted)),
		Throughput: make([]float64, 0, len(sorted)),
		Scrap:      make([]float64, 0, len(sorted)),
	}
	for _, record := range sorted {
		series.Dates = append(series.Dates, record.Date)
		series.OEE = append(series.OEE, record.OEE)
		series.Downtime = append(series.Downtime, record.Downtime)
		series.Energy = append(series.Energy, record.Energy)
		series.Throughput = append(series.Throughput, record.Throughput)
		series.Scrap = append(series.Scrap, record.Scrap)
	}
	return series
}

// Len returns the number of points.
func (s Series) Len() int { return len(s.Dates) }

// Values returns the sequence for a metric.
func (s Series) Values(m Metric) []float64 {
	switch m {
	case MetricOEE:
		return s.OEE
	case MetricDowntime:
		return s.Downtime
	case MetricEnergy:
		return s.Energy
	case MetricThroughput:
		return s.Throughput
	case MetricScrap:
		return s.Scrap
	default:
		return nil
	}
}

// LastDate returns the most recent date, or "" for an empty series.
func (s Series) LastDate() string {
	if len(s.Dates) == 0 {
		return ""
	}
	return s.Dates[len(s.Dates)-1]
}
