package statistic

import (
	"time"

	production "lgb-dashboard/internal/production/domain"
)

// KPI labels in display order.
const (
	LabelOEE                 = "OEE"
	LabelAvailability        = "Availability"
	LabelPerformance         = "Performance"
	LabelQuality             = "Quality"
	LabelThroughput          = "Throughput"
	LabelScrapRate           = "Scrap Rate"
	LabelEnergy              = "Energy (kWh)"
	LabelAvgDowntime         = "Avg Downtime"
	LabelTotalThroughput     = "Total Throughput"
	LabelEnergyPerPart       = "Energy per Part"
	LabelHighestScrapProcess = "Highest Scrap Process"
)

// Trend classifies a delta for display.
type Trend string

const (
	TrendUp      Trend = "up"
	TrendDown    Trend = "down"
	TrendNeutral Trend = "neutral"
)

// TrendOf classifies a formatted delta.
func TrendOf(delta string) Trend {
	switch {
	case delta == DeltaNotAvailable:
		return TrendNeutral
	case len(delta) > 0 && delta[0] == '-':
		return TrendDown
	default:
		return TrendUp
	}
}

// KPI is a formatted headline value with its change against the previous window.
type KPI struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Delta string `json:"delta"`
	Trend Trend  `json:"trend"`
}

func newKPI(label, value string, current, previous float64) KPI {
	delta := Delta(current, previous)
	return KPI{Label: label, Value: value, Delta: delta, Trend: TrendOf(delta)}
}

// KPIReport is the KPI list together with the windows and reductions it came from.
type KPIReport struct {
	Windows  ComparisonWindows `json:"windows"`
	Current  WindowMetrics     `json:"current"`
	Previous WindowMetrics     `json:"previous"`
	KPIs     []KPI             `json:"kpis"`
}

// BuildKPIs compares the current and previous windows within [start, end].
func BuildKPIs(records []production.Record, start, end time.Time) KPIReport {
	windows := ResolveWindows(start, end)
	current := ReduceWindow(RecordsIn(records, windows.Current))
	previous := ReduceWindow(RecordsIn(records, windows.Previous))
	return KPIReport{
		Windows:  windows,
		Current:  current,
		Previous: previous,
		KPIs:     FormatKPIs(current, previous),
	}
}

// FormatKPIs renders the eleven headline KPIs.
func FormatKPIs(current, previous WindowMetrics) []KPI {
	return []KPI{
		newKPI(LabelOEE, FormatFixed(current.OEE, 1)+"%", current.OEE, previous.OEE),
		newKPI(LabelAvailability, FormatFixed(current.Availability, 1)+"%", current.Availability, previous.Availability),
		newKPI(LabelPerformance, FormatFixed(current.Performance, 1)+"%", current.Performance, previous.Performance),
		newKPI(LabelQuality, FormatFixed(current.Quality, 1)+"%", current.Quality, previous.Quality),
		newKPI(LabelThroughput, FormatFixed(current.Throughput/1000, 1)+"k", current.Throughput, previous.Throughput),
		newKPI(LabelScrapRate, FormatFixed(current.ScrapRate, 1)+"%", current.ScrapRate, previous.ScrapRate),
		newKPI(LabelEnergy, FormatFixed(current.Energy, 0)+"k", current.Energy, previous.Energy),
		newKPI(LabelAvgDowntime, FormatFixed(current.AvgDowntime, 1)+" min", current.AvgDowntime, previous.AvgDowntime),
		newKPI(LabelTotalThroughput, FormatFixed(current.TotalThroughput, 0)+" units", current.TotalThroughput, previous.TotalThroughput),
		newKPI(LabelEnergyPerPart, FormatFixed(current.EnergyPerPart, 4)+" kWh/part", current.EnergyPerPart, previous.EnergyPerPart),
		newKPI(
			LabelHighestScrapProcess,
			current.HighestScrap.Process+" ("+FormatFixed(current.HighestScrap.Rate, 2)+"%)",
			current.HighestScrap.Rate,
			previous.HighestScrap.Rate,
		),
	}
}
