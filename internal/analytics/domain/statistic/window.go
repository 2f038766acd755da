package statistic

import (
	"encoding/json"
	"math"
	"time"

	production "lgb-dashboard/internal/production/domain"
)

const (
	// shortRangeDays is the range length below which windows shrink to a single day.
	shortRangeDays   = 7
	dailyWindowDays  = 1
	weeklyWindowDays = 7

	// Availability and Performance are synthetic sub-factors offset from average OEE;
	// they are not measured.
	availabilityOffset = 6
	performanceOffset  = 12
)

// Window is an inclusive range of calendar days.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether day falls inside the window.
func (w Window) Contains(day time.Time) bool {
	return !day.Before(w.Start) && !day.After(w.End)
}

// MarshalJSON renders the window as ISO dates.
func (w Window) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Start string `json:"start"`
		End   string `json:"end"`
	}{
		Start: production.FormatDate(w.Start),
		End:   production.FormatDate(w.End),
	})
}

// ComparisonWindows are the current and previous windows used for period deltas.
type ComparisonWindows struct {
	Days     int    `json:"days"`
	Current  Window `json:"current"`
	Previous Window `json:"previous"`
}

// ResolveWindows computes the comparison windows for the active date bounds.
// The current window ends at end and is clamped to start; the previous window
// immediately precedes it and is not clamped.
func ResolveWindows(start, end time.Time) ComparisonWindows {
	rangeDays := int(math.Floor(end.Sub(start).Hours()/24)) + 1
	days := weeklyWindowDays
	if rangeDays < shortRangeDays {
		days = dailyWindowDays
	}

	currentStart := end.AddDate(0, 0, -(days - 1))
	if currentStart.Before(start) {
		currentStart = start
	}
	previousEnd := currentStart.AddDate(0, 0, -1)
	previousStart := previousEnd.AddDate(0, 0, -(days - 1))

	return ComparisonWindows{
		Days:     days,
		Current:  Window{Start: currentStart, End: end},
		Previous: Window{Start: previousStart, End: previousEnd},
	}
}

// RecordsIn returns the records dated inside the window. Unparseable dates are skipped.
func RecordsIn(records []production.Record, window Window) []production.Record {
	inside := make([]production.Record, 0, len(records))
	for _, record := range records {
		day, err := production.ParseDate(record.Date)
		if err != nil {
			continue
		}
		if window.Contains(day) {
			inside = append(inside, record)
		}
	}
	return inside
}

// ProcessRate is a process and its mean scrap rate.
type ProcessRate struct {
	Process string  `json:"process"`
	Rate    float64 `json:"rate"`
}

// NoProcessRate is reported when a window has no records.
var NoProcessRate = ProcessRate{Process: "N/A", Rate: 0}

// WindowMetrics are the scalar reductions of one comparison window.
type WindowMetrics struct {
	Rows            int         `json:"rows"`
	OEE             float64     `json:"oee"`
	Availability    float64     `json:"availability"`
	Performance     float64     `json:"performance"`
	Quality         float64     `json:"quality"`
	Throughput      float64     `json:"throughput"`
	ScrapRate       float64     `json:"scrap_rate"`
	Energy          float64     `json:"energy"`
	AvgDowntime     float64     `json:"avg_downtime"`
	TotalThroughput float64     `json:"total_throughput"`
	EnergyPerPart   float64     `json:"energy_per_part"`
	HighestScrap    ProcessRate `json:"highest_scrap"`
}

// ReduceWindow reduces the records of a window to scalar metrics.
// Averages over an empty window divide by 1 and yield 0.
func ReduceWindow(records []production.Record) WindowMetrics {
	denominator := float64(len(records))
	if denominator == 0 {
		denominator = 1
	}
	var oee, downtime, energy, throughput, scrap float64
	for _, record := range records {
		oee += record.OEE
		downtime += record.Downtime
		energy += record.Energy
		throughput += record.Throughput
		scrap += record.Scrap
	}

	avgOEE := oee / denominator
	avgScrap := scrap / denominator
	energyPerPart := 0.0
	if throughput != 0 {
		energyPerPart = energy / throughput
	}

	return WindowMetrics{
		Rows:            len(records),
		OEE:             avgOEE,
		Availability:    avgOEE + availabilityOffset,
		Performance:     avgOEE + performanceOffset,
		Quality:         100 - avgScrap,
		Throughput:      throughput,
		ScrapRate:       avgScrap,
		Energy:          energy,
		AvgDowntime:     downtime / denominator,
		TotalThroughput: throughput,
		EnergyPerPart:   energyPerPart,
		HighestScrap:    highestScrapProcess(records),
	}
}

// highestScrapProcess picks the process with the greatest mean scrap; ties keep the first seen.
func highestScrapProcess(records []production.Record) ProcessRate {
	byProcess := newOrderedMap[runningMean]()
	for _, record := range records {
		byProcess.update(record.Process, func(m *runningMean) { m.add(record.Scrap) })
	}
	if byProcess.len() == 0 {
		return NoProcessRate
	}
	top := ProcessRate{}
	found := false
	byProcess.each(func(process string, m runningMean) {
		rate := m.mean()
		if !found || rate > top.Rate {
			top = ProcessRate{Process: process, Rate: rate}
			found = true
		}
	})
	return top
}

// DeltaNotAvailable marks a delta whose previous value is zero or missing.
const DeltaNotAvailable = "N/A"

// Delta formats the percent change from previous to current, e.g. "+4.2%" or "-1.0%".
func Delta(current, previous float64) string {
	if previous == 0 || math.IsNaN(previous) {
		return DeltaNotAvailable
	}
	pct := (current - previous) / previous * 100
	sign := ""
	if pct >= 0 {
		sign = "+"
	}
	return sign + FormatFixed(pct, 1) + "%"
}
