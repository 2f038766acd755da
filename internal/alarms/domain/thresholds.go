package alarms

import (
	"fmt"
	"strings"
)

// Thresholds are the alert limits. They are fixed for the process lifetime.
type Thresholds struct {
	OEE             float64 `json:"oee"`
	DowntimeMinutes float64 `json:"downtime_minutes"`
	EnergyKWh       float64 `json:"energy_kwh"`
	ScrapPercent    float64 `json:"scrap_percent"`
}

// DefaultThresholds are the production alert limits.
var DefaultThresholds = Thresholds{
	OEE:             75,
	DowntimeMinutes: 30,
	EnergyKWh:       140,
	ScrapPercent:    2.5,
}

// Rules returns the threshold rules in evaluation order.
func (t Thresholds) Rules() []Rule {
	return []Rule{
		{Name: RuleOEEBelowThreshold, Metric: MetricRecentOEE, Operator: OperatorLess, Threshold: t.OEE},
		{Name: RuleDowntimeSpike, Metric: MetricDowntime, Operator: OperatorGreater, Threshold: t.DowntimeMinutes},
		{Name: RuleEnergySpike, Metric: MetricEnergy, Operator: OperatorGreater, Threshold: t.EnergyKWh},
		{Name: RuleScrapIncrease, Metric: MetricScrap, Operator: OperatorGreater, Threshold: t.ScrapPercent},
	}
}

// Validate checks every derived rule.
func (t Thresholds) Validate() error {
	for _, rule := range t.Rules() {
		if err := rule.Validate(); err != nil {
			return fmt.Errorf("%s: %w", rule.Name, err)
		}
	}
	return nil
}

// Legend summarizes the rules for display.
func (t Thresholds) Legend() string {
	parts := []string{
		"OEE < " + formatNumber(t.OEE) + "% (last " + formatNumber(recentWindow) + " shifts avg)",
		"Downtime > " + formatNumber(t.DowntimeMinutes) + " min",
		"Energy > " + formatNumber(t.EnergyKWh) + " kWh",
		"Scrap > " + formatNumber(t.ScrapPercent) + "%",
	}
	return strings.Join(parts, " · ")
}
