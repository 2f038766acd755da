package alarms

import (
	"strconv"

	"lgb-dashboard/internal/analytics/domain/statistic"
	production "lgb-dashboard/internal/production/domain"
)

// NoAlertsMessage is the single message reported when nothing fires.
const NoAlertsMessage = "No alerts for the current filters."

// recentWindow is the number of most recent records averaged for the OEE rule.
const recentWindow = 3

// Alert is a fired rule and its rendered message.
type Alert struct {
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Evaluation is the outcome of applying the rules to a record set.
type Evaluation struct {
	Alerts []Alert
}

// Messages returns the alert messages in rule order, or NoAlertsMessage.
func (e Evaluation) Messages() []string {
	if len(e.Alerts) == 0 {
		return []string{NoAlertsMessage}
	}
	messages := make([]string, 0, len(e.Alerts))
	for _, alert := range e.Alerts {
		messages = append(messages, alert.Message)
	}
	return messages
}

// Triggered returns the names of the fired rules.
func (e Evaluation) Triggered() []string {
	names := make([]string, 0, len(e.Alerts))
	for _, alert := range e.Alerts {
		names = append(names, alert.Rule)
	}
	return names
}

// observation is what the rules see: the latest record and the recent OEE mean.
type observation struct {
	last      production.Record
	recentOEE float64
}

func observe(records []production.Record) observation {
	sorted := production.SortByDate(records)
	recent := sorted[max(0, len(sorted)-recentWindow):]
	var sum float64
	for _, record := range recent {
		sum += record.OEE
	}
	return observation{
		last:      sorted[len(sorted)-1],
		recentOEE: sum / float64(len(recent)),
	}
}

func (o observation) value(metric Metric) float64 {
	switch metric {
	case MetricRecentOEE:
		return o.recentOEE
	case MetricDowntime:
		return o.last.Downtime
	case MetricEnergy:
		return o.last.Energy
	case MetricScrap:
		return o.last.Scrap
	default:
		return 0
	}
}

func (o observation) message(rule Rule) string {
	threshold := formatNumber(rule.Threshold)
	switch rule.Metric {
	case MetricRecentOEE:
		return "OEE below " + threshold + "% threshold (last " + formatNumber(recentWindow) +
			" shifts avg " + statistic.FormatFixed(o.recentOEE, 1) + "%)"
	case MetricDowntime:
		return "Unplanned downtime spike on " + o.last.Machine + " (" + formatNumber(o.last.Downtime) + " min > " + threshold + ")"
	case MetricEnergy:
		return "Energy spike on " + o.last.Machine + " (" + formatNumber(o.last.Energy) + " kWh > " + threshold + ")"
	case MetricScrap:
		return "Scrap rate increase in " + o.last.Process + " (" + formatNumber(o.last.Scrap) + "% > " + threshold + "%)"
	default:
		return rule.Name
	}
}

// Evaluate applies the threshold rules, in order, to the most recent records.
func Evaluate(records []production.Record, thresholds Thresholds) Evaluation {
	if len(records) == 0 {
		return Evaluation{}
	}
	obs := observe(records)
	var alerts []Alert
	for _, rule := range thresholds.Rules() {
		if rule.shouldTrigger(obs.value(rule.Metric)) {
			alerts = append(alerts, Alert{Rule: rule.Name, Message: obs.message(rule)})
		}
	}
	return Evaluation{Alerts: alerts}
}

// formatNumber renders the shortest decimal form, e.g. 40, 2.5.
func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
