package application

import (
	"errors"
	"fmt"

	alarms "lgb-dashboard/internal/alarms/domain"
	"lgb-dashboard/internal/analytics/domain/statistic"
	production "lgb-dashboard/internal/production/domain"
)

// Settings are the process-wide constants of a dashboard computation.
type Settings struct {
	Thresholds      alarms.Thresholds
	ForecastHorizon int
	ForecastWindow  int
}

// DefaultSettings are the production constants.
func DefaultSettings() Settings {
	return Settings{
		Thresholds:      alarms.DefaultThresholds,
		ForecastHorizon: statistic.DefaultForecastHorizon,
		ForecastWindow:  statistic.DefaultForecastWindow,
	}
}

// Validate checks the threshold rules and forecast parameters.
func (s Settings) Validate() error {
	if err := s.Thresholds.Validate(); err != nil {
		return fmt.Errorf("dashboard settings: %w", err)
	}
	if s.ForecastHorizon < 0 {
		return errors.New("dashboard settings: negative forecast horizon")
	}
	if s.ForecastWindow < 1 {
		return errors.New("dashboard settings: forecast window must be at least 1")
	}
	return nil
}

// Dashboard is every derived view of a record set under one filter state.
type Dashboard struct {
	Criteria    production.Criteria      `json:"criteria"`
	Bounds      production.DateBounds    `json:"bounds"`
	Options     statistic.Options        `json:"options"`
	LastUpdated string                   `json:"last_updated"`
	RecordCount int                      `json:"record_count"`
	Series      statistic.Series         `json:"series"`
	Forecasts   statistic.Forecasts      `json:"forecasts"`
	Chart       statistic.ForecastSeries `json:"chart"`
	KPIs        statistic.KPIReport      `json:"kpis"`
	Groupings   statistic.Groupings      `json:"groupings"`
	Alerts      []string                 `json:"alerts"`
	AlertLegend string                   `json:"alert_legend"`

	// Records is the filtered subset, kept for exports.
	Records []production.Record `json:"-"`
	// Fired holds the rules that triggered, in rule order.
	Fired []alarms.Alert `json:"-"`
}

// Compute derives the dashboard from records and criteria. It never fails: an
// empty or degenerate record set yields empty series and zeroed KPIs.
func Compute(records []production.Record, criteria production.Criteria, settings Settings) Dashboard {
	bounds := production.Bounds(records)
	resolved := criteria.Normalize().WithBounds(bounds)

	filtered := statistic.Filter(records, resolved)
	series := statistic.BuildSeries(filtered)
	forecasts := statistic.BuildForecasts(series, settings.ForecastHorizon, settings.ForecastWindow)
	evaluation := alarms.Evaluate(filtered, settings.Thresholds)

	lastUpdated := series.LastDate()
	if lastUpdated == "" {
		lastUpdated = bounds.Max
	}

	return Dashboard{
		Criteria:    resolved,
		Bounds:      bounds,
		Options:     statistic.FilterOptions(records, resolved),
		LastUpdated: lastUpdated,
		RecordCount: len(filtered),
		Series:      series,
		Forecasts:   forecasts,
		Chart:       statistic.ExtendSeries(series, forecasts),
		KPIs:        kpiReport(filtered, resolved),
		Groupings:   statistic.BuildGroupings(filtered),
		Alerts:      evaluation.Messages(),
		AlertLegend: settings.Thresholds.Legend(),
		Records:     filtered,
		Fired:       evaluation.Alerts,
	}
}

// kpiReport compares windows inside the resolved bounds. Without usable bounds
// (an empty record set) both windows are empty.
func kpiReport(filtered []production.Record, criteria production.Criteria) statistic.KPIReport {
	start, startErr := production.ParseDate(criteria.Start)
	end, endErr := production.ParseDate(criteria.End)
	if startErr != nil || endErr != nil {
		empty := statistic.ReduceWindow(nil)
		return statistic.KPIReport{
			Current:  empty,
			Previous: empty,
			KPIs:     statistic.FormatKPIs(empty, empty),
		}
	}
	return statistic.BuildKPIs(filtered, start, end)
}
