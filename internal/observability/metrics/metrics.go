package metrics

import (
	"database/sql"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const (
	metricPrefix = "lgb_"

	resultSuccess = "success"
	resultError   = "error"
)

var (
	registerOnce sync.Once

	dashboardComputeTotal   *prometheus.CounterVec
	dashboardComputeLatency *prometheus.HistogramVec
	recordsFiltered         prometheus.Histogram

	alertsTriggeredTotal    *prometheus.CounterVec
	alertNotificationsTotal *prometheus.CounterVec

	exportTotal   *prometheus.CounterVec
	exportLatency *prometheus.HistogramVec
)

// Init registers dashboard metrics. When db is set, a row-count gauge over
// table is registered as well.
func Init(db *sql.DB, table string, logger *zap.Logger) {
	registerOnce.Do(func() {
		dashboardComputeTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "dashboard_compute_total",
				Help: "Total dashboard computations by result",
			},
			[]string{"result"},
		)
		dashboardComputeLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "dashboard_compute_latency_seconds",
				Help:    "Dashboard computation latency in seconds, including the record store read",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)
		recordsFiltered = prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "dashboard_records_filtered",
				Help:    "Records remaining after filtering",
				Buckets: prometheus.ExponentialBuckets(1, 4, 8),
			},
		)

		alertsTriggeredTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "alerts_triggered_total",
				Help: "Total threshold rule firings by rule",
			},
			[]string{"rule"},
		)
		alertNotificationsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "alert_notifications_total",
				Help: "Total alert notifications by result",
			},
			[]string{"result"},
		)

		exportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "export_total",
				Help: "Total dashboard exports by format and result",
			},
			[]string{"format", "result"},
		)
		exportLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "export_latency_seconds",
				Help:    "Dashboard export latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format", "result"},
		)

		prometheus.MustRegister(
			dashboardComputeTotal,
			dashboardComputeLatency,
			recordsFiltered,
			alertsTriggeredTotal,
			alertNotificationsTotal,
			exportTotal,
			exportLatency,
		)

		if db != nil && table != "" {
			registerDBMetrics(db, table, logger)
		}
	})
}

// ObserveDashboardCompute records a dashboard computation.
func ObserveDashboardCompute(err error, duration time.Duration) {
	result := resultLabel(err)
	if dashboardComputeTotal != nil {
		dashboardComputeTotal.WithLabelValues(result).Inc()
	}
	if dashboardComputeLatency != nil {
		dashboardComputeLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// ObserveRecordsFiltered records the size of a filtered record set.
func ObserveRecordsFiltered(count int) {
	if count < 0 {
		count = 0
	}
	if recordsFiltered != nil {
		recordsFiltered.Observe(float64(count))
	}
}

// IncAlertTriggered increments the firing counter of a rule.
func IncAlertTriggered(rule string) {
	if rule == "" {
		rule = "unknown"
	}
	if alertsTriggeredTotal != nil {
		alertsTriggeredTotal.WithLabelValues(rule).Inc()
	}
}

// IncAlertNotification counts a notification attempt. Suppressed digests use result "suppressed".
func IncAlertNotification(result string) {
	if result == "" {
		result = resultSuccess
	}
	if alertNotificationsTotal != nil {
		alertNotificationsTotal.WithLabelValues(result).Inc()
	}
}

// ObserveExport records export duration and result.
func ObserveExport(format string, err error, duration time.Duration) {
	if format == "" {
		format = "unknown"
	}
	result := resultLabel(err)
	if exportTotal != nil {
		exportTotal.WithLabelValues(format, result).Inc()
	}
	if exportLatency != nil {
		exportLatency.WithLabelValues(format, result).Observe(duration.Seconds())
	}
}

func resultLabel(err error) string {
	if err != nil {
		return resultError
	}
	return resultSuccess
}
