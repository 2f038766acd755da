package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func TestObserveBeforeInitIsNoop(t *testing.T) {
	saved := dashboardComputeTotal
	dashboardComputeTotal = nil
	defer func() { dashboardComputeTotal = saved }()

	ObserveDashboardCompute(nil, time.Millisecond)
}

func TestMetricsExposed(t *testing.T) {
	Init(nil, "", nil)

	ObserveDashboardCompute(nil, time.Millisecond)
	ObserveDashboardCompute(errors.New("boom"), time.Millisecond)
	ObserveRecordsFiltered(5)
	IncAlertTriggered("energy_spike")
	IncAlertNotification("suppressed")
	ObserveExport("xlsx", nil, time.Millisecond)

	rec := httptest.NewRecorder()
	promhttp.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	text := string(body)
	for _, expected := range []string{
		`lgb_dashboard_compute_total{result="error"}`,
		`lgb_dashboard_compute_total{result="success"}`,
		`lgb_dashboard_records_filtered_count`,
		`lgb_alerts_triggered_total{rule="energy_spike"}`,
		`lgb_alert_notifications_total{result="suppressed"}`,
		`lgb_export_total{format="xlsx",result="success"}`,
	} {
		if !strings.Contains(text, expected) {
			t.Fatalf("expected %s in exposition", expected)
		}
	}
}
