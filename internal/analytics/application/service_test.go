package application

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	alarms "lgb-dashboard/internal/alarms/domain"
	"lgb-dashboard/internal/alarms/notify"
	"lgb-dashboard/internal/analytics/application/eventbus"
	"lgb-dashboard/internal/analytics/application/events"
	production "lgb-dashboard/internal/production/domain"
	"lgb-dashboard/internal/production/infrastructure/memory"
)

type failingStore struct{ err error }

func (f failingStore) List(context.Context) ([]production.Record, error) { return nil, f.err }

type fixedClock struct{ now time.Time }

func (f fixedClock) Now() time.Time { return f.now }

type recordingNotifier struct{ events []events.AlertsRaised }

func (r *recordingNotifier) NotifyAlerts(_ context.Context, event events.AlertsRaised) error {
	r.events = append(r.events, event)
	return nil
}

type blockingNotifier struct {
	release chan struct{}
	calls   chan struct{}
}

func (b *blockingNotifier) NotifyAlerts(ctx context.Context, _ events.AlertsRaised) error {
	b.calls <- struct{}{}
	select {
	case <-b.release:
	case <-ctx.Done():
	}
	return nil
}

func TestNewService_NilStore(t *testing.T) {
	if _, err := NewService(nil); err == nil {
		t.Fatalf("expected error for nil store")
	}
}

func TestService_DashboardPublishesAlerts(t *testing.T) {
	bus := eventbus.NewInMemoryBus(nil)
	notifier := &recordingNotifier{}
	WireAlertNotifications(bus, notifier)

	now := time.Date(2026, 2, 7, 8, 0, 0, 0, time.UTC)
	service, err := NewService(
		memory.NewRecordStore(memory.ReferenceRecords()...),
		WithPublisher(bus),
		WithClock(fixedClock{now: now}),
	)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	if _, err := service.Dashboard(context.Background(), production.Criteria{}); err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if len(notifier.events) != 1 {
		t.Fatalf("expected one AlertsRaised event, got %d", len(notifier.events))
	}
	event := notifier.events[0]
	if !event.OccurredAt.Equal(now) || event.RecordCount != 8 || len(event.Alerts) != 1 {
		t.Fatalf("unexpected event %+v", event)
	}

	if _, err := service.Dashboard(context.Background(), production.Criteria{Plant: "Plant A"}); err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if len(notifier.events) != 1 {
		t.Fatalf("no event expected when nothing fires")
	}
}

func TestService_InvalidCriteria(t *testing.T) {
	service, err := NewService(memory.NewRecordStore(memory.ReferenceRecords()...))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	_, err = service.Dashboard(context.Background(), production.Criteria{Start: "yesterday"})
	if !errors.Is(err, production.ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
	if _, err := service.Options(context.Background(), production.Criteria{End: "2026/02/06"}); !errors.Is(err, production.ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate from options, got %v", err)
	}
}

func TestService_StoreFailure(t *testing.T) {
	storeErr := errors.New("connection refused")
	service, err := NewService(failingStore{err: storeErr})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	if _, err := service.Dashboard(context.Background(), production.Criteria{}); !errors.Is(err, storeErr) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
	if _, err := service.Defaults(context.Background()); !errors.Is(err, storeErr) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}

func TestService_OptionsAndDefaults(t *testing.T) {
	service, err := NewService(memory.NewRecordStore(memory.ReferenceRecords()...))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	options, err := service.Options(context.Background(), production.Criteria{Plant: "Plant B"})
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if len(options.Machine) != 3 || options.Machine[0] != "M01" || options.Machine[2] != "M05" {
		t.Fatalf("unexpected machine options %v", options.Machine)
	}
	defaults, err := service.Defaults(context.Background())
	if err != nil {
		t.Fatalf("defaults: %v", err)
	}
	if defaults.Start != "2025-12-23" || defaults.End != "2026-02-06" || defaults.Shift != production.All {
		t.Fatalf("unexpected defaults %+v", defaults)
	}
}

func TestNewService_InvalidSettings(t *testing.T) {
	store := memory.NewRecordStore(memory.ReferenceRecords()...)
	badThreshold := DefaultSettings()
	badThreshold.Thresholds.EnergyKWh = math.NaN()
	if _, err := NewService(store, WithSettings(badThreshold)); !errors.Is(err, alarms.ErrInvalidThreshold) {
		t.Fatalf("expected ErrInvalidThreshold, got %v", err)
	}

	badWindow := DefaultSettings()
	badWindow.ForecastWindow = 0
	if _, err := NewService(store, WithSettings(badWindow)); err == nil {
		t.Fatalf("expected error for zero forecast window")
	}

	custom := DefaultSettings()
	custom.Thresholds.EnergyKWh = 200
	if _, err := NewService(store, WithSettings(custom)); err != nil {
		t.Fatalf("valid settings rejected: %v", err)
	}
}

func TestService_DashboardDoesNotWaitOnDelivery(t *testing.T) {
	blocked := &blockingNotifier{release: make(chan struct{}), calls: make(chan struct{}, 4)}
	dispatcher, err := notify.NewDispatcher(blocked, 4, nil)
	if err != nil {
		t.Fatalf("new dispatcher: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		dispatcher.Run(ctx)
		close(done)
	}()
	defer func() {
		close(blocked.release)
		cancel()
		<-done
	}()

	bus := eventbus.NewInMemoryBus(nil)
	WireAlertNotifications(bus, dispatcher)
	service, err := NewService(memory.NewRecordStore(memory.ReferenceRecords()...), WithPublisher(bus))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	for i := 0; i < 2; i++ {
		started := time.Now()
		if _, err := service.Dashboard(context.Background(), production.Criteria{}); err != nil {
			t.Fatalf("dashboard: %v", err)
		}
		if elapsed := time.Since(started); elapsed > 500*time.Millisecond {
			t.Fatalf("dashboard waited on alert delivery for %s", elapsed)
		}
	}

	select {
	case <-blocked.calls:
	case <-time.After(2 * time.Second):
		t.Fatal("alerts were never delivered")
	}
}
