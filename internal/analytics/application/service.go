package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"lgb-dashboard/internal/analytics/application/events"
	"lgb-dashboard/internal/analytics/domain/statistic"
	"lgb-dashboard/internal/observability/metrics"
	production "lgb-dashboard/internal/production/domain"
)

// RecordStore supplies the base record set.
type RecordStore interface {
	List(ctx context.Context) ([]production.Record, error)
}

// EventPublisher publishes application events.
type EventPublisher interface {
	Publish(ctx context.Context, event any) error
}

// Clock provides time.
type Clock interface {
	Now() time.Time
}

// Service serves dashboard computations over a record store.
type Service struct {
	store     RecordStore
	publisher EventPublisher
	clock     Clock
	logger    *zap.Logger
	settings  Settings
}

// ServiceOption customizes the dashboard service.
type ServiceOption func(*Service)

// WithPublisher assigns the publisher of AlertsRaised events.
func WithPublisher(publisher EventPublisher) ServiceOption {
	return func(s *Service) {
		s.publisher = publisher
	}
}

// WithClock assigns a clock.
func WithClock(clock Clock) ServiceOption {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithLogger assigns a logger.
func WithLogger(logger *zap.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSettings overrides the default settings.
func WithSettings(settings Settings) ServiceOption {
	return func(s *Service) {
		s.settings = settings
	}
}

// NewService constructs a dashboard service. Settings are validated once here.
func NewService(store RecordStore, opts ...ServiceOption) (*Service, error) {
	if store == nil {
		return nil, errors.New("dashboard: nil record store")
	}
	service := &Service{
		store:    store,
		clock:    systemClock{},
		logger:   zap.NewNop(),
		settings: DefaultSettings(),
	}
	for _, opt := range opts {
		opt(service)
	}
	if err := service.settings.Validate(); err != nil {
		return nil, err
	}
	return service, nil
}

// Dashboard lists the records and computes the dashboard for criteria.
func (s *Service) Dashboard(ctx context.Context, criteria production.Criteria) (Dashboard, error) {
	if err := criteria.Validate(); err != nil {
		return Dashboard{}, err
	}
	started := time.Now()
	records, err := s.store.List(ctx)
	if err != nil {
		metrics.ObserveDashboardCompute(err, time.Since(started))
		return Dashboard{}, fmt.Errorf("dashboard: list records: %w", err)
	}

	dashboard := Compute(records, criteria, s.settings)
	metrics.ObserveDashboardCompute(nil, time.Since(started))
	metrics.ObserveRecordsFiltered(dashboard.RecordCount)
	for _, alert := range dashboard.Fired {
		metrics.IncAlertTriggered(alert.Rule)
	}
	s.logger.Debug("dashboard computed",
		zap.Int("records", len(records)),
		zap.Int("filtered", dashboard.RecordCount),
		zap.Int("alerts", len(dashboard.Fired)),
		zap.Duration("duration", time.Since(started)),
	)

	s.publishAlerts(ctx, dashboard)
	return dashboard, nil
}

// Options returns the cascading filter options for criteria.
func (s *Service) Options(ctx context.Context, criteria production.Criteria) (statistic.Options, error) {
	if err := criteria.Validate(); err != nil {
		return statistic.Options{}, err
	}
	records, err := s.store.List(ctx)
	if err != nil {
		return statistic.Options{}, fmt.Errorf("dashboard: list records: %w", err)
	}
	resolved := criteria.Normalize().WithBounds(production.Bounds(records))
	return statistic.FilterOptions(records, resolved), nil
}

// Defaults returns the reset filter state for the current record set.
func (s *Service) Defaults(ctx context.Context) (production.Criteria, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return production.Criteria{}, fmt.Errorf("dashboard: list records: %w", err)
	}
	return production.DefaultCriteria(production.Bounds(records)), nil
}

func (s *Service) publishAlerts(ctx context.Context, dashboard Dashboard) {
	if s.publisher == nil || len(dashboard.Fired) == 0 {
		return
	}
	event := events.AlertsRaised{
		Criteria:    dashboard.Criteria,
		Alerts:      dashboard.Fired,
		RecordCount: dashboard.RecordCount,
		LastUpdated: dashboard.LastUpdated,
		OccurredAt:  s.clock.Now(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("publish alerts raised failed", zap.Error(err))
	}
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }
