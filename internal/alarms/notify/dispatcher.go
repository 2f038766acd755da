package notify

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"lgb-dashboard/internal/analytics/application/events"
	"lgb-dashboard/internal/observability/metrics"
)

// DefaultQueueSize bounds the events waiting for delivery.
const DefaultQueueSize = 64

// ErrQueueFull is returned when an event is dropped because delivery is behind.
var ErrQueueFull = errors.New("alert dispatcher: queue full")

// Dispatcher queues AlertsRaised events and hands them to the next notifier
// from a background worker, so publishers never wait on delivery.
type Dispatcher struct {
	next   AlertNotifier
	queue  chan events.AlertsRaised
	logger *zap.Logger
}

// NewDispatcher constructs a dispatcher in front of next. Call Run to deliver.
func NewDispatcher(next AlertNotifier, size int, logger *zap.Logger) (*Dispatcher, error) {
	if next == nil {
		return nil, errors.New("alert dispatcher: nil notifier")
	}
	if size <= 0 {
		size = DefaultQueueSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		next:   next,
		queue:  make(chan events.AlertsRaised, size),
		logger: logger,
	}, nil
}

// NotifyAlerts enqueues the event without blocking. The request context is
// not carried over; delivery runs on the context passed to Run.
func (d *Dispatcher) NotifyAlerts(_ context.Context, event events.AlertsRaised) error {
	select {
	case d.queue <- event:
		return nil
	default:
		metrics.IncAlertNotification("dropped")
		return ErrQueueFull
	}
}

// Run delivers queued events until ctx is done.
func (d *Dispatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-d.queue:
			if err := d.next.NotifyAlerts(ctx, event); err != nil {
				d.logger.Warn("alert delivery failed", zap.Int("alerts", len(event.Alerts)), zap.Error(err))
			}
		}
	}
}
