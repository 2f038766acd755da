package notify

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"lgb-dashboard/internal/analytics/application/events"
)

// AlertNotifier receives AlertsRaised events.
type AlertNotifier interface {
	NotifyAlerts(ctx context.Context, event events.AlertsRaised) error
}

// MultiNotifier dispatches alert events to multiple notifiers.
type MultiNotifier struct {
	notifiers []AlertNotifier
}

// NewMultiNotifier constructs a MultiNotifier. Nil notifiers are skipped.
func NewMultiNotifier(notifiers ...AlertNotifier) *MultiNotifier {
	return &MultiNotifier{notifiers: notifiers}
}

// NotifyAlerts forwards the event to every notifier and joins their errors.
func (m *MultiNotifier) NotifyAlerts(ctx context.Context, event events.AlertsRaised) error {
	if m == nil {
		return nil
	}
	var errs []error
	for _, notifier := range m.notifiers {
		if notifier == nil {
			continue
		}
		if err := notifier.NotifyAlerts(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LogNotifier writes raised alerts to the log.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier constructs a LogNotifier.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger}
}

// NotifyAlerts logs one warning per fired rule.
func (l *LogNotifier) NotifyAlerts(_ context.Context, event events.AlertsRaised) error {
	for _, alert := range event.Alerts {
		l.logger.Warn("alert raised",
			zap.String("rule", alert.Rule),
			zap.String("message", alert.Message),
			zap.String("last_updated", event.LastUpdated),
		)
	}
	return nil
}
