package application

import (
	"context"

	"lgb-dashboard/internal/analytics/application/eventbus"
	"lgb-dashboard/internal/analytics/application/events"
)

// AlertNotifier delivers raised alerts outside the process.
type AlertNotifier interface {
	NotifyAlerts(ctx context.Context, event events.AlertsRaised) error
}

// WireAlertNotifications subscribes notifier to AlertsRaised on the bus.
func WireAlertNotifications(bus *eventbus.InMemoryBus, notifier AlertNotifier) {
	if bus == nil || notifier == nil {
		return
	}
	eventbus.Subscribe(bus, notifier.NotifyAlerts)
}
