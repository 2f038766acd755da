package events

import (
	"time"

	alarms "lgb-dashboard/internal/alarms/domain"
	production "lgb-dashboard/internal/production/domain"
)

// AlertsRaised is published when a dashboard computation fires at least one threshold rule.
type AlertsRaised struct {
	Criteria    production.Criteria
	Alerts      []alarms.Alert
	RecordCount int
	LastUpdated string
	OccurredAt  time.Time
}
