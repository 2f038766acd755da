package alarms

import "errors"

var (
	// ErrInvalidOperator is returned when a rule uses an unsupported comparison.
	ErrInvalidOperator = errors.New("alarm rule: invalid operator")
	// ErrEmptyRuleName is returned when a rule has no name.
	ErrEmptyRuleName = errors.New("alarm rule: empty name")
	// ErrUnknownMetric is returned when a rule observes an unsupported metric.
	ErrUnknownMetric = errors.New("alarm rule: unknown metric")
	// ErrInvalidThreshold is returned for a negative or non-finite threshold.
	ErrInvalidThreshold = errors.New("alarm rule: invalid threshold")
)
