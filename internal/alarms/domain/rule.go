package alarms

import "math"

// Operator is a threshold comparison.
type Operator string

const (
	OperatorGreater        Operator = ">"
	OperatorGreaterOrEqual Operator = ">="
	OperatorLess           Operator = "<"
	OperatorLessOrEqual    Operator = "<="
)

// Valid returns true when operator is supported.
func (o Operator) Valid() bool {
	switch o {
	case OperatorGreater, OperatorGreaterOrEqual, OperatorLess, OperatorLessOrEqual:
		return true
	default:
		return false
	}
}

// Compare reports whether value breaches threshold under the operator.
func (o Operator) Compare(value, threshold float64) bool {
	switch o {
	case OperatorGreater:
		return value > threshold
	case OperatorGreaterOrEqual:
		return value >= threshold
	case OperatorLess:
		return value < threshold
	case OperatorLessOrEqual:
		return value <= threshold
	default:
		return false
	}
}

// Metric is the observed quantity a rule is evaluated against.
type Metric string

const (
	// MetricRecentOEE is the mean OEE of the most recent records.
	MetricRecentOEE Metric = "recent_oee"
	MetricDowntime  Metric = "downtime"
	MetricEnergy    Metric = "energy"
	MetricScrap     Metric = "scrap"
)

// Rule names, also used as metric labels.
const (
	RuleOEEBelowThreshold = "oee_below_threshold"
	RuleDowntimeSpike     = "downtime_spike"
	RuleEnergySpike       = "energy_spike"
	RuleScrapIncrease     = "scrap_increase"
)

// Rule is a threshold rule over one observed metric.
type Rule struct {
	Name      string   `json:"name"`
	Metric    Metric   `json:"metric"`
	Operator  Operator `json:"operator"`
	Threshold float64  `json:"threshold"`
}

// Validate checks rule invariants.
func (r Rule) Validate() error {
	if r.Name == "" {
		return ErrEmptyRuleName
	}
	switch r.Metric {
	case MetricRecentOEE, MetricDowntime, MetricEnergy, MetricScrap:
	default:
		return ErrUnknownMetric
	}
	if !r.Operator.Valid() {
		return ErrInvalidOperator
	}
	if math.IsNaN(r.Threshold) || math.IsInf(r.Threshold, 0) || r.Threshold < 0 {
		return ErrInvalidThreshold
	}
	return nil
}

func (r Rule) shouldTrigger(value float64) bool {
	return r.Operator.Compare(value, r.Threshold)
}
