package production

// All selects every value of a filter dimension.
const All = "All"

// Dimension names a categorical filter dimension.
type Dimension string

const (
	DimensionPlant   Dimension = "plant"
	DimensionMachine Dimension = "machine"
	DimensionShift   Dimension = "shift"
	DimensionProcess Dimension = "process"
)

// Dimensions lists the categorical dimensions in filter order.
var Dimensions = []Dimension{DimensionPlant, DimensionMachine, DimensionShift, DimensionProcess}

// Value returns the record's value for the dimension.
func (d Dimension) Value(r Record) string {
	switch d {
	case DimensionPlant:
		return r.Plant
	case DimensionMachine:
		return r.Machine
	case DimensionShift:
		return r.Shift
	case DimensionProcess:
		return r.Process
	default:
		return ""
	}
}

// Criteria is the caller-held filter state.
// Start and End are inclusive ISO dates; an empty bound is open.
type Criteria struct {
	Plant   string `json:"plant"`
	Machine string `json:"machine"`
	Shift   string `json:"shift"`
	Process string `json:"process"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

// DefaultCriteria is the reset state: every dimension set to All and the full date range.
func DefaultCriteria(bounds DateBounds) Criteria {
	return Criteria{
		Plant:   All,
		Machine: All,
		Shift:   All,
		Process: All,
		Start:   bounds.Min,
		End:     bounds.Max,
	}
}

// Selected returns the selected value for a dimension and whether it narrows the set.
func (c Criteria) Selected(d Dimension) (string, bool) {
	var value string
	switch d {
	case DimensionPlant:
		value = c.Plant
	case DimensionMachine:
		value = c.Machine
	case DimensionShift:
		value = c.Shift
	case DimensionProcess:
		value = c.Process
	}
	if value == "" || value == All {
		return "", false
	}
	return value, true
}

// Normalize replaces empty dimension values with All.
func (c Criteria) Normalize() Criteria {
	if c.Plant == "" {
		c.Plant = All
	}
	if c.Machine == "" {
		c.Machine = All
	}
	if c.Shift == "" {
		c.Shift = All
	}
	if c.Process == "" {
		c.Process = All
	}
	return c
}

// WithBounds fills open date bounds from the record-set bounds.
func (c Criteria) WithBounds(bounds DateBounds) Criteria {
	if c.Start == "" {
		c.Start = bounds.Min
	}
	if c.End == "" {
		c.End = bounds.Max
	}
	return c
}

// Validate rejects malformed date bounds. Start after End is allowed and yields an empty result.
func (c Criteria) Validate() error {
	if c.Start != "" {
		if _, err := ParseDate(c.Start); err != nil {
			return err
		}
	}
	if c.End != "" {
		if _, err := ParseDate(c.End); err != nil {
			return err
		}
	}
	return nil
}
