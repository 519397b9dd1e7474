package forecast

import "fmt"

// DataGapError reports a subzone with too little historical data for a
// reliable projection. Recoverable via an explicit FallbackPolicy,
// never silently.
type DataGapError struct {
	Subzone string
	Points  int
	Min     int
}

func (e *DataGapError) Error() string {
	return fmt.Sprintf("subzone %s: %d historical fertility records, need at least %d", e.Subzone, e.Points, e.Min)
}

// UnknownSubzoneError reports a record referencing a subzone outside
// the canonical subzone set. The run aborts rather than silently
// dropping data.
type UnknownSubzoneError struct {
	Subzone string
	Source  string
}

func (e *UnknownSubzoneError) Error() string {
	return fmt.Sprintf("%s references unknown subzone %q", e.Source, e.Subzone)
}

// InvariantViolationError reports an internally computed value that
// breaks a stated invariant. Fatal to that subzone's projection; never
// coerced to a "safe" value.
type InvariantViolationError struct {
	Subzone string
	Year    int
	Value   float64
	Detail  string
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("subzone %s year %d: %s (value %v)", e.Subzone, e.Year, e.Detail, e.Value)
}
