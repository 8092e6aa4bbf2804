package models

// StrategyID names a review interval table.
type StrategyID string

const (
	StrategyDense  StrategyID = "dense"
	StrategyNormal StrategyID = "normal"
	StrategySparse StrategyID = "sparse"
)

// Valid reports whether s is one of the known strategies.
func (s StrategyID) Valid() bool {
	switch s {
	case StrategyDense, StrategyNormal, StrategySparse:
		return true
	}
	return false
}

// ReviewStrategy holds the textual interval rule for a strategy, e.g. "1h,3h,6h,1d,2d".
type ReviewStrategy struct {
	ID           StrategyID `json:"id" db:"id"`
	IntervalRule string     `json:"interval_rule" db:"interval_rule"`
}
