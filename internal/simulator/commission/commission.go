// Package commission prices the fees charged on simulated fills.
package commission

// CommissionFee computes the fee for one fill.
type CommissionFee interface {
	// Calculate returns the fee in currency units for a fill of the given
	// notional value.
	Calculate(notional float64) float64
}

// Model selects a commission schedule by name.
type Model string

const (
	ModelZero      Model = "zero"
	ModelFixedRate Model = "fixed_rate"
)

// AllModels lists the selectable commission schedules.
var AllModels = []any{
	ModelZero,
	ModelFixedRate,
}

// GetCommissionFeeHandler maps a model name to its schedule. Unknown names
// fall back to zero commission.
func GetCommissionFeeHandler(model Model, rate, minimum float64) CommissionFee {
	switch model {
	case ModelFixedRate:
		return NewFixedRateCommissionFee(rate, minimum)
	case ModelZero:
		return NewZeroCommissionFee()
	default:
		return NewZeroCommissionFee()
	}
}
