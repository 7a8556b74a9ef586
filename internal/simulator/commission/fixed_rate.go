package commission

// FixedRateCommissionFee charges a flat fraction of the fill notional with a
// per-fill minimum.
type FixedRateCommissionFee struct {
	rate    float64
	minimum float64
}

// NewFixedRateCommissionFee creates a fixed-rate commission fee.
func NewFixedRateCommissionFee(rate, minimum float64) CommissionFee {
	return &FixedRateCommissionFee{rate: rate, minimum: minimum}
}

// Calculate returns rate*notional, floored at the per-fill minimum.
func (c *FixedRateCommissionFee) Calculate(notional float64) float64 {
	fee := c.rate * notional
	if fee < c.minimum {
		return c.minimum
	}

	return fee
}
