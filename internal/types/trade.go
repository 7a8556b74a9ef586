package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// PositionState is the simulator's portfolio state. Short and leveraged
// positions are out of scope.
type PositionState string

const (
	PositionStateFlat PositionState = "FLAT"
	PositionStateLong PositionState = "LONG"
)

// Position is the single-instrument holding of the simulator.
type Position struct {
	State      PositionState `yaml:"state"`
	EntryDate  time.Time     `yaml:"entry_date,omitempty"`
	EntryPrice float64       `yaml:"entry_price,omitempty"`
	Shares     int64         `yaml:"shares,omitempty"`
}

// FlatPosition returns the initial portfolio state.
func FlatPosition() Position {
	return Position{State: PositionStateFlat}
}

// IsLong reports whether shares are held.
func (p Position) IsLong() bool {
	return p.State == PositionStateLong
}

// MarketValue values the position at the given price.
func (p Position) MarketValue(price float64) float64 {
	if !p.IsLong() {
		return 0
	}

	value, _ := decimal.NewFromInt(p.Shares).Mul(decimal.NewFromFloat(price)).Float64()

	return value
}

// Trade is one closed BUY-then-SELL round trip.
type Trade struct {
	Symbol       string    `yaml:"symbol"`
	StrategyName string    `yaml:"strategy_name"`
	EntryDate    time.Time `yaml:"entry_date"`
	EntryPrice   float64   `yaml:"entry_price"`
	ExitDate     time.Time `yaml:"exit_date"`
	ExitPrice    float64   `yaml:"exit_price"`
	Shares       int64     `yaml:"shares"`
	// Fees is the total commission paid on entry and exit.
	Fees float64 `yaml:"fees"`
	// Liquidation marks a trade closed by end-of-period liquidation
	// rather than a SELL signal.
	Liquidation bool `yaml:"liquidation,omitempty"`
}

// ReturnPct is the per-trade fractional return, fees included.
func (t *Trade) ReturnPct() float64 {
	entry := decimal.NewFromFloat(t.EntryPrice).Mul(decimal.NewFromInt(t.Shares))
	if entry.IsZero() {
		return 0
	}

	exit := decimal.NewFromFloat(t.ExitPrice).Mul(decimal.NewFromInt(t.Shares))
	pnl := exit.Sub(entry).Sub(decimal.NewFromFloat(t.Fees))
	ret, _ := pnl.Div(entry).Float64()

	return ret
}

// PnL is the realized profit in currency units, fees included.
func (t *Trade) PnL() float64 {
	entry := decimal.NewFromFloat(t.EntryPrice).Mul(decimal.NewFromInt(t.Shares))
	exit := decimal.NewFromFloat(t.ExitPrice).Mul(decimal.NewFromInt(t.Shares))
	pnl, _ := exit.Sub(entry).Sub(decimal.NewFromFloat(t.Fees)).Float64()

	return pnl
}

// HoldingDays counts calendar days between entry and exit, minimum 1.
func (t *Trade) HoldingDays() int {
	days := int(t.ExitDate.Sub(t.EntryDate).Hours() / 24)
	if days < 1 {
		days = 1
	}

	return days
}

// EquityPoint is one mark-to-market observation of the portfolio.
type EquityPoint struct {
	Date  time.Time `yaml:"date"`
	Value float64   `yaml:"value"`
}

// EquityCurve is the per-bar portfolio value, same length as the price
// series that produced it.
type EquityCurve []EquityPoint

// FinalValue returns the last portfolio value, or 0 for an empty curve.
func (c EquityCurve) FinalValue() float64 {
	if len(c) == 0 {
		return 0
	}

	return c[len(c)-1].Value
}

// DailyReturns computes bar-over-bar fractional returns. The result has
// len(curve)-1 entries; a zero-valued previous point yields a 0 return to
// avoid division by zero.
func (c EquityCurve) DailyReturns() []float64 {
	if len(c) < 2 {
		return nil
	}

	out := make([]float64, 0, len(c)-1)

	for i := 1; i < len(c); i++ {
		prev := c[i-1].Value
		if prev == 0 {
			out = append(out, 0)
			continue
		}

		out = append(out, (c[i].Value-prev)/prev)
	}

	return out
}
