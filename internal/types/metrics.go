package types

import (
	"github.com/moznion/go-optional"
)

// TradingDaysPerYear is the annualization factor used for returns,
// volatility and the Sharpe-like ratio.
const TradingDaysPerYear = 252

// PerformanceMetrics is derived solely from an equity curve and a trade
// list. Never mutated after computation.
type PerformanceMetrics struct {
	// TotalReturn is (final_value / initial_capital) - 1.
	TotalReturn float64 `yaml:"total_return"`
	// AnnualizedReturn is (1+total_return)^(252/trading_days) - 1.
	AnnualizedReturn float64 `yaml:"annualized_return"`
	// Volatility is the annualized standard deviation of daily returns.
	Volatility float64 `yaml:"volatility"`
	// MaxDrawdown is the worst peak-to-trough decline, as a negative
	// fraction (0 means the curve never fell below a prior peak).
	MaxDrawdown float64 `yaml:"max_drawdown"`
	// WinRate is winning trades over total trades, 0 when no trades.
	WinRate float64 `yaml:"win_rate"`
	// TradeCount is the number of closed round trips.
	TradeCount int `yaml:"trade_count"`
	// AvgHoldingDays is the mean holding period of closed trades.
	AvgHoldingDays float64 `yaml:"avg_holding_days"`
	// SharpeRatio is mean(daily returns)/stdev(daily returns)*sqrt(252).
	// None when the stdev is zero, never coerced to 0.
	SharpeRatio optional.Option[float64] `yaml:"sharpe_ratio"`
	// FinalValue is the last point of the equity curve.
	FinalValue float64 `yaml:"final_value"`
	// TotalFees is the commission paid across all trades.
	TotalFees float64 `yaml:"total_fees"`
	// BuyAndHoldReturn is the benchmark return of holding the instrument
	// over the same window.
	BuyAndHoldReturn float64 `yaml:"buy_and_hold_return"`
}
