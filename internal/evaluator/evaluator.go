// Package evaluator derives performance metrics from a simulation result.
// All metrics are pure functions of the equity curve and trade list.
package evaluator

import (
	"math"

	"github.com/moznion/go-optional"

	"github.com/quantfold/sector-backtest/internal/simulator"
	"github.com/quantfold/sector-backtest/internal/types"
	"github.com/quantfold/sector-backtest/pkg/errors"
)

// Evaluate computes the full metric set for one simulation. The price series
// supplies the buy-and-hold benchmark. A curve with fewer than two points
// cannot produce returns and is rejected.
func Evaluate(result *simulator.Result, series *types.PriceSeries, initialCapital float64) (*types.PerformanceMetrics, error) {
	if result == nil || len(result.EquityCurve) < 2 {
		points := 0
		if result != nil {
			points = len(result.EquityCurve)
		}

		return nil, errors.NewEmptyEquityCurveError(points,
			"equity curve has too few points to evaluate")
	}

	if initialCapital <= 0 {
		initialCapital = simulator.DefaultInitialCapital
	}

	curve := result.EquityCurve
	dailyReturns := curve.DailyReturns()

	totalReturn := curve.FinalValue()/initialCapital - 1
	tradingDays := len(curve)

	metrics := &types.PerformanceMetrics{
		TotalReturn:      totalReturn,
		AnnualizedReturn: annualize(totalReturn, tradingDays),
		Volatility:       annualizedVolatility(dailyReturns),
		MaxDrawdown:      MaxDrawdown(curve),
		WinRate:          winRate(result.Trades),
		TradeCount:       len(result.Trades),
		AvgHoldingDays:   avgHoldingDays(result.Trades),
		SharpeRatio:      SharpeRatio(dailyReturns),
		FinalValue:       curve.FinalValue(),
		TotalFees:        result.TotalFees,
		BuyAndHoldReturn: BuyAndHoldReturn(series),
	}

	return metrics, nil
}

// annualize converts a whole-period return into a yearly rate using the
// 252-day trading calendar.
func annualize(totalReturn float64, tradingDays int) float64 {
	if tradingDays <= 0 {
		return 0
	}

	base := 1 + totalReturn
	if base <= 0 {
		// Total losses of 100% or more cannot be compounded.
		return -1
	}

	return math.Pow(base, float64(types.TradingDaysPerYear)/float64(tradingDays)) - 1
}

// MaxDrawdown is the worst peak-to-trough decline of the curve as a negative
// fraction. A monotonically rising curve scores 0.
func MaxDrawdown(curve types.EquityCurve) float64 {
	if len(curve) == 0 {
		return 0
	}

	peak := curve[0].Value
	worst := 0.0

	for _, p := range curve {
		if p.Value > peak {
			peak = p.Value
		}

		if peak > 0 {
			dd := (p.Value - peak) / peak
			if dd < worst {
				worst = dd
			}
		}
	}

	return worst
}

// SharpeRatio is mean over standard deviation of daily returns, annualized
// with sqrt(252). Undefined when the returns have zero spread.
func SharpeRatio(dailyReturns []float64) optional.Option[float64] {
	if len(dailyReturns) < 2 {
		return optional.None[float64]()
	}

	m := mean(dailyReturns)
	sd := stddevSample(dailyReturns)

	if sd == 0 {
		return optional.None[float64]()
	}

	return optional.Some(m / sd * math.Sqrt(types.TradingDaysPerYear))
}

// BuyAndHoldReturn is the benchmark of holding the instrument from the first
// bar's close to the last.
func BuyAndHoldReturn(series *types.PriceSeries) float64 {
	if series == nil || series.Len() < 2 {
		return 0
	}

	first := series.Bars[0].Close
	last := series.Bars[series.Len()-1].Close

	if first == 0 {
		return 0
	}

	return last/first - 1
}

func annualizedVolatility(dailyReturns []float64) float64 {
	if len(dailyReturns) < 2 {
		return 0
	}

	return stddevSample(dailyReturns) * math.Sqrt(types.TradingDaysPerYear)
}

func winRate(trades []types.Trade) float64 {
	if len(trades) == 0 {
		return 0
	}

	wins := 0
	for i := range trades {
		if trades[i].PnL() > 0 {
			wins++
		}
	}

	return float64(wins) / float64(len(trades))
}

func avgHoldingDays(trades []types.Trade) float64 {
	if len(trades) == 0 {
		return 0
	}

	total := 0
	for i := range trades {
		total += trades[i].HoldingDays()
	}

	return float64(total) / float64(len(trades))
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}

func stddevSample(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}

	m := mean(values)
	sum := 0.0

	for _, v := range values {
		d := v - m
		sum += d * d
	}

	return math.Sqrt(sum / float64(len(values)-1))
}
