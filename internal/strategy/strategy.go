// Package strategy implements the rule-based trading strategies evaluated by
// the backtesting engine. Each strategy maps a price series to indicator
// series and a per-bar signal sequence; it never looks past the bar it is
// deciding on.
package strategy

import (
	"time"

	"github.com/quantfold/sector-backtest/internal/indicator"
	"github.com/quantfold/sector-backtest/internal/types"
	"github.com/quantfold/sector-backtest/pkg/errors"
)

// Strategy names. These are the keys used by the registry, the default
// parameter table and the YAML configuration.
const (
	NameMACD            = "macd"
	NameRSI             = "rsi"
	NameBollinger       = "bollinger"
	NameMovingAverage   = "moving_average"
	NameTrendTracking   = "trend_tracking"
	NameBreakout        = "breakout"
	NameOversoldRebound = "oversold_rebound"
	NameVolumePrice     = "volume_price"
)

// IndicatorSet maps indicator names to series aligned with the price series
// that produced them.
type IndicatorSet map[string]indicator.Series

// Strategy is the capability set every concrete strategy implements.
type Strategy interface {
	// Name returns the registry name of the strategy.
	Name() string
	// DefaultParams returns the documented default parameters.
	DefaultParams() Params
	// ComputeIndicators derives the indicator series the signal rules
	// need. Entries inside warm-up windows are not-yet-available.
	ComputeIndicators(series *types.PriceSeries, params Params) (IndicatorSet, error)
	// GenerateSignals emits exactly one signal per bar. Bars inside any
	// indicator's warm-up window resolve to HOLD.
	GenerateSignals(series *types.PriceSeries, indicators IndicatorSet, params Params) ([]types.Signal, error)
}

// requireBars rejects genuinely empty input. A series that is merely shorter
// than the look-back windows is not an error; its signals are all HOLD.
func requireBars(series *types.PriceSeries) error {
	if series == nil || series.Len() == 0 {
		actual := 0

		symbol := ""
		if series != nil {
			symbol = series.Symbol
		}

		return errors.NewInsufficientDataErrorf(1, actual, symbol,
			"empty price series for %s", symbol)
	}

	return nil
}

// resolveSignal applies the contradictory-signal tie-break: when both a buy
// and a sell rule fire on the same bar the result is HOLD, never two
// signals for one bar.
func resolveSignal(index int, date time.Time, buy, sell types.SignalType, buyReason, sellReason string) types.Signal {
	hasBuy := buy.IsBuy()
	hasSell := sell.IsSell()

	switch {
	case hasBuy && hasSell:
		return types.HoldSignal(index, date)
	case hasBuy:
		return types.Signal{Index: index, Date: date, Type: buy, Reason: buyReason}
	case hasSell:
		return types.Signal{Index: index, Date: date, Type: sell, Reason: sellReason}
	default:
		return types.HoldSignal(index, date)
	}
}
