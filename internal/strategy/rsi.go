package strategy

import (
	"github.com/quantfold/sector-backtest/internal/indicator"
	"github.com/quantfold/sector-backtest/internal/types"
)

// Indicator key produced by the RSI strategy.
const IndicatorRSI = "rsi"

// RSIStrategy trades reversion around oversold/overbought thresholds: a
// drop into the oversold zone or a recovery out of it buys, the mirror
// moves around the overbought threshold sell.
type RSIStrategy struct{}

// NewRSIStrategy creates the RSI reversion strategy.
func NewRSIStrategy() Strategy {
	return &RSIStrategy{}
}

// Name implements Strategy.
func (s *RSIStrategy) Name() string { return NameRSI }

// DefaultParams implements Strategy.
func (s *RSIStrategy) DefaultParams() Params { return DefaultRSIParams() }

// ComputeIndicators implements Strategy.
func (s *RSIStrategy) ComputeIndicators(series *types.PriceSeries, params Params) (IndicatorSet, error) {
	p, err := resolveParams(NameRSI, params, DefaultRSIParams())
	if err != nil {
		return nil, err
	}

	if err := requireBars(series); err != nil {
		return nil, err
	}

	return IndicatorSet{
		IndicatorRSI: indicator.RSI(series.Closes(), p.Period),
	}, nil
}

// GenerateSignals implements Strategy.
func (s *RSIStrategy) GenerateSignals(series *types.PriceSeries, indicators IndicatorSet, params Params) ([]types.Signal, error) {
	p, err := resolveParams(NameRSI, params, DefaultRSIParams())
	if err != nil {
		return nil, err
	}

	if err := requireBars(series); err != nil {
		return nil, err
	}

	rsi := indicators[IndicatorRSI]
	signals := make([]types.Signal, series.Len())

	for i := range series.Bars {
		buy := types.SignalTypeHold
		sell := types.SignalTypeHold
		buyReason := ""
		sellReason := ""

		// Entry into the oversold zone.
		if crossBelowLevel(rsi, p.Oversold, i) {
			buy = types.SignalTypeBuy
			buyReason = "oversold"
		}

		// Recovery out of the oversold zone after at least two bars
		// inside it.
		if crossAboveLevel(rsi, p.Oversold, i) && twoBarsBelow(rsi, p.Oversold, i) {
			buy = types.SignalTypeBuy
			buyReason = "oversold_recovery"
		}

		// Entry into the overbought zone.
		if crossAboveLevel(rsi, p.Overbought, i) {
			sell = types.SignalTypeSell
			sellReason = "overbought"
		}

		// Decline out of the overbought zone after at least two bars
		// inside it.
		if crossBelowLevel(rsi, p.Overbought, i) && twoBarsAbove(rsi, p.Overbought, i) {
			sell = types.SignalTypeSell
			sellReason = "overbought_decline"
		}

		signals[i] = resolveSignal(i, series.Bars[i].Date, buy, sell, buyReason, sellReason)
	}

	return signals, nil
}

// twoBarsBelow reports whether s was at or below the level on bars i-1 and
// i-2.
func twoBarsBelow(s indicator.Series, level float64, i int) bool {
	if i < 2 {
		return false
	}

	p1, ok1 := s.At(i - 1)
	p2, ok2 := s.At(i - 2)

	return ok1 && ok2 && p1 <= level && p2 <= level
}

// twoBarsAbove reports whether s was at or above the level on bars i-1 and
// i-2.
func twoBarsAbove(s indicator.Series, level float64, i int) bool {
	if i < 2 {
		return false
	}

	p1, ok1 := s.At(i - 1)
	p2, ok2 := s.At(i - 2)

	return ok1 && ok2 && p1 >= level && p2 >= level
}
