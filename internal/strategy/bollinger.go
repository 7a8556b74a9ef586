package strategy

import (
	"github.com/quantfold/sector-backtest/internal/indicator"
	"github.com/quantfold/sector-backtest/internal/types"
)

// Indicator keys produced by the Bollinger strategy.
const (
	IndicatorBollingerMiddle = "bb_middle"
	IndicatorBollingerUpper  = "bb_upper"
	IndicatorBollingerLower  = "bb_lower"
	IndicatorBollingerWidth  = "bb_width"
)

// BollingerStrategy trades mean reversion at the band edges: touching or
// bouncing off the lower band buys, touching or falling back from the upper
// band sells.
type BollingerStrategy struct{}

// NewBollingerStrategy creates the Bollinger mean-reversion strategy.
func NewBollingerStrategy() Strategy {
	return &BollingerStrategy{}
}

// Name implements Strategy.
func (s *BollingerStrategy) Name() string { return NameBollinger }

// DefaultParams implements Strategy.
func (s *BollingerStrategy) DefaultParams() Params { return DefaultBollingerParams() }

// ComputeIndicators implements Strategy.
func (s *BollingerStrategy) ComputeIndicators(series *types.PriceSeries, params Params) (IndicatorSet, error) {
	p, err := resolveParams(NameBollinger, params, DefaultBollingerParams())
	if err != nil {
		return nil, err
	}

	if err := requireBars(series); err != nil {
		return nil, err
	}

	bb := indicator.Bollinger(series.Closes(), p.Period, p.StdDev)

	return IndicatorSet{
		IndicatorBollingerMiddle: bb.Middle,
		IndicatorBollingerUpper:  bb.Upper,
		IndicatorBollingerLower:  bb.Lower,
		IndicatorBollingerWidth:  bb.Width,
	}, nil
}

// GenerateSignals implements Strategy.
func (s *BollingerStrategy) GenerateSignals(series *types.PriceSeries, indicators IndicatorSet, params Params) ([]types.Signal, error) {
	if _, err := resolveParams(NameBollinger, params, DefaultBollingerParams()); err != nil {
		return nil, err
	}

	if err := requireBars(series); err != nil {
		return nil, err
	}

	closes := indicator.FromValues(series.Closes())
	upper := indicators[IndicatorBollingerUpper]
	lower := indicators[IndicatorBollingerLower]

	signals := make([]types.Signal, series.Len())

	for i := range series.Bars {
		buy := types.SignalTypeHold
		sell := types.SignalTypeHold
		buyReason := ""
		sellReason := ""

		// Close dropping onto or through the lower band.
		if crossBelow(closes, lower, i) || touchedBand(closes, lower, i, true) {
			buy = types.SignalTypeBuy
			buyReason = "lower_band_touch"
		}

		// Bounce back above the lower band after two bars at or below it.
		if crossAbove(closes, lower, i) && twoBarsAtOrBelowBand(closes, lower, i) {
			buy = types.SignalTypeBuy
			buyReason = "lower_band_bounce"
		}

		// Close reaching or piercing the upper band.
		if crossAbove(closes, upper, i) || touchedBand(closes, upper, i, false) {
			sell = types.SignalTypeSell
			sellReason = "upper_band_touch"
		}

		// Fall back below the upper band after two bars at or above it.
		if crossBelow(closes, upper, i) && twoBarsAtOrAboveBand(closes, upper, i) {
			sell = types.SignalTypeSell
			sellReason = "upper_band_fall"
		}

		signals[i] = resolveSignal(i, series.Bars[i].Date, buy, sell, buyReason, sellReason)
	}

	return signals, nil
}

// touchedBand reports a first contact with a band at bar i: the close is at
// or beyond the band now but was strictly inside on the previous bar.
func touchedBand(closes, band indicator.Series, i int, lower bool) bool {
	if i < 1 {
		return false
	}

	c, cok := closes.At(i)
	b, bok := band.At(i)
	cp, cpok := closes.At(i - 1)
	bp, bpok := band.At(i - 1)

	if !cok || !bok || !cpok || !bpok {
		return false
	}

	if lower {
		return c <= b && cp > bp
	}

	return c >= b && cp < bp
}

func twoBarsAtOrBelowBand(closes, band indicator.Series, i int) bool {
	if i < 2 {
		return false
	}

	c1, ok1 := closes.At(i - 1)
	b1, ok2 := band.At(i - 1)
	c2, ok3 := closes.At(i - 2)
	b2, ok4 := band.At(i - 2)

	return ok1 && ok2 && ok3 && ok4 && c1 <= b1 && c2 <= b2
}

func twoBarsAtOrAboveBand(closes, band indicator.Series, i int) bool {
	if i < 2 {
		return false
	}

	c1, ok1 := closes.At(i - 1)
	b1, ok2 := band.At(i - 1)
	c2, ok3 := closes.At(i - 2)
	b2, ok4 := band.At(i - 2)

	return ok1 && ok2 && ok3 && ok4 && c1 >= b1 && c2 >= b2
}
