package strategy

import (
	"github.com/quantfold/sector-backtest/internal/indicator"
	"github.com/quantfold/sector-backtest/internal/types"
)

// Indicator keys produced by the moving-average strategy.
const (
	IndicatorSMAShort  = "sma_short"
	IndicatorSMAMedium = "sma_medium"
	IndicatorSMALong   = "sma_long"
)

// MovingAverageStrategy trades moving-average crossovers. A short/medium
// golden cross or the price reclaiming the medium average buys; the
// medium/long golden cross is the strong variant. Death crosses mirror the
// sells.
type MovingAverageStrategy struct{}

// NewMovingAverageStrategy creates the moving-average crossover strategy.
func NewMovingAverageStrategy() Strategy {
	return &MovingAverageStrategy{}
}

// Name implements Strategy.
func (s *MovingAverageStrategy) Name() string { return NameMovingAverage }

// DefaultParams implements Strategy.
func (s *MovingAverageStrategy) DefaultParams() Params { return DefaultMovingAverageParams() }

// ComputeIndicators implements Strategy.
func (s *MovingAverageStrategy) ComputeIndicators(series *types.PriceSeries, params Params) (IndicatorSet, error) {
	p, err := resolveParams(NameMovingAverage, params, DefaultMovingAverageParams())
	if err != nil {
		return nil, err
	}

	if err := requireBars(series); err != nil {
		return nil, err
	}

	closes := series.Closes()

	return IndicatorSet{
		IndicatorSMAShort:  indicator.SMA(closes, p.ShortPeriod),
		IndicatorSMAMedium: indicator.SMA(closes, p.MediumPeriod),
		IndicatorSMALong:   indicator.SMA(closes, p.LongPeriod),
	}, nil
}

// GenerateSignals implements Strategy.
func (s *MovingAverageStrategy) GenerateSignals(series *types.PriceSeries, indicators IndicatorSet, params Params) ([]types.Signal, error) {
	if _, err := resolveParams(NameMovingAverage, params, DefaultMovingAverageParams()); err != nil {
		return nil, err
	}

	if err := requireBars(series); err != nil {
		return nil, err
	}

	closes := indicator.FromValues(series.Closes())
	short := indicators[IndicatorSMAShort]
	medium := indicators[IndicatorSMAMedium]
	long := indicators[IndicatorSMALong]

	signals := make([]types.Signal, series.Len())

	for i := range series.Bars {
		buy := types.SignalTypeHold
		sell := types.SignalTypeHold
		buyReason := ""
		sellReason := ""

		if crossAbove(short, medium, i) {
			buy = types.SignalTypeBuy
			buyReason = "short_medium_golden_cross"
		}

		if crossAbove(closes, medium, i) {
			buy = types.SignalTypeBuy
			buyReason = "price_above_medium"
		}

		// The medium/long cross confirms the larger trend turn.
		if crossAbove(medium, long, i) {
			buy = types.SignalTypeStrongBuy
			buyReason = "medium_long_golden_cross"
		}

		if crossBelow(short, medium, i) {
			sell = types.SignalTypeSell
			sellReason = "short_medium_death_cross"
		}

		if crossBelow(closes, medium, i) {
			sell = types.SignalTypeSell
			sellReason = "price_below_medium"
		}

		if crossBelow(medium, long, i) {
			sell = types.SignalTypeStrongSell
			sellReason = "medium_long_death_cross"
		}

		signals[i] = resolveSignal(i, series.Bars[i].Date, buy, sell, buyReason, sellReason)
	}

	return signals, nil
}
