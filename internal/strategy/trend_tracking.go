package strategy

import (
	"github.com/quantfold/sector-backtest/internal/indicator"
	"github.com/quantfold/sector-backtest/internal/types"
)

// TrendTrackingStrategy looks for instruments already in an established
// advance: a bullish moving-average alignment (short > medium > long), a
// MACD bull market (line above signal, both above zero) and the price above
// the medium average must all hold on the same bar to buy. An expanding
// histogram upgrades the buy to strong. The bearish mirror sells.
type TrendTrackingStrategy struct{}

// NewTrendTrackingStrategy creates the trend-tracking strategy.
func NewTrendTrackingStrategy() Strategy {
	return &TrendTrackingStrategy{}
}

// Name implements Strategy.
func (s *TrendTrackingStrategy) Name() string { return NameTrendTracking }

// DefaultParams implements Strategy.
func (s *TrendTrackingStrategy) DefaultParams() Params { return DefaultTrendTrackingParams() }

// ComputeIndicators implements Strategy.
func (s *TrendTrackingStrategy) ComputeIndicators(series *types.PriceSeries, params Params) (IndicatorSet, error) {
	p, err := resolveParams(NameTrendTracking, params, DefaultTrendTrackingParams())
	if err != nil {
		return nil, err
	}

	if err := requireBars(series); err != nil {
		return nil, err
	}

	closes := series.Closes()
	macd := indicator.MACD(closes, p.FastPeriod, p.SlowPeriod, p.SignalPeriod)

	return IndicatorSet{
		IndicatorSMAShort:      indicator.SMA(closes, p.ShortPeriod),
		IndicatorSMAMedium:     indicator.SMA(closes, p.MediumPeriod),
		IndicatorSMALong:       indicator.SMA(closes, p.LongPeriod),
		IndicatorMACDLine:      macd.Line,
		IndicatorMACDSignal:    macd.Signal,
		IndicatorMACDHistogram: macd.Histogram,
	}, nil
}

// GenerateSignals implements Strategy.
func (s *TrendTrackingStrategy) GenerateSignals(series *types.PriceSeries, indicators IndicatorSet, params Params) ([]types.Signal, error) {
	if _, err := resolveParams(NameTrendTracking, params, DefaultTrendTrackingParams()); err != nil {
		return nil, err
	}

	if err := requireBars(series); err != nil {
		return nil, err
	}

	closes := indicator.FromValues(series.Closes())
	short := indicators[IndicatorSMAShort]
	medium := indicators[IndicatorSMAMedium]
	long := indicators[IndicatorSMALong]
	line := indicators[IndicatorMACDLine]
	signalLine := indicators[IndicatorMACDSignal]
	histogram := indicators[IndicatorMACDHistogram]

	signals := make([]types.Signal, series.Len())

	for i := range series.Bars {
		buy := types.SignalTypeHold
		sell := types.SignalTypeHold
		buyReason := ""
		sellReason := ""

		bullishAlignment := above(short, medium, i) && above(medium, long, i)
		bearishAlignment := below(short, medium, i) && below(medium, long, i)
		macdBullish := above(line, signalLine, i) && aboveLevel(line, 0, i) && aboveLevel(signalLine, 0, i)
		macdBearish := below(line, signalLine, i) && belowLevel(line, 0, i) && belowLevel(signalLine, 0, i)

		if bullishAlignment && macdBullish && above(closes, medium, i) {
			if rising(histogram, i) {
				buy = types.SignalTypeStrongBuy
				buyReason = "trend_momentum_expanding"
			} else {
				buy = types.SignalTypeBuy
				buyReason = "bullish_trend"
			}
		}

		if bearishAlignment && macdBearish {
			if falling(histogram, i) {
				sell = types.SignalTypeStrongSell
				sellReason = "trend_momentum_contracting"
			} else {
				sell = types.SignalTypeSell
				sellReason = "bearish_trend"
			}
		}

		signals[i] = resolveSignal(i, series.Bars[i].Date, buy, sell, buyReason, sellReason)
	}

	return signals, nil
}
