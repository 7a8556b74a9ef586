package strategy

import (
	"github.com/quantfold/sector-backtest/internal/indicator"
	"github.com/quantfold/sector-backtest/internal/types"
)

// Indicator keys produced by the MACD strategy.
const (
	IndicatorMACDLine      = "macd_line"
	IndicatorMACDSignal    = "macd_signal"
	IndicatorMACDHistogram = "macd_histogram"
)

// MACDStrategy trades the crossover of the MACD line against its signal
// line: a golden cross buys, a death cross sells.
type MACDStrategy struct{}

// NewMACDStrategy creates the MACD crossover strategy.
func NewMACDStrategy() Strategy {
	return &MACDStrategy{}
}

// Name implements Strategy.
func (s *MACDStrategy) Name() string { return NameMACD }

// DefaultParams implements Strategy.
func (s *MACDStrategy) DefaultParams() Params { return DefaultMACDParams() }

// ComputeIndicators implements Strategy.
func (s *MACDStrategy) ComputeIndicators(series *types.PriceSeries, params Params) (IndicatorSet, error) {
	p, err := resolveParams(NameMACD, params, DefaultMACDParams())
	if err != nil {
		return nil, err
	}

	if err := requireBars(series); err != nil {
		return nil, err
	}

	macd := indicator.MACD(series.Closes(), p.FastPeriod, p.SlowPeriod, p.SignalPeriod)

	return IndicatorSet{
		IndicatorMACDLine:      macd.Line,
		IndicatorMACDSignal:    macd.Signal,
		IndicatorMACDHistogram: macd.Histogram,
	}, nil
}

// GenerateSignals implements Strategy.
func (s *MACDStrategy) GenerateSignals(series *types.PriceSeries, indicators IndicatorSet, params Params) ([]types.Signal, error) {
	if _, err := resolveParams(NameMACD, params, DefaultMACDParams()); err != nil {
		return nil, err
	}

	if err := requireBars(series); err != nil {
		return nil, err
	}

	line := indicators[IndicatorMACDLine]
	signalLine := indicators[IndicatorMACDSignal]

	signals := make([]types.Signal, series.Len())

	for i := range series.Bars {
		buy := types.SignalTypeHold
		sell := types.SignalTypeHold

		// The signal line becomes defined mid-series; a cross that
		// happened inside the warm-up gap fires on its first visible
		// bar.
		if crossAbove(line, signalLine, i) || firstBarAbove(line, signalLine, i) {
			buy = types.SignalTypeBuy
		}

		if crossBelow(line, signalLine, i) || firstBarBelow(line, signalLine, i) {
			sell = types.SignalTypeSell
		}

		signals[i] = resolveSignal(i, series.Bars[i].Date, buy, sell, "golden_cross", "death_cross")
	}

	return signals, nil
}
