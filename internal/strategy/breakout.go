package strategy

import (
	"github.com/quantfold/sector-backtest/internal/indicator"
	"github.com/quantfold/sector-backtest/internal/types"
)

// Indicator keys produced by the breakout strategy.
const (
	IndicatorResistanceShort = "resistance_short"
	IndicatorResistanceLong  = "resistance_long"
	IndicatorYearLine        = "year_line"
	IndicatorVolumeRatio     = "volume_ratio"
)

// BreakoutStrategy is buy-only. It buys when the close breaks above the
// upper Bollinger band or above a trailing resistance level, and upgrades to
// a strong buy when the breakout happens on expanding volume. Exits are left
// to the simulator's liquidation or to another strategy.
type BreakoutStrategy struct{}

// NewBreakoutStrategy creates the resistance-breakout strategy.
func NewBreakoutStrategy() Strategy {
	return &BreakoutStrategy{}
}

// Name implements Strategy.
func (s *BreakoutStrategy) Name() string { return NameBreakout }

// DefaultParams implements Strategy.
func (s *BreakoutStrategy) DefaultParams() Params { return DefaultBreakoutParams() }

// ComputeIndicators implements Strategy.
func (s *BreakoutStrategy) ComputeIndicators(series *types.PriceSeries, params Params) (IndicatorSet, error) {
	p, err := resolveParams(NameBreakout, params, DefaultBreakoutParams())
	if err != nil {
		return nil, err
	}

	if err := requireBars(series); err != nil {
		return nil, err
	}

	closes := series.Closes()
	highs := series.Highs()
	bb := indicator.Bollinger(closes, p.BollingerPeriod, p.StdDev)

	// Resistance levels are shifted one bar so the current high cannot be
	// its own ceiling.
	return IndicatorSet{
		IndicatorBollingerUpper:  bb.Upper,
		IndicatorBollingerMiddle: bb.Middle,
		IndicatorBollingerLower:  bb.Lower,
		IndicatorResistanceShort: indicator.RollingMax(highs, p.ShortResistance).Shift(1),
		IndicatorResistanceLong:  indicator.RollingMax(highs, p.LongResistance).Shift(1),
		IndicatorYearLine:        indicator.RollingMax(highs, p.YearLinePeriod).Shift(1),
		IndicatorVolumeRatio:     indicator.VolumeRatio(series.Volumes(), p.VolumePeriod),
	}, nil
}

// GenerateSignals implements Strategy.
func (s *BreakoutStrategy) GenerateSignals(series *types.PriceSeries, indicators IndicatorSet, params Params) ([]types.Signal, error) {
	p, err := resolveParams(NameBreakout, params, DefaultBreakoutParams())
	if err != nil {
		return nil, err
	}

	if err := requireBars(series); err != nil {
		return nil, err
	}

	closes := indicator.FromValues(series.Closes())
	upper := indicators[IndicatorBollingerUpper]
	resShort := indicators[IndicatorResistanceShort]
	resLong := indicators[IndicatorResistanceLong]
	yearLine := indicators[IndicatorYearLine]
	volRatio := indicators[IndicatorVolumeRatio]

	signals := make([]types.Signal, series.Len())

	for i := range series.Bars {
		buy := types.SignalTypeHold
		buyReason := ""

		switch {
		case crossAbove(closes, yearLine, i):
			buy = types.SignalTypeBuy
			buyReason = "year_line_breakout"
		case crossAbove(closes, resLong, i):
			buy = types.SignalTypeBuy
			buyReason = "long_resistance_breakout"
		case crossAbove(closes, resShort, i):
			buy = types.SignalTypeBuy
			buyReason = "short_resistance_breakout"
		case crossAbove(closes, upper, i):
			buy = types.SignalTypeBuy
			buyReason = "upper_band_breakout"
		}

		// Expanding volume confirms the break.
		if buy.IsBuy() && aboveLevel(volRatio, p.VolumeThreshold, i) {
			buy = types.SignalTypeStrongBuy
			buyReason += "_volume_confirmed"
		}

		signals[i] = resolveSignal(i, series.Bars[i].Date, buy, types.SignalTypeHold, buyReason, "")
	}

	return signals, nil
}
