package strategy

import (
	"github.com/quantfold/sector-backtest/internal/indicator"
	"github.com/quantfold/sector-backtest/internal/types"
)

// Indicator keys produced by the oversold-rebound strategy.
const (
	IndicatorKDJK    = "kdj_k"
	IndicatorKDJD    = "kdj_d"
	IndicatorKDJJ    = "kdj_j"
	IndicatorDecline = "decline"
)

// OversoldReboundStrategy is buy-only. It hunts for washed-out conditions
// after a meaningful decline: deeply oversold KDJ and RSI together are the
// strongest entry, a KDJ golden cross or an RSI recovery inside the decline
// window are weaker ones.
type OversoldReboundStrategy struct{}

// NewOversoldReboundStrategy creates the oversold-rebound strategy.
func NewOversoldReboundStrategy() Strategy {
	return &OversoldReboundStrategy{}
}

// Name implements Strategy.
func (s *OversoldReboundStrategy) Name() string { return NameOversoldRebound }

// DefaultParams implements Strategy.
func (s *OversoldReboundStrategy) DefaultParams() Params { return DefaultOversoldReboundParams() }

// ComputeIndicators implements Strategy.
func (s *OversoldReboundStrategy) ComputeIndicators(series *types.PriceSeries, params Params) (IndicatorSet, error) {
	p, err := resolveParams(NameOversoldRebound, params, DefaultOversoldReboundParams())
	if err != nil {
		return nil, err
	}

	if err := requireBars(series); err != nil {
		return nil, err
	}

	closes := series.Closes()
	kdj := indicator.KDJ(series.Highs(), series.Lows(), closes, p.KPeriod, p.DPeriod, p.JPeriod)

	return IndicatorSet{
		IndicatorKDJK:    kdj.K,
		IndicatorKDJD:    kdj.D,
		IndicatorKDJJ:    kdj.J,
		IndicatorRSI:     indicator.RSI(closes, p.RSIPeriod),
		IndicatorDecline: indicator.Decline(closes, p.DeclinePeriod),
	}, nil
}

// GenerateSignals implements Strategy.
func (s *OversoldReboundStrategy) GenerateSignals(series *types.PriceSeries, indicators IndicatorSet, params Params) ([]types.Signal, error) {
	p, err := resolveParams(NameOversoldRebound, params, DefaultOversoldReboundParams())
	if err != nil {
		return nil, err
	}

	if err := requireBars(series); err != nil {
		return nil, err
	}

	k := indicators[IndicatorKDJK]
	d := indicators[IndicatorKDJD]
	j := indicators[IndicatorKDJJ]
	rsi := indicators[IndicatorRSI]
	decline := indicators[IndicatorDecline]

	signals := make([]types.Signal, series.Len())

	for i := range series.Bars {
		buy := types.SignalTypeHold
		buyReason := ""

		kdjOversold := belowLevel(k, p.KDJOversold, i) &&
			belowLevel(d, p.KDJOversold, i) &&
			belowLevel(j, p.KDJOversold, i)
		rsiOversold := belowLevel(rsi, p.RSIOversold, i)
		declined := aboveLevel(decline, p.DeclineThreshold, i)

		switch {
		case kdjOversold && rsiOversold && declined:
			buy = types.SignalTypeStrongBuy
			buyReason = "deep_oversold"
		case crossAbove(k, d, i) && rsiOversold:
			buy = types.SignalTypeStrongBuy
			buyReason = "kdj_golden_cross_oversold"
		case crossAboveLevel(rsi, p.RSIOversold, i) && declined:
			buy = types.SignalTypeBuy
			buyReason = "rsi_recovery"
		case (kdjOversold || rsiOversold) && declined:
			buy = types.SignalTypeBuy
			buyReason = "oversold_after_decline"
		}

		signals[i] = resolveSignal(i, series.Bars[i].Date, buy, types.SignalTypeHold, buyReason, "")
	}

	return signals, nil
}
