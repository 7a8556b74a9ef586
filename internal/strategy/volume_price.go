package strategy

import (
	"github.com/quantfold/sector-backtest/internal/indicator"
	"github.com/quantfold/sector-backtest/internal/types"
)

// Indicator keys produced by the volume-price strategy.
const (
	IndicatorVolumeChange = "volume_change"
	IndicatorPriceChange  = "price_change"
)

// VolumePriceStrategy reads the agreement between volume and price:
// expanding volume on a real advance buys, expanding volume on a real
// decline sells. Moves without a volume expansion are noise and hold.
type VolumePriceStrategy struct{}

// NewVolumePriceStrategy creates the volume-price agreement strategy.
func NewVolumePriceStrategy() Strategy {
	return &VolumePriceStrategy{}
}

// Name implements Strategy.
func (s *VolumePriceStrategy) Name() string { return NameVolumePrice }

// DefaultParams implements Strategy.
func (s *VolumePriceStrategy) DefaultParams() Params { return DefaultVolumePriceParams() }

// ComputeIndicators implements Strategy.
func (s *VolumePriceStrategy) ComputeIndicators(series *types.PriceSeries, params Params) (IndicatorSet, error) {
	if _, err := resolveParams(NameVolumePrice, params, DefaultVolumePriceParams()); err != nil {
		return nil, err
	}

	if err := requireBars(series); err != nil {
		return nil, err
	}

	return IndicatorSet{
		IndicatorVolumeChange: indicator.Change(series.Volumes()),
		IndicatorPriceChange:  indicator.Change(series.Closes()),
	}, nil
}

// GenerateSignals implements Strategy.
func (s *VolumePriceStrategy) GenerateSignals(series *types.PriceSeries, indicators IndicatorSet, params Params) ([]types.Signal, error) {
	p, err := resolveParams(NameVolumePrice, params, DefaultVolumePriceParams())
	if err != nil {
		return nil, err
	}

	if err := requireBars(series); err != nil {
		return nil, err
	}

	volumeChange := indicators[IndicatorVolumeChange]
	priceChange := indicators[IndicatorPriceChange]

	signals := make([]types.Signal, series.Len())

	for i := range series.Bars {
		buy := types.SignalTypeHold
		sell := types.SignalTypeHold

		volumeUp := aboveLevel(volumeChange, p.VolumeChangeThreshold, i)

		if volumeUp && aboveLevel(priceChange, p.PriceChangeThreshold, i) {
			buy = types.SignalTypeBuy
		}

		if volumeUp && belowLevel(priceChange, -p.PriceChangeThreshold, i) {
			sell = types.SignalTypeSell
		}

		signals[i] = resolveSignal(i, series.Bars[i].Date, buy, sell,
			"volume_price_rise", "volume_price_fall")
	}

	return signals, nil
}
