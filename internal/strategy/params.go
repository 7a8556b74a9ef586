package strategy

import (
	"github.com/go-playground/validator/v10"

	"github.com/quantfold/sector-backtest/pkg/errors"
)

// Params is a strategy's named, typed configuration. Each concrete strategy
// owns one params struct; validation happens at construction time, before
// any computation runs.
type Params interface {
	// StrategyName returns the name of the strategy these params
	// configure.
	StrategyName() string
	// Validate checks positivity and period-ordering invariants. A
	// violation is reported as *errors.InvalidParamsError.
	Validate() error
}

// validateParams runs struct-tag validation and wraps failures in the typed
// InvalidParamsError.
func validateParams(strategyName string, p any) error {
	validate := validator.New()
	if err := validate.Struct(p); err != nil {
		return errors.NewInvalidParamsError(strategyName, "invalid strategy parameters", err)
	}

	return nil
}

// resolveParams returns the concrete params for a strategy run: the given
// params when present and of the right type, the defaults otherwise. The
// result is always validated.
func resolveParams[T Params](strategyName string, params Params, defaults T) (T, error) {
	if params == nil {
		return defaults, defaults.Validate()
	}

	p, ok := params.(T)
	if !ok {
		return defaults, errors.NewInvalidParamsError(strategyName,
			"params have the wrong type for this strategy", nil)
	}

	return p, p.Validate()
}

// MACDParams configures the MACD crossover strategy.
type MACDParams struct {
	FastPeriod   int `yaml:"fast_period" json:"fast_period" validate:"required,gt=0,ltfield=SlowPeriod"`
	SlowPeriod   int `yaml:"slow_period" json:"slow_period" validate:"required,gt=0"`
	SignalPeriod int `yaml:"signal_period" json:"signal_period" validate:"required,gt=0"`
}

// DefaultMACDParams returns the documented defaults (12/26/9).
func DefaultMACDParams() MACDParams {
	return MACDParams{FastPeriod: 12, SlowPeriod: 26, SignalPeriod: 9}
}

func (p MACDParams) StrategyName() string { return NameMACD }

// Validate implements Params.
func (p MACDParams) Validate() error { return validateParams(NameMACD, p) }

// RSIParams configures the RSI reversion strategy.
type RSIParams struct {
	Period     int     `yaml:"period" json:"period" validate:"required,gt=0"`
	Oversold   float64 `yaml:"oversold" json:"oversold" validate:"required,gt=0,ltfield=Overbought"`
	Overbought float64 `yaml:"overbought" json:"overbought" validate:"required,lt=100"`
}

// DefaultRSIParams returns the documented defaults (14, 30/70).
func DefaultRSIParams() RSIParams {
	return RSIParams{Period: 14, Oversold: 30, Overbought: 70}
}

func (p RSIParams) StrategyName() string { return NameRSI }

// Validate implements Params.
func (p RSIParams) Validate() error { return validateParams(NameRSI, p) }

// BollingerParams configures the Bollinger mean-reversion strategy.
type BollingerParams struct {
	Period int     `yaml:"period" json:"period" validate:"required,gt=1"`
	StdDev float64 `yaml:"std_dev" json:"std_dev" validate:"required,gt=0"`
}

// DefaultBollingerParams returns the documented defaults (20, 2.0).
func DefaultBollingerParams() BollingerParams {
	return BollingerParams{Period: 20, StdDev: 2.0}
}

func (p BollingerParams) StrategyName() string { return NameBollinger }

// Validate implements Params.
func (p BollingerParams) Validate() error { return validateParams(NameBollinger, p) }

// MovingAverageParams configures the moving-average crossover strategy.
// Periods must satisfy short < medium < long.
type MovingAverageParams struct {
	ShortPeriod  int `yaml:"short_period" json:"short_period" validate:"required,gt=0,ltfield=MediumPeriod"`
	MediumPeriod int `yaml:"medium_period" json:"medium_period" validate:"required,gt=0,ltfield=LongPeriod"`
	LongPeriod   int `yaml:"long_period" json:"long_period" validate:"required,gt=0"`
}

// DefaultMovingAverageParams returns the documented defaults (5/20/60).
func DefaultMovingAverageParams() MovingAverageParams {
	return MovingAverageParams{ShortPeriod: 5, MediumPeriod: 20, LongPeriod: 60}
}

func (p MovingAverageParams) StrategyName() string { return NameMovingAverage }

// Validate implements Params.
func (p MovingAverageParams) Validate() error { return validateParams(NameMovingAverage, p) }

// TrendTrackingParams configures the trend-tracking strategy, which combines
// a moving-average alignment with a MACD bull-market condition.
type TrendTrackingParams struct {
	ShortPeriod  int `yaml:"short_period" json:"short_period" validate:"required,gt=0,ltfield=MediumPeriod"`
	MediumPeriod int `yaml:"medium_period" json:"medium_period" validate:"required,gt=0,ltfield=LongPeriod"`
	LongPeriod   int `yaml:"long_period" json:"long_period" validate:"required,gt=0"`
	FastPeriod   int `yaml:"fast_period" json:"fast_period" validate:"required,gt=0,ltfield=SlowPeriod"`
	SlowPeriod   int `yaml:"slow_period" json:"slow_period" validate:"required,gt=0"`
	SignalPeriod int `yaml:"signal_period" json:"signal_period" validate:"required,gt=0"`
}

// DefaultTrendTrackingParams returns the documented defaults
// (5/20/60 averages, 12/26/9 MACD).
func DefaultTrendTrackingParams() TrendTrackingParams {
	return TrendTrackingParams{
		ShortPeriod:  5,
		MediumPeriod: 20,
		LongPeriod:   60,
		FastPeriod:   12,
		SlowPeriod:   26,
		SignalPeriod: 9,
	}
}

func (p TrendTrackingParams) StrategyName() string { return NameTrendTracking }

// Validate implements Params.
func (p TrendTrackingParams) Validate() error { return validateParams(NameTrendTracking, p) }

// BreakoutParams configures the breakout strategy.
type BreakoutParams struct {
	BollingerPeriod int     `yaml:"bollinger_period" json:"bollinger_period" validate:"required,gt=1"`
	StdDev          float64 `yaml:"std_dev" json:"std_dev" validate:"required,gt=0"`
	VolumePeriod    int     `yaml:"volume_period" json:"volume_period" validate:"required,gt=0"`
	VolumeThreshold float64 `yaml:"volume_threshold" json:"volume_threshold" validate:"required,gt=0"`
	// Resistance look-backs: short and long trailing highs plus the
	// year line (250-day high).
	ShortResistance int `yaml:"short_resistance" json:"short_resistance" validate:"required,gt=0,ltfield=LongResistance"`
	LongResistance  int `yaml:"long_resistance" json:"long_resistance" validate:"required,gt=0,ltfield=YearLinePeriod"`
	YearLinePeriod  int `yaml:"year_line_period" json:"year_line_period" validate:"required,gt=0"`
}

// DefaultBreakoutParams returns the documented defaults.
func DefaultBreakoutParams() BreakoutParams {
	return BreakoutParams{
		BollingerPeriod: 20,
		StdDev:          2.0,
		VolumePeriod:    5,
		VolumeThreshold: 1.2,
		ShortResistance: 20,
		LongResistance:  60,
		YearLinePeriod:  250,
	}
}

func (p BreakoutParams) StrategyName() string { return NameBreakout }

// Validate implements Params.
func (p BreakoutParams) Validate() error { return validateParams(NameBreakout, p) }

// OversoldReboundParams configures the oversold-rebound strategy.
type OversoldReboundParams struct {
	KPeriod          int     `yaml:"k_period" json:"k_period" validate:"required,gt=0"`
	DPeriod          int     `yaml:"d_period" json:"d_period" validate:"required,gt=0"`
	JPeriod          int     `yaml:"j_period" json:"j_period" validate:"required,gt=0"`
	RSIPeriod        int     `yaml:"rsi_period" json:"rsi_period" validate:"required,gt=0"`
	KDJOversold      float64 `yaml:"kdj_oversold" json:"kdj_oversold" validate:"required,gt=0"`
	RSIOversold      float64 `yaml:"rsi_oversold" json:"rsi_oversold" validate:"required,gt=0"`
	DeclinePeriod    int     `yaml:"decline_period" json:"decline_period" validate:"required,gt=0"`
	DeclineThreshold float64 `yaml:"decline_threshold" json:"decline_threshold" validate:"required,gt=0"`
}

// DefaultOversoldReboundParams returns the documented defaults
// (KDJ 9/3/3, RSI 14, thresholds 20/30, 15% decline over 20 bars).
func DefaultOversoldReboundParams() OversoldReboundParams {
	return OversoldReboundParams{
		KPeriod:          9,
		DPeriod:          3,
		JPeriod:          3,
		RSIPeriod:        14,
		KDJOversold:      20,
		RSIOversold:      30,
		DeclinePeriod:    20,
		DeclineThreshold: 15,
	}
}

func (p OversoldReboundParams) StrategyName() string { return NameOversoldRebound }

// Validate implements Params.
func (p OversoldReboundParams) Validate() error { return validateParams(NameOversoldRebound, p) }

// VolumePriceParams configures the volume-price strategy.
type VolumePriceParams struct {
	// VolumeChangeThreshold is the fractional volume increase that counts
	// as expanding volume (0.10 = +10%).
	VolumeChangeThreshold float64 `yaml:"volume_change_threshold" json:"volume_change_threshold" validate:"required,gt=0"`
	// PriceChangeThreshold is the fractional price move that counts as a
	// real advance or decline (0.01 = 1%).
	PriceChangeThreshold float64 `yaml:"price_change_threshold" json:"price_change_threshold" validate:"required,gt=0"`
}

// DefaultVolumePriceParams returns the documented defaults (+10% volume,
// 1% price).
func DefaultVolumePriceParams() VolumePriceParams {
	return VolumePriceParams{VolumeChangeThreshold: 0.10, PriceChangeThreshold: 0.01}
}

func (p VolumePriceParams) StrategyName() string { return NameVolumePrice }

// Validate implements Params.
func (p VolumePriceParams) Validate() error { return validateParams(NameVolumePrice, p) }

// DefaultParamsTable builds the full default parameter table, keyed by
// strategy name. Constructed once at process start and passed explicitly
// into pipeline calls; there is no ambient global state.
func DefaultParamsTable() map[string]Params {
	return map[string]Params{
		NameMACD:            DefaultMACDParams(),
		NameRSI:             DefaultRSIParams(),
		NameBollinger:       DefaultBollingerParams(),
		NameMovingAverage:   DefaultMovingAverageParams(),
		NameTrendTracking:   DefaultTrendTrackingParams(),
		NameBreakout:        DefaultBreakoutParams(),
		NameOversoldRebound: DefaultOversoldReboundParams(),
		NameVolumePrice:     DefaultVolumePriceParams(),
	}
}
