// Package config loads the engine's YAML configuration.
package config

import (
	"bytes"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/quantfold/sector-backtest/internal/comparator"
	"github.com/quantfold/sector-backtest/internal/simulator"
	"github.com/quantfold/sector-backtest/internal/strategy"
	"github.com/quantfold/sector-backtest/pkg/errors"
)

// Config is the top-level configuration for the backtest engine.
type Config struct {
	Storage    Storage              `yaml:"storage"`
	Logging    Logging              `yaml:"logging"`
	Backtest   Backtest             `yaml:"backtest"`
	Strategies map[string]yaml.Node `yaml:"strategies"`
}

// Storage holds paths for data persistence.
type Storage struct {
	SQLitePath string `yaml:"sqlite_path"`
	OutputDir  string `yaml:"output_dir"`
}

// Logging configures the application logger.
type Logging struct {
	Level string `yaml:"level"`
}

// Backtest defines simulation and comparison parameters.
type Backtest struct {
	InitialCapital float64    `yaml:"initial_capital"`
	LiquidateAtEnd bool       `yaml:"liquidate_at_end"`
	Commission     Commission `yaml:"commission"`
	RankBy         string     `yaml:"rank_by"`
	Concurrency    int        `yaml:"concurrency"`
}

// Commission selects and parameterizes the fee schedule.
type Commission struct {
	Model   string  `yaml:"model"`
	Rate    float64 `yaml:"rate"`
	Minimum float64 `yaml:"minimum"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Storage: Storage{
			SQLitePath: "backtest.db",
			OutputDir:  "runs",
		},
		Logging: Logging{Level: "info"},
		Backtest: Backtest{
			InitialCapital: simulator.DefaultInitialCapital,
			LiquidateAtEnd: true,
			Commission:     Commission{Model: "zero"},
			RankBy:         comparator.RankByTotalReturn,
			Concurrency:    comparator.DefaultBatchConcurrency,
		},
	}
}

// Load reads and parses the YAML configuration file at the given path on top
// of the defaults. Unknown top-level keys are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err,
			"Load: cannot read config %s", path)
	}

	cfg := Default()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(cfg); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err,
			"Load: cannot parse config %s", path)
	}

	return cfg, nil
}

// StrategyParams resolves the per-strategy parameter overrides into typed,
// validated params. Strategies without an override keep their defaults and
// do not appear in the result. Unknown parameter keys are rejected.
func (c *Config) StrategyParams() (map[string]strategy.Params, error) {
	if len(c.Strategies) == 0 {
		return nil, nil
	}

	defaults := strategy.DefaultParamsTable()
	out := make(map[string]strategy.Params, len(c.Strategies))

	for name, node := range c.Strategies {
		base, ok := defaults[name]
		if !ok {
			return nil, errors.Newf(errors.ErrCodeStrategyNotFound,
				"StrategyParams: unknown strategy %q in config", name)
		}

		params, err := decodeParams(name, node, base)
		if err != nil {
			return nil, err
		}

		out[name] = params
	}

	return out, nil
}

// decodeParams strict-decodes one strategy's override node on top of its
// defaults. The round trip through bytes is what lets the decoder reject
// unknown fields.
func decodeParams(name string, node yaml.Node, base strategy.Params) (strategy.Params, error) {
	raw, err := yaml.Marshal(&node)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err,
			"decodeParams: re-marshal params for %s", name)
	}

	decode := func(target any) error {
		decoder := yaml.NewDecoder(bytes.NewReader(raw))
		decoder.KnownFields(true)

		if err := decoder.Decode(target); err != nil {
			return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err,
				"decodeParams: invalid params for %s", name)
		}

		return nil
	}

	switch p := base.(type) {
	case strategy.MACDParams:
		err = decode(&p)
		base = p
	case strategy.RSIParams:
		err = decode(&p)
		base = p
	case strategy.BollingerParams:
		err = decode(&p)
		base = p
	case strategy.MovingAverageParams:
		err = decode(&p)
		base = p
	case strategy.TrendTrackingParams:
		err = decode(&p)
		base = p
	case strategy.BreakoutParams:
		err = decode(&p)
		base = p
	case strategy.OversoldReboundParams:
		err = decode(&p)
		base = p
	case strategy.VolumePriceParams:
		err = decode(&p)
		base = p
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidType,
			"decodeParams: no decoder for strategy %q", name)
	}

	if err != nil {
		return nil, err
	}

	return base, base.Validate()
}
