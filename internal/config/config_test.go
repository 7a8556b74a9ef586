package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/quantfold/sector-backtest/internal/strategy"
	"github.com/quantfold/sector-backtest/pkg/errors"
)

// ConfigTestSuite covers YAML loading and strategy parameter overrides.
type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (suite *ConfigTestSuite) writeConfig(content string) string {
	path := filepath.Join(suite.T().TempDir(), "config.yaml")
	suite.Require().NoError(os.WriteFile(path, []byte(content), 0o644))

	return path
}

func (suite *ConfigTestSuite) TestDefaults() {
	cfg := Default()

	suite.Require().Equal("backtest.db", cfg.Storage.SQLitePath)
	suite.Require().Equal(100000.0, cfg.Backtest.InitialCapital)
	suite.Require().True(cfg.Backtest.LiquidateAtEnd)
	suite.Require().Equal("total_return", cfg.Backtest.RankBy)
}

func (suite *ConfigTestSuite) TestLoadOverridesDefaults() {
	path := suite.writeConfig(`
storage:
  sqlite_path: /tmp/test.db
backtest:
  initial_capital: 50000
  commission:
    model: fixed_rate
    rate: 0.001
    minimum: 5
`)

	cfg, err := Load(path)
	suite.Require().NoError(err)

	suite.Require().Equal("/tmp/test.db", cfg.Storage.SQLitePath)
	suite.Require().Equal(50000.0, cfg.Backtest.InitialCapital)
	suite.Require().Equal("fixed_rate", cfg.Backtest.Commission.Model)

	// Untouched keys keep their defaults.
	suite.Require().Equal("runs", cfg.Storage.OutputDir)
	suite.Require().Equal("total_return", cfg.Backtest.RankBy)
}

func (suite *ConfigTestSuite) TestUnknownTopLevelKeyRejected() {
	path := suite.writeConfig(`
storag:
  sqlite_path: /tmp/test.db
`)

	_, err := Load(path)
	suite.Require().Error(err)
	suite.Require().True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func (suite *ConfigTestSuite) TestMissingFile() {
	_, err := Load(filepath.Join(suite.T().TempDir(), "nope.yaml"))
	suite.Require().Error(err)
	suite.Require().True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func (suite *ConfigTestSuite) TestStrategyParamOverride() {
	path := suite.writeConfig(`
strategies:
  macd:
    fast_period: 10
  rsi:
    oversold: 25
    overbought: 75
`)

	cfg, err := Load(path)
	suite.Require().NoError(err)

	params, err := cfg.StrategyParams()
	suite.Require().NoError(err)
	suite.Require().Len(params, 2)

	macd, ok := params[strategy.NameMACD].(strategy.MACDParams)
	suite.Require().True(ok)
	suite.Require().Equal(10, macd.FastPeriod)
	// Untouched fields keep the defaults.
	suite.Require().Equal(26, macd.SlowPeriod)
	suite.Require().Equal(9, macd.SignalPeriod)

	rsi, ok := params[strategy.NameRSI].(strategy.RSIParams)
	suite.Require().True(ok)
	suite.Require().Equal(25.0, rsi.Oversold)
	suite.Require().Equal(75.0, rsi.Overbought)
	suite.Require().Equal(14, rsi.Period)
}

func (suite *ConfigTestSuite) TestUnknownStrategyRejected() {
	path := suite.writeConfig(`
strategies:
  nope:
    period: 5
`)

	cfg, err := Load(path)
	suite.Require().NoError(err)

	_, err = cfg.StrategyParams()
	suite.Require().Error(err)
	suite.Require().True(errors.HasCode(err, errors.ErrCodeStrategyNotFound))
}

func (suite *ConfigTestSuite) TestUnknownParamKeyRejected() {
	path := suite.writeConfig(`
strategies:
  macd:
    fast_perio: 10
`)

	cfg, err := Load(path)
	suite.Require().NoError(err)

	_, err = cfg.StrategyParams()
	suite.Require().Error(err)
	suite.Require().True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func (suite *ConfigTestSuite) TestInvalidOverrideValuesRejected() {
	// Fast period above the slow period violates the ordering invariant.
	path := suite.writeConfig(`
strategies:
  macd:
    fast_period: 30
`)

	cfg, err := Load(path)
	suite.Require().NoError(err)

	_, err = cfg.StrategyParams()
	suite.Require().Error(err)
	suite.Require().True(errors.IsInvalidParamsError(err))
}
