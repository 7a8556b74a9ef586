package simulator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/quantfold/sector-backtest/internal/logger"
	"github.com/quantfold/sector-backtest/internal/simulator/commission"
	"github.com/quantfold/sector-backtest/internal/types"
	"github.com/quantfold/sector-backtest/pkg/errors"
)

// SimulatorTestSuite covers the FLAT/LONG portfolio replay.
type SimulatorTestSuite struct {
	suite.Suite
	sim *Simulator
}

func TestSimulatorSuite(t *testing.T) {
	suite.Run(t, new(SimulatorTestSuite))
}

func (suite *SimulatorTestSuite) SetupSuite() {
	suite.sim = NewSimulator(logger.NewNopLogger())
}

func seriesFromCloses(closes []float64) *types.PriceSeries {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]types.PriceBar, len(closes))

	for i, c := range closes {
		bars[i] = types.PriceBar{
			Date:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c,
			Low:    c,
			Close:  c,
			Volume: 1000,
		}
	}

	return &types.PriceSeries{Symbol: "TEST", Kind: types.InstrumentKindStock, Bars: bars}
}

func signalsFor(series *types.PriceSeries, typed map[int]types.SignalType) []types.Signal {
	signals := make([]types.Signal, series.Len())

	for i, bar := range series.Bars {
		signals[i] = types.HoldSignal(i, bar.Date)
		if t, ok := typed[i]; ok {
			signals[i].Type = t
		}
	}

	return signals
}

func (suite *SimulatorTestSuite) TestRoundTrip() {
	series := seriesFromCloses([]float64{10, 10, 20, 20})
	signals := signalsFor(series, map[int]types.SignalType{
		1: types.SignalTypeBuy,
		2: types.SignalTypeSell,
	})

	cfg := Config{InitialCapital: 100, LiquidateAtEnd: false}

	result, err := suite.sim.Run(series, signals, "test", cfg)
	suite.Require().NoError(err)

	suite.Require().Len(result.Trades, 1)

	trade := result.Trades[0]
	suite.Require().Equal(int64(10), trade.Shares)
	suite.Require().Equal(10.0, trade.EntryPrice)
	suite.Require().Equal(20.0, trade.ExitPrice)
	suite.Require().InDelta(100.0, trade.PnL(), 1e-9)
	suite.Require().InDelta(1.0, trade.ReturnPct(), 1e-9)
	suite.Require().False(trade.Liquidation)

	suite.Require().Equal(types.EquityCurve{
		{Date: series.Bars[0].Date, Value: 100},
		{Date: series.Bars[1].Date, Value: 100},
		{Date: series.Bars[2].Date, Value: 200},
		{Date: series.Bars[3].Date, Value: 200},
	}, result.EquityCurve)

	suite.Require().False(result.FinalPosition.IsLong())
}

func (suite *SimulatorTestSuite) TestWholeShareSizing() {
	series := seriesFromCloses([]float64{30, 30})
	signals := signalsFor(series, map[int]types.SignalType{0: types.SignalTypeBuy})

	cfg := Config{InitialCapital: 100, LiquidateAtEnd: false}

	result, err := suite.sim.Run(series, signals, "test", cfg)
	suite.Require().NoError(err)

	suite.Require().True(result.FinalPosition.IsLong())
	suite.Require().Equal(int64(3), result.FinalPosition.Shares)

	// 3 shares at 30 plus 10 residual cash.
	suite.Require().InDelta(100.0, result.EquityCurve[0].Value, 1e-9)
}

func (suite *SimulatorTestSuite) TestRedundantSignalsAreNoOps() {
	series := seriesFromCloses([]float64{10, 10, 10, 10})
	signals := signalsFor(series, map[int]types.SignalType{
		0: types.SignalTypeSell, // sell while flat
		1: types.SignalTypeBuy,
		2: types.SignalTypeBuy, // buy while long
	})

	cfg := Config{InitialCapital: 100, LiquidateAtEnd: false}

	result, err := suite.sim.Run(series, signals, "test", cfg)
	suite.Require().NoError(err)

	suite.Require().Empty(result.Trades)
	suite.Require().True(result.FinalPosition.IsLong())
	suite.Require().Equal(series.Bars[1].Date, result.FinalPosition.EntryDate)
}

func (suite *SimulatorTestSuite) TestStrongSignalsActLikePlain() {
	series := seriesFromCloses([]float64{10, 20})
	signals := signalsFor(series, map[int]types.SignalType{
		0: types.SignalTypeStrongBuy,
		1: types.SignalTypeStrongSell,
	})

	cfg := Config{InitialCapital: 100, LiquidateAtEnd: false}

	result, err := suite.sim.Run(series, signals, "test", cfg)
	suite.Require().NoError(err)
	suite.Require().Len(result.Trades, 1)
	suite.Require().InDelta(100.0, result.Trades[0].PnL(), 1e-9)
}

func (suite *SimulatorTestSuite) TestLiquidationAtEnd() {
	series := seriesFromCloses([]float64{10, 10, 15})
	signals := signalsFor(series, map[int]types.SignalType{0: types.SignalTypeBuy})

	cfg := Config{InitialCapital: 100, LiquidateAtEnd: true}

	result, err := suite.sim.Run(series, signals, "test", cfg)
	suite.Require().NoError(err)

	suite.Require().Len(result.Trades, 1)
	suite.Require().True(result.Trades[0].Liquidation)
	suite.Require().Equal(15.0, result.Trades[0].ExitPrice)
	suite.Require().False(result.FinalPosition.IsLong())
	suite.Require().InDelta(150.0, result.EquityCurve.FinalValue(), 1e-9)
}

func (suite *SimulatorTestSuite) TestCommissionCharged() {
	series := seriesFromCloses([]float64{10, 20})
	signals := signalsFor(series, map[int]types.SignalType{
		0: types.SignalTypeBuy,
		1: types.SignalTypeSell,
	})

	cfg := Config{
		InitialCapital: 100,
		Commission:     commission.NewFixedRateCommissionFee(0.01, 0),
		LiquidateAtEnd: false,
	}

	result, err := suite.sim.Run(series, signals, "test", cfg)
	suite.Require().NoError(err)
	suite.Require().Len(result.Trades, 1)

	// 9 shares fit once the 1% entry fee is paid: 9*10 + 0.9 <= 100.
	trade := result.Trades[0]
	suite.Require().Equal(int64(9), trade.Shares)
	suite.Require().InDelta(0.9+1.8, trade.Fees, 1e-9)
	suite.Require().InDelta(trade.Fees, result.TotalFees, 1e-9)
}

func (suite *SimulatorTestSuite) TestSignalLengthMismatch() {
	series := seriesFromCloses([]float64{10, 20})

	_, err := suite.sim.Run(series, nil, "test", DefaultConfig())
	suite.Require().Error(err)
	suite.Require().True(errors.HasCode(err, errors.ErrCodeSignalLengthMismatch))
}

func (suite *SimulatorTestSuite) TestEmptySeries() {
	_, err := suite.sim.Run(&types.PriceSeries{}, nil, "test", DefaultConfig())
	suite.Require().Error(err)
	suite.Require().True(errors.IsEmptyEquityCurveError(err))
}

// CommissionTestSuite covers the fee schedules.
type CommissionTestSuite struct {
	suite.Suite
}

func TestCommissionSuite(t *testing.T) {
	suite.Run(t, new(CommissionTestSuite))
}

func (suite *CommissionTestSuite) TestZero() {
	fee := commission.NewZeroCommissionFee()
	suite.Require().Zero(fee.Calculate(10000))
}

func (suite *CommissionTestSuite) TestFixedRateWithMinimum() {
	fee := commission.NewFixedRateCommissionFee(0.001, 5)

	suite.Require().InDelta(5.0, fee.Calculate(100), 1e-9)
	suite.Require().InDelta(10.0, fee.Calculate(10000), 1e-9)
}

func (suite *CommissionTestSuite) TestHandlerSelection() {
	suite.Require().IsType(&commission.ZeroCommissionFee{},
		commission.GetCommissionFeeHandler(commission.ModelZero, 0, 0))
	suite.Require().IsType(&commission.FixedRateCommissionFee{},
		commission.GetCommissionFeeHandler(commission.ModelFixedRate, 0.01, 1))
	suite.Require().IsType(&commission.ZeroCommissionFee{},
		commission.GetCommissionFeeHandler("unknown", 0, 0))
}
