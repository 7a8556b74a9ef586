package evaluator

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/quantfold/sector-backtest/internal/simulator"
	"github.com/quantfold/sector-backtest/internal/types"
	"github.com/quantfold/sector-backtest/pkg/errors"
)

// EvaluatorTestSuite covers the metric derivations.
type EvaluatorTestSuite struct {
	suite.Suite
}

func TestEvaluatorSuite(t *testing.T) {
	suite.Run(t, new(EvaluatorTestSuite))
}

func curveFromValues(values []float64) types.EquityCurve {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	curve := make(types.EquityCurve, len(values))

	for i, v := range values {
		curve[i] = types.EquityPoint{Date: start.AddDate(0, 0, i), Value: v}
	}

	return curve
}

func seriesFromCloses(closes []float64) *types.PriceSeries {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]types.PriceBar, len(closes))

	for i, c := range closes {
		bars[i] = types.PriceBar{Date: start.AddDate(0, 0, i), Open: c, High: c, Low: c, Close: c, Volume: 1}
	}

	return &types.PriceSeries{Symbol: "TEST", Bars: bars}
}

func (suite *EvaluatorTestSuite) TestFlatCurve() {
	values := make([]float64, 50)
	for i := range values {
		values[i] = 100000
	}

	result := &simulator.Result{EquityCurve: curveFromValues(values)}

	metrics, err := Evaluate(result, seriesFromCloses([]float64{10, 10}), 100000)
	suite.Require().NoError(err)

	suite.Require().Zero(metrics.TotalReturn)
	suite.Require().Zero(metrics.AnnualizedReturn)
	suite.Require().Zero(metrics.Volatility)
	suite.Require().Zero(metrics.MaxDrawdown)
	suite.Require().Zero(metrics.WinRate)
	suite.Require().Zero(metrics.TradeCount)

	// Zero spread in the daily returns leaves the ratio undefined.
	suite.Require().True(metrics.SharpeRatio.IsNone())
}

func (suite *EvaluatorTestSuite) TestTotalAndAnnualizedReturn() {
	// Linear climb from 100k to 110k over 253 points.
	values := make([]float64, 253)
	for i := range values {
		values[i] = 100000 + float64(i)*10000/252
	}

	result := &simulator.Result{EquityCurve: curveFromValues(values)}

	metrics, err := Evaluate(result, seriesFromCloses([]float64{10, 11}), 100000)
	suite.Require().NoError(err)

	suite.Require().InDelta(0.10, metrics.TotalReturn, 1e-9)

	expected := math.Pow(1.10, 252.0/253.0) - 1
	suite.Require().InDelta(expected, metrics.AnnualizedReturn, 1e-9)

	suite.Require().InDelta(0.10, metrics.BuyAndHoldReturn, 1e-9)
}

func (suite *EvaluatorTestSuite) TestMaxDrawdown() {
	curve := curveFromValues([]float64{100, 120, 90, 110})

	suite.Require().InDelta(-0.25, MaxDrawdown(curve), 1e-9)
}

func (suite *EvaluatorTestSuite) TestMaxDrawdownMonotonicRise() {
	curve := curveFromValues([]float64{100, 110, 120})

	suite.Require().Zero(MaxDrawdown(curve))
}

func (suite *EvaluatorTestSuite) TestWinRateAndHoldingDays() {
	entry := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	trades := []types.Trade{
		{EntryDate: entry, ExitDate: entry.AddDate(0, 0, 4), EntryPrice: 10, ExitPrice: 12, Shares: 10},
		{EntryDate: entry, ExitDate: entry.AddDate(0, 0, 2), EntryPrice: 10, ExitPrice: 9, Shares: 10},
	}

	result := &simulator.Result{
		EquityCurve: curveFromValues([]float64{100000, 100100, 100050}),
		Trades:      trades,
	}

	metrics, err := Evaluate(result, seriesFromCloses([]float64{10, 11}), 100000)
	suite.Require().NoError(err)

	suite.Require().InDelta(0.5, metrics.WinRate, 1e-9)
	suite.Require().Equal(2, metrics.TradeCount)
	suite.Require().InDelta(3.0, metrics.AvgHoldingDays, 1e-9)
}

func (suite *EvaluatorTestSuite) TestSharpeRatioDefined() {
	sharpe := SharpeRatio([]float64{0.01, 0.03, 0.02, 0.04})

	v, err := sharpe.Take()
	suite.Require().NoError(err)
	suite.Require().Greater(v, 0.0)
}

func (suite *EvaluatorTestSuite) TestSharpeRatioUndefinedForConstantReturns() {
	suite.Require().True(SharpeRatio([]float64{0.01, 0.01, 0.01}).IsNone())
	suite.Require().True(SharpeRatio([]float64{0.01}).IsNone())
}

func (suite *EvaluatorTestSuite) TestBuyAndHoldReturn() {
	suite.Require().InDelta(0.5, BuyAndHoldReturn(seriesFromCloses([]float64{10, 12, 15})), 1e-9)
	suite.Require().Zero(BuyAndHoldReturn(seriesFromCloses([]float64{10})))
	suite.Require().Zero(BuyAndHoldReturn(nil))
}

func (suite *EvaluatorTestSuite) TestTooFewPoints() {
	result := &simulator.Result{EquityCurve: curveFromValues([]float64{100000})}

	_, err := Evaluate(result, seriesFromCloses([]float64{10}), 100000)
	suite.Require().Error(err)
	suite.Require().True(errors.IsEmptyEquityCurveError(err))

	_, err = Evaluate(nil, nil, 100000)
	suite.Require().Error(err)
	suite.Require().True(errors.IsEmptyEquityCurveError(err))
}
