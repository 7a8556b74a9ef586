package indicator

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

// IndicatorTestSuite covers the pure series computations.
type IndicatorTestSuite struct {
	suite.Suite
}

func TestIndicatorSuite(t *testing.T) {
	suite.Run(t, new(IndicatorTestSuite))
}

func (suite *IndicatorTestSuite) requireValue(s Series, i int, expected, delta float64) {
	v, ok := s.At(i)
	suite.Require().True(ok, "expected a defined value at index %d", i)
	suite.Require().InDelta(expected, v, delta)
}

func (suite *IndicatorTestSuite) TestSMAWarmUpAndValues() {
	s := SMA([]float64{1, 2, 3, 4, 5}, 3)

	suite.Require().Equal(5, s.Len())
	suite.Require().False(s.Valid(0))
	suite.Require().False(s.Valid(1))
	suite.requireValue(s, 2, 2, 1e-9)
	suite.requireValue(s, 3, 3, 1e-9)
	suite.requireValue(s, 4, 4, 1e-9)
}

func (suite *IndicatorTestSuite) TestSMAShorterThanPeriod() {
	s := SMA([]float64{1, 2}, 3)

	suite.Require().Equal(2, s.Len())
	suite.Require().Equal(0, s.DefinedCount())
}

func (suite *IndicatorTestSuite) TestEMARecurrenceAndWarmUp() {
	// Period 3, alpha = 0.5. The recurrence runs from the first value
	// (1, 1.5, 2.25, 3.125, 4.0625) but only reports from index 2.
	s := EMA([]float64{1, 2, 3, 4, 5}, 3)

	suite.Require().False(s.Valid(1))
	suite.requireValue(s, 2, 2.25, 1e-9)
	suite.requireValue(s, 3, 3.125, 1e-9)
	suite.requireValue(s, 4, 4.0625, 1e-9)
}

func (suite *IndicatorTestSuite) TestEMALagsARisingSeries() {
	// On a steady rise the average trails the price, so the shorter
	// period always sits above the longer one once both are defined.
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}

	fast := EMA(closes, 12)
	slow := EMA(closes, 26)

	for i := 25; i < 40; i++ {
		f, fok := fast.At(i)
		s, sok := slow.At(i)

		suite.Require().True(fok && sok)
		suite.Require().Greater(f, s, "index %d", i)
		suite.Require().Less(f, closes[i], "index %d", i)
	}
}

func (suite *IndicatorTestSuite) TestRSIAllGainsIsHundred() {
	closes := make([]float64, 16)
	for i := range closes {
		closes[i] = float64(i + 1)
	}

	s := RSI(closes, 14)

	suite.Require().False(s.Valid(13))
	suite.requireValue(s, 14, 100, 1e-9)
	suite.requireValue(s, 15, 100, 1e-9)
}

func (suite *IndicatorTestSuite) TestRSIAllLossesIsZero() {
	closes := make([]float64, 16)
	for i := range closes {
		closes[i] = float64(100 - i)
	}

	s := RSI(closes, 14)

	suite.requireValue(s, 14, 0, 1e-9)
}

func (suite *IndicatorTestSuite) TestRSIFlatSeriesIsNeutral() {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 50
	}

	s := RSI(closes, 14)

	for i := 14; i < 20; i++ {
		suite.requireValue(s, i, 50, 1e-9)
	}
}

func (suite *IndicatorTestSuite) TestMACDWarmUp() {
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = float64(i + 1)
	}

	macd := MACD(closes, 12, 26, 9)

	// The line needs the slow EMA, the signal needs nine defined line
	// values on top of that.
	suite.Require().False(macd.Line.Valid(24))
	suite.Require().True(macd.Line.Valid(25))
	suite.Require().False(macd.Signal.Valid(32))
	suite.Require().True(macd.Signal.Valid(33))
	suite.Require().False(macd.Histogram.Valid(32))
	suite.Require().True(macd.Histogram.Valid(33))
}

func (suite *IndicatorTestSuite) TestMACDLineLeadsSignalOnTrends() {
	up := make([]float64, 60)
	down := make([]float64, 60)

	for i := range up {
		up[i] = 100 + float64(i)*0.5
		down[i] = 100 - float64(i)*0.5
	}

	bullish := MACD(up, 12, 26, 9)
	bearish := MACD(down, 12, 26, 9)

	// A sustained trend keeps the line strictly on one side of its
	// signal, never on a float-epsilon tie.
	for i := 33; i < 60; i++ {
		l, lok := bullish.Line.At(i)
		s, sok := bullish.Signal.At(i)
		suite.Require().True(lok && sok)
		suite.Require().Greater(l, s, "up index %d", i)

		l, lok = bearish.Line.At(i)
		s, sok = bearish.Signal.At(i)
		suite.Require().True(lok && sok)
		suite.Require().Less(l, s, "down index %d", i)
	}
}

func (suite *IndicatorTestSuite) TestBollingerKnownValues() {
	s := Bollinger([]float64{1, 2, 3}, 3, 2)

	// Middle 2, sample stddev 1, so bands at 0 and 4.
	suite.requireValue(s.Middle, 2, 2, 1e-9)
	suite.requireValue(s.Upper, 2, 4, 1e-9)
	suite.requireValue(s.Lower, 2, 0, 1e-9)
	suite.requireValue(s.Width, 2, 2, 1e-9)
}

func (suite *IndicatorTestSuite) TestBollingerFlatSeriesHasZeroWidth() {
	s := Bollinger([]float64{10, 10, 10, 10}, 3, 2)

	suite.requireValue(s.Upper, 3, 10, 1e-9)
	suite.requireValue(s.Lower, 3, 10, 1e-9)
	suite.requireValue(s.Width, 3, 0, 1e-9)
}

func (suite *IndicatorTestSuite) TestKDJConstantSeriesHoldsNeutral() {
	n := 20
	highs := make([]float64, n)
	lows := make([]float64, n)
	closes := make([]float64, n)

	for i := 0; i < n; i++ {
		highs[i] = 10
		lows[i] = 10
		closes[i] = 10
	}

	kdj := KDJ(highs, lows, closes, 9, 3, 3)

	// A zero high-low range holds the prior %K, which starts from the
	// neutral fallback.
	suite.requireValue(kdj.K, n-1, 50, 1e-9)
	suite.requireValue(kdj.D, n-1, 50, 1e-9)
	suite.requireValue(kdj.J, n-1, 50, 1e-9)
}

func (suite *IndicatorTestSuite) TestKDJDecliningSeriesIsOversold() {
	n := 30
	highs := make([]float64, n)
	lows := make([]float64, n)
	closes := make([]float64, n)

	for i := 0; i < n; i++ {
		price := float64(100 - 2*i)
		highs[i] = price + 1
		lows[i] = price - 1
		closes[i] = price
	}

	kdj := KDJ(highs, lows, closes, 9, 3, 3)

	k, ok := kdj.K.At(n - 1)
	suite.Require().True(ok)
	suite.Require().Less(k, 20.0)
}

func (suite *IndicatorTestSuite) TestRollingMaxMin() {
	max := RollingMax([]float64{1, 3, 2}, 2)
	min := RollingMin([]float64{1, 3, 2}, 2)

	suite.Require().False(max.Valid(0))
	suite.requireValue(max, 1, 3, 1e-9)
	suite.requireValue(max, 2, 3, 1e-9)
	suite.requireValue(min, 1, 1, 1e-9)
	suite.requireValue(min, 2, 2, 1e-9)
}

func (suite *IndicatorTestSuite) TestDecline() {
	s := Decline([]float64{10, 5}, 2)

	suite.Require().False(s.Valid(0))
	suite.requireValue(s, 1, 50, 1e-9)
}

func (suite *IndicatorTestSuite) TestChange() {
	s := Change([]float64{10, 11, 0, 5})

	suite.Require().False(s.Valid(0))
	suite.requireValue(s, 1, 0.1, 1e-9)
	suite.requireValue(s, 2, -1, 1e-9)
	// A zero previous value leaves the change undefined.
	suite.Require().False(s.Valid(3))
}

func (suite *IndicatorTestSuite) TestVolumeRatio() {
	s := VolumeRatio([]float64{10, 10, 10, 20}, 2)

	suite.Require().False(s.Valid(0))
	suite.requireValue(s, 1, 1, 1e-9)
	suite.requireValue(s, 3, 20.0/15.0, 1e-9)
}

func (suite *IndicatorTestSuite) TestShift() {
	s := FromValues([]float64{1, 2, 3}).Shift(1)

	suite.Require().False(s.Valid(0))
	suite.requireValue(s, 1, 1, 1e-9)
	suite.requireValue(s, 2, 2, 1e-9)
}

func (suite *IndicatorTestSuite) TestEmptyInput() {
	suite.Require().Equal(0, SMA(nil, 5).Len())
	suite.Require().Equal(0, RSI(nil, 14).Len())
	suite.Require().Equal(0, MACD(nil, 12, 26, 9).Line.Len())
}
