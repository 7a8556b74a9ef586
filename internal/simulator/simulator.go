// Package simulator replays a signal sequence against a price series with a
// single-position, whole-share, long-only portfolio.
package simulator

import (
	"math"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/quantfold/sector-backtest/internal/logger"
	"github.com/quantfold/sector-backtest/internal/simulator/commission"
	"github.com/quantfold/sector-backtest/internal/types"
	"github.com/quantfold/sector-backtest/pkg/errors"
)

// DefaultInitialCapital is used when the config leaves capital unset.
const DefaultInitialCapital = 100000.0

// Config controls one simulation run.
type Config struct {
	// InitialCapital is the starting cash.
	InitialCapital float64
	// Commission prices each fill. Nil means zero commission.
	Commission commission.CommissionFee
	// LiquidateAtEnd closes any open position at the final bar's close so
	// the last equity point is all cash.
	LiquidateAtEnd bool
}

// DefaultConfig returns a zero-commission run with liquidation on.
func DefaultConfig() Config {
	return Config{
		InitialCapital: DefaultInitialCapital,
		Commission:     commission.NewZeroCommissionFee(),
		LiquidateAtEnd: true,
	}
}

// Result is the full output of one simulation.
type Result struct {
	// EquityCurve is the mark-to-market portfolio value per bar, same
	// length as the price series.
	EquityCurve types.EquityCurve
	// Trades are the closed round trips in chronological order.
	Trades []types.Trade
	// FinalPosition is the portfolio state after the last bar. Flat when
	// LiquidateAtEnd is set.
	FinalPosition types.Position
	// TotalFees is the commission paid across all fills, including fills
	// of trades still open at the end.
	TotalFees float64
}

// Simulator replays signals through the FLAT/LONG state machine.
type Simulator struct {
	logger *logger.Logger
}

// NewSimulator creates a simulator. A nil logger falls back to a no-op one.
func NewSimulator(l *logger.Logger) *Simulator {
	if l == nil {
		l = logger.NewNopLogger()
	}

	return &Simulator{logger: l}
}

// Run executes the state machine bar by bar. A BUY while flat invests all
// available cash in whole shares at that bar's close; a SELL while long
// closes the whole position at that bar's close. Everything else is a no-op:
// BUY while long, SELL while flat, HOLD. Strong grades act like their plain
// counterparts.
func (s *Simulator) Run(series *types.PriceSeries, signals []types.Signal, strategyName string, cfg Config) (*Result, error) {
	if series == nil || series.Len() == 0 {
		return nil, errors.NewEmptyEquityCurveError(0, "cannot simulate an empty price series")
	}

	if len(signals) != series.Len() {
		return nil, errors.Newf(errors.ErrCodeSignalLengthMismatch,
			"Run: %d signals for %d bars", len(signals), series.Len())
	}

	if cfg.InitialCapital <= 0 {
		cfg.InitialCapital = DefaultInitialCapital
	}

	fee := cfg.Commission
	if fee == nil {
		fee = commission.NewZeroCommissionFee()
	}

	cash := decimal.NewFromFloat(cfg.InitialCapital)
	position := types.FlatPosition()
	entryFees := 0.0
	totalFees := 0.0

	curve := make(types.EquityCurve, 0, series.Len())
	trades := make([]types.Trade, 0)

	for i, bar := range series.Bars {
		signal := signals[i]
		close := bar.Close

		switch {
		case signal.Type.IsBuy() && !position.IsLong() && close > 0:
			shares := buyableShares(cash, close, fee)
			if shares > 0 {
				notional := decimal.NewFromInt(shares).Mul(decimal.NewFromFloat(close))
				f := fee.Calculate(notional.InexactFloat64())
				cash = cash.Sub(notional).Sub(decimal.NewFromFloat(f))
				position = types.Position{
					State:      types.PositionStateLong,
					EntryDate:  bar.Date,
					EntryPrice: close,
					Shares:     shares,
				}
				entryFees = f
				totalFees += f

				s.logger.Debug("opened position",
					zap.String("strategy", strategyName),
					zap.String("symbol", series.Symbol),
					zap.Time("date", bar.Date),
					zap.Int64("shares", shares),
					zap.Float64("price", close))
			}

		case signal.Type.IsSell() && position.IsLong():
			trade, f := s.closePosition(series.Symbol, strategyName, position, bar, entryFees, fee, false)
			notional := decimal.NewFromInt(position.Shares).Mul(decimal.NewFromFloat(close))
			cash = cash.Add(notional).Sub(decimal.NewFromFloat(f))
			totalFees += f
			trades = append(trades, trade)
			position = types.FlatPosition()
			entryFees = 0
		}

		equity, _ := cash.Float64()
		equity += position.MarketValue(close)
		curve = append(curve, types.EquityPoint{Date: bar.Date, Value: equity})
	}

	if cfg.LiquidateAtEnd && position.IsLong() {
		last := series.Bars[series.Len()-1]
		trade, f := s.closePosition(series.Symbol, strategyName, position, last, entryFees, fee, true)
		notional := decimal.NewFromInt(position.Shares).Mul(decimal.NewFromFloat(last.Close))
		cash = cash.Add(notional).Sub(decimal.NewFromFloat(f))
		totalFees += f
		trades = append(trades, trade)
		position = types.FlatPosition()

		// The final equity point reflects the liquidation fee.
		equity, _ := cash.Float64()
		curve[len(curve)-1].Value = equity
	}

	return &Result{
		EquityCurve:   curve,
		Trades:        trades,
		FinalPosition: position,
		TotalFees:     totalFees,
	}, nil
}

// closePosition builds the round-trip record for a fill at the given bar's
// close and returns it with the exit fee.
func (s *Simulator) closePosition(symbol, strategyName string, position types.Position, bar types.PriceBar, entryFees float64, fee commission.CommissionFee, liquidation bool) (types.Trade, float64) {
	notional := decimal.NewFromInt(position.Shares).Mul(decimal.NewFromFloat(bar.Close))
	f := fee.Calculate(notional.InexactFloat64())

	trade := types.Trade{
		Symbol:       symbol,
		StrategyName: strategyName,
		EntryDate:    position.EntryDate,
		EntryPrice:   position.EntryPrice,
		ExitDate:     bar.Date,
		ExitPrice:    bar.Close,
		Shares:       position.Shares,
		Fees:         entryFees + f,
		Liquidation:  liquidation,
	}

	s.logger.Debug("closed position",
		zap.String("strategy", strategyName),
		zap.String("symbol", symbol),
		zap.Time("date", bar.Date),
		zap.Int64("shares", position.Shares),
		zap.Float64("price", bar.Close),
		zap.Bool("liquidation", liquidation))

	return trade, f
}

// buyableShares sizes an all-in whole-share fill: the largest share count
// whose notional plus fee fits in the available cash.
func buyableShares(cash decimal.Decimal, price float64, fee commission.CommissionFee) int64 {
	c, _ := cash.Float64()
	shares := int64(math.Floor(c / price))

	for shares > 0 {
		notional := decimal.NewFromInt(shares).Mul(decimal.NewFromFloat(price))
		cost := notional.Add(decimal.NewFromFloat(fee.Calculate(notional.InexactFloat64())))

		if cost.LessThanOrEqual(cash) {
			return shares
		}

		shares--
	}

	return 0
}
