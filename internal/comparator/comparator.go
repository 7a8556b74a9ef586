// Package comparator runs many strategies against the same price series and
// ranks the outcomes. Strategies that cannot run on the given data are
// reported as exclusions instead of failing the whole comparison.
package comparator

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/quantfold/sector-backtest/internal/evaluator"
	"github.com/quantfold/sector-backtest/internal/logger"
	"github.com/quantfold/sector-backtest/internal/simulator"
	"github.com/quantfold/sector-backtest/internal/strategy"
	"github.com/quantfold/sector-backtest/internal/types"
	"github.com/quantfold/sector-backtest/pkg/errors"
)

// Rank metrics accepted by Config.RankBy.
const (
	RankByTotalReturn      = "total_return"
	RankByAnnualizedReturn = "annualized_return"
	RankBySharpeRatio      = "sharpe_ratio"
	RankByMaxDrawdown      = "max_drawdown"
	RankByWinRate          = "win_rate"
)

// Config controls one comparison run.
type Config struct {
	// Strategies selects which registry entries to run. Empty means all.
	Strategies []string
	// Params overrides per-strategy parameters, keyed by strategy name.
	// Strategies without an entry use their defaults.
	Params map[string]strategy.Params
	// Simulation configures the portfolio replay shared by every strategy.
	Simulation simulator.Config
	// RankBy selects the ranking metric. Empty means total return.
	RankBy string
}

// StrategyResult is one strategy's full outcome within a comparison.
type StrategyResult struct {
	StrategyName string                    `yaml:"strategy_name"`
	Metrics      *types.PerformanceMetrics `yaml:"metrics"`
	Trades       []types.Trade             `yaml:"trades,omitempty"`
}

// Exclusion records a strategy that could not be evaluated and why.
type Exclusion struct {
	StrategyName string `yaml:"strategy_name"`
	Reason       string `yaml:"reason"`
}

// Comparison is the ranked outcome of one run, serializable as a run
// artifact.
type Comparison struct {
	RunID       string           `yaml:"run_id"`
	Symbol      string           `yaml:"symbol"`
	GeneratedAt time.Time        `yaml:"generated_at"`
	RankedBy    string           `yaml:"ranked_by"`
	Results     []StrategyResult `yaml:"results"`
	Excluded    []Exclusion      `yaml:"excluded,omitempty"`
}

// Comparator runs the strategy/simulator/evaluator pipeline per strategy.
type Comparator struct {
	registry strategy.Registry
	sim      *simulator.Simulator
	logger   *logger.Logger
}

// NewComparator creates a comparator over the given registry. Nil arguments
// fall back to the default registry and a no-op logger.
func NewComparator(registry strategy.Registry, l *logger.Logger) *Comparator {
	if registry == nil {
		registry = strategy.NewDefaultRegistry()
	}

	if l == nil {
		l = logger.NewNopLogger()
	}

	return &Comparator{
		registry: registry,
		sim:      simulator.NewSimulator(l),
		logger:   l,
	}
}

// Compare runs every selected strategy against the series and ranks the
// survivors. Invalid parameters and insufficient data exclude a strategy
// with a diagnostic; any other pipeline error aborts the comparison.
func (c *Comparator) Compare(ctx context.Context, series *types.PriceSeries, cfg Config) (*Comparison, error) {
	names := cfg.Strategies
	if len(names) == 0 {
		names = c.registry.List()
	}

	if len(names) == 0 {
		return nil, errors.New(errors.ErrCodeNoStrategies, "Compare: no strategies to run")
	}

	rankBy := cfg.RankBy
	if rankBy == "" {
		rankBy = RankByTotalReturn
	}

	if !validRankMetric(rankBy) {
		return nil, errors.Newf(errors.ErrCodeUnknownRankMetric,
			"Compare: unknown rank metric %q", rankBy)
	}

	comparison := &Comparison{
		RunID:       uuid.NewString(),
		Symbol:      symbolOf(series),
		GeneratedAt: time.Now().UTC(),
		RankedBy:    rankBy,
	}

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeBatchCancelled, "Compare: cancelled", err)
		}

		result, err := c.runOne(series, name, cfg)
		if err != nil {
			if errors.IsInvalidParamsError(err) || errors.IsInsufficientDataError(err) {
				c.logger.Warn("strategy excluded from comparison",
					zap.String("strategy", name),
					zap.String("symbol", comparison.Symbol),
					zap.Error(err))
				comparison.Excluded = append(comparison.Excluded, Exclusion{
					StrategyName: name,
					Reason:       err.Error(),
				})

				continue
			}

			return nil, err
		}

		comparison.Results = append(comparison.Results, *result)
	}

	rankResults(comparison.Results, rankBy)

	return comparison, nil
}

// runOne executes the full pipeline for a single strategy.
func (c *Comparator) runOne(series *types.PriceSeries, name string, cfg Config) (*StrategyResult, error) {
	strat, err := c.registry.Get(name)
	if err != nil {
		return nil, err
	}

	params := cfg.Params[name]
	if params == nil {
		params = strat.DefaultParams()
	}

	// Fail fast on bad parameters, before any computation runs.
	if err := params.Validate(); err != nil {
		return nil, err
	}

	indicators, err := strat.ComputeIndicators(series, params)
	if err != nil {
		return nil, err
	}

	signals, err := strat.GenerateSignals(series, indicators, params)
	if err != nil {
		return nil, err
	}

	simResult, err := c.sim.Run(series, signals, name, cfg.Simulation)
	if err != nil {
		return nil, err
	}

	capital := cfg.Simulation.InitialCapital
	if capital <= 0 {
		capital = simulator.DefaultInitialCapital
	}

	metrics, err := evaluator.Evaluate(simResult, series, capital)
	if err != nil {
		return nil, err
	}

	return &StrategyResult{
		StrategyName: name,
		Metrics:      metrics,
		Trades:       simResult.Trades,
	}, nil
}

func validRankMetric(name string) bool {
	switch name {
	case RankByTotalReturn, RankByAnnualizedReturn, RankBySharpeRatio,
		RankByMaxDrawdown, RankByWinRate:
		return true
	default:
		return false
	}
}

// rankResults sorts descending by the chosen metric, with the strategy name
// as a deterministic tie-break. An undefined Sharpe ratio sorts last.
func rankResults(results []StrategyResult, rankBy string) {
	sort.SliceStable(results, func(i, j int) bool {
		vi, iok := rankValue(results[i].Metrics, rankBy)
		vj, jok := rankValue(results[j].Metrics, rankBy)

		if iok != jok {
			return iok
		}

		if vi != vj {
			return vi > vj
		}

		return results[i].StrategyName < results[j].StrategyName
	})
}

func rankValue(m *types.PerformanceMetrics, rankBy string) (float64, bool) {
	switch rankBy {
	case RankByAnnualizedReturn:
		return m.AnnualizedReturn, true
	case RankBySharpeRatio:
		v, err := m.SharpeRatio.Take()
		if err != nil {
			return 0, false
		}

		return v, true
	case RankByMaxDrawdown:
		return m.MaxDrawdown, true
	case RankByWinRate:
		return m.WinRate, true
	default:
		return m.TotalReturn, true
	}
}

func symbolOf(series *types.PriceSeries) string {
	if series == nil {
		return ""
	}

	return series.Symbol
}
