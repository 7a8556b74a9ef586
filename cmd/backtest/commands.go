package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/quantfold/sector-backtest/internal/comparator"
	"github.com/quantfold/sector-backtest/internal/config"
	"github.com/quantfold/sector-backtest/internal/datastore"
	"github.com/quantfold/sector-backtest/internal/logger"
	"github.com/quantfold/sector-backtest/internal/simulator"
	"github.com/quantfold/sector-backtest/internal/simulator/commission"
	"github.com/quantfold/sector-backtest/internal/strategy"
	"github.com/quantfold/sector-backtest/internal/types"
)

// runtime bundles the pieces every command needs.
type runtime struct {
	cfg    *config.Config
	logger *logger.Logger
	store  *datastore.SQLiteStore
}

func setup(cmd *cli.Command) (*runtime, error) {
	cfg := config.Default()

	if path := cmd.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}

		cfg = loaded
	}

	level, err := zapcore.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	l, err := logger.NewLoggerWithLevel(level)
	if err != nil {
		return nil, err
	}

	store, err := datastore.NewSQLiteStore(cfg.Storage.SQLitePath)
	if err != nil {
		return nil, err
	}

	return &runtime{cfg: cfg, logger: l, store: store}, nil
}

func (r *runtime) close() {
	r.store.Close()
	_ = r.logger.Sync()
}

// comparatorConfig translates the file configuration into a run config.
func (r *runtime) comparatorConfig(strategies []string) (comparator.Config, error) {
	params, err := r.cfg.StrategyParams()
	if err != nil {
		return comparator.Config{}, err
	}

	bt := r.cfg.Backtest

	return comparator.Config{
		Strategies: strategies,
		Params:     params,
		Simulation: simulator.Config{
			InitialCapital: bt.InitialCapital,
			Commission: commission.GetCommissionFeeHandler(
				commission.Model(bt.Commission.Model),
				bt.Commission.Rate,
				bt.Commission.Minimum,
			),
			LiquidateAtEnd: bt.LiquidateAtEnd,
		},
		RankBy: bt.RankBy,
	}, nil
}

func runCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Compare strategies on a single instrument",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "symbol",
				Aliases:  []string{"s"},
				Usage:    "Instrument symbol",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "kind",
				Usage: "Instrument kind (sector or stock)",
				Value: string(types.InstrumentKindSector),
			},
			&cli.StringFlag{
				Name:  "start",
				Usage: "Start date in `YYYYMMDD` form, inclusive",
			},
			&cli.StringFlag{
				Name:  "end",
				Usage: "End date in `YYYYMMDD` form, inclusive",
			},
			&cli.StringSliceFlag{
				Name:  "strategy",
				Usage: "Strategy to include (repeatable, default all)",
			},
		},
		Action: runAction,
	}
}

func runAction(ctx context.Context, cmd *cli.Command) error {
	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	defer rt.close()

	series, err := rt.store.LoadSeries(ctx,
		cmd.String("symbol"),
		types.InstrumentKind(cmd.String("kind")),
		cmd.String("start"),
		cmd.String("end"))
	if err != nil {
		return err
	}

	if err := series.Validate(); err != nil {
		return err
	}

	cfg, err := rt.comparatorConfig(cmd.StringSlice("strategy"))
	if err != nil {
		return err
	}

	c := comparator.NewComparator(strategy.NewDefaultRegistry(), rt.logger)

	comparison, err := c.Compare(ctx, series, cfg)
	if err != nil {
		return err
	}

	path := filepath.Join(rt.cfg.Storage.OutputDir, comparison.RunID+".yaml")
	if err := comparator.WriteArtifact(comparison, path); err != nil {
		return err
	}

	printComparison(comparison)
	fmt.Printf("\nartifact written to %s\n", path)

	return nil
}

func batchCommand() *cli.Command {
	return &cli.Command{
		Name:  "batch",
		Usage: "Compare strategies across every stored instrument of a kind",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "kind",
				Usage: "Instrument kind (sector or stock)",
				Value: string(types.InstrumentKindSector),
			},
			&cli.StringFlag{
				Name:  "start",
				Usage: "Start date in `YYYYMMDD` form, inclusive",
			},
			&cli.StringFlag{
				Name:  "end",
				Usage: "End date in `YYYYMMDD` form, inclusive",
			},
		},
		Action: batchAction,
	}
}

func batchAction(ctx context.Context, cmd *cli.Command) error {
	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	defer rt.close()

	kind := types.InstrumentKind(cmd.String("kind"))

	symbols, err := rt.store.ListSymbols(ctx, kind)
	if err != nil {
		return err
	}

	if len(symbols) == 0 {
		return fmt.Errorf("no stored instruments of kind %s", kind)
	}

	seriesList := make([]*types.PriceSeries, 0, len(symbols))

	for _, symbol := range symbols {
		series, err := rt.store.LoadSeries(ctx, symbol, kind, cmd.String("start"), cmd.String("end"))
		if err != nil {
			rt.logger.Warn("skipping instrument without data in range",
				zap.String("symbol", symbol), zap.Error(err))

			continue
		}

		seriesList = append(seriesList, series)
	}

	cfg, err := rt.comparatorConfig(nil)
	if err != nil {
		return err
	}

	c := comparator.NewComparator(strategy.NewDefaultRegistry(), rt.logger)

	bar := progressbar.Default(int64(len(seriesList)), "backtesting")
	results := c.CompareBatch(ctx, seriesList, cfg, rt.cfg.Backtest.Concurrency)

	failed := 0

	for _, result := range results {
		_ = bar.Add(1)

		if result.Err != nil {
			failed++

			continue
		}

		path := filepath.Join(rt.cfg.Storage.OutputDir, result.Comparison.RunID+".yaml")
		if err := comparator.WriteArtifact(result.Comparison, path); err != nil {
			return err
		}
	}

	fmt.Printf("\n%d instruments compared, %d failed, artifacts in %s\n",
		len(results)-failed, failed, rt.cfg.Storage.OutputDir)

	return nil
}

func strategiesCommand() *cli.Command {
	return &cli.Command{
		Name:  "strategies",
		Usage: "List the available strategies",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			for _, name := range strategy.NewDefaultRegistry().List() {
				fmt.Println(name)
			}

			return nil
		},
	}
}

func schemaCommand() *cli.Command {
	return &cli.Command{
		Name:  "schema",
		Usage: "Print the JSON schema of every strategy's parameters",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			schemas, err := strategy.ParamsSchemas()
			if err != nil {
				return err
			}

			for _, name := range strategy.NewDefaultRegistry().List() {
				fmt.Printf("%s: %s\n", name, schemas[name])
			}

			return nil
		},
	}
}

func printComparison(comparison *comparator.Comparison) {
	fmt.Printf("run %s on %s (ranked by %s)\n\n",
		comparison.RunID, comparison.Symbol, comparison.RankedBy)

	for i, result := range comparison.Results {
		m := result.Metrics
		sharpe := "n/a"

		if v, err := m.SharpeRatio.Take(); err == nil {
			sharpe = fmt.Sprintf("%.2f", v)
		}

		fmt.Printf("%2d. %-18s return %+7.2f%%  annualized %+7.2f%%  drawdown %6.2f%%  win %5.1f%%  trades %3d  sharpe %s\n",
			i+1, result.StrategyName,
			m.TotalReturn*100, m.AnnualizedReturn*100,
			m.MaxDrawdown*100, m.WinRate*100, m.TradeCount, sharpe)
	}

	for _, excluded := range comparison.Excluded {
		fmt.Printf("    %-18s excluded: %s\n", excluded.StrategyName, excluded.Reason)
	}
}
