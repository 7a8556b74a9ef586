package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/moznion/go-optional"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"

	"github.com/quantfold/sector-backtest/internal/types"
)

func importCommand() *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Import daily bars from a CSV file into the price store",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "CSV file with header date,open,high,low,close,volume[,turnover]",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "symbol",
				Aliases:  []string{"s"},
				Usage:    "Instrument symbol to store the bars under",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "kind",
				Usage: "Instrument kind (sector or stock)",
				Value: string(types.InstrumentKindSector),
			},
		},
		Action: importAction,
	}
}

func importAction(ctx context.Context, cmd *cli.Command) error {
	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	defer rt.close()

	file, err := os.Open(cmd.String("file"))
	if err != nil {
		return err
	}
	defer file.Close()

	bars, err := readBarsCSV(file)
	if err != nil {
		return err
	}

	symbol := cmd.String("symbol")
	kind := types.InstrumentKind(cmd.String("kind"))

	series := &types.PriceSeries{Symbol: symbol, Kind: kind, Bars: bars}
	if err := series.Validate(); err != nil {
		return err
	}

	bar := progressbar.Default(1, "importing")

	if err := rt.store.SaveBars(ctx, symbol, kind, bars); err != nil {
		return err
	}

	_ = bar.Add(1)
	fmt.Printf("\nimported %d bars for %s (%s)\n", len(bars), symbol, kind)

	return nil
}

// readBarsCSV parses daily bars from a headered CSV stream. The turnover
// column is optional.
func readBarsCSV(r io.Reader) ([]types.PriceBar, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	if len(header) < 6 {
		return nil, fmt.Errorf("expected at least 6 columns, got %d", len(header))
	}

	var bars []types.PriceBar

	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		bar, err := parseBar(record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		bars = append(bars, bar)
	}

	return bars, nil
}

func parseBar(record []string) (types.PriceBar, error) {
	var bar types.PriceBar

	if len(record) < 6 {
		return bar, fmt.Errorf("expected at least 6 fields, got %d", len(record))
	}

	date, err := types.ParseDate(record[0])
	if err != nil {
		return bar, err
	}

	fields := make([]float64, 5)

	for i := 0; i < 5; i++ {
		v, err := strconv.ParseFloat(record[i+1], 64)
		if err != nil {
			return bar, fmt.Errorf("field %d: %w", i+1, err)
		}

		fields[i] = v
	}

	bar = types.PriceBar{
		Date:   date,
		Open:   fields[0],
		High:   fields[1],
		Low:    fields[2],
		Close:  fields[3],
		Volume: fields[4],
	}

	if len(record) > 6 && record[6] != "" {
		v, err := strconv.ParseFloat(record[6], 64)
		if err != nil {
			return bar, fmt.Errorf("turnover: %w", err)
		}

		bar.Turnover = optional.Some(v)
	}

	return bar, nil
}
