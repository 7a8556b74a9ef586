// Package datastore persists daily price history in SQLite and loads it as
// price series for the engine.
package datastore

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/moznion/go-optional"
	_ "modernc.org/sqlite" // Pure-Go SQLite driver.

	"github.com/quantfold/sector-backtest/internal/types"
	"github.com/quantfold/sector-backtest/pkg/errors"
)

// PriceStore loads and saves daily bars.
type PriceStore interface {
	// SaveBars upserts the bars for one instrument.
	SaveBars(ctx context.Context, symbol string, kind types.InstrumentKind, bars []types.PriceBar) error
	// LoadSeries loads the bars for (symbol, start, end), dates inclusive
	// in YYYYMMDD form. An empty start or end leaves that side unbounded.
	LoadSeries(ctx context.Context, symbol string, kind types.InstrumentKind, start, end string) (*types.PriceSeries, error)
	// ListSymbols returns the distinct symbols of one instrument kind.
	ListSymbols(ctx context.Context, kind types.InstrumentKind) ([]string, error)
	// Close releases the underlying database.
	Close() error
}

// Compile-time interface check.
var _ PriceStore = (*SQLiteStore)(nil)

// SQLiteStore implements PriceStore backed by a SQLite database. Sector and
// stock bars share one table, discriminated by kind.
type SQLiteStore struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS daily_bars (
    symbol   TEXT NOT NULL,
    kind     TEXT NOT NULL,
    date     TEXT NOT NULL,
    open     REAL NOT NULL,
    high     REAL NOT NULL,
    low      REAL NOT NULL,
    close    REAL NOT NULL,
    volume   REAL NOT NULL,
    turnover REAL,
    PRIMARY KEY (symbol, kind, date)
);
CREATE INDEX IF NOT EXISTS idx_daily_bars_kind ON daily_bars (kind, symbol);
`

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and ensures
// the schema exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreFailed, "NewSQLiteStore: open database", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()

		return nil, errors.Wrap(errors.ErrCodeStoreFailed, "NewSQLiteStore: create schema", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveBars upserts the bars for one instrument inside a transaction.
func (s *SQLiteStore) SaveBars(ctx context.Context, symbol string, kind types.InstrumentKind, bars []types.PriceBar) error {
	if len(bars) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStoreFailed, "SaveBars: begin transaction", err)
	}
	defer tx.Rollback()

	for _, bar := range bars {
		var turnover any
		if v, err := bar.Turnover.Take(); err == nil {
			turnover = v
		}

		query, args, err := sq.
			Insert("daily_bars").
			Columns("symbol", "kind", "date", "open", "high", "low", "close", "volume", "turnover").
			Values(symbol, string(kind), types.FormatDate(bar.Date),
				bar.Open, bar.High, bar.Low, bar.Close, bar.Volume, turnover).
			Suffix("ON CONFLICT (symbol, kind, date) DO UPDATE SET " +
				"open=excluded.open, high=excluded.high, low=excluded.low, " +
				"close=excluded.close, volume=excluded.volume, turnover=excluded.turnover").
			ToSql()
		if err != nil {
			return errors.Wrap(errors.ErrCodeStoreFailed, "SaveBars: build query", err)
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return errors.Wrapf(errors.ErrCodeStoreFailed, err,
				"SaveBars: insert bar %s/%s", symbol, types.FormatDate(bar.Date))
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(errors.ErrCodeStoreFailed, "SaveBars: commit", err)
	}

	return nil
}

// LoadSeries loads the bars for (symbol, start, end) ordered by date. It
// returns ErrCodeDataNotFound when the range holds no bars.
func (s *SQLiteStore) LoadSeries(ctx context.Context, symbol string, kind types.InstrumentKind, start, end string) (*types.PriceSeries, error) {
	if start != "" && end != "" && start > end {
		return nil, errors.Newf(errors.ErrCodeInvalidDateRange,
			"LoadSeries: start %s is after end %s", start, end)
	}

	builder := sq.
		Select("date", "open", "high", "low", "close", "volume", "turnover").
		From("daily_bars").
		Where(sq.Eq{"symbol": symbol, "kind": string(kind)}).
		OrderBy("date ASC")

	if start != "" {
		builder = builder.Where(sq.GtOrEq{"date": start})
	}

	if end != "" {
		builder = builder.Where(sq.LtOrEq{"date": end})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "LoadSeries: build query", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "LoadSeries: query", err)
	}
	defer rows.Close()

	series := &types.PriceSeries{Symbol: symbol, Kind: kind}

	for rows.Next() {
		var (
			date     string
			bar      types.PriceBar
			turnover sql.NullFloat64
		)

		if err := rows.Scan(&date, &bar.Open, &bar.High, &bar.Low, &bar.Close, &bar.Volume, &turnover); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "LoadSeries: scan row", err)
		}

		bar.Date, err = types.ParseDate(date)
		if err != nil {
			return nil, err
		}

		bar.Turnover = optionalFloat(turnover)
		series.Bars = append(series.Bars, bar)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "LoadSeries: iterate rows", err)
	}

	if len(series.Bars) == 0 {
		return nil, errors.Newf(errors.ErrCodeDataNotFound,
			"LoadSeries: no bars for %s (%s) in [%s, %s]", symbol, kind, start, end)
	}

	return series, nil
}

// ListSymbols returns the distinct symbols of one instrument kind, sorted.
func (s *SQLiteStore) ListSymbols(ctx context.Context, kind types.InstrumentKind) ([]string, error) {
	query, args, err := sq.
		Select("DISTINCT symbol").
		From("daily_bars").
		Where(sq.Eq{"kind": string(kind)}).
		OrderBy("symbol ASC").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "ListSymbols: build query", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "ListSymbols: query", err)
	}
	defer rows.Close()

	var symbols []string

	for rows.Next() {
		var symbol string
		if err := rows.Scan(&symbol); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "ListSymbols: scan row", err)
		}

		symbols = append(symbols, symbol)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "ListSymbols: iterate rows", err)
	}

	return symbols, nil
}

func optionalFloat(v sql.NullFloat64) optional.Option[float64] {
	if !v.Valid {
		return optional.None[float64]()
	}

	return optional.Some(v.Float64)
}
