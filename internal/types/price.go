package types

import (
	"time"

	"github.com/moznion/go-optional"

	"github.com/quantfold/sector-backtest/pkg/errors"
)

// DateLayout is the wire format for trading dates exchanged with the data
// layer ("YYYYMMDD").
const DateLayout = "20060102"

// InstrumentKind distinguishes sector indices from individual stocks.
type InstrumentKind string

const (
	InstrumentKindSector InstrumentKind = "sector"
	InstrumentKindStock  InstrumentKind = "stock"
)

// PriceBar is a single daily bar. Immutable once loaded.
type PriceBar struct {
	Date   time.Time `yaml:"date"`
	Open   float64   `yaml:"open"`
	High   float64   `yaml:"high"`
	Low    float64   `yaml:"low"`
	Close  float64   `yaml:"close"`
	Volume float64   `yaml:"volume"`
	// Turnover is the traded amount in currency units. Not every data
	// source provides it.
	Turnover optional.Option[float64] `yaml:"turnover,omitempty"`
}

// PriceSeries is an ordered run of daily bars for one instrument. The engine
// only reads it; ownership stays with the caller.
type PriceSeries struct {
	Symbol string
	Kind   InstrumentKind
	Bars   []PriceBar
}

// Len returns the number of bars.
func (p *PriceSeries) Len() int {
	return len(p.Bars)
}

// Closes extracts the close column.
func (p *PriceSeries) Closes() []float64 {
	out := make([]float64, len(p.Bars))
	for i, b := range p.Bars {
		out[i] = b.Close
	}

	return out
}

// Highs extracts the high column.
func (p *PriceSeries) Highs() []float64 {
	out := make([]float64, len(p.Bars))
	for i, b := range p.Bars {
		out[i] = b.High
	}

	return out
}

// Lows extracts the low column.
func (p *PriceSeries) Lows() []float64 {
	out := make([]float64, len(p.Bars))
	for i, b := range p.Bars {
		out[i] = b.Low
	}

	return out
}

// Volumes extracts the volume column.
func (p *PriceSeries) Volumes() []float64 {
	out := make([]float64, len(p.Bars))
	for i, b := range p.Bars {
		out[i] = b.Volume
	}

	return out
}

// Validate checks that bars are strictly ascending by date with no
// duplicate trading days.
func (p *PriceSeries) Validate() error {
	for i := 1; i < len(p.Bars); i++ {
		if !p.Bars[i].Date.After(p.Bars[i-1].Date) {
			return errors.Newf(errors.ErrCodeInvalidSeries,
				"price series for %s is not strictly ascending at index %d (%s >= %s)",
				p.Symbol, i,
				p.Bars[i-1].Date.Format(DateLayout),
				p.Bars[i].Date.Format(DateLayout))
		}
	}

	return nil
}

// ParseDate parses a YYYYMMDD trading date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, errors.Wrapf(errors.ErrCodeInvalidDateRange, err, "invalid trading date %q, expected YYYYMMDD", s)
	}

	return t, nil
}

// FormatDate renders a trading date as YYYYMMDD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
