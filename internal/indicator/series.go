// Package indicator provides pure functions mapping ordered price columns to
// derived numeric series. Every function returns a series of the same length
// as its input, left-padded with not-yet-available values for indices inside
// the look-back window. No function keeps state; each call is independently
// reproducible.
package indicator

import (
	"math"

	"github.com/moznion/go-optional"
)

// Series is an aligned numeric sequence. Entries inside an indicator's
// warm-up window are None, never silently zero.
type Series []optional.Option[float64]

// NewSeries returns a series of n not-yet-available values.
func NewSeries(n int) Series {
	s := make(Series, n)
	for i := range s {
		s[i] = optional.None[float64]()
	}

	return s
}

// FromValues wraps a fully-defined column into a Series.
func FromValues(values []float64) Series {
	s := make(Series, len(values))
	for i, v := range values {
		s[i] = optional.Some(v)
	}

	return s
}

// Len returns the series length.
func (s Series) Len() int {
	return len(s)
}

// Valid reports whether the value at index i is defined.
func (s Series) Valid(i int) bool {
	return i >= 0 && i < len(s) && s[i].IsSome()
}

// At returns the value at index i and whether it is defined.
func (s Series) At(i int) (float64, bool) {
	if !s.Valid(i) {
		return 0, false
	}

	return s[i].Unwrap(), true
}

// DefinedCount returns how many entries are defined.
func (s Series) DefinedCount() int {
	n := 0

	for _, v := range s {
		if v.IsSome() {
			n++
		}
	}

	return n
}

// Shift returns a copy of s delayed by n bars; the first n entries are
// undefined. Used to turn a trailing window that includes the current bar
// into a strictly prior one.
func (s Series) Shift(n int) Series {
	out := NewSeries(len(s))

	for i := n; i < len(s); i++ {
		out[i] = s[i-n]
	}

	return out
}

// AllValid reports whether every entry in [from, to) is defined.
func (s Series) AllValid(from, to int) bool {
	if from < 0 || to > len(s) {
		return false
	}

	for i := from; i < to; i++ {
		if s[i].IsNone() {
			return false
		}
	}

	return true
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}

// stddevSample is the sample standard deviation (n-1 denominator).
func stddevSample(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}

	m := mean(values)
	sum := 0.0

	for _, v := range values {
		d := v - m
		sum += d * d
	}

	return math.Sqrt(sum / float64(len(values)-1))
}
