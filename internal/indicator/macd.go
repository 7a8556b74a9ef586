package indicator

import "github.com/moznion/go-optional"

// MACDResult holds the three aligned MACD series.
type MACDResult struct {
	// Line is EMA(fast) - EMA(slow), defined from index slow-1.
	Line Series
	// Signal is EMA(Line, signalPeriod), defined from slow+signal-2.
	Signal Series
	// Histogram is Line - Signal.
	Histogram Series
}

// MACD computes the moving average convergence/divergence of the closes.
func MACD(closes []float64, fastPeriod, slowPeriod, signalPeriod int) MACDResult {
	fast := EMA(closes, fastPeriod)
	slow := EMA(closes, slowPeriod)

	line := NewSeries(len(closes))

	for i := range closes {
		f, fok := fast.At(i)
		s, sok := slow.At(i)

		if fok && sok {
			line[i] = optional.Some(f - s)
		}
	}

	signal := EMAOver(line, signalPeriod)
	histogram := NewSeries(len(closes))

	for i := range closes {
		l, lok := line.At(i)
		sg, sok := signal.At(i)

		if lok && sok {
			histogram[i] = optional.Some(l - sg)
		}
	}

	return MACDResult{
		Line:      line,
		Signal:    signal,
		Histogram: histogram,
	}
}
