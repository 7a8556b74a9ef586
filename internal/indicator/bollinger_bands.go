package indicator

import "github.com/moznion/go-optional"

// BollingerResult holds the aligned band series.
type BollingerResult struct {
	Middle Series
	Upper  Series
	Lower  Series
	// Width is (upper-lower)/middle, undefined where middle is 0.
	Width Series
}

// Bollinger computes the Bollinger bands of the closes: middle is the
// trailing SMA, the bands sit stdDev sample standard deviations away.
// Undefined for index < period-1.
func Bollinger(closes []float64, period int, stdDev float64) BollingerResult {
	n := len(closes)
	result := BollingerResult{
		Middle: SMA(closes, period),
		Upper:  NewSeries(n),
		Lower:  NewSeries(n),
		Width:  NewSeries(n),
	}

	for i := period - 1; i < n; i++ {
		m, ok := result.Middle.At(i)
		if !ok {
			continue
		}

		sd := stddevSample(closes[i-period+1 : i+1])
		upper := m + stdDev*sd
		lower := m - stdDev*sd

		result.Upper[i] = optional.Some(upper)
		result.Lower[i] = optional.Some(lower)

		if m != 0 {
			result.Width[i] = optional.Some((upper - lower) / m)
		}
	}

	return result
}
