package indicator

import "github.com/moznion/go-optional"

// EMA computes the exponential moving average with smoothing factor
// alpha = 2/(period+1). The recurrence runs from the first bar, seeded
// with the first value; indices < period-1 stay not-yet-available.
func EMA(values []float64, period int) Series {
	out := NewSeries(len(values))
	if period <= 0 || len(values) < period {
		return out
	}

	alpha := 2.0 / float64(period+1)
	ema := values[0]

	if period == 1 {
		out[0] = optional.Some(ema)
	}

	// Delta form: exact on constant input, so a flat stretch never
	// drifts off the price by rounding.
	for i := 1; i < len(values); i++ {
		ema += alpha * (values[i] - ema)
		if i >= period-1 {
			out[i] = optional.Some(ema)
		}
	}

	return out
}

// EMAOver applies the EMA recurrence to an already left-padded series,
// preserving its warm-up offset. Used to smooth derived lines such as the
// MACD signal line.
func EMAOver(s Series, period int) Series {
	out := NewSeries(len(s))
	if period <= 0 {
		return out
	}

	// Find the first defined index.
	start := -1

	for i := range s {
		if s[i].IsSome() {
			start = i
			break
		}
	}

	if start < 0 || len(s)-start < period {
		return out
	}

	alpha := 2.0 / float64(period+1)
	ema := s[start].Unwrap()

	if period == 1 {
		out[start] = optional.Some(ema)
	}

	for i := start + 1; i < len(s); i++ {
		ema += alpha * (s[i].Unwrap() - ema)
		if i >= start+period-1 {
			out[i] = optional.Some(ema)
		}
	}

	return out
}

// ewmAlpha smooths a raw column with an explicit alpha, defined from the
// first input index. The KDJ stochastic uses alpha = 1/period.
func ewmAlpha(values Series, alpha float64) Series {
	out := NewSeries(len(values))
	started := false
	ema := 0.0

	for i := range values {
		v, ok := values.At(i)
		if !ok {
			continue
		}

		if !started {
			ema = v
			started = true
		} else {
			ema += alpha * (v - ema)
		}

		out[i] = optional.Some(ema)
	}

	return out
}
