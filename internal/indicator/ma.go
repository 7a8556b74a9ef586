package indicator

import "github.com/moznion/go-optional"

// SMA computes the arithmetic mean of the trailing period values.
// Undefined for index < period-1.
func SMA(values []float64, period int) Series {
	out := NewSeries(len(values))
	if period <= 0 || len(values) < period {
		return out
	}

	sum := 0.0

	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}

		if i >= period-1 {
			out[i] = optional.Some(sum / float64(period))
		}
	}

	return out
}

// RollingMax computes the maximum over the trailing period values.
// Undefined for index < period-1.
func RollingMax(values []float64, period int) Series {
	out := NewSeries(len(values))
	if period <= 0 {
		return out
	}

	for i := period - 1; i < len(values); i++ {
		max := values[i-period+1]
		for j := i - period + 2; j <= i; j++ {
			if values[j] > max {
				max = values[j]
			}
		}

		out[i] = optional.Some(max)
	}

	return out
}

// RollingMin computes the minimum over the trailing period values.
// Undefined for index < period-1.
func RollingMin(values []float64, period int) Series {
	out := NewSeries(len(values))
	if period <= 0 {
		return out
	}

	for i := period - 1; i < len(values); i++ {
		min := values[i-period+1]
		for j := i - period + 2; j <= i; j++ {
			if values[j] < min {
				min = values[j]
			}
		}

		out[i] = optional.Some(min)
	}

	return out
}

// Decline measures the pullback from the trailing period high as a positive
// percentage of that high. A zero high yields 0, not a division error.
func Decline(closes []float64, period int) Series {
	out := NewSeries(len(closes))
	highs := RollingMax(closes, period)

	for i := range closes {
		high, ok := highs.At(i)
		if !ok {
			continue
		}

		if high == 0 {
			out[i] = optional.Some(0.0)
			continue
		}

		out[i] = optional.Some((high - closes[i]) / high * 100)
	}

	return out
}

// Change computes the bar-over-bar fractional change. Undefined at index 0
// and wherever the previous value is 0.
func Change(values []float64) Series {
	out := NewSeries(len(values))

	for i := 1; i < len(values); i++ {
		if values[i-1] == 0 {
			continue
		}

		out[i] = optional.Some((values[i] - values[i-1]) / values[i-1])
	}

	return out
}
