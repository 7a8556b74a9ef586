package indicator

import "github.com/moznion/go-optional"

// VolumeRatio divides each bar's volume by the trailing period mean volume.
// A zero mean volume yields a neutral ratio of 1. Undefined for
// index < period-1.
func VolumeRatio(volumes []float64, period int) Series {
	out := NewSeries(len(volumes))
	avg := SMA(volumes, period)

	for i := range volumes {
		a, ok := avg.At(i)
		if !ok {
			continue
		}

		if a == 0 {
			out[i] = optional.Some(1.0)
			continue
		}

		out[i] = optional.Some(volumes[i] / a)
	}

	return out
}
