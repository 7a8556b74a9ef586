package indicator

import "github.com/moznion/go-optional"

// KDJResult holds the stochastic oscillator series.
type KDJResult struct {
	K Series
	D Series
	J Series
}

// KDJ computes the stochastic KDJ oscillator. The raw stochastic value
// (RSV) compares the close to the trailing kPeriod high/low range; %K
// smooths RSV with alpha=1/dPeriod, %D smooths %K with alpha=1/jPeriod and
// %J is 3K-2D. A zero high-low range holds the prior %K instead of
// dividing by zero.
func KDJ(highs, lows, closes []float64, kPeriod, dPeriod, jPeriod int) KDJResult {
	n := len(closes)
	rsv := NewSeries(n)

	highestHigh := RollingMax(highs, kPeriod)
	lowestLow := RollingMin(lows, kPeriod)

	prev := 50.0 // neutral fallback before any range resolves
	for i := kPeriod - 1; i < n; i++ {
		hh, hok := highestHigh.At(i)
		ll, lok := lowestLow.At(i)

		if !hok || !lok {
			continue
		}

		if hh == ll {
			rsv[i] = optional.Some(prev)
			continue
		}

		v := (closes[i] - ll) / (hh - ll) * 100
		rsv[i] = optional.Some(v)
		prev = v
	}

	k := ewmAlpha(rsv, 1.0/float64(dPeriod))
	d := ewmAlpha(k, 1.0/float64(jPeriod))
	j := NewSeries(n)

	for i := 0; i < n; i++ {
		kv, kok := k.At(i)
		dv, dok := d.At(i)

		if kok && dok {
			j[i] = optional.Some(3*kv - 2*dv)
		}
	}

	return KDJResult{K: k, D: d, J: j}
}
