package indicator

import "github.com/moznion/go-optional"

// RSI computes the relative strength index over the closes using Wilder's
// smoothing. The first defined value is at index period (the first bar with
// period deltas behind it). When the average loss is zero the RSI is 100.
func RSI(closes []float64, period int) Series {
	out := NewSeries(len(closes))
	if period <= 0 || len(closes) <= period {
		return out
	}

	gains := make([]float64, len(closes))
	losses := make([]float64, len(closes))

	for i := 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains[i] = change
		} else {
			losses[i] = -change
		}
	}

	// First averages over deltas 1..period.
	avgGain := mean(gains[1 : period+1])
	avgLoss := mean(losses[1 : period+1])
	out[period] = optional.Some(rsiFromAverages(avgGain, avgLoss))

	// Wilder's smoothing for the remainder.
	for i := period + 1; i < len(closes); i++ {
		avgGain = (avgGain*float64(period-1) + gains[i]) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + losses[i]) / float64(period)
		out[i] = optional.Some(rsiFromAverages(avgGain, avgLoss))
	}

	return out
}

func rsiFromAverages(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		// A flat window has no gains either; call it neutral instead
		// of a perfect uptrend.
		if avgGain == 0 {
			return 50
		}

		return 100
	}

	rs := avgGain / avgLoss

	return 100 - (100 / (1 + rs))
}
