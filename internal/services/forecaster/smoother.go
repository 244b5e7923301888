package forecaster

// MovingAverage computes a centered moving average. For each index i the
// window is [i − window/2, i + (window+1)/2) clipped to the series
// bounds, so edge points average over fewer values and the output always
// has the input's length.
func MovingAverage(series []float64, window int) []float64 {
	if window < 1 {
		window = 1
	}

	out := make([]float64, len(series))
	for i := range series {
		lo := i - window/2
		hi := i + (window+1)/2
		if lo < 0 {
			lo = 0
		}
		if hi > len(series) {
			hi = len(series)
		}

		sum := 0.0
		for j := lo; j < hi; j++ {
			sum += series[j]
		}
		out[i] = sum / float64(hi-lo)
	}
	return out
}
