package forecaster

import "Metricast/internal/domain/models"

const (
	// trendWindow is the moving average width used to extract the trend
	// before grouping detrended values by position in the cycle.
	trendWindow = 4

	// significanceThreshold is the minimum mean squared seasonal index
	// for the pattern to count as significant. Absolute, not scaled to
	// the series magnitude; pre-scale inputs when comparing metrics of
	// very different ranges.
	significanceThreshold = 0.1
)

// SeasonalDecomposer detects a repeating pattern of fixed period in a
// series via classical additive decomposition.
type SeasonalDecomposer struct {
	period int
}

// NewSeasonalDecomposer creates a decomposer. A non-positive period
// defaults to 12 (monthly data, yearly cycle).
func NewSeasonalDecomposer(period int) *SeasonalDecomposer {
	if period <= 0 {
		period = 12
	}
	return &SeasonalDecomposer{period: period}
}

// Period returns the seasonal cycle length.
func (d *SeasonalDecomposer) Period() int { return d.period }

// Decompose splits the series into trend and seasonal components.
// Series shorter than one full period yield an empty, insignificant
// decomposition rather than an error.
func (d *SeasonalDecomposer) Decompose(series []float64) models.Decomposition {
	n := len(series)
	if n < d.period {
		return models.Decomposition{}
	}

	trend := MovingAverage(series, trendWindow)

	detrended := make([]float64, n)
	for i := range series {
		detrended[i] = series[i] - trend[i]
	}

	// Average detrended values by position in the cycle; positions with
	// no samples stay at 0.
	index := make([]float64, d.period)
	counts := make([]int, d.period)
	for i, v := range detrended {
		index[i%d.period] += v
		counts[i%d.period]++
	}
	for k := range index {
		if counts[k] > 0 {
			index[k] /= float64(counts[k])
		}
	}

	// Tile the index back to full series length
	seasonal := make([]float64, n)
	for i := range seasonal {
		seasonal[i] = index[i%d.period]
	}

	meanSq := 0.0
	for _, v := range index {
		meanSq += v * v
	}
	meanSq /= float64(d.period)

	return models.Decomposition{
		Seasonal:    seasonal,
		Trend:       trend,
		Index:       index,
		Significant: meanSq > significanceThreshold,
	}
}
