package forecaster

import (
	"math"
	"testing"
)

func TestDecomposeShortSeries(t *testing.T) {
	d := NewSeasonalDecomposer(12)
	res := d.Decompose([]float64{1, 2, 3, 4, 5})

	if res.Significant {
		t.Fatalf("short series must not be significant")
	}
	if len(res.Index) != 0 || len(res.Seasonal) != 0 || len(res.Trend) != 0 {
		t.Fatalf("expected empty decomposition, got %+v", res)
	}
}

func TestDecomposeDetectsYearlyCycle(t *testing.T) {
	// Three years of monthly data with a clear yearly sine pattern.
	series := make([]float64, 36)
	for i := range series {
		series[i] = 100 + 10*math.Sin(2*math.Pi*float64(i)/12)
	}

	d := NewSeasonalDecomposer(12)
	res := d.Decompose(series)

	if !res.Significant {
		t.Fatalf("expected significant seasonal pattern")
	}
	if len(res.Index) != 12 {
		t.Fatalf("expected index of length 12, got %d", len(res.Index))
	}
	if len(res.Seasonal) != len(series) || len(res.Trend) != len(series) {
		t.Fatalf("components must match series length")
	}

	// seasonal tiles the index
	for i := range res.Seasonal {
		if res.Seasonal[i] != res.Index[i%12] {
			t.Fatalf("seasonal[%d] does not tile the index", i)
		}
	}
}

func TestDecomposeFlatSeriesInsignificant(t *testing.T) {
	series := make([]float64, 24)
	for i := range series {
		series[i] = 500
	}

	d := NewSeasonalDecomposer(12)
	res := d.Decompose(series)

	if res.Significant {
		t.Fatalf("flat series must not be significant")
	}
	for k, v := range res.Index {
		if !almostEqual(v, 0, 1e-9) {
			t.Fatalf("index[%d] expected 0, got %v", k, v)
		}
	}
}

func TestDecomposeDefaultPeriod(t *testing.T) {
	d := NewSeasonalDecomposer(0)
	if d.Period() != 12 {
		t.Fatalf("expected default period 12, got %d", d.Period())
	}
}
