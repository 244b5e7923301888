package forecaster

import "testing"

func TestMovingAveragePreservesLength(t *testing.T) {
	series := []float64{1, 2, 3, 4, 5, 6, 7}
	for _, window := range []int{1, 2, 3, 4, 12} {
		out := MovingAverage(series, window)
		if len(out) != len(series) {
			t.Fatalf("window %d: expected length %d, got %d", window, len(series), len(out))
		}
	}
}

func TestMovingAverageWindowOneIsIdentity(t *testing.T) {
	series := []float64{3, 1, 4, 1, 5}
	out := MovingAverage(series, 1)
	for i := range series {
		if out[i] != series[i] {
			t.Fatalf("index %d: expected %v, got %v", i, series[i], out[i])
		}
	}
}

func TestMovingAverageCenteredWindow(t *testing.T) {
	out := MovingAverage([]float64{1, 2, 3, 4, 5}, 3)

	// interior: full window centered on the point
	if !almostEqual(out[2], 3, 1e-9) {
		t.Fatalf("expected 3 at center, got %v", out[2])
	}
	// edges: clipped window over fewer points
	if !almostEqual(out[0], 1.5, 1e-9) {
		t.Fatalf("expected 1.5 at left edge, got %v", out[0])
	}
	if !almostEqual(out[4], 4.5, 1e-9) {
		t.Fatalf("expected 4.5 at right edge, got %v", out[4])
	}
}

func TestMovingAverageWindowLargerThanSeries(t *testing.T) {
	out := MovingAverage([]float64{2, 4, 6}, 10)
	for i, v := range out {
		if !almostEqual(v, 4, 1e-9) {
			t.Fatalf("index %d: expected mean 4, got %v", i, v)
		}
	}
}

func TestMovingAverageNonPositiveWindow(t *testing.T) {
	series := []float64{1, 2, 3}
	out := MovingAverage(series, 0)
	for i := range series {
		if out[i] != series[i] {
			t.Fatalf("non-positive window should behave as identity, got %v", out)
		}
	}
}

func TestMovingAverageEmpty(t *testing.T) {
	if out := MovingAverage(nil, 3); len(out) != 0 {
		t.Fatalf("expected empty output, got %v", out)
	}
}
