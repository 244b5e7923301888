package forecaster

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestFitExactLine(t *testing.T) {
	f := NewTrendFitter()
	res := f.Fit([]float64{1, 3, 5, 7, 9}, 1)

	if len(res.Coefficients) != 2 {
		t.Fatalf("expected 2 coefficients, got %d", len(res.Coefficients))
	}
	if !almostEqual(res.Coefficients[0], 1, 1e-9) || !almostEqual(res.Coefficients[1], 2, 1e-9) {
		t.Fatalf("unexpected coefficients %v", res.Coefficients)
	}
	if !almostEqual(res.GoodnessOfFit, 1, 1e-9) {
		t.Fatalf("unexpected goodness of fit %v", res.GoodnessOfFit)
	}
}

func TestFitQuadratic(t *testing.T) {
	series := make([]float64, 8)
	for i := range series {
		series[i] = float64(i * i)
	}

	f := NewTrendFitter()
	res := f.Fit(series, 2)

	if len(res.Coefficients) != 3 {
		t.Fatalf("expected 3 coefficients, got %d", len(res.Coefficients))
	}
	if !almostEqual(res.Coefficients[2], 1, 1e-6) {
		t.Fatalf("unexpected quadratic coefficient %v", res.Coefficients[2])
	}
	if !almostEqual(res.GoodnessOfFit, 1, 1e-9) {
		t.Fatalf("unexpected goodness of fit %v", res.GoodnessOfFit)
	}
}

func TestFitConstantSeries(t *testing.T) {
	f := NewTrendFitter()
	res := f.Fit([]float64{5, 5, 5, 5}, 1)

	if !almostEqual(res.GoodnessOfFit, 1, 1e-9) {
		t.Fatalf("constant series should fit perfectly, got %v", res.GoodnessOfFit)
	}
	if !almostEqual(res.Coefficients[0], 5, 1e-9) || !almostEqual(res.Coefficients[1], 0, 1e-9) {
		t.Fatalf("unexpected coefficients %v", res.Coefficients)
	}
}

func TestFitTooFewPoints(t *testing.T) {
	f := NewTrendFitter()
	res := f.Fit([]float64{5}, 1)

	if len(res.Coefficients) != 2 {
		t.Fatalf("expected zero-filled coefficients of length 2, got %v", res.Coefficients)
	}
	for _, c := range res.Coefficients {
		if c != 0 {
			t.Fatalf("expected zero coefficients, got %v", res.Coefficients)
		}
	}
	if res.GoodnessOfFit != 0 {
		t.Fatalf("expected zero goodness of fit, got %v", res.GoodnessOfFit)
	}
}

func TestFitEmptySeries(t *testing.T) {
	f := NewTrendFitter()
	res := f.Fit(nil, 2)

	if len(res.Coefficients) != 3 || res.GoodnessOfFit != 0 {
		t.Fatalf("expected zero result, got %+v", res)
	}
}

func TestFitDegreeZeroIsMean(t *testing.T) {
	f := NewTrendFitter()
	res := f.Fit([]float64{2, 4, 6}, 0)

	if len(res.Coefficients) != 1 || !almostEqual(res.Coefficients[0], 4, 1e-9) {
		t.Fatalf("expected mean coefficient, got %v", res.Coefficients)
	}
}

func TestLinearFitExactLine(t *testing.T) {
	f := NewTrendFitter()
	res := f.LinearFit([]float64{1, 3, 5, 7, 9})

	if !almostEqual(res.Slope, 2, 1e-9) {
		t.Fatalf("unexpected slope %v", res.Slope)
	}
	if !almostEqual(res.Intercept, 1, 1e-9) {
		t.Fatalf("unexpected intercept %v", res.Intercept)
	}
	if !almostEqual(res.R2, 1, 1e-9) {
		t.Fatalf("unexpected r2 %v", res.R2)
	}
}

func TestLinearFitConstant(t *testing.T) {
	f := NewTrendFitter()
	res := f.LinearFit([]float64{7, 7, 7})

	if res.Slope != 0 {
		t.Fatalf("expected zero slope, got %v", res.Slope)
	}
	if !almostEqual(res.Intercept, 7, 1e-9) {
		t.Fatalf("unexpected intercept %v", res.Intercept)
	}
	if res.R2 != 1 {
		t.Fatalf("constant series should report r2=1, got %v", res.R2)
	}
}

func TestLinearFitEmpty(t *testing.T) {
	f := NewTrendFitter()
	res := f.LinearFit(nil)

	if res.Slope != 0 || res.Intercept != 0 || res.R2 != 0 {
		t.Fatalf("expected zero result, got %+v", res)
	}
}

func TestSolveGaussianSingular(t *testing.T) {
	a := [][]float64{
		{1, 2, 3},
		{2, 4, 6},
		{1, 1, 1},
	}
	b := []float64{1, 2, 3}

	if x := solveGaussian(a, b); x != nil {
		t.Fatalf("expected nil for singular system, got %v", x)
	}
}
