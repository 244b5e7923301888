package forecaster

import (
	"math"

	"Metricast/internal/domain/models"
)

// singularEps is the determinant/pivot threshold below which a normal
// equations system is treated as singular.
const singularEps = 1e-10

// TrendFitter fits polynomials of bounded degree to a series via least
// squares. The series index is the time variable; points are assumed
// equally spaced.
type TrendFitter struct{}

func NewTrendFitter() *TrendFitter { return &TrendFitter{} }

// Fit solves the normal equations (XᵀX)c = Xᵀy where X[i][j] = i^j.
// Degenerate input (fewer points than degree+1, or a singular system)
// yields zero coefficients and a zero goodness of fit instead of an error.
func (f *TrendFitter) Fit(series []float64, degree int) models.FitResult {
	if degree < 0 {
		degree = 0
	}
	size := degree + 1
	n := len(series)
	if n < size {
		return models.FitResult{Coefficients: make([]float64, size)}
	}

	xtx := make([][]float64, size)
	for r := range xtx {
		xtx[r] = make([]float64, size)
	}
	xty := make([]float64, size)

	pows := make([]float64, size)
	for i := 0; i < n; i++ {
		p := 1.0
		for j := 0; j < size; j++ {
			pows[j] = p
			p *= float64(i)
		}
		for r := 0; r < size; r++ {
			for c := r; c < size; c++ {
				xtx[r][c] += pows[r] * pows[c]
			}
			xty[r] += pows[r] * series[i]
		}
	}
	// XᵀX is symmetric; mirror the upper triangle
	for r := 1; r < size; r++ {
		for c := 0; c < r; c++ {
			xtx[r][c] = xtx[c][r]
		}
	}

	var coeffs []float64
	switch size {
	case 1:
		coeffs = []float64{xty[0] / xtx[0][0]}
	case 2:
		coeffs = solveCramer2x2(xtx, xty)
	default:
		coeffs = solveGaussian(xtx, xty)
	}
	if coeffs == nil {
		return models.FitResult{Coefficients: make([]float64, size)}
	}

	return models.FitResult{
		Coefficients:  coeffs,
		GoodnessOfFit: rSquared(series, coeffs),
	}
}

// LinearFit is the closed-form degree-1 least squares fit, used by the
// simple forecast path.
func (f *TrendFitter) LinearFit(series []float64) models.LinearResult {
	n := len(series)
	if n == 0 {
		return models.LinearResult{}
	}

	var sumX, sumY float64
	for i, v := range series {
		sumX += float64(i)
		sumY += v
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var ssXY, ssXX, ssYY float64
	for i, v := range series {
		dx := float64(i) - meanX
		dy := v - meanY
		ssXY += dx * dy
		ssXX += dx * dx
		ssYY += dy * dy
	}

	if ssXX < singularEps {
		return models.LinearResult{Intercept: meanY, R2: 1}
	}

	slope := ssXY / ssXX
	intercept := meanY - slope*meanX

	r2 := 1.0 // constant series: the line through the mean is exact
	if ssYY > 0 {
		r2 = (ssXY * ssXY) / (ssXX * ssYY)
	}

	return models.LinearResult{Slope: slope, Intercept: intercept, R2: r2}
}

// solveCramer2x2 inverts a 2×2 system in closed form.
func solveCramer2x2(a [][]float64, b []float64) []float64 {
	det := a[0][0]*a[1][1] - a[0][1]*a[1][0]
	if math.Abs(det) < singularEps {
		return nil
	}
	return []float64{
		(b[0]*a[1][1] - b[1]*a[0][1]) / det,
		(a[0][0]*b[1] - a[1][0]*b[0]) / det,
	}
}

// solveGaussian performs Gaussian elimination with partial pivoting.
// Returns nil when the system is singular.
func solveGaussian(a [][]float64, b []float64) []float64 {
	n := len(b)

	for col := 0; col < n; col++ {
		// Pick the row with the largest pivot
		pivot := col
		for r := col + 1; r < n; r++ {
			if math.Abs(a[r][col]) > math.Abs(a[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(a[pivot][col]) < singularEps {
			return nil
		}
		a[col], a[pivot] = a[pivot], a[col]
		b[col], b[pivot] = b[pivot], b[col]

		for r := col + 1; r < n; r++ {
			factor := a[r][col] / a[col][col]
			for c := col; c < n; c++ {
				a[r][c] -= factor * a[col][c]
			}
			b[r] -= factor * b[col]
		}
	}

	x := make([]float64, n)
	for r := n - 1; r >= 0; r-- {
		sum := b[r]
		for c := r + 1; c < n; c++ {
			sum -= a[r][c] * x[c]
		}
		x[r] = sum / a[r][r]
	}
	return x
}

// evalPoly evaluates coefficients at t using Horner's scheme.
func evalPoly(coeffs []float64, t float64) float64 {
	v := 0.0
	for i := len(coeffs) - 1; i >= 0; i-- {
		v = v*t + coeffs[i]
	}
	return v
}

// rSquared is 1 − SSres/SStot. A constant series fits its mean exactly,
// so zero total variance counts as a perfect fit.
func rSquared(series []float64, coeffs []float64) float64 {
	n := len(series)
	mean := 0.0
	for _, v := range series {
		mean += v
	}
	mean /= float64(n)

	var ssRes, ssTot float64
	for i, v := range series {
		pred := evalPoly(coeffs, float64(i))
		ssRes += (v - pred) * (v - pred)
		ssTot += (v - mean) * (v - mean)
	}
	if ssTot == 0 {
		return 1
	}
	return 1 - ssRes/ssTot
}
