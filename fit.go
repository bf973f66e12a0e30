package hh

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// ErrFit is returned when the data cannot support the requested fit.
var ErrFit = errors.New("cannot fit")

// FitPolynomial returns the least squares coefficients c of y = c[0] + c[1] x + ... + c[degree] x^degree.
func FitPolynomial(x, y []float64, degree int) ([]float64, error) {
	if degree < 0 {
		return nil, fmt.Errorf("%w: negative degree %d", ErrFit, degree)
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: %d abscissas for %d ordinates", ErrFit, len(x), len(y))
	}
	if len(x) < degree+1 {
		return nil, fmt.Errorf("%w: %d points for a degree %d polynomial", ErrFit, len(x), degree)
	}
	// Vandermonde matrix.
	a := mat.NewDense(len(x), degree+1, nil)
	for i, xi := range x {
		pow := 1.0
		for j := 0; j <= degree; j++ {
			a.Set(i, j, pow)
			pow *= xi
		}
	}
	var c mat.VecDense
	if err := c.SolveVec(a, mat.NewVecDense(len(y), y)); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrFit, err)
	}
	coeffs := make([]float64, degree+1)
	for j := range coeffs {
		coeffs[j] = c.AtVec(j)
	}
	return coeffs, nil
}

// EvalPolynomial evaluates the polynomial of coefficients c (lowest degree first) at x.
func EvalPolynomial(c []float64, x float64) float64 {
	y := 0.0
	for j := len(c) - 1; j >= 0; j-- {
		y = y*x + c[j]
	}
	return y
}

// FitPowerLaw fits y = c x^n by a linear regression of log y on log x. All data must be positive.
func FitPowerLaw(x, y []float64) (n, c float64, err error) {
	if len(x) != len(y) || len(x) < 2 {
		return 0, 0, fmt.Errorf("%w: need at least two (x, y) pairs, got %d and %d", ErrFit, len(x), len(y))
	}
	lx := make([]float64, len(x))
	ly := make([]float64, len(y))
	for i := range x {
		if !(x[i] > 0 && y[i] > 0) {
			return 0, 0, fmt.Errorf("%w: non positive point (%g, %g)", ErrFit, x[i], y[i])
		}
		lx[i], ly[i] = math.Log(x[i]), math.Log(y[i])
	}
	alpha, beta := stat.LinearRegression(lx, ly, nil, false)
	if math.IsNaN(beta) || math.IsInf(beta, 0) || math.IsNaN(alpha) {
		return 0, 0, fmt.Errorf("%w: degenerate abscissas", ErrFit)
	}
	return beta, math.Exp(alpha), nil
}
