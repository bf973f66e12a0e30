package hh

import "math"

// vtrapTol is the |x/y| under which vtrap uses its Taylor expansion.
const vtrapTol = 1e-6

// vtrap returns x/(exp(x/y)-1), whose limit at x=0 is y.
func vtrap(x, y float64) float64 {
	u := x / y
	if math.Abs(u) < vtrapTol {
		return y * (1 - u/2 + u*u/12)
	}
	return x / math.Expm1(u)
}

/* Voltage dependent opening (alpha) and closing (beta) rates of the gates, in 1/ms at the base
temperature, for an absolute membrane potential v in mV. */

// AlphaM is the opening rate of the sodium activation gate. It is finite at v=-40 mV.
func AlphaM(v float64) float64 {
	return 0.1 * vtrap(-(v + 40), 10)
}

// BetaM is the closing rate of the sodium activation gate.
func BetaM(v float64) float64 {
	return 4 * math.Exp(-(v+65)/18)
}

// AlphaH is the opening rate of the sodium inactivation gate.
func AlphaH(v float64) float64 {
	return 0.07 * math.Exp(-(v+65)/20)
}

// BetaH is the closing rate of the sodium inactivation gate.
func BetaH(v float64) float64 {
	return 1 / (1 + math.Exp(-(v+35)/10))
}

// AlphaN is the opening rate of the potassium activation gate. It is finite at v=-55 mV.
func AlphaN(v float64) float64 {
	return 0.01 * vtrap(-(v + 55), 10)
}

// BetaN is the closing rate of the potassium activation gate.
func BetaN(v float64) float64 {
	return 0.125 * math.Exp(-(v+65)/80)
}

// SteadyState returns the asymptotic gate value alpha/(alpha+beta), which does not depend on temperature.
func SteadyState(alpha, beta float64) float64 {
	return alpha / (alpha + beta)
}

// TimeConstant returns the gate time constant in ms, 1/(phi*(alpha+beta)).
func TimeConstant(alpha, beta, phi float64) float64 {
	return 1 / (phi * (alpha + beta))
}
