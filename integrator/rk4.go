package integrator

import "gonum.org/v1/gonum/floats"

// RK4Stepper implements the classical Runge-Kutta 4 step.
type RK4Stepper struct{}

// Method implements the Stepper interface.
func (RK4Stepper) Method() Method {
	return RK4
}

// Step implements the Stepper interface.
// The derivative is evaluated at t, twice at t+h/2 and at t+h.
func (RK4Stepper) Step(f Func, t float64, s []float64, h float64) []float64 {
	const (
		half     = 1 / 2.0
		oneSixth = 1 / 6.0
		oneThird = 1 / 3.0
	)
	halfStep := h * half
	// tState is used as the stage buffer for k2, k3 and k4.
	tState := make([]float64, len(s))

	k1 := f(t, s)
	floats.AddScaledTo(tState, s, halfStep, k1)
	k2 := f(t+halfStep, tState)
	floats.AddScaledTo(tState, s, halfStep, k2)
	k3 := f(t+halfStep, tState)
	floats.AddScaledTo(tState, s, h, k3)
	k4 := f(t+h, tState)

	next := make([]float64, len(s))
	copy(next, s)
	floats.AddScaled(next, h*oneSixth, k1)
	floats.AddScaled(next, h*oneThird, k2)
	floats.AddScaled(next, h*oneThird, k3)
	floats.AddScaled(next, h*oneSixth, k4)
	return next
}
