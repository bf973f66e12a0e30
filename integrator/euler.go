package integrator

import "gonum.org/v1/gonum/floats"

// EulerStepper implements the forward Euler step: s(t+h) = s(t) + h*f(t, s(t)).
type EulerStepper struct{}

// Method implements the Stepper interface.
func (EulerStepper) Method() Method {
	return Euler
}

// Step implements the Stepper interface.
func (EulerStepper) Step(f Func, t float64, s []float64, h float64) []float64 {
	next := make([]float64, len(s))
	floats.AddScaledTo(next, s, h, f(t, s))
	return next
}
