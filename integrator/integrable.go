package integrator

// Func defines the right hand side of an ODE system: it returns ds/dt at time t and state s.
// WARNING: Implementations must not modify s, and must return a new slice.
type Func func(t float64, s []float64) []float64

// Stepper advances a state by one fixed step of size h from time t.
type Stepper interface {
	Step(f Func, t float64, s []float64, h float64) []float64 // Returns a new state, s is untouched.
	Method() Method
}
