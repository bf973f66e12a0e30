package integrator

import "fmt"

// Solve integrates f from (t0, x0) with the provided settings and returns the full trajectory.
// x0 is copied and never modified. Non finite values are not inspected: they propagate as is.
func Solve(f Func, t0 float64, x0 []float64, s Settings) (*Trajectory, error) {
	if f == nil {
		return nil, fmt.Errorf("%w: derivative function may not be nil", ErrConfig)
	}
	if len(x0) == 0 {
		return nil, fmt.Errorf("%w: empty initial state", ErrConfig)
	}
	steps, err := s.Steps()
	if err != nil {
		return nil, err
	}
	stepper, err := s.Method.Stepper()
	if err != nil {
		return nil, err
	}

	tr := &Trajectory{Times: make([]float64, steps+1), States: make([][]float64, steps+1)}
	state := make([]float64, len(x0))
	copy(state, x0)
	tr.Times[0] = t0
	tr.States[0] = state
	for i := 0; i < steps; i++ {
		// Times are recomputed from the index to avoid accumulating round off.
		state = stepper.Step(f, t0+float64(i)*s.StepSize, state, s.StepSize)
		tr.Times[i+1] = t0 + float64(i+1)*s.StepSize
		tr.States[i+1] = state
	}
	return tr, nil
}
