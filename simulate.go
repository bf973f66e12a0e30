package hh

import (
	"context"
	"time"

	"github.com/sbl-neuro/hh/integrator"
)

// Simulate integrates the model from its resting state for the provided settings.
// The first sample is at t=0. Configuration errors wrap ErrConfig and nothing is integrated.
func Simulate(p Parameters, stim Stimulus, s integrator.Settings) (*integrator.Trajectory, error) {
	return SimulateContext(context.Background(), p, stim, s)
}

// SimulateContext is Simulate with a context used to report telemetry.
// The integration itself is not interruptible.
func SimulateContext(ctx context.Context, p Parameters, stim Stimulus, s integrator.Settings) (*integrator.Trajectory, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	m := NewModel(p, stim)
	start := time.Now()
	tr, err := integrator.Solve(m.Derivatives, 0, m.InitialState(), s)
	if err != nil {
		return nil, err
	}
	recordSimulation(ctx, s.Method, tr.Len()-1, time.Since(start))
	return tr, nil
}
