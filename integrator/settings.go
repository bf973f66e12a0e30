package integrator

import (
	"fmt"
	"math"
)

const (
	// MaxSteps bounds the number of steps of a single integration.
	MaxSteps = 50000000
	// multipleTol is the relative tolerance used to decide whether the duration is a multiple of the step.
	multipleTol = 1e-9
)

// Settings defines how an ODE is integrated.
// The duration must be an exact multiple of the step size: the last step is never shortened.
type Settings struct {
	Method   Method
	StepSize float64 // Step size h, in the time unit of the system (ms for the neuron model).
	Duration float64 // Total integrated time.
}

// NewSettings returns validated settings from the method name.
func NewSettings(method string, stepSize, duration float64) (Settings, error) {
	m, err := ParseMethod(method)
	if err != nil {
		return Settings{}, err
	}
	s := Settings{Method: m, StepSize: stepSize, Duration: duration}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate returns an error wrapping ErrConfig if the settings cannot be integrated.
func (s Settings) Validate() error {
	_, err := s.Steps()
	return err
}

// Steps returns the number of steps, i.e. Duration/StepSize.
func (s Settings) Steps() (int, error) {
	if _, err := s.Method.Stepper(); err != nil {
		return 0, err
	}
	if !(s.StepSize > 0) || math.IsInf(s.StepSize, 0) {
		return 0, fmt.Errorf("%w: step size must be positive and finite, got %g", ErrConfig, s.StepSize)
	}
	if !(s.Duration > 0) || math.IsInf(s.Duration, 0) {
		return 0, fmt.Errorf("%w: duration must be positive and finite, got %g", ErrConfig, s.Duration)
	}
	ratio := s.Duration / s.StepSize
	n := math.Round(ratio)
	if n < 1 || math.Abs(ratio-n) > multipleTol*n {
		return 0, fmt.Errorf("%w: duration %g is not a multiple of step size %g", ErrConfig, s.Duration, s.StepSize)
	}
	if n > MaxSteps {
		return 0, fmt.Errorf("%w: %g steps exceeds the limit of %d", ErrConfig, n, MaxSteps)
	}
	return int(n), nil
}

func (s Settings) String() string {
	return fmt.Sprintf("%s h=%g T=%g", s.Method, s.StepSize, s.Duration)
}
