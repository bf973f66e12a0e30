package integrator

import (
	"fmt"
	"strings"
)

// Method defines an enum of fixed step integration methods.
type Method uint8

const (
	// Euler is the forward Euler method, one evaluation per step.
	Euler Method = iota + 1
	// RK4 is the classical fourth order Runge-Kutta method, four evaluations per step.
	RK4
)

func (m Method) String() string {
	switch m {
	case Euler:
		return "euler"
	case RK4:
		return "rk4"
	}
	return fmt.Sprintf("method(%d)", uint8(m))
}

// Stepper returns the stepping policy of this method.
func (m Method) Stepper() (Stepper, error) {
	switch m {
	case Euler:
		return EulerStepper{}, nil
	case RK4:
		return RK4Stepper{}, nil
	}
	return nil, fmt.Errorf("%w: unknown integration method %s", ErrConfig, m)
}

// ParseMethod returns the method from its name (case insensitive).
func ParseMethod(name string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "euler", "fe", "forward-euler":
		return Euler, nil
	case "rk4", "runge-kutta-4":
		return RK4, nil
	}
	return 0, fmt.Errorf("%w: unknown integration method %q (must be euler or rk4)", ErrConfig, name)
}
