package hh

import (
	"fmt"

	"github.com/sbl-neuro/hh/integrator"
)

var (
	// ErrConfig is wrapped by all configuration errors, in which case nothing is simulated.
	ErrConfig = integrator.ErrConfig
	// ErrUnknownParameter is returned when a parameter name is not part of Parameters.
	ErrUnknownParameter = fmt.Errorf("%w: unknown parameter", ErrConfig)
)
