package integrator

import "errors"

// ErrConfig is wrapped by every configuration error: the integration is not attempted.
var ErrConfig = errors.New("invalid configuration")
