package hh

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Parameters defines the physical constants of a Hodgkin-Huxley membrane patch.
// Units: µF/cm² for the capacitance, mS/cm² for the conductances, mV for the potentials and °C for
// the temperatures. Parameters is a value type: sweeps clone it with one field overridden per run.
type Parameters struct {
	Cm          float64 // Membrane capacitance.
	GNa         float64 // Maximal sodium conductance.
	GK          float64 // Maximal potassium conductance.
	GL          float64 // Leak conductance.
	ENa         float64 // Sodium reversal potential.
	EK          float64 // Potassium reversal potential.
	EL          float64 // Leak reversal potential.
	VRest       float64 // Resting potential, the initial voltage of every run.
	Temperature float64 // Temperature of the run.
	TBase       float64 // Temperature at which the rate functions were fit.
	Q10         float64 // Gating rate factor per 10°C.
}

// DefaultParameters returns the squid giant axon parameters at 6.3°C.
// EL is chosen such that VRest is the equilibrium of the membrane.
func DefaultParameters() Parameters {
	return Parameters{
		Cm:          1,
		GNa:         120,
		GK:          36,
		GL:          0.3,
		ENa:         50,
		EK:          -77,
		EL:          -54.387,
		VRest:       -65,
		Temperature: 6.3,
		TBase:       6.3,
		Q10:         3,
	}
}

var paramFields = map[string]func(p *Parameters) *float64{
	"Cm":          func(p *Parameters) *float64 { return &p.Cm },
	"GNa":         func(p *Parameters) *float64 { return &p.GNa },
	"GK":          func(p *Parameters) *float64 { return &p.GK },
	"GL":          func(p *Parameters) *float64 { return &p.GL },
	"ENa":         func(p *Parameters) *float64 { return &p.ENa },
	"EK":          func(p *Parameters) *float64 { return &p.EK },
	"EL":          func(p *Parameters) *float64 { return &p.EL },
	"VRest":       func(p *Parameters) *float64 { return &p.VRest },
	"Temperature": func(p *Parameters) *float64 { return &p.Temperature },
	"TBase":       func(p *Parameters) *float64 { return &p.TBase },
	"Q10":         func(p *Parameters) *float64 { return &p.Q10 },
}

// ParameterNames returns the sorted names accepted by Get and With.
func ParameterNames() []string {
	names := make([]string, 0, len(paramFields))
	for name := range paramFields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// canonicalName returns the field name matching name, case insensitively.
func canonicalName(name string) (string, error) {
	if _, ok := paramFields[name]; ok {
		return name, nil
	}
	for canon := range paramFields {
		if strings.EqualFold(canon, name) {
			return canon, nil
		}
	}
	return "", fmt.Errorf("%w `%s` (known: %s)", ErrUnknownParameter, name, strings.Join(ParameterNames(), ", "))
}

// Get returns the value of the named parameter.
func (p Parameters) Get(name string) (float64, error) {
	canon, err := canonicalName(name)
	if err != nil {
		return math.NaN(), err
	}
	return *paramFields[canon](&p), nil
}

// With returns a copy of p where only the named parameter is set to value.
func (p Parameters) With(name string, value float64) (Parameters, error) {
	canon, err := canonicalName(name)
	if err != nil {
		return p, err
	}
	*paramFields[canon](&p) = value
	return p, nil
}

// Validate returns a configuration error if any parameter is not finite.
// Zero conductances are legal (if pathological).
func (p Parameters) Validate() error {
	for _, name := range ParameterNames() {
		val := *paramFields[name](&p)
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return fmt.Errorf("%w: parameter %s is not finite (%g)", ErrConfig, name, val)
		}
	}
	return nil
}

// Phi returns the temperature factor applied to every gating rate: Q10^((T-TBase)/10).
func (p Parameters) Phi() float64 {
	return math.Pow(p.Q10, (p.Temperature-p.TBase)/10)
}

func (p Parameters) String() string {
	return fmt.Sprintf("Cm=%g gNa=%g gK=%g gL=%g ENa=%g EK=%g EL=%g Vrest=%g T=%g°C (base %g°C, Q10=%g)",
		p.Cm, p.GNa, p.GK, p.GL, p.ENa, p.EK, p.EL, p.VRest, p.Temperature, p.TBase, p.Q10)
}
