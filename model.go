package hh

// Indexes of the state vector (V, m, h, n).
const (
	IdxV = iota
	IdxM
	IdxH
	IdxN
	// StateSize is the length of the state vector.
	StateSize
)

// Currents stores the ionic current densities (µA/cm²), positive outwards.
type Currents struct {
	Na, K, L float64
}

// Total returns the sum of the ionic currents.
func (c Currents) Total() float64 {
	return c.Na + c.K + c.L
}

// Model defines a single compartment Hodgkin-Huxley membrane driven by a stimulus.
// A Model is immutable and safe for concurrent use.
type Model struct {
	params   Parameters
	stimulus Stimulus
	phi      float64 // temperature factor of the gating rates
}

// NewModel returns a new Model. A nil stimulus injects no current.
func NewModel(p Parameters, stim Stimulus) *Model {
	if stim == nil {
		stim = NoStimulus
	}
	return &Model{params: p, stimulus: stim, phi: p.Phi()}
}

// Parameters returns the parameters of this model.
func (m *Model) Parameters() Parameters {
	return m.params
}

// InitialState returns the resting state: V=VRest and each gate at its steady state for VRest.
func (m *Model) InitialState() []float64 {
	v := m.params.VRest
	s := make([]float64, StateSize)
	s[IdxV] = v
	s[IdxM] = SteadyState(AlphaM(v), BetaM(v))
	s[IdxH] = SteadyState(AlphaH(v), BetaH(v))
	s[IdxN] = SteadyState(AlphaN(v), BetaN(v))
	return s
}

// Currents returns the ionic currents for the provided voltage and gates.
func (m *Model) Currents(v, gm, gh, gn float64) Currents {
	p := m.params
	return Currents{
		Na: p.GNa * gm * gm * gm * gh * (v - p.ENa),
		K:  p.GK * gn * gn * gn * gn * (v - p.EK),
		L:  p.GL * (v - p.EL),
	}
}

// Derivatives implements integrator.Func for the state (V, m, h, n).
func (m *Model) Derivatives(t float64, s []float64) []float64 {
	v, gm, gh, gn := s[IdxV], s[IdxM], s[IdxH], s[IdxN]
	phi := m.phi
	dot := make([]float64, StateSize)
	dot[IdxV] = (m.stimulus.Current(t) - m.Currents(v, gm, gh, gn).Total()) / m.params.Cm
	dot[IdxM] = phi * (AlphaM(v)*(1-gm) - BetaM(v)*gm)
	dot[IdxH] = phi * (AlphaH(v)*(1-gh) - BetaH(v)*gh)
	dot[IdxN] = phi * (AlphaN(v)*(1-gn) - BetaN(v)*gn)
	return dot
}
