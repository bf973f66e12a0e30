package hh

import "fmt"

// Stimulus is an injected current density (µA/cm²) as a pure function of time (ms).
// It is evaluated at sub-step times by multi stage integrators.
type Stimulus interface {
	Current(t float64) float64
}

// StimulusFunc adapts a function to the Stimulus interface.
type StimulusFunc func(t float64) float64

// Current implements the Stimulus interface.
func (f StimulusFunc) Current(t float64) float64 {
	return f(t)
}

// NoStimulus never injects any current.
var NoStimulus = StimulusFunc(func(float64) float64 { return 0 })

// Pulse is a rectangular current pulse, active on [Onset, Onset+Width).
type Pulse struct {
	Onset     float64 // ms
	Width     float64 // ms
	Amplitude float64 // µA/cm²
}

// Current implements the Stimulus interface.
func (p Pulse) Current(t float64) float64 {
	if t >= p.Onset && t < p.Onset+p.Width {
		return p.Amplitude
	}
	return 0
}

// StartTime returns the onset of the pulse.
func (p Pulse) StartTime() float64 {
	return p.Onset
}

// WithAmplitude returns a copy of the pulse with another amplitude.
func (p Pulse) WithAmplitude(a float64) Pulse {
	p.Amplitude = a
	return p
}

func (p Pulse) String() string {
	return fmt.Sprintf("%g µA/cm² @ [%g, %g) ms", p.Amplitude, p.Onset, p.Onset+p.Width)
}

// starter is implemented by stimuli which know when they start.
type starter interface {
	StartTime() float64
}

// stimulusOnset returns the start time of the stimulus, or 0 if it cannot tell.
func stimulusOnset(s Stimulus) float64 {
	if st, ok := s.(starter); ok {
		return st.StartTime()
	}
	return 0
}
