package hh

import (
	"context"
	"fmt"
	"math"

	kitlog "github.com/go-kit/kit/log"
	"github.com/google/uuid"
	"github.com/sbl-neuro/hh/integrator"
)

const (
	// DefaultSpikeThreshold is the peak voltage (mV) above which a run has fired.
	DefaultSpikeThreshold = 0.0
	// DefaultPeakTolerance is the largest spread (mV) of the peaks of fired runs. The pulse current
	// adds to the spike, so the peak grows slowly with the amplitude: with the default 1 ms pulse,
	// amplitudes from threshold up to 60 µA/cm² spread over about 5 mV, while 100 µA/cm² reaches
	// the tolerance. Raise it for stronger pulses.
	DefaultPeakTolerance = 10.0
	// DefaultPulseOnset is the onset (ms) of the validation pulses.
	DefaultPulseOnset = 1.0
	// DefaultPulseWidth is the width (ms) of the validation pulses.
	DefaultPulseWidth = 1.0
)

// Outcome is the classification of a single validation run.
type Outcome struct {
	Amplitude float64 `yaml:"amplitude"` // µA/cm²
	Peak      float64 `yaml:"peak"`      // mV, NaN if the trajectory is not finite.
	Fired     bool    `yaml:"fired"`
}

// VerificationResult reports whether the runs followed the all-or-nothing principle.
// A failed verification is a result, not an error.
type VerificationResult struct {
	Outcomes    []Outcome `yaml:"outcomes"`
	Threshold   float64   `yaml:"threshold"`   // Smallest fired amplitude, NaN if none fired.
	PeakSpread  float64   `yaml:"peak_spread"` // Max minus min peak of the fired runs.
	StepShaped  bool      `yaml:"step_shaped"` // No run fired below an amplitude which did not fire.
	Stereotyped bool      `yaml:"stereotyped"` // All fired peaks are within the tolerance.
	Failures    []string  `yaml:"failures,omitempty"`
}

// OK returns whether the all-or-nothing principle holds.
func (r *VerificationResult) OK() bool {
	return r.StepShaped && r.Stereotyped
}

// Fired returns the fired pattern in amplitude order.
func (r *VerificationResult) Fired() []bool {
	fired := make([]bool, len(r.Outcomes))
	for i, o := range r.Outcomes {
		fired[i] = o.Fired
	}
	return fired
}

// Peaks returns the peak voltage of each run.
func (r *VerificationResult) Peaks() []float64 {
	peaks := make([]float64, len(r.Outcomes))
	for i, o := range r.Outcomes {
		peaks[i] = o.Peak
	}
	return peaks
}

// Validator injects pulses of increasing amplitude and checks the all-or-nothing principle.
type Validator struct {
	Base           Parameters
	Amplitudes     []float64 // Non decreasing, µA/cm².
	Onset, Width   float64   // Pulse timing, ms.
	Settings       integrator.Settings
	SpikeThreshold float64 // mV
	PeakTolerance  float64 // mV
	Logger         kitlog.Logger
}

// NewValidator returns a validator with the default pulse timing, threshold and tolerance.
func NewValidator(base Parameters, amplitudes []float64, s integrator.Settings) *Validator {
	return &Validator{
		Base:           base,
		Amplitudes:     amplitudes,
		Onset:          DefaultPulseOnset,
		Width:          DefaultPulseWidth,
		Settings:       s,
		SpikeThreshold: DefaultSpikeThreshold,
		PeakTolerance:  DefaultPeakTolerance,
	}
}

func (v *Validator) validate() error {
	if len(v.Amplitudes) == 0 {
		return fmt.Errorf("%w: no stimulus amplitudes", ErrConfig)
	}
	for i, a := range v.Amplitudes {
		if math.IsNaN(a) || math.IsInf(a, 0) {
			return fmt.Errorf("%w: amplitude #%d is not finite", ErrConfig, i)
		}
		if i > 0 && a < v.Amplitudes[i-1] {
			return fmt.Errorf("%w: amplitudes must be non decreasing (%g after %g)", ErrConfig, a, v.Amplitudes[i-1])
		}
	}
	if !(v.Width > 0) {
		return fmt.Errorf("%w: pulse width must be positive, got %g", ErrConfig, v.Width)
	}
	if !(v.PeakTolerance >= 0) {
		return fmt.Errorf("%w: peak tolerance must be non negative, got %g", ErrConfig, v.PeakTolerance)
	}
	if err := v.Base.Validate(); err != nil {
		return err
	}
	return v.Settings.Validate()
}

// Run simulates every amplitude and classifies the runs. Configuration errors are returned before
// any simulation; if ctx is done between runs, the partial result is returned with ctx.Err().
func (v *Validator) Run(ctx context.Context) (*VerificationResult, error) {
	if err := v.validate(); err != nil {
		return nil, err
	}
	logger := kitlog.With(loggerOrNop(v.Logger), "subsys", "validate", "run", uuid.New().String())
	pulse := Pulse{Onset: v.Onset, Width: v.Width}
	rslt := &VerificationResult{Outcomes: make([]Outcome, 0, len(v.Amplitudes))}
	for _, amp := range v.Amplitudes {
		if err := ctx.Err(); err != nil {
			v.classify(rslt)
			return rslt, err
		}
		tr, err := SimulateContext(ctx, v.Base, pulse.WithAmplitude(amp), v.Settings)
		if err != nil {
			return nil, err
		}
		peak, finite := PeakVoltage(tr)
		out := Outcome{Amplitude: amp, Peak: peak, Fired: finite && peak > v.SpikeThreshold}
		logger.Log("level", "info", "amplitude", amp, "peak", peak, "fired", out.Fired)
		rslt.Outcomes = append(rslt.Outcomes, out)
	}
	v.classify(rslt)
	if !rslt.OK() {
		logger.Log("level", "warning", "status", "failed", "failures", len(rslt.Failures))
	}
	return rslt, nil
}

// classify checks the step shape and the stereotypy of the outcomes.
func (v *Validator) classify(rslt *VerificationResult) {
	rslt.Threshold = math.NaN()
	rslt.StepShaped, rslt.Stereotyped = true, true
	minPeak, maxPeak := math.Inf(1), math.Inf(-1)
	for _, out := range rslt.Outcomes {
		if !out.Fired {
			if !math.IsNaN(rslt.Threshold) {
				rslt.StepShaped = false
				rslt.Failures = append(rslt.Failures, fmt.Sprintf("amplitude %g did not fire but %g did", out.Amplitude, rslt.Threshold))
			}
			continue
		}
		if math.IsNaN(rslt.Threshold) {
			rslt.Threshold = out.Amplitude
		}
		minPeak = math.Min(minPeak, out.Peak)
		maxPeak = math.Max(maxPeak, out.Peak)
	}
	if math.IsNaN(rslt.Threshold) {
		rslt.PeakSpread = 0
		return
	}
	rslt.PeakSpread = maxPeak - minPeak
	if rslt.PeakSpread > v.PeakTolerance {
		rslt.Stereotyped = false
		rslt.Failures = append(rslt.Failures, fmt.Sprintf("fired peaks spread over %.3f mV (tolerance %g mV)", rslt.PeakSpread, v.PeakTolerance))
	}
}

// ValidateAllOrNothing verifies the all-or-nothing principle with the default Validator settings.
func ValidateAllOrNothing(base Parameters, amplitudes []float64, s integrator.Settings) (*VerificationResult, error) {
	return NewValidator(base, amplitudes, s).Run(context.Background())
}
