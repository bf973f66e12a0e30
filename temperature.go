package hh

import (
	"context"

	kitlog "github.com/go-kit/kit/log"
	"github.com/sbl-neuro/hh/integrator"
)

// DefaultAPThreshold is the voltage (mV) above which the membrane is considered in an action potential.
const DefaultAPThreshold = -40.0

// TemperatureExperiment sweeps the temperature and measures the action potential duration.
type TemperatureExperiment struct {
	Temperatures []float64 // °C
	Base         Parameters
	Stimulus     Stimulus
	Settings     integrator.Settings
	Threshold    float64 // AP threshold in mV.
	Workers      int
	Logger       kitlog.Logger
}

// NewTemperatureExperiment returns a new experiment using DefaultAPThreshold.
func NewTemperatureExperiment(base Parameters, stim Stimulus, temps []float64, s integrator.Settings) *TemperatureExperiment {
	return &TemperatureExperiment{Temperatures: temps, Base: base, Stimulus: stim, Settings: s, Threshold: DefaultAPThreshold}
}

// Sweep returns the underlying parameter sweep. Durations are measured from the stimulus onset.
func (e *TemperatureExperiment) Sweep() *Sweep {
	return &Sweep{
		Param:    "Temperature",
		Values:   e.Temperatures,
		Base:     e.Base,
		Stimulus: e.Stimulus,
		Settings: e.Settings,
		Metric:   APDurationMetric{Threshold: e.Threshold, Onset: stimulusOnset(e.Stimulus)},
		Workers:  e.Workers,
		Logger:   e.Logger,
	}
}

// Run runs the experiment. Temperatures without any action potential have a Sentinel duration.
func (e *TemperatureExperiment) Run(ctx context.Context) (*SweepResult, error) {
	return e.Sweep().Run(ctx)
}

// RunTemperatureExperiment returns the action potential duration for each temperature.
func RunTemperatureExperiment(base Parameters, stim Stimulus, temps []float64, s integrator.Settings) (*SweepResult, error) {
	return NewTemperatureExperiment(base, stim, temps, s).Run(context.Background())
}
