package hh

import (
	"math"

	"github.com/sbl-neuro/hh/integrator"
)

// Voltage returns the membrane potential series of a trajectory.
func Voltage(tr *integrator.Trajectory) []float64 {
	return tr.Column(IdxV)
}

// PeakVoltage returns the maximal membrane potential of the trajectory.
// It returns false if the voltage series holds any NaN or infinite value.
func PeakVoltage(tr *integrator.Trajectory) (float64, bool) {
	peak := math.Inf(-1)
	for _, s := range tr.States {
		v := s[IdxV]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return math.NaN(), false
		}
		if v > peak {
			peak = v
		}
	}
	return peak, tr.Len() > 0
}

// crossing returns the time at which the segment (t0, v0)-(t1, v1) crosses the threshold.
func crossing(t0, v0, t1, v1, threshold float64) float64 {
	return t0 + (threshold-v0)/(v1-v0)*(t1-t0)
}

// APDuration returns the time the membrane potential stays above threshold, from the first upward
// crossing at or after onset to the following downward crossing. Both crossings are linearly
// interpolated between the bracketing samples. It returns false if either crossing is missing or
// if the voltage is not finite.
func APDuration(tr *integrator.Trajectory, threshold, onset float64) (float64, bool) {
	up := math.NaN()
	for i := 1; i < tr.Len(); i++ {
		v0, v1 := tr.States[i-1][IdxV], tr.States[i][IdxV]
		if math.IsNaN(v1) || math.IsInf(v1, 0) {
			return 0, false
		}
		if tr.Times[i] < onset {
			continue
		}
		if math.IsNaN(up) {
			if v0 < threshold && v1 >= threshold {
				up = crossing(tr.Times[i-1], v0, tr.Times[i], v1, threshold)
			}
			continue
		}
		if v0 >= threshold && v1 < threshold {
			return crossing(tr.Times[i-1], v0, tr.Times[i], v1, threshold) - up, true
		}
	}
	return 0, false
}

// APDurationMetric extracts the action potential duration of a trajectory.
type APDurationMetric struct {
	Threshold float64 // mV
	Onset     float64 // ms, crossings before it are ignored.
}

// Extract implements the Metric interface.
func (m APDurationMetric) Extract(tr *integrator.Trajectory) (float64, bool) {
	return APDuration(tr, m.Threshold, m.Onset)
}
