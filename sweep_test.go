package hh

import (
	"bytes"
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/sbl-neuro/hh/integrator"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

var (
	sweepSettings = integrator.Settings{Method: integrator.RK4, StepSize: 0.01, Duration: 30}
	sweepPulse    = Pulse{Onset: 1, Width: 1, Amplitude: 20}
)

func TestTemperatureShortensAP(t *testing.T) {
	rslt, err := RunTemperatureExperiment(DefaultParameters(), sweepPulse, []float64{6.3, 18, 30}, sweepSettings)
	if err != nil {
		t.Fatalf("err: %s", err)
	}
	if rslt.Param != "Temperature" || !floats.Equal(rslt.Values(), []float64{6.3, 18, 30}) {
		t.Fatalf("unexpected sweep %s %v", rslt.Param, rslt.Values())
	}
	d := rslt.Metrics()
	if !rslt.Points[0].OK || d[0] <= 0 {
		t.Fatalf("no action potential at 6.3°C: %+v", rslt.Points[0])
	}
	if !(d[0] >= d[1] && d[1] >= d[2]) {
		t.Fatalf("AP duration must not increase with temperature: %v", d)
	}
}

func TestSweepRecordsSentinel(t *testing.T) {
	sw := &Sweep{
		Param:    "GNa",
		Values:   []float64{120, 0, 150},
		Base:     DefaultParameters(),
		Stimulus: sweepPulse,
		Settings: sweepSettings,
		Metric:   APDurationMetric{Threshold: DefaultAPThreshold, Onset: sweepPulse.Onset},
	}
	rslt, err := sw.Run(context.Background())
	if err != nil {
		t.Fatalf("a pathological value must not abort the sweep: %s", err)
	}
	if len(rslt.Points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(rslt.Points))
	}
	if pt := rslt.Points[1]; pt.OK || pt.Metric != Sentinel || pt.Value != 0 {
		t.Fatalf("expected a sentinel for gNa=0, got %+v", pt)
	}
	for _, i := range []int{0, 2} {
		if pt := rslt.Points[i]; !pt.OK || pt.Metric <= 0 {
			t.Fatalf("expected an action potential for gNa=%f, got %+v", pt.Value, pt)
		}
	}
	if sw.Base != DefaultParameters() {
		t.Fatal("the sweep modified its base parameters")
	}
	x, y := rslt.Extracted()
	if !floats.Equal(x, []float64{120, 150}) || len(y) != 2 {
		t.Fatalf("sentinels must not be extracted: %v %v", x, y)
	}
}

func TestSweepWorkersKeepOrder(t *testing.T) {
	temps := []float64{30, 6.3, 25, 10, 18}
	seq := NewTemperatureExperiment(DefaultParameters(), sweepPulse, temps, sweepSettings)
	want, err := seq.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	par := NewTemperatureExperiment(DefaultParameters(), sweepPulse, temps, sweepSettings)
	par.Workers = 3
	got, err := par.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Points) != len(want.Points) {
		t.Fatalf("%d points, expected %d", len(got.Points), len(want.Points))
	}
	for i := range want.Points {
		if got.Points[i] != want.Points[i] {
			t.Fatalf("point %d: %+v != %+v", i, got.Points[i], want.Points[i])
		}
	}
}

func TestSweepConfigErrors(t *testing.T) {
	metric := APDurationMetric{Threshold: DefaultAPThreshold}
	tests := []struct {
		name string
		sw   Sweep
	}{
		{"unknown parameter", Sweep{Param: "diameter", Values: []float64{1}, Base: DefaultParameters(), Settings: sweepSettings, Metric: metric}},
		{"nil metric", Sweep{Param: "GK", Values: []float64{1}, Base: DefaultParameters(), Settings: sweepSettings}},
		{"bad settings", Sweep{Param: "GK", Values: []float64{1}, Base: DefaultParameters(), Settings: integrator.Settings{Method: integrator.RK4, StepSize: 0.7, Duration: 1}, Metric: metric}},
		{"non finite base", Sweep{Param: "GK", Values: []float64{36}, Base: Parameters{Cm: math.Inf(1)}, Settings: sweepSettings, Metric: metric}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			sw := tt.sw
			if sw.Metric != nil {
				sw.Metric = MetricFunc(func(tr *integrator.Trajectory) (float64, bool) {
					calls++
					return 1, true
				})
			}
			rslt, err := sw.Run(context.Background())
			if !errors.Is(err, ErrConfig) || rslt != nil {
				t.Fatalf("expected a configuration error, got %v", err)
			}
			if calls != 0 {
				t.Fatal("no simulation may run on a configuration error")
			}
		})
	}
	_, err := (&Sweep{Param: "diameter", Settings: sweepSettings, Base: DefaultParameters(), Metric: metric}).Run(context.Background())
	if !errors.Is(err, ErrUnknownParameter) {
		t.Fatalf("expected unknown parameter, got %v", err)
	}
}

func TestSweepInterruptedBetweenRuns(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	calls := 0
	sw := &Sweep{
		Param:    "Temperature",
		Values:   []float64{6.3, 10, 20},
		Base:     DefaultParameters(),
		Stimulus: sweepPulse,
		Settings: integrator.Settings{Method: integrator.Euler, StepSize: 0.01, Duration: 5},
		Metric: MetricFunc(func(tr *integrator.Trajectory) (float64, bool) {
			calls++
			cancel()
			return 42, true
		}),
	}
	rslt, err := sw.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
	if calls != 1 || len(rslt.Points) != 1 || rslt.Points[0] != (SweepPoint{Value: 6.3, Metric: 42, OK: true}) {
		t.Fatalf("expected only the first point to be committed, got %+v", rslt.Points)
	}
}

func TestSweepParallelInterrupted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	workers := 2
	sw := &Sweep{
		Param:    "Temperature",
		Values:   []float64{6.3, 8, 10, 12, 14, 16, 18, 20},
		Base:     DefaultParameters(),
		Stimulus: sweepPulse,
		Settings: integrator.Settings{Method: integrator.Euler, StepSize: 0.01, Duration: 5},
		Metric: MetricFunc(func(tr *integrator.Trajectory) (float64, bool) {
			cancel()
			return 42, true
		}),
		Workers: workers,
	}
	rslt, err := sw.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
	// Only the runs in flight when the first one completed may be committed.
	if len(rslt.Points) == 0 || len(rslt.Points) > workers {
		t.Fatalf("expected between 1 and %d points, got %+v", workers, rslt.Points)
	}
	for _, pt := range rslt.Points {
		if !pt.OK || pt.Metric != 42 {
			t.Fatalf("unexpected point %+v", pt)
		}
	}
}

func TestSweepNonFiniteValue(t *testing.T) {
	for _, workers := range []int{1, 3} {
		sw := &Sweep{
			Param:    "GK",
			Values:   []float64{36, math.Inf(1), math.NaN(), 36},
			Base:     DefaultParameters(),
			Stimulus: sweepPulse,
			Settings: sweepSettings,
			Metric:   APDurationMetric{Threshold: DefaultAPThreshold, Onset: sweepPulse.Onset},
			Workers:  workers,
		}
		rslt, err := sw.Run(context.Background())
		if err != nil {
			t.Fatalf("workers=%d: a non finite swept value must not abort the sweep: %s", workers, err)
		}
		if len(rslt.Points) != 4 {
			t.Fatalf("workers=%d: expected 4 points, got %d", workers, len(rslt.Points))
		}
		for i, pt := range rslt.Points {
			expOK := i == 0 || i == 3
			if pt.OK != expOK {
				t.Fatalf("workers=%d: point #%d %+v, expected OK=%t", workers, i, pt, expOK)
			}
			if !expOK && pt.Metric != Sentinel {
				t.Fatalf("workers=%d: point #%d has metric %f instead of the sentinel", workers, i, pt.Metric)
			}
		}
	}
}

func TestSweepLogs(t *testing.T) {
	var buf bytes.Buffer
	e := NewTemperatureExperiment(DefaultParameters(), sweepPulse, []float64{6.3}, integrator.Settings{Method: integrator.RK4, StepSize: 0.05, Duration: 10})
	e.Logger = NewLogger(&buf)
	if _, err := e.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, exp := range []string{"subsys=sweep", "param=Temperature", "status=finished", "value=6.3"} {
		if !strings.Contains(out, exp) {
			t.Fatalf("log is missing %q:\n%s", exp, out)
		}
	}
}

func TestSweepSummary(t *testing.T) {
	r := &SweepResult{Param: "GK", Points: []SweepPoint{{1, 2, true}, {2, Sentinel, false}, {3, 4, true}}}
	mean, std := r.Summary()
	if mean != 3 || !scalar.EqualWithinAbs(std, math.Sqrt2, 1e-12) {
		t.Fatalf("mean=%f std=%f", mean, std)
	}
	if m, _ := (&SweepResult{}).Summary(); !math.IsNaN(m) {
		t.Fatal("empty summary must be NaN")
	}
}
