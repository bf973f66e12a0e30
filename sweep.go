package hh

import (
	"context"
	"fmt"
	"math"
	"sync"

	kitlog "github.com/go-kit/kit/log"
	"github.com/google/uuid"
	"github.com/sbl-neuro/hh/integrator"
	"gonum.org/v1/gonum/stat"
)

// Sentinel is the metric recorded for a swept value whose trajectory yields no metric.
const Sentinel = 0.0

// Metric extracts one scalar from a trajectory. It returns false if the trajectory has no such
// feature (e.g. no action potential).
type Metric interface {
	Extract(tr *integrator.Trajectory) (float64, bool)
}

// MetricFunc adapts a function to the Metric interface.
type MetricFunc func(tr *integrator.Trajectory) (float64, bool)

// Extract implements the Metric interface.
func (f MetricFunc) Extract(tr *integrator.Trajectory) (float64, bool) {
	return f(tr)
}

// SweepPoint is the outcome of one run of a sweep.
type SweepPoint struct {
	Value  float64 `yaml:"value"`  // Value of the swept parameter.
	Metric float64 `yaml:"metric"` // Extracted metric, or Sentinel.
	OK     bool    `yaml:"ok"`     // Whether the metric could be extracted.
}

// SweepResult stores the points of a sweep in sweep order.
type SweepResult struct {
	Param  string       `yaml:"param"`
	Points []SweepPoint `yaml:"points"`
}

// Values returns the swept values.
func (r *SweepResult) Values() []float64 {
	vals := make([]float64, len(r.Points))
	for i, pt := range r.Points {
		vals[i] = pt.Value
	}
	return vals
}

// Metrics returns the metrics, including sentinels.
func (r *SweepResult) Metrics() []float64 {
	vals := make([]float64, len(r.Points))
	for i, pt := range r.Points {
		vals[i] = pt.Metric
	}
	return vals
}

// Extracted returns the values and metrics of the points whose metric was extracted.
func (r *SweepResult) Extracted() (x, y []float64) {
	for _, pt := range r.Points {
		if pt.OK {
			x = append(x, pt.Value)
			y = append(y, pt.Metric)
		}
	}
	return
}

// Summary returns the mean and standard deviation of the extracted metrics (NaN if none).
func (r *SweepResult) Summary() (mean, std float64) {
	_, y := r.Extracted()
	switch len(y) {
	case 0:
		return math.NaN(), math.NaN()
	case 1:
		return y[0], 0
	}
	return stat.MeanStdDev(y, nil)
}

// FitPolynomial fits a polynomial of the given degree through the extracted points.
func (r *SweepResult) FitPolynomial(degree int) ([]float64, error) {
	x, y := r.Extracted()
	return FitPolynomial(x, y, degree)
}

// FitPowerLaw fits metric = c * value^n through the extracted points.
func (r *SweepResult) FitPowerLaw() (n, c float64, err error) {
	x, y := r.Extracted()
	return FitPowerLaw(x, y)
}

// Sweep runs one simulation per value of a named parameter and extracts a metric from each.
// Every run only depends on the swept value and the shared, read only, base configuration.
type Sweep struct {
	Param    string    // Name of the swept parameter, cf. ParameterNames.
	Values   []float64 // Values to try, in order.
	Base     Parameters
	Stimulus Stimulus
	Settings integrator.Settings
	Metric   Metric
	Workers  int // Number of concurrent runs, sequential if <= 1.
	Logger   kitlog.Logger
}

// Run performs the sweep. Configuration errors are returned before any simulation.
// If ctx is done, the sweep stops between runs and returns the completed points along with ctx.Err().
func (sw *Sweep) Run(ctx context.Context) (*SweepResult, error) {
	if sw.Metric == nil {
		return nil, fmt.Errorf("%w: sweep metric may not be nil", ErrConfig)
	}
	if err := sw.Settings.Validate(); err != nil {
		return nil, err
	}
	if err := sw.Base.Validate(); err != nil {
		return nil, err
	}
	param, err := canonicalName(sw.Param)
	if err != nil {
		return nil, err
	}
	// One parameter record per run, only the swept field differs. A non finite swept value is data:
	// its run records a sentinel.
	runs := make([]Parameters, len(sw.Values))
	for i, val := range sw.Values {
		if runs[i], err = sw.Base.With(param, val); err != nil {
			return nil, err
		}
	}

	logger := kitlog.With(loggerOrNop(sw.Logger), "subsys", "sweep", "run", uuid.New().String(), "param", param)
	logger.Log("level", "info", "status", "started", "values", len(runs), "integration", sw.Settings)

	points := make([]SweepPoint, len(runs))
	done := make([]bool, len(runs))
	if sw.Workers <= 1 {
		for i := range runs {
			if ctx.Err() != nil {
				break
			}
			points[i] = sw.runOne(ctx, logger, runs[i], sw.Values[i])
			done[i] = true
		}
	} else {
		jobs := make(chan int)
		var wg sync.WaitGroup
		for w := 0; w < sw.Workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range jobs {
					if ctx.Err() != nil {
						continue
					}
					points[i] = sw.runOne(ctx, logger, runs[i], sw.Values[i])
					done[i] = true
				}
			}()
		}
	feed:
		for i := range runs {
			if ctx.Err() != nil {
				break
			}
			select {
			case <-ctx.Done():
				break feed
			case jobs <- i:
			}
		}
		close(jobs)
		wg.Wait()
	}

	rslt := &SweepResult{Param: param, Points: make([]SweepPoint, 0, len(runs))}
	for i, pt := range points {
		if done[i] {
			rslt.Points = append(rslt.Points, pt)
		}
	}
	if err := ctx.Err(); err != nil {
		logger.Log("level", "warning", "status", "interrupted", "completed", len(rslt.Points), "err", err)
		return rslt, err
	}
	logger.Log("level", "info", "status", "finished", "completed", len(rslt.Points))
	return rslt, nil
}

// runOne simulates one value of the sweep. It never fails: unextractable metrics are sentinels.
func (sw *Sweep) runOne(ctx context.Context, logger kitlog.Logger, p Parameters, value float64) SweepPoint {
	pt := SweepPoint{Value: value, Metric: Sentinel}
	tr, err := SimulateContext(ctx, p, sw.Stimulus, sw.Settings)
	if err != nil {
		logger.Log("level", "error", "value", value, "err", err)
		return pt
	}
	metric, ok := sw.Metric.Extract(tr)
	if !ok || math.IsNaN(metric) || math.IsInf(metric, 0) {
		logger.Log("level", "notice", "value", value, "metric", "none")
		return pt
	}
	pt.Metric, pt.OK = metric, true
	logger.Log("level", "debug", "value", value, "metric", metric)
	return pt
}
