package hh

import (
	"context"
	"sync"
	"time"

	"github.com/sbl-neuro/hh/integrator"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/sbl-neuro/hh"

var (
	instrumentsOnce sync.Once
	simulations     metric.Int64Counter
	simSteps        metric.Int64Counter
	simDuration     metric.Float64Histogram
)

// initInstruments creates the instruments on the global meter provider, which is a no-op until
// the application installs one.
func initInstruments() {
	meter := otel.Meter(instrumentationName)
	var err error
	if simulations, err = meter.Int64Counter(
		"hh_simulations_total",
		metric.WithDescription("Total number of integrated trajectories"),
		metric.WithUnit("{simulation}"),
	); err != nil {
		simulations = nil
	}
	if simSteps, err = meter.Int64Counter(
		"hh_integration_steps_total",
		metric.WithDescription("Total number of integration steps"),
		metric.WithUnit("{step}"),
	); err != nil {
		simSteps = nil
	}
	if simDuration, err = meter.Float64Histogram(
		"hh_simulation_duration_seconds",
		metric.WithDescription("Wall time of a single simulation"),
		metric.WithUnit("s"),
	); err != nil {
		simDuration = nil
	}
}

func recordSimulation(ctx context.Context, m integrator.Method, steps int, elapsed time.Duration) {
	instrumentsOnce.Do(initInstruments)
	opt := metric.WithAttributes(attribute.String("method", m.String()))
	if simulations != nil {
		simulations.Add(ctx, 1, opt)
	}
	if simSteps != nil {
		simSteps.Add(ctx, int64(steps), opt)
	}
	if simDuration != nil {
		simDuration.Record(ctx, elapsed.Seconds(), opt)
	}
}
