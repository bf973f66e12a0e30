package main

import (
	"math"

	"github.com/sbl-neuro/hh"
	"github.com/spf13/cobra"
)

type temperatureReport struct {
	hh.SweepResult `yaml:",inline"`
	Mean            float64   `yaml:"mean"`
	Std             float64   `yaml:"std"`
	Polynomial      []float64 `yaml:"polynomial,omitempty"`
	PowerLaw        []float64 `yaml:"power_law,omitempty"` // n, c
}

func newTemperatureCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "temperature",
		Short: "Measure the action potential duration against temperature",
		Long: `Sweep the temperature and measure how long the membrane stays above the AP threshold.

Temperatures without any action potential report a zero duration and ok=false.

Examples:
  hhsim temperature --temps 6.3,18,30
  hhsim temperature --temps 5,10,15,20,25 --workers 4 --fit 2 --format yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close(cmd.Context())
			exp := e.conf.TemperatureExperiment()
			if cmd.Flags().Changed("temps") {
				exp.Temperatures, _ = cmd.Flags().GetFloat64Slice("temps")
			}
			if cmd.Flags().Changed("threshold") {
				exp.Threshold, _ = cmd.Flags().GetFloat64("threshold")
			}
			exp.Logger = e.logger

			// An interrupted sweep still reports its completed points.
			rslt, runErr := exp.Run(cmd.Context())
			if rslt == nil {
				return runErr
			}
			report := temperatureReport{SweepResult: *rslt}
			report.Mean, report.Std = rslt.Summary()
			if degree, _ := cmd.Flags().GetInt("fit"); degree >= 0 {
				if report.Polynomial, err = rslt.FitPolynomial(degree); err != nil {
					e.logger.Log("level", "warning", "subsys", "fit", "degree", degree, "err", err)
				}
				if n, c, err := rslt.FitPowerLaw(); err == nil {
					report.PowerLaw = []float64{n, c}
				} else {
					e.logger.Log("level", "warning", "subsys", "fit", "law", "power", "err", err)
				}
			}
			if math.IsNaN(report.Mean) {
				e.logger.Log("level", "warning", "subsys", "temperature", "message", "no action potential at any temperature")
			}

			if e.format == "yaml" {
				if err := writeYAML(e.out, report); err != nil {
					return err
				}
				return runErr
			}
			rows := make([][]string, len(rslt.Points))
			for i, pt := range rslt.Points {
				rows[i] = []string{formatFloat(pt.Value), formatFloat(pt.Metric), formatBool(pt.OK)}
			}
			if err := writeCSV(e.out, []string{"temperature", "ap_duration", "ok"}, rows); err != nil {
				return err
			}
			return runErr
		},
	}
	addOverrideFlags(cmd)
	cmd.Flags().Float64Slice("temps", nil, "temperatures to sweep (°C)")
	cmd.Flags().Float64("threshold", hh.DefaultAPThreshold, "AP threshold (mV)")
	cmd.Flags().Int("fit", -1, "fit a polynomial of this degree and a power law (disabled if negative)")
	return cmd
}
