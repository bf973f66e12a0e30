package main

import (
	"errors"
	"strconv"

	"github.com/sbl-neuro/hh"
	"github.com/spf13/cobra"
)

var errNotAllOrNothing = errors.New("all-or-nothing verification failed")

func formatBool(b bool) string {
	return strconv.FormatBool(b)
}

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Verify the all-or-nothing principle",
		Long: `Inject pulses of increasing amplitude and check that the membrane either does not fire,
or fires a stereotyped spike.

The command exits with an error if the principle does not hold.

Examples:
  hhsim validate --amplitudes 0,2,5,10,20
  hhsim validate --amplitudes 0,10,20,40,60 --tolerance 5 --format yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close(cmd.Context())
			v := e.conf.Validator()
			if cmd.Flags().Changed("amplitudes") {
				v.Amplitudes, _ = cmd.Flags().GetFloat64Slice("amplitudes")
			}
			if cmd.Flags().Changed("tolerance") {
				v.PeakTolerance, _ = cmd.Flags().GetFloat64("tolerance")
			}
			v.Logger = e.logger

			rslt, runErr := v.Run(cmd.Context())
			if rslt == nil {
				return runErr
			}
			if e.format == "yaml" {
				err = writeYAML(e.out, rslt)
			} else {
				rows := make([][]string, len(rslt.Outcomes))
				for i, out := range rslt.Outcomes {
					rows[i] = []string{formatFloat(out.Amplitude), formatFloat(out.Peak), formatBool(out.Fired)}
				}
				err = writeCSV(e.out, []string{"amplitude", "peak", "fired"}, rows)
			}
			if err != nil {
				return err
			}
			if runErr != nil {
				return runErr
			}
			if !rslt.OK() {
				for _, f := range rslt.Failures {
					e.logger.Log("level", "error", "subsys", "validate", "failure", f)
				}
				return errNotAllOrNothing
			}
			return nil
		},
	}
	addOverrideFlags(cmd)
	cmd.Flags().Float64Slice("amplitudes", nil, "non decreasing pulse amplitudes (µA/cm²)")
	cmd.Flags().Float64("tolerance", hh.DefaultPeakTolerance, "largest spread of the fired peaks (mV)")
	return cmd
}
