package main

import (
	"context"
	"fmt"
	"io"
	"os"

	kitlog "github.com/go-kit/kit/log"
	"github.com/sbl-neuro/hh"
	"github.com/sbl-neuro/hh/integrator"
	"github.com/spf13/cobra"
)

// env is what every subcommand needs once the flags are parsed.
type env struct {
	conf     hh.Config
	logger   kitlog.Logger
	format   string
	out      io.Writer
	shutdown func(context.Context) error
}

func (e *env) close(ctx context.Context) {
	if err := e.shutdown(ctx); err != nil {
		e.logger.Log("level", "warning", "subsys", "otel", "err", err)
	}
}

// loadConfig reads the configuration from --config, $HH_CONFIG, or returns the defaults.
func loadConfig(path string) (hh.Config, error) {
	if path == "" {
		if os.Getenv(hh.ConfigEnv) == "" {
			return hh.DefaultConfig(), nil
		}
		return hh.LoadConfig("")
	}
	info, err := os.Stat(path)
	if err != nil {
		return hh.Config{}, fmt.Errorf("%w: %s", hh.ErrConfig, err)
	}
	if info.IsDir() {
		return hh.LoadConfig(path)
	}
	return hh.LoadConfigFile(path)
}

func newEnv(cmd *cobra.Command) (*env, error) {
	path, _ := cmd.Flags().GetString("config")
	format, _ := cmd.Flags().GetString("format")
	verbose, _ := cmd.Flags().GetBool("verbose")
	endpoint, _ := cmd.Flags().GetString("otlp-endpoint")
	insecure, _ := cmd.Flags().GetBool("otlp-insecure")

	if format != "csv" && format != "yaml" {
		return nil, fmt.Errorf("invalid format: %s (must be csv or yaml)", format)
	}
	conf, err := loadConfig(path)
	if err != nil {
		return nil, err
	}
	if err := applyOverrides(cmd, &conf); err != nil {
		return nil, err
	}

	logger := kitlog.NewNopLogger()
	if verbose {
		logger = hh.NewLogger(cmd.ErrOrStderr())
	}
	shutdown, err := setupMetrics(cmd.Context(), endpoint, insecure)
	if err != nil {
		return nil, err
	}
	logger.Log("level", "info", "subsys", "config", "model", conf.Params, "integration", conf.Settings)
	return &env{conf: conf, logger: logger, format: format, out: cmd.OutOrStdout(), shutdown: shutdown}, nil
}

// addOverrideFlags registers the flags overriding the configuration file.
func addOverrideFlags(cmd *cobra.Command) {
	cmd.Flags().String("method", "", "integration method: euler or rk4")
	cmd.Flags().Float64("step", 0, "integration step size (ms)")
	cmd.Flags().Float64("duration", 0, "integrated duration (ms), a multiple of the step")
	cmd.Flags().Float64("temperature", 0, "membrane temperature (°C)")
	cmd.Flags().Int("workers", 0, "number of concurrent runs")
}

func applyOverrides(cmd *cobra.Command, conf *hh.Config) (err error) {
	flags := cmd.Flags()
	if flags.Changed("method") {
		name, _ := flags.GetString("method")
		if conf.Settings.Method, err = integrator.ParseMethod(name); err != nil {
			return err
		}
	}
	if flags.Changed("step") {
		conf.Settings.StepSize, _ = flags.GetFloat64("step")
	}
	if flags.Changed("duration") {
		conf.Settings.Duration, _ = flags.GetFloat64("duration")
	}
	if flags.Changed("temperature") {
		conf.Params.Temperature, _ = flags.GetFloat64("temperature")
	}
	if flags.Changed("workers") {
		conf.Workers, _ = flags.GetInt("workers")
	}
	return conf.Settings.Validate()
}
