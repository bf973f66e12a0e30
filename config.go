package hh

import (
	"fmt"
	"os"
	"strings"

	"github.com/sbl-neuro/hh/integrator"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// ConfigEnv is the environment variable naming the directory of hh.toml.
const ConfigEnv = "HH_CONFIG"

// ValidationConfig stores the settings of the all-or-nothing verification.
type ValidationConfig struct {
	Amplitudes     []float64
	Onset, Width   float64
	SpikeThreshold float64
	PeakTolerance  float64
}

// Config stores everything needed to run the simulations, experiments and verification.
type Config struct {
	Params       Parameters
	Stimulus     Pulse
	Settings     integrator.Settings
	Temperatures []float64
	APThreshold  float64
	Validation   ValidationConfig
	Workers      int
}

// DefaultConfig returns the configuration used when no file is provided.
func DefaultConfig() Config {
	return Config{
		Params:       DefaultParameters(),
		Stimulus:     Pulse{Onset: 1, Width: 1, Amplitude: 20},
		Settings:     integrator.Settings{Method: integrator.RK4, StepSize: 0.01, Duration: 30},
		Temperatures: []float64{6.3, 18, 30},
		APThreshold:  DefaultAPThreshold,
		Validation: ValidationConfig{
			Amplitudes:     []float64{0, 2, 5, 10, 20},
			Onset:          DefaultPulseOnset,
			Width:          DefaultPulseWidth,
			SpikeThreshold: DefaultSpikeThreshold,
			PeakTolerance:  DefaultPeakTolerance,
		},
		Workers: 1,
	}
}

// Validator returns the validator described by this configuration.
func (c Config) Validator() *Validator {
	v := NewValidator(c.Params, c.Validation.Amplitudes, c.Settings)
	v.Onset, v.Width = c.Validation.Onset, c.Validation.Width
	v.SpikeThreshold, v.PeakTolerance = c.Validation.SpikeThreshold, c.Validation.PeakTolerance
	return v
}

// TemperatureExperiment returns the temperature experiment described by this configuration.
func (c Config) TemperatureExperiment() *TemperatureExperiment {
	e := NewTemperatureExperiment(c.Params, c.Stimulus, c.Temperatures, c.Settings)
	e.Threshold = c.APThreshold
	e.Workers = c.Workers
	return e
}

// LoadConfig reads hh.toml (or any other extension supported by viper) from dir. If dir is empty,
// the directory is read from the HH_CONFIG environment variable.
func LoadConfig(dir string) (Config, error) {
	if dir == "" {
		dir = os.Getenv(ConfigEnv)
	}
	if dir == "" {
		return Config{}, fmt.Errorf("%w: environment variable `%s` is missing or empty", ErrConfig, ConfigEnv)
	}
	v := viper.New()
	v.SetConfigName("hh")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("%w: %s/hh.toml: %s", ErrConfig, dir, err)
	}
	return configFromViper(v)
}

// LoadConfigFile reads the configuration from the provided file.
func LoadConfigFile(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("%w: %s: %s", ErrConfig, path, err)
	}
	return configFromViper(v)
}

func configFromViper(v *viper.Viper) (conf Config, err error) {
	conf = DefaultConfig()

	// [model] keys are parameter names, case insensitive.
	for key := range v.GetStringMap("model") {
		val, cerr := cast.ToFloat64E(v.Get("model." + key))
		if cerr != nil {
			return conf, fmt.Errorf("%w: model.%s: %s", ErrConfig, key, cerr)
		}
		if conf.Params, err = conf.Params.With(key, val); err != nil {
			return conf, err
		}
	}
	if err = conf.Params.Validate(); err != nil {
		return conf, err
	}

	floatKeys := []struct {
		key string
		dst *float64
	}{
		{"stimulus.onset", &conf.Stimulus.Onset},
		{"stimulus.width", &conf.Stimulus.Width},
		{"stimulus.amplitude", &conf.Stimulus.Amplitude},
		{"integration.step_size", &conf.Settings.StepSize},
		{"integration.duration", &conf.Settings.Duration},
		{"temperature.threshold", &conf.APThreshold},
		{"validation.onset", &conf.Validation.Onset},
		{"validation.width", &conf.Validation.Width},
		{"validation.spike_threshold", &conf.Validation.SpikeThreshold},
		{"validation.peak_tolerance", &conf.Validation.PeakTolerance},
	}
	for _, fk := range floatKeys {
		if !v.IsSet(fk.key) {
			continue
		}
		if *fk.dst, err = cast.ToFloat64E(v.Get(fk.key)); err != nil {
			return conf, fmt.Errorf("%w: %s: %s", ErrConfig, fk.key, err)
		}
	}
	if v.IsSet("integration.method") {
		if conf.Settings.Method, err = integrator.ParseMethod(v.GetString("integration.method")); err != nil {
			return conf, err
		}
	}
	if err = conf.Settings.Validate(); err != nil {
		return conf, err
	}
	if v.IsSet("temperature.values") {
		if conf.Temperatures, err = floatSlice(v, "temperature.values"); err != nil {
			return conf, err
		}
	}
	if v.IsSet("validation.amplitudes") {
		if conf.Validation.Amplitudes, err = floatSlice(v, "validation.amplitudes"); err != nil {
			return conf, err
		}
	}
	if v.IsSet("sweep.workers") {
		conf.Workers = v.GetInt("sweep.workers")
	}
	return conf, nil
}

// floatSlice reads a list of numbers, TOML arrays mixing integers and floats included.
func floatSlice(v *viper.Viper, key string) ([]float64, error) {
	raw, err := cast.ToSliceE(v.Get(key))
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a list of numbers: %s", ErrConfig, key, err)
	}
	vals := make([]float64, len(raw))
	for i, item := range raw {
		if vals[i], err = cast.ToFloat64E(item); err != nil {
			return nil, fmt.Errorf("%w: %s[%d]: %s", ErrConfig, key, i, strings.TrimSpace(err.Error()))
		}
	}
	return vals, nil
}
