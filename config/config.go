// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables that override settings,
// ex: SYC_MINIMAL_HOMOLOGY=30
const EnvPrefix = "SYC"

// SettingsKey is the viper key of the optional settings file path
const SettingsKey = "settings"

// defaults are the settings used when neither a settings file, a flag nor
// an environment variable sets them
var defaults = map[string]interface{}{
	"minimal-homology":      40,
	"minimal-annealing":     20,
	"allowed-mismatches":    0,
	"allow-partial-overlap": false,
	"circular-only":         false,
	"max-candidates":        10000,
	"enzyme-db":             "",
	"batch-concurrency":     4,
	"verbose":               false,
}

// Config is the root-level settings struct and is a mix
// of settings available in a settings file and those
// available from the command line
type Config struct {
	// the shortest homology that joins fragments in Gibson assembly
	// and homologous recombination
	MinimalHomology int `mapstructure:"minimal-homology"`

	// the number of 3' primer bases that must anneal in PCR
	MinimalAnnealing int `mapstructure:"minimal-annealing"`

	// mismatches allowed in the annealing part of a primer
	AllowedMismatches int `mapstructure:"allowed-mismatches"`

	// whether overhangs may anneal over part of their length
	AllowPartialOverlap bool `mapstructure:"allow-partial-overlap"`

	// whether to only return circular assemblies
	CircularOnly bool `mapstructure:"circular-only"`

	// the most candidate assemblies a search may find before it gives up
	MaxCandidates int `mapstructure:"max-candidates"`

	// path to an enzyme table replacing the embedded one
	EnzymeDB string `mapstructure:"enzyme-db"`

	// the number of requests a batch runs at once
	BatchConcurrency int `mapstructure:"batch-concurrency"`

	// whether to log at debug level
	Verbose bool `mapstructure:"verbose"`
}

// Setup registers the defaults and environment overrides on a viper instance.
func Setup(v *viper.Viper) {
	for k, d := range defaults {
		v.SetDefault(k, d)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// New returns a new Config struct populated by Viper settings: defaults,
// then the settings file at the "settings" key if one is set, then
// environment variables and bound command line flags.
func New(v *viper.Viper) (*Config, error) {
	Setup(v)

	if path := v.GetString(SettingsKey); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read settings file %s", path)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.Wrap(err, "unable to decode settings")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks that numeric settings are in range.
func (c *Config) Validate() error {
	switch {
	case c.MinimalHomology <= 0:
		return errors.Errorf("minimal-homology must be positive, got %d", c.MinimalHomology)
	case c.MinimalAnnealing <= 0:
		return errors.Errorf("minimal-annealing must be positive, got %d", c.MinimalAnnealing)
	case c.AllowedMismatches < 0:
		return errors.Errorf("allowed-mismatches can't be negative, got %d", c.AllowedMismatches)
	case c.MaxCandidates < 0:
		return errors.Errorf("max-candidates can't be negative, got %d", c.MaxCandidates)
	case c.BatchConcurrency <= 0:
		return errors.Errorf("batch-concurrency must be positive, got %d", c.BatchConcurrency)
	}
	return nil
}
