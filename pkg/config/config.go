// Package config loads the qcomposer settings file.
package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"qcomposer/pkg/circuit"
	"qcomposer/pkg/exporter"
)

const (
	defaultPolicy       = "inclusive-span"
	defaultFormat       = "qiskit"
	defaultLogLevel     = "info"
	defaultRandomQubits = 5
	defaultRandomGates  = 20
)

// Config is the settings file.
type Config struct {
	Circuit CircuitConfig `yaml:"circuit"`
	Export  ExportConfig  `yaml:"export"`
	Random  RandomConfig  `yaml:"random"`
	Log     LogConfig     `yaml:"log"`
}

// CircuitConfig holds the builder settings.
type CircuitConfig struct {
	// Occupancy policy for circuits built from documents and imports:
	// inclusive-span or exact-set.
	Policy string `yaml:"policy"`
}

// ExportConfig holds the translation defaults.
type ExportConfig struct {
	// Framework used when none is given on the command line.
	Format string `yaml:"format"`
	// Omit the per gate comment lines.
	NoComments bool `yaml:"noComments"`
	// Drop measurements and barriers from the generated code.
	SkipNonUnitary bool `yaml:"skipNonUnitary"`
}

// RandomConfig holds the defaults of the random generator.
type RandomConfig struct {
	Qubits  int   `yaml:"qubits"`
	Gates   int   `yaml:"gates"`
	Seed    int64 `yaml:"seed"`
	Measure bool  `yaml:"measure"`
	Fill    bool  `yaml:"fill"`
}

// LogConfig holds the logging settings.
type LogConfig struct {
	// A logrus level name.
	Level string `yaml:"level"`
}

// WithDefaults returns a copy of the Config with any missing fields set to
// their default values.
func (c Config) WithDefaults() Config {
	cpy := c
	cpy.Circuit = c.Circuit.WithDefaults()
	cpy.Export = c.Export.WithDefaults()
	cpy.Random = c.Random.WithDefaults()
	cpy.Log = c.Log.WithDefaults()
	return cpy
}

// WithDefaults fills the empty CircuitConfig fields.
func (c CircuitConfig) WithDefaults() CircuitConfig {
	cpy := c
	if cpy.Policy == "" {
		cpy.Policy = defaultPolicy
	}
	return cpy
}

// WithDefaults fills the empty ExportConfig fields.
func (c ExportConfig) WithDefaults() ExportConfig {
	cpy := c
	if cpy.Format == "" {
		cpy.Format = defaultFormat
	}
	return cpy
}

// WithDefaults fills the empty RandomConfig fields.
func (c RandomConfig) WithDefaults() RandomConfig {
	cpy := c
	if cpy.Qubits == 0 {
		cpy.Qubits = defaultRandomQubits
	}
	if cpy.Gates == 0 {
		cpy.Gates = defaultRandomGates
	}
	return cpy
}

// WithDefaults fills the empty LogConfig fields.
func (c LogConfig) WithDefaults() LogConfig {
	cpy := c
	if cpy.Level == "" {
		cpy.Level = defaultLogLevel
	}
	return cpy
}

// OccupancyPolicy parses the configured policy.
func (c CircuitConfig) OccupancyPolicy() (circuit.OccupancyPolicy, error) {
	p, err := circuit.ParseOccupancyPolicy(c.Policy)
	return p, errors.Wrap(err, "circuit.policy")
}

// Options converts the export settings into translation options.
func (c ExportConfig) Options() exporter.Options {
	return exporter.Options{Comments: !c.NoComments, SkipNonUnitary: c.SkipNonUnitary}
}

// ParseLevel parses the configured log level.
func (c LogConfig) ParseLevel() (log.Level, error) {
	lvl, err := log.ParseLevel(c.Level)
	return lvl, errors.Wrap(err, "log.level")
}

// Validate checks the fields that name things.
func (c Config) Validate() error {
	if _, err := c.Circuit.OccupancyPolicy(); err != nil {
		return err
	}
	if _, err := exporter.Lookup(c.Export.Format); err != nil {
		return errors.Wrap(err, "export.format")
	}
	if _, err := c.Log.ParseLevel(); err != nil {
		return err
	}
	if c.Random.Qubits < 0 || c.Random.Gates < 0 {
		return errors.Errorf("random: negative qubits %d or gates %d", c.Random.Qubits, c.Random.Gates)
	}
	return nil
}

// DefaultPath is the settings file under the user configuration directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "qcomposer", "config.yaml")
}

// Load reads the settings at path. A missing file or an empty path yields
// the defaults.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			log.Debugf("no config at %s, using defaults", path)
		case err != nil:
			return nil, errors.Wrap(err, "read config")
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, errors.Wrapf(err, "parse config %s", path)
			}
		}
	}
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &cfg, nil
}

// Save writes the settings to path, creating its directory.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create config directory")
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "encode config")
	}
	return errors.Wrap(os.WriteFile(path, data, 0o644), "write config")
}
