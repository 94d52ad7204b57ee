// Package config provides the configuration schema and loader for the fart
// command and its HTTP service.
package config

import (
	"github.com/cwbudde/algo-fart/dsp/core"
	"github.com/cwbudde/algo-fart/fart"
)

// LogLevel controls log verbosity.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Config is the root configuration structure.
type Config struct {
	LogLevel   LogLevel `yaml:"log_level"`
	SampleRate float64  `yaml:"sample_rate"`

	// Seed makes synthesis reproducible. Zero seeds from the clock.
	Seed int64 `yaml:"seed"`

	// Preset selects a randomized preset instead of Defaults. Empty means
	// Defaults are used as given.
	Preset string `yaml:"preset"`

	// Defaults are the parameters used when no preset is selected. Fields
	// omitted from the file keep their built-in defaults.
	Defaults fart.Params `yaml:"defaults"`

	Server  ServerConfig  `yaml:"server"`
	Metrics MetricsConfig `yaml:"metrics"`
	Output  OutputConfig  `yaml:"output"`
}

// ServerConfig configures the HTTP render service.
type ServerConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// OutputConfig configures file export.
type OutputConfig struct {
	// Dir receives timestamped WAV files when no explicit path is given.
	Dir string `yaml:"dir"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel:   LogInfo,
		SampleRate: core.DefaultSampleRate,
		Defaults:   fart.DefaultParams(),
		Server:     ServerConfig{ListenAddr: ":8080"},
		Metrics:    MetricsConfig{Enabled: true},
		Output:     OutputConfig{Dir: "."},
	}
}
