package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-fart/fart"
	"github.com/cwbudde/algo-fart/internal/config"
)

const sampleYAML = `
log_level: debug
sample_rate: 48000
seed: 42
preset: squeaky
defaults:
  duration: 2
  frequency: 180
server:
  listen_addr: 127.0.0.1:9000
metrics:
  enabled: false
output:
  dir: renders
`

func TestLoadFromReader_Valid(t *testing.T) {
	cfg, err := config.LoadFromReader(strings.NewReader(sampleYAML))
	require.NoError(t, err)

	require.Equal(t, config.LogDebug, cfg.LogLevel)
	require.Equal(t, 48000.0, cfg.SampleRate)
	require.EqualValues(t, 42, cfg.Seed)
	require.Equal(t, "squeaky", cfg.Preset)
	require.Equal(t, "127.0.0.1:9000", cfg.Server.ListenAddr)
	require.False(t, cfg.Metrics.Enabled)
	require.Equal(t, "renders", cfg.Output.Dir)

	want := fart.NewParams(fart.WithDuration(2), fart.WithFrequency(180))
	require.Equal(t, want, cfg.Defaults, "omitted defaults keep built-in values")
}

func TestLoadFromReader_EmptyIsDefault(t *testing.T) {
	for _, in := range []string{"", "{}"} {
		cfg, err := config.LoadFromReader(strings.NewReader(in))
		require.NoError(t, err, "input %q", in)
		require.Equal(t, config.Default(), cfg)
	}
}

func TestLoadFromReader_UnknownField(t *testing.T) {
	_, err := config.LoadFromReader(strings.NewReader("volume: 11\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "volume")
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	in := `
log_level: verbose
sample_rate: -1
preset: thunder
defaults:
  wetness: 2
  suddenness: 5
output:
  dir: ""
`
	_, err := config.LoadFromReader(strings.NewReader(in))
	require.Error(t, err)

	msg := err.Error()
	for _, want := range []string{"log_level", "sample_rate", "preset", "defaults", "wetness", "suddenness", "output.dir"} {
		require.Contains(t, msg, want)
	}
	require.ErrorIs(t, err, fart.ErrInvalidParameter)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fart.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seed: 7\n"), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.EqualValues(t, 7, cfg.Seed)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "config: open")
}

func TestLogLevelIsValid(t *testing.T) {
	require.True(t, config.LogWarn.IsValid())
	require.False(t, config.LogLevel("trace").IsValid())
}
