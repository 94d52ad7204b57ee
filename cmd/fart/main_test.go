package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-fart/fart"
	"github.com/cwbudde/algo-fart/internal/wavfile"
	"github.com/cwbudde/algo-fart/playback"
)

type nopHandle struct{}

func (nopHandle) Release() error { return nil }

type instantHost struct {
	started atomic.Int32
}

func (h *instantHost) Start(_ context.Context, _ *fart.Sound, onEnded func()) (playback.Handle, error) {
	h.started.Add(1)
	go onEnded()
	return nopHandle{}, nil
}

func useFakeHost(t *testing.T) *instantHost {
	t.Helper()
	host := &instantHost{}
	prev := newHost
	newHost = func(int) (playback.Host, error) { return host, nil }
	t.Cleanup(func() { newHost = prev })
	return host
}

func runCLI(t *testing.T, stdin string, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(context.Background(), args, strings.NewReader(stdin), &out, &errOut)
	return code, out.String(), errOut.String()
}

func decodeFile(t *testing.T, path string) ([]float64, int) {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	samples, sr, err := wavfile.Decode(f)
	require.NoError(t, err)
	return samples, sr
}

func TestList(t *testing.T) {
	code, out, _ := runCLI(t, "", "-list")
	require.Equal(t, 0, code)
	for _, name := range []string{"quick", "long", "wet", "squeaky"} {
		require.Contains(t, out, name)
	}
}

func TestRenderSingle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "one.wav")

	code, _, stderr := runCLI(t, "", "-out", path, "-seed", "1", "-sample-rate", "8000", "-duration", "0.3")
	require.Equal(t, 0, code, stderr)
	require.Contains(t, stderr, "wrote sound")

	samples, sr := decodeFile(t, path)
	require.Equal(t, 8000, sr)
	require.Len(t, samples, 2400)
}

func TestBatchIsReproducible(t *testing.T) {
	dir := t.TempDir()
	args := func(name string) []string {
		return []string{"-out", filepath.Join(dir, name), "-count", "3", "-seed", "9", "-preset", "quick", "-sample-rate", "8000"}
	}

	code, _, stderr := runCLI(t, "", args("a.wav")...)
	require.Equal(t, 0, code, stderr)
	code, _, stderr = runCLI(t, "", args("b.wav")...)
	require.Equal(t, 0, code, stderr)

	for i := 1; i <= 3; i++ {
		a, err := os.ReadFile(filepath.Join(dir, "a-"+strconv.Itoa(i)+".wav"))
		require.NoError(t, err)
		b, err := os.ReadFile(filepath.Join(dir, "b-"+strconv.Itoa(i)+".wav"))
		require.NoError(t, err)
		require.Equal(t, a, b, "sound %d differs between runs", i)
	}
}

func TestAnalyze(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.wav")

	code, out, stderr := runCLI(t, "", "-out", path, "-seed", "2", "-sample-rate", "8000", "-analyze")
	require.Equal(t, 0, code, stderr)
	require.Contains(t, out, "Centroid [Hz]")
	require.Contains(t, out, path)
}

func TestConfigFileAndTimestampedOutput(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "fart.yaml")
	cfgYAML := "seed: 7\nsample_rate: 8000\nlog_level: warn\noutput:\n  dir: " + dir + "\ndefaults:\n  duration: 0.4\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgYAML), 0o600))

	code, _, stderr := runCLI(t, "", "-config", cfgPath)
	require.Equal(t, 0, code, stderr)
	require.NotContains(t, stderr, "wrote sound", "warn level hides info logs")

	matches, err := filepath.Glob(filepath.Join(dir, "fart_*.wav"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	samples, _ := decodeFile(t, matches[0])
	require.Len(t, samples, 3200)
}

func TestFlagErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
	}{
		{"unknown flag", []string{"-volume", "11"}, 2},
		{"bad count", []string{"-count", "0"}, 2},
		{"stray argument", []string{"loud"}, 2},
		{"invalid wetness", []string{"-wetness", "2", "-out", "unused.wav"}, 1},
		{"unknown preset", []string{"-preset", "thunder"}, 1},
		{"bad log level", []string{"-log-level", "trace"}, 1},
		{"missing config", []string{"-config", "/nonexistent/fart.yaml"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, _ := runCLI(t, "", tt.args...)
			require.Equal(t, tt.code, code)
		})
	}
}

func TestPresetFlagOverridesDraw(t *testing.T) {
	path := filepath.Join(t.TempDir(), "long.wav")

	// 1.2 s of attack exceeds the 1 s default duration but fits every long draw.
	code, _, stderr := runCLI(t, "", "-out", path, "-seed", "3", "-sample-rate", "8000",
		"-preset", "long", "-suddenness", "1.2")
	require.Equal(t, 0, code, stderr)
	require.Contains(t, stderr, "preset=long")

	samples, _ := decodeFile(t, path)
	require.GreaterOrEqual(t, len(samples), 12000)
	require.Less(t, len(samples), 24000)

	code, _, _ = runCLI(t, "", "-out", path, "-preset", "quick", "-suddenness", "1.2")
	require.Equal(t, 1, code)
}

func TestPlay(t *testing.T) {
	host := useFakeHost(t)
	dir := t.TempDir()

	code, _, stderr := runCLI(t, "",
		"-out", filepath.Join(dir, "p.wav"), "-count", "2", "-play", "-seed", "4",
		"-sample-rate", "8000", "-duration", "0.2")
	require.Equal(t, 0, code, stderr)
	require.EqualValues(t, 2, host.started.Load())
}

func TestInteractive(t *testing.T) {
	host := useFakeHost(t)
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "fart.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("output:\n  dir: "+dir+"\n"), 0o600))

	code, out, stderr := runCLI(t, "\n\nq\n",
		"-config", cfgPath, "-interactive", "-preset", "squeaky", "-sample-rate", "8000", "-seed", "5")
	require.Equal(t, 0, code, stderr)
	require.EqualValues(t, 2, host.started.Load())
	require.Equal(t, 2, strings.Count(out, "squeaky fart"))

	matches, err := filepath.Glob(filepath.Join(dir, "fart_*.wav"))
	require.NoError(t, err)
	require.Len(t, matches, 2)
}
