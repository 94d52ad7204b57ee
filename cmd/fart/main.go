// Command fart synthesizes comedic flatulence sound effects.
//
// Usage:
//
//	fart [flags]
//
// Without -play or -serve it renders one sound to a timestamped WAV file in
// the configured output directory.
//
// Examples:
//
//	fart -preset squeaky -play
//	fart -duration 2 -wetness 0.9 -out wet.wav
//	fart -preset quick -count 8 -seed 42 -analyze
//	fart -interactive -preset long
//	fart -serve -config fart.yaml
//	fart -list
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/cwbudde/algo-fart/dsp/filter/biquad"
	"github.com/cwbudde/algo-fart/fart"
	"github.com/cwbudde/algo-fart/internal/config"
	"github.com/cwbudde/algo-fart/internal/observe"
	"github.com/cwbudde/algo-fart/internal/speaker"
	"github.com/cwbudde/algo-fart/playback"
)

// newHost opens the audio device. Tests replace it.
var newHost = func(sampleRate int) (playback.Host, error) {
	return speaker.New(sampleRate)
}

type options struct {
	configPath  string
	preset      string
	seed        int64
	out         string
	count       int
	sampleRate  float64
	logLevel    string
	play        bool
	analyze     bool
	serve       bool
	interactive bool
	list        bool

	// set records which flags were given explicitly.
	set map[string]bool

	params fart.Params
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if opts.list {
		printPresets(stdout)
		return 0
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "fart: %v\n", err)
		return 1
	}

	level, err := observe.ParseLevel(string(cfg.LogLevel))
	if err != nil {
		fmt.Fprintf(stderr, "fart: %v\n", err)
		return 1
	}
	logger := observe.NewLogger(stderr, level)
	slog.SetDefault(logger)
	logger.Debug("starting", "sample_rate", cfg.SampleRate, "filter_kernel", biquad.KernelName())

	app := &app{
		cfg:       cfg,
		opts:      opts,
		overrides: paramOverrides(opts),
		logger:    logger,
		metrics:   observe.DefaultMetrics(),
		stdin:     stdin,
		stdout:    stdout,
	}

	switch {
	case opts.serve:
		err = app.serve(ctx)
	case opts.interactive:
		err = app.interactiveLoop(ctx)
	default:
		err = app.batch(ctx)
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("fart failed", "err", err)
		return 1
	}
	return 0
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{params: fart.DefaultParams(), set: map[string]bool{}}

	fs := flag.NewFlagSet("fart", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.configPath, "config", "", "path to a YAML configuration file")
	fs.StringVar(&opts.preset, "preset", "", "randomized preset: quick, long, wet, squeaky")
	fs.Int64Var(&opts.seed, "seed", 0, "random seed for reproducible output (0 seeds from the clock)")
	fs.StringVar(&opts.out, "out", "", "output WAV path; with -count > 1 an index is appended")
	fs.IntVar(&opts.count, "count", 1, "number of sounds to render")
	fs.Float64Var(&opts.sampleRate, "sample-rate", 0, "sample rate in Hz (default from config, 44100)")
	fs.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	fs.BoolVar(&opts.play, "play", false, "play each sound on the default audio device")
	fs.BoolVar(&opts.analyze, "analyze", false, "print level and spectrum statistics for each sound")
	fs.BoolVar(&opts.serve, "serve", false, "run the HTTP render service")
	fs.BoolVar(&opts.interactive, "interactive", false, "play a new sound each time Enter is pressed")
	fs.BoolVar(&opts.list, "list", false, "list presets and exit")

	fs.Float64Var(&opts.params.Duration, "duration", fart.DefaultDuration, "duration in seconds")
	fs.Float64Var(&opts.params.Wetness, "wetness", fart.DefaultWetness, "noise blend: 0 brown, 1 white")
	fs.Float64Var(&opts.params.Intensity, "intensity", fart.DefaultIntensity, "peak gain in [0,1]")
	fs.Float64Var(&opts.params.Frequency, "frequency", fart.DefaultFrequency, "filter center frequency in Hz")
	fs.Float64Var(&opts.params.Bubbliness, "bubbliness", fart.DefaultBubbliness, "number of bubble events")
	fs.Float64Var(&opts.params.Suddenness, "suddenness", fart.DefaultSuddenness, "attack time in seconds")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: fart [flags]\n\n")
		fmt.Fprintf(stderr, "Synthesizes comedic flatulence sound effects.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  fart -preset squeaky -play\n")
		fmt.Fprintf(stderr, "  fart -duration 2 -wetness 0.9 -out wet.wav\n")
		fmt.Fprintf(stderr, "  fart -preset quick -count 8 -seed 42 -analyze\n")
		fmt.Fprintf(stderr, "  fart -serve -config fart.yaml\n")
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "fart: unexpected arguments: %v\n", fs.Args())
		fs.Usage()
		return nil, errors.New("unexpected arguments")
	}
	if opts.count < 1 {
		fmt.Fprintf(stderr, "fart: -count must be >= 1: %d\n", opts.count)
		return nil, errors.New("invalid count")
	}

	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })

	return opts, nil
}

// loadConfig reads the config file, if any, and applies explicit flags on
// top of it. Parameter flags replace the defaults unless a preset is chosen
// for rendering; then they override each preset draw and are validated
// against it at synthesis time.
func loadConfig(opts *options) (*config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		cfg, err = config.Load(opts.configPath)
		if err != nil {
			return nil, err
		}
	}

	if opts.set["log-level"] {
		cfg.LogLevel = config.LogLevel(opts.logLevel)
	}
	if opts.set["sample-rate"] {
		cfg.SampleRate = opts.sampleRate
	}
	if opts.set["seed"] {
		cfg.Seed = opts.seed
	}
	if opts.set["preset"] {
		cfg.Preset = opts.preset
	}

	if cfg.Preset == "" || opts.serve {
		for _, o := range paramOverrides(opts) {
			o(&cfg.Defaults)
		}
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// paramOverrides returns the parameter flags given explicitly, in a fixed
// order.
func paramOverrides(opts *options) []fart.ParamOption {
	flags := []struct {
		name string
		opt  fart.ParamOption
	}{
		{"duration", fart.WithDuration(opts.params.Duration)},
		{"wetness", fart.WithWetness(opts.params.Wetness)},
		{"intensity", fart.WithIntensity(opts.params.Intensity)},
		{"frequency", fart.WithFrequency(opts.params.Frequency)},
		{"bubbliness", fart.WithBubbliness(opts.params.Bubbliness)},
		{"suddenness", fart.WithSuddenness(opts.params.Suddenness)},
	}

	var out []fart.ParamOption
	for _, f := range flags {
		if opts.set[f.name] {
			out = append(out, f.opt)
		}
	}
	return out
}
