package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-fart/fart"
	"github.com/cwbudde/algo-fart/internal/config"
	"github.com/cwbudde/algo-fart/internal/observe"
	"github.com/cwbudde/algo-fart/internal/server"
	"github.com/cwbudde/algo-fart/internal/wavfile"
	"github.com/cwbudde/algo-fart/playback"
)

// version is reported in telemetry.
var version = "dev"

type app struct {
	cfg       *config.Config
	opts      *options
	overrides []fart.ParamOption
	logger    *slog.Logger
	metrics   *observe.Metrics
	stdin     io.Reader
	stdout    io.Writer

	now func() time.Time
}

// rendered is one synthesized and rendered sound.
type rendered struct {
	sound   *fart.Sound
	samples []float64
	path    string
}

func (a *app) clock() time.Time {
	if a.now != nil {
		return a.now()
	}
	return time.Now()
}

// baseSeed returns the configured seed, or a clock seed when none is set.
func (a *app) baseSeed() int64 {
	if a.cfg.Seed != 0 {
		return a.cfg.Seed
	}
	return a.clock().UnixNano()
}

func (a *app) newSynth(seed int64) (*fart.Synthesizer, error) {
	return fart.New(
		fart.WithSampleRate(a.cfg.SampleRate),
		fart.WithSeed(seed),
		fart.WithLogger(a.logger),
		fart.WithMetrics(a.metrics),
	)
}

// synthesize draws one sound: the preset with explicit flags on top, or the
// configured defaults.
func (a *app) synthesize(ctx context.Context, synth *fart.Synthesizer) (*fart.Sound, error) {
	if a.cfg.Preset == "" {
		return synth.Synthesize(ctx, a.cfg.Defaults)
	}

	kind, err := fart.ParsePreset(a.cfg.Preset)
	if err != nil {
		return nil, err
	}
	return synth.SynthesizePreset(ctx, kind, a.overrides...)
}

// renderBatch renders count sounds concurrently. Sound i uses seed base+i,
// so a seeded batch is reproducible regardless of scheduling.
func (a *app) renderBatch(ctx context.Context, count int) ([]rendered, error) {
	base := a.baseSeed()
	out := make([]rendered, count)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i := range count {
		g.Go(func() error {
			synth, err := a.newSynth(base + int64(i))
			if err != nil {
				return err
			}
			sound, err := a.synthesize(gctx, synth)
			if err != nil {
				return fmt.Errorf("sound %d: %w", i+1, err)
			}
			samples, err := sound.Render()
			if err != nil {
				return fmt.Errorf("sound %d: render: %w", i+1, err)
			}
			out[i] = rendered{sound: sound, samples: samples}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// outputPath names the file for sound i of count.
func (a *app) outputPath(i, count int, stamp time.Time) string {
	if a.opts.out != "" {
		if count == 1 {
			return a.opts.out
		}
		ext := filepath.Ext(a.opts.out)
		return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(a.opts.out, ext), i+1, ext)
	}

	name := wavfile.TimestampedName(stamp)
	if count > 1 {
		name = fmt.Sprintf("%s-%d.wav", strings.TrimSuffix(name, ".wav"), i+1)
	}
	return filepath.Join(a.cfg.Output.Dir, name)
}

func (a *app) write(r *rendered) error {
	rate := int(math.Round(r.sound.SampleRate))
	if err := wavfile.WriteFile(r.path, r.samples, rate); err != nil {
		return err
	}
	a.logger.Info("wrote sound", "path", r.path, "preset", string(r.sound.Preset), "duration", r.sound.Duration())
	return nil
}

func (a *app) batch(ctx context.Context) error {
	sounds, err := a.renderBatch(ctx, a.opts.count)
	if err != nil {
		return err
	}

	stamp := a.clock()
	for i := range sounds {
		sounds[i].path = a.outputPath(i, len(sounds), stamp)
		if err := a.write(&sounds[i]); err != nil {
			return err
		}
	}

	if a.opts.analyze {
		if err := printAnalysis(a.stdout, sounds); err != nil {
			return err
		}
	}

	if !a.opts.play {
		return nil
	}

	asm, err := a.assembler()
	if err != nil {
		return err
	}
	for _, r := range sounds {
		if err := a.playAndWait(ctx, asm, r.sound); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) assembler() (*playback.Assembler, error) {
	host, err := newHost(int(math.Round(a.cfg.SampleRate)))
	if err != nil {
		return nil, err
	}
	return playback.NewAssembler(host,
		playback.WithLogger(a.logger),
		playback.WithMetrics(a.metrics),
	), nil
}

func (a *app) playAndWait(ctx context.Context, asm *playback.Assembler, sound *fart.Sound) error {
	v, err := asm.Play(ctx, sound)
	if err != nil {
		return err
	}

	select {
	case <-v.Done():
		return v.Err()
	case <-ctx.Done():
		if err := v.Release(); err != nil {
			a.logger.Warn("release on shutdown", "err", err)
		}
		return ctx.Err()
	}
}

// interactiveLoop plays and saves a fresh sound each time a line is read,
// until "q" or end of input. Files go to the output directory; -out is
// ignored.
func (a *app) interactiveLoop(ctx context.Context) error {
	synth, err := a.newSynth(a.baseSeed())
	if err != nil {
		return err
	}
	asm, err := a.assembler()
	if err != nil {
		return err
	}

	lines := bufio.NewScanner(a.stdin)
	for n := 0; ; {
		fmt.Fprint(a.stdout, "Press Enter to fart (q to quit): ")
		if !lines.Scan() {
			fmt.Fprintln(a.stdout)
			return lines.Err()
		}
		if strings.EqualFold(strings.TrimSpace(lines.Text()), "q") {
			return nil
		}

		sound, err := a.synthesize(ctx, synth)
		if err != nil {
			return err
		}
		samples, err := sound.Render()
		if err != nil {
			return err
		}

		n++
		name := strings.TrimSuffix(wavfile.TimestampedName(a.clock()), ".wav")
		r := rendered{
			sound:   sound,
			samples: samples,
			path:    filepath.Join(a.cfg.Output.Dir, fmt.Sprintf("%s-%d.wav", name, n)),
		}
		if err := a.write(&r); err != nil {
			return err
		}

		if err := a.playAndWait(ctx, asm, sound); err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "%s (%.2fs) saved to %s\n", describe(sound), sound.Duration(), r.path)
	}
}

func (a *app) serve(ctx context.Context) error {
	opts := []server.Option{
		server.WithLogger(a.logger),
		server.WithDefaults(a.cfg.Defaults),
		server.WithSynthOptions(fart.WithSampleRate(a.cfg.SampleRate)),
	}
	if a.cfg.Seed != 0 {
		opts = append(opts, server.WithSynthOptions(fart.WithSeed(a.cfg.Seed)))
	}

	if a.cfg.Metrics.Enabled {
		shutdown, err := observe.InitProvider(ctx, observe.ProviderConfig{ServiceVersion: version})
		if err != nil {
			return fmt.Errorf("init metrics: %w", err)
		}
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(sctx); err != nil {
				a.logger.Warn("metrics shutdown", "err", err)
			}
		}()
		opts = append(opts,
			server.WithMetrics(a.metrics),
			server.WithMetricsHandler(promhttp.Handler()),
		)
	}

	srv, err := server.New(opts...)
	if err != nil {
		return err
	}

	err = server.ListenAndServe(ctx, a.cfg.Server.ListenAddr, srv.Handler(), a.logger)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func describe(s *fart.Sound) string {
	if s.Preset == fart.Custom {
		return "custom fart"
	}
	return string(s.Preset) + " fart"
}
