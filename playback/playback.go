// Package playback manages the lifetime of voices started on a host.
//
// A host turns a [fart.Sound] into audio and reports natural completion.
// Hosts are not trusted to always report it, so every voice also carries a
// timeout of its duration plus [CleanupGrace]. Whichever fires first releases
// the voice exactly once.
package playback

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cwbudde/algo-fart/fart"
)

// CleanupGrace is added to a sound's duration before the cleanup timeout
// fires.
const CleanupGrace = 500 * time.Millisecond

// Host starts sounds. onEnded may be called from any goroutine, including
// synchronously from within Start, and may be called more than once.
type Host interface {
	Start(ctx context.Context, sound *fart.Sound, onEnded func()) (Handle, error)
}

// Handle releases the host resources behind one started sound.
type Handle interface {
	Release() error
}

// Timer is the part of *time.Timer the assembler uses.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d. It matches time.AfterFunc.
type AfterFunc func(d time.Duration, f func()) Timer

// VoiceRecorder receives voice lifecycle metrics. *observe.Metrics
// satisfies it.
type VoiceRecorder interface {
	VoiceStarted(ctx context.Context)
	VoiceReleased(ctx context.Context)
}

type nopVoiceRecorder struct{}

func (nopVoiceRecorder) VoiceStarted(context.Context)  {}
func (nopVoiceRecorder) VoiceReleased(context.Context) {}

// Release reasons reported by [Voice.Reason].
const (
	ReasonEnded    = "ended"
	ReasonTimeout  = "timeout"
	ReasonReleased = "released"
)

// ErrNilSound is returned by Play for a nil sound.
var ErrNilSound = errors.New("playback: nil sound")

// Assembler starts sounds on a host and owns their cleanup.
type Assembler struct {
	host    Host
	after   AfterFunc
	logger  *slog.Logger
	metrics VoiceRecorder
}

// Option configures an [Assembler].
type Option func(*Assembler)

// WithAfterFunc replaces the timer source. Default: time.AfterFunc.
func WithAfterFunc(after AfterFunc) Option {
	return func(a *Assembler) {
		if after != nil {
			a.after = after
		}
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assembler) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithMetrics sets the voice metrics recorder.
func WithMetrics(m VoiceRecorder) Option {
	return func(a *Assembler) {
		if m != nil {
			a.metrics = m
		}
	}
}

// NewAssembler returns an Assembler that plays on host.
func NewAssembler(host Host, opts ...Option) *Assembler {
	a := &Assembler{
		host: host,
		after: func(d time.Duration, f func()) Timer {
			return time.AfterFunc(d, f)
		},
		logger:  slog.Default(),
		metrics: nopVoiceRecorder{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

// Play starts sound on the host and arms its cleanup timeout.
func (a *Assembler) Play(ctx context.Context, sound *fart.Sound) (*Voice, error) {
	if sound == nil {
		return nil, ErrNilSound
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	v := &Voice{
		sound: sound,
		done:  make(chan struct{}),
		asm:   a,
		ctx:   context.WithoutCancel(ctx),
	}

	h, err := a.host.Start(ctx, sound, func() { v.finish(ReasonEnded) })
	if err != nil {
		return nil, fmt.Errorf("playback: start: %w", err)
	}
	a.metrics.VoiceStarted(v.ctx)

	timeout := time.Duration(sound.Duration()*float64(time.Second)) + CleanupGrace

	v.mu.Lock()
	v.handle = h
	v.timer = a.after(timeout, func() { v.finish(ReasonTimeout) })
	pending := v.pending
	v.mu.Unlock()

	a.logger.Debug("voice started", "preset", string(sound.Preset), "duration", sound.Duration(), "timeout", timeout)

	if pending != "" {
		v.finish(pending)
	}

	return v, nil
}

// Voice is one playing sound.
type Voice struct {
	sound *fart.Sound
	asm   *Assembler
	ctx   context.Context

	mu      sync.Mutex
	handle  Handle
	timer   Timer
	pending string

	once   sync.Once
	done   chan struct{}
	reason string
	err    error
}

// Sound returns the sound being played.
func (v *Voice) Sound() *fart.Sound { return v.sound }

// Done is closed once the voice has been released.
func (v *Voice) Done() <-chan struct{} { return v.done }

// Reason reports what released the voice. It is empty until Done is closed.
func (v *Voice) Reason() string {
	select {
	case <-v.done:
		return v.reason
	default:
		return ""
	}
}

// Err returns the host release error, if any, after Done is closed.
func (v *Voice) Err() error {
	select {
	case <-v.done:
		return v.err
	default:
		return nil
	}
}

// Release stops the voice now. It is idempotent and returns the error of the
// first release.
func (v *Voice) Release() error {
	v.finish(ReasonReleased)
	<-v.done
	return v.err
}

func (v *Voice) finish(reason string) {
	v.mu.Lock()
	if v.handle == nil {
		// Host reported completion before Start returned.
		if v.pending == "" {
			v.pending = reason
		}
		v.mu.Unlock()
		return
	}
	h, t := v.handle, v.timer
	v.mu.Unlock()

	v.once.Do(func() {
		if t != nil {
			t.Stop()
		}
		v.reason = reason
		v.err = h.Release()
		v.asm.metrics.VoiceReleased(v.ctx)
		if v.err != nil {
			v.asm.logger.Warn("voice release failed", "reason", reason, "err", v.err)
		} else {
			v.asm.logger.Debug("voice released", "reason", reason)
		}
		close(v.done)
	})
}
