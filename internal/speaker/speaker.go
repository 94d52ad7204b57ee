// Package speaker plays sounds on the default audio device through oto.
package speaker

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/cwbudde/algo-fart/dsp/core"
	"github.com/cwbudde/algo-fart/fart"
	"github.com/cwbudde/algo-fart/playback"
)

// DefaultPollInterval is how often a playing voice is checked for completion.
const DefaultPollInterval = 10 * time.Millisecond

type player interface {
	Play()
	Pause()
	IsPlaying() bool
	Close() error
}

// Host is a [playback.Host] backed by an oto context.
type Host struct {
	sampleRate int
	poll       time.Duration
	newPlayer  func(r io.Reader) player
}

// New opens the audio device at sampleRate. oto allows one context per
// process, so New must be called at most once.
func New(sampleRate int) (*Host, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("speaker: sample rate must be > 0: %d", sampleRate)
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, fmt.Errorf("speaker: open device: %w", err)
	}
	<-ready

	return newHost(sampleRate, func(r io.Reader) player { return ctx.NewPlayer(r) }), nil
}

func newHost(sampleRate int, newPlayer func(io.Reader) player) *Host {
	return &Host{
		sampleRate: sampleRate,
		poll:       DefaultPollInterval,
		newPlayer:  newPlayer,
	}
}

// SampleRate returns the device rate. Sounds must be synthesized at it.
func (h *Host) SampleRate() int { return h.sampleRate }

// Start renders sound and starts playing it. onEnded is called once the
// device has drained the voice.
func (h *Host) Start(ctx context.Context, sound *fart.Sound, onEnded func()) (playback.Handle, error) {
	if sound.SampleRate != float64(h.sampleRate) {
		return nil, fmt.Errorf("%w: sound rate %v does not match device rate %d",
			core.ErrInvalidParameter, sound.SampleRate, h.sampleRate)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	samples, err := sound.Render()
	if err != nil {
		return nil, fmt.Errorf("speaker: render: %w", err)
	}

	p := h.newPlayer(bytes.NewReader(pcm16(samples)))
	v := &voice{player: p, stop: make(chan struct{})}
	p.Play()

	go v.watch(h.poll, onEnded)

	return v, nil
}

type voice struct {
	player player
	stop   chan struct{}
	once   sync.Once
	err    error
}

func (v *voice) watch(interval time.Duration, onEnded func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-v.stop:
			return
		case <-ticker.C:
			if !v.player.IsPlaying() {
				onEnded()
				return
			}
		}
	}
}

// Release stops the voice and frees the player.
func (v *voice) Release() error {
	v.once.Do(func() {
		close(v.stop)
		v.player.Pause()
		v.err = v.player.Close()
	})
	return v.err
}

// pcm16 converts samples to signed 16-bit little-endian bytes.
func pcm16(samples []float64) []byte {
	out := make([]byte, 2*len(samples))
	for i, x := range samples {
		if math.IsNaN(x) {
			x = 0
		}
		binary.LittleEndian.PutUint16(out[2*i:], uint16(int16(core.Clamp(x, -1, 1)*math.MaxInt16)))
	}
	return out
}
