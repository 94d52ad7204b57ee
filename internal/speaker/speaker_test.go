package speaker

import (
	"context"
	"encoding/binary"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-fart/dsp/core"
	"github.com/cwbudde/algo-fart/fart"
	"github.com/cwbudde/algo-fart/playback"
)

type fakePlayer struct {
	mu      sync.Mutex
	data    []byte
	playing bool
	closed  atomic.Int32
}

func (p *fakePlayer) Play()  { p.setPlaying(true) }
func (p *fakePlayer) Pause() { p.setPlaying(false) }

func (p *fakePlayer) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

func (p *fakePlayer) Close() error {
	p.closed.Add(1)
	return nil
}

func (p *fakePlayer) setPlaying(v bool) {
	p.mu.Lock()
	p.playing = v
	p.mu.Unlock()
}

func newFakeHost(t *testing.T, rate int) (*Host, chan *fakePlayer) {
	t.Helper()
	players := make(chan *fakePlayer, 1)
	h := newHost(rate, func(r io.Reader) player {
		data, err := io.ReadAll(r)
		require.NoError(t, err)
		p := &fakePlayer{data: data}
		players <- p
		return p
	})
	h.poll = time.Millisecond
	return h, players
}

func synth(t *testing.T, rate float64) *fart.Sound {
	t.Helper()
	s, err := fart.New(fart.WithSeed(3), fart.WithSampleRate(rate))
	require.NoError(t, err)
	sound, err := s.Synthesize(context.Background(), fart.NewParams(fart.WithDuration(0.25)))
	require.NoError(t, err)
	return sound
}

func TestStartPlaysRenderedPCM(t *testing.T) {
	h, players := newFakeHost(t, 8000)
	sound := synth(t, 8000)

	ended := make(chan struct{})
	handle, err := h.Start(context.Background(), sound, func() { close(ended) })
	require.NoError(t, err)

	p := <-players
	require.Len(t, p.data, 2*len(sound.Noise))
	require.True(t, p.IsPlaying())

	p.setPlaying(false)
	select {
	case <-ended:
	case <-time.After(2 * time.Second):
		t.Fatal("onEnded not called after player drained")
	}

	require.NoError(t, handle.Release())
	require.NoError(t, handle.Release())
	require.EqualValues(t, 1, p.closed.Load())
}

func TestWithAssembler(t *testing.T) {
	h, players := newFakeHost(t, 8000)
	asm := playback.NewAssembler(h)

	v, err := asm.Play(context.Background(), synth(t, 8000))
	require.NoError(t, err)

	p := <-players
	p.setPlaying(false)

	select {
	case <-v.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("voice not released")
	}
	require.Equal(t, playback.ReasonEnded, v.Reason())
	require.EqualValues(t, 1, p.closed.Load())
}

func TestStartRejectsRateMismatch(t *testing.T) {
	h, _ := newFakeHost(t, 48000)
	_, err := h.Start(context.Background(), synth(t, 8000), func() {})
	require.ErrorIs(t, err, core.ErrInvalidParameter)
}

func TestPCM16(t *testing.T) {
	b := pcm16([]float64{0, 1, -1, 2, 0.5})
	got := make([]int16, 5)
	for i := range got {
		got[i] = int16(binary.LittleEndian.Uint16(b[2*i:]))
	}
	require.Equal(t, []int16{0, 32767, -32767, 32767, 16383}, got)
}
