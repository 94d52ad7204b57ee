// Package wavfile writes rendered effects as 16-bit PCM mono WAV files.
package wavfile

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/orcaman/writerseeker"

	"github.com/cwbudde/algo-fart/dsp/core"
	"github.com/cwbudde/algo-fart/dsp/window"
)

const (
	// BitDepth is the PCM sample width in bits.
	BitDepth = 16
	// FadeDuration is the linear fade applied to the last samples, in seconds.
	FadeDuration = 0.002

	pcmFormat = 1
	fullScale = 32767
)

// Encode writes samples as a mono WAV stream. Samples are faded out over
// FadeDuration, clamped to [-1, 1] and truncated to 16 bits. The caller's
// slice is not modified.
func Encode(w io.WriteSeeker, samples []float64, sampleRate int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("wavfile: sample rate must be > 0: %d", sampleRate)
	}

	faded := make([]float64, len(samples))
	copy(faded, samples)
	window.FadeOut(faded, FadeDuration*float64(sampleRate))

	data := make([]int, len(faded))
	for i, x := range faded {
		if math.IsNaN(x) {
			x = 0
		}
		data[i] = int(core.Clamp(x, -1, 1) * fullScale)
	}

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: BitDepth,
	}

	enc := wav.NewEncoder(w, sampleRate, BitDepth, 1, pcmFormat)
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("wavfile: write samples: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("wavfile: finalize header: %w", err)
	}

	return nil
}

// Bytes encodes samples into an in-memory WAV file. The encoder seeks back
// to patch the chunk sizes, so it writes to a WriterSeeker.
func Bytes(samples []float64, sampleRate int) ([]byte, error) {
	ws := &writerseeker.WriterSeeker{}
	if err := Encode(ws, samples, sampleRate); err != nil {
		return nil, err
	}
	b, err := io.ReadAll(ws.Reader())
	if err != nil {
		return nil, fmt.Errorf("wavfile: read buffer: %w", err)
	}
	return b, nil
}

// WriteFile encodes samples into path, creating parent directories.
func WriteFile(path string, samples []float64, sampleRate int) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("wavfile: create dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("wavfile: create: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("wavfile: close: %w", cerr)
		}
	}()

	return Encode(f, samples, sampleRate)
}

// Decode reads a 16-bit mono WAV stream back into [-1, 1] samples.
func Decode(r io.ReadSeeker) ([]float64, int, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, 0, errors.New("wavfile: not a valid WAV stream")
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("wavfile: read samples: %w", err)
	}
	if dec.NumChans != 1 || dec.BitDepth != BitDepth {
		return nil, 0, fmt.Errorf("wavfile: want %d-bit mono, got %d-bit %d channels", BitDepth, dec.BitDepth, dec.NumChans)
	}

	out := make([]float64, len(buf.Data))
	for i, v := range buf.Data {
		out[i] = float64(v) / fullScale
	}

	return out, int(dec.SampleRate), nil
}

// TimestampedName returns the default export filename for t,
// e.g. fart_20261019_153000.wav.
func TimestampedName(t time.Time) string {
	return "fart_" + t.Format("20060102_150405") + ".wav"
}
