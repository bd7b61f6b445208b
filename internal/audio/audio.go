// Package audio provides the in-memory clip type shared by the pipeline
// stages and WAV file loading/saving on top of go-audio.
package audio

import (
	"fmt"
	"os"
	"time"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Clip holds decoded audio as mono float32 samples in [-1.0, 1.0].
// A clip is treated as immutable once loaded; stages that derive new
// audio allocate a new clip rather than rewriting Samples in place.
type Clip struct {
	Samples    []float32
	SampleRate int
}

// Duration returns the clip length derived from the sample count.
func (c *Clip) Duration() time.Duration {
	if c == nil || c.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(len(c.Samples)) / float64(c.SampleRate) * float64(time.Second))
}

// Silence returns a clip of all-zero samples covering d at the given rate.
func Silence(d time.Duration, sampleRate int) *Clip {
	n := int(float64(sampleRate) * d.Seconds())
	if n < 0 {
		n = 0
	}
	return &Clip{
		Samples:    make([]float32, n),
		SampleRate: sampleRate,
	}
}

// LoadWAV reads a PCM WAV file from disk. Samples are normalized to
// [-1.0, 1.0] and multi-channel audio is downmixed to mono by averaging
// the channels per frame.
func LoadWAV(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("audio: open %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("audio: decode wav %q: %w", path, err)
	}
	if buf == nil || buf.Format == nil {
		return nil, fmt.Errorf("audio: %q is not a valid wav file", path)
	}

	channels := buf.Format.NumChannels
	if channels < 1 {
		channels = 1
	}

	bits := buf.SourceBitDepth
	if bits <= 0 {
		bits = 16
	}
	scale := float32(int(1) << (bits - 1))

	frames := len(buf.Data) / channels
	samples := make([]float32, frames)
	for i := 0; i < frames; i++ {
		var sum float32
		for ch := 0; ch < channels; ch++ {
			sum += float32(buf.Data[i*channels+ch]) / scale
		}
		samples[i] = sum / float32(channels)
	}

	return &Clip{
		Samples:    samples,
		SampleRate: buf.Format.SampleRate,
	}, nil
}

// SaveWAV writes the clip to disk as a mono 16-bit PCM WAV file.
// Samples outside [-1.0, 1.0] are clamped before conversion.
func SaveWAV(path string, clip *Clip) error {
	if clip == nil || clip.SampleRate <= 0 {
		return fmt.Errorf("audio: cannot save empty clip to %q", path)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("audio: create %q: %w", path, err)
	}

	enc := wav.NewEncoder(f, clip.SampleRate, 16, 1, 1)
	buf := &gaudio.IntBuffer{
		Format: &gaudio.Format{
			NumChannels: 1,
			SampleRate:  clip.SampleRate,
		},
		Data:           make([]int, len(clip.Samples)),
		SourceBitDepth: 16,
	}
	for i, s := range clip.Samples {
		buf.Data[i] = int(clamp(s) * 32767)
	}

	if err := enc.Write(buf); err != nil {
		_ = f.Close()
		return fmt.Errorf("audio: encode wav %q: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("audio: finalize wav %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("audio: close %q: %w", path, err)
	}

	return nil
}

// clamp limits a sample to the [-1.0, 1.0] range.
func clamp(s float32) float32 {
	if s > 1.0 {
		return 1.0
	}
	if s < -1.0 {
		return -1.0
	}
	return s
}
