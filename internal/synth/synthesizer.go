// Package synth renders converted speech for the pipeline output.
//
// The only backend today is a stub that renders fixed-length silence;
// a YourTTS-style voice synthesizer takes its place once integrated.
package synth

import (
	"time"

	"github.com/dexent-ai/dexent-audio/internal/accent"
	"github.com/dexent-ai/dexent-audio/internal/audio"
	"github.com/dexent-ai/dexent-audio/internal/embedding"
)

// SampleRate is the output sample rate in Hz.
const SampleRate = 24000

// Duration is the fixed length of stub output clips.
const Duration = time.Second

// Synthesizer renders speech in a target accent.
type Synthesizer interface {
	// Synthesize renders text spoken with the given speaker embedding
	// and target accent.
	Synthesize(text string, speaker embedding.Vector, target accent.Accent) (*audio.Clip, error)
	// Close releases backend resources.
	Close() error
}
