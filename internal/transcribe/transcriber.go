// Package transcribe provides speech-to-text for the conversion
// pipeline.
//
// The only backend today is a stub that emits a fixed transcript; a
// real speech model takes its place once integrated.
package transcribe

import "github.com/dexent-ai/dexent-audio/internal/audio"

// Transcriber converts an audio clip to text.
type Transcriber interface {
	// Transcribe converts a clip to text.
	Transcribe(clip *audio.Clip) (string, error)
	// Close releases backend resources.
	Close() error
}
