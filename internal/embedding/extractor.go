// Package embedding produces speaker embeddings for voice conversion.
//
// The extractor slot is reserved for an ECAPA-TDNN speaker encoder.
// Until that model ships, the stub returns a fixed zero vector so the
// rest of the pipeline can run end to end.
package embedding

import (
	"log/slog"

	"github.com/dexent-ai/dexent-audio/internal/audio"
)

// Dim is the dimensionality of speaker embeddings.
const Dim = 192

// Vector is a speaker embedding.
type Vector []float32

// Extractor derives a speaker embedding from an audio clip.
type Extractor interface {
	// Extract produces an embedding of length Dim.
	Extract(clip *audio.Clip) (Vector, error)
	// Close releases extractor resources.
	Close() error
}

// StubExtractor returns a zero vector for every input.
type StubExtractor struct {
	log *slog.Logger
}

// NewStubExtractor creates an extractor that produces placeholder
// embeddings.
func NewStubExtractor(logger *slog.Logger) *StubExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &StubExtractor{log: logger.With("component", "embedding.stub")}
}

// Extract returns a zero vector of length Dim regardless of the input.
func (e *StubExtractor) Extract(clip *audio.Clip) (Vector, error) {
	e.log.Debug("extracted placeholder embedding", "dim", Dim, "input", clip.Duration())
	return make(Vector, Dim), nil
}

// Close implements the Extractor interface.
func (e *StubExtractor) Close() error {
	return nil
}
