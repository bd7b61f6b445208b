package transcribe

import (
	"log/slog"

	"github.com/dexent-ai/dexent-audio/internal/audio"
)

// PlaceholderTranscript is the fixed transcript the stub produces for
// every input.
const PlaceholderTranscript = "This is a sample transcription."

// StubTranscriber returns the same transcript for every clip.
type StubTranscriber struct {
	log *slog.Logger
}

// NewStubTranscriber creates a transcriber that produces placeholder
// transcripts.
func NewStubTranscriber(logger *slog.Logger) *StubTranscriber {
	if logger == nil {
		logger = slog.Default()
	}
	return &StubTranscriber{log: logger.With("component", "transcribe.stub")}
}

// Transcribe returns PlaceholderTranscript regardless of the input.
func (t *StubTranscriber) Transcribe(clip *audio.Clip) (string, error) {
	t.log.Debug("produced placeholder transcript", "input", clip.Duration())
	return PlaceholderTranscript, nil
}

// Close implements the Transcriber interface.
func (t *StubTranscriber) Close() error {
	return nil
}
