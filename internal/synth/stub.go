package synth

import (
	"log/slog"

	"github.com/dexent-ai/dexent-audio/internal/accent"
	"github.com/dexent-ai/dexent-audio/internal/audio"
	"github.com/dexent-ai/dexent-audio/internal/embedding"
)

// StubSynthesizer renders fixed-length silence for every request.
type StubSynthesizer struct {
	log *slog.Logger
}

// NewStubSynthesizer creates a synthesizer that produces placeholder
// clips.
func NewStubSynthesizer(logger *slog.Logger) *StubSynthesizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &StubSynthesizer{log: logger.With("component", "synth.stub")}
}

// Synthesize returns Duration of silence at SampleRate regardless of
// the inputs.
func (s *StubSynthesizer) Synthesize(text string, speaker embedding.Vector, target accent.Accent) (*audio.Clip, error) {
	s.log.Debug("rendered placeholder clip",
		"accent", target,
		"text_len", len(text),
		"rate", SampleRate,
		"duration", Duration,
	)
	return audio.Silence(Duration, SampleRate), nil
}

// Close implements the Synthesizer interface.
func (s *StubSynthesizer) Close() error {
	return nil
}
