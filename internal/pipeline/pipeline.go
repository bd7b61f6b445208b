// Package pipeline chains the conversion stages: load the input WAV,
// transcribe it, extract a speaker embedding, synthesize speech in the
// target accent, and write the output WAV.
package pipeline

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dexent-ai/dexent-audio/internal/accent"
	"github.com/dexent-ai/dexent-audio/internal/audio"
	"github.com/dexent-ai/dexent-audio/internal/embedding"
	"github.com/dexent-ai/dexent-audio/internal/synth"
	"github.com/dexent-ai/dexent-audio/internal/transcribe"
)

// Pipeline runs a WAV file through the conversion stages in order.
type Pipeline struct {
	transcriber transcribe.Transcriber
	extractor   embedding.Extractor
	synthesizer synth.Synthesizer
	log         *slog.Logger
}

// New assembles a pipeline from its stages.
func New(t transcribe.Transcriber, e embedding.Extractor, s synth.Synthesizer, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		transcriber: t,
		extractor:   e,
		synthesizer: s,
		log:         logger.With("component", "pipeline"),
	}
}

// Result summarizes one conversion run.
type Result struct {
	RunID          string
	Transcript     string
	InputDuration  time.Duration
	OutputDuration time.Duration
	Elapsed        time.Duration
}

// Convert reads inputPath, runs the stages in order, and writes the
// converted clip to outputPath. No output file is created when an
// earlier stage fails.
func (p *Pipeline) Convert(inputPath string, target accent.Accent, outputPath string) (*Result, error) {
	runID := uuid.NewString()
	log := p.log.With("run_id", runID)
	start := time.Now()

	log.Info("conversion started", "input", inputPath, "accent", target, "output", outputPath)

	clip, err := audio.LoadWAV(inputPath)
	if err != nil {
		return nil, err
	}
	log.Debug("loaded input", "duration", clip.Duration(), "rate", clip.SampleRate)

	text, err := p.transcriber.Transcribe(clip)
	if err != nil {
		return nil, err
	}
	log.Debug("transcribed", "text", text)

	speaker, err := p.extractor.Extract(clip)
	if err != nil {
		return nil, err
	}
	log.Debug("extracted embedding", "dim", len(speaker))

	out, err := p.synthesizer.Synthesize(text, speaker, target)
	if err != nil {
		return nil, err
	}
	log.Debug("synthesized", "duration", out.Duration(), "rate", out.SampleRate)

	if err := audio.SaveWAV(outputPath, out); err != nil {
		return nil, err
	}

	elapsed := time.Since(start)
	log.Info("conversion finished",
		"transcript", text,
		"output_duration", out.Duration(),
		"elapsed", elapsed.Round(time.Millisecond),
	)

	return &Result{
		RunID:          runID,
		Transcript:     text,
		InputDuration:  clip.Duration(),
		OutputDuration: out.Duration(),
		Elapsed:        elapsed,
	}, nil
}

// Close releases stage resources. All stages are closed even when an
// earlier Close fails; the first error is returned.
func (p *Pipeline) Close() error {
	var first error
	if err := p.transcriber.Close(); err != nil && first == nil {
		first = err
	}
	if err := p.extractor.Close(); err != nil && first == nil {
		first = err
	}
	if err := p.synthesizer.Close(); err != nil && first == nil {
		first = err
	}
	return first
}
