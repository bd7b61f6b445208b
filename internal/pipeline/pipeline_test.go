package pipeline

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dexent-ai/dexent-audio/internal/accent"
	"github.com/dexent-ai/dexent-audio/internal/audio"
	"github.com/dexent-ai/dexent-audio/internal/embedding"
	"github.com/dexent-ai/dexent-audio/internal/synth"
	"github.com/dexent-ai/dexent-audio/internal/transcribe"
)

func newTestPipeline(t *testing.T) *Pipeline {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	p := New(
		transcribe.NewStubTranscriber(logger),
		embedding.NewStubExtractor(logger),
		synth.NewStubSynthesizer(logger),
		logger,
	)
	t.Cleanup(func() { p.Close() })
	return p
}

// writeInputWAV writes a short 16kHz mono fixture whose content varies
// with seed.
func writeInputWAV(t *testing.T, path string, seed float32) {
	t.Helper()
	samples := make([]float32, 1600)
	for i := range samples {
		samples[i] = seed * float32(i%7) / 7
	}
	clip := &audio.Clip{Samples: samples, SampleRate: 16000}
	if err := audio.SaveWAV(path, clip); err != nil {
		t.Fatalf("failed to write input fixture: %v", err)
	}
}

func TestConvertWritesFixedSilence(t *testing.T) {
	tmpDir := t.TempDir()
	in := filepath.Join(tmpDir, "in.wav")
	out := filepath.Join(tmpDir, "out.wav")
	writeInputWAV(t, in, 0.5)

	p := newTestPipeline(t)
	res, err := p.Convert(in, accent.British, out)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	if res.RunID == "" {
		t.Error("Result.RunID should not be empty")
	}
	if res.Transcript != "This is a sample transcription." {
		t.Errorf("Result.Transcript = %q, want %q", res.Transcript, "This is a sample transcription.")
	}
	if res.InputDuration != 100*time.Millisecond {
		t.Errorf("Result.InputDuration = %v, want 100ms", res.InputDuration)
	}
	if res.OutputDuration != time.Second {
		t.Errorf("Result.OutputDuration = %v, want 1s", res.OutputDuration)
	}

	clip, err := audio.LoadWAV(out)
	if err != nil {
		t.Fatalf("LoadWAV(output) error = %v", err)
	}
	if clip.SampleRate != 24000 {
		t.Errorf("output SampleRate = %d, want 24000", clip.SampleRate)
	}
	if len(clip.Samples) != 24000 {
		t.Errorf("output has %d samples, want 24000", len(clip.Samples))
	}
	if clip.Duration() != time.Second {
		t.Errorf("output Duration() = %v, want 1s", clip.Duration())
	}
	for i, s := range clip.Samples {
		if s != 0 {
			t.Fatalf("output sample %d = %g, want 0 (silence)", i, s)
		}
	}
}

func TestConvertMissingInputWritesNothing(t *testing.T) {
	tmpDir := t.TempDir()
	in := filepath.Join(tmpDir, "missing.wav")
	out := filepath.Join(tmpDir, "out.wav")

	p := newTestPipeline(t)
	_, err := p.Convert(in, accent.American, out)
	if err == nil {
		t.Fatal("Convert() should fail for missing input")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Convert() error = %v, want fs.ErrNotExist", err)
	}

	if _, statErr := os.Stat(out); !errors.Is(statErr, fs.ErrNotExist) {
		t.Errorf("output file should not exist after failed conversion, stat err = %v", statErr)
	}
}

func TestConvertIdenticalOutputAcrossInputs(t *testing.T) {
	tmpDir := t.TempDir()
	inA := filepath.Join(tmpDir, "a.wav")
	inB := filepath.Join(tmpDir, "b.wav")
	outA := filepath.Join(tmpDir, "a-out.wav")
	outB := filepath.Join(tmpDir, "b-out.wav")
	writeInputWAV(t, inA, 0.2)
	writeInputWAV(t, inB, 0.9)

	p := newTestPipeline(t)
	resA, err := p.Convert(inA, accent.Indian, outA)
	if err != nil {
		t.Fatalf("Convert(a) error = %v", err)
	}
	resB, err := p.Convert(inB, accent.Indian, outB)
	if err != nil {
		t.Fatalf("Convert(b) error = %v", err)
	}

	if resA.Transcript != resB.Transcript {
		t.Errorf("transcripts differ across inputs: %q vs %q", resA.Transcript, resB.Transcript)
	}

	bytesA, err := os.ReadFile(outA)
	if err != nil {
		t.Fatalf("read output a: %v", err)
	}
	bytesB, err := os.ReadFile(outB)
	if err != nil {
		t.Fatalf("read output b: %v", err)
	}
	if !bytes.Equal(bytesA, bytesB) {
		t.Error("outputs for different inputs should be byte-identical")
	}
}

func TestConvertIdempotent(t *testing.T) {
	tmpDir := t.TempDir()
	in := filepath.Join(tmpDir, "in.wav")
	out1 := filepath.Join(tmpDir, "out1.wav")
	out2 := filepath.Join(tmpDir, "out2.wav")
	writeInputWAV(t, in, 0.4)

	p := newTestPipeline(t)
	res1, err := p.Convert(in, accent.French, out1)
	if err != nil {
		t.Fatalf("Convert() first run error = %v", err)
	}
	res2, err := p.Convert(in, accent.French, out2)
	if err != nil {
		t.Fatalf("Convert() second run error = %v", err)
	}

	if res1.RunID == res2.RunID {
		t.Error("run IDs should be unique across runs")
	}

	bytes1, err := os.ReadFile(out1)
	if err != nil {
		t.Fatalf("read first output: %v", err)
	}
	bytes2, err := os.ReadFile(out2)
	if err != nil {
		t.Fatalf("read second output: %v", err)
	}
	if !bytes.Equal(bytes1, bytes2) {
		t.Error("repeated conversions of the same input should be byte-identical")
	}
}

func TestConvertUnwritableOutput(t *testing.T) {
	tmpDir := t.TempDir()
	in := filepath.Join(tmpDir, "in.wav")
	out := filepath.Join(tmpDir, "no-such-dir", "out.wav")
	writeInputWAV(t, in, 0.3)

	p := newTestPipeline(t)
	if _, err := p.Convert(in, accent.German, out); err == nil {
		t.Error("Convert() should fail when output path is not writable")
	}
}

func TestConvertWithProfileExtractor(t *testing.T) {
	tmpDir := t.TempDir()
	in := filepath.Join(tmpDir, "in.wav")
	out := filepath.Join(tmpDir, "out.wav")
	profilePath := filepath.Join(tmpDir, "speaker.json")
	writeInputWAV(t, in, 0.6)

	vec := make(embedding.Vector, embedding.Dim)
	for i := range vec {
		vec[i] = 0.25
	}
	if err := embedding.SaveProfile(profilePath, &embedding.Profile{Name: "speaker", Values: vec}); err != nil {
		t.Fatalf("SaveProfile() error = %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	extractor, err := embedding.NewFileExtractor(profilePath, logger)
	if err != nil {
		t.Fatalf("NewFileExtractor() error = %v", err)
	}
	p := New(
		transcribe.NewStubTranscriber(logger),
		extractor,
		synth.NewStubSynthesizer(logger),
		logger,
	)
	defer p.Close()

	res, err := p.Convert(in, accent.Spanish, out)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if res.Transcript != "This is a sample transcription." {
		t.Errorf("Result.Transcript = %q, want fixed transcript", res.Transcript)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("output should exist: %v", err)
	}
}
