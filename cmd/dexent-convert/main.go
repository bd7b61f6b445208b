// Command dexent-convert runs a WAV file through the accent conversion
// pipeline and writes the converted audio to a new WAV file.
//
// Usage:
//
//	dexent-convert [flags] <input.wav> <accent> <output.wav>
//	dexent-convert [flags] <input.wav> <output.wav>
//
// The two-argument form converts to the default_accent from the config
// file. Supported accents: american, british, australian, indian,
// spanish, french, german, chinese, japanese, russian.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/dexent-ai/dexent-audio/internal/accent"
	"github.com/dexent-ai/dexent-audio/internal/config"
	"github.com/dexent-ai/dexent-audio/internal/embedding"
	"github.com/dexent-ai/dexent-audio/internal/pipeline"
	"github.com/dexent-ai/dexent-audio/internal/synth"
	"github.com/dexent-ai/dexent-audio/internal/transcribe"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default: ~/.config/dexent/config.yaml)")
	profilePath := flag.String("profile", "", "voice profile JSON to use instead of extracting an embedding")
	flag.Usage = usage
	flag.Parse()

	// A .env file can hold DEXENT_CONFIG during development.
	_ = godotenv.Load()

	cfg, err := config.Resolve(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config validation: %v", err)
	}

	setupLogging(cfg.LogLevel)

	var inputPath, accentLabel, outputPath string
	switch flag.NArg() {
	case 3:
		inputPath, accentLabel, outputPath = flag.Arg(0), flag.Arg(1), flag.Arg(2)
	case 2:
		inputPath, accentLabel, outputPath = flag.Arg(0), cfg.DefaultAccent, flag.Arg(1)
	default:
		usage()
		os.Exit(2)
	}

	target, err := accent.Parse(accentLabel)
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger := slog.Default()
	extractor, err := newExtractor(*profilePath, logger)
	if err != nil {
		log.Fatalf("profile: %v", err)
	}

	p := pipeline.New(
		transcribe.NewStubTranscriber(logger),
		extractor,
		synth.NewStubSynthesizer(logger),
		logger,
	)

	res, err := p.Convert(inputPath, target, outputPath)
	if err != nil {
		p.Close()
		log.Fatalf("conversion failed: %v", err)
	}
	p.Close()

	fmt.Printf("Converted %s -> %s (%s accent)\n", inputPath, outputPath, target)
	fmt.Printf("  Transcript: %q\n", res.Transcript)
	fmt.Printf("  Output:     %s at %dHz\n", res.OutputDuration, synth.SampleRate)
	fmt.Printf("  Elapsed:    %s\n", res.Elapsed.Round(time.Millisecond))
}

// newExtractor picks the embedding source: a saved voice profile when
// given, the stub extractor otherwise.
func newExtractor(profilePath string, logger *slog.Logger) (embedding.Extractor, error) {
	if profilePath == "" {
		return embedding.NewStubExtractor(logger), nil
	}
	return embedding.NewFileExtractor(profilePath, logger)
}

// setupLogging installs a text handler at the configured level.
func setupLogging(level string) {
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: config.ParseLogLevel(level),
	})
	slog.SetDefault(slog.New(h))
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage:\n")
	fmt.Fprintf(os.Stderr, "  dexent-convert [flags] <input.wav> <accent> <output.wav>\n")
	fmt.Fprintf(os.Stderr, "  dexent-convert [flags] <input.wav> <output.wav>\n\n")
	fmt.Fprintf(os.Stderr, "Supported accents: %s\n\n", accent.Labels())
	fmt.Fprintf(os.Stderr, "Flags:\n")
	flag.PrintDefaults()
}
