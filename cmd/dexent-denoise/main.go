// Command dexent-denoise applies the amplitude noise gate to a WAV
// file and writes the gated audio to a new file.
//
// Usage:
//
//	dexent-denoise [flags] <input.wav> <output.wav>
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/dexent-ai/dexent-audio/internal/audio"
	"github.com/dexent-ai/dexent-audio/internal/config"
	"github.com/dexent-ai/dexent-audio/internal/noise"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default: ~/.config/dexent/config.yaml)")
	threshold := flag.Float64("threshold", -1, "gate threshold override (default: config value)")
	floor := flag.Float64("floor", -1, "gate floor override (default: config value)")
	frame := flag.Int("frame", 1024, "samples gated at a time")
	flag.Parse()

	cfg, err := config.Resolve(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config validation: %v", err)
	}

	setupLogging(cfg.LogLevel)

	if flag.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Usage: dexent-denoise [flags] <input.wav> <output.wav>")
		os.Exit(2)
	}
	inputPath := flag.Arg(0)
	outputPath := flag.Arg(1)

	th, fl := cfg.Noise.Threshold, cfg.Noise.Floor
	if *threshold >= 0 {
		th = *threshold
	}
	if *floor >= 0 {
		fl = *floor
	}

	clip, err := audio.LoadWAV(inputPath)
	if err != nil {
		log.Fatalf("%v", err)
	}

	gate := noise.NewGate(th, fl)
	clip.Samples = gate.ProcessFrames(clip.Samples, *frame)

	if err := audio.SaveWAV(outputPath, clip); err != nil {
		log.Fatalf("%v", err)
	}

	fmt.Printf("Gated %s -> %s (threshold %g, floor %g)\n", inputPath, outputPath, th, fl)
}

// setupLogging installs a text handler at the configured level.
func setupLogging(level string) {
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: config.ParseLogLevel(level),
	})
	slog.SetDefault(slog.New(h))
}
