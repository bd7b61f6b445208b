// Command dexent-record captures microphone audio and writes it to a
// WAV file. Quiet stretches between utterances are attenuated by the
// configured noise gate unless --raw is given.
//
// Usage:
//
//	dexent-record [flags] <output.wav>
//	dexent-record --list-devices
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dexent-ai/dexent-audio/internal/audio"
	"github.com/dexent-ai/dexent-audio/internal/config"
	"github.com/dexent-ai/dexent-audio/internal/noise"
)

// gateFrame is the number of samples gated at a time, matching the
// buffer size capture streams deliver.
const gateFrame = 1024

func main() {
	configPath := flag.String("config", "", "path to config file (default: ~/.config/dexent/config.yaml)")
	seconds := flag.Float64("seconds", 5, "recording length in seconds")
	listDevices := flag.Bool("list-devices", false, "list capture devices and exit")
	raw := flag.Bool("raw", false, "skip the noise gate")
	flag.Parse()

	cfg, err := config.Resolve(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config validation: %v", err)
	}

	setupLogging(cfg.LogLevel)

	rec, err := audio.NewRecorder(cfg.Audio.SampleRate, cfg.Audio.Channels)
	if err != nil {
		log.Fatalf("failed to initialize recorder: %v", err)
	}

	if *listDevices {
		names, err := rec.CaptureDevices()
		if err != nil {
			rec.Close()
			log.Fatalf("failed to list capture devices: %v", err)
		}
		for _, name := range names {
			fmt.Println(name)
		}
		rec.Close()
		return
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: dexent-record [flags] <output.wav>")
		rec.Close()
		os.Exit(2)
	}
	outputPath := flag.Arg(0)

	if *seconds <= 0 {
		rec.Close()
		log.Fatalf("--seconds must be > 0, got %g", *seconds)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	if err := rec.Start(); err != nil {
		rec.Close()
		log.Fatalf("failed to start recording: %v", err)
	}
	log.Printf("Recording %.1fs at %dHz... (Ctrl+C to stop early)", *seconds, cfg.Audio.SampleRate)

	select {
	case <-time.After(time.Duration(*seconds * float64(time.Second))):
	case sig := <-sigCh:
		log.Printf("Received %s, stopping early", sig)
	}

	clip := rec.Stop()
	rec.Close()
	if clip == nil || len(clip.Samples) == 0 {
		log.Fatalf("no audio captured")
	}

	if !*raw {
		gate := noise.NewGate(cfg.Noise.Threshold, cfg.Noise.Floor)
		clip.Samples = gate.ProcessFrames(clip.Samples, gateFrame)
	}

	if err := audio.SaveWAV(outputPath, clip); err != nil {
		log.Fatalf("failed to save recording: %v", err)
	}

	fmt.Printf("Saved %s of audio to %s\n", clip.Duration().Round(10*time.Millisecond), outputPath)
}

// setupLogging installs a text handler at the configured level.
func setupLogging(level string) {
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: config.ParseLogLevel(level),
	})
	slog.SetDefault(slog.New(h))
}
