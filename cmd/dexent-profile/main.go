// Command dexent-profile builds a voice profile from a WAV sample and
// saves it as JSON in the configured profiles directory. Conversions
// can then reuse the profile via dexent-convert --profile.
//
// Usage:
//
//	dexent-profile [flags] <sample.wav> <name>
//	dexent-profile --list
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dexent-ai/dexent-audio/internal/audio"
	"github.com/dexent-ai/dexent-audio/internal/config"
	"github.com/dexent-ai/dexent-audio/internal/embedding"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default: ~/.config/dexent/config.yaml)")
	outPath := flag.String("out", "", "write the profile to this path instead of the profiles directory")
	list := flag.Bool("list", false, "list saved profiles and exit")
	flag.Parse()

	cfg, err := config.Resolve(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config validation: %v", err)
	}

	setupLogging(cfg.LogLevel)

	if *list {
		if err := listProfiles(cfg.Profiles.Dir); err != nil {
			log.Fatalf("%v", err)
		}
		return
	}

	if flag.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Usage: dexent-profile [flags] <sample.wav> <name>")
		os.Exit(2)
	}
	samplePath := flag.Arg(0)
	name := flag.Arg(1)

	clip, err := audio.LoadWAV(samplePath)
	if err != nil {
		log.Fatalf("%v", err)
	}

	extractor := embedding.NewStubExtractor(slog.Default())
	vec, err := extractor.Extract(clip)
	if err != nil {
		log.Fatalf("embedding extraction failed: %v", err)
	}
	extractor.Close()

	profile := &embedding.Profile{
		Name:      name,
		Values:    vec,
		Source:    filepath.Base(samplePath),
		CreatedAt: time.Now().UTC(),
	}

	path := *outPath
	if path == "" {
		if err := os.MkdirAll(cfg.Profiles.Dir, 0755); err != nil {
			log.Fatalf("failed to create profiles directory: %v", err)
		}
		path = filepath.Join(cfg.Profiles.Dir, name+".json")
	}

	if err := embedding.SaveProfile(path, profile); err != nil {
		log.Fatalf("%v", err)
	}

	fmt.Printf("Saved profile %q (%s of audio) to %s\n", name, clip.Duration().Round(10*time.Millisecond), path)
}

// listProfiles prints the names of saved profiles, one per line.
func listProfiles(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading profiles directory %q: %w", dir, err)
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		fmt.Println(strings.TrimSuffix(e.Name(), ".json"))
	}
	return nil
}

// setupLogging installs a text handler at the configured level.
func setupLogging(level string) {
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: config.ParseLogLevel(level),
	})
	slog.SetDefault(slog.New(h))
}
