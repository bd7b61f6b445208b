package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dexent-ai/dexent-audio/internal/accent"
)

// EnvConfig names the environment variable that overrides the config
// file path when the --config flag is not given.
const EnvConfig = "DEXENT_CONFIG"

// Config holds all application configuration.
type Config struct {
	LogLevel      string         `yaml:"log_level"`
	DefaultAccent string         `yaml:"default_accent"`
	Audio         AudioConfig    `yaml:"audio"`
	Noise         NoiseConfig    `yaml:"noise"`
	Profiles      ProfilesConfig `yaml:"profiles"`
}

// AudioConfig holds capture settings for the record tool.
type AudioConfig struct {
	SampleRate uint32 `yaml:"sample_rate"`
	Channels   uint32 `yaml:"channels"`
}

// NoiseConfig holds noise-gate settings for the denoise tool.
type NoiseConfig struct {
	// Threshold is the mean-absolute signal power above which a buffer
	// counts as voice activity.
	Threshold float64 `yaml:"threshold"`
	// Floor scales buffers below the threshold instead of zeroing them.
	Floor float64 `yaml:"floor"`
}

// ProfilesConfig holds voice-profile storage settings.
type ProfilesConfig struct {
	Dir string `yaml:"dir"`
}

// DefaultConfigDir returns the default config directory path.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "dexent")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// DefaultDataDir returns the default data directory path.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "dexent")
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		LogLevel:      "info",
		DefaultAccent: accent.Default.String(),
		Audio: AudioConfig{
			SampleRate: 16000,
			Channels:   1,
		},
		Noise: NoiseConfig{
			Threshold: 0.01,
			Floor:     0.05,
		},
		Profiles: ProfilesConfig{
			Dir: filepath.Join(DefaultDataDir(), "profiles"),
		},
	}
}

// Resolve returns the effective config: the explicit path when given,
// else the path named by the DEXENT_CONFIG environment variable, else
// the default config file when present, else built-in defaults.
func Resolve(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	if envPath := os.Getenv(EnvConfig); envPath != "" {
		return Load(envPath)
	}
	defaultPath := DefaultConfigPath()
	if _, err := os.Stat(defaultPath); err == nil {
		return Load(defaultPath)
	}
	return Default(), nil
}

// Load reads and parses a YAML config file. Missing fields are filled
// with defaults. Tilde (~) in profiles.dir is expanded to the user's
// home directory.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %q: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %q: %w", path, err)
	}

	cfg.Profiles.Dir = expandTilde(cfg.Profiles.Dir)

	return cfg, nil
}

// Validate checks the config for invalid values.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log_level must be debug, info, warn, or error, got %q", c.LogLevel)
	}

	if _, err := accent.Parse(c.DefaultAccent); err != nil {
		return fmt.Errorf("config: default_accent: %w", err)
	}

	if c.Audio.SampleRate == 0 {
		return fmt.Errorf("config: audio.sample_rate must be > 0")
	}
	if c.Audio.Channels == 0 {
		return fmt.Errorf("config: audio.channels must be > 0")
	}

	if c.Noise.Threshold < 0 || c.Noise.Threshold > 1 {
		return fmt.Errorf("config: noise.threshold must be in [0, 1], got %g", c.Noise.Threshold)
	}
	if c.Noise.Floor < 0 || c.Noise.Floor > 1 {
		return fmt.Errorf("config: noise.floor must be in [0, 1], got %g", c.Noise.Floor)
	}

	if c.Profiles.Dir == "" {
		return fmt.Errorf("config: profiles.dir must not be empty")
	}

	return nil
}

// WriteDefault writes a commented default config to the default path.
// It is a no-op returning ("", nil) when a config file already exists.
func WriteDefault() (string, error) {
	dir := DefaultConfigDir()
	if dir == "" {
		return "", fmt.Errorf("config: cannot determine home directory")
	}
	path := filepath.Join(dir, "config.yaml")

	if _, err := os.Stat(path); err == nil {
		return "", nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("config: creating %q: %w", dir, err)
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return "", fmt.Errorf("config: marshaling defaults: %w", err)
	}

	content := "# dexent-audio configuration.\n# Defaults shown; edit and re-run.\n" + string(data)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("config: writing %q: %w", path, err)
	}

	return path, nil
}

// ParseLogLevel maps a config log level string to a slog.Level.
// Unknown values default to info.
func ParseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// expandTilde replaces a leading ~ with the user's home directory.
func expandTilde(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
