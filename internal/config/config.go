package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// AudioConfig holds recording settings.
type AudioConfig struct {
	RecordingsDir      string  `toml:"recordings_dir"`
	DefaultDurationSec float64 `toml:"default_duration_sec"`
	ChimeStart         string  `toml:"chime_start"`
	ChimeStop          string  `toml:"chime_stop"`
	ChimeEnabled       bool    `toml:"chime_enabled"`
}

// ProbeConfig holds device detection settings.
type ProbeConfig struct {
	TimeoutSec int      `toml:"timeout_sec"`
	Disabled   []string `toml:"disabled"` // probe names to skip, e.g. "wsl"
}

// CustomTheme is a user-defined color palette.
type CustomTheme struct {
	Name       string `toml:"name"`
	Primary    string `toml:"primary"`
	Secondary  string `toml:"secondary"`
	Accent     string `toml:"accent"`
	Error      string `toml:"error"`
	Success    string `toml:"success"`
	Warning    string `toml:"warning"`
	Background string `toml:"background"`
	Text       string `toml:"text"`
	Dimmed     string `toml:"dimmed"`
	Separator  string `toml:"separator"`
}

// Config is the top-level configuration.
type Config struct {
	Theme        string        `toml:"theme"`
	Audio        AudioConfig   `toml:"audio"`
	Probe        ProbeConfig   `toml:"probe"`
	CustomThemes []CustomTheme `toml:"custom_theme"`
}

// Default returns a Config populated with all default values.
func Default() *Config {
	return &Config{
		Theme: "catppuccin-mocha",
		Audio: AudioConfig{
			RecordingsDir:      "recordings",
			DefaultDurationSec: 5,
			ChimeEnabled:       true,
		},
		Probe: ProbeConfig{
			TimeoutSec: 5,
		},
	}
}

// DefaultPath returns the default config file path (~/.config/voicepad/config.toml).
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "voicepad", "config.toml")
}

// ProbeEnabled reports whether the named probe is not listed in probe.disabled.
func (c *Config) ProbeEnabled(name string) bool {
	for _, d := range c.Probe.Disabled {
		if d == name {
			return false
		}
	}
	return true
}

// RecordingsPath returns audio.recordings_dir as an absolute path. A leading
// "~/" expands to the home directory; other relative paths resolve against
// the working directory at startup.
func (c *Config) RecordingsPath() (string, error) {
	dir := c.Audio.RecordingsDir
	if dir == "~" || strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand %s: %w", dir, err)
		}
		dir = filepath.Join(home, strings.TrimPrefix(dir, "~"))
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", dir, err)
	}
	return abs, nil
}

// Validate checks values that would make recording or detection impossible.
func (c *Config) Validate() error {
	if c.Audio.RecordingsDir == "" {
		return errors.New("audio.recordings_dir must not be empty")
	}
	if c.Audio.DefaultDurationSec <= 0 {
		return fmt.Errorf("audio.default_duration_sec must be positive, got %v", c.Audio.DefaultDurationSec)
	}
	if c.Probe.TimeoutSec <= 0 {
		return fmt.Errorf("probe.timeout_sec must be positive, got %d", c.Probe.TimeoutSec)
	}
	return nil
}

// Load reads the TOML config from path. If the file does not exist,
// it returns the default config without error.
func Load(path string) (*Config, error) {
	cfg := Default()

	_, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	_, err = toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}
