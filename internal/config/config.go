// Package config loads rephrase settings from a file, the environment, and
// command line overrides.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config holds the complete client configuration.
type Config struct {
	// Endpoint is the base URL of the processing service.
	Endpoint string `toml:"endpoint" json:"endpoint" yaml:"endpoint"`

	// Timeout bounds a single request, eg. "60s".
	Timeout Duration `toml:"timeout" json:"timeout" yaml:"timeout"`

	// Options are the checkbox states the form starts with.
	Options OptionsConfig `toml:"options" json:"options" yaml:"options"`

	UI      UIConfig      `toml:"ui" json:"ui" yaml:"ui"`
	Logging LoggingConfig `toml:"logging" json:"logging" yaml:"logging"`

	// HistoryFile receives saved results. Empty disables saving.
	HistoryFile string `toml:"history_file" json:"history_file" yaml:"history_file"`
}

// OptionsConfig mirrors processing.Options for config files.
type OptionsConfig struct {
	Paraphrase      bool `toml:"paraphrase" json:"paraphrase" yaml:"paraphrase"`
	RemoveAIPhrases bool `toml:"remove_ai_phrases" json:"remove_ai_phrases" yaml:"remove_ai_phrases"`
	Humanize        bool `toml:"humanize" json:"humanize" yaml:"humanize"`
}

// UIConfig controls terminal behaviour.
type UIConfig struct {
	AltScreen      bool     `toml:"alt_screen" json:"alt_screen" yaml:"alt_screen"`
	BannerDuration Duration `toml:"banner_duration" json:"banner_duration" yaml:"banner_duration"`
	CopyFeedback   Duration `toml:"copy_feedback" json:"copy_feedback" yaml:"copy_feedback"`
}

// LoggingConfig controls the log file.
type LoggingConfig struct {
	Level string `toml:"level" json:"level" yaml:"level"`
	File  string `toml:"file" json:"file" yaml:"file"`
}

// Duration wraps time.Duration so it can be written as "5s" in any format.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	return d.UnmarshalText([]byte(node.Value))
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Endpoint: "http://localhost:5000",
		Timeout:  Duration{60 * time.Second},
		Options: OptionsConfig{
			RemoveAIPhrases: true,
			Humanize:        true,
		},
		UI: UIConfig{
			AltScreen:      true,
			BannerDuration: Duration{5 * time.Second},
			CopyFeedback:   Duration{2 * time.Second},
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  defaultLogFile(),
		},
	}
}

// Dir returns the directory holding the config file.
func Dir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "rephrase")
}

// Path returns the default config file path.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

func defaultLogFile() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "rephrase", "rephrase.log")
}

// Load reads path (defaults when it does not exist), applies environment
// overrides, and validates the result.
func Load(path string) (*Config, error) {
	cfg, err := loadFile(path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func loadFile(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("decode TOML: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("decode JSON: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("decode YAML: %w", err)
		}
	default:
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	return cfg, nil
}

// ApplyEnvOverrides lets REPHRASE_* variables win over file values.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("REPHRASE_ENDPOINT"); v != "" {
		c.Endpoint = v
	}
	if v := os.Getenv("REPHRASE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Timeout = Duration{d}
		}
	}
	if v := os.Getenv("REPHRASE_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("REPHRASE_LOG_FILE"); v != "" {
		c.Logging.File = v
	}
	if v := os.Getenv("REPHRASE_HISTORY_FILE"); v != "" {
		c.HistoryFile = v
	}
}

// Validate rejects settings the client cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Endpoint) == "" {
		errs = append(errs, errors.New("endpoint is required"))
	} else if !strings.HasPrefix(c.Endpoint, "http://") && !strings.HasPrefix(c.Endpoint, "https://") {
		errs = append(errs, fmt.Errorf("endpoint must be an http(s) URL: %q", c.Endpoint))
	}
	if c.Timeout.Duration < 0 {
		errs = append(errs, errors.New("timeout must not be negative"))
	}
	if c.UI.BannerDuration.Duration <= 0 {
		errs = append(errs, errors.New("ui.banner_duration must be positive"))
	}
	if c.UI.CopyFeedback.Duration <= 0 {
		errs = append(errs, errors.New("ui.copy_feedback must be positive"))
	}
	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "error", "disabled":
	default:
		errs = append(errs, fmt.Errorf("unknown logging.level %q", c.Logging.Level))
	}
	return errors.Join(errs...)
}
