package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the CLI configuration. It is read from a YAML file and then
// overridden by flags.
type Config struct {
	Strict           bool          `yaml:"strict"`
	Workers          int           `yaml:"workers"`
	ShowStats        bool          `yaml:"show_stats"`
	LogLevel         string        `yaml:"log_level"`
	LogFormat        string        `yaml:"log_format"`
	InputDir         string        `yaml:"input_dir"`
	SummaryDir       string        `yaml:"summary_dir"`
	WatchDebounce    time.Duration `yaml:"watch_debounce"`
	MetricsNamespace string        `yaml:"metrics_namespace"`
	BuildVersion     string        `yaml:"-"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Workers:          runtime.NumCPU(),
		LogLevel:         "info",
		LogFormat:        "text",
		InputDir:         "input",
		WatchDebounce:    200 * time.Millisecond,
		MetricsNamespace: "canvasdoc",
	}
}

// Load reads path over the defaults. Unknown keys are an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	var errs []error
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d", c.Workers))
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log_format must be text or json, got %q", c.LogFormat))
	}
	if c.WatchDebounce < 0 {
		errs = append(errs, fmt.Errorf("watch_debounce must not be negative"))
	}
	return errors.Join(errs...)
}

// NewLogger builds the slog logger described by LogLevel and LogFormat.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if c.LogFormat == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

func parseLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("log_level must be debug, info, warn or error, got %q", s)
}
