package logger

import (
	"fmt"
	"log/slog"
	"strings"
)

// Config holds logger configuration
type Config struct {
	Env     string `env:"APP_ENV" envDefault:"development"`
	Service string `env:"APP_NAME" envDefault:"cookiesession"`

	// Level overrides the environment default when set: debug, info, warn, error
	Level string `env:"LOG_LEVEL"`

	// Format overrides the environment default when set: json or text
	Format string `env:"LOG_FORMAT"`
}

// ParseLevel converts a level name into a slog.Level
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return l, nil
}

// NewFromConfig creates a logger from cfg. Options passed after the config
// take precedence.
func NewFromConfig(cfg Config, opts ...Option) (*slog.Logger, error) {
	configOpts := []Option{WithEnvironment(cfg.Env, cfg.Service)}

	if cfg.Level != "" {
		level, err := ParseLevel(cfg.Level)
		if err != nil {
			return nil, err
		}
		configOpts = append(configOpts, WithLevel(level))
	}

	if cfg.Format != "" {
		f := Format(strings.ToLower(strings.TrimSpace(cfg.Format)))
		if err := f.validate(); err != nil {
			return nil, err
		}
		configOpts = append(configOpts, WithFormat(f))
	}

	configOpts = append(configOpts, opts...)

	return New(configOpts...), nil
}
