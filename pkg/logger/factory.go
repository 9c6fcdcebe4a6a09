package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Format is the output encoding of a logger.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// Environment names understood by WithEnvironment.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// preset is the level and format an environment starts from.
type preset struct {
	level  slog.Level
	format Format
}

var presets = map[string]preset{
	EnvDevelopment: {level: slog.LevelDebug, format: FormatText},
	EnvProduction:  {level: slog.LevelInfo, format: FormatJSON},
}

// Option configures New.
type Option func(*options)

type options struct {
	level      slog.Level
	format     Format
	output     io.Writer
	attrs      []slog.Attr
	extractors []ContextExtractor
}

func WithLevel(l slog.Level) Option {
	return func(o *options) { o.level = l }
}

// WithFormat sets the output encoding. It panics on an unknown format.
func WithFormat(f Format) Option {
	if err := f.validate(); err != nil {
		panic(err)
	}
	return func(o *options) { o.format = f }
}

// WithOutput redirects records to w. A nil writer is ignored.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.output = w
		}
	}
}

// WithContextExtractors adds extractors run against the context of every
// record, e.g. session.LogExtractor.
func WithContextExtractors(extractors ...ContextExtractor) Option {
	return func(o *options) { o.extractors = append(o.extractors, extractors...) }
}

// WithEnvironment applies the preset for env ("prod" and "production"
// select production, anything else development) and tags every record
// with env and, when set, service.
func WithEnvironment(env, service string) Option {
	name := EnvDevelopment
	if e := strings.ToLower(strings.TrimSpace(env)); e == EnvProduction || e == "prod" {
		name = EnvProduction
	}
	p := presets[name]

	return func(o *options) {
		o.level, o.format = p.level, p.format
		o.attrs = append(o.attrs, slog.String("env", name))
		if service != "" {
			o.attrs = append(o.attrs, slog.String("service", service))
		}
	}
}

func (f Format) validate() error {
	if f != FormatJSON && f != FormatText {
		return fmt.Errorf("invalid log format %q: must be %q or %q", string(f), FormatJSON, FormatText)
	}
	return nil
}

// New builds a logger. Without options it writes JSON at info level to
// stdout.
func New(opts ...Option) *slog.Logger {
	o := &options{
		level:  slog.LevelInfo,
		format: FormatJSON,
		output: os.Stdout,
	}
	for _, opt := range opts {
		opt(o)
	}

	hopts := &slog.HandlerOptions{Level: o.level}
	var h slog.Handler = slog.NewJSONHandler(o.output, hopts)
	if o.format == FormatText {
		h = slog.NewTextHandler(o.output, hopts)
	}
	if len(o.attrs) > 0 {
		h = h.WithAttrs(o.attrs)
	}
	return slog.New(withContext(h, o.extractors))
}
