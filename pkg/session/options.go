package session

import (
	"log/slog"

	"github.com/dmitrymomot/cookiesession/pkg/cookie"
)

// Option is a functional option for configuring the Manager
type Option func(*Manager)

// WithConfig applies a Config. It panics on an invalid SameSite value;
// use NewFromConfig to get an error instead.
func WithConfig(cfg Config) Option {
	return func(m *Manager) {
		opts, err := cfg.CookieOptions()
		if err != nil {
			panic(err)
		}
		if cfg.CookieName != "" {
			m.name = cfg.CookieName
		}
		m.options = opts
		m.setCookie = cfg.SetCookie
	}
}

// WithCookieName sets the session cookie name
func WithCookieName(name string) Option {
	return func(m *Manager) {
		if name != "" {
			m.name = name
		}
	}
}

// WithCookieOptions applies cookie options on top of the current base options
func WithCookieOptions(opts ...cookie.Option) Option {
	return func(m *Manager) {
		m.options = m.options.With(opts...)
	}
}

// WithLogger sets the logger. Nil loggers are ignored.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithErrorHandler sets the handler invoked when the session cookie cannot
// be saved. The default responds with 500.
func WithErrorHandler(h ErrorHandler) Option {
	return func(m *Manager) {
		if h != nil {
			m.errorHandler = h
		}
	}
}

// WithSameSiteChecker replaces the User-Agent check used before sending
// SameSite=None.
func WithSameSiteChecker(fn SameSiteChecker) Option {
	return func(m *Manager) {
		if fn != nil {
			m.sameSiteNone = fn
		}
	}
}

// WithSetCookie turns cookie emission on or off. With emission off sessions
// are still readable but never saved.
func WithSetCookie(enabled bool) Option {
	return func(m *Manager) {
		m.setCookie = enabled
	}
}
