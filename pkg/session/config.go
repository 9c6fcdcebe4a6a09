package session

import (
	"time"

	"github.com/dmitrymomot/cookiesession/pkg/cookie"
)

// DefaultCookieName is the session cookie name used when none is configured
const DefaultCookieName = "session"

// Config holds session configuration
type Config struct {
	// CookieName is the name of the session cookie (default: "session")
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"session"`

	Path   string `env:"SESSION_COOKIE_PATH" envDefault:"/"`
	Domain string `env:"SESSION_COOKIE_DOMAIN"`

	// MaxAge of the cookie; zero makes it a browser-session cookie
	MaxAge time.Duration `env:"SESSION_MAX_AGE" envDefault:"0s"`

	// SameSite is one of "", "default", "lax", "strict", "none"
	SameSite string `env:"SESSION_SAME_SITE"`

	Secure    bool `env:"SESSION_SECURE" envDefault:"false"`
	HttpOnly  bool `env:"SESSION_HTTP_ONLY" envDefault:"true"`
	Signed    bool `env:"SESSION_SIGNED" envDefault:"true"`
	Encrypted bool `env:"SESSION_ENCRYPTED" envDefault:"false"`
	Overwrite bool `env:"SESSION_OVERWRITE" envDefault:"true"`

	// SetCookie is the master switch for writing the session cookie
	SetCookie bool `env:"SESSION_SET_COOKIE" envDefault:"true"`
}

// DefaultConfig returns default session configuration
func DefaultConfig() Config {
	return Config{
		CookieName: DefaultCookieName,
		Path:       "/",
		HttpOnly:   true,
		Signed:     true,
		Overwrite:  true,
		SetCookie:  true,
	}
}

// CookieOptions converts the cookie attributes of the config
func (c Config) CookieOptions() (cookie.Options, error) {
	sameSite, err := cookie.ParseSameSite(c.SameSite)
	if err != nil {
		return cookie.Options{}, err
	}

	return cookie.Options{
		Path:      c.Path,
		Domain:    c.Domain,
		MaxAge:    int(c.MaxAge / time.Second),
		SameSite:  sameSite,
		Secure:    c.Secure,
		HttpOnly:  c.HttpOnly,
		Signed:    c.Signed,
		Encrypted: c.Encrypted,
		Overwrite: c.Overwrite,
	}, nil
}

// NewFromConfig creates a new Manager from the provided Config.
// Options passed after the config take precedence.
func NewFromConfig(jar CookieJar, cfg Config, opts ...Option) (*Manager, error) {
	if _, err := cfg.CookieOptions(); err != nil {
		return nil, err
	}

	configOpts := []Option{
		WithConfig(cfg),
	}

	configOpts = append(configOpts, opts...)

	return New(jar, configOpts...), nil
}

// defaultCookieOptions starts from the jar's own defaults when it has any.
// Session cookies are always signed and overwritten.
func defaultCookieOptions(jar CookieJar) cookie.Options {
	if d, ok := jar.(interface{ Defaults() cookie.Options }); ok {
		opts := d.Defaults()
		opts.Signed = true
		opts.Overwrite = true
		return opts
	}

	return cookie.Options{
		Path:      "/",
		HttpOnly:  true,
		Signed:    true,
		Overwrite: true,
	}
}
