package cookie

import (
	"strings"
)

// Config holds cookie manager configuration
type Config struct {
	Secrets    string `env:"COOKIE_SECRETS" envDefault:""`
	Path       string `env:"COOKIE_PATH" envDefault:"/"`
	Domain     string `env:"COOKIE_DOMAIN" envDefault:""`
	SameSite   string `env:"COOKIE_SAME_SITE" envDefault:"lax"`
	MaxAge     int    `env:"COOKIE_MAX_AGE" envDefault:"0"`
	Secure     bool   `env:"COOKIE_SECURE" envDefault:"false"`
	HttpOnly   bool   `env:"COOKIE_HTTP_ONLY" envDefault:"true"`
	TrustProxy bool   `env:"COOKIE_TRUST_PROXY" envDefault:"false"`
}

// DefaultConfig returns default cookie configuration
func DefaultConfig() Config {
	return Config{
		Path:     "/",
		SameSite: "lax",
		HttpOnly: true,
	}
}

// parseSecrets splits the comma separated secrets string into a slice
func (c Config) parseSecrets() []string {
	if c.Secrets == "" {
		return nil
	}

	parts := strings.Split(c.Secrets, ",")
	secrets := make([]string, 0, len(parts))

	for _, s := range parts {
		s = strings.TrimSpace(s)
		if s != "" {
			secrets = append(secrets, s)
		}
	}

	return secrets
}

// NewFromConfig creates a new Manager from the provided Config.
// Only non-zero values from the config are applied to the defaults.
func NewFromConfig(cfg Config, opts ...ManagerOption) (*Manager, error) {
	sameSite, err := ParseSameSite(cfg.SameSite)
	if err != nil {
		return nil, err
	}

	defaults := make([]Option, 0, 6)
	if cfg.Path != "" {
		defaults = append(defaults, WithPath(cfg.Path))
	}
	if cfg.Domain != "" {
		defaults = append(defaults, WithDomain(cfg.Domain))
	}
	if cfg.MaxAge != 0 {
		defaults = append(defaults, WithMaxAge(cfg.MaxAge))
	}
	if sameSite != 0 {
		defaults = append(defaults, WithSameSite(sameSite))
	}
	defaults = append(defaults, WithSecure(cfg.Secure), WithHTTPOnly(cfg.HttpOnly))

	configOpts := []ManagerOption{
		WithDefaults(defaults...),
		WithTrustProxy(cfg.TrustProxy),
	}
	configOpts = append(configOpts, opts...)

	return New(cfg.parseSecrets(), configOpts...)
}
