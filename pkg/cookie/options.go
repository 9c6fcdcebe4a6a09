package cookie

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Options describes the attributes a cookie is read or written with.
// Signed, Encrypted and Overwrite are handled by the Manager and never
// reach the Set-Cookie header.
type Options struct {
	Expires     time.Time
	Path        string
	Domain      string
	MaxAge      int
	SameSite    http.SameSite
	Secure      bool
	HttpOnly    bool
	Partitioned bool
	Signed      bool
	Encrypted   bool
	Overwrite   bool
}

type Option func(*Options)

func WithPath(path string) Option {
	return func(o *Options) {
		o.Path = path
	}
}

func WithDomain(domain string) Option {
	return func(o *Options) {
		o.Domain = domain
	}
}

// WithMaxAge sets Max-Age in seconds. Positive values also produce an
// Expires attribute for clients that ignore Max-Age.
func WithMaxAge(seconds int) Option {
	return func(o *Options) {
		o.MaxAge = seconds
	}
}

func WithExpires(t time.Time) Option {
	return func(o *Options) {
		o.Expires = t
	}
}

func WithSecure(secure bool) Option {
	return func(o *Options) {
		o.Secure = secure
	}
}

func WithHTTPOnly(httpOnly bool) Option {
	return func(o *Options) {
		o.HttpOnly = httpOnly
	}
}

func WithSameSite(sameSite http.SameSite) Option {
	return func(o *Options) {
		o.SameSite = sameSite
	}
}

func WithPartitioned(partitioned bool) Option {
	return func(o *Options) {
		o.Partitioned = partitioned
	}
}

// WithSigned adds a "<name>.sig" companion cookie carrying an HMAC of the value.
func WithSigned(signed bool) Option {
	return func(o *Options) {
		o.Signed = signed
	}
}

// WithEncrypted stores the value AES-GCM encrypted.
func WithEncrypted(encrypted bool) Option {
	return func(o *Options) {
		o.Encrypted = encrypted
	}
}

// WithOverwrite drops Set-Cookie lines for the same name that were added
// earlier in the same response.
func WithOverwrite(overwrite bool) Option {
	return func(o *Options) {
		o.Overwrite = overwrite
	}
}

// With returns a copy of o with opts applied. The receiver is not modified.
func (o Options) With(opts ...Option) Options {
	result := o
	for _, opt := range opts {
		if opt != nil {
			opt(&result)
		}
	}
	return result
}

// ParseSameSite converts a configuration string into an http.SameSite value.
// Matching is case-insensitive; an empty string leaves the attribute unset.
func ParseSameSite(s string) (http.SameSite, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return 0, nil
	case "default":
		return http.SameSiteDefaultMode, nil
	case "lax":
		return http.SameSiteLaxMode, nil
	case "strict":
		return http.SameSiteStrictMode, nil
	case "none":
		return http.SameSiteNoneMode, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidSameSite, s)
	}
}
