// Package cookie reads and writes HTTP cookies with optional integrity and
// confidentiality protection.
//
// # Overview
//
// The Manager type is the entry point. It is initialised with one or more secret
// keys; the first signs and encrypts, every key is accepted when verifying, so
// secrets can be rotated without logging users out.
//
// All attributes are passed per call through an Options value. Options is a plain
// struct: callers copy it, adjust fields and hand the copy over, the Manager never
// keeps a reference.
//
//   - Signed cookies carry an HMAC-SHA256 of "name=value" in a "<name>.sig"
//     companion cookie. A missing or mismatching companion makes Get fail with
//     ErrInvalidSignature.
//   - Encrypted cookies store the value AES-256-GCM sealed with a random nonce.
//   - Overwrite removes Set-Cookie lines for the same name that were already
//     added to the response, so a cookie is emitted at most once.
//   - Setting an empty value expires the cookie (Max-Age<0, Expires at epoch).
//
// # Usage
//
//	import "github.com/dmitrymomot/cookiesession/pkg/cookie"
//
//	// secrets must be at least 32 bytes
//	man, err := cookie.New([]string{os.Getenv("COOKIE_SECRET")})
//	if err != nil { log.Fatal(err) }
//
//	opts := man.Defaults().With(cookie.WithSigned(true))
//
//	http.HandleFunc("/set", func(w http.ResponseWriter, r *http.Request) {
//	    _ = man.Set(w, r, "prefs", "dark", opts)
//	})
//
//	http.HandleFunc("/get", func(w http.ResponseWriter, r *http.Request) {
//	    v, err := man.Get(r, "prefs", opts)
//	    _, _ = v, err
//	})
//
// # Configuration
//
// The Config struct allows the manager to be constructed from environment
// variables via github.com/caarlos0/env.
//
//	cfg := cookie.DefaultConfig()
//	_ = env.Parse(&cfg)
//	man, _ := cookie.NewFromConfig(cfg)
//
// # Error Handling
//
// Set refuses to write a Secure cookie over a plain HTTP request and returns
// ErrInsecureTransport before any header is touched. Other sentinel errors are
// ErrCookieNotFound, ErrInvalidSignature, ErrDecryptionFailed, ErrInvalidFormat,
// ErrInvalidCookie and ErrCookieTooLarge; use errors.Is.
package cookie
