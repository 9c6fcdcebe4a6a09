package cookie

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
	"time"
)

const (
	minSecretLength = 32
	maxCookieSize   = 4096

	// SignatureSuffix is appended to a cookie name to form its signature companion.
	SignatureSuffix = ".sig"
)

// Manager reads and writes cookies, optionally signing and encrypting values.
// It is safe for concurrent use; all per-call state lives in Options.
type Manager struct {
	secrets    []string
	defaults   Options
	trustProxy bool
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithDefaults adjusts the options returned by Manager.Defaults.
func WithDefaults(opts ...Option) ManagerOption {
	return func(m *Manager) {
		m.defaults = m.defaults.With(opts...)
	}
}

// WithTrustProxy makes the Manager treat requests carrying
// "X-Forwarded-Proto: https" as secure.
func WithTrustProxy(trust bool) ManagerOption {
	return func(m *Manager) {
		m.trustProxy = trust
	}
}

// New creates a Manager. The first secret signs and encrypts, all secrets
// are tried when verifying so keys can be rotated.
func New(secrets []string, opts ...ManagerOption) (*Manager, error) {
	secrets = slices.DeleteFunc(slices.Clone(secrets), func(s string) bool { return s == "" })
	if len(secrets) == 0 {
		return nil, ErrNoSecret
	}

	for i, s := range secrets {
		if len(s) < minSecretLength {
			return nil, fmt.Errorf("%w: secret %d has %d chars, need at least %d", ErrSecretTooShort, i, len(s), minSecretLength)
		}
	}

	m := &Manager{
		secrets: secrets,
		defaults: Options{
			Path:      "/",
			HttpOnly:  true,
			SameSite:  http.SameSiteLaxMode,
			Overwrite: true,
		},
	}

	for _, opt := range opts {
		opt(m)
	}

	return m, nil
}

// Defaults returns a copy of the Manager's default options.
func (m *Manager) Defaults() Options {
	return m.defaults
}

// Get returns the value of the named cookie. Signed cookies are verified
// against their companion and encrypted ones are decrypted.
func (m *Manager) Get(r *http.Request, name string, opts Options) (string, error) {
	c, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrCookieNotFound
		}
		return "", err
	}

	value := c.Value
	if opts.Signed {
		sig, err := r.Cookie(name + SignatureSuffix)
		if err != nil {
			return "", ErrInvalidSignature
		}
		if !m.verify(name, value, sig.Value) {
			return "", ErrInvalidSignature
		}
	}

	if opts.Encrypted {
		return m.decrypt(value)
	}

	return value, nil
}

// Set writes the named cookie. An empty value expires the cookie (and its
// signature companion) on the client.
func (m *Manager) Set(w http.ResponseWriter, r *http.Request, name, value string, opts Options) error {
	if opts.Secure && !m.isSecure(r) {
		return ErrInsecureTransport
	}

	if value != "" && opts.Encrypted {
		encrypted, err := m.encrypt(value)
		if err != nil {
			return err
		}
		value = encrypted
	}

	cookies := []*http.Cookie{newCookie(name, value, opts)}
	if opts.Signed {
		sig := ""
		if value != "" {
			sig = m.sign(name, value)
		}
		cookies = append(cookies, newCookie(name+SignatureSuffix, sig, opts))
	}

	// All cookies are validated before any header is written.
	names := make([]string, 0, len(cookies))
	for _, c := range cookies {
		if err := c.Valid(); err != nil {
			return errors.Join(ErrInvalidCookie, err)
		}
		if size := len(c.String()); size > maxCookieSize {
			return fmt.Errorf("%w: %s is %d bytes", ErrCookieTooLarge, c.Name, size)
		}
		names = append(names, c.Name)
	}

	if opts.Overwrite {
		dropSetCookie(w.Header(), names)
	}

	for _, c := range cookies {
		http.SetCookie(w, c)
	}

	return nil
}

// Delete expires the named cookie.
func (m *Manager) Delete(w http.ResponseWriter, r *http.Request, name string, opts Options) error {
	return m.Set(w, r, name, "", opts)
}

func (m *Manager) isSecure(r *http.Request) bool {
	if r == nil {
		return false
	}
	if r.TLS != nil {
		return true
	}
	if !m.trustProxy {
		return false
	}
	proto, _, _ := strings.Cut(r.Header.Get("X-Forwarded-Proto"), ",")
	return strings.EqualFold(strings.TrimSpace(proto), "https")
}

func newCookie(name, value string, opts Options) *http.Cookie {
	c := &http.Cookie{
		Name:        name,
		Value:       value,
		Path:        opts.Path,
		Domain:      opts.Domain,
		Secure:      opts.Secure,
		HttpOnly:    opts.HttpOnly,
		SameSite:    opts.SameSite,
		Partitioned: opts.Partitioned,
	}

	switch {
	case value == "" || opts.MaxAge < 0:
		c.MaxAge = -1
		c.Expires = time.Unix(0, 0)
	case opts.MaxAge > 0:
		c.MaxAge = opts.MaxAge
		c.Expires = time.Now().Add(time.Duration(opts.MaxAge) * time.Second)
	case !opts.Expires.IsZero():
		c.Expires = opts.Expires
	}

	return c
}

// dropSetCookie removes Set-Cookie lines for the given cookie names.
func dropSetCookie(h http.Header, names []string) {
	lines := h.Values("Set-Cookie")
	if len(lines) == 0 {
		return
	}

	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		name, _, _ := strings.Cut(line, "=")
		if !slices.Contains(names, strings.TrimSpace(name)) {
			kept = append(kept, line)
		}
	}

	h.Del("Set-Cookie")
	for _, line := range kept {
		h.Add("Set-Cookie", line)
	}
}

// sign binds the signature to the cookie name so a value cannot be replayed
// under another cookie.
func (m *Manager) sign(name, value string) string {
	return signature(m.secrets[0], name, value)
}

func (m *Manager) verify(name, value, sig string) bool {
	// Try all secrets to support key rotation - old cookies remain valid during transition
	for _, secret := range m.secrets {
		expected := signature(secret, name, value)
		if subtle.ConstantTimeCompare([]byte(sig), []byte(expected)) == 1 {
			return true
		}
	}
	return false
}

func signature(secret, name, value string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(name + "=" + value))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func (m *Manager) encrypt(value string) (string, error) {
	// AES-256 requires exactly 32 bytes for the key
	block, err := aes.NewCipher([]byte(m.secrets[0][:32]))
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	// Prepend nonce to ciphertext for self-contained decryption
	ciphertext := gcm.Seal(nonce, nonce, []byte(value), nil)
	return base64.URLEncoding.EncodeToString(ciphertext), nil
}

func (m *Manager) decrypt(encrypted string) (string, error) {
	ciphertext, err := base64.URLEncoding.DecodeString(encrypted)
	if err != nil {
		return "", ErrInvalidFormat
	}

	for _, secret := range m.secrets {
		block, err := aes.NewCipher([]byte(secret[:32]))
		if err != nil {
			continue
		}

		gcm, err := cipher.NewGCM(block)
		if err != nil {
			continue
		}

		if len(ciphertext) < gcm.NonceSize() {
			return "", ErrInvalidFormat
		}

		nonce, sealed := ciphertext[:gcm.NonceSize()], ciphertext[gcm.NonceSize():]
		if plaintext, err := gcm.Open(nil, nonce, sealed, nil); err == nil {
			return string(plaintext), nil
		}
	}

	return "", ErrDecryptionFailed
}
