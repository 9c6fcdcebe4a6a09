package cookie_test

import (
	"crypto/tls"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/cookiesession/pkg/cookie"
)

const (
	secret    = "this-is-a-very-long-secret-key-32-chars-long"
	oldSecret = "this-is-old-very-long-secret-key-32-chars-ok"
)

func newManager(t testing.TB, opts ...cookie.ManagerOption) *cookie.Manager {
	t.Helper()
	m, err := cookie.New([]string{secret}, opts...)
	require.NoError(t, err)
	return m
}

// replay builds a follow-up request carrying every cookie set on w.
func replay(w *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		if c.MaxAge < 0 {
			continue
		}
		r.AddCookie(c)
	}
	return r
}

func findCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestNew(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		secrets []string
		wantErr error
	}{
		{
			name:    "no secrets",
			secrets: []string{},
			wantErr: cookie.ErrNoSecret,
		},
		{
			name:    "empty secrets",
			secrets: []string{"", ""},
			wantErr: cookie.ErrNoSecret,
		},
		{
			name:    "secret too short",
			secrets: []string{"short"},
			wantErr: cookie.ErrSecretTooShort,
		},
		{
			name:    "valid secret",
			secrets: []string{secret},
		},
		{
			name:    "multiple secrets with rotation",
			secrets: []string{secret, oldSecret},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := cookie.New(tt.secrets)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestManager_Defaults(t *testing.T) {
	t.Parallel()

	m := newManager(t)
	d := m.Defaults()
	assert.Equal(t, "/", d.Path)
	assert.True(t, d.HttpOnly)
	assert.True(t, d.Overwrite)
	assert.Equal(t, http.SameSiteLaxMode, d.SameSite)

	m = newManager(t, cookie.WithDefaults(cookie.WithPath("/app"), cookie.WithSigned(true)))
	d = m.Defaults()
	assert.Equal(t, "/app", d.Path)
	assert.True(t, d.Signed)
}

func TestManager_SetGet(t *testing.T) {
	t.Parallel()
	m := newManager(t)

	tests := []struct {
		name  string
		key   string
		value string
		opts  cookie.Options
	}{
		{"plain", "test", "value", cookie.Options{Path: "/"}},
		{"special chars", "special", "hello=world&foo=bar", cookie.Options{Path: "/"}},
		{"signed", "signed", "user-id", cookie.Options{Path: "/", Signed: true}},
		{"encrypted", "enc", "secret data", cookie.Options{Path: "/", Encrypted: true}},
		{"signed and encrypted", "both", "top secret", cookie.Options{Path: "/", Signed: true, Encrypted: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := httptest.NewRecorder()

			require.NoError(t, m.Set(w, httptest.NewRequest(http.MethodGet, "/", nil), tt.key, tt.value, tt.opts))

			got, err := m.Get(replay(w), tt.key, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.value, got)

			if tt.opts.Encrypted {
				assert.NotEqual(t, tt.value, findCookie(w, tt.key).Value)
			}
		})
	}
}

func TestManager_Get_NotFound(t *testing.T) {
	t.Parallel()
	m := newManager(t)

	_, err := m.Get(httptest.NewRequest(http.MethodGet, "/", nil), "missing", cookie.Options{})
	assert.ErrorIs(t, err, cookie.ErrCookieNotFound)
}

func TestManager_Signed(t *testing.T) {
	t.Parallel()
	m := newManager(t)
	opts := cookie.Options{Path: "/", Signed: true}

	t.Run("writes signature companion", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		require.NoError(t, m.Set(w, httptest.NewRequest(http.MethodGet, "/", nil), "sess", "data", opts))

		require.NotNil(t, findCookie(w, "sess"))
		sig := findCookie(w, "sess"+cookie.SignatureSuffix)
		require.NotNil(t, sig)
		assert.NotEmpty(t, sig.Value)
	})

	t.Run("unsigned cookie is rejected", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "sess", Value: "data"})

		_, err := m.Get(r, "sess", opts)
		assert.ErrorIs(t, err, cookie.ErrInvalidSignature)
	})

	t.Run("tampered value is rejected", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		require.NoError(t, m.Set(w, httptest.NewRequest(http.MethodGet, "/", nil), "sess", "data", opts))

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "sess", Value: "DATA"})
		r.AddCookie(findCookie(w, "sess"+cookie.SignatureSuffix))

		_, err := m.Get(r, "sess", opts)
		assert.ErrorIs(t, err, cookie.ErrInvalidSignature)
	})

	t.Run("signature is bound to the cookie name", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		require.NoError(t, m.Set(w, httptest.NewRequest(http.MethodGet, "/", nil), "other", "data", opts))

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "sess", Value: "data"})
		r.AddCookie(&http.Cookie{Name: "sess" + cookie.SignatureSuffix, Value: findCookie(w, "other"+cookie.SignatureSuffix).Value})

		_, err := m.Get(r, "sess", opts)
		assert.ErrorIs(t, err, cookie.ErrInvalidSignature)
	})

	t.Run("reading without verification ignores companion", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "sess", Value: "data"})

		got, err := m.Get(r, "sess", cookie.Options{})
		require.NoError(t, err)
		assert.Equal(t, "data", got)
	})
}

func TestManager_SecretRotation(t *testing.T) {
	t.Parallel()

	oldM, err := cookie.New([]string{oldSecret})
	require.NoError(t, err)
	newM, err := cookie.New([]string{secret, oldSecret})
	require.NoError(t, err)

	for _, opts := range []cookie.Options{
		{Path: "/", Signed: true},
		{Path: "/", Encrypted: true},
	} {
		w := httptest.NewRecorder()
		require.NoError(t, oldM.Set(w, httptest.NewRequest(http.MethodGet, "/", nil), "rot", "value", opts))

		got, err := newM.Get(replay(w), "rot", opts)
		require.NoError(t, err)
		assert.Equal(t, "value", got)
	}

	w := httptest.NewRecorder()
	require.NoError(t, newM.Set(w, httptest.NewRequest(http.MethodGet, "/", nil), "rot", "value", cookie.Options{Signed: true}))
	_, err = oldM.Get(replay(w), "rot", cookie.Options{Signed: true})
	assert.ErrorIs(t, err, cookie.ErrInvalidSignature)
}

func TestManager_Decrypt_Invalid(t *testing.T) {
	t.Parallel()
	m := newManager(t)

	tests := []struct {
		name  string
		value string
		want  error
	}{
		{"not base64", "!!!", cookie.ErrInvalidFormat},
		{"too short", "YWJj", cookie.ErrInvalidFormat},
		{"garbage ciphertext", "dGhpcyBpcyBub3QgYSB2YWxpZCBjaXBoZXJ0ZXh0IGF0IGFsbA==", cookie.ErrDecryptionFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.AddCookie(&http.Cookie{Name: "enc", Value: tt.value})

			_, err := m.Get(r, "enc", cookie.Options{Encrypted: true})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestManager_EmptyValueExpires(t *testing.T) {
	t.Parallel()
	m := newManager(t)

	w := httptest.NewRecorder()
	err := m.Delete(w, httptest.NewRequest(http.MethodGet, "/", nil), "sess", cookie.Options{Path: "/", Signed: true, MaxAge: 3600})
	require.NoError(t, err)

	for _, name := range []string{"sess", "sess" + cookie.SignatureSuffix} {
		c := findCookie(w, name)
		require.NotNil(t, c, name)
		assert.Empty(t, c.Value)
		assert.Equal(t, -1, c.MaxAge)
	}
	assert.Contains(t, w.Header().Get("Set-Cookie"), "Expires=Thu, 01 Jan 1970 00:00:00 GMT")
}

func TestManager_MaxAgeSetsExpires(t *testing.T) {
	t.Parallel()
	m := newManager(t)

	w := httptest.NewRecorder()
	require.NoError(t, m.Set(w, httptest.NewRequest(http.MethodGet, "/", nil), "sess", "v", cookie.Options{MaxAge: 3600}))

	c := findCookie(w, "sess")
	require.NotNil(t, c)
	assert.Equal(t, 3600, c.MaxAge)
	assert.WithinDuration(t, time.Now().Add(time.Hour), c.Expires, 5*time.Second)
}

func TestManager_SecureTransport(t *testing.T) {
	t.Parallel()
	opts := cookie.Options{Path: "/", Secure: true, Signed: true}

	t.Run("plain http is refused without headers", func(t *testing.T) {
		t.Parallel()
		m := newManager(t)
		w := httptest.NewRecorder()

		err := m.Set(w, httptest.NewRequest(http.MethodGet, "/", nil), "sess", "v", opts)
		assert.ErrorIs(t, err, cookie.ErrInsecureTransport)
		assert.Empty(t, w.Header().Values("Set-Cookie"))
	})

	t.Run("tls request", func(t *testing.T) {
		t.Parallel()
		m := newManager(t)
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.TLS = &tls.ConnectionState{}

		require.NoError(t, m.Set(w, r, "sess", "v", opts))
		assert.True(t, findCookie(w, "sess").Secure)
	})

	t.Run("forwarded proto needs trust", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("X-Forwarded-Proto", "https")

		err := newManager(t).Set(httptest.NewRecorder(), r, "sess", "v", opts)
		assert.ErrorIs(t, err, cookie.ErrInsecureTransport)

		err = newManager(t, cookie.WithTrustProxy(true)).Set(httptest.NewRecorder(), r, "sess", "v", opts)
		assert.NoError(t, err)
	})
}

func TestManager_Overwrite(t *testing.T) {
	t.Parallel()
	m := newManager(t)
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	w := httptest.NewRecorder()
	require.NoError(t, m.Set(w, r, "keep", "1", cookie.Options{}))
	require.NoError(t, m.Set(w, r, "sess", "first", cookie.Options{Signed: true, Overwrite: true}))
	require.NoError(t, m.Set(w, r, "sess", "second", cookie.Options{Signed: true, Overwrite: true}))

	lines := w.Header().Values("Set-Cookie")
	assert.Len(t, lines, 3)
	assert.Equal(t, "second", findCookie(w, "sess").Value)
	assert.NotNil(t, findCookie(w, "keep"))

	w = httptest.NewRecorder()
	require.NoError(t, m.Set(w, r, "sess", "first", cookie.Options{}))
	require.NoError(t, m.Set(w, r, "sess", "second", cookie.Options{}))
	assert.Len(t, w.Header().Values("Set-Cookie"), 2)
}

func TestManager_InvalidCookies(t *testing.T) {
	t.Parallel()
	m := newManager(t)
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	t.Run("invalid name", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		err := m.Set(w, r, "toa:sess", "v", cookie.Options{})
		assert.ErrorIs(t, err, cookie.ErrInvalidCookie)
		assert.Empty(t, w.Header().Values("Set-Cookie"))
	})

	t.Run("header injection in value", func(t *testing.T) {
		t.Parallel()
		err := m.Set(httptest.NewRecorder(), r, "sess", "v\r\nX-Evil: 1", cookie.Options{})
		assert.ErrorIs(t, err, cookie.ErrInvalidCookie)
	})

	t.Run("partitioned without secure", func(t *testing.T) {
		t.Parallel()
		err := m.Set(httptest.NewRecorder(), r, "sess", "v", cookie.Options{Partitioned: true})
		assert.ErrorIs(t, err, cookie.ErrInvalidCookie)
	})

	t.Run("too large", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		err := m.Set(w, r, "sess", strings.Repeat("a", 5000), cookie.Options{})
		assert.ErrorIs(t, err, cookie.ErrCookieTooLarge)
		assert.Empty(t, w.Header().Values("Set-Cookie"))
	})
}

func TestOptions_With(t *testing.T) {
	t.Parallel()

	base := cookie.Options{Path: "/", MaxAge: 60}
	derived := base.With(cookie.WithMaxAge(120), cookie.WithSameSite(http.SameSiteNoneMode), nil)

	assert.Equal(t, 60, base.MaxAge)
	assert.Equal(t, http.SameSite(0), base.SameSite)
	assert.Equal(t, 120, derived.MaxAge)
	assert.Equal(t, http.SameSiteNoneMode, derived.SameSite)
	assert.Equal(t, "/", derived.Path)
}

func TestParseSameSite(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    http.SameSite
		wantErr bool
	}{
		{"", 0, false},
		{"default", http.SameSiteDefaultMode, false},
		{"Lax", http.SameSiteLaxMode, false},
		{"STRICT", http.SameSiteStrictMode, false},
		{" none ", http.SameSiteNoneMode, false},
		{"sometimes", 0, true},
	}

	for _, tt := range tests {
		got, err := cookie.ParseSameSite(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, cookie.ErrInvalidSameSite, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	cfg := cookie.DefaultConfig()
	cfg.Secrets = " " + secret + " , " + oldSecret
	cfg.Domain = "example.com"
	cfg.SameSite = "strict"
	cfg.Secure = true

	m, err := cookie.NewFromConfig(cfg)
	require.NoError(t, err)

	d := m.Defaults()
	assert.Equal(t, "example.com", d.Domain)
	assert.Equal(t, http.SameSiteStrictMode, d.SameSite)
	assert.True(t, d.Secure)
	assert.True(t, d.HttpOnly)

	_, err = cookie.NewFromConfig(cookie.DefaultConfig())
	assert.ErrorIs(t, err, cookie.ErrNoSecret)

	cfg.SameSite = "bogus"
	_, err = cookie.NewFromConfig(cfg)
	assert.ErrorIs(t, err, cookie.ErrInvalidSameSite)
}

func BenchmarkManager_SetSigned(b *testing.B) {
	m := newManager(b)
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	opts := cookie.Options{Path: "/", Signed: true}

	for b.Loop() {
		_ = m.Set(httptest.NewRecorder(), r, "bench", "value", opts)
	}
}

func BenchmarkManager_GetEncrypted(b *testing.B) {
	m := newManager(b)
	opts := cookie.Options{Path: "/", Encrypted: true}
	w := httptest.NewRecorder()
	_ = m.Set(w, httptest.NewRequest(http.MethodGet, "/", nil), "bench", "value", opts)
	r := replay(w)

	for b.Loop() {
		_, _ = m.Get(r, "bench", opts)
	}
}
