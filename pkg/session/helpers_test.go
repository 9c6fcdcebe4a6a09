package session_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/cookiesession/pkg/cookie"
	"github.com/dmitrymomot/cookiesession/pkg/session"
)

const (
	testSecret = "test-secret-key-that-is-long-enough"

	chrome79 = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/79.0.3945.130 Safari/537.36"
	chrome80 = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/80.0.3987.87 Safari/537.36"
)

func newJar(t testing.TB) *cookie.Manager {
	t.Helper()
	jar, err := cookie.New([]string{testSecret})
	require.NoError(t, err)
	return jar
}

func setupManager(t testing.TB, opts ...session.Option) (*session.Manager, *cookie.Manager) {
	t.Helper()
	jar := newJar(t)
	return session.New(jar, opts...), jar
}

// withSession signs values into the request the way a previous response
// would have set them.
func withSession(t testing.TB, jar *cookie.Manager, r *http.Request, values session.Values) {
	t.Helper()
	token, err := session.Encode(values)
	require.NoError(t, err)
	withToken(t, jar, r, token)
}

func withToken(t testing.TB, jar *cookie.Manager, r *http.Request, token string) {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, jar.Set(rec, r, session.DefaultCookieName, token, cookie.Options{Path: "/", Signed: true}))
	carry(rec, r)
}

// carry copies live cookies from a response into the next request.
func carry(rec *httptest.ResponseRecorder, r *http.Request) {
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge < 0 {
			continue
		}
		r.AddCookie(c)
	}
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// setCookieLine returns the raw Set-Cookie header for name.
func setCookieLine(rec *httptest.ResponseRecorder, name string) string {
	for _, line := range rec.Result().Header.Values("Set-Cookie") {
		if strings.HasPrefix(line, name+"=") {
			return line
		}
	}
	return ""
}

func decodeCookie(t testing.TB, rec *httptest.ResponseRecorder) session.Values {
	t.Helper()
	c := findCookie(rec, session.DefaultCookieName)
	require.NotNil(t, c, "session cookie expected")
	values, err := session.Decode(c.Value)
	require.NoError(t, err)
	return values
}
