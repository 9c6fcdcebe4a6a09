package session

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/cookiesession/pkg/cookie"
	"github.com/dmitrymomot/cookiesession/pkg/logger"
	"github.com/dmitrymomot/cookiesession/pkg/useragent"
)

// CookieJar reads and writes named cookies. Get returns the verified raw
// value; Set with an empty value expires the cookie.
// *cookie.Manager satisfies it.
type CookieJar interface {
	Get(r *http.Request, name string, opts cookie.Options) (string, error)
	Set(w http.ResponseWriter, r *http.Request, name, value string, opts cookie.Options) error
}

// ErrorHandler writes the response for a request whose session could not
// be saved.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// SameSiteChecker reports whether the client behind a User-Agent header
// honours SameSite=None.
type SameSiteChecker func(userAgent string) bool

// Manager handles session cookies for HTTP requests
type Manager struct {
	jar          CookieJar
	name         string
	options      cookie.Options
	setCookie    bool
	logger       *slog.Logger
	errorHandler ErrorHandler
	sameSiteNone SameSiteChecker
}

// New creates a new session manager with the given options
func New(jar CookieJar, opts ...Option) *Manager {
	if jar == nil {
		// Fail fast on misconfiguration rather than dropping sessions at runtime
		panic("session: cookie jar is required")
	}

	m := &Manager{
		jar:          jar,
		name:         DefaultCookieName,
		options:      defaultCookieOptions(jar),
		setCookie:    true,
		logger:       logger.NewNope(),
		errorHandler: defaultErrorHandler,
		sameSiteNone: useragent.SameSiteNoneCompatible,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Name returns the session cookie name
func (m *Manager) Name() string {
	return m.name
}

// Options returns a copy of the base cookie options
func (m *Manager) Options() cookie.Options {
	return m.options
}

// Begin creates the session slot for r with its own copy of the cookie
// options. Middleware calls it for every request; handlers that manage the
// response themselves pair it with Commit.
func (m *Manager) Begin(r *http.Request) *State {
	return &State{
		manager: m,
		r:       r,
		opts:    m.options,
	}
}

// Commit applies the save decision for st to w. It must run before the
// response headers are written and acts only once per State.
func (m *Manager) Commit(w http.ResponseWriter, st *State) error {
	return st.commit(w)
}

func (m *Manager) save(w http.ResponseWriter, st *State) error {
	if !m.setCookie {
		return nil
	}

	switch st.slot {
	case slotUnloaded:
		return nil
	case slotCleared:
		if !st.last.held() {
			return nil
		}
		return m.write(w, st, "")
	}

	token, err := st.sess.Serialize()
	if err != nil {
		return err
	}

	baseline := st.sess.ctx.baseline
	if token == baseline {
		// Covers both "unchanged" and "empty with nothing to invalidate"
		return nil
	}

	return m.write(w, st, token)
}

func (m *Manager) write(w http.ResponseWriter, st *State, token string) error {
	opts := m.effectiveOptions(st)
	if err := m.jar.Set(w, st.r, m.name, token, opts); err != nil {
		return errors.Join(ErrSaveFailed, err)
	}
	return nil
}

// effectiveOptions drops SameSite=None when the cookie is not secure or the
// client is known to mishandle it; those clients reject or misfile the cookie.
func (m *Manager) effectiveOptions(st *State) cookie.Options {
	opts := st.opts
	if opts.SameSite != http.SameSiteNoneMode {
		return opts
	}

	ua := st.r.UserAgent()
	if opts.Secure && m.sameSiteNone(ua) {
		return opts
	}

	opts.SameSite = 0
	if m.logger.Enabled(st.r.Context(), slog.LevelDebug) {
		client, _ := useragent.Parse(ua)
		m.logger.DebugContext(st.r.Context(), "SameSite=None suppressed",
			logger.Component("session"),
			slog.Bool("secure", opts.Secure),
			logger.Client(client.ShortIdentifier()),
		)
	}
	return opts
}

func defaultErrorHandler(w http.ResponseWriter, _ *http.Request, _ error) {
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
