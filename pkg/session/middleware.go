package session

import (
	"net/http"

	"github.com/dmitrymomot/cookiesession/pkg/logger"
)

// Middleware provides session handling for HTTP requests. The session is
// loaded on first use and saved right before the response headers go out,
// or after the handler returns if it wrote nothing.
//
// Stacked managers share one hook writer.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		st := m.Begin(r)
		r = r.WithContext(WithState(r.Context(), st))
		st.r = r

		hw, ok := w.(*responseWriter)
		if !ok {
			hw = newResponseWriter(w)
		}
		hw.OnBeforeWrite(func() { m.finish(hw, r, st) })

		next.ServeHTTP(hw, r)

		hw.fire()
	})
}

// finish saves the session; on failure the handler's response, headers
// included, is dropped and the error handler answers instead.
func (m *Manager) finish(hw *responseWriter, r *http.Request, st *State) {
	err := st.commit(hw.ResponseWriter)
	if err == nil {
		return
	}

	hw.abort()
	// Nothing the handler or an earlier hook set may leak into the error
	// response, cookies included.
	clear(hw.ResponseWriter.Header())
	m.logger.ErrorContext(r.Context(), "failed to save session",
		logger.Component("session"),
		logger.Cookie(m.name),
		logger.Error(err),
	)
	m.errorHandler(hw.ResponseWriter, r, err)
}
