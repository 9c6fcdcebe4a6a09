package session

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/cookiesession/pkg/logger"
)

type stateContextKey struct{}

// WithState adds a session state to the context
func WithState(ctx context.Context, st *State) context.Context {
	return context.WithValue(ctx, stateContextKey{}, st)
}

// FromContext retrieves the session state from the context
func FromContext(ctx context.Context) (*State, bool) {
	st, ok := ctx.Value(stateContextKey{}).(*State)
	return st, ok && st != nil
}

// MustFromContext retrieves the session state from the context or panics
func MustFromContext(ctx context.Context) *State {
	st, ok := FromContext(ctx)
	if !ok {
		panic("session: not found in context")
	}
	return st
}

// Get returns the session of the request carried by ctx, loading it if needed
func Get(ctx context.Context) (*Session, error) {
	st, ok := FromContext(ctx)
	if !ok {
		return nil, ErrNoState
	}
	return st.Session(), nil
}

// LogExtractor returns a logger.ContextExtractor that adds a "session"
// group with the cookie name and whether the session is new, once the
// request's session has been loaded. It never loads the session itself.
func LogExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		st, ok := FromContext(ctx)
		if !ok || st.slot != slotLoaded {
			return slog.Attr{}, false
		}
		return logger.Group("session",
			slog.String("cookie", st.manager.name),
			slog.Bool("new", st.sess.IsNew()),
		), true
	}
}
