package session

import (
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/dmitrymomot/cookiesession/pkg/cookie"
	"github.com/dmitrymomot/cookiesession/pkg/logger"
)

type slot int

const (
	slotUnloaded slot = iota
	slotLoaded
	slotCleared
)

// State is the session slot of a single request. It loads the session
// lazily from the cookie on first access and remembers what the client
// holds so the save at the end of the request can skip unchanged data.
//
// A State is owned by one request and is not safe for concurrent use.
type State struct {
	manager *Manager
	r       *http.Request
	opts    cookie.Options

	slot slot
	sess *Session
	last *sessionContext // survives Clear so a later save knows what to expire

	once sync.Once
	err  error
}

// Session returns the current session, loading it from the request cookie
// on first use. A missing, rejected or undecodable cookie yields an empty
// session that reports IsNew. Returns nil after Clear.
func (st *State) Session() *Session {
	switch st.slot {
	case slotLoaded:
		return st.sess
	case slotCleared:
		return nil
	}
	st.load()
	return st.sess
}

// Replace installs a new session built from a copy of v. The cookie is
// loaded first if nothing read it yet, so the replacement keeps the
// provenance of the current session; after Clear it starts a new one.
func (st *State) Replace(v Values) *Session {
	if st.slot == slotUnloaded {
		st.load()
	}

	var ctx *sessionContext
	switch st.slot {
	case slotLoaded:
		ctx = st.sess.ctx
	case slotCleared:
		ctx = st.fresh()
	}

	st.sess = newSession(v, ctx)
	st.last = ctx
	st.slot = slotLoaded
	return st.sess
}

// Clear terminates the session. The cookie is expired at the end of the
// request if the client sent one.
func (st *State) Clear() {
	if st.slot == slotUnloaded {
		st.load()
	}
	st.sess = nil
	st.slot = slotCleared
}

// Assign sets the session slot from an untyped value: nil clears it,
// Values, map[string]any and *Session replace it. Any other type fails
// with ErrInvalidValue and leaves the slot untouched.
func (st *State) Assign(v any) error {
	switch val := v.(type) {
	case nil:
		st.Clear()
	case Values:
		st.Replace(val)
	case map[string]any:
		st.Replace(Values(val))
	case *Session:
		if val == nil {
			st.Clear()
			return nil
		}
		st.Replace(val.values)
	default:
		return fmt.Errorf("%w: %T", ErrInvalidValue, v)
	}
	return nil
}

// Options returns the cookie options of this request. Changes apply to the
// session cookie of this response only.
func (st *State) Options() *cookie.Options {
	return &st.opts
}

// Loaded reports whether the session slot has been accessed
func (st *State) Loaded() bool {
	return st.slot != slotUnloaded
}

// Cleared reports whether the session was terminated during this request
func (st *State) Cleared() bool {
	return st.slot == slotCleared
}

// fresh returns a new-session context that still knows what the client holds.
func (st *State) fresh() *sessionContext {
	ctx := &sessionContext{isNew: true}
	if st.last != nil {
		ctx.baseline = st.last.baseline
		ctx.present = st.last.present
	}
	return ctx
}

func (st *State) load() {
	m := st.manager
	ctx := &sessionContext{isNew: true}

	var values Values
	raw, err := m.jar.Get(st.r, m.name, st.opts)
	switch {
	case err == nil && raw != "":
		ctx.present = true
		decoded, derr := Decode(raw)
		if derr != nil {
			m.logger.DebugContext(st.r.Context(), "session cookie undecodable",
				logger.Component("session"), logger.Error(derr))
			break
		}
		values = decoded
		ctx.isNew = false
	case err != nil && !errors.Is(err, cookie.ErrCookieNotFound):
		ctx.present = true
		m.logger.DebugContext(st.r.Context(), "session cookie rejected",
			logger.Component("session"), logger.Error(err))
	}

	sess := newSession(values, ctx)
	if !ctx.isNew {
		// The baseline is the re-serialization, not the raw cookie, so a
		// token with reordered keys still counts as unchanged.
		baseline, err := sess.Serialize()
		if err != nil {
			ctx.isNew = true
			sess = newSession(nil, ctx)
		}
		ctx.baseline = baseline
	}

	st.sess = sess
	st.last = ctx
	st.slot = slotLoaded
}

// commit runs the save decision once; later calls return the first result.
func (st *State) commit(w http.ResponseWriter) error {
	st.once.Do(func() {
		st.err = st.manager.save(w, st)
	})
	return st.err
}
