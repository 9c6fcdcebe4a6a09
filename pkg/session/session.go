package session

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// sessionContext tracks where a session came from within one request.
// It is shared by every Session that replaces the loaded one, so isNew and
// the dirty-check baseline survive reassignment.
type sessionContext struct {
	isNew    bool
	baseline string // canonical token right after load, "" when none
	present  bool   // the client sent a session cookie, valid or not
}

// held reports whether the client holds a cookie that clearing must expire.
func (c *sessionContext) held() bool {
	return c != nil && (c.present || c.baseline != "")
}

// Session is the key/value data carried by the session cookie for the
// current request. A nil *Session behaves as an empty, read-only session.
type Session struct {
	values Values
	ctx    *sessionContext
}

// newSession copies src into a session bound to ctx.
func newSession(src Values, ctx *sessionContext) *Session {
	values := make(Values, len(src))
	maps.Copy(values, src)
	return &Session{values: values, ctx: ctx}
}

// IsNew returns true if no valid session cookie was present when the
// session was created
func (s *Session) IsNew() bool {
	return s == nil || s.ctx == nil || s.ctx.isNew
}

// Get retrieves a value from session data
func (s *Session) Get(key string) (any, bool) {
	if s == nil || s.values == nil {
		return nil, false
	}
	val, ok := s.values[key]
	return val, ok
}

// GetString retrieves a string value from session data
func (s *Session) GetString(key string) (string, bool) {
	val, ok := s.Get(key)
	if !ok {
		return "", false
	}
	str, ok := val.(string)
	return str, ok
}

// GetInt retrieves an int value from session data.
// Numbers decoded from a cookie arrive as json.Number.
func (s *Session) GetInt(key string) (int, bool) {
	val, ok := s.Get(key)
	if !ok {
		return 0, false
	}
	switch v := val.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}

// GetBool retrieves a bool value from session data
func (s *Session) GetBool(key string) (bool, bool) {
	val, ok := s.Get(key)
	if !ok {
		return false, false
	}
	b, ok := val.(bool)
	return b, ok
}

// Has reports whether key is set
func (s *Session) Has(key string) bool {
	_, ok := s.Get(key)
	return ok
}

// Set stores a value in session data
func (s *Session) Set(key string, value any) {
	if s == nil {
		return
	}
	if s.values == nil {
		s.values = make(Values)
	}
	s.values[key] = value
}

// Delete removes a value from session data
func (s *Session) Delete(key string) {
	if s == nil || s.values == nil {
		return
	}
	delete(s.values, key)
}

// Clear removes all data from the session. The session itself stays in
// place; an emptied session that was loaded from a cookie expires it.
func (s *Session) Clear() {
	if s == nil {
		return
	}
	s.values = make(Values)
}

// Len returns the number of keys
func (s *Session) Len() int {
	if s == nil {
		return 0
	}
	return len(s.values)
}

// Keys returns the keys in ascending order
func (s *Session) Keys() []string {
	if s == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(s.values))
}

// Values returns a copy of the session data
func (s *Session) Values() Values {
	if s == nil {
		return Values{}
	}
	return maps.Clone(s.values)
}

// Serialize returns the cookie token for the current data, or "" when the
// session is empty.
func (s *Session) Serialize() (string, error) {
	if s == nil {
		return "", nil
	}
	return Encode(s.values)
}

// Changed reports whether the data differs from what the client holds
func (s *Session) Changed() bool {
	if s == nil {
		return false
	}
	token, err := s.Serialize()
	if err != nil {
		return true
	}
	return s.ctx == nil || token != s.ctx.baseline
}

// Value is a typed helper to retrieve session values with type safety.
// Returns an error if the key doesn't exist or type assertion fails.
func Value[T any](s *Session, key string) (T, error) {
	var zero T

	val, ok := s.Get(key)
	if !ok {
		return zero, ErrValueNotFound
	}

	typed, ok := val.(T)
	if !ok {
		return zero, fmt.Errorf("%w: key %q holds %T", ErrTypeMismatch, key, val)
	}

	return typed, nil
}

// ValueOr is a typed helper that returns a default value if the key
// doesn't exist or type assertion fails.
func ValueOr[T any](s *Session, key string, defaultVal T) T {
	val, err := Value[T](s, key)
	if err != nil {
		return defaultVal
	}
	return val
}
