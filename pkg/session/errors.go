package session

import "errors"

var (
	// ErrInvalidValue indicates an assignment to the session slot that is
	// neither nil nor a key/value record
	ErrInvalidValue = errors.New("session.invalid_value")

	// ErrInvalidToken indicates a cookie token that does not decode to a record
	ErrInvalidToken = errors.New("session.invalid_token")

	// ErrEncode indicates session values that cannot be serialized
	ErrEncode = errors.New("session.encode_failed")

	// ErrSaveFailed indicates the cookie jar refused to store the session cookie
	ErrSaveFailed = errors.New("session.save_failed")

	// ErrValueNotFound indicates a missing session key
	ErrValueNotFound = errors.New("session.value_not_found")

	// ErrTypeMismatch indicates a session value of an unexpected type
	ErrTypeMismatch = errors.New("session.type_mismatch")

	// ErrNoState indicates a request that did not pass through the middleware
	ErrNoState = errors.New("session.no_state")
)
