package session

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"strings"
)

// Values is the key/value record stored in a session cookie.
// Values must be JSON-compatible.
type Values map[string]any

// Encode turns values into a cookie token: JSON with keys in ascending order,
// then standard base64. An empty record encodes to "" so that an empty session
// never produces a cookie.
func Encode(v Values) (string, error) {
	if len(v) == 0 {
		return "", nil
	}

	// encoding/json sorts map keys, which makes equal records byte-identical
	b, err := json.Marshal(map[string]any(v))
	if err != nil {
		return "", errors.Join(ErrEncode, err)
	}

	return base64.StdEncoding.EncodeToString(b), nil
}

// Decode is the inverse of Encode. Any structural failure yields
// ErrInvalidToken; numbers are kept as json.Number so a decoded record
// re-encodes to the same bytes.
func Decode(token string) (Values, error) {
	raw, ok := decodeBase64(strings.TrimSpace(token))
	if !ok {
		return nil, ErrInvalidToken
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v map[string]any
	if err := dec.Decode(&v); err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	// "null" decodes into a nil map
	if v == nil {
		return nil, ErrInvalidToken
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, ErrInvalidToken
	}

	return Values(v), nil
}

var encodings = []*base64.Encoding{
	base64.StdEncoding,
	base64.RawStdEncoding,
	base64.URLEncoding,
	base64.RawURLEncoding,
}

func decodeBase64(s string) ([]byte, bool) {
	if s == "" {
		return nil, false
	}
	for _, enc := range encodings {
		if b, err := enc.DecodeString(s); err == nil {
			return b, true
		}
	}
	return nil, false
}
