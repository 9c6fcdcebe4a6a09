// Package session keeps per-user session data inside a signed HTTP cookie,
// with no server-side store.
//
// The Manager installs a State for every request. The State loads the
// session from the cookie on first access and records the canonical token
// it was loaded from. Right before the response headers are written the
// Manager compares the current token with that baseline and only emits a
// Set-Cookie header when the data changed or the session was cleared. A
// request that never touches its session never sets a cookie.
//
// Tokens are the JSON encoding of the session values with sorted keys,
// base64 encoded. Equal data always produces the same token, so reordering
// keys is not a change.
//
// Cookies are read and written through a CookieJar; *cookie.Manager provides
// signing (a "<name>.sig" companion cookie) and optional encryption.
//
// When the cookie options ask for SameSite=None the attribute is sent only to
// secure cookies and to clients that honour it. Chromium before 80, Safari on
// iOS 12 and macOS 10.14 and older UC Browser builds get no SameSite attribute
// at all. See useragent.SameSiteNoneCompatible.
//
// # Usage
//
//	import (
//	    "github.com/dmitrymomot/cookiesession/pkg/cookie"
//	    "github.com/dmitrymomot/cookiesession/pkg/session"
//	)
//
//	jar, err := cookie.New([]string{os.Getenv("COOKIE_SECRET")})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	sessions := session.New(jar,
//	    session.WithCookieOptions(cookie.WithMaxAge(86400)),
//	)
//
//	mux := http.NewServeMux()
//	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
//	    st := session.MustFromContext(r.Context())
//	    sess := st.Session()
//	    n, _ := sess.GetInt("views")
//	    sess.Set("views", n+1)
//	    fmt.Fprintf(w, "%d views", n+1)
//	})
//
//	http.ListenAndServe(":8080", sessions.Middleware(mux))
//
// # Clearing and replacing
//
// State.Clear ends the session and expires the cookie if the client sent one.
// State.Replace swaps in new data while keeping track of what the client
// holds. State.Assign accepts untyped input (nil, Values, map[string]any or
// *Session) and rejects anything else with ErrInvalidValue.
//
// # Per-request options
//
// State.Options exposes a copy of the Manager's cookie options for the
// current request only:
//
//	st.Options().MaxAge = int((30 * 24 * time.Hour).Seconds())
//
// # Errors
//
// A cookie that fails verification or decoding is treated as no session. A
// failure to save the cookie, for example a Secure cookie on a plain HTTP
// request, is logged and handed to the ErrorHandler, which responds with 500
// by default; the handler's own response is discarded.
package session
