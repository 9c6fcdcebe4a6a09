// Package useragent classifies HTTP User-Agent strings and answers the one
// compatibility question cookie code cares about: can this client be sent a
// cookie with SameSite=None?
//
// # SameSite=None compatibility
//
// SameSiteNoneCompatible implements the published list of clients that
// mishandle SameSite=None:
//
//   - Chromium 51 through 79 either reject the cookie or ignore the attribute.
//     Any client exposing a Chromium version token is accepted only from
//     release 80 onwards.
//   - iOS 12 (every WebKit based browser) and Safari or embedded WebKit views
//     on macOS 10.14 treat None as Strict.
//   - UC Browser before 12.13.2 drops cookies carrying an unknown value.
//
// Blank user agents, and Chromium builds without a readable version, are
// reported as incompatible.
//
//	if !useragent.SameSiteNoneCompatible(r.UserAgent()) {
//	    c.SameSite = 0 // omit the attribute
//	}
//
// # Parsing
//
// Parse returns a Client carrying the device type, browser and operating system
// (with versions). Client.ShortIdentifier renders a compact label such as
// "Chrome/79 (Windows, desktop)" for log records.
//
//	client, err := useragent.Parse(r.UserAgent())
//	if err != nil {
//	    // ErrEmptyUserAgent or ErrMalformedUserAgent; client is still usable
//	}
//	log.Printf("client=%s", client.ShortIdentifier())
package useragent
