package useragent

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Client contains the parsed information from a user agent string
type Client struct {
	userAgent  string
	deviceType string
	browser    Browser
	os         OS
}

// String returns the raw user agent
func (c Client) String() string { return c.userAgent }

// UserAgent returns the full user agent string
func (c Client) UserAgent() string { return c.userAgent }

// DeviceType returns the device type (mobile, desktop, tablet, bot, unknown)
func (c Client) DeviceType() string { return c.deviceType }

// Browser returns the browser name and version
func (c Client) Browser() Browser { return c.browser }

// OS returns the operating system name and version
func (c Client) OS() OS { return c.os }

// IsBot returns true if the user agent is a bot
func (c Client) IsBot() bool { return c.deviceType == DeviceTypeBot }

// SameSiteNoneCompatible reports whether this client honours SameSite=None.
func (c Client) SameSiteNoneCompatible() bool {
	return SameSiteNoneCompatible(c.userAgent)
}

var displayNames = map[string]string{
	OSiOS:          "iOS",
	OSMacOS:        "macOS",
	OSChromeOS:     "ChromeOS",
	BrowserUC:      "UC Browser",
	BrowserIE:      "IE",
	BrowserUnknown: "Unknown",
}

func displayName(name string) string {
	if name == "" {
		return "Unknown"
	}
	if d, ok := displayNames[name]; ok {
		return d
	}
	// Casers keep state between calls, so one is built per use
	return cases.Title(language.English).String(name)
}

// ShortIdentifier returns a short human-readable label for logs, e.g.
// "Chrome/79 (Windows, desktop)".
func (c Client) ShortIdentifier() string {
	if c.IsBot() {
		return "Bot"
	}

	version := "?"
	if c.browser.Version != "" {
		version = c.browser.Version
		if major, _, ok := strings.Cut(version, "."); ok {
			version = major
		}
	}

	return fmt.Sprintf("%s/%s (%s, %s)", displayName(c.browser.Name), version, displayName(c.os.Name), c.deviceType)
}

// Parse parses a user agent string. A partially recognised client is returned
// alongside ErrMalformedUserAgent when neither browser nor OS are known.
func Parse(ua string) (Client, error) {
	if strings.TrimSpace(ua) == "" {
		return New("", DeviceTypeUnknown, Browser{Name: BrowserUnknown}, OS{Name: OSUnknown}), ErrEmptyUserAgent
	}

	lowerUA := strings.ToLower(ua)

	client := New(ua, ParseDeviceType(lowerUA), ParseBrowser(lowerUA), ParseOS(lowerUA))
	if client.browser.Name == BrowserUnknown && client.os.Name == OSUnknown && !client.IsBot() {
		return client, ErrMalformedUserAgent
	}

	return client, nil
}

// New creates a Client with the provided parameters
func New(ua, deviceType string, browser Browser, os OS) Client {
	return Client{
		userAgent:  ua,
		deviceType: deviceType,
		browser:    browser,
		os:         os,
	}
}
