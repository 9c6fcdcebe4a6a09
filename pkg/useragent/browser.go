package useragent

import (
	"regexp"
	"strconv"
	"strings"
)

// Browser represents browser information
type Browser struct {
	Name    string
	Version string
}

// Major returns the leading numeric component of the version, or 0.
func (b Browser) Major() int {
	return leadingInt(b.Version)
}

// BrowserPattern defines a pattern for detecting a browser
type BrowserPattern struct {
	Name      string
	Keywords  []string
	Excludes  []string
	Regex     *regexp.Regexp
	OrderHint int
}

// Extract version from a user agent string using a regex
func extractVersion(ua string, regex *regexp.Regexp) string {
	if regex == nil {
		return ""
	}
	matches := regex.FindStringSubmatch(ua)
	if len(matches) > 1 {
		version := matches[1]
		// Limit version length to avoid excessively long versions
		if len(version) > 20 {
			version = version[:20]
		}
		return version
	}
	return ""
}

// matchPattern reports whether ua contains any keyword of the pattern and
// none of its excludes.
func matchPattern(ua string, pattern BrowserPattern) bool {
	found := false
	for _, keyword := range pattern.Keywords {
		if strings.Contains(ua, keyword) {
			found = true
			break
		}
	}
	if !found {
		return false
	}
	for _, exclude := range pattern.Excludes {
		if strings.Contains(ua, exclude) {
			return false
		}
	}
	return true
}

// Browser detection patterns. Chromium derivatives come before Chrome since
// they carry a Chrome token as well.
var browserPatterns = []BrowserPattern{
	{
		Name:      BrowserEdge,
		Keywords:  []string{"edg/", "edge/"},
		Regex:     regexp.MustCompile(`(?i)(?:edge|edg)/([\d.]+)`),
		OrderHint: 10,
	},
	{
		Name:      BrowserSamsung,
		Keywords:  []string{"samsungbrowser"},
		Regex:     regexp.MustCompile(`(?i)samsungbrowser/([\d.]+)`),
		OrderHint: 20,
	},
	{
		Name:      BrowserUC,
		Keywords:  []string{"ucbrowser"},
		Regex:     regexp.MustCompile(`(?i)ucbrowser/([\d.]+)`),
		OrderHint: 30,
	},
	{
		Name:      BrowserOpera,
		Keywords:  []string{"opr/", "opera"},
		Regex:     regexp.MustCompile(`(?i)(?:opr|opera)[/\s]([\d.]+)`),
		OrderHint: 40,
	},
	{
		Name:      BrowserChromium,
		Keywords:  []string{"chromium/"},
		Regex:     regexp.MustCompile(`(?i)chromium/([\d.]+)`),
		OrderHint: 50,
	},
	{
		Name:      BrowserChrome,
		Keywords:  []string{"chrome/", "crios/"},
		Regex:     regexp.MustCompile(`(?i)(?:chrome|crios)/([\d.]+)`),
		OrderHint: 60,
	},
	{
		Name:      BrowserFirefox,
		Keywords:  []string{"firefox/", "fxios/"},
		Regex:     regexp.MustCompile(`(?i)(?:firefox|fxios)/([\d.]+)`),
		OrderHint: 70,
	},
	{
		Name:      BrowserSafari,
		Keywords:  []string{"safari"},
		Excludes:  []string{"chrome", "chromium", "android"},
		Regex:     regexp.MustCompile(`(?i)version/([\d.]+)`),
		OrderHint: 80,
	},
	{
		Name:      BrowserIE,
		Keywords:  []string{"msie", "trident/"},
		Regex:     regexp.MustCompile(`(?i)(?:msie |rv:)([\d.]+)`),
		OrderHint: 90,
	},
}

// ParseBrowser parses the browser information from a lower-cased user agent string
func ParseBrowser(lowerUA string) Browser {
	for _, pattern := range browserPatterns {
		if matchPattern(lowerUA, pattern) {
			return Browser{
				Name:    pattern.Name,
				Version: extractVersion(lowerUA, pattern.Regex),
			}
		}
	}

	return Browser{Name: BrowserUnknown}
}

// leadingInt parses the digits before the first separator of a dotted or
// underscored version string.
func leadingInt(version string) int {
	end := strings.IndexFunc(version, func(r rune) bool { return r < '0' || r > '9' })
	if end == -1 {
		end = len(version)
	}
	n, err := strconv.Atoi(version[:end])
	if err != nil {
		return 0
	}
	return n
}
