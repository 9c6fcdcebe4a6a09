package useragent

import (
	"regexp"
	"strconv"
	"strings"
)

// Chromium shipped working SameSite=None handling in release 80.
const minSameSiteNoneChromium = 80

var (
	chromiumBased    = regexp.MustCompile(`Chrom(?:e|ium)`)
	chromiumVersion  = regexp.MustCompile(`Chrom[^ /\\]+/(\d+)[.\d]* `)
	iOSWebKit        = regexp.MustCompile(`\(iP.+; CPU .*OS (\d+)[_\d]*.*\) AppleWebKit/`)
	macOSWebKit      = regexp.MustCompile(`\(Macintosh;.*Mac OS X (\d+)_(\d+)[_\d]*.*\) AppleWebKit/`)
	safariToken      = regexp.MustCompile(`Version/.* Safari/`)
	macEmbedded      = regexp.MustCompile(`^Mozilla/[.\d]+ \(Macintosh;.*Mac OS X [_\d]+\) AppleWebKit/[.\d]+ \(KHTML, like Gecko\)$`)
	ucBrowserToken   = regexp.MustCompile(`UCBrowser/`)
	ucBrowserVersion = regexp.MustCompile(`UCBrowser/(\d+)\.(\d+)\.(\d+)[.\d]* `)
)

// SameSiteNoneCompatible reports whether a client with the given User-Agent
// handles cookies marked SameSite=None correctly. Clients that cannot be
// identified are reported as incompatible.
func SameSiteNoneCompatible(ua string) bool {
	if strings.TrimSpace(ua) == "" {
		return false
	}

	if major, ok := chromiumMajor(ua); ok {
		return major >= minSameSiteNoneChromium
	}

	// A Chromium build whose version we cannot read may be anything down to 51.
	if chromiumBased.MatchString(ua) {
		return false
	}

	return !hasWebKitSameSiteBug(ua) && !dropsUnrecognizedSameSite(ua)
}

func chromiumMajor(ua string) (int, bool) {
	m := chromiumVersion.FindStringSubmatch(ua)
	if m == nil {
		return 0, false
	}
	major, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return major, true
}

// hasWebKitSameSiteBug matches iOS 12 and macOS 10.14 Safari, which treat
// SameSite=None as SameSite=Strict.
func hasWebKitSameSiteBug(ua string) bool {
	if m := iOSWebKit.FindStringSubmatch(ua); m != nil && m[1] == "12" {
		return true
	}

	m := macOSWebKit.FindStringSubmatch(ua)
	if m == nil || m[1] != "10" || m[2] != "14" {
		return false
	}
	isSafari := safariToken.MatchString(ua) && !chromiumBased.MatchString(ua)
	return isSafari || macEmbedded.MatchString(ua)
}

// dropsUnrecognizedSameSite matches UC Browser releases before 12.13.2,
// which reject cookies with an unknown SameSite value.
func dropsUnrecognizedSameSite(ua string) bool {
	if !ucBrowserToken.MatchString(ua) {
		return false
	}

	m := ucBrowserVersion.FindStringSubmatch(ua)
	if m == nil {
		return true
	}

	var v [3]int
	for i := range v {
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return true
		}
		v[i] = n
	}

	switch {
	case v[0] != 12:
		return v[0] < 12
	case v[1] != 13:
		return v[1] < 13
	default:
		return v[2] < 2
	}
}
