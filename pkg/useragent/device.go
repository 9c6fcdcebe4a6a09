package useragent

import (
	"strings"
)

// keywordSet optimizes keyword lookups using map structure for O(1) access
type keywordSet map[string]struct{}

func newKeywordSet(keywords ...string) keywordSet {
	result := make(keywordSet, len(keywords))
	for _, word := range keywords {
		result[word] = struct{}{}
	}
	return result
}

func (k keywordSet) contains(s string) bool {
	for keyword := range k {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}

var (
	botKeywords     = newKeywordSet("bot", "spider", "crawler", "slurp", "facebookexternalhit", "lighthouse", "curl/", "wget/")
	tabletKeywords  = newKeywordSet("ipad", "tablet", "kindle", "silk")
	mobileKeywords  = newKeywordSet("mobile", "iphone", "ipod", "windows phone", "blackberry")
	desktopKeywords = newKeywordSet("windows", "macintosh", "mac os x", "linux", "x11", "cros")
)

// ParseDeviceType classifies the device behind a lower-cased UA string.
func ParseDeviceType(lowerUA string) string {
	if lowerUA == "" {
		return DeviceTypeUnknown
	}

	if botKeywords.contains(lowerUA) {
		return DeviceTypeBot
	}

	if tabletKeywords.contains(lowerUA) {
		return DeviceTypeTablet
	}

	// Android tablets omit 'Mobile' keyword, unlike phones
	if strings.Contains(lowerUA, "android") {
		if strings.Contains(lowerUA, "mobile") {
			return DeviceTypeMobile
		}
		return DeviceTypeTablet
	}

	if mobileKeywords.contains(lowerUA) {
		return DeviceTypeMobile
	}

	if desktopKeywords.contains(lowerUA) {
		return DeviceTypeDesktop
	}

	return DeviceTypeUnknown
}
