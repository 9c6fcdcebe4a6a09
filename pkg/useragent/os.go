package useragent

import (
	"regexp"
	"strings"
)

// OS represents operating system information. Version uses dots as separators
// regardless of how the user agent spells it.
type OS struct {
	Name    string
	Version string
}

// Major returns the leading numeric component of the version, or 0.
func (o OS) Major() int {
	return leadingInt(o.Version)
}

var (
	iOSKeywords      = newKeywordSet("iphone", "ipad", "ipod")
	macOSKeywords    = newKeywordSet("macintosh", "mac os x")
	chromeOSKeywords = newKeywordSet("cros", "chromeos")
	linuxKeywords    = newKeywordSet("linux", "ubuntu", "debian", "fedora", "x11")

	windowsVersion = regexp.MustCompile(`windows nt ([\d.]+)`)
	iOSVersion     = regexp.MustCompile(`os ([\d_]+) like mac os x`)
	macOSVersion   = regexp.MustCompile(`mac os x ([\d_.]+)`)
	androidVersion = regexp.MustCompile(`android ([\d.]+)`)
)

// ParseOS identifies the operating system of a lower-cased UA string.
// Order matters: iOS UAs also mention "mac os x", Android ones "linux".
func ParseOS(lowerUA string) OS {
	switch {
	case lowerUA == "":
		return OS{Name: OSUnknown}
	case strings.Contains(lowerUA, "windows"):
		return OS{Name: OSWindows, Version: extractVersion(lowerUA, windowsVersion)}
	case iOSKeywords.contains(lowerUA):
		return OS{Name: OSiOS, Version: normalizeVersion(extractVersion(lowerUA, iOSVersion))}
	case macOSKeywords.contains(lowerUA):
		return OS{Name: OSMacOS, Version: normalizeVersion(extractVersion(lowerUA, macOSVersion))}
	case strings.Contains(lowerUA, "android"):
		return OS{Name: OSAndroid, Version: extractVersion(lowerUA, androidVersion)}
	case chromeOSKeywords.contains(lowerUA):
		return OS{Name: OSChromeOS}
	case linuxKeywords.contains(lowerUA):
		return OS{Name: OSLinux}
	default:
		return OS{Name: OSUnknown}
	}
}

func normalizeVersion(v string) string {
	return strings.ReplaceAll(v, "_", ".")
}
