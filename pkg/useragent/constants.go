package useragent

// Device types represent the category of device that made the request
const (
	DeviceTypeBot     = "bot"
	DeviceTypeMobile  = "mobile"
	DeviceTypeTablet  = "tablet"
	DeviceTypeDesktop = "desktop"
	DeviceTypeUnknown = "unknown"
)

// Browser name identifiers
const (
	BrowserChrome   = "chrome"
	BrowserChromium = "chromium"
	BrowserEdge     = "edge"
	BrowserOpera    = "opera"
	BrowserSamsung  = "samsung"
	BrowserUC       = "uc"
	BrowserFirefox  = "firefox"
	BrowserSafari   = "safari"
	BrowserIE       = "ie"
	BrowserUnknown  = "unknown"
)

// Operating system identifiers
const (
	OSWindows  = "windows"
	OSMacOS    = "macos"
	OSiOS      = "ios"
	OSAndroid  = "android"
	OSLinux    = "linux"
	OSChromeOS = "chromeos"
	OSUnknown  = "unknown"
)
