package theme

import "os"

// Nerd Font icons
const (
	nerdIconSuccess = "\U000F012C" // md-check (U+F012C)
	nerdIconError   = "\uea87"     // cod-error (U+EA87)
	nerdIconWarning = "\uf071"     // fa-warning (U+F071)
	nerdIconInfo    = "\U000F02FC" // md-information (U+F02FC)
	nerdIconRunning = "\uf021"     // fa-refresh (U+F021)
	nerdIconBullet  = "\uf444"     // oct-dot_fill (U+F444)
	nerdIconArrow   = "\U000F0054" // md-arrow_right (U+F0054)
	nerdIconDisplay = "\U000F0379" // md-monitor (U+F0379)
	nerdIconWindow  = "\ueb7f"     // cod-window (U+EB7F)
	nerdIconPin     = "\U000F0403" // md-pin (U+F0403)
)

// ASCII fallbacks
const (
	asciiIconSuccess = "*"
	asciiIconError   = "x"
	asciiIconWarning = "!"
	asciiIconInfo    = "i"
	asciiIconRunning = "~"
	asciiIconBullet  = "-"
	asciiIconArrow   = "->"
	asciiIconDisplay = "#"
	asciiIconWindow  = "[]"
	asciiIconPin     = "^"
)

var (
	IconSuccess string
	IconError   string
	IconWarning string
	IconInfo    string
	IconRunning string
	IconBullet  string
	IconArrow   string
	IconDisplay string
	IconWindow  string
	IconPin     string
)

func init() {
	SetASCIIIcons(os.Getenv("CONDUCTOR_ICONS") == "ascii")
}

// SetASCIIIcons switches between the Nerd Font and plain ASCII icon sets.
func SetASCIIIcons(ascii bool) {
	if ascii {
		IconSuccess = asciiIconSuccess
		IconError = asciiIconError
		IconWarning = asciiIconWarning
		IconInfo = asciiIconInfo
		IconRunning = asciiIconRunning
		IconBullet = asciiIconBullet
		IconArrow = asciiIconArrow
		IconDisplay = asciiIconDisplay
		IconWindow = asciiIconWindow
		IconPin = asciiIconPin
		return
	}
	IconSuccess = nerdIconSuccess
	IconError = nerdIconError
	IconWarning = nerdIconWarning
	IconInfo = nerdIconInfo
	IconRunning = nerdIconRunning
	IconBullet = nerdIconBullet
	IconArrow = nerdIconArrow
	IconDisplay = nerdIconDisplay
	IconWindow = nerdIconWindow
	IconPin = nerdIconPin
}
