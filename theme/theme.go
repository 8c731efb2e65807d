// Package theme holds the lipgloss styles and icons used for conductor's
// terminal output.
package theme

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const defaultThemeName = "kanagawa"

// --- Kanagawa Dragon palette ---
const (
	kanagawaGreen     = "#98BB6C"
	kanagawaYellow    = "#FF9E3B"
	kanagawaRed       = "#FF5D62"
	kanagawaCyan      = "#7E9CD8"
	kanagawaBlue      = "#7FB4CA"
	kanagawaViolet    = "#957FB8"
	kanagawaLightText = "#DCD7BA"
	kanagawaMutedText = "#727169"
)

// --- Terminal (ANSI-friendly) palette ---
const (
	terminalGreen     = "2"
	terminalYellow    = "3"
	terminalRed       = "1"
	terminalCyan      = "6"
	terminalBlue      = "4"
	terminalViolet    = "5"
	terminalLightText = "7"
	terminalMutedText = "8"
)

// Colors is the palette a theme is built from.
type Colors struct {
	Green     lipgloss.TerminalColor
	Yellow    lipgloss.TerminalColor
	Red       lipgloss.TerminalColor
	Cyan      lipgloss.TerminalColor
	Blue      lipgloss.TerminalColor
	Violet    lipgloss.TerminalColor
	LightText lipgloss.TerminalColor
	MutedText lipgloss.TerminalColor
}

// Theme holds the pre-configured styles.
type Theme struct {
	Colors Colors

	Header lipgloss.Style

	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	Bold   lipgloss.Style
	Normal lipgloss.Style
	Muted  lipgloss.Style

	// Label styles field names in the human-readable listings.
	Label  lipgloss.Style
	Accent lipgloss.Style
}

var themeRegistry = map[string]func() Colors{
	"kanagawa": newKanagawaColors,
	"terminal": newTerminalColors,
}

// DefaultTheme is the theme selected by CONDUCTOR_THEME, or kanagawa.
var DefaultTheme = NewTheme()

// NewTheme creates a theme from the CONDUCTOR_THEME environment variable.
func NewTheme() *Theme {
	return NewThemeWithName(os.Getenv("CONDUCTOR_THEME"))
}

// NewThemeWithName constructs a theme from a palette name. Unknown names
// fall back to the default palette.
func NewThemeWithName(name string) *Theme {
	ctor, ok := themeRegistry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		ctor = themeRegistry[defaultThemeName]
	}
	return newTheme(ctor())
}

// RenderHeader renders a header with the default styling.
func RenderHeader(title string) string {
	return DefaultTheme.Header.Render(title)
}

func newTheme(c Colors) *Theme {
	return &Theme{
		Colors:  c,
		Header:  lipgloss.NewStyle().Bold(true).Foreground(c.Violet),
		Success: lipgloss.NewStyle().Foreground(c.Green).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(c.Red).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(c.Yellow),
		Info:    lipgloss.NewStyle().Foreground(c.Blue),
		Bold:    lipgloss.NewStyle().Bold(true),
		Normal:  lipgloss.NewStyle(),
		Muted:   lipgloss.NewStyle().Foreground(c.MutedText),
		Label:   lipgloss.NewStyle().Foreground(c.Cyan),
		Accent:  lipgloss.NewStyle().Foreground(c.Violet),
	}
}

func newKanagawaColors() Colors {
	return Colors{
		Green:     lipgloss.Color(kanagawaGreen),
		Yellow:    lipgloss.Color(kanagawaYellow),
		Red:       lipgloss.Color(kanagawaRed),
		Cyan:      lipgloss.Color(kanagawaCyan),
		Blue:      lipgloss.Color(kanagawaBlue),
		Violet:    lipgloss.Color(kanagawaViolet),
		LightText: lipgloss.Color(kanagawaLightText),
		MutedText: lipgloss.Color(kanagawaMutedText),
	}
}

func newTerminalColors() Colors {
	return Colors{
		Green:     lipgloss.Color(terminalGreen),
		Yellow:    lipgloss.Color(terminalYellow),
		Red:       lipgloss.Color(terminalRed),
		Cyan:      lipgloss.Color(terminalCyan),
		Blue:      lipgloss.Color(terminalBlue),
		Violet:    lipgloss.Color(terminalViolet),
		LightText: lipgloss.Color(terminalLightText),
		MutedText: lipgloss.Color(terminalMutedText),
	}
}
