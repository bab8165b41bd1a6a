package styles

import "github.com/charmbracelet/lipgloss"

// CurrentPalette is the palette the styles below were built from.
var CurrentPalette Palette

var (
	TextPrimary lipgloss.Style
	TextMuted   lipgloss.Style
	TextSuccess lipgloss.Style
	TextWarning lipgloss.Style
	TextError   lipgloss.Style
	TextBold    lipgloss.Style

	// Title is used for section headings in command output.
	Title lipgloss.Style
)

// SetTheme rebuilds every style from p.
func SetTheme(p Palette) {
	CurrentPalette = p

	TextPrimary = lipgloss.NewStyle().Foreground(p.Primary)
	TextMuted = lipgloss.NewStyle().Foreground(p.Muted)
	TextSuccess = lipgloss.NewStyle().Foreground(p.Success)
	TextWarning = lipgloss.NewStyle().Foreground(p.Warning)
	TextError = lipgloss.NewStyle().Foreground(p.Error)
	TextBold = lipgloss.NewStyle().Bold(true)

	Title = lipgloss.NewStyle().Foreground(p.Primary).Bold(true)
}

func init() {
	p, _ := GetPalette(DefaultTheme)
	SetTheme(p)
}
