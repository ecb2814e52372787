package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/workdesk/internal/model"
)

// Theme names accepted by Apply.
const (
	Dark  = "dark"
	Light = "light"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorOrange  = lipgloss.AdaptiveColor{Dark: "#FFA94D", Light: "#C05621"}
	ColorMagenta = lipgloss.AdaptiveColor{Dark: "#CC5DE8", Light: "#805AD5"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// Apply switches every adaptive color to the named theme. Unknown names
// fall back to dark.
func Apply(name string) string {
	name = Normalize(name)
	lipgloss.SetHasDarkBackground(name == Dark)
	return name
}

// Normalize maps a stored theme name to Dark or Light.
func Normalize(name string) string {
	if strings.EqualFold(strings.TrimSpace(name), Light) {
		return Light
	}
	return Dark
}

// Toggle returns the other theme.
func Toggle(name string) string {
	if Normalize(name) == Light {
		return Dark
	}
	return Light
}

// HeaderStyle is used for top-level section headers and the application title.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// DetailPanelStyle wraps the detail view content area.
var DetailPanelStyle = lipgloss.NewStyle().
	Padding(1, 2).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// HelpKeyStyle and HelpDescStyle render one line of the help overlay.
var (
	HelpKeyStyle  = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	HelpDescStyle = lipgloss.NewStyle().Foreground(ColorGray)
)

// HelpStyle is used for keyboard shortcut hints and help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// BorderStyle provides a standard rounded border for panels.
var BorderStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// ListItemStyle is the base style for items in a list.
var ListItemStyle = lipgloss.NewStyle().
	PaddingLeft(2)

// SelectedItemStyle highlights the currently focused list item.
var SelectedItemStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Bold(true).
	Foreground(ColorBlue).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorBlue)

// DimmedStyle renders secondary text.
var DimmedStyle = lipgloss.NewStyle().Foreground(ColorGray)

// TitleStyle renders the heading of a form or panel.
var TitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	MarginBottom(1)

// ActiveTabStyle and TabStyle render the dashboard tab bar.
var (
	ActiveTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorBlue).
			Underline(true).
			Padding(0, 1)

	TabStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Padding(0, 1)
)

// PendingStyle marks a status whose write has not been confirmed yet.
var PendingStyle = lipgloss.NewStyle().Foreground(ColorGray).Italic(true)

// PurgeStyle renders the trash countdown.
var PurgeStyle = lipgloss.NewStyle().Foreground(ColorOrange)

// DueStyle renders an outstanding balance.
var DueStyle = lipgloss.NewStyle().Foreground(ColorRed).Bold(true)

// StatusStyle returns a color-coded style for a work item status. Statuses
// outside the baseline set render gray.
func StatusStyle(status string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch status {
	case model.StatusUnderProcessing:
		return base.Foreground(ColorYellow)
	case model.StatusApproved:
		return base.Foreground(ColorGreen)
	case model.StatusRejected:
		return base.Foreground(ColorRed)
	case model.StatusWaitingDelivery:
		return base.Foreground(ColorMagenta)
	case model.StatusPaidOnly:
		return base.Foreground(ColorBlue)
	default:
		return base.Foreground(ColorGray)
	}
}

// NoticeStyle returns the status bar style for a notice. Errors get a red
// background, everything else the regular status bar.
func NoticeStyle(isError bool) lipgloss.Style {
	if isError {
		return StatusBarStyle.
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(ColorRed)
	}
	return StatusBarStyle
}
