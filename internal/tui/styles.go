package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#F26522")
	colorMuted   = lipgloss.Color("#828282")
	colorError   = lipgloss.Color("#e53935")
	colorMark    = lipgloss.Color("#FFC107")
	colorBorder  = lipgloss.Color("#2a3850")
)

// Styles holds the lipgloss styles of every page
type Styles struct {
	Header   lipgloss.Style
	Title    lipgloss.Style
	Selected lipgloss.Style
	Mark     lipgloss.Style
	Meta     lipgloss.Style
	Error    lipgloss.Style
	Notice   lipgloss.Style
	Active   lipgloss.Style
	Chip     lipgloss.Style
	Input    lipgloss.Style
	Help     lipgloss.Style
}

// DefaultStyles returns the BizBrief palette
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			Background(colorPrimary).
			Padding(0, 1),
		Title:    lipgloss.NewStyle(),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(colorPrimary),
		Mark:     lipgloss.NewStyle().Bold(true).Foreground(colorMark),
		Meta:     lipgloss.NewStyle().Foreground(colorMuted),
		Error:    lipgloss.NewStyle().Foreground(colorError),
		Notice:   lipgloss.NewStyle().Italic(true).Foreground(colorMark),
		Active:   lipgloss.NewStyle().Bold(true).Underline(true),
		Chip: lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1),
		Input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1),
		Help: lipgloss.NewStyle().Foreground(colorMuted),
	}
}
