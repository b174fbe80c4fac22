package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.AdaptiveColor{Light: "#286983", Dark: "#9ccfd8"}
	subtle = lipgloss.AdaptiveColor{Light: "#9893a5", Dark: "#6e6a86"}
	gold   = lipgloss.AdaptiveColor{Light: "#ea9d34", Dark: "#f6c177"}
)

type styles struct {
	tab       lipgloss.Style
	activeTab lipgloss.Style
	hover     lipgloss.Style
	popup     lipgloss.Style
	item      lipgloss.Style
	cursor    lipgloss.Style
	match     lipgloss.Style
	selected  lipgloss.Style
	status    lipgloss.Style
	help      lipgloss.Style
}

func defaultStyles(width int) styles {
	return styles{
		tab:       lipgloss.NewStyle().Padding(0, 1).Foreground(subtle),
		activeTab: lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(accent).Underline(true),
		hover:     lipgloss.NewStyle().Italic(true).Foreground(subtle),
		popup: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1).
			Width(width),
		item:     lipgloss.NewStyle(),
		cursor:   lipgloss.NewStyle().Reverse(true),
		match:    lipgloss.NewStyle().Bold(true).Foreground(accent),
		selected: lipgloss.NewStyle().Foreground(gold),
		status:   lipgloss.NewStyle().Foreground(gold),
		help:     lipgloss.NewStyle().Foreground(subtle),
	}
}
