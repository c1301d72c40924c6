package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/lumipallolabs/mezdisk/internal/filetype"
)

// Colors
var (
	ColorPrimary = lipgloss.Color("#7D56F4")
	ColorMuted   = lipgloss.Color("#6B7280")
	ColorBorder  = lipgloss.Color("12")
	ColorLabel   = lipgloss.Color("#FFFFFF")

	ColorDir   = lipgloss.Color(filetype.ColorDir)
	ColorError = lipgloss.Color(filetype.ColorError)
)

// Styles
var (
	// Header
	HeaderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	AppNameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#C084FC")).
			Bold(true)

	StatsStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// Panels
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	PanelTitle = lipgloss.NewStyle().
			Foreground(ColorBorder).
			Bold(true)

	// Tree
	TreeGuide = lipgloss.NewStyle().
			Foreground(ColorMuted)

	TreeSize = lipgloss.NewStyle().
			Foreground(ColorMuted)

	TreeSizeBar = lipgloss.NewStyle().
			Foreground(ColorPrimary)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	// Treemap
	TreemapLabel = lipgloss.NewStyle().
			Foreground(ColorLabel).
			Bold(true)

	// Largest table
	TableHeader = lipgloss.NewStyle().
			Bold(true)

	// Progress
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	HelpKey = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
)

// FormatSize formats bytes with decimal units, e.g. "35 B" or "1.2 GB"
func FormatSize(bytes int64) string {
	if bytes < 0 {
		bytes = 0
	}
	return humanize.Bytes(uint64(bytes))
}

// percent returns part as a percentage of total, or 0 when total is empty
func percent(part, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
