package ui

import (
	"fmt"
	"strings"

	"github.com/lumipallolabs/mezdisk/internal/model"
)

const headerProgressBarWidth = 20 // Width of disk usage progress bar

// Header summarizes a scan and the volume it ran on
type Header struct {
	path      string
	result    model.ScanResult
	volume    model.Volume
	hasVolume bool
	width     int
}

// NewHeader creates a header for result, looking up the usage of path's volume
func NewHeader(path string, result model.ScanResult) Header {
	h := Header{path: path, result: result}
	h.volume, h.hasVolume = model.VolumeUsage(path)
	return h
}

// SetWidth sets the header width
func (h *Header) SetWidth(w int) {
	h.width = w
}

// View renders the header
func (h Header) View() string {
	appName := AppNameStyle.Render("MezDisk")

	total := int64(0)
	if h.result.Root != nil {
		total = h.result.Root.Size
	}
	stats := StatsStyle.Render(fmt.Sprintf(
		"Path: %s   Total: %s   Dirs: %d   Files: %d   Errors: %d   Time: %.2fs",
		h.path,
		FormatSize(total),
		h.result.Stats.Dirs,
		h.result.Stats.Files,
		h.result.Stats.Errors,
		h.result.ElapsedSeconds(),
	))

	lines := []string{appName, stats}
	if h.hasVolume && h.volume.TotalBytes > 0 {
		lines = append(lines, StatsStyle.Render(h.usage()))
	}

	style := HeaderStyle
	if h.width > 2 {
		// Width excludes the border
		style = style.Width(h.width - 2)
	}
	return style.Render(strings.Join(lines, "\n"))
}

// usage renders the volume line with a fill bar
func (h Header) usage() string {
	usedPct := h.volume.UsedPercent()
	filled := int(usedPct / 100 * float64(headerProgressBarWidth))
	filled = min(max(filled, 0), headerProgressBarWidth)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", headerProgressBarWidth-filled)

	return fmt.Sprintf("Volume: %s / %s  [%s] %.0f%%  (%s free)",
		FormatSize(h.volume.UsedBytes()),
		FormatSize(h.volume.TotalBytes),
		bar,
		usedPct,
		FormatSize(h.volume.FreeBytes),
	)
}
