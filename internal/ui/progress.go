package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/lumipallolabs/mezdisk/internal/core"
	"github.com/lumipallolabs/mezdisk/internal/model"
)

// eventMsg carries one controller event into the update loop
type eventMsg struct {
	event core.Event
}

// eventsClosedMsg reports that the event channel closed
type eventsClosedMsg struct{}

// Progress shows a spinner and the scan's progress until the scan completes
type Progress struct {
	events  <-chan core.Event
	spinner spinner.Model
	help    help.Model
	keys    KeyMap

	path    string
	current string
	visited int64
	start   time.Time
	width   int

	result      *model.ScanResult
	interrupted bool
}

// NewProgress creates a progress view fed by events
func NewProgress(events <-chan core.Event) Progress {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	h := help.New()
	h.Styles.ShortKey = HelpKey
	h.Styles.ShortDesc = HelpStyle
	h.Styles.ShortSeparator = HelpStyle

	return Progress{
		events:  events,
		spinner: s,
		help:    h,
		keys:    DefaultKeyMap(),
		start:   time.Now(),
	}
}

// waitForEvent returns a command that blocks on the next controller event
func waitForEvent(events <-chan core.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return eventMsg{event: ev}
	}
}

// Init starts the spinner and the event subscription
func (p Progress) Init() tea.Cmd {
	return tea.Batch(p.spinner.Tick, waitForEvent(p.events))
}

// Update handles messages
func (p Progress) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, p.keys.Quit) {
			p.interrupted = true
			return p, tea.Quit
		}
		return p, nil

	case tea.WindowSizeMsg:
		p.width = msg.Width
		return p, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return p, cmd

	case eventMsg:
		switch ev := msg.event.(type) {
		case core.ScanStartedEvent:
			p.path = ev.Path
		case core.ScanProgressEvent:
			p.current = ev.Path
			p.visited = ev.Visited
		case core.ScanCompletedEvent:
			result := ev.Result
			p.result = &result
			return p, tea.Quit
		}
		return p, waitForEvent(p.events)

	case eventsClosedMsg:
		return p, tea.Quit
	}
	return p, nil
}

// View renders the progress line
func (p Progress) View() string {
	if p.result != nil || p.interrupted {
		return ""
	}

	status := fmt.Sprintf("%s Scanning %s  %s entries  %s",
		p.spinner.View(),
		p.path,
		humanize.Comma(p.visited),
		time.Since(p.start).Truncate(100*time.Millisecond),
	)

	current := p.current
	if p.width > 4 && lipgloss.Width(current) > p.width-2 {
		runes := []rune(current)
		keep := p.width - 3
		current = "…" + string(runes[max(0, len(runes)-keep):])
	}

	lines := []string{
		status,
		StatsStyle.Render(current),
		p.help.View(p.keys),
	}
	return strings.Join(lines, "\n") + "\n"
}

// Result returns the completed scan, or nil when the view quit early
func (p Progress) Result() *model.ScanResult {
	return p.result
}

// Interrupted reports whether the user quit before the scan completed
func (p Progress) Interrupted() bool {
	return p.interrupted
}
