// Package ui holds the Bubble Tea models of the troll CLI: decode progress
// for multi-file runs and the interactive variable browser.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/forestaa/troll/internal/driver"
)

// rowState — этап жизни одного файла на доске прогресса.
type rowState uint8

const (
	rowQueued rowState = iota
	rowDecoding
	rowCached
	rowDone
	rowFailed
)

var rowStyles = [...]lipgloss.Style{
	rowQueued:   lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	rowDecoding: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	rowCached:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	rowDone:     lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	rowFailed:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
}

type fileRow struct {
	path   string
	state  rowState
	blocks int
}

func (r fileRow) label() string {
	switch r.state {
	case rowDecoding:
		return "decoding"
	case rowCached:
		return "cached"
	case rowDone:
		return fmt.Sprintf("%d vars", r.blocks)
	case rowFailed:
		return "failed"
	default:
		return "queued"
	}
}

func (r fileRow) settled() bool {
	return r.state != rowQueued && r.state != rowDecoding
}

// decodeBoard is the Bubble Tea model behind the multi-file progress view.
// It consumes driver events from feed and quits once the channel closes.
type decodeBoard struct {
	title  string
	feed   <-chan driver.Event
	rows   []fileRow
	byPath map[string]int
	spin   spinner.Model
	bar    progress.Model
	width  int
	closed bool
}

type feedMsg driver.Event
type feedClosedMsg struct{}

// NewDecodeBoard renders per-file decode progress for a dump run.
func NewDecodeBoard(title string, files []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 76

	rows := make([]fileRow, len(files))
	byPath := make(map[string]int, len(files))
	for i, file := range files {
		rows[i] = fileRow{path: file}
		byPath[file] = i
	}
	return &decodeBoard{
		title:  title,
		feed:   events,
		rows:   rows,
		byPath: byPath,
		spin:   sp,
		bar:    bar,
		width:  80,
	}
}

func (m *decodeBoard) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.awaitEvent())
}

func (m *decodeBoard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case feedMsg:
		cmd := m.absorb(driver.Event(msg))
		return m, tea.Batch(cmd, m.awaitEvent())
	case feedClosedMsg:
		m.closed = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.closed {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = msg.Width - 4
		}
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *decodeBoard) View() string {
	if len(m.rows) == 0 {
		return ""
	}
	head := m.title
	if m.closed {
		head = "done: " + head
	} else {
		head = m.spin.View() + " " + head
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(head))
	b.WriteString("\n\n")

	const stateWidth = 12
	pathWidth := m.width - stateWidth - 4
	if pathWidth < 20 {
		pathWidth = 20
	}
	for _, r := range m.rows {
		state := rowStyles[r.state].Render(fmt.Sprintf("%*s", stateWidth, r.label()))
		fmt.Fprintf(&b, "  %s %s\n", state, clipToWidth(r.path, pathWidth))
	}

	b.WriteString("\n")
	if m.closed {
		b.WriteString(m.bar.ViewAs(1.0))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteString("\n")
	return b.String()
}

// awaitEvent reads one driver event. Bubble Tea re-issues the command
// after every message, so the feed drains one event per Update.
func (m *decodeBoard) awaitEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.feed
		if !ok {
			return feedClosedMsg{}
		}
		return feedMsg(ev)
	}
}

func (m *decodeBoard) absorb(ev driver.Event) tea.Cmd {
	i, ok := m.byPath[ev.Path]
	if !ok {
		return nil
	}
	row := &m.rows[i]
	switch ev.Kind {
	case driver.EventStarted:
		row.state = rowDecoding
	case driver.EventFinished:
		row.blocks = ev.Blocks
		row.state = rowDone
		if ev.FromCache {
			row.state = rowCached
		}
	case driver.EventFailed:
		row.state = rowFailed
	}

	settled := 0
	for _, r := range m.rows {
		if r.settled() {
			settled++
		}
	}
	return m.bar.SetPercent(float64(settled) / float64(len(m.rows)))
}

func clipToWidth(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	tail := "..."
	if width <= len(tail) {
		tail = ""
	}
	return runewidth.Truncate(value, width-len(tail), tail)
}
