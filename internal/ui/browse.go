package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/forestaa/troll/internal/driver"
	"github.com/forestaa/troll/internal/layout"
	"github.com/forestaa/troll/internal/render"
)

// browseModel — интерактивный просмотр отчёта: строка фильтра над
// прокручиваемой таблицей. Фильтр сужает список переменных на каждое
// нажатие, таблица рисуется тем же рендером, что и troll dump.
type browseModel struct {
	path   string
	blocks []layout.Block
	filter textinput.Model
	body   viewport.Model
	shown  int
	width  int
	ready  bool
}

// NewBrowseModel builds the browser over already-flattened blocks.
func NewBrowseModel(path string, blocks []layout.Block) tea.Model {
	ti := textinput.New()
	ti.Placeholder = "variable name"
	ti.Prompt = "/ "
	ti.Focus()
	return &browseModel{
		path:   path,
		blocks: blocks,
		filter: ti,
		shown:  len(blocks),
		width:  80,
	}
}

// высота заголовка, фильтра и подвала вокруг viewport
const browseChromeLines = 4

func (m *browseModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.body, cmd = m.body.Update(msg)
			return m, cmd
		}
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		m.refresh()
		return m, cmd
	case tea.MouseMsg:
		var cmd tea.Cmd
		m.body, cmd = m.body.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		m.width = msg.Width
		bodyHeight := msg.Height - browseChromeLines
		if bodyHeight < 1 {
			bodyHeight = 1
		}
		if !m.ready {
			m.body = viewport.New(msg.Width, bodyHeight)
			m.ready = true
		} else {
			m.body.Width = msg.Width
			m.body.Height = bodyHeight
		}
		m.refresh()
	}
	return m, nil
}

func (m *browseModel) View() string {
	if !m.ready {
		return ""
	}
	title := lipgloss.NewStyle().Bold(true).Render(clipToWidth(m.path, m.width))
	footer := lipgloss.NewStyle().Faint(true).
		Render(fmt.Sprintf("%d/%d variables, esc to quit", m.shown, len(m.blocks)))
	return strings.Join([]string{title, m.filter.View(), m.body.View(), footer}, "\n")
}

func (m *browseModel) refresh() {
	shown := make([]layout.Block, 0, len(m.blocks))
	for _, b := range m.blocks {
		if driver.MatchFold(b.Variable, m.filter.Value()) {
			shown = append(shown, b)
		}
	}
	m.shown = len(shown)

	var buf strings.Builder
	if err := render.Text(&buf, shown); err != nil {
		buf.Reset()
		fmt.Fprintf(&buf, "render failed: %v\n", err)
	}
	m.body.SetContent(buf.String())
	m.body.GotoTop()
}
