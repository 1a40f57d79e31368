package simulator

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/constants"
	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/flow"
	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/internal"
	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/internal/paging"
)

const maxLogLines = 4

// frameMsg carries a rendered step from the session goroutine.
type frameMsg struct {
	layout  constants.Layout
	content flow.Content
}

// flushMsg is sent before a flow starts. Keys are ignored from then until
// its first step is shown.
type flushMsg struct{}

// reportMsg carries one finished request.
type reportMsg struct {
	line string
}

// doneMsg is sent once the script returns.
type doneMsg struct {
	err error
}

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(true)
	iconStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	hintStyle  = lipgloss.NewStyle().Faint(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// model shows the current step in a box the size of the device text area
// and turns key presses into button events.
type model struct {
	cols, rows int
	pager      *paging.Pager
	events     chan<- constants.Event

	layout    constants.Layout
	content   flow.Content
	hasStep   bool
	accepting bool

	log      []string
	finished bool
	err      error
}

func newModel(cols, rows int, events chan<- constants.Event) *model {
	return &model{
		cols:   cols,
		rows:   rows,
		pager:  paging.NewPager(cols, rows),
		events: events,
	}
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case frameMsg:
		m.layout, m.content, m.hasStep = msg.layout, msg.content, true
		m.accepting = true
		m.pager.Load(msg.layout, msg.content)

	case flushMsg:
		m.accepting = false
		m.pager.Reset()

	case reportMsg:
		m.log = append(m.log, msg.line)
		if len(m.log) > maxLogLines {
			m.log = m.log[len(m.log)-maxLogLines:]
		}

	case doneMsg:
		m.finished, m.err = true, msg.err
	}
	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "left", "h":
		m.dispatch(constants.EventPrevious)
	case "right", "l":
		m.dispatch(constants.EventNext)
	case "enter", " ", "down", "j":
		m.dispatch(constants.EventActivate)
	}
	if m.finished {
		return m, tea.Quit
	}
	return m, nil
}

func (m *model) dispatch(ev constants.Event) {
	if m.finished || !m.accepting || m.pager.Intercept(ev) {
		return
	}
	select {
	case m.events <- ev:
	default:
		internal.GetInternalLogger().Warn("simulator event queue full, dropping event", "event", ev.GetName())
	}
}

func (m *model) View() string {
	var b strings.Builder

	b.WriteString(panelStyle.Render(m.panel()))
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("←/h previous   →/l next   enter both buttons   q quit"))
	b.WriteString("\n")

	for _, line := range m.log {
		b.WriteString(line)
		b.WriteString("\n")
	}

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	case m.finished:
		b.WriteString(hintStyle.Render("all requests answered, press any key to exit"))
		b.WriteString("\n")
	}

	return b.String()
}

// panel lays the current step out on a cols x (rows + 2) grid.
func (m *model) panel() string {
	height := m.rows + 2
	if !m.hasStep {
		return place(m.cols, height, lipgloss.Center, hintStyle.Render("waiting for a request"))
	}

	c := m.content
	var lines []string
	if c.Icon != constants.IconNone {
		lines = append(lines, iconStyle.Render(c.Icon.Glyph()))
	}

	switch m.layout {
	case constants.LayoutIconButton:
		lines = append(lines, titleStyle.Render(c.Title))
	case constants.LayoutIconTwoLineButton:
		lines = append(lines, titleStyle.Render(c.Title), titleStyle.Render(c.Text))
	case constants.LayoutIconTwoLines, constants.LayoutTwoLines:
		lines = append(lines, titleStyle.Render(c.Title), c.Text)
	case constants.LayoutPaging:
		page, index, count := m.pager.Current()
		lines = append(lines, titleStyle.Render(paging.Header(c.Title, index, count)))
		lines = append(lines, page.Lines...)
		return place(m.cols, height, lipgloss.Left, lines...)
	default:
		lines = append(lines, errorStyle.Render(fmt.Sprintf("unknown layout %d", m.layout)))
	}

	return place(m.cols, height, lipgloss.Center, lines...)
}

func place(width, height int, pos lipgloss.Position, lines ...string) string {
	body := lipgloss.JoinVertical(pos, lines...)
	return lipgloss.Place(width, height, pos, lipgloss.Center, body)
}
