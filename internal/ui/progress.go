package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"esparse/internal/driver"
)

const (
	statusQueued  = "queued"
	statusParsing = "parsing"
	statusLinting = "linting"
	statusDone    = "done"
	statusCached  = "cached"
	statusError   = "error"
)

type progressModel struct {
	title   string
	events  <-chan driver.PhaseEvent
	spinner spinner.Model
	prog    progress.Model
	items   []fileItem
	index   map[string]int
	width   int
	done    bool
}

type fileItem struct {
	path   string
	status string
}

type eventMsg driver.PhaseEvent
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders the progress of
// a directory parse. files are the paths ParseDir visits; the model quits
// when events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.PhaseEvent) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	items := make([]fileItem, 0, len(files))
	index := make(map[string]int, len(files))
	for i, file := range files {
		items = append(items, fileItem{path: file, status: statusQueued})
		index[file] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		index:   index,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(driver.PhaseEvent(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		progressModel, cmd := m.prog.Update(msg)
		m.prog = progressModel.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	finished := m.finished()
	header := fmt.Sprintf("%s %d/%d", m.title, finished, len(m.items))
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	statusWidth := 8
	nameWidth := max(m.width-statusWidth-4, 20)
	for _, item := range m.items {
		fmt.Fprintf(&b, "  %s %s\n", styleStatus(item.status).Render(fmt.Sprintf("%8s", item.status)), truncate(item.path, nameWidth))
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	return b.String()
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev driver.PhaseEvent) tea.Cmd {
	idx, ok := m.index[ev.Path]
	if !ok {
		return nil
	}
	m.items[idx].status = statusFor(ev, m.items[idx].status)
	return m.prog.SetPercent(m.percent())
}

func (m *progressModel) finished() int {
	n := 0
	for _, item := range m.items {
		if isFinal(item.status) {
			n++
		}
	}
	return n
}

func (m *progressModel) percent() float64 {
	if len(m.items) == 0 {
		return 0
	}
	total := 0.0
	for _, item := range m.items {
		total += weight(item.status)
	}
	return total / float64(len(m.items))
}

// statusFor maps an event to the new status of its file.
func statusFor(ev driver.PhaseEvent, current string) string {
	switch ev.Status {
	case driver.PhaseDone:
		switch {
		case ev.Failed:
			return statusError
		case ev.Cached:
			return statusCached
		}
		return statusDone
	case driver.PhaseStart:
		switch ev.Name {
		case "parse":
			return statusParsing
		case "lint":
			return statusLinting
		}
	}
	return current
}

func isFinal(status string) bool {
	return status == statusDone || status == statusCached || status == statusError
}

func weight(status string) float64 {
	switch status {
	case statusParsing:
		return 0.3
	case statusLinting:
		return 0.8
	}
	if isFinal(status) {
		return 1
	}
	return 0
}

func styleStatus(status string) lipgloss.Style {
	switch status {
	case statusDone, statusCached:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case statusError:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case statusParsing, statusLinting:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
