// Package picker is a terminal history browser: search, preview and paste
// back. It polls the daemon's history version on a short tick and only
// re-fetches entries when the version moved.
package picker

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go.klb.dev/cliprecall/internal/history"
	"go.klb.dev/cliprecall/internal/message"
)

const pollInterval = 100 * time.Millisecond

// Client is the daemon API the picker needs.
type Client interface {
	List(query string, limit int, since uint64) (*message.Message, error)
	Paste(query string, index, window int, version uint64) error
	Clear() (uint64, error)
}

type (
	tickMsg    time.Time
	historyMsg struct {
		resp *message.Message
		err  error
	}
	pastedMsg  struct{ err error }
	clearedMsg struct{ err error }
)

var (
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	itemStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	previewStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
)

// Model is the bubbletea model.
type Model struct {
	client Client
	window int

	filter   history.FilterFunc
	search   textinput.Model
	entries  []history.Entry
	filtered []history.Entry
	version  uint64
	cursor   int
	offset   int // first filtered entry drawn

	confirmClear bool
	pasted       bool
	err          error
	width        int
	height       int
}

// New returns a picker that pastes into window (0 = previous application).
// filter must match the one the daemon applies to the client's requests so
// indexes line up; nil selects history.Filter.
func New(c Client, window int, filter history.FilterFunc) Model {
	if filter == nil {
		filter = history.Filter
	}
	ti := textinput.New()
	ti.Prompt = "search: "
	ti.Placeholder = "type to filter"
	ti.Focus()
	return Model{client: c, window: window, filter: filter, search: ti, width: 80, height: 24}
}

// Pasted reports whether the user picked an entry before quitting.
func (m Model) Pasted() bool { return m.pasted }

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.fetch(), tick())
}

func tick() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) fetch() tea.Cmd {
	since := m.version
	return func() tea.Msg {
		resp, err := m.client.List("", 0, since)
		return historyMsg{resp: resp, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m, tea.Batch(m.fetch(), tick())

	case historyMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		if !msg.resp.Unchanged {
			m.entries = msg.resp.Entries
			m.version = msg.resp.Version
			m.refilter()
			m.follow()
		}
		return m, nil

	case pastedMsg:
		if msg.err != nil {
			// Most likely the history moved under the cursor; show the
			// current one.
			m.err = msg.err
			return m, m.fetch()
		}
		m.pasted = true
		return m, tea.Quit

	case clearedMsg:
		m.err = msg.err
		return m, m.fetch()

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.follow()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirmClear {
		m.confirmClear = false
		if msg.String() == "y" {
			c := m.client
			return m, func() tea.Msg {
				_, err := c.Clear()
				return clearedMsg{err: err}
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "ctrl+p":
		if m.cursor > 0 {
			m.cursor--
		}
		m.follow()
		return m, nil
	case "down", "ctrl+n":
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}
		m.follow()
		return m, nil
	case "enter":
		if len(m.filtered) == 0 {
			return m, nil
		}
		c, query, index, window, version := m.client, m.search.Value(), m.cursor, m.window, m.version
		return m, func() tea.Msg {
			return pastedMsg{err: c.Paste(query, index, window, version)}
		}
	case "ctrl+x":
		m.confirmClear = true
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.cursor, m.offset = 0, 0
		m.refilter()
	}
	return m, cmd
}

func (m *Model) refilter() {
	m.filtered = m.filter(m.entries, m.search.Value())
	if m.cursor >= len(m.filtered) {
		m.cursor = max(len(m.filtered)-1, 0)
	}
}

func (m Model) bodyHeight() int { return max(m.height-4, 3) }

// labelLines is the height of entry i's label, not counting the blank
// separator line drawn after it.
func (m Model) labelLines(i int) int {
	return strings.Count(history.Label(m.filtered[i]), "\n") + 1
}

// fits reports whether entries offset..last are all visible when drawing
// starts at offset.
func (m Model) fits(offset, last int) bool {
	lines := 0
	for i := offset; i < last; i++ {
		lines += m.labelLines(i) + 1
	}
	return lines+m.labelLines(last) <= m.bodyHeight()
}

// follow scrolls so the cursor entry is drawn.
func (m *Model) follow() {
	if len(m.filtered) == 0 {
		m.offset = 0
		return
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	for m.offset < m.cursor && !m.fits(m.offset, m.cursor) {
		m.offset++
	}
}

func (m Model) status() string {
	if strings.TrimSpace(m.search.Value()) == "" {
		return fmt.Sprintf("%d items", len(m.entries))
	}
	return fmt.Sprintf("found %d/%d matching", len(m.filtered), len(m.entries))
}

func (m Model) View() string {
	listWidth := max(m.width/3, 24)
	previewWidth := max(m.width-listWidth-4, 20)
	bodyHeight := m.bodyHeight()

	var list strings.Builder
	lines := 0
	for i := m.offset; i < len(m.filtered); i++ {
		label := history.Label(m.filtered[i])
		n := strings.Count(label, "\n") + 1
		if lines+n > bodyHeight {
			break
		}
		lines += n + 1
		style, marker := itemStyle, "  "
		if i == m.cursor {
			style, marker = selectedStyle, "> "
		}
		for j, l := range strings.Split(label, "\n") {
			if j > 0 {
				marker = "  "
			}
			list.WriteString(style.Render(marker+l) + "\n")
		}
		list.WriteString("\n")
	}
	if len(m.filtered) == 0 {
		list.WriteString(dimStyle.Render("  (empty)"))
	}

	preview := ""
	if m.cursor < len(m.filtered) {
		preview = history.Preview(m.filtered[m.cursor])
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(listWidth).Height(bodyHeight).MaxHeight(bodyHeight).Render(list.String()),
		previewStyle.Width(previewWidth).Height(bodyHeight-2).MaxHeight(bodyHeight).Render(preview),
	)

	footer := dimStyle.Render(m.status() + " · enter paste · ctrl+x clear · esc quit")
	switch {
	case m.confirmClear:
		footer = errStyle.Render("clear all history? (y/n)")
	case m.err != nil:
		footer = errStyle.Render(m.err.Error())
	}

	return m.search.View() + "\n" + body + "\n" + footer
}
