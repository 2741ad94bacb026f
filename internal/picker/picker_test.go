package picker

import (
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.klb.dev/cliprecall/internal/history"
	"go.klb.dev/cliprecall/internal/message"
)

type fakeClient struct {
	store   *history.Store
	pasted  []int
	queries []string
	cleared int
}

func (f *fakeClient) List(_ string, _ int, since uint64) (*message.Message, error) {
	entries, v := f.store.SnapshotVersion()
	if since == v {
		return &message.Message{Type: message.TypeHistory, Version: v, Unchanged: true}, nil
	}
	return &message.Message{Type: message.TypeHistory, Version: v, Entries: entries}, nil
}

func (f *fakeClient) Paste(query string, index, _ int, version uint64) error {
	if version != f.store.Version() {
		return errors.New("history changed")
	}
	f.queries = append(f.queries, query)
	f.pasted = append(f.pasted, index)
	return nil
}

func (f *fakeClient) Clear() (uint64, error) {
	f.cleared++
	f.store.Clear()
	return f.store.Version(), nil
}

func newFake(values ...string) *fakeClient {
	s := history.New("", 10)
	for i := len(values) - 1; i >= 0; i-- {
		s.Add(history.NewText(values[i]))
	}
	return &fakeClient{store: s}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func load(t *testing.T, m Model) Model {
	t.Helper()
	m, _ = update(t, m, m.fetch()())
	return m
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestPicker_LoadsAndFilters(t *testing.T) {
	c := newFake("apple", "banana", "apricot")
	m := load(t, New(c, 0, nil))

	assert.Equal(t, "3 items", m.status())

	m = typeText(t, m, "ap")
	require.Len(t, m.filtered, 2)
	assert.Equal(t, "found 2/3 matching", m.status())
	assert.Contains(t, m.View(), "apricot")
}

func TestPicker_RefetchesOnlyWhenVersionMoves(t *testing.T) {
	c := newFake("a")
	m := load(t, New(c, 0, nil))
	v := m.version

	m = load(t, m)
	assert.Equal(t, v, m.version)
	assert.Len(t, m.entries, 1)

	c.store.Add(history.NewText("b"))
	m = load(t, m)
	assert.Greater(t, m.version, v)
	assert.Len(t, m.entries, 2)
}

func TestPicker_EnterPastesFilteredIndex(t *testing.T) {
	c := newFake("one", "two", "three")
	m := load(t, New(c, 0, nil))
	m = typeText(t, m, "t")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	m, quit := update(t, m, cmd())

	assert.Equal(t, []int{1}, c.pasted)
	assert.Equal(t, []string{"t"}, c.queries)
	assert.True(t, m.Pasted())
	require.NotNil(t, quit)
	assert.IsType(t, tea.QuitMsg{}, quit())
}

func TestPicker_CursorStaysInRange(t *testing.T) {
	c := newFake("one", "two")
	m := load(t, New(c, 0, nil))

	for range 5 {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, 1, m.cursor)

	for range 5 {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	}
	assert.Equal(t, 0, m.cursor)
}

func TestPicker_ClearNeedsConfirmation(t *testing.T) {
	c := newFake("one", "two")
	m := load(t, New(c, 0, nil))

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlX})
	assert.True(t, m.confirmClear)
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	assert.Nil(t, cmd)
	assert.Equal(t, 0, c.cleared)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlX})
	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	require.NotNil(t, cmd)
	m, refetch := update(t, m, cmd())
	m, _ = update(t, m, refetch())

	assert.Equal(t, 1, c.cleared)
	assert.Empty(t, m.entries)
}

func TestPicker_ShowsErrors(t *testing.T) {
	m := New(newFake(), 0, nil)
	m, _ = update(t, m, historyMsg{err: errors.New("daemon not running")})

	assert.Contains(t, m.View(), "daemon not running")
}

func TestPicker_FuzzyFilter(t *testing.T) {
	c := newFake("git status", "go build", "gist")
	m := load(t, New(c, 0, history.FuzzyFilter))

	m = typeText(t, m, "gst")
	require.Len(t, m.filtered, 2)
	assert.Equal(t, history.NewText("gist"), m.filtered[0])
	assert.Equal(t, "found 2/3 matching", m.status())
}

func TestPicker_ScrollsToCursor(t *testing.T) {
	values := make([]string, 10)
	for i := range values {
		values[i] = fmt.Sprintf("item-%02d", i)
	}
	m := load(t, New(newFake(values...), 0, nil))
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 10})

	for range len(values) {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}

	view := m.View()
	assert.Equal(t, 9, m.cursor)
	assert.Contains(t, view, "> item-09")
	assert.NotContains(t, view, "item-00")

	for range len(values) {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	}
	assert.Equal(t, 0, m.offset)
	assert.Contains(t, m.View(), "> item-00")
}

func TestPicker_StalePasteRefreshes(t *testing.T) {
	c := newFake("picked")
	m := load(t, New(c, 0, nil))
	c.store.Add(history.NewText("captured meanwhile"))

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	m, refetch := update(t, m, cmd())
	require.NotNil(t, refetch)
	m, _ = update(t, m, refetch())

	assert.False(t, m.Pasted())
	assert.Empty(t, c.pasted)
	assert.Len(t, m.entries, 2)
}
