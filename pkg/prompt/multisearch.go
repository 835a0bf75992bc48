package prompt

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// SearchFunc returns the options matching query. An empty query may return nothing.
type SearchFunc func(query string) []Option

// MultiSearchModel picks options from search results as the user types.
type MultiSearchModel struct {
	Label       string
	Placeholder string
	Hint        string
	Required    string

	search   SearchFunc
	query    string
	results  []Option
	selected []Option
	cursor   int
	offset   int
	scroll   int
	err      string
	done     bool
	aborted  bool
	keys     KeyMap
	theme    Theme
}

// NewMultiSearch creates a multisearch prompt backed by search.
func NewMultiSearch(label string, search SearchFunc, theme Theme) MultiSearchModel {
	return MultiSearchModel{
		Label:    label,
		Required: "You must select at least one option.",
		search:   search,
		scroll:   DefaultScroll,
		keys:     DefaultKeyMap,
		theme:    theme,
	}
}

// Values returns the selected values in the order they were picked.
func (m MultiSearchModel) Values() []string {
	if m.aborted {
		return nil
	}
	out := make([]string, 0, len(m.selected))
	for _, o := range m.selected {
		out = append(out, o.Value)
	}
	return out
}

// Aborted reports whether the user cancelled.
func (m MultiSearchModel) Aborted() bool {
	return m.aborted
}

// Init implements tea.Model.
func (m MultiSearchModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m MultiSearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.done {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Abort):
		m.aborted, m.done = true, true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Up):
		m.move(-1)
	case key.Matches(keyMsg, m.keys.Down):
		m.move(1)
	case key.Matches(keyMsg, m.keys.Pick):
		m.pick()
	case key.Matches(keyMsg, m.keys.Submit):
		if len(m.selected) == 0 {
			m.pick()
		}
		if len(m.selected) == 0 {
			m.err = m.Required
			return m, nil
		}
		m.done = true
		return m, tea.Quit
	case keyMsg.Type == tea.KeyBackspace:
		if r := []rune(m.query); len(r) > 0 {
			m.setQuery(string(r[:len(r)-1]))
		}
	case keyMsg.Type == tea.KeyRunes, keyMsg.Type == tea.KeySpace:
		m.setQuery(m.query + string(keyMsg.Runes))
	}
	return m, nil
}

func (m *MultiSearchModel) setQuery(q string) {
	m.query = q
	m.results = m.search(q)
	m.cursor, m.offset = 0, 0
	m.err = ""
}

func (m *MultiSearchModel) move(delta int) {
	if len(m.results) == 0 {
		return
	}
	m.cursor = (m.cursor + delta + len(m.results)) % len(m.results)
	m.offset = visibleOffset(m.cursor, m.offset, m.scroll)
}

func (m *MultiSearchModel) pick() {
	if len(m.results) == 0 {
		return
	}
	o := m.results[m.cursor]
	if i := m.indexOf(o.Value); i >= 0 {
		m.selected = slices.Delete(m.selected, i, i+1)
		return
	}
	m.selected = append(m.selected, o)
	m.err = ""
}

func (m MultiSearchModel) indexOf(value string) int {
	return slices.IndexFunc(m.selected, func(o Option) bool { return o.Value == value })
}

// View implements tea.Model.
func (m MultiSearchModel) View() string {
	var b strings.Builder
	b.WriteString(m.theme.accent().Render("?") + " " + m.Label + "\n")

	if m.done {
		b.WriteString("  " + m.theme.faint().Render(strings.Join(m.labels(), ", ")) + "\n")
		return b.String()
	}

	query := m.query
	if query == "" {
		query = m.theme.faint().Render(m.Placeholder)
	}
	b.WriteString("  › " + query + "\n")

	end := min(m.offset+m.scroll, len(m.results))
	for i := m.offset; i < end; i++ {
		o := m.results[i]
		b.WriteString(renderOption(m.theme, o.Label, i == m.cursor, m.indexOf(o.Value) >= 0))
	}
	if len(m.results) > m.scroll {
		b.WriteString(m.theme.faint().Render(fmt.Sprintf("  %d/%d", m.cursor+1, len(m.results))) + "\n")
	}
	if len(m.selected) > 0 {
		b.WriteString("  " + m.theme.faint().Render("Selected: "+strings.Join(m.labels(), ", ")) + "\n")
	}
	switch {
	case m.err != "":
		b.WriteString("  " + m.theme.danger().Render(m.err) + "\n")
	case m.Hint != "":
		b.WriteString("  " + m.theme.faint().Render(m.Hint) + "\n")
	}
	return b.String()
}

func (m MultiSearchModel) labels() []string {
	out := make([]string, 0, len(m.selected))
	for _, o := range m.selected {
		out = append(out, o.Label)
	}
	return out
}
