package prompt

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// DefaultScroll is how many options are visible at once.
const DefaultScroll = 10

// Option is a selectable value with its display label.
type Option struct {
	Value string
	Label string
}

// MultiSelectModel picks one or more options from a fixed list.
type MultiSelectModel struct {
	Label    string
	Required string // shown when submitting with nothing selected

	options  []Option
	selected map[string]bool
	cursor   int
	offset   int
	scroll   int
	err      string
	done     bool
	aborted  bool
	keys     KeyMap
	theme    Theme
}

// NewMultiSelect creates a multiselect with defaults preselected.
func NewMultiSelect(label string, options []Option, defaults []string, theme Theme) MultiSelectModel {
	selected := make(map[string]bool, len(defaults))
	for _, d := range defaults {
		selected[d] = true
	}
	return MultiSelectModel{
		Label:    label,
		Required: "You must select at least one option.",
		options:  options,
		selected: selected,
		scroll:   DefaultScroll,
		keys:     DefaultKeyMap,
		theme:    theme,
	}
}

// Values returns the selected values in option order.
func (m MultiSelectModel) Values() []string {
	if m.aborted {
		return nil
	}
	var out []string
	for _, o := range m.options {
		if m.selected[o.Value] {
			out = append(out, o.Value)
		}
	}
	return out
}

// Aborted reports whether the user cancelled.
func (m MultiSelectModel) Aborted() bool {
	return m.aborted
}

// Init implements tea.Model.
func (m MultiSelectModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m MultiSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
	case key.Matches(keyMsg, m.keys.Toggle):
		if len(m.options) > 0 {
			v := m.options[m.cursor].Value
			m.selected[v] = !m.selected[v]
			m.err = ""
		}
	case key.Matches(keyMsg, m.keys.Submit):
		if len(m.Values()) == 0 {
			m.err = m.Required
			return m, nil
		}
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *MultiSelectModel) move(delta int) {
	if len(m.options) == 0 {
		return
	}
	m.cursor = (m.cursor + delta + len(m.options)) % len(m.options)
	m.offset = visibleOffset(m.cursor, m.offset, m.scroll)
}

// View implements tea.Model.
func (m MultiSelectModel) View() string {
	var b strings.Builder
	b.WriteString(m.theme.accent().Render("?") + " " + m.Label + "\n")

	if m.done {
		b.WriteString("  " + m.theme.faint().Render(strings.Join(m.labels(), ", ")) + "\n")
		return b.String()
	}

	end := min(m.offset+m.scroll, len(m.options))
	for i := m.offset; i < end; i++ {
		o := m.options[i]
		b.WriteString(renderOption(m.theme, o.Label, i == m.cursor, m.selected[o.Value]))
	}
	if len(m.options) > m.scroll {
		b.WriteString(m.theme.faint().Render(fmt.Sprintf("  %d/%d", m.cursor+1, len(m.options))) + "\n")
	}
	if m.err != "" {
		b.WriteString("  " + m.theme.danger().Render(m.err) + "\n")
	}
	return b.String()
}

func (m MultiSelectModel) labels() []string {
	var out []string
	for _, o := range m.options {
		if m.selected[o.Value] {
			out = append(out, o.Label)
		}
	}
	return out
}

func renderOption(theme Theme, label string, highlighted, selected bool) string {
	box := "◻"
	if selected {
		box = "◼"
	}
	line := box + " " + label
	if highlighted {
		return theme.accent().Render("› "+line) + "\n"
	}
	return "  " + line + "\n"
}

// visibleOffset keeps cursor inside the scroll window starting at offset.
func visibleOffset(cursor, offset, scroll int) int {
	switch {
	case cursor < offset:
		return cursor
	case cursor >= offset+scroll:
		return cursor - scroll + 1
	}
	return offset
}
