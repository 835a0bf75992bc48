package prompt

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ConfirmModel asks a yes/no question.
type ConfirmModel struct {
	Prompt string

	value   bool
	done    bool
	aborted bool
	keys    KeyMap
	theme   Theme
}

// NewConfirm creates a confirm prompt with def preselected.
func NewConfirm(prompt string, def bool, theme Theme) ConfirmModel {
	return ConfirmModel{Prompt: prompt, value: def, keys: DefaultKeyMap, theme: theme}
}

// Value is the answer. An aborted prompt answers no.
func (m ConfirmModel) Value() bool {
	return m.value && !m.aborted
}

// Aborted reports whether the user cancelled.
func (m ConfirmModel) Aborted() bool {
	return m.aborted
}

// Init implements tea.Model.
func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.done {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Abort):
		m.aborted, m.done = true, true
	case key.Matches(keyMsg, m.keys.Yes):
		m.value, m.done = true, true
	case key.Matches(keyMsg, m.keys.No):
		m.value, m.done = false, true
	case key.Matches(keyMsg, m.keys.Switch):
		m.value = !m.value
	case key.Matches(keyMsg, m.keys.Submit):
		m.done = true
	}

	if m.done {
		return m, tea.Quit
	}
	return m, nil
}

// View implements tea.Model.
func (m ConfirmModel) View() string {
	var b strings.Builder
	b.WriteString(m.theme.accent().Render("?") + " " + m.Prompt + "\n")

	if m.done {
		answer := "No"
		if m.Value() {
			answer = "Yes"
		}
		b.WriteString("  " + m.theme.faint().Render(answer) + "\n")
		return b.String()
	}

	yes, no := "○ Yes", "○ No"
	if m.value {
		yes = m.theme.accent().Render("● Yes")
	} else {
		no = m.theme.accent().Render("● No")
	}
	b.WriteString("  " + yes + " / " + no + "\n")
	return b.String()
}
