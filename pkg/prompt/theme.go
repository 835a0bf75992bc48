package prompt

import "github.com/charmbracelet/lipgloss"

// Theme holds the colors used by prompts and CLI output. Colors are ANSI codes
// so they follow the terminal palette.
type Theme struct {
	Accent  lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Success lipgloss.Color
	Faint   lipgloss.Color
}

// DefaultTheme is blue progress, yellow warnings and red errors.
var DefaultTheme = Theme{
	Accent:  lipgloss.Color("4"),
	Warning: lipgloss.Color("3"),
	Error:   lipgloss.Color("1"),
	Success: lipgloss.Color("2"),
	Faint:   lipgloss.Color("8"),
}

func (t Theme) accent() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Accent)
}

func (t Theme) warning() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Warning)
}

func (t Theme) danger() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Error)
}

func (t Theme) success() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Success)
}

func (t Theme) faint() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Faint)
}
