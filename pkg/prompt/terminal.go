// Package prompt implements the interactive terminal prompts and styled output of the CLI.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joeblew999/plat-webfonts/pkg/font"
)

// ErrAborted is returned when the user cancels a prompt.
var ErrAborted = errors.New("prompt aborted")

// Terminal runs prompts on an input/output pair.
type Terminal struct {
	In    io.Reader
	Out   io.Writer
	Theme Theme
}

// NewTerminal creates a terminal on stdin and stderr.
func NewTerminal() *Terminal {
	return &Terminal{In: os.Stdin, Out: os.Stderr, Theme: DefaultTheme}
}

func (t *Terminal) run(model tea.Model) (tea.Model, error) {
	final, err := tea.NewProgram(model, tea.WithInput(t.In), tea.WithOutput(t.Out)).Run()
	if err != nil {
		return nil, fmt.Errorf("run prompt: %w", err)
	}
	return final, nil
}

// Confirm asks a yes/no question.
func (t *Terminal) Confirm(prompt string, def bool) (bool, error) {
	final, err := t.run(NewConfirm(prompt, def, t.Theme))
	if err != nil {
		return false, err
	}
	m := final.(ConfirmModel)
	if m.Aborted() {
		return false, ErrAborted
	}
	return m.Value(), nil
}

// MultiSelect asks for one or more options.
func (t *Terminal) MultiSelect(label string, options []Option, defaults []string, required string) ([]string, error) {
	model := NewMultiSelect(label, options, defaults, t.Theme)
	if required != "" {
		model.Required = required
	}
	final, err := t.run(model)
	if err != nil {
		return nil, err
	}
	m := final.(MultiSelectModel)
	if m.Aborted() {
		return nil, ErrAborted
	}
	return m.Values(), nil
}

// MultiSearch asks for one or more options found by search.
func (t *Terminal) MultiSearch(model MultiSearchModel) ([]string, error) {
	final, err := t.run(model)
	if err != nil {
		return nil, err
	}
	m := final.(MultiSearchModel)
	if m.Aborted() {
		return nil, ErrAborted
	}
	return m.Values(), nil
}

// Confirmer adapts the terminal to font.Confirmer. Errors and cancellation answer no.
func (t *Terminal) Confirmer() font.Confirmer {
	return font.ConfirmFunc(func(prompt string) bool {
		ok, err := t.Confirm(prompt, false)
		return err == nil && ok
	})
}

// SelectFonts runs the interactive font picker: a multisearch over the catalog, then
// variants and subsets for each font with the defaults preselected.
func (t *Terminal) SelectFonts(catalog *font.Catalog) ([]font.Selection, error) {
	search := NewMultiSearch("Select the fonts you would like to add to your project", func(query string) []Option {
		var options []Option
		for _, f := range catalog.Search(query) {
			options = append(options, Option{Value: f.ID, Label: f.Family})
		}
		return options
	}, t.Theme)
	search.Placeholder = "Inter"
	search.Hint = fmt.Sprintf("%d fonts available.", catalog.Len())
	search.Required = "You must select at least one font."

	ids, err := t.MultiSearch(search)
	if err != nil {
		return nil, err
	}

	selections := make([]font.Selection, 0, len(ids))
	for _, id := range ids {
		f, ok := catalog.Get(id)
		if !ok {
			continue
		}

		variants, err := t.MultiSelect(
			fmt.Sprintf("Select the variants you would like to add to %s", f.Family),
			labelled(f.Variants, font.VariantLabel),
			[]string{f.DefaultVariant},
			"You must select at least one variant.",
		)
		if err != nil {
			return nil, err
		}

		subsets, err := t.MultiSelect(
			fmt.Sprintf("Select the subsets you would like to add to %s", f.Family),
			labelled(f.Subsets, font.SubsetLabel),
			[]string{f.DefaultSubset},
			"You must select at least one subset.",
		)
		if err != nil {
			return nil, err
		}

		sel, err := font.NewSelection(f, variants, subsets)
		if err != nil {
			return nil, err
		}
		selections = append(selections, sel)
	}
	return selections, nil
}

func labelled(values []string, label func(string) string) []Option {
	options := make([]Option, 0, len(values))
	for _, v := range values {
		options = append(options, Option{Value: v, Label: label(v)})
	}
	return options
}
