package prompt

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"
	"github.com/joeblew999/plat-webfonts/pkg/font"
)

// summaryWidth is the column width variant and subset lists are cut to.
const summaryWidth = 25

// Printer writes styled CLI output. It implements font.Reporter.
type Printer struct {
	w     io.Writer
	theme Theme
}

var _ font.Reporter = (*Printer)(nil)

// NewPrinter creates a printer on w.
func NewPrinter(w io.Writer, theme Theme) *Printer {
	return &Printer{w: w, theme: theme}
}

// Step prints a progress line.
func (p *Printer) Step(format string, args ...any) {
	fmt.Fprintf(p.w, "  %s %s\n", p.theme.accent().Render("❯"), fmt.Sprintf(format, args...))
}

// Warn prints a warning line.
func (p *Printer) Warn(format string, args ...any) {
	fmt.Fprintf(p.w, "  %s %s\n", p.theme.warning().Render("WARN"), fmt.Sprintf(format, args...))
}

// Error prints an error line.
func (p *Printer) Error(format string, args ...any) {
	fmt.Fprintf(p.w, "  %s %s\n", p.theme.danger().Render("ERROR"), fmt.Sprintf(format, args...))
}

// Success prints a success line.
func (p *Printer) Success(format string, args ...any) {
	fmt.Fprintf(p.w, "  %s %s\n", p.theme.success().Render("INFO"), fmt.Sprintf(format, args...))
}

// Accent styles s with the accent color.
func (p *Printer) Accent(s string) string {
	return p.theme.accent().Render(s)
}

// Adding implements font.Reporter.
func (p *Printer) Adding(sel font.Selection) {
	p.Step("Adding %s to the project...", p.Accent(sel.Family))
}

// Styling implements font.Reporter.
func (p *Printer) Styling(family string) {
	p.Step("Adding %s to the fonts stylesheet...", p.Accent(family))
}

// Exists implements font.Reporter.
func (p *Printer) Exists(entry font.FontFaceEntry) {
	p.Warn("%s %s already exists in the stylesheet.",
		p.theme.warning().Render(entry.Family),
		p.theme.faint().Render("("+entry.Label()+")"))
}

// Failed implements font.Reporter.
func (p *Printer) Failed(sel font.Selection, err error) {
	p.Error("Failed to add %s: %v", p.theme.danger().Render(sel.Family), err)
}

// Outcome prints the final line of an install run.
func (p *Printer) Outcome(report *font.Report) {
	names := JoinNames(report.Families())
	if !report.Succeeded() {
		p.Error("Failed to add %s to the project.", names)
		return
	}
	verb := "has"
	if len(report.Results) > 1 {
		verb = "have"
	}
	p.Success("🎉 %s %s been successfully added to the project.", names, verb)
}

// Table renders rows under headers with the accent color on the header row.
func (p *Printer) Table(headers []string, rows [][]string) string {
	headerStyle := p.theme.accent().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(p.theme.faint()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.Render()
}

// Summary renders the selections as a Name / Variants / Subsets table.
func (p *Printer) Summary(selections []font.Selection) string {
	rows := make([][]string, 0, len(selections))
	for _, sel := range selections {
		rows = append(rows, []string{
			sel.Family,
			Truncate(joinLabels(sel.Variants, font.VariantLabel)),
			Truncate(joinLabels(sel.Subsets, font.SubsetLabel)),
		})
	}
	return p.Table([]string{"Name", "Variants", "Subsets"}, rows)
}

// Truncate cuts s to the summary column width.
func Truncate(s string) string {
	return ansi.Truncate(s, summaryWidth, "...")
}

// JoinNames renders "A", "A and B" or "A, B and C".
func JoinNames(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
}

func joinLabels(values []string, label func(string) string) string {
	labels := make([]string, 0, len(values))
	for _, v := range values {
		labels = append(labels, label(v))
	}
	return strings.Join(labels, ", ")
}
