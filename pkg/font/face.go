package font

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"text/template"
)

// FontFaceEntry is the @font-face data derived from one installed file.
type FontFaceEntry struct {
	Family string
	Weight int
	Style  string
	Path   string
}

var digits = regexp.MustCompile(`[0-9]+`)

// ParseFontFace derives weight and style from the trailing "-<variant>" token of filename.
// "inter-v12-latin-700italic.woff2" gives 700 italic; "inter-v12-latin-regular.woff2" gives 400 normal.
func ParseFontFace(family, filename string) FontFaceEntry {
	token := filename
	if i := strings.LastIndex(token, "-"); i >= 0 {
		token = token[i+1:]
	}
	if i := strings.LastIndex(token, "."); i >= 0 {
		token = token[:i]
	}

	weight := DefaultFontWeight
	style := token
	if n := strings.Join(digits.FindAllString(token, -1), ""); n != "" {
		if w, err := strconv.Atoi(n); err == nil {
			weight = w
		}
		if i := strings.Index(token, n); i >= 0 {
			style = token[i+len(n):]
		}
	}
	if style == "" || style == "regular" {
		style = DefaultFontStyle
	}

	return FontFaceEntry{
		Family: family,
		Weight: weight,
		Style:  style,
		Path:   FontPathPrefix + filename,
	}
}

// Label renders the variant for messages, e.g. "700 Italic".
func (e FontFaceEntry) Label() string {
	return fmt.Sprintf("%d %s", e.Weight, headline(e.Style))
}

// FaceRenderer turns an entry into an @font-face block.
type FaceRenderer interface {
	Render(entry FontFaceEntry) (string, error)
}

// DefaultFaceTemplate renders a swap-display woff2 @font-face block.
const DefaultFaceTemplate = `@font-face {
  font-display: swap;
  font-family: '{{.Name}}';
  font-style: {{.Style}};
  font-weight: {{.Weight}};
  src: url('{{.Path}}') format('woff2');
}`

// TemplateRenderer renders entries through a text/template receiving Name, Weight, Style and Path.
type TemplateRenderer struct {
	tmpl *template.Template
}

// NewTemplateRenderer parses text as a font-face template.
func NewTemplateRenderer(text string) (*TemplateRenderer, error) {
	tmpl, err := template.New("font-face").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font-face template: %w", err)
	}
	return &TemplateRenderer{tmpl: tmpl}, nil
}

// LoadTemplateRenderer reads a font-face template from path. An empty path yields the default.
func LoadTemplateRenderer(path string) (*TemplateRenderer, error) {
	if path == "" {
		return DefaultRenderer(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font-face template: %w", err)
	}
	return NewTemplateRenderer(string(data))
}

// DefaultRenderer returns a renderer for DefaultFaceTemplate.
func DefaultRenderer() *TemplateRenderer {
	return &TemplateRenderer{tmpl: template.Must(template.New("font-face").Parse(DefaultFaceTemplate))}
}

// Render executes the template for entry. Surrounding whitespace is trimmed.
func (r *TemplateRenderer) Render(entry FontFaceEntry) (string, error) {
	var b strings.Builder
	err := r.tmpl.Execute(&b, struct {
		Name   string
		Weight int
		Style  string
		Path   string
	}{entry.Family, entry.Weight, entry.Style, entry.Path})
	if err != nil {
		return "", fmt.Errorf("failed to render font-face for %s: %w", entry.Family, err)
	}
	return strings.TrimSpace(b.String()), nil
}
