package font

import (
	"fmt"
	"slices"
	"strings"
)

// Selection is a resolvable request for one family: which variants and subsets to download.
type Selection struct {
	FontID   string
	Family   string
	Variants []string
	Subsets  []string
}

// NewSelection validates variants and subsets against font. Both must be non-empty
// and every value must be offered by the font. Duplicates are dropped, order is kept.
func NewSelection(font FontDescriptor, variants, subsets []string) (Selection, error) {
	sel := Selection{
		FontID:   font.ID,
		Family:   font.Family,
		Variants: unique(variants),
		Subsets:  unique(subsets),
	}
	if err := sel.Validate(); err != nil {
		return Selection{}, err
	}

	for _, v := range sel.Variants {
		if !slices.Contains(font.Variants, v) {
			return Selection{}, fmt.Errorf("%s has no variant %q", font.Family, v)
		}
	}
	for _, s := range sel.Subsets {
		if !slices.Contains(font.Subsets, s) {
			return Selection{}, fmt.Errorf("%s has no subset %q", font.Family, s)
		}
	}

	return sel, nil
}

// Validate checks the non-empty invariant required before a download.
func (s Selection) Validate() error {
	switch {
	case s.FontID == "":
		return fmt.Errorf("%w: no font selected", ErrNoSelection)
	case len(s.Variants) == 0:
		return fmt.Errorf("%w: no variants selected for %s", ErrNoSelection, s.name())
	case len(s.Subsets) == 0:
		return fmt.Errorf("%w: no subsets selected for %s", ErrNoSelection, s.name())
	}
	return nil
}

func (s Selection) name() string {
	if s.Family != "" {
		return s.Family
	}
	return s.FontID
}

// ParseSelection parses "id[:variant,variant[:subset,subset]]" against catalog.
// Omitted variants or subsets fall back to the font's defaults.
func ParseSelection(catalog *Catalog, arg string) (Selection, error) {
	parts := strings.SplitN(strings.TrimSpace(arg), ":", 3)
	id := strings.ToLower(parts[0])
	if id == "" {
		return Selection{}, fmt.Errorf("%w: empty font in %q", ErrNoSelection, arg)
	}

	font, ok := catalog.Get(id)
	if !ok {
		return Selection{}, fmt.Errorf("font %q not found in catalog", id)
	}

	variants := []string{font.DefaultVariant}
	if len(parts) > 1 && parts[1] != "" {
		variants = splitList(parts[1])
	}
	subsets := []string{font.DefaultSubset}
	if len(parts) > 2 && parts[2] != "" {
		subsets = splitList(parts[2])
	}

	return NewSelection(font, variants, subsets)
}

func splitList(s string) []string {
	var out []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func unique(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" && !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}
