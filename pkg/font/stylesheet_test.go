package font

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFontFace(t *testing.T) {
	tests := []struct {
		filename string
		weight   int
		style    string
	}{
		{"family-700italic.woff2", 700, "italic"},
		{"family-regular.woff2", 400, "normal"},
		{"family-italic.woff2", 400, "italic"},
		{"inter-v12-latin-300.woff2", 300, "normal"},
		{"roboto-v30-latin_latin-ext-100italic.woff2", 100, "italic"},
		{"Inter-400.woff2", 400, "normal"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			entry := ParseFontFace("Family", tt.filename)
			assert.Equal(t, "Family", entry.Family)
			assert.Equal(t, tt.weight, entry.Weight)
			assert.Equal(t, tt.style, entry.Style)
			assert.Equal(t, "../fonts/"+tt.filename, entry.Path)
		})
	}
}

func TestTemplateRenderer(t *testing.T) {
	t.Run("Default", func(t *testing.T) {
		block, err := DefaultRenderer().Render(ParseFontFace("Inter", "Inter-700italic.woff2"))
		require.NoError(t, err)
		assert.Equal(t, `@font-face {
  font-display: swap;
  font-family: 'Inter';
  font-style: italic;
  font-weight: 700;
  src: url('../fonts/Inter-700italic.woff2') format('woff2');
}`, block)
	})

	t.Run("CustomFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "face.tmpl")
		require.NoError(t, os.WriteFile(path, []byte("\n{{.Name}} {{.Weight}} {{.Style}} {{.Path}}\n"), 0644))

		r, err := LoadTemplateRenderer(path)
		require.NoError(t, err)
		block, err := r.Render(ParseFontFace("Inter", "Inter-regular.woff2"))
		require.NoError(t, err)
		assert.Equal(t, "Inter 400 normal ../fonts/Inter-regular.woff2", block)
	})

	t.Run("InvalidTemplate", func(t *testing.T) {
		_, err := NewTemplateRenderer("{{.Name")
		assert.Error(t, err)
	})
}

func interFiles(names ...string) []DownloadedFile {
	files := make([]DownloadedFile, 0, len(names))
	for _, n := range names {
		files = append(files, DownloadedFile{Filename: n, FontFamily: "Inter"})
	}
	return files
}

func TestStylesheetMerger(t *testing.T) {
	t.Run("CreatesAndPrepends", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "fonts.css")

		m := NewStylesheetMerger(path, nil)
		added, existing, err := m.Apply("Inter", interFiles("Inter-400.woff2", "Inter-700.woff2"))
		require.NoError(t, err)
		assert.Equal(t, 2, added)
		assert.Empty(t, existing)
		assert.Equal(t, 2, m.Pending())

		written, err := m.Commit()
		require.NoError(t, err)
		assert.Equal(t, 2, written)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		content := string(data)
		assert.Equal(t, 2, strings.Count(content, "@font-face"))
		assert.Less(t, strings.Index(content, "Inter-400"), strings.Index(content, "Inter-700"))
		assert.True(t, strings.HasSuffix(content, "}"+lineSeparator()))
	})

	t.Run("Idempotent", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "fonts.css")
		files := interFiles("Inter-400.woff2", "Inter-700.woff2")

		first := NewStylesheetMerger(path, nil)
		_, _, err := first.Apply("Inter", files)
		require.NoError(t, err)
		_, err = first.Commit()
		require.NoError(t, err)
		before, err := os.ReadFile(path)
		require.NoError(t, err)

		second := NewStylesheetMerger(path, nil)
		added, existing, err := second.Apply("Inter", files)
		require.NoError(t, err)
		assert.Zero(t, added)
		assert.Len(t, existing, 2)

		written, err := second.Commit()
		require.NoError(t, err)
		assert.Zero(t, written)

		after, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("KeepsExistingContentBeneath", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "fonts.css")
		require.NoError(t, os.WriteFile(path, []byte("body { color: red; }\n"), 0644))

		m := NewStylesheetMerger(path, nil)
		_, _, err := m.Apply("Inter", interFiles("Inter-400.woff2"))
		require.NoError(t, err)
		_, err = m.Commit()
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), "@font-face {"))
		assert.True(t, strings.HasSuffix(string(data), lineSeparator()+"body { color: red; }\n"))
	})

	t.Run("DropsDuplicatesWithinRun", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "fonts.css")

		m := NewStylesheetMerger(path, nil)
		added, existing, err := m.Apply("Inter", interFiles("Inter-400.woff2", "Inter-400.woff2"))
		require.NoError(t, err)
		assert.Equal(t, 1, added)
		assert.Equal(t, []FontFaceEntry{ParseFontFace("Inter", "Inter-400.woff2")}, existing)

		added, existing, err = m.Apply("Inter", interFiles("Inter-400.woff2"))
		require.NoError(t, err)
		assert.Zero(t, added)
		assert.Len(t, existing, 1, "queued blocks are reported as existing")
		assert.Equal(t, 1, m.Pending())
	})
}

func TestStylesheetLocator(t *testing.T) {
	t.Run("RequestedDirectory", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(root, "css"), 0755))
		require.NoError(t, os.WriteFile(filepath.Join(root, "css", "app.scss"), nil, 0644))

		path, err := NewStylesheetLocator(root, StylesheetOptions{}).Resolve()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "css", "fonts.scss"), path)
	})

	t.Run("FallbackDirectory", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(root, "styles"), 0755))

		path, err := NewStylesheetLocator(root, StylesheetOptions{Path: "sass"}).Resolve()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "styles", "fonts.css"), path)
	})

	t.Run("ExplicitExtensionAndName", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(root, "css"), 0755))
		require.NoError(t, os.WriteFile(filepath.Join(root, "css", "app.scss"), nil, 0644))

		path, err := NewStylesheetLocator(root, StylesheetOptions{Name: "type", Extension: ".less"}).Resolve()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "css", "type.less"), path)

		path, err = NewStylesheetLocator(root, StylesheetOptions{Name: "type.styl"}).Resolve()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "css", "type.styl"), path)
	})

	t.Run("IgnoresOtherFiles", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(root, "css"), 0755))
		require.NoError(t, os.WriteFile(filepath.Join(root, "css", "readme.md"), nil, 0644))

		path, err := NewStylesheetLocator(root, StylesheetOptions{}).Resolve()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "css", "fonts.css"), path)
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := NewStylesheetLocator(t.TempDir(), StylesheetOptions{}).Resolve()
		assert.ErrorIs(t, err, ErrStylesDirectoryNotFound)
	})

	t.Run("Memoized", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(root, "css"), 0755))

		locator := NewStylesheetLocator(root, StylesheetOptions{})
		first, err := locator.Resolve()
		require.NoError(t, err)

		require.NoError(t, os.RemoveAll(filepath.Join(root, "css")))
		second, err := locator.Resolve()
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}
