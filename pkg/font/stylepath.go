package font

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// StylesheetOptions mirror the add command's --path, --stylesheet and --extension flags.
type StylesheetOptions struct {
	Path      string
	Name      string
	Extension string
}

// StylesheetLocator resolves the stylesheet file under a resources root. The result is memoized.
type StylesheetLocator struct {
	root     string
	opts     StylesheetOptions
	resolved string
}

// NewStylesheetLocator creates a locator rooted at the resources directory.
func NewStylesheetLocator(root string, opts StylesheetOptions) *StylesheetLocator {
	if opts.Path == "" {
		opts.Path = DefaultStylesheetDir
	}
	if opts.Name == "" {
		opts.Name = DefaultStylesheetName
	}
	opts.Extension = strings.TrimPrefix(opts.Extension, ".")
	return &StylesheetLocator{root: root, opts: opts}
}

// Resolve returns the absolute stylesheet path or ErrStylesDirectoryNotFound.
func (l *StylesheetLocator) Resolve() (string, error) {
	if l.resolved != "" {
		return l.resolved, nil
	}

	dir := l.opts.Path
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(l.root, dir)
	}
	if !isDir(dir) {
		dir = filepath.Join(l.root, FallbackStylesheetDir)
		if !isDir(dir) {
			return "", fmt.Errorf("%w: tried %s and %s", ErrStylesDirectoryNotFound, l.opts.Path, FallbackStylesheetDir)
		}
	}

	name := l.opts.Name
	if !strings.Contains(name, ".") {
		name += "." + l.extension(dir)
	}

	path, err := filepath.Abs(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	l.resolved = path
	return path, nil
}

// extension picks the explicit extension, else the first stylesheet type found in dir.
func (l *StylesheetLocator) extension(dir string) string {
	if l.opts.Extension != "" {
		return l.opts.Extension
	}

	found := ""
	filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		ext := strings.TrimPrefix(filepath.Ext(path), ".")
		if slices.Contains(StylesheetExtensions, ext) {
			found = ext
			return fs.SkipAll
		}
		return nil
	})
	if found == "" {
		return DefaultStylesheetExtension
	}
	return found
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
