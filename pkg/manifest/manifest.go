// Package manifest resolves preloadable font files from a build-tool asset manifest.
package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/joeblew999/plat-webfonts/pkg/log"
	"github.com/tidwall/jsonc"
)

// FontExtension is the only file type offered for preload.
const FontExtension = ".woff2"

// Format identifies which manifest shape produced the fonts.
type Format string

const (
	// FormatNone means no manifest was found.
	FormatNone Format = ""
	// FormatFlat is {"key": {"file": "..."}} at <public>/manifest.json.
	FormatFlat Format = "flat"
	// FormatBuild is the build tool manifest at <public>/build/manifest.json.
	FormatBuild Format = "build"
)

// DefaultBuildDir is the build output directory holding the build manifest.
const DefaultBuildDir = "build"

// Options configure a Resolver. Only and Except match a file's name, its name
// without extension, or its family (the text before the variant token, e.g. "Inter"
// for "Inter-700italic.woff2").
// Except wins over Only.
type Options struct {
	PublicDir string
	BuildDir  string
	Only      []string
	Except    []string
}

// Paths returns the flat and build manifest locations, in lookup order.
func (o Options) Paths() (flat, build string) {
	dir := o.BuildDir
	if dir == "" {
		dir = DefaultBuildDir
	}
	return filepath.Join(o.PublicDir, "manifest.json"), filepath.Join(o.PublicDir, dir, "manifest.json")
}

// Entry is one manifest record.
type Entry struct {
	SourceKey  string
	OutputFile string
}

type state int

const (
	uncomputed state = iota
	computed
)

// Resolver computes the font list once and serves it until Invalidate.
type Resolver struct {
	opts Options

	mu     sync.Mutex
	state  state
	fonts  []string
	format Format
}

// NewResolver creates a resolver. The options are copied and never change afterwards.
func NewResolver(opts Options) *Resolver {
	if opts.BuildDir == "" {
		opts.BuildDir = DefaultBuildDir
	}
	opts.Only = slices.Clone(opts.Only)
	opts.Except = slices.Clone(opts.Except)
	return &Resolver{opts: opts}
}

// Options returns the resolver's configuration.
func (r *Resolver) Options() Options {
	return r.opts
}

// Fonts returns the resolved font paths in manifest order.
func (r *Resolver) Fonts() []string {
	r.compute()
	return slices.Clone(r.fonts)
}

// Format returns the manifest shape the fonts came from.
func (r *Resolver) Format() Format {
	r.compute()
	return r.format
}

// Invalidate discards the computed list; the next call reads the manifests again.
func (r *Resolver) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = uncomputed
	r.fonts = nil
	r.format = FormatNone
}

func (r *Resolver) compute() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == computed {
		return
	}
	r.fonts, r.format = Resolve(r.opts)
	r.state = computed
}

// Resolve reads the flat manifest, else the build manifest, and returns the filtered
// fonts of the first one that has entries. Missing manifests give an empty list.
func Resolve(opts Options) ([]string, Format) {
	if opts.BuildDir == "" {
		opts.BuildDir = DefaultBuildDir
	}

	flat, build := opts.Paths()
	sources := []struct {
		format Format
		file   string
		prefix string
	}{
		{FormatFlat, flat, ""},
		{FormatBuild, build, opts.BuildDir + "/"},
	}

	for _, src := range sources {
		entries, err := Load(src.file, src.prefix)
		if err != nil {
			if !os.IsNotExist(err) {
				log.Warn("Ignoring unreadable manifest", "path", src.file, "error", err)
			}
			continue
		}
		if len(entries) == 0 {
			continue
		}
		return Filter(entries, opts.Only, opts.Except), src.format
	}

	return []string{}, FormatNone
}

// Load parses a manifest file, keeping document order. Comments and trailing commas
// are tolerated. prefix is prepended to every output path.
func Load(file, prefix string) ([]Entry, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return Parse(data, prefix)
}

// Parse decodes {"key": {"file": "..."}} objects. Entries without a file are skipped.
func Parse(data []byte, prefix string) ([]Entry, error) {
	dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("decode manifest: expected object, got %v", tok)
	}

	var entries []Entry
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decode manifest: %w", err)
		}
		key, _ := tok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("decode manifest entry %q: %w", key, err)
		}

		var chunk struct {
			File string `json:"file"`
		}
		if json.Unmarshal(raw, &chunk) != nil || chunk.File == "" {
			continue
		}
		entries = append(entries, Entry{SourceKey: key, OutputFile: prefix + chunk.File})
	}

	return entries, nil
}

// Filter keeps font outputs allowed by only and not denied by except, in order.
func Filter(entries []Entry, only, except []string) []string {
	fonts := []string{}
	for _, e := range entries {
		if !strings.HasSuffix(e.OutputFile, FontExtension) {
			continue
		}
		if len(only) > 0 && !e.matches(only) {
			continue
		}
		if e.matches(except) {
			continue
		}
		fonts = append(fonts, e.OutputFile)
	}
	return fonts
}

func (e Entry) matches(names []string) bool {
	if len(names) == 0 {
		return false
	}
	for _, file := range []string{e.SourceKey, e.OutputFile} {
		for _, candidate := range candidates(file) {
			if slices.Contains(names, candidate) {
				return true
			}
		}
	}
	return false
}

// variantToken matches the variant part of a font filename: "400", "700italic", "regular", "italic".
var variantToken = regexp.MustCompile(`(?i)^(\d+[a-z]*|regular|italic)$`)

// candidates returns the names a file answers to: "fonts/Inter-400.woff2" answers
// to "Inter-400.woff2", "Inter-400" and "Inter". The family is everything before the
// first variant token, so "Inter-Tight-400.woff2" answers to "Inter-Tight", not "Inter".
func candidates(file string) []string {
	base := path.Base(filepath.ToSlash(file))
	stem := strings.TrimSuffix(base, path.Ext(base))
	names := []string{base, stem}
	if family := familyOf(stem); family != "" {
		names = append(names, family)
	}
	return names
}

func familyOf(stem string) string {
	parts := strings.Split(stem, "-")
	for i := 1; i < len(parts); i++ {
		if variantToken.MatchString(parts[i]) {
			return strings.Join(parts[:i], "-")
		}
	}
	return ""
}
