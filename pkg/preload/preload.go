// Package preload renders <link rel="preload"> markup for installed fonts and
// emits it from a page's head.
package preload

import (
	"io"
	"strings"
	"sync"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// AssetURL maps a public file path to the URL browsers should load.
type AssetURL interface {
	URL(file string) string
}

// AssetURLFunc adapts a function to AssetURL.
type AssetURLFunc func(file string) string

// URL calls f.
func (f AssetURLFunc) URL(file string) string {
	return f(file)
}

// PublicAssets serves files from base, e.g. "https://cdn.example.com" or "/static".
func PublicAssets(base string) AssetURL {
	base = strings.TrimRight(base, "/")
	return AssetURLFunc(func(file string) string {
		return base + "/" + strings.TrimLeft(file, "/")
	})
}

// Link is the preload tag for one font URL.
func Link(url string) g.Node {
	return h.Link(
		h.Rel("preload"),
		h.Href(url),
		g.Attr("as", "font"),
		h.Type("font/woff2"),
		g.Attr("crossorigin"),
	)
}

// Build renders one preload tag per file, newline-joined, in input order.
func Build(files []string, assets AssetURL) string {
	lines := make([]string, 0, len(files))
	for _, file := range files {
		var b strings.Builder
		_ = Link(assets.URL(file)).Render(&b)
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

// FontSource supplies resolved font paths. manifest.Resolver is one.
type FontSource interface {
	Fonts() []string
}

type state int

const (
	uncomputed state = iota
	computed
)

// Builder memoizes the markup of its source. An empty source is not memoized so
// fonts that appear later are picked up.
type Builder struct {
	source FontSource
	assets AssetURL

	mu     sync.Mutex
	state  state
	markup string
}

// NewBuilder creates a builder for source, mapping files through assets.
func NewBuilder(source FontSource, assets AssetURL) *Builder {
	if assets == nil {
		assets = PublicAssets("")
	}
	return &Builder{source: source, assets: assets}
}

// Build returns the preload markup, or "" when there are no fonts.
func (b *Builder) Build() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == computed {
		return b.markup
	}

	fonts := b.source.Fonts()
	if len(fonts) == 0 {
		return ""
	}

	b.markup = Build(fonts, b.assets)
	b.state = computed
	return b.markup
}

// Invalidate drops the memoized markup, and the source's cache when it has one.
func (b *Builder) Invalidate() {
	if inv, ok := b.source.(interface{ Invalidate() }); ok {
		inv.Invalidate()
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = uncomputed
	b.markup = ""
}

// HeadHook writes the markup and a newline, or nothing when there are no fonts.
func (b *Builder) HeadHook() HeadHook {
	return func(w io.Writer) error {
		markup := b.Build()
		if markup == "" {
			return nil
		}
		_, err := io.WriteString(w, markup+"\n")
		return err
	}
}

// HeadHook writes markup into a page head.
type HeadHook func(w io.Writer) error

// HeadEmitter runs registered hooks each time a page head is rendered.
type HeadEmitter struct {
	mu    sync.RWMutex
	hooks []HeadHook
}

// OnHeadRender registers hook.
func (e *HeadEmitter) OnHeadRender(hook HeadHook) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.hooks = append(e.hooks, hook)
}

// Render invokes every hook in registration order.
func (e *HeadEmitter) Render(w io.Writer) error {
	e.mu.RLock()
	hooks := append([]HeadHook(nil), e.hooks...)
	e.mu.RUnlock()

	for _, hook := range hooks {
		if err := hook(w); err != nil {
			return err
		}
	}
	return nil
}

// Node renders the emitter inside a gomponents tree.
func (e *HeadEmitter) Node() g.Node {
	return g.NodeFunc(e.Render)
}
