// Package ui provides the Datastar-based preview UI for plat-webfonts.
package ui

import (
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/joeblew999/plat-webfonts/pkg/font"
	"github.com/joeblew999/plat-webfonts/pkg/history"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	data "maragu.dev/gomponents-datastar"
)

// Layout wraps content in the base HTML layout. head is rendered inside <head>,
// after the page's own tags, so preload links land where browsers expect them.
func Layout(head g.Node, title string, content ...g.Node) g.Node {
	return h.HTML(
		h.Lang("en"),
		h.Head(
			h.Meta(h.Charset("utf-8")),
			h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
			h.TitleEl(g.Text(title)),
			head,
			h.Script(h.Type("module"), h.Src("https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.7/bundles/datastar.js")),
			h.StyleEl(h.Type("text/css"), g.Raw(styles)),
		),
		h.Body(
			h.Nav(h.Class("navbar"),
				h.Div(h.Class("nav-brand"), g.Text("plat-webfonts")),
				h.Div(h.Class("nav-links"),
					h.A(h.Href("/"), g.Text("Fonts")),
					h.A(h.Href("/preload"), g.Text("Preload")),
					h.A(h.Href("/catalog"), g.Text("Catalog")),
					h.A(h.Href("/history"), g.Text("History")),
				),
			),
			h.Main(h.Class("container"), g.Group(content)),
			h.Footer(h.Class("footer"),
				g.Text("plat-webfonts - self-hosted web fonts"),
			),
		),
	)
}

// FontsPage lists installed fonts and refreshes them over SSE.
func FontsPage(head g.Node) g.Node {
	return Layout(head, "Fonts - plat-webfonts",
		data.Signals(map[string]any{
			"count":   0,
			"loading": true,
		}),
		data.Init("@get('/api/fonts')"),

		h.H1(g.Text("Installed Fonts")),

		h.Div(h.Class("stats-grid"),
			h.Div(h.Class("stat-card"),
				h.Div(h.Class("stat-value"), data.Text("$count")),
				h.Div(h.Class("stat-label"), g.Text("Font files")),
			),
		),

		h.Div(h.Class("section"),
			data.OnInterval("@get('/api/fonts')", data.ModifierDuration, data.Duration(10*time.Second)),
			h.Div(
				data.Show("$loading"),
				h.Span(h.Class("loading-spinner")),
				g.Text(" Loading..."),
			),
			h.Div(h.ID("font-list")),
		),
	)
}

// FontTable renders registry entries.
func FontTable(fonts []font.FontInfo) g.Node {
	if len(fonts) == 0 {
		return h.P(h.Class("hint"), g.Text("No fonts installed. Run webfonts add."))
	}

	return h.Table(h.Class("table"),
		h.THead(h.Tr(
			h.Th(g.Text("Family")),
			h.Th(g.Text("Face")),
			h.Th(g.Text("File")),
			h.Th(g.Text("Size")),
			h.Th(g.Text("Installed")),
		)),
		h.TBody(g.Map(fonts, func(f font.FontInfo) g.Node {
			return h.Tr(
				h.Td(h.Class("strong"), g.Text(f.Family)),
				h.Td(g.Text(strconv.Itoa(f.Weight)+" "+f.Style)),
				h.Td(h.Code(g.Text(f.Filename))),
				h.Td(g.Text(humanize.Bytes(uint64(f.Size)))),
				h.Td(h.Class("muted"), g.Text(installed(f.InstalledAt))),
			)
		})),
	)
}

func installed(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.Time(t)
}

// PreloadPage shows the markup injected into every page head.
func PreloadPage(head g.Node) g.Node {
	return Layout(head, "Preload - plat-webfonts",
		data.Signals(map[string]any{
			"markup":  "",
			"format":  "",
			"loading": true,
		}),
		data.Init("@get('/api/preload')"),

		h.H1(g.Text("Preload Markup")),

		h.Div(h.Class("section"),
			h.Div(h.Class("actions"),
				h.Button(
					data.On("click", "$loading = true; @get('/api/preload?refresh=true')"),
					g.Text("Re-read manifests"),
				),
			),
			h.P(h.Class("hint"),
				g.Text("Manifest: "),
				h.Span(data.Text("$format || 'none'")),
			),
			h.Pre(h.Class("markup"),
				data.Show("!$loading && $markup"),
				data.Text("$markup"),
			),
			h.P(h.Class("hint"),
				data.Show("!$loading && !$markup"),
				g.Text("No fonts found in the build manifests."),
			),
		),
	)
}

// CatalogPage searches the remote catalog.
func CatalogPage(head g.Node) g.Node {
	return Layout(head, "Catalog - plat-webfonts",
		data.Signals(map[string]any{
			"query":   "",
			"loading": false,
		}),

		h.H1(g.Text("Font Catalog")),

		h.Div(h.Class("section"),
			h.Div(h.Class("form-group"),
				h.Input(h.Type("search"), h.Placeholder("Search for fonts..."),
					data.Bind("query"),
					data.On("change", "$loading = true; @get('/api/catalog')"),
				),
			),
			h.Div(h.ID("catalog-results")),
		),
	)
}

// CatalogResults renders search hits.
func CatalogResults(fonts []font.FontDescriptor) g.Node {
	if len(fonts) == 0 {
		return h.P(h.Class("hint"), g.Text("No matching fonts."))
	}

	return h.Table(h.Class("table"),
		h.THead(h.Tr(
			h.Th(g.Text("Family")),
			h.Th(g.Text("Id")),
			h.Th(g.Text("Category")),
			h.Th(g.Text("Variants")),
			h.Th(g.Text("Subsets")),
		)),
		h.TBody(g.Map(fonts, func(f font.FontDescriptor) g.Node {
			return h.Tr(
				h.Td(h.Class("strong"), g.Text(f.Family)),
				h.Td(h.Code(g.Text(f.ID))),
				h.Td(g.Text(f.Category)),
				h.Td(g.Text(strconv.Itoa(len(f.Variants)))),
				h.Td(g.Text(strconv.Itoa(len(f.Subsets)))),
			)
		})),
	)
}

// HistoryPage shows recent install events.
func HistoryPage(head g.Node) g.Node {
	return Layout(head, "History - plat-webfonts",
		data.Signals(map[string]any{
			"loading": true,
		}),
		data.Init("@get('/api/history')"),

		h.H1(g.Text("Install History")),

		h.Div(h.Class("refresh-bar"),
			data.OnInterval("@get('/api/history')", data.ModifierDuration, data.Duration(5*time.Second)),
			g.Text("Auto-refresh: 5s"),
		),
		h.Div(h.Class("section"),
			h.Div(h.ID("history-items")),
		),
	)
}

// HistoryTable renders install events, newest first.
func HistoryTable(events []history.Event) g.Node {
	if len(events) == 0 {
		return h.P(h.Class("hint"), g.Text("No installs recorded yet."))
	}

	return h.Table(h.Class("table"),
		h.THead(h.Tr(
			h.Th(g.Text("Time")),
			h.Th(g.Text("Event")),
			h.Th(g.Text("Font")),
			h.Th(g.Text("Run")),
			h.Th(g.Text("Details")),
		)),
		h.TBody(g.Map(events, func(e history.Event) g.Node {
			return h.Tr(
				h.Td(h.Class("muted"), g.Text(e.Timestamp)),
				h.Td(h.Span(h.Class("event "+eventClass(e.Type)), g.Text(e.Type))),
				h.Td(g.Text(e.FontID)),
				h.Td(h.Code(g.Text(shortID(e.RunID)))),
				h.Td(h.Class("muted"), g.Text(e.Fields().Encode())),
			)
		})),
	)
}

func eventClass(eventType string) string {
	switch eventType {
	case font.EventFontInstalled:
		return "ok"
	case font.EventFontFailed:
		return "failed"
	default:
		return "info"
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

const styles = `
:root {
	--ink: #1c1917;
	--ink-soft: #57534e;
	--paper: #fafaf9;
	--sheet: #ffffff;
	--rule: #e7e5e4;
	--accent: #0f766e;
	--accent-deep: #115e59;
	--good: #15803d;
	--bad: #b91c1c;
	--mono: ui-monospace, SFMono-Regular, Menlo, Consolas, monospace;
}

*, *::before, *::after { box-sizing: border-box; }

html, body { margin: 0; }

body {
	font: 15px/1.55 system-ui, sans-serif;
	background: var(--paper);
	color: var(--ink);
}

.navbar {
	display: flex;
	align-items: baseline;
	gap: 2.5rem;
	padding: 1.1rem 2.5rem;
	border-bottom: 3px solid var(--ink);
	background: var(--sheet);
}

.nav-brand {
	font-size: 1.35rem;
	font-weight: 800;
	letter-spacing: -0.02em;
}

.nav-links { display: flex; gap: 1.5rem; }

.nav-links a {
	color: var(--ink-soft);
	text-decoration: none;
	border-bottom: 2px solid transparent;
}

.nav-links a:hover { color: var(--ink); border-bottom-color: var(--accent); }

.container { max-width: 1080px; margin: 0 auto; padding: 2.5rem; }

h1 { font-size: 2rem; font-weight: 800; letter-spacing: -0.03em; margin: 0 0 1.75rem; }

.stats-grid { display: flex; flex-wrap: wrap; gap: 1rem; margin-bottom: 1.75rem; }

.stat-card, .section {
	background: var(--sheet);
	border: 1px solid var(--rule);
	border-radius: 4px;
	padding: 1.25rem 1.5rem;
	margin-bottom: 1.25rem;
}

.stat-card { min-width: 180px; }

.stat-value { font-size: 2.25rem; font-weight: 800; color: var(--accent); }

.stat-label, .hint, .muted, .refresh-bar { color: var(--ink-soft); font-size: 0.85rem; }

.refresh-bar { margin-bottom: 0.75rem; }

.actions { display: flex; gap: 0.75rem; margin-bottom: 1rem; }

button {
	font: inherit;
	font-weight: 600;
	color: var(--sheet);
	background: var(--accent);
	border: 0;
	border-radius: 3px;
	padding: 0.55rem 1.2rem;
	cursor: pointer;
}

button:hover { background: var(--accent-deep); }

.table { width: 100%; border-collapse: collapse; font-size: 0.875rem; }

.table th {
	text-align: left;
	text-transform: uppercase;
	letter-spacing: 0.06em;
	font-size: 0.72rem;
	color: var(--ink-soft);
	padding: 0.5rem 0.75rem;
	border-bottom: 2px solid var(--ink);
}

.table td { padding: 0.6rem 0.75rem; border-bottom: 1px solid var(--rule); }

.table code, .markup { font-family: var(--mono); }

.strong { font-weight: 600; }

.event.ok { color: var(--good); font-weight: 600; }
.event.failed { color: var(--bad); font-weight: 600; }
.event.info { color: var(--accent); }

.markup {
	background: var(--paper);
	border-left: 3px solid var(--accent);
	padding: 0.9rem 1rem;
	overflow-x: auto;
	font-size: 0.8rem;
	white-space: pre;
}

.form-group input {
	width: 100%;
	font: inherit;
	padding: 0.6rem 0.8rem;
	border: 1px solid var(--rule);
	border-bottom: 2px solid var(--ink);
	margin-bottom: 1rem;
}

.footer {
	padding: 1.5rem 2.5rem;
	color: var(--ink-soft);
	font-size: 0.8rem;
	border-top: 1px solid var(--rule);
}

.loading-spinner {
	display: inline-block;
	width: 14px;
	height: 14px;
	border: 2px solid var(--rule);
	border-top-color: var(--accent);
	border-radius: 50%;
	animation: spin 0.8s linear infinite;
}

@keyframes spin { to { transform: rotate(360deg); } }
`
