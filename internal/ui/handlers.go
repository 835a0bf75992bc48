package ui

import (
	"net/http"
	"strings"

	"github.com/joeblew999/plat-webfonts/internal/svc"
	"github.com/joeblew999/plat-webfonts/pkg/preload"
	"github.com/starfederation/datastar-go/datastar"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/rest"
	g "maragu.dev/gomponents"
)

const (
	historyLimit = 50
	searchLimit  = 50
)

// Handlers provides HTTP handlers for the UI.
type Handlers struct {
	svcCtx  *svc.ServiceContext
	emitter *preload.HeadEmitter
}

// NewHandlers creates new UI handlers. Every page head is rendered through emitter.
func NewHandlers(svcCtx *svc.ServiceContext, emitter *preload.HeadEmitter) *Handlers {
	return &Handlers{
		svcCtx:  svcCtx,
		emitter: emitter,
	}
}

// Routes returns the standard UI routes for registration with rest.Server.
func (h *Handlers) Routes() []rest.Route {
	return []rest.Route{
		{Method: http.MethodGet, Path: "/", Handler: h.page(FontsPage)},
		{Method: http.MethodGet, Path: "/preload", Handler: h.page(PreloadPage)},
		{Method: http.MethodGet, Path: "/catalog", Handler: h.page(CatalogPage)},
		{Method: http.MethodGet, Path: "/history", Handler: h.page(HistoryPage)},
	}
}

// SSERoutes returns the SSE-based API routes (require rest.WithSSE option).
func (h *Handlers) SSERoutes() []rest.Route {
	return []rest.Route{
		{Method: http.MethodGet, Path: "/api/fonts", Handler: h.handleFonts},
		{Method: http.MethodGet, Path: "/api/preload", Handler: h.handlePreload},
		{Method: http.MethodGet, Path: "/api/catalog", Handler: h.handleCatalog},
		{Method: http.MethodGet, Path: "/api/history", Handler: h.handleHistory},
	}
}

func (h *Handlers) page(render func(head g.Node) g.Node) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := render(h.emitter.Node()).Render(w); err != nil {
			logx.WithContext(r.Context()).Errorf("render %s: %v", r.URL.Path, err)
		}
	}
}

func (h *Handlers) handleFonts(w http.ResponseWriter, r *http.Request) {
	h.svcCtx.Registry.Reload()
	fonts := h.svcCtx.Registry.List()

	sse := datastar.NewSSE(w, r)
	if err := sse.PatchElementf(`<div id="font-list">%s</div>`, renderNode(FontTable(fonts))); err != nil {
		logx.Errorf("datastar patch font list: %v", err)
	}
	if err := sse.MarshalAndPatchSignals(map[string]any{"count": len(fonts), "loading": false}); err != nil {
		logx.Errorf("datastar patch signals: %v", err)
	}
}

func (h *Handlers) handlePreload(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("refresh") == "true" {
		h.svcCtx.Preload.Invalidate()
	}

	h.sendDatastarSignals(w, r, map[string]any{
		"markup":  h.svcCtx.Preload.Build(),
		"format":  string(h.svcCtx.Fonts.Format()),
		"loading": false,
	})
}

func (h *Handlers) handleCatalog(w http.ResponseWriter, r *http.Request) {
	var signals struct {
		Query string `json:"query"`
	}
	if err := datastar.ReadSignals(r, &signals); err != nil {
		h.sendDatastarError(w, r, err)
		return
	}

	catalog, err := h.svcCtx.Catalog.Fetch(r.Context())
	if err != nil {
		h.sendDatastarError(w, r, err)
		return
	}

	found := catalog.Search(signals.Query)
	if len(found) > searchLimit {
		found = found[:searchLimit]
	}

	sse := datastar.NewSSE(w, r)
	if err := sse.PatchElementf(`<div id="catalog-results">%s</div>`, renderNode(CatalogResults(found))); err != nil {
		logx.Errorf("datastar patch catalog results: %v", err)
	}
	if err := sse.MarshalAndPatchSignals(map[string]any{"loading": false}); err != nil {
		logx.Errorf("datastar patch signals: %v", err)
	}
}

func (h *Handlers) handleHistory(w http.ResponseWriter, r *http.Request) {
	events, err := h.svcCtx.History.List(r.Context(), historyLimit)
	if err != nil {
		h.sendDatastarError(w, r, err)
		return
	}

	sse := datastar.NewSSE(w, r)
	if err := sse.PatchElementf(`<div id="history-items">%s</div>`, renderNode(HistoryTable(events))); err != nil {
		logx.Errorf("datastar patch history: %v", err)
	}
	if err := sse.MarshalAndPatchSignals(map[string]any{"loading": false}); err != nil {
		logx.Errorf("datastar patch signals: %v", err)
	}
}

func (h *Handlers) sendDatastarSignals(w http.ResponseWriter, r *http.Request, signals map[string]any) {
	sse := datastar.NewSSE(w, r)
	if err := sse.MarshalAndPatchSignals(signals); err != nil {
		logx.Errorf("datastar patch signals: %v", err)
	}
}

func (h *Handlers) sendDatastarError(w http.ResponseWriter, r *http.Request, err error) {
	logx.WithContext(r.Context()).Errorf("%s: %v", r.URL.Path, err)
	h.sendDatastarSignals(w, r, map[string]any{
		"loading": false,
		"error":   err.Error(),
	})
}

func renderNode(n g.Node) string {
	var b strings.Builder
	if err := n.Render(&b); err != nil {
		logx.Errorf("render fragment: %v", err)
	}
	return b.String()
}
