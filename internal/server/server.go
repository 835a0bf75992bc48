package server

import (
	"fmt"
	"net/http"

	"github.com/joeblew999/plat-webfonts/internal/config"
	"github.com/joeblew999/plat-webfonts/internal/errorx"
	"github.com/joeblew999/plat-webfonts/internal/handler"
	"github.com/joeblew999/plat-webfonts/internal/svc"
	"github.com/joeblew999/plat-webfonts/internal/ui"
	"github.com/joeblew999/plat-webfonts/pkg/cache"
	"github.com/joeblew999/plat-webfonts/pkg/db"
	"github.com/joeblew999/plat-webfonts/pkg/font"
	"github.com/joeblew999/plat-webfonts/pkg/history"
	"github.com/joeblew999/plat-webfonts/pkg/manifest"
	"github.com/joeblew999/plat-webfonts/pkg/preload"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/mr"
	"github.com/zeromicro/go-zero/core/proc"
	"github.com/zeromicro/go-zero/core/prometheus"
	"github.com/zeromicro/go-zero/core/service"
	"github.com/zeromicro/go-zero/mcp"
	"github.com/zeromicro/go-zero/rest"
)

// Server wraps the preview UI, the JSON API and the MCP server.
type Server struct {
	config config.Config
	group  *service.ServiceGroup
}

// New creates a new server instance.
func New(c config.Config) (*Server, error) {
	// Register global error handler for proper HTTP status codes
	errorx.RegisterErrorHandler()

	// Enable go-zero prometheus metrics (required for metric.CounterVec/HistogramVec/GaugeVec to record)
	prometheus.Enable()

	mcpServer := mcp.NewMcpServer(c.McpConf)
	wf := c.Webfonts

	// Parallel initialization: the first manifest read and the database are independent
	resolver := manifest.NewResolver(wf.ManifestOptions())
	registry := font.NewRegistry(wf.RegistryPath())
	var database *db.DB

	err := mr.Finish(
		func() error {
			fonts := resolver.Fonts()
			logx.Infow("Manifest resolved",
				logx.Field("format", string(resolver.Format())),
				logx.Field("fonts", len(fonts)),
			)
			return nil
		},
		func() error {
			var e error
			database, e = db.Open(wf.DatabasePath())
			return e
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize: %w", err)
	}

	conn := database.SqlConn()
	store, err := cache.Open(wf.CacheOptions(), conn)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	recorder, err := history.NewRecorder(conn)
	if err != nil {
		store.Close()
		database.Close()
		return nil, fmt.Errorf("failed to open install history: %w", err)
	}

	catalog := font.NewCatalogClient(store,
		font.WithEndpoint(wf.Catalog.Endpoint),
		font.WithExpiry(wf.Catalog.Expiry),
	)

	builder := preload.NewBuilder(resolver, preload.PublicAssets(wf.Preload.AssetURL))
	emitter := &preload.HeadEmitter{}
	emitter.OnHeadRender(builder.HeadHook())
	watcher := manifest.NewWatcher(resolver, builder.Invalidate, wf.Preload.Watch)

	svcCtx := svc.NewServiceContext(c, catalog, registry, resolver, builder, recorder)

	RegisterMCPTools(mcpServer, svcCtx)

	// Create UI rest server (Datastar preview UI) with CORS
	uiServer, err := rest.NewServer(c.UI.RestConf, rest.WithCors("*"))
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create UI server: %w", err)
	}

	uiHandlers := ui.NewHandlers(svcCtx, emitter)
	uiServer.AddRoutes(uiHandlers.Routes())
	uiServer.AddRoutes(uiHandlers.SSERoutes(), rest.WithSSE())

	// Create API rest server (goctl-generated JSON REST API) with CORS
	apiServer, err := rest.NewServer(c.API.RestConf, rest.WithCors("*"))
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create API server: %w", err)
	}

	handler.RegisterHandlers(apiServer, svcCtx)

	// Expose Prometheus metrics endpoint
	apiServer.AddRoute(rest.Route{
		Method:  http.MethodGet,
		Path:    "/metrics",
		Handler: promhttp.Handler().ServeHTTP,
	})

	// Register cleanup via proc shutdown listeners
	proc.AddShutdownListener(func() {
		logx.Info("Flushing install events")
		recorder.Flush()
	})
	proc.AddShutdownListener(func() {
		logx.Info("Closing cache and database")
		store.Close()
		database.Close()
	})

	// Build service group: watcher + UI + API + MCP (stopped in reverse order)
	group := service.NewServiceGroup()
	group.Add(watcher)
	group.Add(uiServer)
	group.Add(apiServer)
	group.Add(mcpServer)

	logx.Infow("plat-webfonts server configured",
		logx.Field("mcp", fmt.Sprintf("http://%s:%d/sse", c.Host, c.Port)),
		logx.Field("ui", fmt.Sprintf("http://%s:%d", c.UI.Host, c.UI.Port)),
		logx.Field("api", fmt.Sprintf("http://%s:%d/api/v1", c.API.Host, c.API.Port)),
		logx.Field("public", wf.PublicDir()),
		logx.Field("cache", wf.Cache.Driver),
		logx.Field("database", wf.DatabasePath()),
	)
	logx.Infof("To add to Claude: claude mcp add plat-webfonts -- npx -y mcp-remote http://localhost:%d/sse", c.Port)

	return &Server{config: c, group: group}, nil
}

// Start starts all services. Blocks until shutdown signal.
func (s *Server) Start() {
	s.group.Start()
}

// Stop stops all services.
func (s *Server) Stop() {
	s.group.Stop()
}
