package server

import (
	"context"
	"fmt"
	"strings"

	"github.com/joeblew999/plat-webfonts/internal/logic/catalog"
	"github.com/joeblew999/plat-webfonts/internal/logic/fonts"
	"github.com/joeblew999/plat-webfonts/internal/logic/history"
	"github.com/joeblew999/plat-webfonts/internal/logic/preload"
	"github.com/joeblew999/plat-webfonts/internal/svc"
	"github.com/joeblew999/plat-webfonts/internal/types"
	"github.com/zeromicro/go-zero/mcp"
)

// RegisterMCPTools registers all MCP tools for the font workspace.
// Tools share the API logic so both surfaces answer the same way.
func RegisterMCPTools(s mcp.McpServer, svcCtx *svc.ServiceContext) {
	registerListFontsTool(s, svcCtx)
	registerPreloadTool(s, svcCtx)
	registerSearchCatalogTool(s, svcCtx)
	registerHistoryTool(s, svcCtx)
	registerPreloadResource(s, svcCtx)
}

func registerListFontsTool(s mcp.McpServer, svcCtx *svc.ServiceContext) {
	s.RegisterTool(mcp.Tool{
		Name:        "list_fonts",
		Description: "List the self-hosted font files installed into the project, with family, weight, style and size.",
		InputSchema: mcp.InputSchema{
			Properties: map[string]any{},
		},
		Handler: func(ctx context.Context, p map[string]any) (any, error) {
			return fonts.NewListFontsLogic(ctx, svcCtx).ListFonts()
		},
	})
}

func registerPreloadTool(s mcp.McpServer, svcCtx *svc.ServiceContext) {
	s.RegisterTool(mcp.Tool{
		Name:        "preload_markup",
		Description: "Return the <link rel=\"preload\"> tags emitted into page heads for the fonts found in the build manifests.",
		InputSchema: mcp.InputSchema{
			Properties: map[string]any{
				"refresh": map[string]any{
					"type":        "boolean",
					"description": "Re-read the manifests before answering (after a rebuild)",
				},
			},
		},
		Handler: func(ctx context.Context, p map[string]any) (any, error) {
			var args struct {
				Refresh bool `json:"refresh,optional"`
			}
			if err := mcp.ParseArguments(p, &args); err != nil {
				return nil, fmt.Errorf("invalid arguments: %w", err)
			}

			if args.Refresh {
				return preload.NewInvalidatePreloadLogic(ctx, svcCtx).InvalidatePreload()
			}
			return preload.NewGetPreloadLogic(ctx, svcCtx).GetPreload()
		},
	})
}

func registerSearchCatalogTool(s mcp.McpServer, svcCtx *svc.ServiceContext) {
	s.RegisterTool(mcp.Tool{
		Name:        "search_catalog",
		Description: "Search the Google Fonts catalog by family name. Returns font ids usable with `webfonts add --font id:variants:subsets`.",
		InputSchema: mcp.InputSchema{
			Properties: map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "Case-insensitive part of a family name (e.g., inter, roboto mono)",
				},
				"limit": map[string]any{
					"type":        "integer",
					"description": "Maximum number of results (default 20)",
				},
			},
			Required: []string{"query"},
		},
		Handler: func(ctx context.Context, p map[string]any) (any, error) {
			var args struct {
				Query string `json:"query"`
				Limit int    `json:"limit,optional"`
			}
			if err := mcp.ParseArguments(p, &args); err != nil {
				return nil, fmt.Errorf("invalid arguments: %w", err)
			}
			if args.Limit <= 0 {
				args.Limit = 20
			}

			return catalog.NewSearchCatalogLogic(ctx, svcCtx).SearchCatalog(&types.SearchCatalogRequest{
				Query: args.Query,
				Limit: args.Limit,
			})
		},
	})
}

func registerHistoryTool(s mcp.McpServer, svcCtx *svc.ServiceContext) {
	s.RegisterTool(mcp.Tool{
		Name:        "install_history",
		Description: "Show recent font install events, or every event of one install run.",
		InputSchema: mcp.InputSchema{
			Properties: map[string]any{
				"run_id": map[string]any{
					"type":        "string",
					"description": "Install run id; omit for the most recent events",
				},
				"limit": map[string]any{
					"type":        "integer",
					"description": "Maximum number of events (default 50)",
				},
			},
		},
		Handler: func(ctx context.Context, p map[string]any) (any, error) {
			var args struct {
				RunID string `json:"run_id,optional"`
				Limit int    `json:"limit,optional"`
			}
			if err := mcp.ParseArguments(p, &args); err != nil {
				return nil, fmt.Errorf("invalid arguments: %w", err)
			}

			if args.RunID != "" {
				return history.NewGetRunLogic(ctx, svcCtx).GetRun(&types.GetRunRequest{RunId: args.RunID})
			}
			if args.Limit <= 0 {
				args.Limit = 50
			}
			return history.NewListHistoryLogic(ctx, svcCtx).ListHistory(&types.ListHistoryRequest{Limit: args.Limit})
		},
	})
}

func registerPreloadResource(s mcp.McpServer, svcCtx *svc.ServiceContext) {
	s.RegisterResource(mcp.Resource{
		Name:        "preload",
		URI:         "webfonts://preload",
		Description: "Font preload tags for the page head",
		MimeType:    "text/html",
		Handler: func(ctx context.Context) (mcp.ResourceContent, error) {
			var b strings.Builder
			if err := svcCtx.Preload.HeadHook()(&b); err != nil {
				return mcp.ResourceContent{}, err
			}

			return mcp.ResourceContent{
				URI:      "webfonts://preload",
				MimeType: "text/html",
				Text:     b.String(),
			}, nil
		},
	})
}
