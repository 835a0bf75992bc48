package fonts

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/joeblew999/plat-webfonts/internal/errorx"
	"github.com/joeblew999/plat-webfonts/internal/svc"
	"github.com/joeblew999/plat-webfonts/internal/types"
	"github.com/joeblew999/plat-webfonts/pkg/font"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFontsLogic(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "Inter-700italic.woff2")
	require.NoError(t, os.WriteFile(path, []byte("font"), 0644))

	registry := font.NewRegistry(filepath.Join(dir, font.RegistryFilename))
	installedAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, registry.Add(font.FontInfo{
		Filename:    "Inter-700italic.woff2",
		Family:      "Inter",
		Weight:      700,
		Style:       "italic",
		Format:      font.FontFormat,
		Path:        path,
		Size:        4,
		Source:      "inter",
		InstalledAt: installedAt,
	}))
	svcCtx := &svc.ServiceContext{Registry: registry}

	t.Run("List", func(t *testing.T) {
		resp, err := NewListFontsLogic(ctx, svcCtx).ListFonts()
		require.NoError(t, err)
		require.Equal(t, 1, resp.Count)
		assert.Equal(t, types.FontItem{
			Filename:    "Inter-700italic.woff2",
			Family:      "Inter",
			Weight:      700,
			Style:       "italic",
			Format:      "woff2",
			Path:        path,
			Size:        4,
			Source:      "inter",
			InstalledAt: "2026-01-02T03:04:05Z",
		}, resp.Fonts[0])
	})

	t.Run("Get", func(t *testing.T) {
		item, err := NewGetFontLogic(ctx, svcCtx).GetFont(&types.GetFontRequest{Filename: "Inter-700italic.woff2"})
		require.NoError(t, err)
		assert.Equal(t, "Inter", item.Family)
	})

	t.Run("GetMissing", func(t *testing.T) {
		_, err := NewGetFontLogic(ctx, svcCtx).GetFont(&types.GetFontRequest{Filename: "Roboto-400.woff2"})
		var codeErr *errorx.CodeError
		require.ErrorAs(t, err, &codeErr)
		assert.Equal(t, http.StatusNotFound, codeErr.Code)
	})
}
