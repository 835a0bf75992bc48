package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/joeblew999/plat-webfonts/internal/errorx"
	"github.com/joeblew999/plat-webfonts/internal/svc"
	"github.com/joeblew999/plat-webfonts/internal/types"
	"github.com/joeblew999/plat-webfonts/pkg/cache"
	"github.com/joeblew999/plat-webfonts/pkg/font"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogJSON = `[
	{"id": "inter", "family": "Inter", "category": "sans-serif", "variants": ["100", "regular", "700"], "subsets": ["cyrillic", "latin"], "defVariant": "regular", "defSubset": "latin"},
	{"id": "inter-tight", "family": "Inter Tight", "variants": ["regular"], "subsets": ["latin"], "defVariant": "regular", "defSubset": "latin"},
	{"id": "roboto", "family": "Roboto", "variants": ["regular"], "subsets": ["latin"], "defVariant": "regular", "defSubset": "latin"}
]`

func newServiceContext(t *testing.T, handler http.HandlerFunc) *svc.ServiceContext {
	t.Helper()
	api := httptest.NewServer(handler)
	t.Cleanup(api.Close)

	store, err := cache.NewMemoryStore(strings.ReplaceAll(t.Name(), "/", "_"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return &svc.ServiceContext{
		Catalog: font.NewCatalogClient(store, font.WithEndpoint(api.URL)),
	}
}

func TestSearchCatalog(t *testing.T) {
	svcCtx := newServiceContext(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(catalogJSON))
	})
	l := NewSearchCatalogLogic(context.Background(), svcCtx)

	resp, err := l.SearchCatalog(&types.SearchCatalogRequest{Query: "inter", Limit: 20})
	require.NoError(t, err)
	require.Equal(t, 2, resp.Count)
	assert.Equal(t, "inter", resp.Fonts[0].Id)
	assert.Equal(t, []string{"regular", "100", "700"}, resp.Fonts[0].Variants)
	assert.Equal(t, "latin", resp.Fonts[0].Subsets[0])

	resp, err = l.SearchCatalog(&types.SearchCatalogRequest{Query: "inter", Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Count)

	resp, err = l.SearchCatalog(&types.SearchCatalogRequest{Query: "  "})
	require.NoError(t, err)
	assert.Zero(t, resp.Count)
	assert.NotNil(t, resp.Fonts)
}

func TestSearchCatalogUnavailable(t *testing.T) {
	svcCtx := newServiceContext(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := NewSearchCatalogLogic(context.Background(), svcCtx).SearchCatalog(&types.SearchCatalogRequest{Query: "inter"})
	var codeErr *errorx.CodeError
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, http.StatusServiceUnavailable, codeErr.Code)
}
