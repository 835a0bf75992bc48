package font

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/joeblew999/plat-webfonts/pkg/cache"
	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/require"
)

const interCatalog = `[
  {"id":"inter","family":"Inter","category":"sans-serif","variants":["100","400","700","400"],"subsets":["cyrillic","latin","cyrillic"],"defVariant":"400","defSubset":"latin"},
  {"id":"roboto","family":"Roboto","category":"sans-serif","variants":["regular","700italic"],"subsets":["latin","latin-ext"],"defVariant":"regular","defSubset":"latin"},
  {"id":"roboto-mono","family":"Roboto Mono","category":"monospace","variants":["regular"],"subsets":["latin"],"defVariant":"regular","defSubset":"latin"}
]`

// fontAPI is a fake catalog and archive endpoint.
type fontAPI struct {
	server        *httptest.Server
	catalog       string
	catalogStatus int
	archives      map[string][]byte
	catalogHits   atomic.Int32
	archiveHits   atomic.Int32

	mu      sync.Mutex
	queries []url.Values
}

func newFontAPI(t *testing.T, catalog string, archives map[string][]byte) *fontAPI {
	t.Helper()
	api := &fontAPI{
		catalog:       catalog,
		catalogStatus: http.StatusOK,
		archives:      archives,
	}
	api.server = httptest.NewServer(http.HandlerFunc(api.serve))
	t.Cleanup(api.server.Close)
	return api
}

func (a *fontAPI) endpoint() string {
	return a.server.URL + "/api/fonts"
}

func (a *fontAPI) serve(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/api/fonts":
		a.catalogHits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(a.catalogStatus)
		w.Write([]byte(a.catalog))
	case strings.HasPrefix(r.URL.Path, "/api/fonts/"):
		a.archiveHits.Add(1)
		a.mu.Lock()
		a.queries = append(a.queries, r.URL.Query())
		a.mu.Unlock()

		data, ok := a.archives[strings.TrimPrefix(r.URL.Path, "/api/fonts/")]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/zip")
		w.Write(data)
	default:
		http.NotFound(w, r)
	}
}

func (a *fontAPI) archiveQueries() []url.Values {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]url.Values(nil), a.queries...)
}

// zipArchive builds an in-memory zip holding files in the given order.
func zipArchive(t *testing.T, files ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, name := range files {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte("woff2 data for " + name))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func memoryStore(t *testing.T) cache.Store {
	t.Helper()
	store, err := cache.NewMemoryStore(strings.ReplaceAll(t.Name(), "/", "_"))
	require.NoError(t, err)
	return store
}

// promptLog is a Confirmer that answers with a fixed value and records prompts.
type promptLog struct {
	answer  bool
	prompts []string
}

func (p *promptLog) Confirm(prompt string) bool {
	p.prompts = append(p.prompts, prompt)
	return p.answer
}
