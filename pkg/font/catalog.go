package font

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/joeblew999/plat-webfonts/pkg/cache"
	"github.com/joeblew999/plat-webfonts/pkg/log"
	"github.com/zeromicro/go-zero/rest/httpc"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FontDescriptor is one catalog family. Variants and Subsets start with the default.
type FontDescriptor struct {
	ID             string   `json:"id"`
	Family         string   `json:"family"`
	Category       string   `json:"category,omitempty"`
	Variants       []string `json:"variants"`
	Subsets        []string `json:"subsets"`
	DefaultVariant string   `json:"defVariant"`
	DefaultSubset  string   `json:"defSubset"`
}

// Catalog is an immutable, ordered set of descriptors indexed by id.
type Catalog struct {
	fonts []FontDescriptor
	index map[string]int
}

func newCatalog(fonts []FontDescriptor) *Catalog {
	c := &Catalog{
		fonts: fonts,
		index: make(map[string]int, len(fonts)),
	}
	for i, f := range fonts {
		c.index[f.ID] = i
	}
	return c
}

// Get returns the descriptor for id.
func (c *Catalog) Get(id string) (FontDescriptor, bool) {
	i, ok := c.index[id]
	if !ok {
		return FontDescriptor{}, false
	}
	return c.fonts[i], true
}

// Len returns the number of families.
func (c *Catalog) Len() int {
	return len(c.fonts)
}

// Fonts returns the descriptors in catalog order.
func (c *Catalog) Fonts() []FontDescriptor {
	out := make([]FontDescriptor, len(c.fonts))
	copy(out, c.fonts)
	return out
}

// Map returns the catalog keyed by font id.
func (c *Catalog) Map() map[string]FontDescriptor {
	out := make(map[string]FontDescriptor, len(c.fonts))
	for _, f := range c.fonts {
		out[f.ID] = f
	}
	return out
}

// Search returns families whose name contains query, case-insensitively, in catalog order.
// An empty query matches nothing.
func (c *Catalog) Search(query string) []FontDescriptor {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	var out []FontDescriptor
	for _, f := range c.fonts {
		if strings.Contains(strings.ToLower(f.Family), query) {
			out = append(out, f)
		}
	}
	return out
}

// CatalogClient fetches the remote catalog through a cache store.
type CatalogClient struct {
	endpoint string
	store    cache.Store
	key      string
	expiry   time.Duration
}

// CatalogOption configures a CatalogClient.
type CatalogOption func(*CatalogClient)

// WithEndpoint overrides the catalog API endpoint.
func WithEndpoint(endpoint string) CatalogOption {
	return func(c *CatalogClient) {
		c.endpoint = strings.TrimRight(endpoint, "/")
	}
}

// WithCacheKey overrides the key the catalog is cached under.
func WithCacheKey(key string) CatalogOption {
	return func(c *CatalogClient) {
		c.key = key
	}
}

// WithExpiry overrides how long the catalog stays cached.
func WithExpiry(expiry time.Duration) CatalogOption {
	return func(c *CatalogClient) {
		c.expiry = expiry
	}
}

// NewCatalogClient creates a catalog client backed by store.
func NewCatalogClient(store cache.Store, opts ...CatalogOption) *CatalogClient {
	c := &CatalogClient{
		endpoint: CatalogAPI,
		store:    store,
		key:      CatalogCacheKey,
		expiry:   CatalogExpiry,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the catalog API endpoint.
func (c *CatalogClient) Endpoint() string {
	return c.endpoint
}

// Fetch returns the catalog, from cache when possible. Any failure forgets the
// cached entry so the next call goes back to the network.
func (c *CatalogClient) Fetch(ctx context.Context) (*Catalog, error) {
	data, err := c.store.Remember(ctx, c.key, c.expiry, c.download)
	if err != nil {
		return nil, c.fail(ctx, err)
	}

	var fonts []FontDescriptor
	if err := json.Unmarshal(data, &fonts); err != nil {
		return nil, c.fail(ctx, fmt.Errorf("decode cached catalog: %w", err))
	}
	if len(fonts) == 0 {
		return nil, c.fail(ctx, fmt.Errorf("catalog is empty"))
	}

	catalogFetches.Inc("ok")
	return newCatalog(fonts), nil
}

// Clear forgets the cached catalog.
func (c *CatalogClient) Clear(ctx context.Context) error {
	return c.store.Forget(ctx, c.key)
}

func (c *CatalogClient) fail(ctx context.Context, cause error) error {
	catalogFetches.Inc("error")
	if err := c.store.Forget(ctx, c.key); err != nil {
		log.Warn("Failed to forget catalog cache", "key", c.key, "error", err)
	}
	return fmt.Errorf("%w: %w", ErrCatalogUnavailable, cause)
}

// catalogItem is the raw shape returned by the catalog API.
type catalogItem struct {
	ID         string   `json:"id"`
	Family     string   `json:"family"`
	Category   string   `json:"category"`
	Variants   []string `json:"variants"`
	Subsets    []string `json:"subsets"`
	DefVariant string   `json:"defVariant"`
	DefSubset  string   `json:"defSubset"`
}

// download fetches and normalizes the remote catalog. Its output is what gets cached.
func (c *CatalogClient) download(ctx context.Context) ([]byte, error) {
	log.Info("Fetching font catalog", "endpoint", c.endpoint)
	catalogFetches.Inc("remote")

	resp, err := httpc.Do(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("request catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("catalog API returned status: %s", resp.Status)
	}

	var items []catalogItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	fonts := make([]FontDescriptor, 0, len(items))
	for _, item := range items {
		fonts = append(fonts, normalizeItem(item))
	}

	return json.Marshal(fonts)
}

func normalizeItem(item catalogItem) FontDescriptor {
	return FontDescriptor{
		ID:             item.ID,
		Family:         item.Family,
		Category:       item.Category,
		Variants:       defaultFirst(item.Variants, item.DefVariant),
		Subsets:        defaultFirst(item.Subsets, item.DefSubset),
		DefaultVariant: item.DefVariant,
		DefaultSubset:  item.DefSubset,
	}
}

// defaultFirst puts def in front of values and drops duplicates, keeping catalog order.
func defaultFirst(values []string, def string) []string {
	out := make([]string, 0, len(values)+1)
	seen := make(map[string]struct{}, len(values)+1)
	if def != "" {
		out = append(out, def)
		seen[def] = struct{}{}
	}
	for _, v := range values {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

var digitLetter = regexp.MustCompile(`([0-9])([a-zA-Z])`)

// VariantLabel renders a variant id for display: "700italic" becomes "700 Italic".
func VariantLabel(variant string) string {
	return headline(digitLetter.ReplaceAllString(variant, "$1 $2"))
}

// SubsetLabel renders a subset id for display: "latin-ext" becomes "Latin Ext".
func SubsetLabel(subset string) string {
	return headline(subset)
}

func headline(s string) string {
	s = strings.NewReplacer("-", " ", "_", " ").Replace(s)
	return cases.Title(language.English).String(s)
}
