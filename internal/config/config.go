package config

import (
	"path/filepath"
	"time"

	"github.com/joeblew999/plat-webfonts/pkg/cache"
	pathconf "github.com/joeblew999/plat-webfonts/pkg/config"
	"github.com/joeblew999/plat-webfonts/pkg/font"
	"github.com/joeblew999/plat-webfonts/pkg/manifest"
	"github.com/zeromicro/go-zero/mcp"
	"github.com/zeromicro/go-zero/rest"
)

// Config holds the preview server configuration.
type Config struct {
	mcp.McpConf

	UI       UIConfig       `json:",optional"`
	API      APIConfig      `json:",optional"`
	Webfonts WebfontsConfig `json:",optional"`
}

// UIConfig holds the Web UI server settings.
type UIConfig struct {
	rest.RestConf
}

// APIConfig holds the REST API server settings.
type APIConfig struct {
	rest.RestConf
}

// WebfontsConfig is shared by the CLI and the preview server.
type WebfontsConfig struct {
	Catalog    CatalogConfig    `json:",optional"`
	Cache      CacheConfig      `json:",optional"`
	Paths      PathsConfig      `json:",optional"`
	Stylesheet StylesheetConfig `json:",optional"`
	Preload    PreloadConfig    `json:",optional"`
	Database   DatabaseConfig   `json:",optional"`
	Workers    int              `json:",default=4"`

	// RateLimit caps archive downloads per minute. Zero disables pacing.
	RateLimit int `json:",default=60"`
}

// CatalogConfig holds the remote catalog settings.
type CatalogConfig struct {
	Endpoint string        `json:",default=https://gwfh.mranftl.com/api/fonts"`
	Expiry   time.Duration `json:",default=24h"`
}

// CacheConfig selects the catalog cache driver.
type CacheConfig struct {
	Driver string      `json:",default=sqlite,options=memory|sqlite|redis"`
	Redis  RedisConfig `json:",optional"`
}

// RedisConfig holds redis connection settings.
type RedisConfig struct {
	Addr     string `json:",default=localhost:6379"`
	Password string `json:",optional"`
	DB       int    `json:",default=0"`
}

// PathsConfig overrides the environment path defaults.
type PathsConfig struct {
	Data      string `json:",optional"`
	Resources string `json:",optional"`
	Public    string `json:",optional"`
	Fonts     string `json:",optional"`
}

// StylesheetConfig locates the stylesheet font faces are written to.
type StylesheetConfig struct {
	Path      string `json:",default=css"`
	Name      string `json:",default=fonts"`
	Extension string `json:",optional"`

	// Template is an optional text/template file replacing the default @font-face block.
	Template string `json:",optional"`
}

// PreloadConfig configures manifest resolution and preload URLs.
type PreloadConfig struct {
	AssetURL string   `json:",default=/"`
	BuildDir string   `json:",default=build"`
	Only     []string `json:",optional"`
	Except   []string `json:",optional"`

	// Watch is how often the preview server checks the manifests for rebuilds.
	Watch time.Duration `json:",default=2s"`
}

// DatabaseConfig holds database settings.
type DatabaseConfig struct {
	Path string `json:",optional"`
}

// DataDir is the configured data directory, else DATA_PATH.
func (c WebfontsConfig) DataDir() string {
	if c.Paths.Data != "" {
		return c.Paths.Data
	}
	return pathconf.GetDataPath()
}

// ResourceDir is the configured resources directory, else RESOURCE_PATH.
func (c WebfontsConfig) ResourceDir() string {
	if c.Paths.Resources != "" {
		return c.Paths.Resources
	}
	return pathconf.GetResourcePath()
}

// PublicDir is the configured public directory, else PUBLIC_PATH.
func (c WebfontsConfig) PublicDir() string {
	if c.Paths.Public != "" {
		return c.Paths.Public
	}
	return pathconf.GetPublicPath()
}

// FontDir is where installed fonts live.
func (c WebfontsConfig) FontDir() string {
	if c.Paths.Fonts != "" {
		return c.Paths.Fonts
	}
	if c.Paths.Resources != "" {
		return filepath.Join(c.Paths.Resources, "fonts")
	}
	return pathconf.GetFontPath()
}

// StagingDir is the root for per-run archive extraction.
func (c WebfontsConfig) StagingDir() string {
	return filepath.Join(c.DataDir(), ".fonts")
}

// RegistryPath is the installed font registry file.
func (c WebfontsConfig) RegistryPath() string {
	return filepath.Join(c.DataDir(), font.RegistryFilename)
}

// DatabasePath is the SQLite file for the cache and install history.
func (c WebfontsConfig) DatabasePath() string {
	if c.Database.Path != "" {
		return c.Database.Path
	}
	return filepath.Join(c.DataDir(), "webfonts.db")
}

// CacheOptions converts the cache section for cache.Open.
func (c WebfontsConfig) CacheOptions() cache.Config {
	return cache.Config{
		Driver: c.Cache.Driver,
		Redis: cache.RedisConfig{
			Addr:     c.Cache.Redis.Addr,
			Password: c.Cache.Redis.Password,
			DB:       c.Cache.Redis.DB,
		},
	}
}

// StylesheetOptions converts the stylesheet section for font.NewStylesheetLocator.
func (c WebfontsConfig) StylesheetOptions() font.StylesheetOptions {
	return font.StylesheetOptions{
		Path:      c.Stylesheet.Path,
		Name:      c.Stylesheet.Name,
		Extension: c.Stylesheet.Extension,
	}
}

// ManifestOptions converts the preload section for manifest.NewResolver.
func (c WebfontsConfig) ManifestOptions() manifest.Options {
	return manifest.Options{
		PublicDir: c.PublicDir(),
		BuildDir:  c.Preload.BuildDir,
		Only:      c.Preload.Only,
		Except:    c.Preload.Except,
	}
}
