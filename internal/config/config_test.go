package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/joeblew999/plat-webfonts/pkg/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeromicro/go-zero/core/conf"
)

// projectRoot finds the project root by locating go.mod relative to this source file.
func projectRoot(t *testing.T) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	require.True(t, ok, "runtime.Caller failed")
	// This file is at internal/config/config_test.go, two levels below the root.
	root := filepath.Dir(filepath.Dir(filepath.Dir(thisFile)))
	_, err := os.Stat(filepath.Join(root, "go.mod"))
	require.NoError(t, err, "could not find project root at %s", root)
	return root
}

func TestWebfontsDefaults(t *testing.T) {
	var c WebfontsConfig
	require.NoError(t, conf.FillDefault(&c))

	assert.Equal(t, "https://gwfh.mranftl.com/api/fonts", c.Catalog.Endpoint)
	assert.Equal(t, 24*time.Hour, c.Catalog.Expiry)
	assert.Equal(t, cache.DriverSQLite, c.Cache.Driver)
	assert.Equal(t, "css", c.Stylesheet.Path)
	assert.Equal(t, "fonts", c.Stylesheet.Name)
	assert.Empty(t, c.Stylesheet.Extension)
	assert.Equal(t, "build", c.Preload.BuildDir)
	assert.Equal(t, 4, c.Workers)
	assert.Equal(t, 60, c.RateLimit)
}

func TestLoadExampleConfig(t *testing.T) {
	var c WebfontsConfig
	require.NoError(t, conf.Load(filepath.Join(projectRoot(t), "etc", "webfonts.yaml"), &c))

	assert.Equal(t, cache.DriverSQLite, c.CacheOptions().Driver)
	assert.Equal(t, 4, c.Workers)
	assert.Equal(t, "/", c.Preload.AssetURL)
}

func TestPaths(t *testing.T) {
	t.Run("Configured", func(t *testing.T) {
		root := t.TempDir()
		c := WebfontsConfig{Paths: PathsConfig{
			Data:      filepath.Join(root, "data"),
			Resources: filepath.Join(root, "resources"),
			Public:    filepath.Join(root, "public"),
		}}

		assert.Equal(t, filepath.Join(root, "resources", "fonts"), c.FontDir())
		assert.Equal(t, filepath.Join(root, "data", ".fonts"), c.StagingDir())
		assert.Equal(t, filepath.Join(root, "data", "registry.json"), c.RegistryPath())
		assert.Equal(t, filepath.Join(root, "data", "webfonts.db"), c.DatabasePath())
		assert.Equal(t, filepath.Join(root, "public"), c.ManifestOptions().PublicDir)
	})

	t.Run("Environment", func(t *testing.T) {
		root := t.TempDir()
		t.Setenv("DATA_PATH", filepath.Join(root, "data"))
		t.Setenv("RESOURCE_PATH", filepath.Join(root, "res"))
		t.Setenv("FONT_PATH", "")

		var c WebfontsConfig
		assert.Equal(t, filepath.Join(root, "data"), c.DataDir())
		assert.Equal(t, filepath.Join(root, "res"), c.ResourceDir())
		assert.Equal(t, filepath.Join(root, "res", "fonts"), c.FontDir())
	})

	t.Run("ExplicitOverrides", func(t *testing.T) {
		c := WebfontsConfig{
			Paths:    PathsConfig{Fonts: "/srv/fonts"},
			Database: DatabaseConfig{Path: "/srv/db/fonts.db"},
		}
		assert.Equal(t, "/srv/fonts", c.FontDir())
		assert.Equal(t, "/srv/db/fonts.db", c.DatabasePath())
	})
}

func TestOptionConversions(t *testing.T) {
	c := WebfontsConfig{
		Cache:      CacheConfig{Driver: "redis", Redis: RedisConfig{Addr: "cache:6379", DB: 2}},
		Stylesheet: StylesheetConfig{Path: "sass", Name: "type", Extension: "scss"},
		Preload:    PreloadConfig{BuildDir: "dist", Only: []string{"Inter"}, Except: []string{"Inter-700"}},
	}

	cacheOpts := c.CacheOptions()
	assert.Equal(t, "redis", cacheOpts.Driver)
	assert.Equal(t, "cache:6379", cacheOpts.Redis.Addr)
	assert.Equal(t, 2, cacheOpts.Redis.DB)

	style := c.StylesheetOptions()
	assert.Equal(t, "sass", style.Path)
	assert.Equal(t, "type", style.Name)
	assert.Equal(t, "scss", style.Extension)

	m := c.ManifestOptions()
	assert.Equal(t, "dist", m.BuildDir)
	assert.Equal(t, []string{"Inter"}, m.Only)
	assert.Equal(t, []string{"Inter-700"}, m.Except)
}
