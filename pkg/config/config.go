// Package config provides environment-aware path defaults for the webfonts tools.
package config

import (
	"os"
	"path/filepath"
)

// GetDataPath returns the data directory path.
// It checks for DATA_PATH environment variable, otherwise uses a default.
func GetDataPath() string {
	if path := os.Getenv("DATA_PATH"); path != "" {
		return path
	}

	// Default to current working directory
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return filepath.Join(cwd, ".data")
}

// GetResourcePath returns the project resources directory (stylesheets, fonts).
// It checks for RESOURCE_PATH environment variable, otherwise uses ./resources.
func GetResourcePath() string {
	if path := os.Getenv("RESOURCE_PATH"); path != "" {
		return path
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "resources"
	}
	return filepath.Join(cwd, "resources")
}

// GetPublicPath returns the public web root holding build manifests.
// It checks for PUBLIC_PATH environment variable, otherwise uses ./public.
func GetPublicPath() string {
	if path := os.Getenv("PUBLIC_PATH"); path != "" {
		return path
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "public"
	}
	return filepath.Join(cwd, "public")
}

// GetFontPath returns the directory installed font files are moved into.
// It checks for FONT_PATH environment variable, otherwise uses a default.
func GetFontPath() string {
	if path := os.Getenv("FONT_PATH"); path != "" {
		return path
	}

	return filepath.Join(GetResourcePath(), "fonts")
}

// GetStagingPath returns the root for ephemeral archive extraction.
func GetStagingPath() string {
	return filepath.Join(GetDataPath(), ".fonts")
}

// GetDatabasePath returns the SQLite database used for the catalog cache and install history.
func GetDatabasePath() string {
	return filepath.Join(GetDataPath(), "webfonts.db")
}

// GetRegistryPath returns the installed font registry file.
func GetRegistryPath() string {
	return filepath.Join(GetDataPath(), "registry.json")
}
