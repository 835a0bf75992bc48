package font

import "time"

const (
	// CatalogAPI is the Google Webfonts Helper catalog endpoint
	CatalogAPI = "https://gwfh.mranftl.com/api/fonts"

	// CatalogCacheKey is the cache key the normalized catalog is stored under
	CatalogCacheKey = "google-webfonts"

	// CatalogExpiry is how long a fetched catalog stays cached
	CatalogExpiry = 24 * time.Hour

	// FontFormat is the only format requested from the catalog
	FontFormat = "woff2"

	// FontExtension is the file extension of installed fonts
	FontExtension = "." + FontFormat

	// RegistryFilename is the name of the font registry file
	RegistryFilename = "registry.json"

	// DefaultFontWeight is the weight used when a variant has no digits
	DefaultFontWeight = 400

	// DefaultFontStyle is the style used for "regular" or empty variants
	DefaultFontStyle = "normal"

	// DefaultStylesheetDir is the stylesheet directory tried first, relative to resources
	DefaultStylesheetDir = "css"

	// FallbackStylesheetDir is tried when the requested stylesheet directory is missing
	FallbackStylesheetDir = "styles"

	// DefaultStylesheetName is the stylesheet filename stem
	DefaultStylesheetName = "fonts"

	// DefaultStylesheetExtension is used when the stylesheet directory holds no stylesheets yet
	DefaultStylesheetExtension = "css"

	// FontPathPrefix is how stylesheets reference installed fonts
	FontPathPrefix = "../fonts/"
)

// StylesheetExtensions are the extensions recognised when inferring the stylesheet type
var StylesheetExtensions = []string{"css", "less", "sass", "scss", "styl"}
