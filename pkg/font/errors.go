package font

import "errors"

var (
	// ErrCatalogUnavailable means the catalog could not be fetched or decoded. It aborts a run.
	ErrCatalogUnavailable = errors.New("font catalog unavailable")

	// ErrDownloadFailed means the archive request for one font failed.
	ErrDownloadFailed = errors.New("font download failed")

	// ErrExtractionFailed means a downloaded archive could not be opened or extracted.
	ErrExtractionFailed = errors.New("font extraction failed")

	// ErrStylesDirectoryNotFound means neither the requested nor the fallback stylesheet directory exists.
	ErrStylesDirectoryNotFound = errors.New("unable to locate the styles directory")

	// ErrNoSelection means a font, variant or subset selection was empty.
	ErrNoSelection = errors.New("empty font selection")
)
