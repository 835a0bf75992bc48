package font

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/joeblew999/plat-webfonts/pkg/log"
	"github.com/klauspost/compress/zip"
	"github.com/zeromicro/go-zero/rest/httpc"
	"golang.org/x/time/rate"
)

// ArchiveFetcher downloads per-font zip packages and extracts them into a staging root.
type ArchiveFetcher struct {
	endpoint    string
	stagingRoot string
	limiter     *rate.Limiter
}

// FetcherOption configures an ArchiveFetcher.
type FetcherOption func(*ArchiveFetcher)

// WithRateLimit caps archive requests per minute. Zero disables pacing.
func WithRateLimit(perMinute int) FetcherOption {
	return func(f *ArchiveFetcher) {
		if perMinute <= 0 {
			f.limiter = nil
			return
		}
		f.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1)
	}
}

// NewArchiveFetcher creates a fetcher for the catalog endpoint that stages under stagingRoot.
func NewArchiveFetcher(endpoint, stagingRoot string, opts ...FetcherOption) *ArchiveFetcher {
	f := &ArchiveFetcher{
		endpoint:    strings.TrimRight(endpoint, "/"),
		stagingRoot: stagingRoot,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// In returns a fetcher staging under root that shares f's rate limiter.
func (f *ArchiveFetcher) In(root string) *ArchiveFetcher {
	c := *f
	c.stagingRoot = root
	return &c
}

// archiveQuery restricts the archive to woff2 files of the selected variants and subsets.
type archiveQuery struct {
	Download string `form:"download"`
	Formats  string `form:"formats"`
	Variants string `form:"variants"`
	Subsets  string `form:"subsets"`
}

// Fetch downloads the archive for sel and returns the directory it was extracted into.
// Errors wrap ErrDownloadFailed or ErrExtractionFailed and only concern this font.
func (f *ArchiveFetcher) Fetch(ctx context.Context, sel Selection) (string, error) {
	start := time.Now()
	defer func() {
		downloadDuration.ObserveFloat(time.Since(start).Seconds(), sel.FontID)
	}()

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			downloads.Inc("download_failed")
			return "", fmt.Errorf("%w: %s: %w", ErrDownloadFailed, sel.FontID, err)
		}
	}

	archive, err := f.download(ctx, sel)
	if err != nil {
		downloads.Inc("download_failed")
		return "", fmt.Errorf("%w: %s: %w", ErrDownloadFailed, sel.FontID, err)
	}
	defer os.Remove(archive)

	dir := filepath.Join(f.stagingRoot, sel.FontID)
	if err := extractArchive(archive, dir); err != nil {
		os.RemoveAll(dir)
		downloads.Inc("extraction_failed")
		return "", fmt.Errorf("%w: %s: %w", ErrExtractionFailed, sel.FontID, err)
	}

	downloads.Inc("ok")
	return dir, nil
}

// download writes the response body to a private temporary file and returns its path.
func (f *ArchiveFetcher) download(ctx context.Context, sel Selection) (string, error) {
	endpoint := f.endpoint + "/" + url.PathEscape(sel.FontID)
	resp, err := httpc.Do(ctx, http.MethodGet, endpoint, archiveQuery{
		Download: "zip",
		Formats:  FontFormat,
		Variants: strings.Join(sel.Variants, ","),
		Subsets:  strings.Join(sel.Subsets, ","),
	})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("archive API returned status: %s", resp.Status)
	}

	if err := os.MkdirAll(f.stagingRoot, 0755); err != nil {
		return "", fmt.Errorf("create staging directory: %w", err)
	}

	tmp, err := os.CreateTemp(f.stagingRoot, sel.FontID+"-*.zip")
	if err != nil {
		return "", fmt.Errorf("create temporary archive: %w", err)
	}

	size, err := io.Copy(tmp, resp.Body)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write temporary archive: %w", err)
	}

	log.Debug("Archive downloaded", "font", sel.FontID, "size", humanize.Bytes(uint64(size)))
	return tmp.Name(), nil
}

// extractArchive unpacks the zip at archivePath into dir. Entries that would land
// outside dir are rejected.
func extractArchive(archivePath, dir string) error {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer r.Close()

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create extraction directory: %w", err)
	}

	root := filepath.Clean(dir) + string(os.PathSeparator)
	for _, file := range r.File {
		target := filepath.Join(dir, file.Name)
		if !strings.HasPrefix(target, root) {
			return fmt.Errorf("illegal path in archive: %s", file.Name)
		}

		if file.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return err
			}
			continue
		}

		if err := extractFile(file, target); err != nil {
			return fmt.Errorf("extract %s: %w", file.Name, err)
		}
	}

	return nil
}

func extractFile(file *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}
