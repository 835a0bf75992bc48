package font

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/joeblew999/plat-webfonts/pkg/config"
	"github.com/joeblew999/plat-webfonts/pkg/log"
	"github.com/zeromicro/go-zero/core/mr"
)

// Install event types.
const (
	EventRunStarted    = "run_started"
	EventFontInstalled = "font_installed"
	EventFontFailed    = "font_failed"
	EventRunFinished   = "run_finished"
)

// DefaultWorkers is the number of archives fetched concurrently.
const DefaultWorkers = 4

// InstallEvent is one step of an install run.
type InstallEvent struct {
	RunID   string
	FontID  string
	Type    string
	Details map[string]any
}

// EventRecorder receives install events.
type EventRecorder interface {
	Record(ctx context.Context, event InstallEvent)
}

// Reporter receives user-facing progress, in selection order.
type Reporter interface {
	Adding(sel Selection)
	Styling(family string)
	Exists(entry FontFaceEntry)
	Failed(sel Selection, err error)
}

type nopReporter struct{}

func (nopReporter) Adding(Selection)        {}
func (nopReporter) Styling(string)          {}
func (nopReporter) Exists(FontFaceEntry)    {}
func (nopReporter) Failed(Selection, error) {}

// FontResult is the outcome for one selection.
type FontResult struct {
	Selection     Selection
	Files         []DownloadedFile
	FacesAdded    int
	FacesExisting []FontFaceEntry
	Err           error
}

// Report summarizes an install run. Results follow selection order.
type Report struct {
	RunID          string
	StylesheetPath string
	Results        []FontResult
	FacesAdded     int
}

// Succeeded reports whether any font produced new files or new stylesheet entries.
func (r *Report) Succeeded() bool {
	if r.FacesAdded > 0 {
		return true
	}
	for _, res := range r.Results {
		if len(res.Files) > 0 {
			return true
		}
	}
	return false
}

// Families returns the selected family names in order.
func (r *Report) Families() []string {
	names := make([]string, 0, len(r.Results))
	for _, res := range r.Results {
		names = append(names, res.Selection.Family)
	}
	return names
}

// Manager runs font installs: fetch, merge into the font directory, update the stylesheet.
type Manager struct {
	catalog    *CatalogClient
	fetcher    *ArchiveFetcher
	locator    *StylesheetLocator
	fontDir    string
	stagingDir string
	renderer   FaceRenderer
	confirmer  Confirmer
	registry   *Registry
	events     EventRecorder
	reporter   Reporter
	workers    int
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithFontDir sets the directory fonts are installed into.
func WithFontDir(dir string) ManagerOption {
	return func(m *Manager) { m.fontDir = dir }
}

// WithStagingDir sets the root for per-run archive extraction.
func WithStagingDir(dir string) ManagerOption {
	return func(m *Manager) { m.stagingDir = dir }
}

// WithFetcher replaces the archive fetcher.
func WithFetcher(f *ArchiveFetcher) ManagerOption {
	return func(m *Manager) { m.fetcher = f }
}

// WithRenderer replaces the font-face renderer.
func WithRenderer(r FaceRenderer) ManagerOption {
	return func(m *Manager) { m.renderer = r }
}

// WithConfirmer sets who answers overwrite prompts. Without one, conflicts are skipped.
func WithConfirmer(c Confirmer) ManagerOption {
	return func(m *Manager) { m.confirmer = c }
}

// WithRegistry records installed files.
func WithRegistry(r *Registry) ManagerOption {
	return func(m *Manager) { m.registry = r }
}

// WithEventRecorder records install events.
func WithEventRecorder(e EventRecorder) ManagerOption {
	return func(m *Manager) { m.events = e }
}

// WithReporter receives progress.
func WithReporter(r Reporter) ManagerOption {
	return func(m *Manager) { m.reporter = r }
}

// WithWorkers sets how many archives are fetched at once.
func WithWorkers(n int) ManagerOption {
	return func(m *Manager) {
		if n > 0 {
			m.workers = n
		}
	}
}

// NewManager creates a manager. Paths default to the pkg/config environment helpers.
func NewManager(catalog *CatalogClient, locator *StylesheetLocator, opts ...ManagerOption) *Manager {
	m := &Manager{
		catalog:    catalog,
		locator:    locator,
		fontDir:    config.GetFontPath(),
		stagingDir: config.GetStagingPath(),
		renderer:   DefaultRenderer(),
		reporter:   nopReporter{},
		workers:    DefaultWorkers,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.fetcher == nil {
		m.fetcher = NewArchiveFetcher(catalog.Endpoint(), m.stagingDir)
	}
	return m
}

// FontDir returns the install directory.
func (m *Manager) FontDir() string {
	return m.fontDir
}

// Catalog locates the stylesheet, then fetches the catalog. A missing styles
// directory fails before any network access.
func (m *Manager) Catalog(ctx context.Context) (*Catalog, error) {
	if _, err := m.locator.Resolve(); err != nil {
		return nil, err
	}
	return m.catalog.Fetch(ctx)
}

// ClearCache forgets the cached catalog.
func (m *Manager) ClearCache(ctx context.Context) error {
	return m.catalog.Clear(ctx)
}

// Install downloads and installs selections. Per-font failures are reported in the
// returned Report. An error is returned only when the run could not proceed.
func (m *Manager) Install(ctx context.Context, selections []Selection, force bool) (*Report, error) {
	if len(selections) == 0 {
		return nil, fmt.Errorf("%w: no fonts selected", ErrNoSelection)
	}
	for _, sel := range selections {
		if err := sel.Validate(); err != nil {
			return nil, err
		}
	}

	stylesheet, err := m.locator.Resolve()
	if err != nil {
		return nil, err
	}

	report := &Report{
		RunID:          uuid.New().String(),
		StylesheetPath: stylesheet,
		Results:        make([]FontResult, len(selections)),
	}
	runRoot := filepath.Join(m.stagingDir, report.RunID)
	defer os.RemoveAll(runRoot)

	m.record(ctx, report.RunID, "", EventRunStarted, map[string]any{"fonts": len(selections), "force": force})
	log.Info("Install started", "run", report.RunID, "fonts", len(selections), "stylesheet", stylesheet)

	staged := m.fetchAll(ctx, m.fetcher, runRoot, selections)

	resolver := MergeResolver{Confirmer: m.confirmer, Force: force}
	for i, sel := range selections {
		res := &report.Results[i]
		res.Selection = sel
		m.reporter.Adding(sel)

		if staged[i].err != nil {
			m.fail(ctx, report.RunID, res, staged[i].err)
			continue
		}

		files, err := resolver.Merge(staged[i].dir, m.fontDir, sel.Family)
		res.Files = files
		m.register(sel, files)
		if err != nil {
			m.fail(ctx, report.RunID, res, err)
		}
	}

	merger := NewStylesheetMerger(stylesheet, m.renderer)
	for i := range report.Results {
		res := &report.Results[i]
		if len(res.Files) == 0 {
			continue
		}

		m.reporter.Styling(res.Selection.Family)
		added, existing, err := merger.Apply(res.Selection.Family, res.Files)
		res.FacesAdded = added
		res.FacesExisting = existing
		for _, entry := range existing {
			m.reporter.Exists(entry)
		}
		if err != nil {
			return report, err
		}

		m.record(ctx, report.RunID, res.Selection.FontID, EventFontInstalled, map[string]any{
			"files":    len(res.Files),
			"faces":    added,
			"existing": len(existing),
		})
	}

	written, err := merger.Commit()
	report.FacesAdded = written
	m.record(ctx, report.RunID, "", EventRunFinished, map[string]any{
		"faces":     written,
		"succeeded": err == nil && report.Succeeded(),
	})
	if err != nil {
		return report, err
	}

	log.Info("Install finished", "run", report.RunID, "faces", written, "succeeded", report.Succeeded())
	return report, nil
}

type stagedFont struct {
	dir string
	err error
}

// fetchAll downloads every selection concurrently. Results are indexed like selections.
// Each selection stages under its own index so repeated font ids never share a directory.
func (m *Manager) fetchAll(ctx context.Context, fetcher *ArchiveFetcher, runRoot string, selections []Selection) []stagedFont {
	staged := make([]stagedFont, len(selections))
	mr.ForEach(func(source chan<- int) {
		for i := range selections {
			source <- i
		}
	}, func(i int) {
		dir, err := fetcher.In(filepath.Join(runRoot, strconv.Itoa(i))).Fetch(ctx, selections[i])
		staged[i] = stagedFont{dir: dir, err: err}
	}, mr.WithWorkers(m.workers), mr.WithContext(ctx))

	// a cancelled context stops the generator before every index is handed out
	for i := range staged {
		if staged[i].dir == "" && staged[i].err == nil {
			staged[i].err = fmt.Errorf("%w: %s: %w", ErrDownloadFailed, selections[i].FontID, context.Cause(ctx))
		}
	}
	return staged
}

func (m *Manager) fail(ctx context.Context, runID string, res *FontResult, err error) {
	res.Err = err
	m.reporter.Failed(res.Selection, err)
	log.Warn("Font install failed", "run", runID, "font", res.Selection.FontID, "error", err)

	kind := "merge"
	switch {
	case errors.Is(err, ErrDownloadFailed):
		kind = "download"
	case errors.Is(err, ErrExtractionFailed):
		kind = "extraction"
	}
	m.record(ctx, runID, res.Selection.FontID, EventFontFailed, map[string]any{"stage": kind, "error": err.Error()})
}

func (m *Manager) register(sel Selection, files []DownloadedFile) {
	if m.registry == nil || len(files) == 0 {
		return
	}

	now := time.Now()
	infos := make([]FontInfo, 0, len(files))
	for _, file := range files {
		entry := ParseFontFace(file.FontFamily, file.Filename)
		path := filepath.Join(m.fontDir, file.Filename)
		info := FontInfo{
			Filename:    file.Filename,
			Family:      file.FontFamily,
			Weight:      entry.Weight,
			Style:       entry.Style,
			Format:      FontFormat,
			Path:        path,
			Source:      sel.FontID,
			InstalledAt: now,
		}
		if stat, err := os.Stat(path); err == nil {
			info.Size = stat.Size()
		}
		infos = append(infos, info)
	}

	if err := m.registry.Add(infos...); err != nil {
		log.Warn("Failed to register fonts", "font", sel.FontID, "error", err)
	}
}

func (m *Manager) record(ctx context.Context, runID, fontID, eventType string, details map[string]any) {
	if m.events == nil {
		return
	}
	m.events.Record(ctx, InstallEvent{RunID: runID, FontID: fontID, Type: eventType, Details: details})
}
