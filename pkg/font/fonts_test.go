package font

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type project struct {
	resources string
	fonts     string
	staging   string
}

func newProject(t *testing.T, styleDirs ...string) project {
	t.Helper()
	root := t.TempDir()
	p := project{
		resources: filepath.Join(root, "resources"),
		fonts:     filepath.Join(root, "resources", "fonts"),
		staging:   filepath.Join(root, ".data", ".fonts"),
	}
	for _, dir := range styleDirs {
		require.NoError(t, os.MkdirAll(filepath.Join(p.resources, dir), 0755))
	}
	return p
}

type eventLog struct {
	mu     sync.Mutex
	events []InstallEvent
}

func (e *eventLog) Record(_ context.Context, event InstallEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, event)
}

func (e *eventLog) types() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []string
	for _, ev := range e.events {
		out = append(out, ev.Type)
	}
	return out
}

func newTestManager(t *testing.T, p project, api *fontAPI, opts ...ManagerOption) *Manager {
	t.Helper()
	catalog := NewCatalogClient(memoryStore(t), WithEndpoint(api.endpoint()))
	locator := NewStylesheetLocator(p.resources, StylesheetOptions{})
	opts = append([]ManagerOption{WithFontDir(p.fonts), WithStagingDir(p.staging)}, opts...)
	return NewManager(catalog, locator, opts...)
}

func interSelection(t *testing.T, m *Manager) Selection {
	t.Helper()
	catalog, err := m.Catalog(context.Background())
	require.NoError(t, err)
	sel, err := ParseSelection(catalog, "inter:400,700:latin")
	require.NoError(t, err)
	return sel
}

func TestManagerInstall(t *testing.T) {
	ctx := context.Background()

	t.Run("AddsFontsAndFaces", func(t *testing.T) {
		p := newProject(t, "css")
		api := newFontAPI(t, interCatalog, map[string][]byte{
			"inter": zipArchive(t, "Inter-400.woff2", "Inter-700.woff2"),
		})
		events := &eventLog{}
		registry := NewRegistry(filepath.Join(p.staging, "..", RegistryFilename))
		m := newTestManager(t, p, api, WithEventRecorder(events), WithRegistry(registry))

		report, err := m.Install(ctx, []Selection{interSelection(t, m)}, false)
		require.NoError(t, err)

		queries := api.archiveQueries()
		require.Len(t, queries, 1)
		assert.Equal(t, "400,700", queries[0].Get("variants"))
		assert.Equal(t, "latin", queries[0].Get("subsets"))

		assert.True(t, report.Succeeded())
		assert.Equal(t, 2, report.FacesAdded)
		require.Len(t, report.Results, 1)
		assert.NoError(t, report.Results[0].Err)
		assert.Len(t, report.Results[0].Files, 2)

		assert.FileExists(t, filepath.Join(p.fonts, "Inter-400.woff2"))
		assert.FileExists(t, filepath.Join(p.fonts, "Inter-700.woff2"))

		data, err := os.ReadFile(filepath.Join(p.resources, "css", "fonts.css"))
		require.NoError(t, err)
		assert.Equal(t, 2, strings.Count(string(data), "@font-face"))

		assert.Equal(t, []string{EventRunStarted, EventFontInstalled, EventRunFinished}, events.types())
		assert.Len(t, registry.List(), 2)

		// staging is cleaned up after the run
		entries, _ := os.ReadDir(p.staging)
		assert.Empty(t, entries)
	})

	t.Run("SecondRunAddsNothing", func(t *testing.T) {
		p := newProject(t, "css")
		api := newFontAPI(t, interCatalog, map[string][]byte{
			"inter": zipArchive(t, "Inter-400.woff2", "Inter-700.woff2"),
		})
		m := newTestManager(t, p, api)
		sel := interSelection(t, m)

		_, err := m.Install(ctx, []Selection{sel}, false)
		require.NoError(t, err)

		report, err := m.Install(ctx, []Selection{sel}, true)
		require.NoError(t, err)
		assert.Zero(t, report.FacesAdded)
		assert.Len(t, report.Results[0].FacesExisting, 2)
		assert.True(t, report.Succeeded(), "forced files were still moved")
	})

	t.Run("DeclinedConflictKeepsOtherVariant", func(t *testing.T) {
		p := newProject(t, "css")
		require.NoError(t, os.MkdirAll(p.fonts, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(p.fonts, "Inter-400.woff2"), []byte("old"), 0644))

		api := newFontAPI(t, interCatalog, map[string][]byte{
			"inter": zipArchive(t, "Inter-400.woff2", "Inter-700.woff2"),
		})
		confirmer := &promptLog{answer: false}
		m := newTestManager(t, p, api, WithConfirmer(confirmer))

		report, err := m.Install(ctx, []Selection{interSelection(t, m)}, false)
		require.NoError(t, err)
		assert.Len(t, confirmer.prompts, 1)
		assert.Equal(t, interFiles("Inter-700.woff2"), report.Results[0].Files)
		assert.Equal(t, 1, report.FacesAdded)

		old, err := os.ReadFile(filepath.Join(p.fonts, "Inter-400.woff2"))
		require.NoError(t, err)
		assert.Equal(t, "old", string(old))

		data, err := os.ReadFile(filepath.Join(p.resources, "css", "fonts.css"))
		require.NoError(t, err)
		assert.Equal(t, 1, strings.Count(string(data), "@font-face"))
		assert.Contains(t, string(data), "Inter-700.woff2")
	})

	t.Run("FailedFontDoesNotStopOthers", func(t *testing.T) {
		p := newProject(t, "styles")
		api := newFontAPI(t, interCatalog, map[string][]byte{
			"roboto": zipArchive(t, "roboto-v30-latin-regular.woff2"),
		})
		events := &eventLog{}
		m := newTestManager(t, p, api, WithEventRecorder(events), WithWorkers(2))

		catalog, err := m.Catalog(ctx)
		require.NoError(t, err)
		inter, err := ParseSelection(catalog, "inter")
		require.NoError(t, err)
		roboto, err := ParseSelection(catalog, "roboto")
		require.NoError(t, err)

		report, err := m.Install(ctx, []Selection{inter, roboto}, false)
		require.NoError(t, err)
		assert.True(t, report.Succeeded())
		assert.Equal(t, []string{"Inter", "Roboto"}, report.Families())
		assert.ErrorIs(t, report.Results[0].Err, ErrDownloadFailed)
		assert.NoError(t, report.Results[1].Err)
		assert.Equal(t, 1, report.FacesAdded)
		assert.Contains(t, events.types(), EventFontFailed)

		data, err := os.ReadFile(filepath.Join(p.resources, "styles", "fonts.css"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "font-family: 'Roboto';")
		assert.Contains(t, string(data), "font-style: normal;")
	})

	t.Run("DuplicateFontID", func(t *testing.T) {
		p := newProject(t, "css")
		api := newFontAPI(t, interCatalog, map[string][]byte{
			"inter": zipArchive(t, "Inter-400.woff2", "Inter-700.woff2"),
		})
		m := newTestManager(t, p, api, WithWorkers(2))

		catalog, err := m.Catalog(ctx)
		require.NoError(t, err)
		regular, err := ParseSelection(catalog, "inter:400")
		require.NoError(t, err)
		bold, err := ParseSelection(catalog, "inter:700")
		require.NoError(t, err)

		report, err := m.Install(ctx, []Selection{regular, bold}, true)
		require.NoError(t, err)

		var variants []string
		for _, q := range api.archiveQueries() {
			variants = append(variants, q.Get("variants"))
		}
		assert.ElementsMatch(t, []string{"400", "700"}, variants)

		require.Len(t, report.Results, 2)
		for i, res := range report.Results {
			assert.NoError(t, res.Err, "selection %d", i)
			assert.Len(t, res.Files, 2, "selection %d", i)
		}
		assert.Equal(t, 2, report.Results[0].FacesAdded)
		assert.Len(t, report.Results[1].FacesExisting, 2)
		assert.Equal(t, 2, report.FacesAdded)
		assert.True(t, report.Succeeded())

		data, err := os.ReadFile(filepath.Join(p.resources, "css", "fonts.css"))
		require.NoError(t, err)
		assert.Equal(t, 2, strings.Count(string(data), "@font-face"))

		entries, _ := os.ReadDir(p.staging)
		assert.Empty(t, entries)
	})

	t.Run("AllFailedIsUnsuccessful", func(t *testing.T) {
		p := newProject(t, "css")
		api := newFontAPI(t, interCatalog, nil)
		m := newTestManager(t, p, api)

		report, err := m.Install(ctx, []Selection{interSelection(t, m)}, false)
		require.NoError(t, err)
		assert.False(t, report.Succeeded())
		assert.NoFileExists(t, filepath.Join(p.resources, "css", "fonts.css"))
	})

	t.Run("MissingStylesDirectoryFailsBeforeNetwork", func(t *testing.T) {
		p := newProject(t)
		api := newFontAPI(t, interCatalog, map[string][]byte{
			"inter": zipArchive(t, "Inter-400.woff2"),
		})
		m := newTestManager(t, p, api)

		_, err := m.Catalog(ctx)
		assert.ErrorIs(t, err, ErrStylesDirectoryNotFound)

		sel := Selection{FontID: "inter", Family: "Inter", Variants: []string{"400"}, Subsets: []string{"latin"}}
		_, err = m.Install(ctx, []Selection{sel}, false)
		assert.ErrorIs(t, err, ErrStylesDirectoryNotFound)

		assert.Zero(t, api.catalogHits.Load())
		assert.Zero(t, api.archiveHits.Load())
	})

	t.Run("EmptySelection", func(t *testing.T) {
		p := newProject(t, "css")
		m := newTestManager(t, p, newFontAPI(t, interCatalog, nil))

		_, err := m.Install(ctx, nil, false)
		assert.ErrorIs(t, err, ErrNoSelection)

		_, err = m.Install(ctx, []Selection{{FontID: "inter"}}, false)
		assert.ErrorIs(t, err, ErrNoSelection)
	})
}

func TestRegistry(t *testing.T) {
	dir := t.TempDir()
	fontPath := filepath.Join(dir, "Inter-400.woff2")
	require.NoError(t, os.WriteFile(fontPath, []byte("data"), 0644))

	path := filepath.Join(dir, RegistryFilename)
	registry := NewRegistry(path)
	require.NoError(t, registry.Add(
		FontInfo{Filename: "Inter-400.woff2", Family: "Inter", Weight: 400, Style: "normal", Format: FontFormat, Path: fontPath, Size: 4, Source: "inter", InstalledAt: time.Now()},
		FontInfo{Filename: "Inter-700.woff2", Family: "Inter", Weight: 700, Style: "normal", Format: FontFormat, Path: filepath.Join(dir, "Inter-700.woff2")},
	))

	t.Run("PersistsAcrossInstances", func(t *testing.T) {
		reopened := NewRegistry(path)
		info, ok := reopened.Get("Inter-400.woff2")
		require.True(t, ok)
		assert.Equal(t, "Inter", info.Family)
		assert.Equal(t, int64(4), info.Size)
	})

	t.Run("DropsStaleEntries", func(t *testing.T) {
		_, ok := registry.Get("Inter-700.woff2")
		assert.False(t, ok)

		list := NewRegistry(path).List()
		require.Len(t, list, 1)
		assert.Equal(t, "Inter-400.woff2", list[0].Filename)
	})

	t.Run("Remove", func(t *testing.T) {
		require.NoError(t, registry.Remove("Inter-400.woff2"))
		registry.Reload()
		assert.Empty(t, registry.List())
	})
}
