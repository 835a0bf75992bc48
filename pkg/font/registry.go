package font

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// FontInfo describes an installed font file
type FontInfo struct {
	Filename    string    `json:"filename"`
	Family      string    `json:"family"`
	Weight      int       `json:"weight"`
	Style       string    `json:"style"`
	Format      string    `json:"format"`
	Path        string    `json:"path"`
	Size        int64     `json:"size"`
	Source      string    `json:"source"` // catalog font id
	InstalledAt time.Time `json:"installedAt"`
}

// Registry records installed font files, keyed by filename
type Registry struct {
	mu   sync.RWMutex
	path string
	data map[string]FontInfo
}

// NewRegistry creates a registry backed by the JSON file at path.
func NewRegistry(path string) *Registry {
	r := &Registry{
		path: path,
		data: make(map[string]FontInfo),
	}
	r.load()
	return r
}

// Path returns the registry file path
func (r *Registry) Path() string {
	return r.path
}

// Get returns the record for filename if the file still exists
func (r *Registry) Get(filename string) (FontInfo, bool) {
	r.mu.RLock()
	info, exists := r.data[filename]
	r.mu.RUnlock()
	if !exists {
		return FontInfo{}, false
	}

	// Verify file still exists
	if !fileExists(info.Path) {
		r.removeStaleEntry(filename)
		return FontInfo{}, false
	}

	return info, true
}

// Add records installed files in one save
func (r *Registry) Add(infos ...FontInfo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, info := range infos {
		r.data[info.Filename] = info
	}
	return r.save()
}

// List returns all recorded fonts whose files still exist, ordered by family then filename
func (r *Registry) List() []FontInfo {
	r.mu.RLock()
	fonts := make([]FontInfo, 0, len(r.data))
	var stale []string
	for key, info := range r.data {
		if !fileExists(info.Path) {
			stale = append(stale, key)
			continue
		}
		fonts = append(fonts, info)
	}
	r.mu.RUnlock()

	for _, key := range stale {
		r.removeStaleEntry(key)
	}

	sort.Slice(fonts, func(i, j int) bool {
		if fonts[i].Family != fonts[j].Family {
			return fonts[i].Family < fonts[j].Family
		}
		return fonts[i].Filename < fonts[j].Filename
	})
	return fonts
}

// Remove drops a record
func (r *Registry) Remove(filename string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, filename)
	return r.save()
}

// Reload re-reads the registry file, picking up installs from other processes
func (r *Registry) Reload() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = make(map[string]FontInfo)
	r.loadLocked()
}

// removeStaleEntry removes a record for a file that no longer exists
func (r *Registry) removeStaleEntry(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, key)
	r.save() // cleanup only
}

func (r *Registry) load() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loadLocked()
}

func (r *Registry) loadLocked() {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return // missing registry starts empty
	}

	var registryData map[string]FontInfo
	if err := json.Unmarshal(data, &registryData); err != nil {
		return // unreadable registry starts fresh
	}
	r.data = registryData
}

// save writes the registry to disk. Callers hold the lock.
func (r *Registry) save() error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0755); err != nil {
		return fmt.Errorf("failed to create registry directory: %w", err)
	}

	data, err := json.MarshalIndent(r.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}

	return writeFileAtomic(r.path, data)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
