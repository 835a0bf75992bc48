package font

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// StylesheetMerger collects new @font-face blocks and prepends them to a stylesheet in one write.
// Blocks already present verbatim are never written twice.
type StylesheetMerger struct {
	path     string
	renderer FaceRenderer
	content  string
	loaded   bool
	pending  []string
}

// NewStylesheetMerger creates a merger for the stylesheet at path. A nil renderer uses the default template.
func NewStylesheetMerger(path string, renderer FaceRenderer) *StylesheetMerger {
	if renderer == nil {
		renderer = DefaultRenderer()
	}
	return &StylesheetMerger{path: path, renderer: renderer}
}

// Path returns the stylesheet path.
func (s *StylesheetMerger) Path() string {
	return s.path
}

// Apply renders an entry for each file and queues the ones not yet in the stylesheet.
// It returns how many blocks were queued and the entries that already existed,
// either in the file or queued earlier in this run.
func (s *StylesheetMerger) Apply(family string, files []DownloadedFile) (int, []FontFaceEntry, error) {
	if err := s.load(); err != nil {
		return 0, nil, err
	}

	added := 0
	var existing []FontFaceEntry
	for _, file := range files {
		entry := ParseFontFace(family, file.Filename)
		block, err := s.renderer.Render(entry)
		if err != nil {
			return added, existing, err
		}

		if strings.Contains(s.content, block) || s.isPending(block) {
			existing = append(existing, entry)
			continue
		}

		s.pending = append(s.pending, block)
		added++
	}

	if added > 0 {
		facesAdded.Add(float64(added), family)
	}
	return added, existing, nil
}

// Pending returns the number of blocks waiting for Commit.
func (s *StylesheetMerger) Pending() int {
	return len(s.pending)
}

// Commit prepends the pending blocks to the stylesheet, creating it when missing.
// It returns the number of blocks written.
func (s *StylesheetMerger) Commit() (int, error) {
	if len(s.pending) == 0 {
		return 0, nil
	}
	if err := s.load(); err != nil {
		return 0, err
	}

	sep := lineSeparator()
	content := strings.Join(s.pending, sep) + sep + s.content
	if err := writeFileAtomic(s.path, []byte(content)); err != nil {
		return 0, fmt.Errorf("failed to write stylesheet: %w", err)
	}

	written := len(s.pending)
	s.content = content
	s.pending = nil
	return written, nil
}

func (s *StylesheetMerger) isPending(block string) bool {
	for _, p := range s.pending {
		if p == block {
			return true
		}
	}
	return false
}

func (s *StylesheetMerger) load() error {
	if s.loaded {
		return nil
	}

	data, err := os.ReadFile(s.path)
	switch {
	case os.IsNotExist(err):
		if err := os.WriteFile(s.path, nil, 0644); err != nil {
			return fmt.Errorf("failed to create stylesheet: %w", err)
		}
	case err != nil:
		return fmt.Errorf("failed to read stylesheet: %w", err)
	}

	s.content = string(data)
	s.loaded = true
	return nil
}

func lineSeparator() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}

// writeFileAtomic replaces path through a temporary file in the same directory.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
