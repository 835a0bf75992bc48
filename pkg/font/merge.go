package font

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joeblew999/plat-webfonts/pkg/log"
)

// Confirmer answers yes/no questions raised while merging.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to a Confirmer.
type ConfirmFunc func(prompt string) bool

// Confirm calls f.
func (f ConfirmFunc) Confirm(prompt string) bool {
	return f(prompt)
}

// AutoConfirm accepts every prompt.
var AutoConfirm Confirmer = ConfirmFunc(func(string) bool { return true })

// DownloadedFile is an installed font file and the family it belongs to.
type DownloadedFile struct {
	Filename   string `json:"filename"`
	FontFamily string `json:"fontFamily"`
}

// MergeResolver moves staged font files into the font directory.
type MergeResolver struct {
	Confirmer Confirmer
	Force     bool
}

// Merge moves every file under stagingDir into targetDir, flattening the tree.
// When two staged files share a name, the first in lexical walk order wins.
// Existing files are overwritten when Force is set, otherwise only when confirmed.
// stagingDir is removed on return.
func (m MergeResolver) Merge(stagingDir, targetDir, family string) ([]DownloadedFile, error) {
	defer os.RemoveAll(stagingDir)

	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create font directory: %w", err)
	}

	var staged []string
	err := filepath.WalkDir(stagingDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			staged = append(staged, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read staged files: %w", err)
	}

	var moved []DownloadedFile
	seen := make(map[string]string, len(staged))
	for _, src := range staged {
		name := filepath.Base(src)
		if first, ok := seen[name]; ok {
			log.Warn("Skipped duplicate font in archive", "file", name, "kept", first, "skipped", src)
			continue
		}
		seen[name] = src
		dst := filepath.Join(targetDir, name)

		if fileExists(dst) && !m.Force && !m.confirm(name) {
			log.Info("Skipped existing font", "file", name)
			continue
		}

		if err := moveFile(src, dst); err != nil {
			return moved, fmt.Errorf("failed to move %s: %w", name, err)
		}
		moved = append(moved, DownloadedFile{Filename: name, FontFamily: family})
	}

	return moved, nil
}

func (m MergeResolver) confirm(name string) bool {
	if m.Confirmer == nil {
		return false
	}
	return m.Confirmer.Confirm(fmt.Sprintf("The font %s already exists. Do you wish to overwrite it?", name))
}

// moveFile renames src to dst, copying across filesystems when rename is not possible.
func moveFile(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}

	var linkErr *os.LinkError
	if !errors.As(err, &linkErr) {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(src)
}
