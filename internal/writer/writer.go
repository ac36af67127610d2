// Package writer saves generated presentations and mind maps to disk.
package writer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sant0-9/mindppt/internal/document"
	"github.com/sant0-9/mindppt/internal/outline"
)

// Writer writes output files into one directory.
type Writer struct {
	dir string
}

// NewWriter creates a writer for dir. An empty dir means the working
// directory.
func NewWriter(dir string) *Writer {
	if dir == "" {
		dir = "."
	}
	return &Writer{dir: dir}
}

func (w *Writer) Dir() string { return w.dir }

// WriteArtifact saves a rendered document under its own filename and returns
// the path written. Existing files are never overwritten.
func (w *Writer) WriteArtifact(a *document.Artifact) (string, error) {
	if a == nil || len(a.Data) == 0 {
		return "", errors.New("writer: empty artifact")
	}
	return w.write(a.Filename, a.Data)
}

// WriteMindmap saves the outline's Markdown rendering next to the deck.
func (w *Writer) WriteMindmap(o *outline.WithMindmap, styleName string) (string, error) {
	if o == nil || o.Outline == nil {
		return "", errors.New("writer: no outline")
	}
	name := document.Filename(o.Outline.Title, styleName, ".md")
	return w.write(name, []byte(o.MindmapMarkdown+"\n"))
}

func (w *Writer) write(name string, data []byte) (string, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path, err := w.freePath(name)
	if err != nil {
		return "", err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}

const maxSuffix = 999

// freePath returns dir/name, or dir/name-2, name-3... when taken.
func (w *Writer) freePath(name string) (string, error) {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	for i := 1; i <= maxSuffix; i++ {
		candidate := name
		if i > 1 {
			candidate = base + "-" + strconv.Itoa(i) + ext
		}
		path := filepath.Join(w.dir, candidate)
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return path, nil
		} else if err != nil {
			return "", fmt.Errorf("stat %s: %w", path, err)
		}
	}
	return "", fmt.Errorf("no free file name for %s in %s", name, w.dir)
}
