// Package filesystem persists output documents as JSON files in a directory.
package filesystem

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/couchcryptid/microplastics-etl/internal/document"
)

// Writer writes each document to <dir>/<name>.json, replacing any previous
// file atomically. It implements pipeline.Loader.
type Writer struct {
	dir    string
	logger *slog.Logger
}

// NewWriter creates a Writer rooted at dir. The directory is created on the
// first Load.
func NewWriter(dir string, logger *slog.Logger) *Writer {
	return &Writer{dir: dir, logger: logger}
}

// Name identifies the sink in logs and metrics.
func (w *Writer) Name() string { return "filesystem" }

// Dir returns the output directory.
func (w *Writer) Dir() string { return w.dir }

// Load encodes and writes every document. It stops at the first failure.
func (w *Writer) Load(ctx context.Context, docs []document.Document) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	for _, d := range docs {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := document.Encode(d)
		if err != nil {
			return err
		}
		path := filepath.Join(w.dir, d.FileName())
		if err := writeAtomic(path, data); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		w.logger.Debug("document written", "document", d.Name, "path", path, "bytes", len(data))
	}
	return nil
}

// writeAtomic writes to a temporary file in the target directory and renames
// it over path, so readers never observe a partial document.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
