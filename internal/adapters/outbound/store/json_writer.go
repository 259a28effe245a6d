// Package store persists reports as indented JSON files.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/triagekit/triagekit/internal/domain"
)

// Writer implements domain.ReportWriter on the local filesystem.
type Writer struct{}

func New() *Writer {
	return &Writer{}
}

// Write serializes the report to path, creating directories as needed.
func (w *Writer) Write(path string, report *domain.Report) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
