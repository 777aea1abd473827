// Package output writes rendered reports to disk.
// Every format uses the same base name, so a run leaves seo_report.pdf,
// seo_report.json or seo_report.md in the output directory.
package output

import (
	"fmt"
	"os"
	"path/filepath"
)

// ReportBaseName is the file name of every written report, minus extension.
const ReportBaseName = "seo_report"

// Writer writes rendered output to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// Path returns where a report with extension ext is written.
func (w *Writer) Path(ext string) string {
	return filepath.Join(w.OutputDir, ReportBaseName+ext)
}

// Write stores data as seo_report<ext>, replacing any earlier report.
func (w *Writer) Write(data []byte, ext string) (string, error) {
	path := w.Path(ext)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}
