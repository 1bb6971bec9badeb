// =============================================================================
// Weighing Report - File Manager Utility
// =============================================================================
//
// This module provides the file handling around exports:
//   - Output directory management
//   - Atomic saving of rendered documents
//   - Output file naming with placeholders
//   - Export run summaries
//
// SAVING:
//   Documents are written to a temporary file in the output directory and
//   renamed into place, so a reader never sees a half-written report and a
//   failed export leaves the previous file untouched.
//
// =============================================================================

package utils

import (
	"bytes"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/natefinch/atomic"
)

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles file operations for exports.
type FileManager struct {
	// OutputDir is where exported documents are saved.
	OutputDir string
}

// NewFileManager creates a FileManager for the output directory.
func NewFileManager(outputDir string) *FileManager {
	return &FileManager{OutputDir: outputDir}
}

// EnsureDirectories creates the output directory if it doesn't exist.
func (fm *FileManager) EnsureDirectories() error {
	if err := os.MkdirAll(fm.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", fm.OutputDir, err)
	}
	return nil
}

// Save writes data to name inside the output directory atomically and
// returns the full path.
func (fm *FileManager) Save(name string, data []byte) (string, error) {
	if name == "" || name != filepath.Base(name) {
		return "", fmt.Errorf("invalid output file name %q", name)
	}
	if err := fm.EnsureDirectories(); err != nil {
		return "", err
	}

	path := filepath.Join(fm.OutputDir, name)
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("failed to save %s: %w", path, err)
	}
	return path, nil
}

// =============================================================================
// FILE NAMING
// =============================================================================

// GenerateOutputFileName expands placeholders in format and appends ext
// when it is missing.
//
// PLACEHOLDERS:
//   - {uuid}      : a random UUID
//   - {timestamp} : now as YYYYMMDD_HHMMSS
//   - {date}      : now as YYYY-MM-DD
//   - {key}       : any key of params
//
// Example: GenerateOutputFileName("{name}_{date}", ".pdf", now,
// map[string]string{"name": "Laporan_Penimbangan"}) ->
// "Laporan_Penimbangan_2024-01-02.pdf"
func GenerateOutputFileName(format, ext string, now time.Time, params map[string]string) string {
	// Params override built-ins. Values are never expanded again.
	var pairs []string
	for _, key := range slices.Sorted(maps.Keys(params)) {
		pairs = append(pairs, "{"+key+"}", params[key])
	}
	pairs = append(pairs,
		"{timestamp}", now.Format("20060102_150405"),
		"{date}", now.Format("2006-01-02"),
	)
	if strings.Contains(format, "{uuid}") {
		pairs = append(pairs, "{uuid}", uuid.New().String())
	}

	result := strings.NewReplacer(pairs...).Replace(format)
	result = strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' {
			return '_'
		}
		return r
	}, result)

	if ext != "" && !strings.HasSuffix(strings.ToLower(result), strings.ToLower(ext)) {
		result += ext
	}
	return result
}

// =============================================================================
// EXPORT SUMMARY
// =============================================================================

// ExportSummary describes one export run.
type ExportSummary struct {
	RunID     string
	StartTime time.Time
	EndTime   time.Time
	Records   int
	Saved     []SavedFile
	Skipped   bool
}

// SavedFile is one document written by a run.
type SavedFile struct {
	Path  string
	Bytes int
	Pages int
}

// NewExportSummary starts a summary with a fresh run id.
func NewExportSummary(start time.Time) *ExportSummary {
	return &ExportSummary{RunID: uuid.New().String(), StartTime: start}
}

// String renders the summary for the terminal.
func (s *ExportSummary) String() string {
	var b strings.Builder
	b.WriteString("============================================================\n")
	b.WriteString("EXPORT SUMMARY\n")
	b.WriteString("============================================================\n")
	fmt.Fprintf(&b, "Run:      %s\n", s.RunID)
	fmt.Fprintf(&b, "Duration: %v\n", s.EndTime.Sub(s.StartTime).Round(time.Millisecond))
	fmt.Fprintf(&b, "Records:  %d\n", s.Records)
	if s.Skipped {
		b.WriteString("Nothing to export.\n")
	}
	for _, f := range s.Saved {
		if f.Pages > 0 {
			fmt.Fprintf(&b, "  ✓ %s (%d bytes, %d pages)\n", f.Path, f.Bytes, f.Pages)
		} else {
			fmt.Fprintf(&b, "  ✓ %s (%d bytes)\n", f.Path, f.Bytes)
		}
	}
	b.WriteString("============================================================\n")
	return b.String()
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
