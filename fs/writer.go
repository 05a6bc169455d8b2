// Package fs provides file-based export of extracted menus.
package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/mensa-dev/mensa"
)

// Ensure Writer implements mensa.WeekWriter at compile time.
var _ mensa.WeekWriter = (*Writer)(nil)

// Writer writes week groupings as JSON files to a directory tree.
// Each week lands in <baseDir>/<year>/<ww>.json with a zero-padded week
// number, one file per ISO calendar week.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes below the given base
// directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteWeeks serializes each week to its own file. Existing files are
// overwritten, so re-running an extraction refreshes the export in place.
func (w *Writer) WriteWeeks(ctx context.Context, weeks map[mensa.WeekKey]*mensa.Week) error {
	for key, week := range weeks {
		if err := ctx.Err(); err != nil {
			return err
		}

		dir := filepath.Join(w.baseDir, strconv.Itoa(key.Year))
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}

		data, err := json.MarshalIndent(week, "", "  ")
		if err != nil {
			return err
		}
		data = append(data, '\n')

		path := filepath.Join(dir, fmt.Sprintf("%02d.json", key.Number))
		if err := os.WriteFile(path, data, 0644); err != nil {
			return err
		}
	}
	return nil
}
