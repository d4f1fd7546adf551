package localstorage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ConvertedMarker is appended to the base name of every converted
// file. It doubles as the skip signal when a directory containing
// previous output is converted again.
const ConvertedMarker = " (432Hz)"

// Library manages the on-disk layout of audio files: output
// directories, the flat directory scan, and the converted-file naming
// convention.
type Library struct{}

// NewLibrary creates a new Library.
func NewLibrary() *Library {
	return &Library{}
}

// EnsureDir creates the directory (and parents) if missing.
func (l *Library) EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return nil
}

// ListAudioFiles returns the files in dir carrying the given extension
// (without the dot). The scan is flat: subdirectories are not entered.
// Results are sorted so batch runs process files in a stable order.
func (l *Library) ListAudioFiles(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	suffix := "." + strings.ToLower(strings.TrimPrefix(ext, "."))
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(entry.Name()), suffix) {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// ConvertedPath derives the output path for a converted file. The name
// is the input's base name with the 432Hz marker before the extension.
// With an empty outputDir the file lands next to its input.
func (l *Library) ConvertedPath(inputPath, outputDir string) string {
	ext := filepath.Ext(inputPath)
	base := strings.TrimSuffix(filepath.Base(inputPath), ext)
	name := base + ConvertedMarker + ext

	if outputDir == "" {
		outputDir = filepath.Dir(inputPath)
	}
	return filepath.Join(outputDir, name)
}

// IsConvertedName reports whether a file name already carries the
// converted marker.
func (l *Library) IsConvertedName(name string) bool {
	ext := filepath.Ext(name)
	return strings.HasSuffix(strings.TrimSuffix(name, ext), ConvertedMarker)
}
