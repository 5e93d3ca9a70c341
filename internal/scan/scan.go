// Package scan enumerates candidate sound files in a layer's source folder.
package scan

import (
	"fmt"
	"os"
	"regexp"
)

// formatRE matches the sample formats the generator accepts. The extension
// is stripped before filenames enter the editing pipeline.
var formatRE = regexp.MustCompile(`(?i)\.(wav|ogg|flac|aiff?)$`)

// IsSoundFile reports whether the filename carries an accepted extension.
func IsSoundFile(name string) bool {
	return formatRE.MatchString(name)
}

// StripExt removes the sound format extension from a filename.
func StripExt(name string) string {
	return formatRE.ReplaceAllString(name, "")
}

// List returns the sound files in dir, in directory order (lexical on most
// systems). Non-sound files and subdirectories are skipped.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open layer directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if IsSoundFile(entry.Name()) {
			files = append(files, entry.Name())
		}
	}

	return files, nil
}
