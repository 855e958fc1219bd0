// Package fileutil provides small file system helpers shared by the codec CLI.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FindFileCaseInsensitive searches for a file with the given name in the specified directory.
// The search is case-insensitive, which matters for SMF files in the wild: "Song.MID",
// "song.mid" and "SONG.Midi" all name the same kind of file on a case-sensitive file system.
//
// Parameters:
//   - dir: The directory to search in
//   - filename: The filename to search for (case-insensitive)
//
// Returns:
//   - string: The actual path to the file if found
//   - error: Error if the file is not found or if there's an I/O error
//
// Example:
//
//	path, err := FindFileCaseInsensitive("/path/to/dir", "Song.MID")
//	// Will find "song.mid", "SONG.MID", "Song.Mid", etc.
func FindFileCaseInsensitive(dir, filename string) (string, error) {
	// Exact path works on case-insensitive file systems and saves a directory scan.
	direct := filepath.Join(dir, filename)
	if _, err := os.Stat(direct); err == nil {
		return direct, nil
	}

	searchName := strings.ToLower(filename)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if strings.ToLower(entry.Name()) == searchName {
			return filepath.Join(dir, entry.Name()), nil
		}
	}

	return "", fmt.Errorf("file not found: %s (searched in %s)", filename, dir)
}
