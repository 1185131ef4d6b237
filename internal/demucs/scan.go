package demucs

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"trackflow/internal/faults"
)

// separatedNames are the stem filenames the separation models emit for the
// accompaniment track.
var separatedNames = map[string]struct{}{
	"no_vocals.wav":     {},
	"minus_vocals.flac": {},
}

// Separated is one accompaniment stem found under a separation output folder.
type Separated struct {
	SongDir string
	File    string
}

// ScanSeparated walks the immediate subdirectories of a separation output
// folder (for example htdemucs_ft/) and returns the accompaniment stem of
// each song, one per subdirectory. A missing folder yields no results.
func ScanSeparated(outputDir string) ([]Separated, error) {
	entries, err := os.ReadDir(outputDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, faults.Wrap(faults.ErrPersistence, "demucs", "scan", "reading separation output", err)
	}

	var results []Separated
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		songDir := filepath.Join(outputDir, entry.Name())
		files, err := os.ReadDir(songDir)
		if err != nil {
			return nil, faults.Wrap(faults.ErrPersistence, "demucs", "scan", "reading song folder "+entry.Name(), err)
		}
		names := make([]string, 0, len(files))
		for _, f := range files {
			if !f.IsDir() {
				names = append(names, f.Name())
			}
		}
		sort.Strings(names)
		for _, name := range names {
			if _, ok := separatedNames[strings.ToLower(name)]; ok {
				results = append(results, Separated{SongDir: songDir, File: filepath.Join(songDir, name)})
				break
			}
		}
	}
	return results, nil
}
