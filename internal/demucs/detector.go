package demucs

import (
	"strings"

	"trackflow/internal/instrumental"
)

// Target is the per-file classification the detector produces.
type Target struct {
	File   string
	Target bool
	// Partner names the instrumental file that excluded a vocal track, or is
	// empty when the file was excluded for being an instrumental itself.
	Partner string
}

// DetectTargets classifies every filename as a separation target. Files stay
// targets by default; an instrumental file is excluded, and so is a vocal
// file identified as the already-processed counterpart of an instrumental
// elsewhere in the list. Results follow the input order.
//
// An empty keyword set degrades to "everything is a target".
func DetectTargets(fileNames []string, classifier *instrumental.Classifier) []Target {
	if classifier == nil {
		classifier = instrumental.Default()
	}

	targets := make([]Target, len(fileNames))
	var instFiles []string
	for i, name := range fileNames {
		targets[i] = Target{File: name, Target: true}
		if classifier.IsInstrumental(name) {
			targets[i].Target = false
			instFiles = append(instFiles, name)
		}
	}

	for _, instFile := range instFiles {
		guess := classifier.NormalizeStrict(instFile)
		if guess == "" {
			continue
		}
		for i := range targets {
			if !targets[i].Target || targets[i].File == instFile {
				continue
			}
			if isCounterpart(classifier.NormalizeStrict(targets[i].File), guess) {
				targets[i].Target = false
				targets[i].Partner = instFile
			}
		}
	}

	return targets
}

// isCounterpart reports whether a vocal title matches the keyword-stripped
// title of an instrumental. Exact matches qualify; a prefix match qualifies
// only when the remainder starts at a non-alphanumeric boundary, so "song"
// pairs with "song (remaster)" but never with "songbird".
func isCounterpart(title, guess string) bool {
	if title == guess {
		return true
	}
	if !strings.HasPrefix(title, guess) {
		return false
	}
	rest := strings.TrimSpace(title[len(guess):])
	if rest == "" {
		return true
	}
	switch rest[0] {
	case '(', '[', '-', '~':
		return true
	}
	return false
}
