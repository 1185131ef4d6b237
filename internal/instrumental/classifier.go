package instrumental

import (
	"regexp"
	"sort"
	"strings"
)

// DefaultKeywords returns the built-in instrumental markers. Operators extend
// the list through configuration; the classifier treats the set it is given
// as authoritative.
func DefaultKeywords() []string {
	return []string{
		"inst",
		"instrumental",
		"off vocal",
		"off-vocal",
		"offvocal",
		"backing track",
		"karaoke",
		"voiceless",
		"minus one",
		"カラオケ",
	}
}

// Classifier decides whether a filename denotes an instrumental variant and
// normalizes titles for reconciliation matching. An empty keyword set is a
// valid degraded mode: nothing classifies as instrumental and marker
// stripping is a no-op.
type Classifier struct {
	keywords []string
	marker   *regexp.Regexp
}

// New builds a classifier over exactly the provided keyword set.
// Keywords are matched case-insensitively after Unicode width folding.
func New(keywords []string) *Classifier {
	cleaned := make([]string, 0, len(keywords))
	seen := make(map[string]struct{}, len(keywords))
	for _, kw := range keywords {
		kw = Fold(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if _, dup := seen[kw]; dup {
			continue
		}
		seen[kw] = struct{}{}
		cleaned = append(cleaned, kw)
	}

	c := &Classifier{keywords: cleaned}
	if len(cleaned) > 0 {
		// Longest keyword first: Go regexp alternation is leftmost-first, and
		// "inst" must not shadow "instrumental" leaving a "rumental" residue.
		byLength := make([]string, len(cleaned))
		copy(byLength, cleaned)
		sort.SliceStable(byLength, func(i, j int) bool { return len(byLength[i]) > len(byLength[j]) })
		quoted := make([]string, len(byLength))
		for i, kw := range byLength {
			quoted[i] = regexp.QuoteMeta(kw)
		}
		// Captures "(Off Vocal)", "[inst]", "-karaoke-" and bare keyword runs.
		c.marker = regexp.MustCompile(`(?i)\s*[\[(\-]?\s*(?:` + strings.Join(quoted, "|") + `)\s*[\])\-]?`)
	}
	return c
}

// Default builds a classifier over DefaultKeywords.
func Default() *Classifier {
	return New(DefaultKeywords())
}

// Keywords returns a copy of the active keyword set.
func (c *Classifier) Keywords() []string {
	cp := make([]string, len(c.keywords))
	copy(cp, c.keywords)
	return cp
}

// IsInstrumental reports whether the filename contains any instrumental
// keyword, case-insensitively. The extension is ignored.
func (c *Classifier) IsInstrumental(name string) bool {
	if len(c.keywords) == 0 {
		return false
	}
	folded := Fold(stripExt(name))
	for _, kw := range c.keywords {
		if strings.Contains(folded, kw) {
			return true
		}
	}
	return false
}

// StripMarkers removes instrumental marker phrases (with their surrounding
// brackets or dashes) from a name.
func (c *Classifier) StripMarkers(name string) string {
	if c.marker == nil {
		return name
	}
	return strings.TrimSpace(c.marker.ReplaceAllString(name, " "))
}
