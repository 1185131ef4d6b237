package instrumental

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/width"
)

var (
	// Leading 1-3 digit track number with an optional separator, as written
	// by tag tools: "01 Title", "01 - Title", "01.Title", "０１　Title".
	leadingNumber = regexp.MustCompile(`^([0-9]{1,3})\s*[-.．]?\s*`)
	// Trailing parenthesized or bracketed qualifiers: "(Asterism Edition)",
	// "[2024 Remaster]" and runs thereof.
	trailingQualifiers = regexp.MustCompile(`(\s*[(\[][^)\]]*[)\]]\s*)+$`)
)

// Fold lowercases a string after Unicode width folding, so full-width digits
// and latin in Japanese filenames compare equal to their ASCII forms.
func Fold(s string) string {
	return strings.ToLower(width.Fold.String(s))
}

// TrackNumber extracts the leading 1-3 digit track number from a filename.
func TrackNumber(name string) (int, bool) {
	m := leadingNumber.FindStringSubmatch(Fold(name))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// NormalizeStrict reduces a filename to a comparable title: extension and
// leading track number stripped, instrumental markers removed, width-folded
// and lowercased. Two files with the same strict title are the same song.
func (c *Classifier) NormalizeStrict(name string) string {
	base := Fold(stripExt(name))
	base = leadingNumber.ReplaceAllString(base, "")
	base = c.StripMarkers(base)
	return strings.Join(strings.Fields(base), " ")
}

// NormalizeLoose further strips trailing version qualifiers so an
// instrumental regenerated under an edition-tagged name still pairs with its
// original. Used only for instrumental partner lookup.
func (c *Classifier) NormalizeLoose(name string) string {
	base := c.NormalizeStrict(name)
	base = trailingQualifiers.ReplaceAllString(base, "")
	return strings.Join(strings.Fields(base), " ")
}

func stripExt(name string) string {
	ext := filepath.Ext(name)
	return name[:len(name)-len(ext)]
}
