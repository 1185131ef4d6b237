package reconcile

import (
	"sort"

	"trackflow/internal/instrumental"
)

// indexes are the lookup structures one reconciliation pass works from. They
// are built over a deterministically sorted copy of the present file list, so
// every tie-break below is reproducible regardless of directory read order.
type indexes struct {
	sorted []string
	// byNumber maps a leading track number to the preferred file carrying it.
	byNumber map[int]string
	// byTitle maps a strict-normalized title to the preferred file.
	byTitle map[string]string
	// byTitleInst maps a loose-normalized title to an instrumental file; used
	// only to find partners whose track number differs from the original.
	byTitleInst map[string]string
	present     map[string]struct{}
}

func (r *Reconciler) buildIndexes(presentFiles []string) *indexes {
	sorted := make([]string, len(presentFiles))
	copy(sorted, presentFiles)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := instrumental.Fold(sorted[i]), instrumental.Fold(sorted[j])
		if a != b {
			return a < b
		}
		return sorted[i] < sorted[j]
	})

	idx := &indexes{
		sorted:      sorted,
		byNumber:    make(map[int]string),
		byTitle:     make(map[string]string),
		byTitleInst: make(map[string]string),
		present:     make(map[string]struct{}, len(sorted)),
	}

	for _, file := range sorted {
		idx.present[file] = struct{}{}

		if number, ok := instrumental.TrackNumber(file); ok {
			idx.byNumber[number] = r.preferInstrumental(idx.byNumber[number], file)
		}

		title := r.classifier.NormalizeStrict(file)
		idx.byTitle[title] = r.preferInstrumental(idx.byTitle[title], file)

		if r.classifier.IsInstrumental(file) {
			loose := r.classifier.NormalizeLoose(file)
			if _, exists := idx.byTitleInst[loose]; !exists {
				idx.byTitleInst[loose] = file
			}
		}
	}
	return idx
}

// preferInstrumental resolves a number or title collision: an instrumental
// candidate displaces a vocal one, an already-chosen instrumental is kept,
// and between two vocal candidates the later one in sorted order wins.
func (r *Reconciler) preferInstrumental(existing, candidate string) string {
	if existing == "" {
		return candidate
	}
	if r.classifier.IsInstrumental(existing) {
		return existing
	}
	return candidate
}
