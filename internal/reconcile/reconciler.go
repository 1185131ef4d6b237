package reconcile

import (
	"log/slog"
	"strings"

	"trackflow/internal/album"
	"trackflow/internal/faults"
	"trackflow/internal/instrumental"
	"trackflow/internal/logging"
)

// Reconciler recomputes the track-to-file mapping of an album after external
// tools have renamed, split, or regenerated files in the raw source
// directory. It never removes a track row and never touches OriginalFile.
type Reconciler struct {
	classifier *instrumental.Classifier
	logger     *slog.Logger
}

// New builds a reconciler over the given keyword classifier.
func New(classifier *instrumental.Classifier, logger *slog.Logger) *Reconciler {
	if classifier == nil {
		classifier = instrumental.Default()
	}
	return &Reconciler{
		classifier: classifier,
		logger:     logging.NewComponentLogger(logger, "reconcile"),
	}
}

// Reconcile rebinds every track of the album to the files currently present,
// appends synthetic tracks for orphaned instrumental files, and returns one
// row per track describing the outcome. The album is mutated in place; the
// caller persists it.
//
// The pass is deterministic for a fixed file list and keyword set, and
// idempotent: running it twice over an unchanged file set yields an identical
// track array.
func (r *Reconciler) Reconcile(a *album.Album, presentFiles []string) []Row {
	idx := r.buildIndexes(presentFiles)
	consumed := make(map[string]struct{}, len(idx.sorted))
	rows := make([]Row, 0, len(a.Tracks))

	for i := range a.Tracks {
		track := &a.Tracks[i]
		row := Row{TrackID: track.ID, OriginalFile: track.OriginalFile}

		if r.classifier.IsInstrumental(track.OriginalFile) {
			r.bindInstrumentalOnly(track, idx, consumed, &row)
			rows = append(rows, row)
			continue
		}

		matched := r.findMatch(track, idx)
		if matched == "" {
			row.Class = ClassUnmatched
			r.logger.Warn("track not found on disk",
				logging.String(logging.FieldTrackID, track.ID),
				logging.String("original_file", track.OriginalFile))
			rows = append(rows, row)
			continue
		}

		track.CurrentFile = matched
		track.FinalFile = matched
		track.IsInstrumental = r.classifier.IsInstrumental(matched)
		consumed[matched] = struct{}{}
		row.Class = ClassMatched
		row.MatchedFile = matched

		if !track.IsInstrumental {
			r.bindPartner(track, matched, idx, consumed, &row)
		}
		rows = append(rows, row)
	}

	rows = append(rows, r.appendOrphanInstrumentals(a, idx, consumed)...)
	return rows
}

// bindInstrumentalOnly handles a track whose original file is itself an
// instrumental: it has no parent vocal track, so only an identity match (any
// of its known filenames still present) can rebind it.
func (r *Reconciler) bindInstrumentalOnly(track *album.Track, idx *indexes, consumed map[string]struct{}, row *Row) {
	track.IsInstrumental = true
	for _, name := range []string{track.FinalFile, track.CurrentFile, track.OriginalFile} {
		if name == "" {
			continue
		}
		if _, ok := idx.present[name]; !ok {
			continue
		}
		track.CurrentFile = name
		track.FinalFile = name
		consumed[name] = struct{}{}
		row.Class = ClassInstrumentalOnly
		row.MatchedFile = name
		return
	}
	row.Class = ClassUnmatched
}

// findMatch implements the match ladder for a vocal track: number index with
// a title confirmation, then strict title, then exact original name.
func (r *Reconciler) findMatch(track *album.Track, idx *indexes) string {
	originalTitle := r.classifier.NormalizeStrict(track.OriginalFile)

	// Number match is accepted only when the candidate's title agrees, so a
	// coincidental number collision cannot produce a false binding.
	if number, ok := instrumental.TrackNumber(track.OriginalFile); ok {
		if candidate, found := idx.byNumber[number]; found {
			if originalTitle == "" || r.classifier.NormalizeStrict(candidate) == originalTitle {
				return candidate
			}
		}
	}

	if candidate, found := idx.byTitle[originalTitle]; found && !r.classifier.IsInstrumental(candidate) {
		return candidate
	}

	if _, stillPresent := idx.present[track.OriginalFile]; stillPresent && !r.classifier.IsInstrumental(track.OriginalFile) {
		return track.OriginalFile
	}

	return ""
}

// bindPartner looks up an instrumental partner through the loose title index.
// A freshly found partner always replaces one recorded by a prior pass;
// external tools regenerate instrumentals under new names.
func (r *Reconciler) bindPartner(track *album.Track, matched string, idx *indexes, consumed map[string]struct{}, row *Row) {
	partner, found := idx.byTitleInst[r.classifier.NormalizeLoose(track.OriginalFile)]
	if !found || partner == matched {
		return
	}
	track.InstrumentalFile = partner
	track.HasInstrumental = true
	consumed[partner] = struct{}{}
	row.Class = ClassMatchedWithInstrumental
	row.InstrumentalFile = partner
}

// appendOrphanInstrumentals turns every present instrumental file that no
// existing track consumed into a brand-new synthetic track.
func (r *Reconciler) appendOrphanInstrumentals(a *album.Album, idx *indexes, consumed map[string]struct{}) []Row {
	var rows []Row
	for _, file := range idx.sorted {
		if _, used := consumed[file]; used {
			continue
		}
		if !r.classifier.IsInstrumental(file) {
			continue
		}
		track := album.Track{
			ID:             a.NextTrackID(),
			OriginalFile:   file,
			CurrentFile:    file,
			FinalFile:      file,
			IsInstrumental: true,
			DemucsTarget:   false,
		}
		a.Tracks = append(a.Tracks, track)
		consumed[file] = struct{}{}
		rows = append(rows, Row{
			TrackID:      track.ID,
			Class:        ClassInstrumentalOnly,
			OriginalFile: file,
			MatchedFile:  file,
			Synthetic:    true,
		})
		r.logger.Info("orphaned instrumental registered as new track",
			logging.String(logging.FieldTrackID, track.ID),
			logging.String("file", file))
	}
	return rows
}

// Assign is the manual override for an unmatched row: it binds the track
// directly to fileName, bypassing the matching ladder for that row only.
func (r *Reconciler) Assign(a *album.Album, trackID, fileName string) error {
	if strings.TrimSpace(fileName) == "" {
		return faults.Wrap(faults.ErrValidation, "reconcile", "assign", "file name is empty", nil)
	}
	track := a.TrackByID(trackID)
	if track == nil {
		return faults.Wrap(faults.ErrNotFound, "reconcile", "assign", "unknown track id "+trackID, nil)
	}
	track.CurrentFile = fileName
	track.FinalFile = fileName
	track.IsInstrumental = r.classifier.IsInstrumental(fileName)
	r.logger.Info("manual assignment applied",
		logging.String(logging.FieldTrackID, trackID),
		logging.String("file", fileName))
	return nil
}
