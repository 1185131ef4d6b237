package reconcile

// Class describes how a track row fared during reconciliation.
type Class string

const (
	// ClassMatched means a present file was bound to the track.
	ClassMatched Class = "matched"
	// ClassMatchedWithInstrumental means the track matched and an
	// instrumental partner was also located.
	ClassMatchedWithInstrumental Class = "matched_with_instrumental"
	// ClassInstrumentalOnly marks a track that is itself an instrumental
	// variant with no parent vocal track.
	ClassInstrumentalOnly Class = "instrumental_only"
	// ClassUnmatched means no present file could be bound; the row needs a
	// manual assignment and is never silently dropped.
	ClassUnmatched Class = "unmatched"
)

// Row is the per-track outcome of one reconciliation pass, aligned with the
// album's track order (synthetic rows appended last).
type Row struct {
	TrackID          string
	Class            Class
	OriginalFile     string
	MatchedFile      string
	InstrumentalFile string
	Synthetic        bool
}
