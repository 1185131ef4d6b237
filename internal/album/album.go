package album

import (
	"fmt"
	"strings"
	"time"
)

// SchemaVersion is the current state document version. Bump this when the
// document layout changes; Load rejects documents written by a newer version.
const SchemaVersion = 1

// Status represents the operator-facing lifecycle of an album.
type Status string

const (
	StatusWaitingUser Status = "WAITING_USER"
	StatusError       Status = "ERROR"
	StatusCompleted   Status = "COMPLETED"
)

var allStatuses = []Status{
	StatusWaitingUser,
	StatusError,
	StatusCompleted,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToUpper(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := statusSet[normalized]
	return normalized, ok
}

// Path alias keys used in the state document. Values are directories relative
// to the album folder; external tools write their outputs there.
const (
	AliasRawSource     = "rawSource"
	AliasDemucsOutput  = "demucsOutput"
	AliasAACOutput     = "aacOutput"
	AliasOpusOutput    = "opusOutput"
	AliasArtworkOutput = "artworkOutput"
	AliasArchiveFLAC   = "archiveFlac"
)

// DefaultPathAliases returns the directory layout a freshly imported album uses.
func DefaultPathAliases() map[string]string {
	return map[string]string{
		AliasRawSource:     "_flac_src",
		AliasDemucsOutput:  "",
		AliasAACOutput:     "_aac_output",
		AliasOpusOutput:    "_opus_output",
		AliasArtworkOutput: "_artwork_resized",
		AliasArchiveFLAC:   "_final_flac",
	}
}

// FlagDemucsSkipped marks that the operator skipped the separation stage.
const FlagDemucsSkipped = "demucsSkipped"

// StageError records the failure of an external tool at a specific stage.
type StageError struct {
	Stage     int       `json:"stage"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Track is one logical song within an album. ID and OriginalFile are fixed at
// import; the file fields track the physical filename as external tools
// rename and regenerate it.
type Track struct {
	ID               string `json:"id"`
	OriginalFile     string `json:"originalFile"`
	CurrentFile      string `json:"currentFile,omitempty"`
	FinalFile        string `json:"finalFile,omitempty"`
	IsInstrumental   bool   `json:"isInstrumental"`
	HasInstrumental  bool   `json:"hasInstrumental,omitempty"`
	InstrumentalFile string `json:"instrumentalFile,omitempty"`
	DemucsTarget     bool   `json:"demucsTarget"`
}

// BestFile returns the most current known filename for the track.
func (t Track) BestFile() string {
	if t.FinalFile != "" {
		return t.FinalFile
	}
	if t.CurrentFile != "" {
		return t.CurrentFile
	}
	return t.OriginalFile
}

// Album is the aggregate persisted as one state document per album folder.
// Tracks preserve insertion (disc) order.
type Album struct {
	SchemaVersion int               `json:"schemaVersion"`
	Name          string            `json:"albumName"`
	Artist        string            `json:"artistName"`
	CurrentStage  int               `json:"currentStage"`
	Status        Status            `json:"status"`
	HasArtwork    *bool             `json:"hasArtwork"`
	Flags         map[string]bool   `json:"flags,omitempty"`
	PathAliases   map[string]string `json:"paths"`
	LastError     *StageError       `json:"lastError,omitempty"`
	Tracks        []Track           `json:"tracks"`
}

// TrackByID returns a pointer into the album's track slice, or nil.
func (a *Album) TrackByID(id string) *Track {
	for i := range a.Tracks {
		if a.Tracks[i].ID == id {
			return &a.Tracks[i]
		}
	}
	return nil
}

// NextTrackID returns an identifier one past the highest existing numeric
// suffix. IDs are never reused, even after synthetic tracks are appended.
func (a *Album) NextTrackID() string {
	highest := 0
	for _, track := range a.Tracks {
		var n int
		if _, err := fmt.Sscanf(track.ID, "track_%d", &n); err == nil && n > highest {
			highest = n
		}
	}
	return FormatTrackID(highest + 1)
}

// FormatTrackID renders the canonical track identifier for a 1-based index.
func FormatTrackID(n int) string {
	return fmt.Sprintf("track_%03d", n)
}

// PathFor returns the relative directory registered under the given alias.
func (a *Album) PathFor(alias string) string {
	if a.PathAliases == nil {
		return ""
	}
	return a.PathAliases[alias]
}

// ArtworkConfirmed reports whether artwork presence has been positively
// established. Unknown (never inspected) and false both return false.
func (a *Album) ArtworkConfirmed() bool {
	return a.HasArtwork != nil && *a.HasArtwork
}

// SetArtwork records the result of an artwork inspection.
func (a *Album) SetArtwork(present bool) {
	a.HasArtwork = &present
}

// SetError records a stage failure without touching tracks, stage, or flags.
func (a *Album) SetError(stage int, message string, at time.Time) {
	a.LastError = &StageError{Stage: stage, Message: message, Timestamp: at.UTC()}
	a.Status = StatusError
}

// ClearError removes the recorded failure and returns the album to the
// operator's queue if it was in the error state.
func (a *Album) ClearError() {
	a.LastError = nil
	if a.Status == StatusError {
		a.Status = StatusWaitingUser
	}
}

// Validate checks the aggregate invariants: stage bounds, a known status,
// unique track ids, and non-empty original filenames.
func (a *Album) Validate() error {
	if a.CurrentStage < StageMin || a.CurrentStage > StageMax {
		return fmt.Errorf("current stage %d out of range [%d,%d]", a.CurrentStage, StageMin, StageMax)
	}
	if _, ok := statusSet[a.Status]; !ok {
		return fmt.Errorf("unknown status %q", a.Status)
	}
	seen := make(map[string]struct{}, len(a.Tracks))
	for _, track := range a.Tracks {
		if track.ID == "" {
			return fmt.Errorf("track with empty id (original %q)", track.OriginalFile)
		}
		if _, dup := seen[track.ID]; dup {
			return fmt.Errorf("duplicate track id %q", track.ID)
		}
		seen[track.ID] = struct{}{}
		if track.OriginalFile == "" {
			return fmt.Errorf("track %s has empty original file", track.ID)
		}
	}
	return nil
}
