package stagegate

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"trackflow/internal/album"
	"trackflow/internal/artwork"
	"trackflow/internal/fileutil"
	"trackflow/internal/logging"
)

// Gate evaluates whether the outputs a stage expects are present under the
// album folder. Checks are read-only; a failed check mutates nothing.
type Gate struct {
	root   string
	logger *slog.Logger
}

// New builds a gate rooted at the album folder.
func New(albumFolder string, logger *slog.Logger) *Gate {
	return &Gate{
		root:   albumFolder,
		logger: logging.NewComponentLogger(logger, "stagegate"),
	}
}

// Ready reports whether the album may advance past the given stage. Stages
// without an automatable check are always ready. The reason is empty when
// ready and states what is missing when not.
func (g *Gate) Ready(stage int, a *album.Album) (bool, string) {
	ok, reason := g.check(stage, a)
	if !ok {
		g.logger.Debug("stage not ready",
			logging.Int(logging.FieldStage, stage),
			logging.String("reason", reason))
	}
	return ok, reason
}

func (g *Gate) check(stage int, a *album.Album) (bool, string) {
	switch stage {
	case album.StageTagging:
		return g.readyTagging(a)
	case album.StageAACConvert:
		return g.readyConverted(a, album.AliasAACOutput, ".m4a")
	case album.StageOpusConvert:
		return g.readyConverted(a, album.AliasOpusOutput, ".opus")
	case album.StageArtworkOptimize:
		return g.readyArtwork(a)
	case album.StageArchive:
		return g.readyArchive(a)
	default:
		return true, ""
	}
}

// readyTagging requires every track to carry a final file mapping; the
// reconciler (or a manual assignment) fills these in.
func (g *Gate) readyTagging(a *album.Album) (bool, string) {
	for i := range a.Tracks {
		if a.Tracks[i].FinalFile == "" {
			return false, fmt.Sprintf("track %s has no final file mapping; run reconcile or assign", a.Tracks[i].ID)
		}
	}
	return true, ""
}

// readyConverted compares the converted-file count in an output directory
// against the number of source files the tracks reference.
func (g *Gate) readyConverted(a *album.Album, alias, ext string) (bool, string) {
	expected := 0
	for i := range a.Tracks {
		if a.Tracks[i].FinalFile != "" {
			expected++
		}
		if a.Tracks[i].InstrumentalFile != "" {
			expected++
		}
	}

	dir := a.PathFor(alias)
	count, err := fileutil.CountByExt(filepath.Join(g.root, dir), ext)
	if err != nil {
		return false, fmt.Sprintf("cannot inspect %s: %v", dir, err)
	}
	if count < expected {
		return false, fmt.Sprintf("%s holds %d %s files, need %d", dir, count, ext, expected)
	}
	return true, ""
}

// readyArtwork requires both derived cover formats in the artwork output
// directory.
func (g *Gate) readyArtwork(a *album.Album) (bool, string) {
	jpeg, webp := artwork.DerivedCovers(g.root, a)
	switch {
	case !jpeg && !webp:
		return false, "artwork output is missing both the JPEG and WebP covers"
	case !jpeg:
		return false, "artwork output is missing the JPEG cover"
	case !webp:
		return false, "artwork output is missing the WebP cover"
	}
	return true, ""
}

// readyArchive requires at least one archived FLAC per track.
func (g *Gate) readyArchive(a *album.Album) (bool, string) {
	dir := a.PathFor(album.AliasArchiveFLAC)
	count, err := fileutil.CountByExt(filepath.Join(g.root, dir), ".flac")
	if err != nil {
		return false, fmt.Sprintf("cannot inspect %s: %v", dir, err)
	}
	if count < len(a.Tracks) {
		return false, fmt.Sprintf("%s holds %d FLAC files, need %d", dir, count, len(a.Tracks))
	}
	return true, ""
}
