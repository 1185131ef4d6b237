package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/gofrs/flock"

	"trackflow/internal/album"
	"trackflow/internal/faults"
	"trackflow/internal/fileutil"
	"trackflow/internal/logging"
)

// DocumentName is the state document filename inside every album folder.
const DocumentName = "state.json"

// lockName is the advisory lock beside the document. At most one process may
// mutate an album at a time; the lock makes that caller invariant enforceable
// across processes.
const lockName = ".state.lock"

// Store reads and writes the state document of one album folder.
// Save replaces the whole document; there are no partial patches.
type Store struct {
	root   string
	lock   *flock.Flock
	logger *slog.Logger
}

// NewStore builds a store rooted at the album folder.
func NewStore(albumFolder string, logger *slog.Logger) *Store {
	return &Store{
		root:   albumFolder,
		lock:   flock.New(filepath.Join(albumFolder, lockName)),
		logger: logging.NewComponentLogger(logger, "state"),
	}
}

// Root returns the album folder this store operates on.
func (s *Store) Root() string {
	return s.root
}

// DocumentPath returns the absolute path of the state document.
func (s *Store) DocumentPath() string {
	return filepath.Join(s.root, DocumentName)
}

// Exists reports whether the album folder carries a state document.
func (s *Store) Exists() bool {
	info, err := os.Stat(s.DocumentPath())
	return err == nil && !info.IsDir()
}

// Load reads and validates the state document.
func (s *Store) Load() (*album.Album, error) {
	data, err := os.ReadFile(s.DocumentPath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, faults.Wrap(faults.ErrNotFound, "state", "load", fmt.Sprintf("no %s in %s", DocumentName, s.root), err)
		}
		return nil, faults.Wrap(faults.ErrPersistence, "state", "load", "read document", err)
	}

	var a album.Album
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, faults.Wrap(faults.ErrPersistence, "state", "load", "parse document", err)
	}

	if a.SchemaVersion != album.SchemaVersion {
		return nil, faults.Wrap(faults.ErrValidation, "state", "load",
			fmt.Sprintf("document has schema version %d, expected %d (re-import the album or migrate the document)",
				a.SchemaVersion, album.SchemaVersion), nil)
	}
	if err := a.Validate(); err != nil {
		return nil, faults.Wrap(faults.ErrValidation, "state", "load", "document invariants", err)
	}

	return &a, nil
}

// Save overwrites the whole state document. The write is atomic (temp file +
// rename) and guarded by the album's advisory lock.
func (s *Store) Save(a *album.Album) error {
	if a == nil {
		return faults.Wrap(faults.ErrValidation, "state", "save", "album is nil", nil)
	}
	if err := a.Validate(); err != nil {
		return faults.Wrap(faults.ErrValidation, "state", "save", "document invariants", err)
	}

	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return faults.Wrap(faults.ErrPersistence, "state", "save", "create album folder", err)
	}

	locked, err := s.lock.TryLock()
	if err != nil {
		return faults.Wrap(faults.ErrPersistence, "state", "save", "acquire album lock", err)
	}
	if !locked {
		return faults.Wrap(faults.ErrPersistence, "state", "save", "album is locked by another process", nil)
	}
	defer func() {
		if unlockErr := s.lock.Unlock(); unlockErr != nil {
			s.logger.Warn("failed to release album lock", logging.Error(unlockErr))
		}
	}()

	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return faults.Wrap(faults.ErrPersistence, "state", "save", "encode document", err)
	}
	data = append(data, '\n')

	if err := fileutil.WriteFileAtomic(s.DocumentPath(), data, 0o644); err != nil {
		return faults.Wrap(faults.ErrPersistence, "state", "save", "write document", err)
	}

	s.logger.Debug("state document saved",
		logging.String(logging.FieldAlbum, s.root),
		logging.Int(logging.FieldStage, a.CurrentStage),
		logging.String("status", string(a.Status)))
	return nil
}

// Initialize builds and persists a fresh album document: one track per input
// audio file, sorted by filename, sequential ids, finalFile defaulted to the
// original filename, every track a separation target.
func (s *Store) Initialize(name, artist string, fileNames []string) (*album.Album, error) {
	sorted := make([]string, len(fileNames))
	copy(sorted, fileNames)
	sort.Strings(sorted)

	tracks := make([]album.Track, 0, len(sorted))
	for i, fileName := range sorted {
		tracks = append(tracks, album.Track{
			ID:           album.FormatTrackID(i + 1),
			OriginalFile: fileName,
			FinalFile:    fileName,
			DemucsTarget: true,
		})
	}

	a := &album.Album{
		SchemaVersion: album.SchemaVersion,
		Name:          name,
		Artist:        artist,
		CurrentStage:  album.StageImport,
		Status:        album.StatusWaitingUser,
		Flags:         map[string]bool{album.FlagDemucsSkipped: false},
		PathAliases:   album.DefaultPathAliases(),
		Tracks:        tracks,
	}

	if err := s.Save(a); err != nil {
		return nil, err
	}
	s.logger.Info("album initialized",
		logging.String(logging.FieldAlbum, s.root),
		logging.String("name", name),
		logging.Int("tracks", len(tracks)))
	return a, nil
}
