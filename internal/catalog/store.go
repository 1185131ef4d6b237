package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"trackflow/internal/album"
	"trackflow/internal/config"
)

// Entry is one catalog row: a summary of an album in the work directory.
type Entry struct {
	ID         string
	Folder     string
	Name       string
	Artist     string
	Stage      int
	Status     album.Status
	TrackCount int
	// HasArtwork mirrors the album's tri-state flag: nil means not yet
	// inspected.
	HasArtwork *bool
	LastError  string
	UpdatedAt  time.Time
}

// Store manages the album catalog backed by SQLite. The catalog is an index
// over the per-album state documents, rebuildable at any time; the documents
// stay authoritative.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the catalog database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.Paths.CatalogDB
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create catalog directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Upsert inserts or refreshes the catalog row for an album folder.
func (s *Store) Upsert(ctx context.Context, folder string, a *album.Album) error {
	ctx = ensureContext(ctx)
	var hasArtwork any
	if a.HasArtwork != nil {
		hasArtwork = boolToInt(*a.HasArtwork)
	}
	lastError := ""
	if a.LastError != nil {
		lastError = a.LastError.Message
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO albums (id, folder, name, artist, stage, status, track_count, has_artwork, last_error, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(folder) DO UPDATE SET
    name = excluded.name,
    artist = excluded.artist,
    stage = excluded.stage,
    status = excluded.status,
    track_count = excluded.track_count,
    has_artwork = excluded.has_artwork,
    last_error = excluded.last_error,
    updated_at = excluded.updated_at`,
		uuid.NewString(), folder, a.Name, a.Artist, a.CurrentStage, string(a.Status),
		len(a.Tracks), hasArtwork, lastError, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("upsert album %q: %w", folder, err)
	}
	return nil
}

// Remove drops the catalog row for a folder. Removing an unknown folder is
// not an error.
func (s *Store) Remove(ctx context.Context, folder string) error {
	ctx = ensureContext(ctx)
	if _, err := s.db.ExecContext(ctx, "DELETE FROM albums WHERE folder = ?", folder); err != nil {
		return fmt.Errorf("remove album %q: %w", folder, err)
	}
	return nil
}

// List returns all catalog rows ordered by most recently updated.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, `
SELECT id, folder, name, artist, stage, status, track_count, has_artwork, last_error, updated_at
FROM albums ORDER BY updated_at DESC, folder ASC`)
	if err != nil {
		return nil, fmt.Errorf("list albums: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Rebuild rescans the work directory for album state documents and replaces
// the catalog contents with what it finds. load is called once per candidate
// folder and may report an error to skip it.
func (s *Store) Rebuild(ctx context.Context, workDir string, load func(folder string) (*album.Album, error)) (int, error) {
	ctx = ensureContext(ctx)
	dirEntries, err := os.ReadDir(workDir)
	if err != nil {
		if os.IsNotExist(err) {
			dirEntries = nil
		} else {
			return 0, fmt.Errorf("read work directory: %w", err)
		}
	}

	if _, err := s.db.ExecContext(ctx, "DELETE FROM albums"); err != nil {
		return 0, fmt.Errorf("clear catalog: %w", err)
	}

	count := 0
	for _, entry := range dirEntries {
		if !entry.IsDir() {
			continue
		}
		folder := filepath.Join(workDir, entry.Name())
		a, err := load(folder)
		if err != nil {
			continue
		}
		if err := s.Upsert(ctx, folder, a); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func scanEntry(rows *sql.Rows) (Entry, error) {
	var (
		entry      Entry
		status     string
		hasArtwork sql.NullInt64
		updatedAt  string
	)
	if err := rows.Scan(&entry.ID, &entry.Folder, &entry.Name, &entry.Artist, &entry.Stage,
		&status, &entry.TrackCount, &hasArtwork, &entry.LastError, &updatedAt); err != nil {
		return Entry{}, fmt.Errorf("scan album row: %w", err)
	}
	entry.Status = album.Status(status)
	if hasArtwork.Valid {
		v := hasArtwork.Int64 != 0
		entry.HasArtwork = &v
	}
	if ts, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		entry.UpdatedAt = ts
	}
	return entry, nil
}

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
