package catalog_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"trackflow/internal/album"
	"trackflow/internal/catalog"
	"trackflow/internal/config"
	"trackflow/internal/logging"
	"trackflow/internal/state"
	"trackflow/internal/testsupport"
)

func openStore(t *testing.T, cfg *config.Config) *catalog.Store {
	t.Helper()
	store, err := catalog.Open(cfg)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleAlbum(name string) *album.Album {
	return &album.Album{
		SchemaVersion: album.SchemaVersion,
		Name:          name,
		Artist:        "Various",
		CurrentStage:  album.StageDemucs,
		Status:        album.StatusWaitingUser,
		PathAliases:   album.DefaultPathAliases(),
		Tracks: []album.Track{
			{ID: "track_001", OriginalFile: "01 A.flac", FinalFile: "01 A.flac"},
		},
	}
}

func TestUpsertThenList(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := openStore(t, cfg)
	ctx := context.Background()

	folder := filepath.Join(cfg.Paths.WorkDir, "Blue Album")
	if err := store.Upsert(ctx, folder, sampleAlbum("Blue Album")); err != nil {
		t.Fatal(err)
	}

	entries, err := store.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries", len(entries))
	}
	entry := entries[0]
	if entry.Name != "Blue Album" || entry.Stage != album.StageDemucs || entry.TrackCount != 1 {
		t.Fatalf("unexpected entry %+v", entry)
	}
	if entry.HasArtwork != nil {
		t.Fatal("artwork flag should stay unknown")
	}
}

func TestUpsertIsIdempotentPerFolder(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := openStore(t, cfg)
	ctx := context.Background()
	folder := filepath.Join(cfg.Paths.WorkDir, "Blue Album")

	a := sampleAlbum("Blue Album")
	if err := store.Upsert(ctx, folder, a); err != nil {
		t.Fatal(err)
	}
	a.CurrentStage = album.StageTagging
	a.SetArtwork(true)
	if err := store.Upsert(ctx, folder, a); err != nil {
		t.Fatal(err)
	}

	entries, err := store.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("folder must map to one row, got %d", len(entries))
	}
	if entries[0].Stage != album.StageTagging {
		t.Fatalf("row not refreshed: %+v", entries[0])
	}
	if entries[0].HasArtwork == nil || !*entries[0].HasArtwork {
		t.Fatalf("artwork flag lost: %+v", entries[0])
	}
}

func TestRemove(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := openStore(t, cfg)
	ctx := context.Background()
	folder := filepath.Join(cfg.Paths.WorkDir, "Blue Album")

	if err := store.Upsert(ctx, folder, sampleAlbum("Blue Album")); err != nil {
		t.Fatal(err)
	}
	if err := store.Remove(ctx, folder); err != nil {
		t.Fatal(err)
	}
	if err := store.Remove(ctx, folder); err != nil {
		t.Fatal("removing an unknown folder must not fail:", err)
	}

	entries, err := store.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("got %d entries after remove", len(entries))
	}
}

func TestRebuildScansWorkDirectory(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := openStore(t, cfg)
	ctx := context.Background()

	// Two real albums and one stray folder without a state document.
	for _, name := range []string{"Blue Album", "Red Album"} {
		testsupport.NewAlbumFixture(t, cfg.Paths.WorkDir, name, "Various", []string{"01 A.flac"})
	}
	if err := os.MkdirAll(filepath.Join(cfg.Paths.WorkDir, "not-an-album"), 0o755); err != nil {
		t.Fatal(err)
	}

	// Seed a stale row that the rescan should discard.
	if err := store.Upsert(ctx, filepath.Join(cfg.Paths.WorkDir, "Gone"), sampleAlbum("Gone")); err != nil {
		t.Fatal(err)
	}

	count, err := store.Rebuild(ctx, cfg.Paths.WorkDir, func(folder string) (*album.Album, error) {
		return state.NewStore(folder, logging.NewNop()).Load()
	})
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Fatalf("got %d albums, want 2", count)
	}

	entries, err := store.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	for _, entry := range entries {
		if entry.Name == "Gone" {
			t.Fatal("stale row survived rebuild")
		}
	}
}
