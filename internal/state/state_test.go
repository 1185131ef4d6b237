package state_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"trackflow/internal/album"
	"trackflow/internal/faults"
	"trackflow/internal/logging"
	"trackflow/internal/state"
)

func newStore(t *testing.T) *state.Store {
	t.Helper()
	return state.NewStore(t.TempDir(), logging.NewNop())
}

func TestInitializeSortsAndDefaults(t *testing.T) {
	store := newStore(t)

	a, err := store.Initialize("Starlight Master 36", "Various", []string{
		"02 Second.flac",
		"01 First.flac",
		"03 Third.flac",
	})
	if err != nil {
		t.Fatal(err)
	}

	if a.CurrentStage != album.StageImport || a.Status != album.StatusWaitingUser {
		t.Fatalf("unexpected initial stage/status: %d/%s", a.CurrentStage, a.Status)
	}
	if len(a.Tracks) != 3 {
		t.Fatalf("expected 3 tracks, got %d", len(a.Tracks))
	}
	wantOrder := []string{"01 First.flac", "02 Second.flac", "03 Third.flac"}
	for i, track := range a.Tracks {
		if track.OriginalFile != wantOrder[i] {
			t.Fatalf("track %d original = %q, want %q", i, track.OriginalFile, wantOrder[i])
		}
		if track.ID != album.FormatTrackID(i+1) {
			t.Fatalf("track %d id = %q", i, track.ID)
		}
		if track.FinalFile != track.OriginalFile {
			t.Fatalf("track %d finalFile = %q, want original", i, track.FinalFile)
		}
		if !track.DemucsTarget || track.IsInstrumental {
			t.Fatalf("track %d flag defaults wrong: %+v", i, track)
		}
	}
	if a.HasArtwork != nil {
		t.Fatal("artwork must start unknown")
	}
	if a.PathFor(album.AliasRawSource) != "_flac_src" {
		t.Fatalf("unexpected raw source alias %q", a.PathFor(album.AliasRawSource))
	}
	if !store.Exists() {
		t.Fatal("Initialize must persist the document")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := newStore(t)
	a, err := store.Initialize("Album", "Artist", []string{"01 A.flac", "02 B.flac"})
	if err != nil {
		t.Fatal(err)
	}

	a.CurrentStage = album.StageOpusConvert
	a.SetArtwork(true)
	a.Flags[album.FlagDemucsSkipped] = true
	a.Tracks[0].CurrentFile = "01 A (tagged).flac"
	a.Tracks[0].FinalFile = "01 A (tagged).flac"
	a.Tracks[0].HasInstrumental = true
	a.Tracks[0].InstrumentalFile = "13 A (Inst).flac"
	a.SetError(album.StageOpusConvert, "converter crashed", time.Date(2026, 5, 2, 8, 30, 0, 0, time.UTC))

	if err := store.Save(a); err != nil {
		t.Fatal(err)
	}
	loaded, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, loaded) {
		t.Fatalf("round trip mismatch:\nsaved  %+v\nloaded %+v", a, loaded)
	}
}

func TestLoadMissingDocument(t *testing.T) {
	store := newStore(t)
	_, err := store.Load()
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, faults.ErrNotFound) {
		t.Fatalf("expected not-found classification, got %v", err)
	}
}

func TestLoadRejectsForeignSchemaVersion(t *testing.T) {
	dir := t.TempDir()
	store := state.NewStore(dir, logging.NewNop())

	doc := map[string]any{
		"schemaVersion": album.SchemaVersion + 1,
		"albumName":     "Album",
		"artistName":    "Artist",
		"currentStage":  1,
		"status":        "WAITING_USER",
		"tracks":        []any{},
	}
	data, _ := json.Marshal(doc)
	if err := os.WriteFile(filepath.Join(dir, state.DocumentName), data, 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := store.Load()
	if !errors.Is(err, faults.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSaveRejectsInvalidAlbum(t *testing.T) {
	store := newStore(t)
	bad := &album.Album{SchemaVersion: album.SchemaVersion, CurrentStage: 0, Status: album.StatusWaitingUser}
	if err := store.Save(bad); !errors.Is(err, faults.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSaveIsWholeDocumentReplace(t *testing.T) {
	store := newStore(t)
	a, err := store.Initialize("Album", "Artist", []string{"01 A.flac"})
	if err != nil {
		t.Fatal(err)
	}

	a.LastError = &album.StageError{Stage: 4, Message: "boom", Timestamp: time.Now().UTC()}
	if err := store.Save(a); err != nil {
		t.Fatal(err)
	}

	a.LastError = nil
	if err := store.Save(a); err != nil {
		t.Fatal(err)
	}
	loaded, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if loaded.LastError != nil {
		t.Fatal("cleared field survived a save; Save must replace the whole document")
	}
}
