// Package testsupport provides helpers for building test configurations and
// album folder fixtures.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"trackflow/internal/album"
	"trackflow/internal/logging"
	"trackflow/internal/state"
)

// WriteFiles creates empty placeholder files under dir, creating the
// directory if needed.
func WriteFiles(t testing.TB, dir string, names ...string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

// NewAlbumFixture creates an album folder under the work directory with the
// given source files on disk and an initialized state document. It returns
// the folder path and the loaded album.
func NewAlbumFixture(t testing.TB, workDir, name, artist string, fileNames []string) (string, *album.Album) {
	t.Helper()

	folder := filepath.Join(workDir, name)
	store := state.NewStore(folder, logging.NewNop())
	a, err := store.Initialize(name, artist, fileNames)
	if err != nil {
		t.Fatalf("initialize album %s: %v", name, err)
	}
	rawDir := filepath.Join(folder, a.PathFor(album.AliasRawSource))
	WriteFiles(t, rawDir, fileNames...)
	return folder, a
}
