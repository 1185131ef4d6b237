package reconcile

import (
	"reflect"
	"testing"

	"trackflow/internal/album"
	"trackflow/internal/instrumental"
	"trackflow/internal/logging"
)

func newAlbum(originals ...string) *album.Album {
	a := &album.Album{
		SchemaVersion: album.SchemaVersion,
		CurrentStage:  album.StageTagging,
		Status:        album.StatusWaitingUser,
	}
	for i, name := range originals {
		a.Tracks = append(a.Tracks, album.Track{
			ID:           album.FormatTrackID(i + 1),
			OriginalFile: name,
			FinalFile:    name,
			DemucsTarget: true,
		})
	}
	return a
}

func newReconciler() *Reconciler {
	return New(instrumental.Default(), logging.NewNop())
}

func TestReconcileRebindsRenamedFilesByNumber(t *testing.T) {
	r := newReconciler()
	a := newAlbum("01-blue bird.flac", "02-red star.flac")
	present := []string{"01 Blue Bird.flac", "02 Red Star.flac"}

	rows := r.Reconcile(a, present)

	if rows[0].Class != ClassMatched || a.Tracks[0].FinalFile != "01 Blue Bird.flac" {
		t.Fatalf("track 1 not rebound: %+v / %+v", rows[0], a.Tracks[0])
	}
	if rows[1].Class != ClassMatched || a.Tracks[1].FinalFile != "02 Red Star.flac" {
		t.Fatalf("track 2 not rebound: %+v / %+v", rows[1], a.Tracks[1])
	}
	if a.Tracks[0].OriginalFile != "01-blue bird.flac" {
		t.Fatal("original file must never mutate")
	}
}

func TestReconcileNumberCollisionNeedsTitleAgreement(t *testing.T) {
	r := newReconciler()
	// The number index holds a different song under 01; the title check must
	// reject it and the strict title index must find the renumbered file.
	a := newAlbum("01 Blue Bird.flac")
	present := []string{"01 Completely Different.flac", "07 Blue Bird.flac"}

	rows := r.Reconcile(a, present)

	if rows[0].Class != ClassMatched {
		t.Fatalf("expected title-index match, got %+v", rows[0])
	}
	if a.Tracks[0].FinalFile != "07 Blue Bird.flac" {
		t.Fatalf("bound to %q, want the title match", a.Tracks[0].FinalFile)
	}
}

func TestReconcileNumberCollisionPrefersInstrumental(t *testing.T) {
	r := newReconciler()
	a := newAlbum("02 Tulip.flac")
	present := []string{"02 Tulip.flac", "02 Tulip (Instrumental).flac"}

	rows := r.Reconcile(a, present)

	if a.Tracks[0].FinalFile != "02 Tulip (Instrumental).flac" {
		t.Fatalf("expected instrumental preference, bound to %q", a.Tracks[0].FinalFile)
	}
	if !a.Tracks[0].IsInstrumental {
		t.Fatal("track bound to an instrumental file must be flagged instrumental")
	}
	if rows[0].Class != ClassMatched {
		t.Fatalf("unexpected class %q", rows[0].Class)
	}
}

func TestReconcileExactNameFallback(t *testing.T) {
	r := newReconciler()
	a := newAlbum("Bonus Track.flac")
	present := []string{"Bonus Track.flac"}

	rows := r.Reconcile(a, present)
	if rows[0].Class != ClassMatched || a.Tracks[0].FinalFile != "Bonus Track.flac" {
		t.Fatalf("exact-name fallback failed: %+v", rows[0])
	}
}

func TestReconcileUnmatchedIsSurfacedNotDropped(t *testing.T) {
	r := newReconciler()
	a := newAlbum("01 Gone.flac", "02 Here.flac")
	present := []string{"02 Here.flac"}

	rows := r.Reconcile(a, present)

	if rows[0].Class != ClassUnmatched {
		t.Fatalf("expected unmatched, got %q", rows[0].Class)
	}
	if len(a.Tracks) != 2 {
		t.Fatal("unmatched track must not be removed")
	}
	if a.Tracks[0].FinalFile != "01 Gone.flac" {
		t.Fatal("unmatched track's prior mapping must be left untouched")
	}
}

func TestReconcileFindsInstrumentalPartnerAcrossNumbers(t *testing.T) {
	r := newReconciler()
	a := newAlbum("01 Blue Bird.flac", "02 Red Star.flac")
	present := []string{
		"01 Blue Bird.flac",
		"02 Red Star.flac",
		"11 Blue Bird (Off Vocal).flac",
	}

	rows := r.Reconcile(a, present)

	if rows[0].Class != ClassMatchedWithInstrumental {
		t.Fatalf("expected partner classification, got %q", rows[0].Class)
	}
	if a.Tracks[0].InstrumentalFile != "11 Blue Bird (Off Vocal).flac" || !a.Tracks[0].HasInstrumental {
		t.Fatalf("partner not bound: %+v", a.Tracks[0])
	}
	if rows[1].Class != ClassMatched {
		t.Fatalf("track 2 should be a plain match, got %q", rows[1].Class)
	}
	if len(a.Tracks) != 2 {
		t.Fatalf("consumed partner must not become synthetic; tracks = %d", len(a.Tracks))
	}
}

func TestReconcilePrefersFreshPartnerOverRecorded(t *testing.T) {
	r := newReconciler()
	a := newAlbum("01 Blue Bird.flac")
	a.Tracks[0].InstrumentalFile = "99 Blue Bird (Inst) (old).flac"
	a.Tracks[0].HasInstrumental = true
	present := []string{"01 Blue Bird.flac", "12 Blue Bird (Off Vocal) (StemRoller).flac"}

	r.Reconcile(a, present)

	if a.Tracks[0].InstrumentalFile != "12 Blue Bird (Off Vocal) (StemRoller).flac" {
		t.Fatalf("recorded partner must be displaced by fresh find, got %q", a.Tracks[0].InstrumentalFile)
	}
}

func TestReconcileAppendsOrphanInstrumentalsAsSyntheticTracks(t *testing.T) {
	r := newReconciler()
	a := newAlbum("01 Blue Bird.flac")
	present := []string{"01 Blue Bird.flac", "09 Lonely (Inst).flac"}

	rows := r.Reconcile(a, present)

	if len(a.Tracks) != 2 {
		t.Fatalf("expected synthetic track, got %d tracks", len(a.Tracks))
	}
	synthetic := a.Tracks[1]
	if synthetic.ID != "track_002" || !synthetic.IsInstrumental || synthetic.DemucsTarget {
		t.Fatalf("unexpected synthetic track %+v", synthetic)
	}
	last := rows[len(rows)-1]
	if !last.Synthetic || last.Class != ClassInstrumentalOnly {
		t.Fatalf("unexpected synthetic row %+v", last)
	}
}

func TestReconcileInstrumentalOnlyOriginal(t *testing.T) {
	r := newReconciler()
	a := newAlbum("05 Moonrise (Instrumental).flac")
	present := []string{"05 Moonrise (Instrumental).flac"}

	rows := r.Reconcile(a, present)
	if rows[0].Class != ClassInstrumentalOnly {
		t.Fatalf("expected instrumental-only, got %q", rows[0].Class)
	}
	if !a.Tracks[0].IsInstrumental || a.Tracks[0].FinalFile != "05 Moonrise (Instrumental).flac" {
		t.Fatalf("identity bind failed: %+v", a.Tracks[0])
	}

	missing := newAlbum("05 Moonrise (Instrumental).flac")
	rows = r.Reconcile(missing, nil)
	if rows[0].Class != ClassUnmatched {
		t.Fatalf("vanished instrumental-only track should be unmatched, got %q", rows[0].Class)
	}
}

func TestReconcileIsIdempotent(t *testing.T) {
	r := newReconciler()
	a := newAlbum("01 Blue Bird.flac", "02 Red Star.flac")
	present := []string{
		"01 Blue Bird.flac",
		"02 Red Star.flac",
		"11 Blue Bird (Off Vocal).flac",
		"12 Stray Cat (Inst).flac",
	}

	r.Reconcile(a, present)
	first := make([]album.Track, len(a.Tracks))
	copy(first, a.Tracks)

	r.Reconcile(a, present)
	if !reflect.DeepEqual(first, a.Tracks) {
		t.Fatalf("second pass changed tracks:\nfirst  %+v\nsecond %+v", first, a.Tracks)
	}
}

func TestReconcileNeverShrinksTrackList(t *testing.T) {
	r := newReconciler()
	a := newAlbum("01 A.flac", "02 B.flac", "03 C.flac")
	before := len(a.Tracks)

	r.Reconcile(a, nil)
	if len(a.Tracks) < before {
		t.Fatalf("track list shrank from %d to %d", before, len(a.Tracks))
	}
}

func TestReconcileDeterministicAcrossInputOrder(t *testing.T) {
	r := newReconciler()
	present := []string{"02 Tulip (Instrumental).flac", "02 Tulip.flac"}
	reversed := []string{"02 Tulip.flac", "02 Tulip (Instrumental).flac"}

	a1 := newAlbum("02 Tulip.flac")
	a2 := newAlbum("02 Tulip.flac")
	r.Reconcile(a1, present)
	r.Reconcile(a2, reversed)

	if !reflect.DeepEqual(a1.Tracks, a2.Tracks) {
		t.Fatalf("input order changed outcome:\n%+v\n%+v", a1.Tracks, a2.Tracks)
	}
}

func TestAssignManualOverride(t *testing.T) {
	r := newReconciler()
	a := newAlbum("01 Gone.flac")

	if err := r.Assign(a, "track_001", "01 Found Again.flac"); err != nil {
		t.Fatal(err)
	}
	if a.Tracks[0].FinalFile != "01 Found Again.flac" || a.Tracks[0].CurrentFile != "01 Found Again.flac" {
		t.Fatalf("assignment not applied: %+v", a.Tracks[0])
	}
	if a.Tracks[0].IsInstrumental {
		t.Fatal("vocal filename must not flag instrumental")
	}

	if err := r.Assign(a, "track_404", "x.flac"); err == nil {
		t.Fatal("expected error for unknown track id")
	}
	if err := r.Assign(a, "track_001", "  "); err == nil {
		t.Fatal("expected error for empty file name")
	}
}

func TestReconcileEmptyKeywordSetDegradesGracefully(t *testing.T) {
	r := New(instrumental.New(nil), logging.NewNop())
	a := newAlbum("01 Blue Bird.flac")
	present := []string{"01 Blue Bird.flac", "11 Blue Bird (Off Vocal).flac"}

	rows := r.Reconcile(a, present)

	// Nothing classifies as instrumental: no partner, no synthetic tracks.
	if rows[0].Class != ClassMatched {
		t.Fatalf("unexpected class %q", rows[0].Class)
	}
	if len(a.Tracks) != 1 {
		t.Fatalf("no synthetic tracks expected, got %d", len(a.Tracks))
	}
}
