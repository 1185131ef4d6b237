package instrumental

import "testing"

func TestTrackNumber(t *testing.T) {
	cases := []struct {
		name string
		want int
		ok   bool
	}{
		{"01 Song.flac", 1, true},
		{"12 - Song.flac", 12, true},
		{"003.Song.flac", 3, true},
		{"０２　虹.flac", 2, true},
		{"Song.flac", 0, false},
		{"1234 Song.flac", 123, true},
	}
	for _, tc := range cases {
		got, ok := TrackNumber(tc.name)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Errorf("TrackNumber(%q) = %d, %v; want %d, %v", tc.name, got, ok, tc.want, tc.ok)
		}
	}
}

func TestNormalizeStrict(t *testing.T) {
	c := Default()
	cases := []struct {
		name string
		want string
	}{
		{"01 Blue Bird.flac", "blue bird"},
		{"03 Blue Bird (Instrumental).flac", "blue bird"},
		{"03 Blue Bird (Off Vocal).flac", "blue bird"},
		{"０１　ＢＬＵＥ　ＢＩＲＤ.flac", "blue bird"},
		{"07 Night Drive (Asterism Edition).flac", "night drive (asterism edition)"},
	}
	for _, tc := range cases {
		if got := c.NormalizeStrict(tc.name); got != tc.want {
			t.Errorf("NormalizeStrict(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestNormalizeLooseStripsQualifiers(t *testing.T) {
	c := Default()
	cases := []struct {
		name string
		want string
	}{
		{"07 Night Drive (Asterism Edition).flac", "night drive"},
		{"07 Night Drive (Instrumental) [2024 Remaster].flac", "night drive"},
		{"07 Night Drive.flac", "night drive"},
	}
	for _, tc := range cases {
		if got := c.NormalizeLoose(tc.name); got != tc.want {
			t.Errorf("NormalizeLoose(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestStrictAndLooseAgreeOnInstrumentalPair(t *testing.T) {
	c := Default()
	original := "01 Blue Bird.flac"
	regenerated := "14 Blue Bird (Off Vocal) (StemRoller).flac"
	if c.NormalizeStrict(original) == c.NormalizeStrict(regenerated) {
		t.Fatal("strict normalization should keep the StemRoller qualifier distinct")
	}
	if c.NormalizeLoose(original) != c.NormalizeLoose(regenerated) {
		t.Fatalf("loose normalization should pair %q with %q: %q vs %q",
			original, regenerated, c.NormalizeLoose(original), c.NormalizeLoose(regenerated))
	}
}
