package album

// The fixed ten-stage pipeline an album passes through. Most stages hand the
// album folder to an external, operator-run tool; the engine only verifies
// that the expected outputs appeared before allowing progression.
const (
	StageImport          = 1
	StageDemucs          = 2
	StageTagging         = 3
	StageAACConvert      = 4
	StageOpusConvert     = 5
	StageArtworkOptimize = 6
	StageArtworkExchange = 7
	StageArchive         = 8
	StageTransfer        = 9
	StageCleanup         = 10

	StageMin = StageImport
	StageMax = StageCleanup
)

var stageNames = map[int]string{
	StageImport:          "Import",
	StageDemucs:          "Demucs separation",
	StageTagging:         "FLAC finalize (tag & rename)",
	StageAACConvert:      "AAC conversion",
	StageOpusConvert:     "Opus conversion",
	StageArtworkOptimize: "Artwork optimize",
	StageArtworkExchange: "Artwork exchange",
	StageArchive:         "ReplayGain & archive",
	StageTransfer:        "Final transfer",
	StageCleanup:         "Cleanup",
}

// StageName returns the display name for a stage number. Purely
// informational; behavior never branches on the name.
func StageName(stage int) string {
	if name, ok := stageNames[stage]; ok {
		return name
	}
	return "Unknown stage"
}
