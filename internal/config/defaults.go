package config

import "trackflow/internal/instrumental"

const (
	defaultWorkDir     = "~/.local/share/trackflow/work"
	defaultLogDir      = "~/.local/share/trackflow/logs"
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"
	defaultJpegQuality = 85
	defaultWebpQuality = 85
	defaultResizeWidth = 600
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkDir: defaultWorkDir,
			LogDir:  defaultLogDir,
		},
		Demucs: Demucs{
			SkipKeywords: instrumental.DefaultKeywords(),
		},
		Artwork: Artwork{
			JpegQuality: defaultJpegQuality,
			WebpQuality: defaultWebpQuality,
			ResizeWidth: defaultResizeWidth,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
