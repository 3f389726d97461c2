package config

const (
	defaultConfigPath    = "~/.config/vid2gif/config.toml"
	defaultHistoryPath   = "~/.local/share/vid2gif/history.db"
	defaultFFmpegBinary  = "ffmpeg"
	defaultFFprobeBinary = "ffprobe"
	defaultFPS           = 24
	defaultTrimSuffix    = "_trimmed"
	defaultUI            = "auto"
	defaultLogLevel      = "warn"
	defaultLogFormat     = "console"
)

// Default returns a Config populated with the built-in defaults.
func Default() Config {
	return Config{
		FFmpeg: FFmpeg{
			FFmpegBinary:  defaultFFmpegBinary,
			FFprobeBinary: defaultFFprobeBinary,
		},
		GIF: GIF{
			FPS:  defaultFPS,
			Loop: true,
		},
		Trim: Trim{
			Suffix:      defaultTrimSuffix,
			KeepTrimmed: true,
		},
		Output: Output{
			UI: defaultUI,
		},
		History: History{
			Enabled: true,
			Path:    defaultHistoryPath,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
