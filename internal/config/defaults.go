package config

const (
	defaultSourceDir = "en_word"
	defaultChunkDir  = "en_word_out"
	defaultMergedDir = "en_word_merged"
	defaultLogDir    = "~/.local/share/kotoba/logs"
	defaultPrefix    = "n"
	defaultChunkSize = 120
	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

func defaultLevels() []int {
	return []int{1, 2, 3, 4, 5}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			SourceDir: defaultSourceDir,
			ChunkDir:  defaultChunkDir,
			MergedDir: defaultMergedDir,
			LogDir:    defaultLogDir,
		},
		Dataset: Dataset{
			Prefix: defaultPrefix,
			Levels: defaultLevels(),
		},
		Split: Split{
			ChunkSize: defaultChunkSize,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
