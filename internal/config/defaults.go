package config

const (
	defaultInputFile             = "disney_plus_export.csv"
	defaultOutputFile            = "yamtrack_import.csv"
	defaultErrorLogFile          = "errors.log"
	defaultTMDBBaseURL           = "https://api.themoviedb.org/3"
	defaultTMDBLanguage          = "en-US"
	defaultRequestDelayMS        = 100
	defaultRequestTimeoutSeconds = 10
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Files: Files{
			Input:    defaultInputFile,
			Output:   defaultOutputFile,
			ErrorLog: defaultErrorLogFile,
		},
		TMDB: TMDB{
			BaseURL:  defaultTMDBBaseURL,
			Language: defaultTMDBLanguage,
		},
		Pacing: Pacing{
			RequestDelayMS:        defaultRequestDelayMS,
			RequestTimeoutSeconds: defaultRequestTimeoutSeconds,
		},
		Convert: Convert{
			DedupeRewatches: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
