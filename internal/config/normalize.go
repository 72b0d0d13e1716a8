package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// accessTokenEnvVar names the environment variable that carries the TMDB v4
// read access token. It always wins over the config file so tokens never have
// to live in checked-in TOML.
const accessTokenEnvVar = "TMDB_API_READ_ACCESS_TOKEN"

func (c *Config) normalize() error {
	if err := c.normalizeFiles(); err != nil {
		return err
	}
	c.normalizeTMDB()
	c.normalizePacing()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeFiles() error {
	var err error
	if strings.TrimSpace(c.Files.Input) == "" {
		c.Files.Input = defaultInputFile
	}
	if c.Files.Input, err = expandPath(c.Files.Input); err != nil {
		return fmt.Errorf("files.input: %w", err)
	}
	if strings.TrimSpace(c.Files.Output) == "" {
		c.Files.Output = defaultOutputFile
	}
	if c.Files.Output, err = expandPath(c.Files.Output); err != nil {
		return fmt.Errorf("files.output: %w", err)
	}
	if strings.TrimSpace(c.Files.ErrorLog) == "" {
		c.Files.ErrorLog = defaultErrorLogFile
	}
	if c.Files.ErrorLog, err = expandPath(c.Files.ErrorLog); err != nil {
		return fmt.Errorf("files.error_log: %w", err)
	}
	return nil
}

func (c *Config) normalizeTMDB() {
	// A .env in the working directory may carry the token; existing process
	// environment still wins because godotenv never overwrites set variables.
	_ = godotenv.Load()
	if value, ok := os.LookupEnv(accessTokenEnvVar); ok && strings.TrimSpace(value) != "" {
		c.TMDB.AccessToken = value
	}
	c.TMDB.AccessToken = strings.TrimSpace(c.TMDB.AccessToken)
	c.TMDB.BaseURL = strings.TrimSpace(c.TMDB.BaseURL)
	if c.TMDB.BaseURL == "" {
		c.TMDB.BaseURL = defaultTMDBBaseURL
	}
	c.TMDB.Language = strings.TrimSpace(c.TMDB.Language)
	if c.TMDB.Language == "" {
		c.TMDB.Language = defaultTMDBLanguage
	}
}

func (c *Config) normalizePacing() {
	if c.Pacing.RequestDelayMS < 0 {
		c.Pacing.RequestDelayMS = 0
	}
	if c.Pacing.RequestTimeoutSeconds <= 0 {
		c.Pacing.RequestTimeoutSeconds = defaultRequestTimeoutSeconds
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
