package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateFiles(); err != nil {
		return err
	}
	if err := c.validateTMDB(); err != nil {
		return err
	}
	if err := c.validatePacing(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateFiles() error {
	if c.Files.Input == "" {
		return errors.New("files.input must be set")
	}
	if c.Files.Output == "" {
		return errors.New("files.output must be set")
	}
	if c.Files.ErrorLog == "" {
		return errors.New("files.error_log must be set")
	}
	if c.Files.Output == c.Files.Input {
		return errors.New("files.output must not equal files.input")
	}
	return nil
}

func (c *Config) validateTMDB() error {
	if c.TMDB.AccessToken == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/watchlog/config.toml"
		}
		return fmt.Errorf("tmdb.access_token is required. Set %s env var or edit %s (create with 'watchlog config init')", accessTokenEnvVar, defaultPath)
	}
	if c.TMDB.BaseURL == "" {
		return errors.New("tmdb.base_url must be set")
	}
	return nil
}

func (c *Config) validatePacing() error {
	if c.Pacing.RequestTimeoutSeconds <= 0 {
		return errors.New("pacing.request_timeout_seconds must be positive")
	}
	return nil
}
