package config

import (
	"os"
)

const (
	reminderSourceURLEnv = "REMINDER_SOURCE_URL"
	remindersFileEnv     = "REMINDERS_FILE"
)

type SourceConfig struct {
	URL string
	// File takes precedence over URL when both are set.
	File string
}

func LoadSourceConfig() *SourceConfig {
	return &SourceConfig{
		URL:  os.Getenv(reminderSourceURLEnv),
		File: os.Getenv(remindersFileEnv),
	}
}

func (c *SourceConfig) UseFile() bool {
	return c.File != ""
}

func (c *SourceConfig) Validate() error {
	if c.File == "" && c.URL == "" {
		return ErrSourceMissing
	}
	return nil
}
