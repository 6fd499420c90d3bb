package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTelegram()
	c.normalizeLogging()
	c.normalizeWorkspace()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.WorkDir) == "" {
		c.Paths.WorkDir = defaultWorkDir
	}
	if c.Paths.WorkDir, err = expandPath(c.Paths.WorkDir); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeTelegram() {
	c.Telegram.BotToken = strings.TrimSpace(c.Telegram.BotToken)
	if c.Telegram.BotToken == "" {
		c.Telegram.BotToken = strings.TrimSpace(os.Getenv(TokenEnvVar))
	}
	c.Telegram.ChannelID = strings.TrimSpace(c.Telegram.ChannelID)
	if c.Telegram.RequestTimeout <= 0 {
		c.Telegram.RequestTimeout = defaultRequestTimeout
	}
	if c.Telegram.PollTimeout <= 0 {
		c.Telegram.PollTimeout = defaultPollTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func (c *Config) normalizeWorkspace() {
	if c.Workspace.StaleAfterMinutes <= 0 {
		c.Workspace.StaleAfterMinutes = defaultStaleAfterMinutes
	}
}
