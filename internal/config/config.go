// Package config loads the bot's static runtime configuration.
//
// The config file is JSON or YAML, chosen by file extension. Credentials (bot
// token, chat ID) are deliberately not part of the file; they come from flags
// or the environment at the CLI layer.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultMention  = "@here"
	DefaultTimezone = "Europe/Lisbon"
	DefaultLogFile  = "ticket-bot.log"
)

// Config is the static runtime configuration, loaded once at startup and
// immutable for the process lifetime.
type Config struct {
	URL                  string `json:"url" yaml:"url"`
	TargetDay            string `json:"target_day" yaml:"target_day"`
	TargetMonth          string `json:"target_month" yaml:"target_month"`
	CheckIntervalSeconds int    `json:"check_interval_seconds" yaml:"check_interval_seconds"`
	Mention              string `json:"mention,omitempty" yaml:"mention,omitempty"`
	Timezone             string `json:"timezone,omitempty" yaml:"timezone,omitempty"`
	LogFile              string `json:"log_file,omitempty" yaml:"log_file,omitempty"`
	MetricsAddr          string `json:"metrics_addr,omitempty" yaml:"metrics_addr,omitempty"`
}

// Load reads and validates the config file at path. Target labels are
// lower-cased here so every later comparison is against normalized values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := &Config{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing YAML config: %w", err)
		}
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing JSON config: %w", err)
		}
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	c.TargetDay = strings.ToLower(strings.TrimSpace(c.TargetDay))
	c.TargetMonth = strings.ToLower(strings.TrimSpace(c.TargetMonth))

	if c.Mention == "" {
		c.Mention = DefaultMention
	}
	if c.Timezone == "" {
		c.Timezone = DefaultTimezone
	}
	if c.LogFile == "" {
		c.LogFile = DefaultLogFile
	}
}

func (c *Config) validate() error {
	if c.URL == "" {
		return fmt.Errorf("url is required")
	}
	if c.TargetDay == "" {
		return fmt.Errorf("target_day is required")
	}
	if c.TargetMonth == "" {
		return fmt.Errorf("target_month is required")
	}
	if c.CheckIntervalSeconds <= 0 {
		return fmt.Errorf("check_interval_seconds must be positive, got %d", c.CheckIntervalSeconds)
	}
	return nil
}

// CheckInterval returns the polling interval as a duration.
func (c *Config) CheckInterval() time.Duration {
	return time.Duration(c.CheckIntervalSeconds) * time.Second
}
