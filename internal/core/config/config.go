package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config represents the top-level application config.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Streak   StreakConfig   `koanf:"streak"`
	Holidays HolidayConfig  `koanf:"holidays"`
}

type ServerConfig struct {
	Port          int    `koanf:"port"`
	Host          string `koanf:"host"`
	MaxBodySizeMB int    `koanf:"max_body_size_mb"`
	Mode          string `koanf:"mode"` // debug | release
}

type DatabaseConfig struct {
	Type         string `koanf:"type"`
	DSN          string `koanf:"dsn"`
	MaxOpenConns int    `koanf:"max_open_conns"`
	MaxIdleConns int    `koanf:"max_idle_conns"`
	AutoMigrate  bool   `koanf:"auto_migrate"`
}

type StreakConfig struct {
	// DefaultTimezone applies when a profile has no timezone set.
	DefaultTimezone string `koanf:"default_timezone"`
	// GracePostsRequired is the catch-up requirement after one unmet
	// working day.
	GracePostsRequired int `koanf:"grace_posts_required"`
	// HolidayWindowDays bounds the trailing holiday fetch window.
	HolidayWindowDays int `koanf:"holiday_window_days"`
	// WriteTimeout caps the write-behind cache persist.
	WriteTimeout string `koanf:"write_timeout"`
}

type HolidayConfig struct {
	SourceType string `koanf:"source_type"` // postgres | file
	Path       string `koanf:"path"`        // calendar file for the file source
	CacheTTL   string `koanf:"cache_ttl"`
}

// ParsedWriteTimeout returns the validated write timeout duration.
func (c StreakConfig) ParsedWriteTimeout() (time.Duration, error) {
	return time.ParseDuration(c.WriteTimeout)
}

// ParsedCacheTTL returns the validated holiday cache TTL.
func (c HolidayConfig) ParsedCacheTTL() (time.Duration, error) {
	return time.ParseDuration(c.CacheTTL)
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d (must be 1-65535)", c.Server.Port)
	}
	if strings.TrimSpace(c.Server.Host) == "" {
		return fmt.Errorf("server.host is required")
	}
	if c.Server.MaxBodySizeMB <= 0 {
		return fmt.Errorf("server.max_body_size_mb must be > 0")
	}
	if c.Server.Mode != "debug" && c.Server.Mode != "release" {
		return fmt.Errorf("invalid server.mode %q (must be debug or release)", c.Server.Mode)
	}

	if strings.TrimSpace(c.Database.DSN) == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be > 0")
	}
	if c.Database.MaxIdleConns <= 0 {
		return fmt.Errorf("database.max_idle_conns must be > 0")
	}
	if c.Database.Type != "" && c.Database.Type != "postgres" {
		return fmt.Errorf("unsupported database.type %q", c.Database.Type)
	}

	if strings.TrimSpace(c.Streak.DefaultTimezone) == "" {
		return fmt.Errorf("streak.default_timezone is required")
	}
	if c.Streak.GracePostsRequired <= 0 {
		return fmt.Errorf("streak.grace_posts_required must be > 0")
	}
	if c.Streak.HolidayWindowDays <= 0 {
		return fmt.Errorf("streak.holiday_window_days must be > 0")
	}
	if timeout, err := c.Streak.ParsedWriteTimeout(); err != nil || timeout <= 0 {
		return fmt.Errorf("invalid streak.write_timeout %q", c.Streak.WriteTimeout)
	}

	switch c.Holidays.SourceType {
	case "postgres":
	case "file":
		if strings.TrimSpace(c.Holidays.Path) == "" {
			return fmt.Errorf("holidays.path is required for the file source")
		}
		if _, err := os.Stat(c.Holidays.Path); err != nil {
			return fmt.Errorf("holidays.path %q is not accessible: %w", c.Holidays.Path, err)
		}
	default:
		return fmt.Errorf("unsupported holidays.source_type %q", c.Holidays.SourceType)
	}
	if ttl, err := c.Holidays.ParsedCacheTTL(); err != nil || ttl <= 0 {
		return fmt.Errorf("invalid holidays.cache_ttl %q", c.Holidays.CacheTTL)
	}

	return nil
}

// Load parses config from file + env and validates it.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]interface{}{
		"server.port":                 8080,
		"server.host":                 "0.0.0.0",
		"server.max_body_size_mb":     1,
		"server.mode":                 "release",
		"database.type":               "postgres",
		"database.dsn":                "",
		"database.max_open_conns":     25,
		"database.max_idle_conns":     25,
		"database.auto_migrate":       true,
		"streak.default_timezone":     "UTC",
		"streak.grace_posts_required": 2,
		"streak.holiday_window_days":  28,
		"streak.write_timeout":        "5s",
		"holidays.source_type":        "postgres",
		"holidays.path":               "",
		"holidays.cache_ttl":          "10m",
	}
	for key, value := range defaults {
		k.Set(key, value)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider("SCRIPTORIA_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "SCRIPTORIA_")), "__", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
