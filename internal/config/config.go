package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

const (
	DefaultWindowDays    = 90
	DefaultCacheTTLHours = 24
	DefaultTimelineLimit = 10
)

type Config struct {
	Data    DataConfig    `json:"data"`
	Profile ProfileConfig `json:"profile"`
	Refresh RefreshConfig `json:"refresh"`
}

type DataConfig struct {
	JournalDBPath string `json:"journalDbPath"`
	CacheDBPath   string `json:"cacheDbPath"`
}

type ProfileConfig struct {
	WindowDays    int    `json:"windowDays"`
	CacheTTLHours int    `json:"cacheTtlHours"`
	TimelineLimit int    `json:"timelineLimit"`
	InputPath     string `json:"inputPath,omitempty"`
}

type RefreshConfig struct {
	// Schedule is a cron expression; empty disables scheduled refresh.
	Schedule string `json:"schedule,omitempty"`
}

func DefaultConfig() *Config {
	dir := ConfigDir()
	return &Config{
		Data: DataConfig{
			JournalDBPath: filepath.Join(dir, "journal.db"),
			CacheDBPath:   filepath.Join(dir, "cache.db"),
		},
		Profile: ProfileConfig{
			WindowDays:    DefaultWindowDays,
			CacheTTLHours: DefaultCacheTTLHours,
			TimelineLimit: DefaultTimelineLimit,
		},
	}
}

func ConfigDir() string {
	home := os.Getenv("HOME")
	if home == "" {
		home, _ = os.UserHomeDir()
	}
	return filepath.Join(home, ".tether")
}

func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.json")
}

func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if path := os.Getenv("TETHER_JOURNAL_DB"); path != "" {
		cfg.Data.JournalDBPath = path
	}
	if path := os.Getenv("TETHER_CACHE_DB"); path != "" {
		cfg.Data.CacheDBPath = path
	}
	if days := os.Getenv("TETHER_WINDOW_DAYS"); days != "" {
		if parsed, err := strconv.Atoi(days); err == nil {
			cfg.Profile.WindowDays = parsed
		}
	}
	if hours := os.Getenv("TETHER_CACHE_TTL_HOURS"); hours != "" {
		if parsed, err := strconv.Atoi(hours); err == nil {
			cfg.Profile.CacheTTLHours = parsed
		}
	}
	if limit := os.Getenv("TETHER_TIMELINE_LIMIT"); limit != "" {
		if parsed, err := strconv.Atoi(limit); err == nil {
			cfg.Profile.TimelineLimit = parsed
		}
	}
	if path := os.Getenv("TETHER_PROFILE_INPUT"); path != "" {
		cfg.Profile.InputPath = path
	}
	if expr := os.Getenv("TETHER_REFRESH_SCHEDULE"); expr != "" {
		cfg.Refresh.Schedule = expr
	}

	if cfg.Profile.WindowDays <= 0 {
		cfg.Profile.WindowDays = DefaultWindowDays
	}
	if cfg.Profile.CacheTTLHours <= 0 {
		cfg.Profile.CacheTTLHours = DefaultCacheTTLHours
	}
	if cfg.Profile.TimelineLimit <= 0 {
		cfg.Profile.TimelineLimit = DefaultTimelineLimit
	}

	return cfg, nil
}

func SaveConfig(cfg *Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(ConfigPath(), data, 0644)
}
