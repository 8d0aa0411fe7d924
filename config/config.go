package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Server config
const HTTP_ADDRESS = ":8080"
const HTTP_SHUTDOWN_TIMEOUT = 5 * time.Second

// Catalog sources
const (
	SOURCE_FIXTURE = "fixture"
	SOURCE_REDIS   = "redis"
	SOURCE_SQLITE  = "sqlite"
	SOURCE_FEED    = "feed"
)

// Redis Config
const REDIS_DB_ADDRESS = "redis:6379"
const REDIS_DB_PASSWORD = ""
const REDIS_DB = 0

// SQLite Config
const SQLITE_PATH = "data/venues.db"

// Catalog refresher config
const CATALOG_REFRESHER_SCHEDULE = 5 * time.Minute
const STATUS_STALE_AFTER = 45 * time.Minute
const STATUS_BUSY_THRESHOLD = 8

// Venue feed config
const VENUE_FEED_ENDPOINT_BASE_V1 = "http://localhost:9090/api/v1"

// Resources file paths
const RESOURCES_PATH_PREFIX = "resources"
const VENUES_CATALOG_RESOURCE = "venues.json"
const NOTIFICATIONS_RESOURCE = "notifications.json"
const LIVE_ACTIVITY_RESOURCE = "live_activity.json"

// Config holds runtime configuration. Zero fields fall back to the constants above.
type Config struct {
	Env          string        `yaml:"env"`
	HTTPAddress  string        `yaml:"http_address"`
	Source       string        `yaml:"source"`
	ResourcesDir string        `yaml:"resources_dir"`
	DevLogging   bool          `yaml:"dev_logging"`
	Redis        RedisConfig   `yaml:"redis"`
	SQLitePath   string        `yaml:"sqlite_path"`
	Feed         FeedConfig    `yaml:"feed"`
	Refresh      RefreshConfig `yaml:"refresh"`
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type FeedConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
}

type RefreshConfig struct {
	Interval      time.Duration `yaml:"interval"`
	StaleAfter    time.Duration `yaml:"stale_after"`
	BusyThreshold int           `yaml:"busy_threshold"`
}

// Default returns the configuration built from the package constants.
func Default() Config {
	return Config{
		Env:          "dev",
		HTTPAddress:  HTTP_ADDRESS,
		Source:       SOURCE_FIXTURE,
		ResourcesDir: filepath.Join(BaseDir(), RESOURCES_PATH_PREFIX),
		Redis: RedisConfig{
			Address:  REDIS_DB_ADDRESS,
			Password: REDIS_DB_PASSWORD,
			DB:       REDIS_DB,
		},
		SQLitePath: SQLITE_PATH,
		Feed: FeedConfig{
			BaseURL: VENUE_FEED_ENDPOINT_BASE_V1,
		},
		Refresh: RefreshConfig{
			Interval:      CATALOG_REFRESHER_SCHEDULE,
			StaleAfter:    STATUS_STALE_AFTER,
			BusyThreshold: STATUS_BUSY_THRESHOLD,
		},
	}
}

// Load reads an optional YAML file over the defaults, then applies LOCALGAME_* env overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	return cfg, cfg.Validate()
}

// Validate checks the settings that would otherwise fail late.
func (c Config) Validate() error {
	switch c.Source {
	case SOURCE_FIXTURE, SOURCE_REDIS, SOURCE_SQLITE, SOURCE_FEED:
	default:
		return fmt.Errorf("unknown catalog source %q", c.Source)
	}
	if c.Refresh.Interval <= 0 {
		return fmt.Errorf("refresh interval must be positive, got %s", c.Refresh.Interval)
	}
	if c.Refresh.StaleAfter <= 0 {
		return fmt.Errorf("stale_after must be positive, got %s", c.Refresh.StaleAfter)
	}
	return nil
}

// ResourcePath joins a resource file name onto the configured resources directory.
func (c Config) ResourcePath(resourceFile string) string {
	return filepath.Join(c.ResourcesDir, resourceFile)
}

// BaseDir returns the absolute path of the project root directory
func BaseDir() string {
	if root := os.Getenv("PROJECT_ROOT"); root != "" {
		return root
	}

	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}
