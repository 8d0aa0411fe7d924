package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	envPrefix        = "LOCALGAME_"
	envEnv           = envPrefix + "ENV"
	envHTTPAddress   = envPrefix + "HTTP_ADDRESS"
	envSource        = envPrefix + "SOURCE"
	envResourcesDir  = envPrefix + "RESOURCES_DIR"
	envDevLogging    = envPrefix + "DEV_LOGGING"
	envRedisAddress  = envPrefix + "REDIS_ADDRESS"
	envRedisPassword = envPrefix + "REDIS_PASSWORD"
	envRedisDB       = envPrefix + "REDIS_DB"
	envSQLitePath    = envPrefix + "SQLITE_PATH"
	envFeedBaseURL   = envPrefix + "FEED_BASE_URL"
	envFeedAPIKey    = envPrefix + "FEED_API_KEY"
	envRefresh       = envPrefix + "REFRESH_INTERVAL"
	envStaleAfter    = envPrefix + "STATUS_STALE_AFTER"
	envBusyThreshold = envPrefix + "STATUS_BUSY_THRESHOLD"
)

func applyEnv(c *Config) {
	c.Env = envOrDefault(envEnv, c.Env)
	c.HTTPAddress = envOrDefault(envHTTPAddress, c.HTTPAddress)
	c.Source = strings.ToLower(envOrDefault(envSource, c.Source))
	c.ResourcesDir = envOrDefault(envResourcesDir, c.ResourcesDir)
	c.DevLogging = boolEnvOrDefault(envDevLogging, c.DevLogging)
	c.Redis.Address = envOrDefault(envRedisAddress, c.Redis.Address)
	c.Redis.Password = envOrDefault(envRedisPassword, c.Redis.Password)
	c.Redis.DB = intEnvOrDefault(envRedisDB, c.Redis.DB)
	c.SQLitePath = envOrDefault(envSQLitePath, c.SQLitePath)
	c.Feed.BaseURL = envOrDefault(envFeedBaseURL, c.Feed.BaseURL)
	c.Feed.APIKey = envOrDefault(envFeedAPIKey, c.Feed.APIKey)
	c.Refresh.Interval = durationEnvOrDefault(envRefresh, c.Refresh.Interval)
	c.Refresh.StaleAfter = durationEnvOrDefault(envStaleAfter, c.Refresh.StaleAfter)
	c.Refresh.BusyThreshold = intEnvOrDefault(envBusyThreshold, c.Refresh.BusyThreshold)
}

func envOrDefault(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultValue
}

func durationEnvOrDefault(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		return defaultValue
	}
	return parsed
}

// intEnvOrDefault accepts zero, since redis DB 0 is a valid choice.
func intEnvOrDefault(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val < 0 {
		return defaultValue
	}
	return val
}

func boolEnvOrDefault(key string, defaultValue bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}
	if raw == "1" || strings.EqualFold(raw, "true") || strings.EqualFold(raw, "yes") {
		return true
	}
	if raw == "0" || strings.EqualFold(raw, "false") || strings.EqualFold(raw, "no") {
		return false
	}
	return defaultValue
}
