package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, HTTP_ADDRESS, cfg.HTTPAddress)
	assert.Equal(t, SOURCE_FIXTURE, cfg.Source)
	assert.Equal(t, REDIS_DB_ADDRESS, cfg.Redis.Address)
	assert.Equal(t, CATALOG_REFRESHER_SCHEDULE, cfg.Refresh.Interval)
	assert.Equal(t, STATUS_BUSY_THRESHOLD, cfg.Refresh.BusyThreshold)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "localgame.yaml")
	content := `
env: prod
source: redis
http_address: ":9000"
redis:
  address: "localhost:6380"
  db: 2
refresh:
  interval: 90s
  stale_after: 30m
  busy_threshold: 6
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, SOURCE_REDIS, cfg.Source)
	assert.Equal(t, ":9000", cfg.HTTPAddress)
	assert.Equal(t, "localhost:6380", cfg.Redis.Address)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 90*time.Second, cfg.Refresh.Interval)
	assert.Equal(t, 30*time.Minute, cfg.Refresh.StaleAfter)
	assert.Equal(t, 6, cfg.Refresh.BusyThreshold)
	assert.Equal(t, SQLITE_PATH, cfg.SQLitePath, "unset fields keep defaults")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "localgame.yaml")
	require.NoError(t, os.WriteFile(path, []byte("source: redis\n"), 0o644))

	t.Setenv(envSource, "SQLITE")
	t.Setenv(envSQLitePath, "/tmp/venues.db")
	t.Setenv(envRefresh, "not-a-duration")
	t.Setenv(envDevLogging, "yes")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, SOURCE_SQLITE, cfg.Source)
	assert.Equal(t, "/tmp/venues.db", cfg.SQLitePath)
	assert.Equal(t, CATALOG_REFRESHER_SCHEDULE, cfg.Refresh.Interval)
	assert.True(t, cfg.DevLogging)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("source: [unterminated"), 0o644))
	_, err = Load(bad)
	assert.Error(t, err)

	t.Setenv(envSource, "carrier-pigeon")
	_, err = Load("")
	assert.Error(t, err)
}

func TestConfig_ResourcePath(t *testing.T) {
	cfg := Default()
	cfg.ResourcesDir = "/srv/resources"

	assert.Equal(t, filepath.Join("/srv/resources", VENUES_CATALOG_RESOURCE), cfg.ResourcePath(VENUES_CATALOG_RESOURCE))
}

func TestBaseDir_ProjectRoot(t *testing.T) {
	t.Setenv("PROJECT_ROOT", "/opt/localgame")

	assert.Equal(t, "/opt/localgame", BaseDir())
	assert.Equal(t, filepath.Join("/opt/localgame", RESOURCES_PATH_PREFIX), Default().ResourcesDir)
}
