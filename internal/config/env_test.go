package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapLookup(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestParseEnv_OverlaysKnownVariables(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	parseEnv(cfg, mapLookup(map[string]string{
		"TASKTRACKER_STORE_DRIVER":     "s3",
		"TASKTRACKER_S3_BUCKET":        "tasks",
		"TASKTRACKER_REDIS_DB":         "3",
		"TASKTRACKER_SEED":             "false",
		"TASKTRACKER_SHUTDOWN_TIMEOUT": "250ms",
		"UNRELATED":                    "x",
	}))

	assert.Equal(t, DriverS3, cfg.StoreDriver)
	assert.Equal(t, "tasks", cfg.S3Bucket)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.False(t, cfg.Seed)
	assert.Equal(t, 250*time.Millisecond, cfg.ShutdownTimeout)
	assert.Equal(t, "tasktracker.db", cfg.SQLitePath, "untouched values keep defaults")
}

func TestParseEnv_InvalidValuesPanic(t *testing.T) {
	for _, k := range []string{"TASKTRACKER_REDIS_DB", "TASKTRACKER_SEED", "TASKTRACKER_SHUTDOWN_TIMEOUT"} {
		t.Run(k, func(t *testing.T) {
			cfg := &Config{}
			require.Panics(t, func() { parseEnv(cfg, mapLookup(map[string]string{k: "nope"})) })
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	const key = "TASKTRACKER_DOTENV_PROBE"
	t.Cleanup(func() { _ = os.Unsetenv(key) })

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(key+"=from-file\n"), 0o600))

	loadDotEnv(path)

	assert.Equal(t, "from-file", os.Getenv(key))
}

func TestLoadDotEnv_MissingFileIsIgnored(t *testing.T) {
	require.NotPanics(t, func() { loadDotEnv(filepath.Join(t.TempDir(), "absent.env")) })
}
