package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, DriverSQLite, c.StoreDriver)
	assert.Equal(t, "tasktracker.db", c.SQLitePath)
	assert.Equal(t, "text", c.LogFormat)
	assert.Equal(t, "info", c.LogLevel)
	assert.True(t, c.Seed)
	assert.Equal(t, 5*time.Second, c.ShutdownTimeout)
}

func TestLoadConfig_UsesDefaultsWithoutOverrides(t *testing.T) {
	origArgs, origLookup := os.Args, osLookupEnv
	t.Cleanup(func() { os.Args, osLookupEnv = origArgs, origLookup })

	os.Args = []string{"testbin"}
	osLookupEnv = func(string) (string, bool) { return "", false }

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, DriverSQLite, cfg.StoreDriver)
	assert.True(t, cfg.Seed)
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	origArgs, origLookup := os.Args, osLookupEnv
	t.Cleanup(func() { os.Args, osLookupEnv = origArgs, origLookup })

	os.Args = []string{"testbin", "-d", "memory"}
	osLookupEnv = func(k string) (string, bool) {
		env := map[string]string{
			"TASKTRACKER_STORE_DRIVER": "redis",
			"TASKTRACKER_LOG_LEVEL":    "debug",
		}
		v, ok := env[k]
		return v, ok
	}

	cfg := LoadConfig()

	assert.Equal(t, DriverMemory, cfg.StoreDriver, "flag wins over env")
	assert.Equal(t, "debug", cfg.LogLevel, "env wins over defaults")
}
