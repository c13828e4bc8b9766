package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/tasktracker/internal/flagx"
	"github.com/dmitrijs2005/tasktracker/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from zero values, so a partial file only
// overrides what it names.
type JsonConfig struct {
	StoreDriver     *string         `json:"store_driver"`
	SQLitePath      *string         `json:"sqlite_path"`
	PostgresDSN     *string         `json:"postgres_dsn"`
	RedisAddr       *string         `json:"redis_addr"`
	RedisPassword   *string         `json:"redis_password"`
	RedisDB         *int            `json:"redis_db"`
	RedisPrefix     *string         `json:"redis_prefix"`
	S3Bucket        *string         `json:"s3_bucket"`
	S3Region        *string         `json:"s3_region"`
	S3BaseEndpoint  *string         `json:"s3_base_endpoint"`
	S3AccessKey     *string         `json:"s3_access_key"`
	S3SecretKey     *string         `json:"s3_secret_key"`
	S3Prefix        *string         `json:"s3_prefix"`
	LogFormat       *string         `json:"log_format"`
	LogLevel        *string         `json:"log_level"`
	Seed            *bool           `json:"seed"`
	ShutdownTimeout *timex.Duration `json:"shutdown_timeout"`
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// parseJson overlays Config with values from the JSON file named by -c or
// -config. Without either flag it does nothing. Read or decode errors panic.
func parseJson(cfg *Config) {
	path := flagx.JsonConfigFlags()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	set(&cfg.StoreDriver, jc.StoreDriver)
	set(&cfg.SQLitePath, jc.SQLitePath)
	set(&cfg.PostgresDSN, jc.PostgresDSN)
	set(&cfg.RedisAddr, jc.RedisAddr)
	set(&cfg.RedisPassword, jc.RedisPassword)
	set(&cfg.RedisDB, jc.RedisDB)
	set(&cfg.RedisPrefix, jc.RedisPrefix)
	set(&cfg.S3Bucket, jc.S3Bucket)
	set(&cfg.S3Region, jc.S3Region)
	set(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
	set(&cfg.S3AccessKey, jc.S3AccessKey)
	set(&cfg.S3SecretKey, jc.S3SecretKey)
	set(&cfg.S3Prefix, jc.S3Prefix)
	set(&cfg.LogFormat, jc.LogFormat)
	set(&cfg.LogLevel, jc.LogLevel)
	set(&cfg.Seed, jc.Seed)
	if jc.ShutdownTimeout != nil {
		cfg.ShutdownTimeout = jc.ShutdownTimeout.Duration
	}
}
