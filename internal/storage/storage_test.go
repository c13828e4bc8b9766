package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/tasktracker/internal/config"
	"github.com/dmitrijs2005/tasktracker/internal/logging"
	"github.com/dmitrijs2005/tasktracker/internal/repositories/metadata"
)

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&n)
	require.NoError(t, err)
	return n > 0
}

func TestOpenSQLite_CreatesSchema(t *testing.T) {
	ctx := context.Background()
	db, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "tt.db"))
	require.NoError(t, err)
	defer db.Close()

	assert.True(t, tableExists(t, db, "goose_db_version"))
	assert.True(t, tableExists(t, db, "metadata"))
}

func TestRunMigrations_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tt.db")

	db, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, RunMigrations(ctx, db, "sqlite3", "sqlite"))
	require.NoError(t, db.Close())

	db, err = OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer db.Close()
	assert.True(t, tableExists(t, db, "metadata"))
}

func TestRunMigrations_Error(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	defer func() { gooseUpContext = orig }()

	err = RunMigrations(context.Background(), db, "pgx", "postgres")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestRunMigrations_BadDialect(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	err = RunMigrations(context.Background(), db, "no-such-dialect", "postgres")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "goose dialect")
}

func TestOpenPostgres_MigratesThroughPgx(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	mock.ExpectPing()

	origOpen, origUp := sqlOpen, gooseUpContext
	defer func() { sqlOpen, gooseUpContext = origOpen, origUp }()

	var gotDriver, gotDSN, gotDir string
	sqlOpen = func(driver, dsn string) (*sql.DB, error) {
		gotDriver, gotDSN = driver, dsn
		return db, nil
	}
	gooseUpContext = func(ctx context.Context, _ *sql.DB, dir string, _ ...goose.OptionsFunc) error {
		gotDir = dir
		return nil
	}

	out, err := OpenPostgres(context.Background(), "postgres://x")
	require.NoError(t, err)
	defer out.Close()

	assert.Equal(t, "pgx", gotDriver)
	assert.Equal(t, "postgres://x", gotDSN)
	assert.Equal(t, "postgres", gotDir)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOpenPostgres_PingError(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	mock.ExpectPing().WillReturnError(errors.New("refused"))

	orig := sqlOpen
	defer func() { sqlOpen = orig }()
	sqlOpen = func(string, string) (*sql.DB, error) { return db, nil }

	_, err = OpenPostgres(context.Background(), "postgres://x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to ping postgres")
}

type fakeRedisConn struct {
	metadata.RedisClient
	pingErr error
	closed  bool
}

func (f *fakeRedisConn) Ping(ctx context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", f.pingErr)
}

func (f *fakeRedisConn) Close() error {
	f.closed = true
	return nil
}

func TestOpenRepository_Drivers(t *testing.T) {
	ctx := context.Background()
	log := logging.Nop()

	t.Run("memory", func(t *testing.T) {
		repo, closeFn, err := OpenRepository(ctx, &config.Config{StoreDriver: config.DriverMemory}, log)
		require.NoError(t, err)
		assert.IsType(t, &metadata.MemoryRepository{}, repo)
		assert.NoError(t, closeFn())
	})

	t.Run("sqlite", func(t *testing.T) {
		cfg := &config.Config{StoreDriver: config.DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "x.db")}
		repo, closeFn, err := OpenRepository(ctx, cfg, log)
		require.NoError(t, err)
		defer closeFn()

		require.NoError(t, repo.Set(ctx, "users", []byte("[]")))
		v, err := repo.Get(ctx, "users")
		require.NoError(t, err)
		assert.Equal(t, []byte("[]"), v)
	})

	t.Run("redis", func(t *testing.T) {
		fc := &fakeRedisConn{}
		orig := newRedisClient
		defer func() { newRedisClient = orig }()
		newRedisClient = func(*config.Config) redisConn { return fc }

		repo, closeFn, err := OpenRepository(ctx, &config.Config{StoreDriver: config.DriverRedis, RedisPrefix: "p:"}, log)
		require.NoError(t, err)
		assert.IsType(t, &metadata.RedisRepository{}, repo)
		require.NoError(t, closeFn())
		assert.True(t, fc.closed)
	})

	t.Run("redis ping error", func(t *testing.T) {
		fc := &fakeRedisConn{pingErr: errors.New("refused")}
		orig := newRedisClient
		defer func() { newRedisClient = orig }()
		newRedisClient = func(*config.Config) redisConn { return fc }

		_, _, err := OpenRepository(ctx, &config.Config{StoreDriver: config.DriverRedis}, log)
		require.Error(t, err)
		assert.True(t, fc.closed)
	})

	t.Run("s3", func(t *testing.T) {
		orig := newS3API
		defer func() { newS3API = orig }()
		newS3API = func(context.Context, *config.Config) (metadata.S3API, error) { return nil, nil }

		repo, _, err := OpenRepository(ctx, &config.Config{StoreDriver: config.DriverS3, S3Bucket: "b"}, log)
		require.NoError(t, err)
		assert.IsType(t, &metadata.S3Repository{}, repo)
	})

	t.Run("s3 config error", func(t *testing.T) {
		orig := newS3API
		defer func() { newS3API = orig }()
		newS3API = func(context.Context, *config.Config) (metadata.S3API, error) {
			return nil, errors.New("no creds")
		}

		_, _, err := OpenRepository(ctx, &config.Config{StoreDriver: config.DriverS3}, log)
		require.Error(t, err)
	})

	t.Run("unknown", func(t *testing.T) {
		_, _, err := OpenRepository(ctx, &config.Config{StoreDriver: "etcd"}, log)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown store driver "etcd"`)
	})
}

func TestOpenSQLite_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "tt.db")

	db, err := OpenSQLite(context.Background(), path)
	require.NoError(t, err)
	defer db.Close()

	assert.FileExists(t, path)
}
