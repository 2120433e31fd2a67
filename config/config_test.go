package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"APP_NAME", "STORAGE_BACKEND", "SQLITE_PATH", "CACHE_ENABLED", "USER_CACHE_TTL", "MAIL_SEND_ENABLED", "ELASTICSEARCH_ADDRS"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "user-registration", cfg.AppName)
	assert.Equal(t, StorageMemory, cfg.StorageBackend)
	assert.Equal(t, "users.db", cfg.SQLitePath)
	assert.False(t, cfg.CacheEnabled)
	assert.Equal(t, 10*time.Minute, cfg.UserCacheTTL)
	assert.False(t, cfg.MailSendEnabled)
	assert.Empty(t, cfg.ESAddrs())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "Postgres")
	t.Setenv("CACHE_ENABLED", "true")
	t.Setenv("USER_CACHE_TTL", "30s")
	t.Setenv("DB_MAX_CONNS", "25")
	t.Setenv("CORS_ALLOWED_ORIGINS", " http://a.test , ,http://b.test")

	cfg := Load()

	assert.Equal(t, StoragePostgres, cfg.StorageBackend)
	assert.True(t, cfg.CacheEnabled)
	assert.Equal(t, 30*time.Second, cfg.UserCacheTTL)
	assert.Equal(t, int32(25), cfg.DBMaxConns)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins())
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("CACHE_ENABLED", "maybe")
	t.Setenv("USER_CACHE_TTL", "soon")
	t.Setenv("REDIS_DB", "x")

	cfg := Load()

	assert.False(t, cfg.CacheEnabled)
	assert.Equal(t, 10*time.Minute, cfg.UserCacheTTL)
	assert.Equal(t, 0, cfg.RedisDB)
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "5432", DBName: "d", DBSSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@h:5432/d?sslmode=disable", cfg.PostgresDSN())
}

func TestLoad_SQLite(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "sqlite")
	t.Setenv("SQLITE_PATH", "/var/lib/users.db")

	cfg := Load()

	assert.Equal(t, StorageSQLite, cfg.StorageBackend)
	assert.Equal(t, "/var/lib/users.db", cfg.SQLitePath)
}
