package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_FileWithDefaults(t *testing.T) {
	path := writeConfig(t, `
http:
  address: ":8080"
storage:
  driver: postgres
database:
  host: db
  password: secret
auth:
  jwt_secret: s3cr3t
kafka:
  brokers: ["k1:9092", "k2:9092"]
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Address)
	assert.Equal(t, ":5001", cfg.GRPC.Address)
	assert.Equal(t, StoragePostgres, cfg.Storage.Driver)
	assert.Equal(t, "host=db port=5432 user=flightdesk password=secret dbname=flightdesk sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "bookings", cfg.Kafka.BookingTopic)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL())
	assert.Equal(t, 30*time.Second, cfg.Booking.FlightsCacheDuration())
	assert.Equal(t, 24*time.Hour, cfg.Booking.IdempotencyDuration())
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "auth:\n  jwt_secret: from-file\n")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfig_MissingFileUsesEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-only")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "env-only", cfg.Auth.JWTSecret)
	assert.Equal(t, StorageMemory, cfg.Storage.Driver)
	assert.Equal(t, ":5000", cfg.HTTP.Address)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Run("no secret", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, "http:\n  address: \":1\"\n"))
		assert.ErrorContains(t, err, "jwt_secret")
	})
	t.Run("unknown driver", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, "storage:\n  driver: sqlite\nauth:\n  jwt_secret: x\n"))
		assert.ErrorContains(t, err, "sqlite")
	})
	t.Run("bad yaml", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, "http: [\n"))
		assert.Error(t, err)
	})
}
