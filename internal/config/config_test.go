package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		// Given: a config file that sets nothing
		path := writeConfig(t, "{}\n")

		// When: loading it
		conf, err := Load(path)

		// Then: every key has its default
		require.NoError(t, err)
		assert.Equal(t, "info", conf.LogLevel)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, "9091", conf.SocketPort)
		assert.Equal(t, StorageRedis, conf.Storage)
		assert.Equal(t, 24*time.Hour, conf.SessionTTL)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
		assert.Empty(t, conf.Postgres.DSN)
		assert.Empty(t, conf.Kafka.Brokers)
		assert.Equal(t, time.Second, conf.Bot.CheckersDelay)
		assert.Equal(t, 500*time.Millisecond, conf.Bot.TicTacToeDelay)
		assert.Equal(t, time.Second, conf.Bot.ConnectFourDelay)
		assert.Equal(t, "winblock", conf.Bot.TicTacToeStrategy)
		assert.Equal(t, "random", conf.Bot.ConnectFourStrategy)
	})

	t.Run("File values", func(t *testing.T) {
		path := writeConfig(t, `
log-level: debug
storage: memory
session-ttl: 30m
redis:
  host: cache
  port: "6380"
postgres:
  dsn: postgres://user:pass@db/games
kafka:
  brokers: ["k1:9092", "k2:9092"]
  topic: events
bot:
  tictactoe-delay: 750ms
  connectfour-strategy: winblock
`)

		conf, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, StorageMemory, conf.Storage)
		assert.Equal(t, 30*time.Minute, conf.SessionTTL)
		assert.Equal(t, "cache:6380", conf.Redis.GetRedisAddr())
		assert.Equal(t, "postgres://user:pass@db/games", conf.Postgres.DSN)
		assert.Equal(t, []string{"k1:9092", "k2:9092"}, conf.Kafka.Brokers)
		assert.Equal(t, "events", conf.Kafka.Topic)
		assert.Equal(t, 750*time.Millisecond, conf.Bot.TicTacToeDelay)
		assert.Equal(t, "winblock", conf.Bot.ConnectFourStrategy)
	})

	t.Run("Environment overrides the file", func(t *testing.T) {
		path := writeConfig(t, "http-port: \"8000\"\n")
		t.Setenv("HTTP_PORT", "8001")

		conf, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, "8001", conf.HTTPPort)
	})

	t.Run("Environment only", func(t *testing.T) {
		t.Setenv("STORAGE", StorageMemory)

		conf, err := Load("")

		require.NoError(t, err)
		assert.Equal(t, StorageMemory, conf.Storage)
	})

	t.Run("Unknown storage", func(t *testing.T) {
		path := writeConfig(t, "storage: sqlite\n")

		_, err := Load(path)

		require.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("Negative delay", func(t *testing.T) {
		path := writeConfig(t, "bot:\n  checkers-delay: -1s\n")

		_, err := Load(path)

		require.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))

		require.Error(t, err)
	})
}

func TestResolvePath(t *testing.T) {
	t.Run("Environment variable wins", func(t *testing.T) {
		t.Setenv(PathEnv, "/etc/alphagames/config.yml")

		assert.Equal(t, "/etc/alphagames/config.yml", ResolvePath())
	})

	t.Run("Working directory", func(t *testing.T) {
		t.Setenv(PathEnv, "")
		chdir(t, t.TempDir())
		require.NoError(t, os.WriteFile(localConfigFile, []byte("{}\n"), 0o600))

		assert.Equal(t, localConfigFile, ResolvePath())
	})
}

func chdir(t *testing.T, dir string) {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))

	t.Cleanup(func() {
		_ = os.Chdir(wd)
	})
}
