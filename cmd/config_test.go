package cmd_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"vacancybot/cmd"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := cmd.LoadConfig("")

	require.NoError(t, err)
	assert.Equal(t, cmd.DefaultConfig(), cfg)
	assert.Equal(t, 30*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 5, cfg.Search.PageSize)
	assert.Equal(t, 20, cfg.Delivery.BatchSize)
}

func TestLoadConfig_FileThenEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "vacancybot.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[http]
port = "9090"

[cache]
ttl = "10m"

[hh]
user_agent = "from-file"

[delivery]
schedule = "30 * * * * *"
concurrency = 4
`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TELEGRAM_BOT_TOKEN=from-dotenv\n"), 0o600))

	t.Cleanup(func() { _ = os.Unsetenv("TELEGRAM_BOT_TOKEN") })
	t.Setenv("HH_USER_AGENT", "from-env")
	t.Setenv("REDIS_DB", "2")

	cfg, err := cmd.LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.HTTP.Port)
	assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "from-env", cfg.HH.UserAgent)
	assert.Equal(t, "from-dotenv", cfg.Telegram.Token)
	assert.Equal(t, "30 * * * * *", cfg.Delivery.Schedule)
	assert.Equal(t, 4, cfg.Delivery.Concurrency)
	assert.Equal(t, 20, cfg.Delivery.BatchSize, "untouched keys keep defaults")
	assert.Equal(t, 2, cfg.Redis.DB)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := cmd.LoadConfig("missing.toml")
	require.Error(t, err)

	t.Setenv("REDIS_DB", "first")
	_, err = cmd.LoadConfig("")
	require.Error(t, err)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	dsn := cmd.DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", Name: "n", SslMode: "disable"}.DSN()

	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", dsn)
}
