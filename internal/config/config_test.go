package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresBotToken(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")
	t.Setenv("POSTGRES_DSN", "postgres://localhost:5432/bot")

	cfg, err := Load()
	require.Error(t, err)
	require.Nil(t, cfg)
	assert.Contains(t, err.Error(), "BOT_TOKEN")
}

func TestLoadRequiresPostgresDSN(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("POSTGRES_DSN", "")

	cfg, err := Load()
	require.Error(t, err)
	require.Nil(t, cfg)
	assert.Contains(t, err.Error(), "POSTGRES_DSN")
}

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("POSTGRES_DSN", "postgres://localhost:5432/bot")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "123:abc", cfg.Bot.Token)
	assert.Equal(t, "postgres://localhost:5432/bot", cfg.Postgres.DSN)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.OpsAddr())
	assert.Equal(t, 10*time.Second, cfg.Bot.PollTimeout())
	assert.Equal(t, time.Hour, cfg.Redis.StateTTL())
}
