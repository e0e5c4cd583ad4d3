package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DEV_MODE", "true")

	cfg := Load()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "rollhouse.sqlite", cfg.DBPath)
	assert.Equal(t, 30, cfg.RoundInterval)
	assert.Equal(t, 600, cfg.RoundLifetime)
	assert.Equal(t, 60, cfg.SweepInterval)
	assert.True(t, cfg.DevMode)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DEV_MODE", "false")
	t.Setenv("API_KEY", "k")
	t.Setenv("ADMIN_TOKEN", "a")
	t.Setenv("ADDR", ":9999")
	t.Setenv("DB_PATH", "/tmp/x.sqlite")
	t.Setenv("ROUND_INTERVAL", "5")
	t.Setenv("GAMES_MANIFEST", "games.yaml")

	cfg := Load()
	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, "/tmp/x.sqlite", cfg.DBPath)
	assert.Equal(t, 5, cfg.RoundInterval)
	assert.False(t, cfg.DevMode)
	assert.Equal(t, "games.yaml", cfg.GamesManifest)
}

func TestLoadManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "games.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
games:
  - id: craps
    min_bet: 10
    max_bet: 50000
  - id: sumroll
    disabled: true
`), 0o644))

	cfg := &Config{GamesManifest: path}
	m, err := cfg.LoadManifest()
	require.NoError(t, err)
	require.Len(t, m.Games, 2)

	spec := m.Spec("craps")
	require.NotNil(t, spec)
	assert.Equal(t, uint64(10), spec.MinBet)
	assert.Equal(t, uint64(50000), spec.MaxBet)
	assert.False(t, spec.Disabled)

	assert.True(t, m.Spec("sumroll").Disabled)
	assert.Nil(t, m.Spec("baccarat"))
}

func TestLoadManifestMissing(t *testing.T) {
	cfg := &Config{}
	m, err := cfg.LoadManifest()
	require.NoError(t, err)
	assert.Empty(t, m.Games, "no manifest path means defaults for every game")

	cfg = &Config{GamesManifest: "/nonexistent/games.yaml"}
	_, err = cfg.LoadManifest()
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("games: {not: a list}"), 0o644))
	cfg = &Config{GamesManifest: bad}
	_, err = cfg.LoadManifest()
	assert.Error(t, err)
}
