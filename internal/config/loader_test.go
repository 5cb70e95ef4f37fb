package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	require.Equal(t, ":8080", cfg.ListenAddr)
	require.Equal(t, int64(32<<20), cfg.MaxUploadBytes)
	require.Equal(t, "./migrations", cfg.MigrationsPath)
	require.Equal(t, "rximport", cfg.Database.DBName)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("RX_SERVER_LISTEN_ADDR", ":9090")
	t.Setenv("RX_DATABASE_HOST", "db.internal")
	t.Setenv("RX_DATABASE_PORT", "5433")
	t.Setenv("RX_MIGRATIONS_PATH", "/srv/migrations")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	require.Equal(t, ":9090", cfg.ListenAddr)
	require.Equal(t, "db.internal", cfg.Database.Host)
	require.Equal(t, 5433, cfg.Database.Port)
	require.Equal(t, "/srv/migrations", cfg.MigrationsPath)
	// Unset keys keep their defaults.
	require.Equal(t, "postgres", cfg.Database.User)
}
