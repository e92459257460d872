package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ADMIN_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "test-key", cfg.Admin.Key)
	assert.Equal(t, []string{
		"https://harwoodcarpentry.pro",
		"https://www.harwoodcarpentry.pro",
	}, cfg.CORS.AllowedOrigins)
	assert.Empty(t, cfg.Redis.Addr)
}

func TestLoadRequiresAdminKey(t *testing.T) {
	t.Setenv("ADMIN_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADMIN_KEY")
}

func TestAllowedOriginsTrimmed(t *testing.T) {
	t.Setenv("ADMIN_KEY", "k")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example , https://b.example ,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host: "db", Port: 5433, User: "u", Password: "p", Name: "harwood", SSLMode: "require",
		},
	}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=harwood sslmode=require", cfg.DSN())
}

func TestInvalidIntFallsBack(t *testing.T) {
	t.Setenv("ADMIN_KEY", "k")
	t.Setenv("DB_PORT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5432, cfg.Database.Port)
}
