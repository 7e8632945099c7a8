package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "reviews.db", cfg.DatabaseURL)
	assert.Equal(t, "https://www.giantbomb.com/api", cfg.CatalogBaseURL)
	assert.Equal(t, 15*time.Second, cfg.CatalogTimeout)
	assert.Equal(t, time.Hour, cfg.CatalogCacheTTL)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	content := "PORT=9090\nCATALOG_API_KEY=secret-key\nCATALOG_TIMEOUT=5s\nENV=production\nSESSION_SECRET=s3cret\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "secret-key", cfg.CatalogAPIKey)
	assert.Equal(t, 5*time.Second, cfg.CatalogTimeout)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "s3cret", cfg.SessionSecret)
}

func TestLoad_ProductionRequiresSessionSecret(t *testing.T) {
	t.Setenv("ENV", "production")

	_, err := Load(t.TempDir())
	assert.ErrorIs(t, err, ErrInsecureSessionSecret)

	t.Setenv("SESSION_SECRET", DefaultSessionSecret)
	_, err = Load(t.TempDir())
	assert.ErrorIs(t, err, ErrInsecureSessionSecret)

	t.Setenv("SESSION_SECRET", "a-real-secret")
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "a-real-secret", cfg.SessionSecret)
}

func TestLoad_DevelopmentAllowsDefaultSecret(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultSessionSecret, cfg.SessionSecret)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/reviews")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/reviews", cfg.DatabaseURL)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestConfig_Addr(t *testing.T) {
	assert.Equal(t, ":8080", (&Config{Port: "8080"}).Addr())
	assert.Equal(t, ":3000", (&Config{Port: ":3000"}).Addr())
}
