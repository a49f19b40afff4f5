package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_parseEnv(t *testing.T) {
	t.Setenv("SECRET_KEY", "env-secret")
	t.Setenv("ALGORITHM", "HS512")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "5")
	t.Setenv("DATABASE_DRIVER", "pgx")
	t.Setenv("DATABASE_DSN", "postgres://env")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://x.example")

	cfg := &Config{}
	cfg.LoadDefaults()
	require.NoError(t, parseEnv(cfg, ""))

	assert.Equal(t, "env-secret", cfg.SecretKey)
	assert.Equal(t, "HS512", cfg.Algorithm)
	assert.Equal(t, 5*time.Minute, cfg.AccessTokenValidityDuration)
	assert.Equal(t, "pgx", cfg.DatabaseDriver)
	assert.Equal(t, "postgres://env", cfg.DatabaseDSN)
	assert.Equal(t, "http://x.example", cfg.CORSAllowedOrigins)
	assert.Equal(t, ":8080", cfg.EndpointAddr, "unset variables keep earlier values")
}

func Test_parseEnv_BadNumber(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "thirty")

	cfg := &Config{}
	require.Error(t, parseEnv(cfg, ""))
}

func Test_parseEnv_DotenvFile(t *testing.T) {
	require.NoError(t, os.Unsetenv("LOG_LEVEL"))
	t.Cleanup(func() { _ = os.Unsetenv("LOG_LEVEL") })

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("LOG_LEVEL=debug\n"), 0o600))

	cfg := &Config{}
	cfg.LoadDefaults()
	require.NoError(t, parseEnv(cfg, path))
	assert.Equal(t, "debug", cfg.LogLevel)
}

func Test_parseEnv_MissingExplicitDotenv(t *testing.T) {
	cfg := &Config{}
	require.Error(t, parseEnv(cfg, filepath.Join(t.TempDir(), "nope.env")))
}

func TestEnvUsage_ListsVariables(t *testing.T) {
	help := EnvUsage()
	assert.Contains(t, help, "SECRET_KEY")
	assert.Contains(t, help, "ACCESS_TOKEN_EXPIRE_MINUTES")
}
