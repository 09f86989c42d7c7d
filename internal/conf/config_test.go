package conf

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoadConfig_DefaultsAndEnv(t *testing.T) {
	chdirTemp(t)
	t.Setenv("DEVFOLIO_AUTH_JWT_SECRET", "s3cret")
	t.Setenv("DEVFOLIO_MONGODB_DATABASE", "site_test")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.Server.Port)
	require.Equal(t, "site_test", cfg.MongoDB.Database)
	require.Equal(t, 10*time.Second, cfg.MongoDB.Timeout)
	require.Equal(t, "devfolio-api", cfg.MongoDB.AppName)
	require.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	require.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	require.Equal(t, "*/5 * * * *", cfg.Dashboard.WarmSchedule)
}

func TestLoadConfig_File(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "config"), 0o755))
	yaml := []byte(`
server:
  port: ":9000"
auth:
  jwt_secret: from-file
  token_ttl: 2h
dashboard:
  warm_schedule: ""
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config", "config.yaml"), yaml, 0o644))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, ":9000", cfg.Server.Port)
	require.Equal(t, "from-file", cfg.Auth.JWTSecret)
	require.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	require.Empty(t, cfg.Dashboard.WarmSchedule)
}

func TestLoadConfig_RequiresSecret(t *testing.T) {
	chdirTemp(t)
	_, err := LoadConfig()
	require.Error(t, err)
}
