package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func resetArgs(t *testing.T) {
	t.Helper()
	orig := os.Args
	os.Args = []string{"server"}
	t.Cleanup(func() { os.Args = orig })
}

func TestLoadConfig_Defaults(t *testing.T) {
	resetArgs(t)

	cfg := LoadConfig()

	require.Equal(t, ":8080", cfg.EndpointAddr)
	require.Equal(t, 30*time.Minute, cfg.AccessTokenValidityDuration)
	require.Equal(t, "*", cfg.CORSAllowedOrigins)
	require.Empty(t, cfg.GoogleUserInfoEndpoint)
}

func TestLoadConfig_EnvOverridesDefaults(t *testing.T) {
	resetArgs(t)
	t.Setenv("DATABASE_URL", "postgres://env/db")
	t.Setenv("SECRET_KEY", "env-secret")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "5")

	cfg := LoadConfig()

	require.Equal(t, "postgres://env/db", cfg.DatabaseDSN)
	require.Equal(t, "env-secret", cfg.SecretKey)
	require.Equal(t, 5*time.Minute, cfg.AccessTokenValidityDuration)
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	orig := os.Args
	os.Args = []string{"server", "-a", ":9999", "-t", "7"}
	t.Cleanup(func() { os.Args = orig })
	t.Setenv("ADDRESS", ":7777")

	cfg := LoadConfig()

	require.Equal(t, ":9999", cfg.EndpointAddr)
	require.Equal(t, 7*time.Minute, cfg.AccessTokenValidityDuration)
}

func TestParseJSON_OverlaysNamedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{
		"endpoint_addr": ":6060",
		"secret_key": "json-secret",
		"access_token_validity_duration": "45m"
	}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	orig := os.Args
	os.Args = []string{"server", "-c", path}
	t.Cleanup(func() { os.Args = orig })

	cfg := LoadConfig()

	require.Equal(t, ":6060", cfg.EndpointAddr)
	require.Equal(t, "json-secret", cfg.SecretKey)
	require.Equal(t, 45*time.Minute, cfg.AccessTokenValidityDuration)
}

func TestFilterArgs(t *testing.T) {
	args := []string{"-a", ":1111", "-x", "zzz", "--d=dsn", "-t", "10"}

	got := filterArgs(args, []string{"-a", "-t"})
	require.Equal(t, []string{"-a", ":1111", "-t", "10"}, got)

	got = filterArgs(args, []string{"--d"})
	require.Equal(t, []string{"--d=dsn"}, got)
}
