package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "LOG_LEVEL", "LOG_FORMAT", "SEED_FILE", "CORS_ALLOWED_ORIGINS", "EVENTS_BUFFER", "EVENTS_PING_INTERVAL", "SHUTDOWN_TIMEOUT"} {
		unsetEnv(t, key)
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 16, cfg.Events.Buffer)
	assert.Equal(t, 30*time.Second, cfg.Events.PingInterval)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Catalog.SeedFile)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "127.0.0.1:9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "console")
	t.Setenv("SEED_FILE", " seed.yaml ")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("EVENTS_BUFFER", "4")
	t.Setenv("EVENTS_PING_INTERVAL", "5s")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "seed.yaml", cfg.Catalog.SeedFile)
	assert.Equal(t, 4, cfg.Events.Buffer)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("EVENTS_BUFFER", "lots")
	_, err := Load()
	assert.ErrorContains(t, err, "parse env")

	t.Setenv("EVENTS_BUFFER", "0")
	_, err = Load()
	assert.ErrorContains(t, err, "EVENTS_BUFFER")
}

func TestListenAddr(t *testing.T) {
	cases := map[string]string{
		"":               ":8080",
		"3000":           ":3000",
		" 3000 ":         ":3000",
		":3000":          ":3000",
		"0.0.0.0:3000":   "0.0.0.0:3000",
		"localhost:0":    "localhost:0",
		"[::1]:8443":     "[::1]:8443",
		"127.0.0.1:0080": "127.0.0.1:80",
	}
	for in, want := range cases {
		got, err := listenAddr(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, bad := range []string{"80 80", "http", ":http", "70000", "127.0.0.1:-1", "a:b:c"} {
		_, err := listenAddr(bad)
		assert.Error(t, err, bad)
	}
}

func TestLoadRejectsInvalidPort(t *testing.T) {
	t.Setenv("PORT", "eighty")
	_, err := Load()
	assert.ErrorContains(t, err, "invalid PORT value")
}

// unsetEnv removes key for the duration of the test.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}
