package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingDefaultFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_Overrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pictograph.yaml")
	data := `
log_level: debug
auto_process: true
store:
  backend: redis
  redis:
    addr: redis:6379
    ttl: 1h
http:
  port: 9090
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.AutoProcess)
	assert.Equal(t, StoreRedis, cfg.Store.Backend)
	assert.Equal(t, "redis:6379", cfg.Store.Redis.Addr)
	assert.Equal(t, time.Hour, cfg.Store.Redis.TTL)
	assert.Equal(t, "pictograph:graph:", cfg.Store.Redis.Prefix, "unset fields keep defaults")
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.HTTP.Metrics)
}

func TestLoad_InvalidBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pictograph.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store:\n  backend: etcd\n"), 0644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "etcd")
}

func TestLoad_EncryptionKeyFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(EnvEncryptionKey, "a2V5")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "a2V5", cfg.Store.EncryptionKey)
}
