package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsFromEnv(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("REDIS_ADDR", "redis:6380")

	cfg, err := Load[Config]()
	require.NoError(t, err)

	assert.Equal(t, "quiz-import", cfg.App.Name)
	assert.Equal(t, "redis:6380", cfg.Infrastructure.Redis.Addr)
	assert.Equal(t, 30*time.Minute, cfg.Import.PreviewTTL)
	assert.Equal(t, "fs", cfg.Storage.Driver)
	assert.False(t, cfg.IsProd())
}

func TestLoadYamlFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
app:
  env: prod
import:
  preview_ttl: 10m
storage:
  driver: minio
  minio:
    endpoint: minio:9000
    bucket: soal
`), 0o600))
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load[Config]()
	require.NoError(t, err)

	assert.True(t, cfg.IsProd())
	assert.Equal(t, 10*time.Minute, cfg.Import.PreviewTTL)
	assert.Equal(t, "minio", cfg.Storage.Driver)
	assert.Equal(t, "soal", cfg.Storage.Minio.Bucket)
	assert.Equal(t, ":8080", cfg.Http.Addr)
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load[Config]()
	assert.Error(t, err)
	assert.Panics(t, func() { MustLoad[Config]() })
}
