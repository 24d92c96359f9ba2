package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFrom(t *testing.T, dir string) *Config {
	t.Helper()
	viper.Reset()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		os.Chdir(wd)
		viper.Reset()
	})

	cfg, err := Load()
	require.NoError(t, err)
	return cfg
}

func TestLoadDefaults(t *testing.T) {
	cfg := loadFrom(t, t.TempDir())

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "./comics.db", cfg.Database.Path)
	assert.Equal(t, "us-east-1", cfg.S3.Region)
	assert.Equal(t, "comics-media", cfg.S3.Bucket)
	assert.Equal(t, 60, cfg.Media.CleanupInterval)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`
port: 9000
database:
  path: /data/comics.db
s3:
  endpoint: http://minio:9000
  bucket: pages
media:
  cleanup_interval: 15
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), content, 0o644))

	cfg := loadFrom(t, dir)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "/data/comics.db", cfg.Database.Path)
	assert.Equal(t, "http://minio:9000", cfg.S3.Endpoint)
	assert.Equal(t, "pages", cfg.S3.Bucket)
	assert.Equal(t, 15, cfg.Media.CleanupInterval)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("COMICS_PORT", "7070")
	t.Setenv("COMICS_DATABASE_PATH", "/tmp/override.db")

	cfg := loadFrom(t, t.TempDir())
	assert.Equal(t, 7070, cfg.Port)
	assert.Equal(t, "/tmp/override.db", cfg.Database.Path)
}
