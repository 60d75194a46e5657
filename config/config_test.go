package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/leeforge/devkit/env_mode"
	"github.com/leeforge/devkit/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func testOptions(dir string) ConfigOptions {
	opts := DefaultConfigOptions()
	opts.BasePath = dir
	return opts
}

func TestLoadWithoutFilesUsesDefaults(t *testing.T) {
	cfg, err := Load(testOptions(t.TempDir()))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.True(t, cfg.Log.LogInTerminal)
	assert.Equal(t, 75, cfg.Image.JPEGQuality)
	assert.Equal(t, float32(80), cfg.Image.WebPQuality)
	assert.Equal(t, 16, cfg.Password.Length)
}

func TestLoadMergesLocalAndModeFiles(t *testing.T) {
	t.Setenv(env_mode.ENV_MODE_KEY, "test")
	dir := t.TempDir()

	writeFile(t, filepath.Join(dir, "devkit.yaml"), `
log:
  level: info
image:
  jpeg_quality: 90
  base_dir: /srv/images
password:
  length: 24
`)
	writeFile(t, filepath.Join(dir, "devkit.local.yaml"), `
image:
  jpeg_quality: 60
`)
	writeFile(t, filepath.Join(dir, "devkit.test.yaml"), `
image:
  webp_lossy: true
`)

	c, err := NewConfig(testOptions(dir))
	require.NoError(t, err)
	assert.Len(t, c.Files(), 3)

	cfg, err := Load(testOptions(dir))
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 60, cfg.Image.JPEGQuality)
	assert.True(t, cfg.Image.WebPLossy)
	assert.Equal(t, "/srv/images", cfg.Image.BaseDir)
	assert.Equal(t, 24, cfg.Password.Length)
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "devkit.yaml"), "image:\n  jpeg_quality: 90\n")

	t.Setenv("DEVKIT_IMAGE_JPEG_QUALITY", "40")
	t.Setenv("DEVKIT_PASSWORD_LENGTH", "32")
	t.Setenv("DEVKIT_LOG_LOG_IN_TERMINAL", "false")

	cfg, err := Load(testOptions(dir))
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Image.JPEGQuality)
	assert.Equal(t, 32, cfg.Password.Length)
	assert.False(t, cfg.Log.LogInTerminal)
}

func TestLoadExplicitFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "custom.yml")
	writeFile(t, file, "password:\n  length: 8\n")
	writeFile(t, filepath.Join(dir, "devkit.yaml"), "password:\n  length: 30\n")

	opts := testOptions(dir)
	opts.ConfigFile = file
	cfg, err := Load(opts)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Password.Length)

	opts.ConfigFile = filepath.Join(dir, "missing.yaml")
	_, err = Load(opts)
	assert.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "devkit.yaml"), "image:\n  jpeg_quality: 150\n")

	_, err := Load(testOptions(dir))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeInvalidOptions))
	assert.Contains(t, err.Error(), "jpeg_quality must be less than or equal to 100")
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "devkit.yaml"), "image: [unclosed\n")

	_, err := Load(testOptions(dir))
	assert.Error(t, err)
}

func TestEnvName(t *testing.T) {
	assert.Equal(t, "DEVKIT_IMAGE_JPEG_QUALITY", EnvName("DEVKIT", "image.jpeg_quality"))
	assert.Equal(t, "LOG_MAX_AGE", EnvName("", "log.max-age"))
}

func TestKeysOf(t *testing.T) {
	keys := KeysOf(Default())
	assert.Contains(t, keys, "log.level")
	assert.Contains(t, keys, "log.log-in-terminal")
	assert.Contains(t, keys, "image.jpeg_quality")
	assert.Contains(t, keys, "password.length")
	assert.Nil(t, KeysOf("not a struct"))
}
