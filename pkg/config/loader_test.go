package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmrmedia/obsidian-landing/pkg/config"
)

type defaultsConfig struct {
	Name    string        `env:"TEST_CFG_DEFAULT_NAME" envDefault:"Obsidian Denver"`
	Timeout time.Duration `env:"TEST_CFG_DEFAULT_TIMEOUT" envDefault:"10s"`
	Retries int           `env:"TEST_CFG_DEFAULT_RETRIES" envDefault:"0"`
}

type envConfig struct {
	URL string `env:"TEST_CFG_URL"`
}

type cachedConfig struct {
	Value string `env:"TEST_CFG_CACHED"`
}

type requiredConfig struct {
	Value string `env:"TEST_CFG_REQUIRED,required"`
}

type validatedConfig struct {
	Port int `env:"TEST_CFG_PORT" envDefault:"0"`
}

func (c *validatedConfig) Validate() error {
	if c.Port <= 0 {
		return errors.New("port must be positive")
	}
	return nil
}

type fileConfig struct {
	Value string `env:"TEST_CFG_FROM_FILE"`
	Other string `env:"TEST_CFG_FROM_FILE_OTHER"`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg defaultsConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "Obsidian Denver", cfg.Name)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, 0, cfg.Retries)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("TEST_CFG_URL", "https://hooks.zapier.com/hooks/catch/1/abc/")

	var cfg envConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "https://hooks.zapier.com/hooks/catch/1/abc/", cfg.URL)
}

func TestLoad_Cached(t *testing.T) {
	t.Setenv("TEST_CFG_CACHED", "first")

	var first cachedConfig
	require.NoError(t, config.Load(&first))

	t.Setenv("TEST_CFG_CACHED", "second")

	var second cachedConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "first", second.Value)

	config.ResetCache()
	var third cachedConfig
	require.NoError(t, config.Load(&third))
	assert.Equal(t, "second", third.Value)
}

func TestLoad_Required(t *testing.T) {
	os.Unsetenv("TEST_CFG_REQUIRED")

	var cfg requiredConfig
	require.ErrorIs(t, config.Load(&cfg), config.ErrParsingConfig)

	t.Setenv("TEST_CFG_REQUIRED", "present")
	require.NoError(t, config.Load(&cfg), "failed parses are retried")
	assert.Equal(t, "present", cfg.Value)
}

func TestLoad_Validator(t *testing.T) {
	var cfg validatedConfig
	require.ErrorIs(t, config.Load(&cfg), config.ErrInvalidConfig)

	t.Setenv("TEST_CFG_PORT", "8080")
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, 8080, cfg.Port)
}

func TestLoad_InvalidInput(t *testing.T) {
	assert.ErrorIs(t, config.Load[envConfig](nil), config.ErrNilPointer)

	var s string
	assert.ErrorIs(t, config.Load(&s), config.ErrInvalidConfigType)
}

func TestMustLoad(t *testing.T) {
	os.Unsetenv("TEST_CFG_REQUIRED")
	config.ResetCache()

	assert.Panics(t, func() {
		var cfg requiredConfig
		config.MustLoad(&cfg)
	})
	assert.NotPanics(t, func() {
		var cfg defaultsConfig
		config.MustLoad(&cfg)
	})
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, ".env")
	second := filepath.Join(dir, ".env.local")
	require.NoError(t, os.WriteFile(first, []byte("TEST_CFG_FROM_FILE=\"from file\"\n"), 0o600))
	require.NoError(t, os.WriteFile(second, []byte("TEST_CFG_FROM_FILE=ignored\nTEST_CFG_FROM_FILE_OTHER=other\n"), 0o600))

	os.Unsetenv("TEST_CFG_FROM_FILE")
	os.Unsetenv("TEST_CFG_FROM_FILE_OTHER")
	t.Cleanup(func() {
		os.Unsetenv("TEST_CFG_FROM_FILE")
		os.Unsetenv("TEST_CFG_FROM_FILE_OTHER")
	})

	require.NoError(t, config.LoadEnv(first, second))

	var cfg fileConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "from file", cfg.Value)
	assert.Equal(t, "other", cfg.Other)

	assert.ErrorIs(t, config.LoadEnv(filepath.Join(dir, "missing.env")), config.ErrLoadingEnvFile)
	assert.Panics(t, func() { config.MustLoadEnv(filepath.Join(dir, "missing.env")) })
}
