package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/localize/pkg/config"
)

type testConfig struct {
	Name     string        `env:"NAME" envDefault:"default_value"`
	Count    int           `env:"COUNT" envDefault:"42"`
	Enabled  bool          `env:"ENABLED" envDefault:"true"`
	Cultures []string      `env:"CULTURES" envSeparator:","`
	Timeout  time.Duration `env:"TIMEOUT" envDefault:"5s"`
}

type requiredConfig struct {
	Value string `env:"REQUIRED_VALUE,required"`
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("values from environment", func(t *testing.T) {
		t.Parallel()

		var cfg testConfig
		err := config.Load(&cfg, config.WithEnvironment(map[string]string{
			"NAME":     "custom",
			"COUNT":    "7",
			"ENABLED":  "false",
			"CULTURES": "en,fr-FR",
		}))
		require.NoError(t, err)
		assert.Equal(t, "custom", cfg.Name)
		assert.Equal(t, 7, cfg.Count)
		assert.False(t, cfg.Enabled)
		assert.Equal(t, []string{"en", "fr-FR"}, cfg.Cultures)
		assert.Equal(t, 5*time.Second, cfg.Timeout)
	})

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		var cfg testConfig
		require.NoError(t, config.Load(&cfg, config.WithEnvironment(map[string]string{})))
		assert.Equal(t, "default_value", cfg.Name)
		assert.Equal(t, 42, cfg.Count)
		assert.True(t, cfg.Enabled)
		assert.Empty(t, cfg.Cultures)
	})

	t.Run("prefix", func(t *testing.T) {
		t.Parallel()

		var cfg testConfig
		err := config.Load(&cfg,
			config.WithPrefix("APP_"),
			config.WithEnvironment(map[string]string{"APP_NAME": "prefixed", "NAME": "ignored"}),
		)
		require.NoError(t, err)
		assert.Equal(t, "prefixed", cfg.Name)
	})

	t.Run("missing required value", func(t *testing.T) {
		t.Parallel()

		var cfg requiredConfig
		err := config.Load(&cfg, config.WithEnvironment(map[string]string{}))
		require.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("invalid value", func(t *testing.T) {
		t.Parallel()

		var cfg testConfig
		err := config.Load(&cfg, config.WithEnvironment(map[string]string{"COUNT": "many"}))
		require.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("nil pointer", func(t *testing.T) {
		t.Parallel()

		require.ErrorIs(t, config.Load[testConfig](nil), config.ErrNilPointer)
	})
}

func TestLoad_EnvFiles(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(file, []byte("LOCALIZE_CONFIG_TEST_VALUE=from_file\n"), 0o600))

	type fileConfig struct {
		Value string `env:"LOCALIZE_CONFIG_TEST_VALUE"`
	}

	t.Cleanup(func() { _ = os.Unsetenv("LOCALIZE_CONFIG_TEST_VALUE") })

	var cfg fileConfig
	require.NoError(t, config.Load(&cfg, config.WithEnvFiles(file)))
	assert.Equal(t, "from_file", cfg.Value)

	err := config.Load(&cfg, config.WithEnvFiles(filepath.Join(dir, "missing.env")))
	require.ErrorIs(t, err, config.ErrEnvFile)
}

func TestMustLoad(t *testing.T) {
	t.Parallel()

	var cfg requiredConfig
	assert.Panics(t, func() {
		config.MustLoad(&cfg, config.WithEnvironment(map[string]string{}))
	})
}
