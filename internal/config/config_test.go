package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"filescout/internal/config"
	"filescout/internal/errors"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create a temporary YAML config file
func createTestYAML(t *testing.T, content string) string {
	t.Helper()
	tmpFile, err := os.CreateTemp(t.TempDir(), "config-*.yaml")
	require.NoError(t, err)
	_, err = tmpFile.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, tmpFile.Close())
	return tmpFile.Name()
}

const (
	validYAML = `
start_dir: /srv/data
theme:
  palette: 4
listing:
  ignore: ["*.tmp", ".git"]
  show_hidden: false
preview:
  max_bytes: 4096
crypto:
  key_env: MY_KEY
  suffix: .sealed
jobs:
  notify_buffer: 8
watch:
  enabled: false
log:
  file: ""
  debug: true
`
	invalidSyntaxYAML = `
theme:
  palette: [1, 2
`
	invalidValueYAML = `
theme:
  palette: 12
`
	invalidGlobYAML = `
listing:
  ignore: ["[unclosed"]
`
)

func TestLoad(t *testing.T) {
	t.Run("load valid config", func(t *testing.T) {
		cfg, err := config.Load(createTestYAML(t, validYAML), nil)
		require.NoError(t, err)

		assert.Equal(t, "/srv/data", cfg.StartDir)
		assert.Equal(t, 4, cfg.Theme.Palette)
		assert.Equal(t, []string{"*.tmp", ".git"}, cfg.Listing.Ignore)
		assert.False(t, cfg.Listing.ShowHidden)
		assert.Equal(t, int64(4096), cfg.Preview.MaxBytes)
		assert.Equal(t, "MY_KEY", cfg.Crypto.KeyEnv)
		assert.Equal(t, ".sealed", cfg.Crypto.Suffix)
		assert.Equal(t, "filescout", cfg.Crypto.Salt, "unset keys keep their defaults")
		assert.Equal(t, 8, cfg.Jobs.NotifyBuffer)
		assert.False(t, cfg.Watch.Enabled)
		assert.Empty(t, cfg.Log.File)
		assert.True(t, cfg.Log.Debug)
	})

	t.Run("explicit file must exist", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "does_not_exist.yaml"), nil)
		require.Error(t, err)
		assert.Equal(t, errors.ConfigNotFound, errors.KindOf(err))
	})

	t.Run("invalid YAML syntax", func(t *testing.T) {
		_, err := config.Load(createTestYAML(t, invalidSyntaxYAML), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error parsing config file")
	})

	t.Run("invalid value", func(t *testing.T) {
		_, err := config.Load(createTestYAML(t, invalidValueYAML), nil)
		require.Error(t, err)
		assert.True(t, errors.IsInvalidConfig(err))
		assert.Contains(t, err.Error(), "theme.palette")
	})

	t.Run("invalid ignore pattern", func(t *testing.T) {
		_, err := config.Load(createTestYAML(t, invalidGlobYAML), nil)
		require.Error(t, err)
		assert.True(t, errors.IsInvalidConfig(err))
	})
}

func TestLoadPrecedence(t *testing.T) {
	path := createTestYAML(t, validYAML)

	t.Setenv("FILESCOUT_JOBS_NOTIFY_BUFFER", "3")
	t.Setenv("FILESCOUT_CRYPTO_SALT", "from-env")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Bool("debug", false, "")
	flags.String("log-file", "", "")
	flags.String("key-file", "", "")
	flags.Bool("no-watch", false, "")
	require.NoError(t, flags.Parse([]string{"--log-file", "/tmp/fs.log", "--key-file", "/etc/fs.key"}))

	cfg, err := config.Load(path, flags)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Jobs.NotifyBuffer)
	assert.Equal(t, "from-env", cfg.Crypto.Salt)
	assert.Equal(t, "/tmp/fs.log", cfg.Log.File)
	assert.Equal(t, "/etc/fs.key", cfg.Crypto.KeyFile)
	assert.True(t, cfg.Log.Debug, "unset flag does not override the file")
}

func TestNoWatchFlag(t *testing.T) {
	path := createTestYAML(t, "watch:\n  enabled: true\n")
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Bool("no-watch", false, "")
	require.NoError(t, flags.Parse([]string{"--no-watch"}))

	cfg, err := config.Load(path, flags)
	require.NoError(t, err)
	assert.False(t, cfg.Watch.Enabled)
}

func TestDefaults(t *testing.T) {
	cfg := config.New()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, ".", cfg.StartDir)
	assert.True(t, cfg.Listing.ShowHidden)
	assert.Equal(t, int64(1<<20), cfg.Preview.MaxBytes)
	assert.Equal(t, "FILESCOUT_KEY", cfg.Crypto.KeyEnv)
	assert.Equal(t, ".enc", cfg.Crypto.Suffix)
	assert.Equal(t, 1, cfg.Jobs.NotifyBuffer)
	assert.True(t, cfg.Watch.Enabled)
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *config.Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *config.Config) {}},
		{name: "last palette", mutate: func(c *config.Config) { c.Theme.Palette = config.PaletteSize - 1 }},
		{name: "negative palette", mutate: func(c *config.Config) { c.Theme.Palette = -1 }, wantErr: true},
		{name: "palette out of range", mutate: func(c *config.Config) { c.Theme.Palette = config.PaletteSize }, wantErr: true},
		{name: "zero preview", mutate: func(c *config.Config) { c.Preview.MaxBytes = 0 }, wantErr: true},
		{name: "zero buffer", mutate: func(c *config.Config) { c.Jobs.NotifyBuffer = 0 }, wantErr: true},
		{name: "empty suffix", mutate: func(c *config.Config) { c.Crypto.Suffix = "" }, wantErr: true},
		{name: "suffix with separator", mutate: func(c *config.Config) { c.Crypto.Suffix = "/x" }, wantErr: true},
		{name: "bad glob", mutate: func(c *config.Config) { c.Listing.Ignore = []string{"{a"} }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.IsInvalidConfig(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}

	var nilCfg *config.Config
	assert.Error(t, nilCfg.Validate())
}

func TestSaveConfigRoundTrip(t *testing.T) {
	cfg := config.New()
	cfg.Theme.Palette = 2
	cfg.Listing.Ignore = []string{"*.bak"}
	cfg.Log.File = ""

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, config.SaveConfig(cfg, path))

	loaded, err := config.Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))
	err = config.SaveConfig(cfg, filepath.Join(blocker, "config.yaml"))
	assert.ErrorContains(t, err, "failed to create config directory")
}
