// Package config loads FileScout's settings from defaults, a YAML file,
// FILESCOUT_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"filescout/internal/errors"

	"github.com/gobwas/glob"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// PaletteSize is the number of colour pairs the palette key cycles through.
const PaletteSize = 9

// Config represents the application configuration structure.
type Config struct {
	// StartDir is the directory browsed when none is given on the command line.
	StartDir string `yaml:"start_dir" mapstructure:"start_dir"`
	Theme    struct {
		Palette int `yaml:"palette" mapstructure:"palette"` // Initial palette index
	} `yaml:"theme" mapstructure:"theme"`
	Listing struct {
		Ignore     []string `yaml:"ignore" mapstructure:"ignore"`           // Glob patterns hidden from every pane
		ShowHidden bool     `yaml:"show_hidden" mapstructure:"show_hidden"` // Show dotfiles
	} `yaml:"listing" mapstructure:"listing"`
	Preview struct {
		MaxBytes int64 `yaml:"max_bytes" mapstructure:"max_bytes"` // Read limit for the preview pane
	} `yaml:"preview" mapstructure:"preview"`
	Crypto struct {
		KeyEnv  string `yaml:"key_env" mapstructure:"key_env"`   // Variable holding the key
		KeyFile string `yaml:"key_file" mapstructure:"key_file"` // File holding the key
		Salt    string `yaml:"salt" mapstructure:"salt"`         // Salt for passphrase keys
		Suffix  string `yaml:"suffix" mapstructure:"suffix"`     // Appended to encrypted file names
	} `yaml:"crypto" mapstructure:"crypto"`
	Jobs struct {
		NotifyBuffer int `yaml:"notify_buffer" mapstructure:"notify_buffer"` // Pending job notifications
	} `yaml:"jobs" mapstructure:"jobs"`
	Watch struct {
		Enabled bool `yaml:"enabled" mapstructure:"enabled"` // Refresh when the directory changes on disk
	} `yaml:"watch" mapstructure:"watch"`
	Log struct {
		File  string `yaml:"file" mapstructure:"file"` // Empty discards logs
		Debug bool   `yaml:"debug" mapstructure:"debug"`
		JSON  bool   `yaml:"json" mapstructure:"json"`
	} `yaml:"log" mapstructure:"log"`
}

// flagKeys maps command-line flags onto configuration keys.
var flagKeys = map[string]string{
	"debug":    "log.debug",
	"log-file": "log.file",
	"key-file": "crypto.key_file",
}

// DefaultPath returns ~/.config/filescout/config.yaml or the platform
// equivalent.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "could not get user config directory")
	}
	return filepath.Join(dir, "filescout", "config.yaml"), nil
}

// Load builds the configuration. path may be empty, in which case the
// default location is used if it exists. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v, defaultConfig())

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else if def, err := DefaultPath(); err == nil {
		v.SetConfigFile(def)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
		case os.IsNotExist(err) && path == "":
		case os.IsNotExist(err):
			return nil, errors.NewConfigError("config file not found", path, errors.ConfigNotFound, err)
		default:
			return nil, errors.NewConfigError("error parsing config file", v.ConfigFileUsed(), errors.InvalidConfig, err)
		}
	}

	v.SetEnvPrefix("filescout")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, err
				}
			}
		}
		if f := flags.Lookup("no-watch"); f != nil && f.Changed {
			v.Set("watch.enabled", false)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.NewConfigError("error decoding config", v.ConfigFileUsed(), errors.InvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("start_dir", cfg.StartDir)
	v.SetDefault("theme.palette", cfg.Theme.Palette)
	v.SetDefault("listing.ignore", cfg.Listing.Ignore)
	v.SetDefault("listing.show_hidden", cfg.Listing.ShowHidden)
	v.SetDefault("preview.max_bytes", cfg.Preview.MaxBytes)
	v.SetDefault("crypto.key_env", cfg.Crypto.KeyEnv)
	v.SetDefault("crypto.key_file", cfg.Crypto.KeyFile)
	v.SetDefault("crypto.salt", cfg.Crypto.Salt)
	v.SetDefault("crypto.suffix", cfg.Crypto.Suffix)
	v.SetDefault("jobs.notify_buffer", cfg.Jobs.NotifyBuffer)
	v.SetDefault("watch.enabled", cfg.Watch.Enabled)
	v.SetDefault("log.file", cfg.Log.File)
	v.SetDefault("log.debug", cfg.Log.Debug)
	v.SetDefault("log.json", cfg.Log.JSON)
}

// defaultConfig returns the default configuration.
func defaultConfig() *Config {
	cfg := &Config{}
	cfg.StartDir = "."
	cfg.Theme.Palette = 0
	cfg.Listing.Ignore = []string{}
	cfg.Listing.ShowHidden = true
	cfg.Preview.MaxBytes = 1 << 20
	cfg.Crypto.KeyEnv = "FILESCOUT_KEY"
	cfg.Crypto.Salt = "filescout"
	cfg.Crypto.Suffix = ".enc"
	cfg.Jobs.NotifyBuffer = 1
	cfg.Watch.Enabled = true
	if dir, err := os.UserCacheDir(); err == nil {
		cfg.Log.File = filepath.Join(dir, "filescout", "filescout.log")
	}
	return cfg
}

// New returns the default configuration.
func New() *Config {
	return defaultConfig()
}

// SaveConfig saves the configuration to the specified file.
// It creates parent directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "failed to create config directory %s", dir)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "failed to write config file %s", path)
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.ErrInvalidConfig
	}
	invalid := func(param, msg string) error {
		return errors.NewConfigError(msg, param, errors.InvalidConfig, nil)
	}

	if c.Theme.Palette < 0 || c.Theme.Palette >= PaletteSize {
		return invalid("theme.palette", fmt.Sprintf("palette must be between 0 and %d", PaletteSize-1))
	}
	if c.Preview.MaxBytes <= 0 {
		return invalid("preview.max_bytes", "preview limit must be positive")
	}
	if c.Jobs.NotifyBuffer < 1 {
		return invalid("jobs.notify_buffer", "notification buffer must be >= 1")
	}
	if c.Crypto.Suffix == "" || strings.ContainsAny(c.Crypto.Suffix, `/\`) {
		return invalid("crypto.suffix", "suffix must be a non-empty file name fragment")
	}
	for i, pattern := range c.Listing.Ignore {
		if _, err := glob.Compile(pattern); err != nil {
			return errors.NewConfigError(fmt.Sprintf("ignore pattern %d is invalid", i), "listing.ignore", errors.InvalidConfig, err)
		}
	}
	return nil
}
