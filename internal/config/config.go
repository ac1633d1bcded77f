package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database  DatabaseConfig
	UI        UIConfig
	Clipboard ClipboardConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// UIConfig holds presentation settings. The mapstructure tags bind the
// snake_case file keys; without them Unmarshal drops these fields.
type UIConfig struct {
	PageSize    int    `mapstructure:"page_size"`
	AccentColor string `mapstructure:"accent_color"`
}

// ClipboardConfig controls the clipboard backend. System false falls back
// to an in-process clipboard, which keeps copy/paste working inside one
// session on headless terminals.
type ClipboardConfig struct {
	System bool
}

// Load reads configuration from file and env. Env var overrides use prefix JASKGRID_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "jaskgrid", "jaskgrid.db"))
	v.SetDefault("ui.page_size", 20)
	v.SetDefault("ui.accent_color", "#b4befe")
	v.SetDefault("clipboard.system", true)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("JASKGRID_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "jaskgrid"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("JASKGRID")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.UI.PageSize < 1 {
		c.UI.PageSize = 20
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := os.Getenv("JASKGRID_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "jaskgrid", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("ui.page_size", cfg.UI.PageSize)
	v.Set("ui.accent_color", cfg.UI.AccentColor)
	v.Set("clipboard.system", cfg.Clipboard.System)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
