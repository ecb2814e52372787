package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// StoreConfig locates the document store.
type StoreConfig struct {
	// Path is the SQLite database file. ":memory:" keeps everything in process.
	Path string `mapstructure:"path" yaml:"path"`

	// ReadOnly rejects every write with a permission error.
	ReadOnly bool `mapstructure:"read_only" yaml:"read_only"`
}

// DisplayConfig holds dashboard preferences that are not per-session.
type DisplayConfig struct {
	PageSize int    `mapstructure:"page_size" yaml:"page_size"`
	Theme    string `mapstructure:"theme" yaml:"theme"`
}

// AuthConfig holds the login identity. The password hash lives in the
// system keyring, never in this file.
type AuthConfig struct {
	Username string `mapstructure:"username" yaml:"username"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`

	// File receives log output from the terminal UI.
	File string `mapstructure:"file" yaml:"file"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Store   StoreConfig   `mapstructure:"store" yaml:"store"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
	Auth    AuthConfig    `mapstructure:"auth" yaml:"auth"`
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
}

// DefaultPageSize is the dashboard page size used when none is configured.
const DefaultPageSize = 25

// EnvPrefix prefixes environment overrides, e.g. WORKDESK_STORE_PATH.
const EnvPrefix = "WORKDESK"

// ConfigDir returns ~/.config/workdesk.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "workdesk")
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/workdesk/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// DefaultPreferencesPath returns ~/.config/workdesk/prefs.yaml.
func DefaultPreferencesPath() string {
	return filepath.Join(ConfigDir(), "prefs.yaml")
}

func defaultAppConfig() *AppConfig {
	dir := ConfigDir()
	return &AppConfig{
		Store: StoreConfig{
			Path: filepath.Join(dir, "workdesk.db"),
		},
		Display: DisplayConfig{
			PageSize: DefaultPageSize,
			Theme:    "default",
		},
		Auth:   AuthConfig{Username: "admin"},
		Server: ServerConfig{Addr: ":8080"},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
			File:   filepath.Join(dir, "workdesk.log"),
		},
	}
}

func setConfigDefaults(v *viper.Viper) {
	d := defaultAppConfig()
	v.SetDefault("store.path", d.Store.Path)
	v.SetDefault("store.read_only", d.Store.ReadOnly)
	v.SetDefault("display.page_size", d.Display.PageSize)
	v.SetDefault("display.theme", d.Display.Theme)
	v.SetDefault("auth.username", d.Auth.Username)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.file", d.Log.File)
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// A missing file yields the defaults. WORKDESK_* environment variables
// override file values.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setConfigDefaults(v)

	if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Display.PageSize <= 0 {
		cfg.Display.PageSize = DefaultPageSize
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("store", cfg.Store)
	v.Set("display", cfg.Display)
	v.Set("auth", cfg.Auth)
	v.Set("server", cfg.Server)
	v.Set("log", cfg.Log)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}

// Preferences are small client flags read at startup and written on change.
type Preferences struct {
	Authenticated bool   `mapstructure:"authenticated" yaml:"authenticated"`
	EditMode      bool   `mapstructure:"edit_mode" yaml:"edit_mode"`
	Theme         string `mapstructure:"theme" yaml:"theme"`
	FontSize      int    `mapstructure:"font_size" yaml:"font_size"`
}

// DefaultFontSize is the font size preference when none is stored.
const DefaultFontSize = 14

// LoadPreferences reads the preference file. A missing file yields defaults.
func LoadPreferences(path string) (Preferences, error) {
	prefs := Preferences{Theme: "dark", FontSize: DefaultFontSize}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault("authenticated", prefs.Authenticated)
	v.SetDefault("edit_mode", prefs.EditMode)
	v.SetDefault("theme", prefs.Theme)
	v.SetDefault("font_size", prefs.FontSize)

	if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
		return prefs, fmt.Errorf("reading preferences %s: %w", path, err)
	}
	if err := v.Unmarshal(&prefs); err != nil {
		return prefs, fmt.Errorf("parsing preferences %s: %w", path, err)
	}
	if prefs.FontSize <= 0 {
		prefs.FontSize = DefaultFontSize
	}
	return prefs, nil
}

// SavePreferences writes the preference file, creating its directory.
func SavePreferences(path string, prefs Preferences) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating preferences directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.Set("authenticated", prefs.Authenticated)
	v.Set("edit_mode", prefs.EditMode)
	v.Set("theme", prefs.Theme)
	v.Set("font_size", prefs.FontSize)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing preferences to %s: %w", path, err)
	}
	return nil
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return true
	}
	var pathErr *os.PathError
	return errors.As(err, &pathErr) && os.IsNotExist(pathErr)
}
