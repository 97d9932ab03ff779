// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/lex/internal/logger"
	"github.com/mitchellh/go-homedir"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger logger.Config `toml:"logger"`
	Editor EditorConfig  `toml:"editor"`
	Syntax SyntaxConfig  `toml:"syntax"`
}

// EditorConfig holds editor-specific settings.
type EditorConfig struct {
	TabWidth        int    `toml:"tab_width"`
	ScrollOff       int    `toml:"scroll_off"`
	SystemClipboard bool   `toml:"system_clipboard"`
	StatusBarHeight int    `toml:"status_bar_height"`
	LineNumbers     bool   `toml:"line_numbers"`
	Theme           string `toml:"theme"`      // name of the theme to start with
	ThemesDir       string `toml:"themes_dir"` // directory of *.toml themes
	RCFile          string `toml:"rc_file"`    // commands run at startup
}

// SyntaxConfig controls the highlighter and where user rules are found.
type SyntaxConfig struct {
	Enabled   bool   `toml:"enabled"`
	Trailing  bool   `toml:"trailing"`   // show trailing whitespace background
	DrawSpace bool   `toml:"draw_space"` // render whitespace with the space class
	UserDir   string `toml:"user_dir"`
}

var (
	loadedConfig *Config
	loadOnce     sync.Once
	loadErr      error
)

// Dir returns the per-user configuration directory (~/.config/lex).
func Dir() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("cannot resolve home directory: %w", err)
	}
	return filepath.Join(home, ConfigDirName), nil
}

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	cfg := &Config{
		Logger: logger.Config{
			LogLevel:    "info",
			LogFilePath: "",
		},
		Editor: EditorConfig{
			TabWidth:        DefaultTabWidth,
			ScrollOff:       DefaultScrollOff,
			SystemClipboard: SystemClipboard,
			StatusBarHeight: StatusBarHeight,
			LineNumbers:     true,
		},
		Syntax: SyntaxConfig{
			Enabled:  true,
			Trailing: true,
		},
	}
	if dir, err := Dir(); err == nil {
		cfg.Syntax.UserDir = filepath.Join(dir, SyntaxDirName)
		cfg.Editor.ThemesDir = filepath.Join(dir, ThemesDirName)
		cfg.Editor.RCFile = filepath.Join(dir, RCFileName)
		cfg.Logger.LogFilePath = filepath.Join(dir, DefaultLogFileName)
	}
	return cfg
}

// loadFromFile decodes a TOML file on top of cfg. A missing file is not an error.
func loadFromFile(filePath string, cfg *Config) error {
	_, err := os.Stat(filePath)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
		logger.Warnf("Config file '%s': Unrecognized keys: %v", filePath, undecoded)
	}
	return nil
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Editor.TabWidth <= 0 {
		c.Editor.TabWidth = defaults.Editor.TabWidth
	}
	if c.Editor.ScrollOff < 0 {
		c.Editor.ScrollOff = defaults.Editor.ScrollOff
	}
	if c.Editor.StatusBarHeight <= 0 {
		c.Editor.StatusBarHeight = defaults.Editor.StatusBarHeight
	}
	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}

	// Paths may be written with a leading ~ in the file or on the command line.
	if p, err := homedir.Expand(c.Syntax.UserDir); err == nil {
		c.Syntax.UserDir = p
	}
	if p, err := homedir.Expand(c.Editor.ThemesDir); err == nil {
		c.Editor.ThemesDir = p
	}
	if p, err := homedir.Expand(c.Editor.RCFile); err == nil {
		c.Editor.RCFile = p
	}
	if c.Logger.LogFilePath != "-" {
		if p, err := homedir.Expand(c.Logger.LogFilePath); err == nil {
			c.Logger.LogFilePath = p
		}
	}
}

// Load builds a configuration from defaults, the TOML file and flag overrides.
// An empty configFilePath means the default location.
func Load(configFilePath string, flags *Flags) (*Config, error) {
	cfg := NewDefaultConfig()

	effectivePath := configFilePath
	if effectivePath == "" {
		if dir, err := Dir(); err == nil {
			effectivePath = filepath.Join(dir, DefaultConfigFileName)
		}
	}

	var err error
	if effectivePath != "" {
		err = loadFromFile(effectivePath, cfg)
	}

	if flags != nil {
		flags.ApplyOverrides(cfg)
	}
	cfg.validate()
	return cfg, err
}

// LoadConfig runs Load once and stores the result for Get.
// It should be called only once, typically from main.
func LoadConfig(configFilePath string, flags *Flags) (*Config, error) {
	loadOnce.Do(func() {
		loadedConfig, loadErr = Load(configFilePath, flags)
	})
	return loadedConfig, loadErr
}

// Get returns the loaded application configuration. Panics if LoadConfig wasn't called.
func Get() *Config {
	if loadedConfig == nil {
		panic("config.Get() called before config.LoadConfig()")
	}
	return loadedConfig
}
