/*
Package config manages the TOML config for wordpick hosts.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/bastiangx/wordpick/internal/utils"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure
type Config struct {
	Server ServerConfig `toml:"server"`
	Widget WidgetConfig `toml:"widget"`
	CLI    CliConfig    `toml:"cli"`
}

// ServerConfig has IPC server options.
type ServerConfig struct {
	GroupsFile string `toml:"groups_file"`
	Watch      bool   `toml:"watch"`
	MaxItems   int    `toml:"max_items"`
}

// WidgetConfig holds presentation options shared by the CLI and TUI hosts.
type WidgetConfig struct {
	MaxVisible int  `toml:"max_visible"`
	Highlight  bool `toml:"highlight"`
	Width      int  `toml:"width"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultGroup string `toml:"default_group"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			GroupsFile: "groups.toml",
			Watch:      true,
			MaxItems:   64,
		},
		Widget: WidgetConfig{
			MaxVisible: 8,
			Highlight:  true,
			Width:      40,
		},
		CLI: CliConfig{
			DefaultGroup: "",
		},
	}
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	pr, err := utils.NewPathResolver()
	if err != nil {
		return "", err
	}
	return pr.GetConfigPath("config.toml")
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/wordpick/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}
	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file. Sections that fail strict decoding are
// recovered field by field; anything unreadable keeps its default.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()
	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	config.sanitize()
	return config, nil
}

// tryPartialParse attempts to parse a TOML file section by section
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := utils.ExtractSection(tempConfig, "widget"); ok {
		extractWidgetConfig(section, &config.Widget)
	}
	if section, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(section, &config.CLI)
	}
	config.sanitize()
	return config, nil
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractString(data, "groups_file"); ok {
		server.GroupsFile = val
	}
	if val, ok := utils.ExtractBool(data, "watch"); ok {
		server.Watch = val
	}
	if val, ok := utils.ExtractInt64(data, "max_items"); ok {
		server.MaxItems = val
	}
}

func extractWidgetConfig(data map[string]any, widget *WidgetConfig) {
	if val, ok := utils.ExtractInt64(data, "max_visible"); ok {
		widget.MaxVisible = val
	}
	if val, ok := utils.ExtractBool(data, "highlight"); ok {
		widget.Highlight = val
	}
	if val, ok := utils.ExtractInt64(data, "width"); ok {
		widget.Width = val
	}
}

func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractString(data, "default_group"); ok {
		cli.DefaultGroup = val
	}
}

// sanitize replaces out-of-range values with defaults.
func (c *Config) sanitize() {
	def := DefaultConfig()
	if c.Server.GroupsFile == "" {
		c.Server.GroupsFile = def.Server.GroupsFile
	}
	if c.Server.MaxItems < 0 {
		c.Server.MaxItems = def.Server.MaxItems
	}
	if c.Widget.MaxVisible < 1 {
		c.Widget.MaxVisible = def.Widget.MaxVisible
	}
	if c.Widget.Width < 10 {
		c.Widget.Width = def.Widget.Width
	}
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}
