package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Data  DataConfig  `mapstructure:"data"`
	Team  TeamConfig  `mapstructure:"team"`
	Store StoreConfig `mapstructure:"store"`
	Log   LogConfig   `mapstructure:"log"`
}

type DataConfig struct {
	Path   string   `mapstructure:"path"`   // dataset override; empty uses the embedded dataset
	Jailed []string `mapstructure:"jailed"` // glob patterns of heroes rotated out of the pool
}

type TeamConfig struct {
	Limit int `mapstructure:"limit"`
}

type StoreConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Path     string `mapstructure:"path"`
	MaxCount int    `mapstructure:"max_count"`
}

type LogConfig struct {
	Path string `mapstructure:"path"` // debug log file; empty uses the default data dir
}

// DefaultJailed is the current jail rotation, overridable in config.
var DefaultJailed = []string{
	"Batrider",
	"Weaver",
	"Dazzle",
	"Slardar",
	"Shadow Demon",
	"Enigma",
	"Terrorblade",
	"Omniknight",
	"Necrophos",
	"Sand King",
}

func Load() (*Config, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config dir: %w", err)
	}

	configPath := filepath.Join(configDir, "underlords")

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AddConfigPath(".")

	v.SetDefault("team.limit", 10)
	v.SetDefault("store.enabled", true)
	v.SetDefault("store.max_count", 200)
	v.SetDefault("data.jailed", DefaultJailed)

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Data.Path = expandEnv(cfg.Data.Path)
	cfg.Store.Path = expandEnv(cfg.Store.Path)
	return &cfg, nil
}

// expandEnv expands ${VAR} or $VAR in a string
func expandEnv(s string) string {
	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		return os.Getenv(s[2 : len(s)-1])
	}
	if strings.HasPrefix(s, "$") {
		return os.Getenv(s[1:])
	}
	return s
}

// GetConfigPath returns the path where the config file should be located
func GetConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "underlords", "config.yaml"), nil
}

// Exists returns true if a config file exists
func Exists() bool {
	path, err := GetConfigPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Save writes the config to disk
func Save(cfg *Config) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var jailed strings.Builder
	for _, p := range cfg.Data.Jailed {
		fmt.Fprintf(&jailed, "    - %q\n", p)
	}

	content := fmt.Sprintf(`# Dataset overrides. Leave path empty to use the built-in dataset.
data:
  path: %q
  jailed:
%s
team:
  limit: %d

store:
  enabled: %t
  max_count: %d
`, cfg.Data.Path, jailed.String(), cfg.Team.Limit, cfg.Store.Enabled, cfg.Store.MaxCount)

	return os.WriteFile(path, []byte(content), 0600)
}
