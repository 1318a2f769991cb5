package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "PAGERDECK"

// Config holds runtime settings for the app.
type Config struct {
	Storage  StorageConfig  `mapstructure:"storage"`
	Log      LogConfig      `mapstructure:"log"`
	Registry RegistryConfig `mapstructure:"registry"`
	Pager    PagerConfig    `mapstructure:"pager"`
}

type StorageConfig struct {
	DBPath string `mapstructure:"db_path"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// RegistryConfig bounds how many gallery hosting units are retained.
type RegistryConfig struct {
	Capacity int `mapstructure:"capacity"`
}

type PagerConfig struct {
	OffscreenLimit int `mapstructure:"offscreen_limit"`
}

// Load reads defaults, then the optional TOML file, then PAGERDECK_* env
// overrides. An explicit path (argument or PAGERDECK_CONFIG) must exist.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("storage.db_path", "pagerdeck.db")
	v.SetDefault("log.level", "none")
	v.SetDefault("log.file", "pagerdeck.log")
	v.SetDefault("registry.capacity", 64)
	v.SetDefault("pager.offscreen_limit", 1)

	v.SetConfigType("toml")
	if path == "" {
		path = os.Getenv(envPrefix + "_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	if c.Storage.DBPath == "" {
		return errors.New("storage.db_path is required")
	}
	switch c.Log.Level {
	case "none", "normal", "debug":
	default:
		return fmt.Errorf("log.level must be none, normal or debug: %s", c.Log.Level)
	}
	if c.Log.Level != "none" && c.Log.File == "" {
		return errors.New("log.file is required when logging is enabled")
	}
	if c.Registry.Capacity < 1 {
		return fmt.Errorf("registry.capacity must be positive: %d", c.Registry.Capacity)
	}
	if c.Pager.OffscreenLimit < 0 {
		return fmt.Errorf("pager.offscreen_limit must not be negative: %d", c.Pager.OffscreenLimit)
	}
	return nil
}
