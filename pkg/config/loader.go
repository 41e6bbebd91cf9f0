package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. SAPWEB_BROWSER_HEADLESS.
const EnvPrefix = "SAPWEB"

// Path returns the default config file, ~/.sapweb/config.yaml.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Prepare registers defaults and environment overrides on v and reads the
// config file. An explicit configPath must exist; the default file is
// optional.
func Prepare(v *viper.Viper, configPath string) error {
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		dir, err := Dir()
		if err != nil {
			return err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("endpoints.base_url", d.Endpoints.BaseURL)
	v.SetDefault("endpoints.system_id", d.Endpoints.SystemID)
	v.SetDefault("browser.headless", d.Browser.Headless)
	v.SetDefault("browser.engine", d.Browser.Engine)
	v.SetDefault("browser.profile_dir", d.Browser.ProfileDir)
	v.SetDefault("browser.timeout", d.Browser.Timeout)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.verbosity", d.Logging.Verbosity)
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("output.save_dir", d.Output.SaveDir)
	v.SetDefault("output.dump_dir", d.Output.DumpDir)
}

// Load decodes and validates the configuration held by a prepared viper.
func Load(v *viper.Viper) (*Config, error) {
	cfg := Default()

	hook := mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
	if err := v.Unmarshal(cfg, viper.DecodeHook(hook)); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Save writes cfg as YAML to path, replacing any existing file atomically.
func Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	// Create temp file for atomic write
	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temp config file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}
