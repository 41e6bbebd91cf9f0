package config

import (
	"sync"

	"github.com/spf13/viper"
)

var (
	// global is the configuration loaded at startup
	global   *Config
	globalMu sync.Mutex
)

// Initialize loads the configuration from configPath (or the default
// location when empty), the SAPWEB_* environment and any flags already
// bound to v, and installs it as the global configuration. A nil v uses a
// fresh viper instance.
func Initialize(v *viper.Viper, configPath string) error {
	globalMu.Lock()
	defer globalMu.Unlock()

	if v == nil {
		v = viper.New()
	}
	if err := Prepare(v, configPath); err != nil {
		return err
	}

	cfg, err := Load(v)
	if err != nil {
		return err
	}

	global = cfg
	return nil
}

// Global returns the global configuration.
// Panics if Initialize has not been called.
func Global() *Config {
	globalMu.Lock()
	defer globalMu.Unlock()

	if global == nil {
		panic("config not initialized: call config.Initialize first")
	}

	return global
}

// IsInitialized returns true if the global configuration has been initialized.
func IsInitialized() bool {
	globalMu.Lock()
	defer globalMu.Unlock()
	return global != nil
}
