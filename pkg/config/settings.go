// Package config holds sapweb's settings: where SAPweb lives, how the
// browser is launched and how much is logged.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/entrhq/sapweb/pkg/browser"
	"github.com/entrhq/sapweb/pkg/logging"
	"github.com/entrhq/sapweb/pkg/rfp"
)

// Config is the complete sapweb configuration.
type Config struct {
	Endpoints rfp.Endpoints `mapstructure:"endpoints" yaml:"endpoints"`
	Browser   BrowserConfig `mapstructure:"browser" yaml:"browser"`
	Logging   LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Output    OutputConfig  `mapstructure:"output" yaml:"output"`
}

// BrowserConfig controls how sessions are launched.
type BrowserConfig struct {
	Headless   bool          `mapstructure:"headless" yaml:"headless"`
	Engine     string        `mapstructure:"engine" yaml:"engine"`
	ProfileDir string        `mapstructure:"profile_dir" yaml:"profile_dir"`
	Timeout    time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// LoggingConfig controls the file log and terminal progress output.
type LoggingConfig struct {
	// Level is the file log threshold: debug, info, warn or error
	Level string `mapstructure:"level" yaml:"level"`
	// Verbosity controls terminal output: quiet, normal, verbose, debug
	Verbosity string `mapstructure:"verbosity" yaml:"verbosity"`
}

// OutputConfig controls how results are shown and saved.
type OutputConfig struct {
	Format  string `mapstructure:"format" yaml:"format"`
	SaveDir string `mapstructure:"save_dir" yaml:"save_dir,omitempty"`
	DumpDir string `mapstructure:"dump_dir" yaml:"dump_dir,omitempty"`
}

// Dir returns ~/.sapweb.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, ".sapweb"), nil
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	profile := "profile"
	if dir, err := Dir(); err == nil {
		profile = filepath.Join(dir, "profile")
	}

	return &Config{
		Endpoints: rfp.DefaultEndpoints,
		Browser: BrowserConfig{
			Headless:   true,
			Engine:     string(browser.EngineFirefox),
			ProfileDir: profile,
			Timeout:    30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:     "info",
			Verbosity: "normal",
		},
		Output: OutputConfig{
			Format: "table",
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Endpoints.BaseURL == "" {
		return fmt.Errorf("endpoints.base_url is required")
	}
	if !strings.HasPrefix(c.Endpoints.BaseURL, "https://") && !strings.HasPrefix(c.Endpoints.BaseURL, "http://") {
		return fmt.Errorf("endpoints.base_url must be an http(s) URL, got %q", c.Endpoints.BaseURL)
	}
	if c.Endpoints.SystemID == "" {
		return fmt.Errorf("endpoints.system_id is required")
	}

	switch browser.Engine(c.Browser.Engine) {
	case browser.EngineChromium, browser.EngineFirefox, browser.EngineWebKit:
	default:
		return fmt.Errorf("invalid browser engine: %s (must be 'chromium', 'firefox', or 'webkit')", c.Browser.Engine)
	}
	if c.Browser.Timeout < 0 {
		return fmt.Errorf("browser.timeout cannot be negative")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("invalid logging level: %s (must be 'debug', 'info', 'warn', or 'error')", c.Logging.Level)
	}

	validVerbosity := map[string]bool{"quiet": true, "normal": true, "verbose": true, "debug": true}
	if !validVerbosity[c.Logging.Verbosity] {
		return fmt.Errorf("invalid logging verbosity: %s (must be 'quiet', 'normal', 'verbose', or 'debug')", c.Logging.Verbosity)
	}

	return nil
}

// SessionOptions converts the browser settings for browser.Manager.
func (c *Config) SessionOptions() browser.SessionOptions {
	return browser.SessionOptions{
		Headless:         c.Browser.Headless,
		Engine:           browser.Engine(c.Browser.Engine),
		ProfileDir:       expandHome(c.Browser.ProfileDir),
		Timeout:          float64(c.Browser.Timeout / time.Millisecond),
		FirefoxUserPrefs: browser.ProfilePrefs(),
	}
}

// ApplyLogging sets the file log threshold for every component.
func (c *Config) ApplyLogging() {
	logging.SetLevel(logging.ParseLevel(c.Logging.Level))
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
