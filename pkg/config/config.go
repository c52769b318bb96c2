package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/mstoykov/envconfig"
	"gopkg.in/yaml.v3"
)

// Settings holds the flat framework configuration loaded from the process
// environment. Values here are the base layer; the per-environment YAML
// overlay may override base URL and timeout.
type Settings struct {
	Environment string  `envconfig:"HARBOR_ENV" default:"dev"`
	Browser     string  `envconfig:"HARBOR_BROWSER" default:"chromium"`
	Headless    bool    `envconfig:"HARBOR_HEADLESS" default:"true"`
	BaseURL     string  `envconfig:"HARBOR_BASE_URL" default:"https://example.com"`
	Timeout     float64 `envconfig:"HARBOR_TIMEOUT" default:"30000"`
	SlowMo      float64 `envconfig:"HARBOR_SLOW_MO" default:"0"`
	Video       string  `envconfig:"HARBOR_VIDEO" default:"retain-on-failure"`
	Screenshot  string  `envconfig:"HARBOR_SCREENSHOT" default:"only-on-failure"`
	LogLevel    string  `envconfig:"HARBOR_LOG_LEVEL" default:"info"`
}

// User is a static test user record from config/testdata/users.yml.
type User struct {
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
	Email     string `yaml:"email"`
	Password  string `yaml:"password"`
	Phone     string `yaml:"phone"`
	Address   string `yaml:"address"`
}

// Config is the resolved configuration for a test run: environment settings,
// the environment-specific overlay, and static test data. It is loaded once
// per process and read throughout.
type Config struct {
	settings Settings
	overlay  map[string]interface{}
	users    map[string]User
	rootDir  string
}

var (
	// global is the singleton configuration instance
	global   *Config
	globalMu sync.Mutex
)

// Initialize loads the global configuration from the given project root.
// This should be called once at startup.
func Initialize(rootDir string) error {
	globalMu.Lock()
	defer globalMu.Unlock()

	cfg, err := Load(rootDir)
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

// IsInitialized returns true if the global configuration has been loaded.
func IsInitialized() bool {
	globalMu.Lock()
	defer globalMu.Unlock()
	return global != nil
}

// Load reads settings from the environment, then layers the environment
// overlay and test data files from rootDir on top. Missing overlay or test
// data files are not errors; the base settings apply.
func Load(rootDir string) (*Config, error) {
	var settings Settings
	if err := envconfig.Process("", &settings); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if rootDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to determine working directory: %w", err)
		}
		rootDir = wd
	}

	cfg := &Config{
		settings: settings,
		overlay:  make(map[string]interface{}),
		users:    make(map[string]User),
		rootDir:  rootDir,
	}

	overlayPath := filepath.Join(rootDir, "config", "environments", settings.Environment+".yml")
	if err := cfg.loadOverlay(overlayPath); err != nil {
		return nil, err
	}

	usersPath := filepath.Join(rootDir, "config", "testdata", "users.yml")
	if err := cfg.loadUsers(usersPath); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadOverlay(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read environment overlay %s: %w", path, err)
	}

	if err := yaml.Unmarshal(raw, &c.overlay); err != nil {
		return fmt.Errorf("failed to parse environment overlay %s: %w", path, err)
	}
	if c.overlay == nil {
		c.overlay = make(map[string]interface{})
	}
	return nil
}

func (c *Config) loadUsers(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read test data %s: %w", path, err)
	}

	var data struct {
		Users map[string]User `yaml:"users"`
	}
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("failed to parse test data %s: %w", path, err)
	}
	if data.Users != nil {
		c.users = data.Users
	}
	return nil
}

// Environment returns the active environment name (dev, staging, ...).
func (c *Config) Environment() string { return c.settings.Environment }

// Browser returns the configured browser type (chromium, firefox, webkit).
func (c *Config) Browser() string { return c.settings.Browser }

// Headless reports whether the browser runs without a visible window.
func (c *Config) Headless() bool { return c.settings.Headless }

// BaseURL returns the application base URL, preferring the environment
// overlay over the base settings.
func (c *Config) BaseURL() string {
	if v, ok := c.overlay["base_url"].(string); ok && v != "" {
		return v
	}
	return c.settings.BaseURL
}

// Timeout returns the default operation timeout in milliseconds, preferring
// the environment overlay over the base settings.
func (c *Config) Timeout() float64 {
	switch v := c.overlay["timeout"].(type) {
	case int:
		return float64(v)
	case float64:
		return v
	}
	return c.settings.Timeout
}

// SlowMo returns the slow-motion delay between operations in milliseconds.
func (c *Config) SlowMo() float64 { return c.settings.SlowMo }

// VideoMode returns the video recording mode (off, on, retain-on-failure).
func (c *Config) VideoMode() string { return c.settings.Video }

// ScreenshotMode returns the screenshot capture mode.
func (c *Config) ScreenshotMode() string { return c.settings.Screenshot }

// LogLevel returns the configured log level name.
func (c *Config) LogLevel() string { return c.settings.LogLevel }

// RootDir returns the project root the configuration was loaded from.
func (c *Config) RootDir() string { return c.rootDir }

// Value returns a raw value from the environment overlay.
func (c *Config) Value(key string) (interface{}, bool) {
	v, ok := c.overlay[key]
	return v, ok
}

// TestUser returns a named test user record (valid, invalid, ...).
func (c *Config) TestUser(kind string) (User, bool) {
	u, ok := c.users[kind]
	return u, ok
}

// ReportsDir returns the directory for all run artifacts.
func (c *Config) ReportsDir() string { return filepath.Join(c.rootDir, "reports") }

// ScreenshotsDir returns the directory for captured screenshots.
func (c *Config) ScreenshotsDir() string { return filepath.Join(c.ReportsDir(), "screenshots") }

// VideosDir returns the directory for recorded videos.
func (c *Config) VideosDir() string { return filepath.Join(c.ReportsDir(), "videos") }

// LogsDir returns the directory for run log files.
func (c *Config) LogsDir() string { return filepath.Join(c.ReportsDir(), "logs") }

// EnsureDirs creates the report directory tree if it does not exist.
func (c *Config) EnsureDirs() error {
	for _, dir := range []string{c.ReportsDir(), c.ScreenshotsDir(), c.VideosDir(), c.LogsDir()} {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// reset clears the global instance. Used by tests.
func reset() {
	globalMu.Lock()
	defer globalMu.Unlock()
	global = nil
}
