package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"HARBOR_ENV", "HARBOR_BROWSER", "HARBOR_HEADLESS", "HARBOR_BASE_URL",
		"HARBOR_TIMEOUT", "HARBOR_SLOW_MO", "HARBOR_VIDEO", "HARBOR_SCREENSHOT",
		"HARBOR_LOG_LEVEL",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Environment())
	assert.Equal(t, "chromium", cfg.Browser())
	assert.True(t, cfg.Headless())
	assert.Equal(t, "https://example.com", cfg.BaseURL())
	assert.Equal(t, 30000.0, cfg.Timeout())
	assert.Equal(t, "retain-on-failure", cfg.VideoMode())
	assert.Equal(t, "info", cfg.LogLevel())
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("HARBOR_BROWSER", "firefox")
	t.Setenv("HARBOR_HEADLESS", "false")
	t.Setenv("HARBOR_BASE_URL", "https://app.test")
	t.Setenv("HARBOR_TIMEOUT", "5000")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "firefox", cfg.Browser())
	assert.False(t, cfg.Headless())
	assert.Equal(t, "https://app.test", cfg.BaseURL())
	assert.Equal(t, 5000.0, cfg.Timeout())
}

func TestOverlayOverridesSettings(t *testing.T) {
	clearEnv(t)
	t.Setenv("HARBOR_ENV", "staging")

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "config", "environments", "staging.yml"), `
base_url: https://staging.app.test
timeout: 60000
api_url: https://api.staging.app.test
`)

	cfg, err := Load(root)
	require.NoError(t, err)

	assert.Equal(t, "https://staging.app.test", cfg.BaseURL())
	assert.Equal(t, 60000.0, cfg.Timeout())

	apiURL, ok := cfg.Value("api_url")
	require.True(t, ok)
	assert.Equal(t, "https://api.staging.app.test", apiURL)

	_, ok = cfg.Value("missing")
	assert.False(t, ok)
}

func TestOverlayMissingIsNotAnError(t *testing.T) {
	clearEnv(t)
	t.Setenv("HARBOR_ENV", "nosuchenv")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", cfg.BaseURL())
}

func TestOverlayInvalidYAML(t *testing.T) {
	clearEnv(t)

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "config", "environments", "dev.yml"), "base_url: [unclosed")

	_, err := Load(root)
	assert.Error(t, err)
}

func TestTestUsers(t *testing.T) {
	clearEnv(t)

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "config", "testdata", "users.yml"), `
users:
  valid:
    first_name: Jane
    last_name: Doe
    email: jane.doe@app.test
    password: Str0ng!Pass
  invalid:
    email: wrong@app.test
    password: bad
`)

	cfg, err := Load(root)
	require.NoError(t, err)

	valid, ok := cfg.TestUser("valid")
	require.True(t, ok)
	assert.Equal(t, "jane.doe@app.test", valid.Email)
	assert.Equal(t, "Jane", valid.FirstName)

	_, ok = cfg.TestUser("admin")
	assert.False(t, ok)
}

func TestEnsureDirs(t *testing.T) {
	clearEnv(t)

	root := t.TempDir()
	cfg, err := Load(root)
	require.NoError(t, err)

	require.NoError(t, cfg.EnsureDirs())
	for _, dir := range []string{cfg.ReportsDir(), cfg.ScreenshotsDir(), cfg.VideosDir(), cfg.LogsDir()} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestGlobalLifecycle(t *testing.T) {
	clearEnv(t)
	reset()
	t.Cleanup(reset)

	assert.False(t, IsInitialized())
	assert.Panics(t, func() { Global() })

	require.NoError(t, Initialize(t.TempDir()))
	assert.True(t, IsInitialized())
	assert.NotNil(t, Global())
}
