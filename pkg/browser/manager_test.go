package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/harbor/pkg/config"
)

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)
	return cfg
}

func TestLaunchRequiresStart(t *testing.T) {
	m := NewManager(newTestConfig(t))

	_, err := m.Launch(LaunchOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not started")
}

func TestBrowserTypeSelection(t *testing.T) {
	m := NewManager(newTestConfig(t))
	m.started = true

	// Unknown types are rejected regardless of driver state
	_, err := m.browserType("netscape")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported browser type")
}

func TestCloseWithoutResources(t *testing.T) {
	m := NewManager(newTestConfig(t))

	// Closing with nothing open is a no-op, not an error
	assert.NoError(t, m.ClosePage())
	assert.NoError(t, m.CloseContext())
	assert.NoError(t, m.CloseBrowser())
	assert.NoError(t, m.Shutdown())
}

func TestAccessorsBeforeCreation(t *testing.T) {
	m := NewManager(newTestConfig(t))

	assert.Nil(t, m.Page())
	assert.Nil(t, m.Context())
	assert.Nil(t, m.Browser())
}

func TestShutdownIsIdempotent(t *testing.T) {
	m := NewManager(newTestConfig(t))

	require.NoError(t, m.Shutdown())
	require.NoError(t, m.Shutdown())
}
