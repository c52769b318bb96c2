// Package fixtures provisions browsers for package-level end-to-end tests.
//
// Tests opt in by setting HARBOR_E2E=1; without it fixtures skip, so unit
// test runs never need browser binaries installed.
package fixtures

import (
	"os"
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/harbor/pkg/browser"
	"github.com/entrhq/harbor/pkg/config"
)

// Suite manages a browser for the lifetime of a test binary. Create one per
// package in TestMain or lazily in the first test that needs it.
type Suite struct {
	Config  *config.Config
	Manager *browser.Manager
}

// NewSuite starts Playwright and launches a browser. The test is skipped
// when HARBOR_E2E is not set, and fails when the browser cannot start.
// Set HEADLESS=false to watch the browser while debugging.
func NewSuite(t *testing.T) *Suite {
	t.Helper()

	if os.Getenv("HARBOR_E2E") == "" {
		t.Skip("set HARBOR_E2E=1 to run browser tests")
	}

	cfg, err := config.Load("")
	require.NoError(t, err, "failed to load config")

	mgr := browser.NewManager(cfg)
	require.NoError(t, mgr.Start(), "failed to start playwright")

	headless := os.Getenv("HEADLESS") != "false"
	_, err = mgr.Launch(browser.LaunchOptions{
		Headless: playwright.Bool(headless),
	})
	require.NoError(t, err, "failed to launch browser")

	t.Cleanup(func() {
		require.NoError(t, mgr.Shutdown())
	})

	return &Suite{Config: cfg, Manager: mgr}
}

// NewContext creates an isolated browser context, closed when the test ends.
// Each context has independent cookies and storage.
func (s *Suite) NewContext(t *testing.T) playwright.BrowserContext {
	t.Helper()

	ctx, err := s.Manager.NewContext(browser.ContextOptions{})
	require.NoError(t, err, "failed to create browser context")

	t.Cleanup(func() { _ = ctx.Close() })
	return ctx
}

// NewPage creates a page in a fresh context, closed when the test ends.
func (s *Suite) NewPage(t *testing.T) playwright.Page {
	t.Helper()

	s.NewContext(t)
	page, err := s.Manager.NewPage()
	require.NoError(t, err, "failed to create page")

	t.Cleanup(func() { _ = page.Close() })
	return page
}
