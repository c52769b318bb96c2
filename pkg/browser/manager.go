package browser

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/playwright-community/playwright-go"

	"github.com/entrhq/harbor/pkg/config"
	"github.com/entrhq/harbor/pkg/logging"
)

// Manager owns the browser lifecycle for a test run: one Playwright driver,
// and the current browser, context and page created from it. Fixtures hold a
// Manager for the session scope and create contexts/pages per test.
type Manager struct {
	mu      sync.Mutex
	cfg     *config.Config
	log     *logging.Logger
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page
	started bool
}

// NewManager creates a manager bound to the given configuration.
func NewManager(cfg *config.Config) *Manager {
	log, _ := logging.NewLogger("browser")
	return &Manager{
		cfg: cfg,
		log: log,
	}
}

// Start installs browser binaries if needed and starts the Playwright
// driver. It must be called before Launch. Safe to call more than once.
func (m *Manager) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started {
		return nil
	}

	// Discard driver output so it does not interleave with runner output
	opts := &playwright.RunOptions{
		Verbose: false,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}

	if err := playwright.Install(opts); err != nil {
		return fmt.Errorf("failed to install playwright: %w", err)
	}

	pw, err := playwright.Run(opts)
	if err != nil {
		return fmt.Errorf("failed to start playwright: %w", err)
	}

	m.pw = pw
	m.started = true
	m.log.Infof("playwright driver started")
	return nil
}

// Launch starts a browser of the configured or requested type.
func (m *Manager) Launch(opts LaunchOptions) (playwright.Browser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.started {
		return nil, fmt.Errorf("manager not started: call Start first")
	}
	if m.browser != nil {
		return m.browser, nil
	}

	browserType := opts.Type
	if browserType == "" {
		browserType = m.cfg.Browser()
	}

	headless := m.cfg.Headless()
	if opts.Headless != nil {
		headless = *opts.Headless
	}

	slowMo := m.cfg.SlowMo()
	if opts.SlowMo != nil {
		slowMo = *opts.SlowMo
	}

	launchOpts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(headless),
		Args:     opts.Args,
	}
	if slowMo > 0 {
		launchOpts.SlowMo = playwright.Float(slowMo)
	}

	bt, err := m.browserType(browserType)
	if err != nil {
		return nil, err
	}

	browser, err := bt.Launch(launchOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to launch %s: %w", browserType, err)
	}

	m.browser = browser
	m.log.Infof("%s launched (headless=%v)", browserType, headless)
	return browser, nil
}

// browserType selects the Playwright browser type by name.
func (m *Manager) browserType(name string) (playwright.BrowserType, error) {
	switch strings.ToLower(name) {
	case TypeChromium:
		return m.pw.Chromium, nil
	case TypeFirefox:
		return m.pw.Firefox, nil
	case TypeWebKit:
		return m.pw.WebKit, nil
	default:
		return nil, fmt.Errorf("unsupported browser type: %s", name)
	}
}

// NewContext creates a browser context, launching the browser with defaults
// first if needed.
func (m *Manager) NewContext(opts ContextOptions) (playwright.BrowserContext, error) {
	if _, err := m.Launch(LaunchOptions{}); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	viewport := opts.Viewport
	if viewport == nil {
		viewport = &Viewport{Width: DefaultViewportWidth, Height: DefaultViewportHeight}
	}

	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = m.cfg.BaseURL()
	}

	contextOpts := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  viewport.Width,
			Height: viewport.Height,
		},
		BaseURL:           playwright.String(baseURL),
		IgnoreHttpsErrors: playwright.Bool(opts.IgnoreHTTPSErrors),
	}

	if opts.RecordVideoDir != "" {
		contextOpts.RecordVideo = &playwright.RecordVideo{
			Dir: opts.RecordVideoDir,
			Size: &playwright.Size{
				Width:  viewport.Width,
				Height: viewport.Height,
			},
		}
	}

	context, err := m.browser.NewContext(contextOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create context: %w", err)
	}

	m.context = context
	m.log.Infof("context created (viewport=%dx%d)", viewport.Width, viewport.Height)
	return context, nil
}

// NewPage creates a page in the current context, creating a default context
// first if needed. The configured timeout is applied as the page default.
func (m *Manager) NewPage() (playwright.Page, error) {
	m.mu.Lock()
	hasContext := m.context != nil
	m.mu.Unlock()

	if !hasContext {
		if _, err := m.NewContext(ContextOptions{}); err != nil {
			return nil, err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	page, err := m.context.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	page.SetDefaultTimeout(m.cfg.Timeout())
	m.page = page
	m.log.Infof("page created (timeout=%.0fms)", m.cfg.Timeout())
	return page, nil
}

// Page returns the current page, or nil if none has been created.
func (m *Manager) Page() playwright.Page {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.page
}

// Context returns the current context, or nil if none has been created.
func (m *Manager) Context() playwright.BrowserContext {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.context
}

// Browser returns the current browser, or nil if none has been launched.
func (m *Manager) Browser() playwright.Browser {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.browser
}

// ClosePage closes the current page.
func (m *Manager) ClosePage() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.page == nil {
		return nil
	}
	err := m.page.Close()
	m.page = nil
	if err != nil {
		return fmt.Errorf("failed to close page: %w", err)
	}
	m.log.Infof("page closed")
	return nil
}

// CloseContext closes the current context and any page in it.
func (m *Manager) CloseContext() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.context == nil {
		return nil
	}
	err := m.context.Close()
	m.context = nil
	m.page = nil
	if err != nil {
		return fmt.Errorf("failed to close context: %w", err)
	}
	m.log.Infof("context closed")
	return nil
}

// CloseBrowser closes the browser and everything in it.
func (m *Manager) CloseBrowser() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.browser == nil {
		return nil
	}
	err := m.browser.Close()
	m.browser = nil
	m.context = nil
	m.page = nil
	if err != nil {
		return fmt.Errorf("failed to close browser: %w", err)
	}
	m.log.Infof("browser closed")
	return nil
}

// Shutdown closes all browser resources and stops the Playwright driver.
// It tolerates partial state and is safe to call multiple times.
func (m *Manager) Shutdown() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.page != nil {
		_ = m.page.Close() // continue cleanup on error
		m.page = nil
	}
	if m.context != nil {
		_ = m.context.Close()
		m.context = nil
	}
	if m.browser != nil {
		_ = m.browser.Close()
		m.browser = nil
	}

	if m.started && m.pw != nil {
		if err := m.pw.Stop(); err != nil {
			return fmt.Errorf("failed to stop playwright: %w", err)
		}
		m.pw = nil
		m.started = false
	}

	m.log.Infof("browser manager shut down")
	return nil
}
