package browser

// Viewport represents the browser viewport dimensions.
type Viewport struct {
	Width  int
	Height int
}

// LaunchOptions configures a browser launch.
type LaunchOptions struct {
	// Type selects the browser: chromium, firefox or webkit.
	// Empty means the configured default.
	Type string

	// Headless controls whether the browser runs without a visible window.
	// Nil means the configured default.
	Headless *bool

	// SlowMo delays each operation by the given milliseconds.
	// Nil means the configured default.
	SlowMo *float64

	// Args are extra command-line arguments passed to the browser binary.
	Args []string
}

// ContextOptions configures a browser context.
type ContextOptions struct {
	// Viewport sets the context viewport size. Nil means the default.
	Viewport *Viewport

	// BaseURL is prepended to relative navigation URLs.
	BaseURL string

	// IgnoreHTTPSErrors disables TLS certificate validation.
	IgnoreHTTPSErrors bool

	// RecordVideoDir enables video recording into the given directory.
	RecordVideoDir string
}

// Default values for browser sessions.
const (
	DefaultTimeout        = 30000.0
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 720
)

// Browser type names accepted by Launch.
const (
	TypeChromium = "chromium"
	TypeFirefox  = "firefox"
	TypeWebKit   = "webkit"
)
