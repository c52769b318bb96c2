package pages

import (
	"fmt"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/entrhq/harbor/pkg/logging"
	"github.com/entrhq/harbor/pkg/report"
)

// pollInterval is how often assertion helpers re-check the page.
const pollInterval = 250 * time.Millisecond

// Options configures a page object.
type Options struct {
	// BaseURL is the application root the page's relative URL is joined to.
	BaseURL string

	// Timeout is the default operation timeout in milliseconds.
	Timeout float64

	// Screenshots, when set, receives a capture whenever an interaction
	// fails, so failures come with visual context.
	Screenshots *report.Screenshots
}

// BasePage bundles the common page operations every page object needs.
// Concrete page objects embed it and add their selector catalog.
type BasePage struct {
	page    playwright.Page
	baseURL string
	timeout float64
	shots   *report.Screenshots
	log     *logging.Logger
}

// NewBasePage creates a base page over a Playwright page.
func NewBasePage(page playwright.Page, opts Options) *BasePage {
	if opts.Timeout == 0 {
		opts.Timeout = 30000
	}
	log, _ := logging.NewLogger("pages")
	return &BasePage{
		page:    page,
		baseURL: opts.BaseURL,
		timeout: opts.Timeout,
		shots:   opts.Screenshots,
		log:     log,
	}
}

// Page returns the underlying Playwright page.
func (b *BasePage) Page() playwright.Page { return b.page }

// Timeout returns the default timeout in milliseconds.
func (b *BasePage) Timeout() float64 { return b.timeout }

// resolveTimeout picks an explicit timeout over the default.
func (b *BasePage) resolveTimeout(timeout float64) float64 {
	if timeout > 0 {
		return timeout
	}
	return b.timeout
}

func (b *BasePage) timeoutDuration() time.Duration {
	return time.Duration(b.timeout) * time.Millisecond
}

// captureError takes a screenshot for a failed interaction, if a screenshot
// helper is wired in. Capture failures are logged, not propagated.
func (b *BasePage) captureError(kind string) {
	if b.shots == nil {
		return
	}
	if _, err := b.shots.Capture(b.page, fmt.Sprintf("%s_error_%s", kind, time.Now().Format("150405"))); err != nil {
		b.log.Warnf("failed to capture %s error screenshot: %v", kind, err)
	}
}

// Navigation

// Navigate goes to the given URL, waiting for DOM content to load.
// Relative URLs are joined to the configured base URL.
func (b *BasePage) Navigate(url string) error {
	target := JoinURL(b.baseURL, url)
	b.log.Infof("navigating to %s", target)

	_, err := b.page.Goto(target, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(b.timeout),
	})
	if err != nil {
		b.captureError("navigation")
		return fmt.Errorf("failed to navigate to %s: %w", target, err)
	}
	return nil
}

// URL returns the current page URL.
func (b *BasePage) URL() string { return b.page.URL() }

// Title returns the page title.
func (b *BasePage) Title() (string, error) {
	title, err := b.page.Title()
	if err != nil {
		return "", fmt.Errorf("failed to read title: %w", err)
	}
	return title, nil
}

// Reload reloads the current page.
func (b *BasePage) Reload() error {
	_, err := b.page.Reload(playwright.PageReloadOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})
	if err != nil {
		return fmt.Errorf("failed to reload: %w", err)
	}
	return nil
}

// Back navigates back in browser history.
func (b *BasePage) Back() error {
	_, err := b.page.GoBack(playwright.PageGoBackOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})
	if err != nil {
		return fmt.Errorf("failed to go back: %w", err)
	}
	return nil
}

// Forward navigates forward in browser history.
func (b *BasePage) Forward() error {
	_, err := b.page.GoForward(playwright.PageGoForwardOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})
	if err != nil {
		return fmt.Errorf("failed to go forward: %w", err)
	}
	return nil
}

// Waiting

// WaitVisible waits for the element to be visible.
func (b *BasePage) WaitVisible(selector string, timeout float64) error {
	err := b.page.Locator(selector).WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(b.resolveTimeout(timeout)),
	})
	if err != nil {
		b.captureError("wait")
		return fmt.Errorf("element not visible: %s: %w", selector, err)
	}
	return nil
}

// WaitHidden waits for the element to be hidden or detached.
func (b *BasePage) WaitHidden(selector string, timeout float64) error {
	err := b.page.Locator(selector).WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateHidden,
		Timeout: playwright.Float(b.resolveTimeout(timeout)),
	})
	if err != nil {
		return fmt.Errorf("element not hidden: %s: %w", selector, err)
	}
	return nil
}

// WaitForURL waits for the page URL to match the pattern (glob).
func (b *BasePage) WaitForURL(pattern string, timeout float64) error {
	err := b.page.WaitForURL(pattern, playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(b.resolveTimeout(timeout)),
	})
	if err != nil {
		return fmt.Errorf("url did not match %s: %w", pattern, err)
	}
	return nil
}

// WaitForLoadState waits for the given load state (load, domcontentloaded,
// networkidle).
func (b *BasePage) WaitForLoadState(state string) error {
	opts := playwright.PageWaitForLoadStateOptions{
		Timeout: playwright.Float(b.timeout),
	}
	switch state {
	case "domcontentloaded":
		opts.State = playwright.LoadStateDomcontentloaded
	case "networkidle":
		opts.State = playwright.LoadStateNetworkidle
	default:
		opts.State = playwright.LoadStateLoad
	}

	if err := b.page.WaitForLoadState(opts); err != nil {
		return fmt.Errorf("load state %s not reached: %w", state, err)
	}
	return nil
}

// Interaction

// Click clicks the element matching the selector.
func (b *BasePage) Click(selector string) error {
	b.log.Debugf("clicking %s", selector)
	err := b.page.Locator(selector).Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(b.timeout),
	})
	if err != nil {
		b.captureError("click")
		return fmt.Errorf("failed to click %s: %w", selector, err)
	}
	return nil
}

// DblClick double-clicks the element matching the selector.
func (b *BasePage) DblClick(selector string) error {
	err := b.page.Locator(selector).Dblclick(playwright.LocatorDblclickOptions{
		Timeout: playwright.Float(b.timeout),
	})
	if err != nil {
		return fmt.Errorf("failed to double-click %s: %w", selector, err)
	}
	return nil
}

// Fill replaces the value of the input matching the selector.
func (b *BasePage) Fill(selector, value string) error {
	b.log.Debugf("filling %s", selector)
	err := b.page.Locator(selector).Fill(value, playwright.LocatorFillOptions{
		Timeout: playwright.Float(b.timeout),
	})
	if err != nil {
		b.captureError("fill")
		return fmt.Errorf("failed to fill %s: %w", selector, err)
	}
	return nil
}

// Type types text into the element one key at a time with the given delay
// in milliseconds between keystrokes.
func (b *BasePage) Type(selector, text string, delay float64) error {
	err := b.page.Locator(selector).PressSequentially(text, playwright.LocatorPressSequentiallyOptions{
		Delay:   playwright.Float(delay),
		Timeout: playwright.Float(b.timeout),
	})
	if err != nil {
		return fmt.Errorf("failed to type into %s: %w", selector, err)
	}
	return nil
}

// Clear empties the input matching the selector.
func (b *BasePage) Clear(selector string) error {
	err := b.page.Locator(selector).Clear(playwright.LocatorClearOptions{
		Timeout: playwright.Float(b.timeout),
	})
	if err != nil {
		return fmt.Errorf("failed to clear %s: %w", selector, err)
	}
	return nil
}

// SelectOption selects an option by value in a dropdown.
func (b *BasePage) SelectOption(selector, value string) error {
	_, err := b.page.Locator(selector).SelectOption(playwright.SelectOptionValues{
		Values: &[]string{value},
	}, playwright.LocatorSelectOptionOptions{
		Timeout: playwright.Float(b.timeout),
	})
	if err != nil {
		return fmt.Errorf("failed to select %q in %s: %w", value, selector, err)
	}
	return nil
}

// Check checks a checkbox or radio button.
func (b *BasePage) Check(selector string) error {
	err := b.page.Locator(selector).Check(playwright.LocatorCheckOptions{
		Timeout: playwright.Float(b.timeout),
	})
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", selector, err)
	}
	return nil
}

// Uncheck unchecks a checkbox.
func (b *BasePage) Uncheck(selector string) error {
	err := b.page.Locator(selector).Uncheck(playwright.LocatorUncheckOptions{
		Timeout: playwright.Float(b.timeout),
	})
	if err != nil {
		return fmt.Errorf("failed to uncheck %s: %w", selector, err)
	}
	return nil
}

// Hover hovers over the element matching the selector.
func (b *BasePage) Hover(selector string) error {
	err := b.page.Locator(selector).Hover(playwright.LocatorHoverOptions{
		Timeout: playwright.Float(b.timeout),
	})
	if err != nil {
		return fmt.Errorf("failed to hover %s: %w", selector, err)
	}
	return nil
}

// Press sends a key press to the page.
func (b *BasePage) Press(key string) error {
	if err := b.page.Keyboard().Press(key); err != nil {
		return fmt.Errorf("failed to press %s: %w", key, err)
	}
	return nil
}

// Queries

// Text returns the text content of the element matching the selector.
func (b *BasePage) Text(selector string) (string, error) {
	text, err := b.page.Locator(selector).TextContent(playwright.LocatorTextContentOptions{
		Timeout: playwright.Float(b.timeout),
	})
	if err != nil {
		return "", fmt.Errorf("failed to read text of %s: %w", selector, err)
	}
	return text, nil
}

// Attribute returns the value of an attribute of the element.
func (b *BasePage) Attribute(selector, name string) (string, error) {
	value, err := b.page.Locator(selector).GetAttribute(name, playwright.LocatorGetAttributeOptions{
		Timeout: playwright.Float(b.timeout),
	})
	if err != nil {
		return "", fmt.Errorf("failed to read attribute %s of %s: %w", name, selector, err)
	}
	return value, nil
}

// IsVisible reports whether the element is currently visible. A selector
// that matches nothing is not visible, not an error.
func (b *BasePage) IsVisible(selector string) bool {
	visible, err := b.page.Locator(selector).IsVisible()
	if err != nil {
		return false
	}
	return visible
}

// IsEnabled reports whether the element is enabled.
func (b *BasePage) IsEnabled(selector string) (bool, error) {
	enabled, err := b.page.Locator(selector).IsEnabled()
	if err != nil {
		return false, fmt.Errorf("failed to check enabled state of %s: %w", selector, err)
	}
	return enabled, nil
}

// IsChecked reports whether the checkbox or radio is checked.
func (b *BasePage) IsChecked(selector string) (bool, error) {
	checked, err := b.page.Locator(selector).IsChecked()
	if err != nil {
		return false, fmt.Errorf("failed to check checked state of %s: %w", selector, err)
	}
	return checked, nil
}

// Count returns how many elements match the selector.
func (b *BasePage) Count(selector string) (int, error) {
	count, err := b.page.Locator(selector).Count()
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", selector, err)
	}
	return count, nil
}

// CaptureScreenshot captures the current page, when a screenshot helper is
// wired in.
func (b *BasePage) CaptureScreenshot(name string) (string, error) {
	if b.shots == nil {
		return "", fmt.Errorf("no screenshot helper configured")
	}
	return b.shots.Capture(b.page, name)
}

// Assertions. These poll until the condition holds or the page timeout
// elapses, and return an error rather than failing a test directly so step
// definitions can attach context.

// URLContains reports whether the current URL contains the fragment,
// checked once without polling.
func (b *BasePage) URLContains(fragment string) bool {
	return strings.Contains(strings.ToLower(b.page.URL()), strings.ToLower(fragment))
}

// AssertURLContains asserts the current URL contains the fragment.
func (b *BasePage) AssertURLContains(fragment string) error {
	return b.poll(fmt.Sprintf("url to contain %q", fragment), func() bool {
		return strings.Contains(strings.ToLower(b.page.URL()), strings.ToLower(fragment))
	})
}

// AssertTitleContains asserts the page title contains the fragment.
func (b *BasePage) AssertTitleContains(fragment string) error {
	return b.poll(fmt.Sprintf("title to contain %q", fragment), func() bool {
		title, err := b.page.Title()
		return err == nil && strings.Contains(strings.ToLower(title), strings.ToLower(fragment))
	})
}

// AssertVisible asserts the element is visible.
func (b *BasePage) AssertVisible(selector string) error {
	if err := b.WaitVisible(selector, 0); err != nil {
		return err
	}
	return nil
}

// AssertText asserts the element's text contains the expected fragment.
func (b *BasePage) AssertText(selector, expected string) error {
	var last string
	err := b.poll(fmt.Sprintf("%s to contain %q", selector, expected), func() bool {
		text, err := b.page.Locator(selector).TextContent(playwright.LocatorTextContentOptions{
			Timeout: playwright.Float(float64(pollInterval.Milliseconds())),
		})
		if err != nil {
			return false
		}
		last = text
		return strings.Contains(strings.ToLower(text), strings.ToLower(expected))
	})
	if err != nil {
		b.captureError("assert_text")
		if last != "" {
			return fmt.Errorf("%w (last text: %q)", err, last)
		}
		return err
	}
	return nil
}

// poll re-checks cond until it holds or the timeout elapses.
func (b *BasePage) poll(what string, cond func() bool) error {
	deadline := time.Now().Add(b.timeoutDuration())
	for {
		if cond() {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("timed out waiting for %s", what)
		}
		time.Sleep(pollInterval)
	}
}

// JoinURL joins a base URL and a path or absolute URL. Absolute URLs pass
// through untouched.
func JoinURL(base, path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") || strings.HasPrefix(path, "data:") {
		return path
	}
	if base == "" {
		return path
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
