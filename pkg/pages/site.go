package pages

import (
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// Public site selectors.
const (
	siteMainHeading = "h1"
	siteLogo        = "header img, img[alt*='logo' i]"
	siteNavigation  = "nav"
)

// SitePage is the page object for public marketing-site smoke checks:
// the page loads, has a title, a heading and a logo.
type SitePage struct {
	*BasePage
	url string
}

// NewSitePage creates a site page object for the given URL.
func NewSitePage(page playwright.Page, url string, opts Options) *SitePage {
	return &SitePage{
		BasePage: NewBasePage(page, opts),
		url:      url,
	}
}

// Open navigates to the site and waits for DOM content.
func (p *SitePage) Open() error {
	if err := p.Navigate(p.url); err != nil {
		return err
	}
	return p.WaitForLoadState("domcontentloaded")
}

// IsLoaded reports whether the page reached DOM content loaded.
func (p *SitePage) IsLoaded() bool {
	return p.WaitForLoadState("domcontentloaded") == nil
}

// PageTitle waits for the document title to be populated and returns it.
func (p *SitePage) PageTitle() (string, error) {
	_, err := p.Page().WaitForFunction("document.title !== ''", nil, playwright.PageWaitForFunctionOptions{
		Timeout: playwright.Float(5000),
	})
	if err != nil {
		return "", fmt.Errorf("title never populated: %w", err)
	}
	return p.Title()
}

// HasTitle reports whether the page has a non-empty title.
func (p *SitePage) HasTitle() bool {
	title, err := p.PageTitle()
	return err == nil && strings.TrimSpace(title) != ""
}

// TitleContains reports whether the title contains the fragment,
// case-insensitively.
func (p *SitePage) TitleContains(fragment string) bool {
	title, err := p.PageTitle()
	if err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(title), strings.ToLower(fragment))
}

// MainHeadingVisible reports whether an h1 is visible.
func (p *SitePage) MainHeadingVisible() bool {
	return p.WaitVisible(siteMainHeading, 5000) == nil
}

// MainHeadingText returns the joined text of all h1 elements, so pages with
// several headings still produce one string to match against.
func (p *SitePage) MainHeadingText() (string, error) {
	headings := p.Page().Locator(siteMainHeading)
	count, err := headings.Count()
	if err != nil {
		return "", fmt.Errorf("failed to count headings: %w", err)
	}

	parts := make([]string, 0, count)
	for i := 0; i < count; i++ {
		text, err := headings.Nth(i).TextContent()
		if err != nil {
			continue
		}
		if t := strings.TrimSpace(text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " "), nil
}

// LogoVisible reports whether the site logo is visible.
func (p *SitePage) LogoVisible() bool {
	return p.WaitVisible(siteLogo, 5000) == nil
}

// NavigationVisible reports whether the navigation bar is visible.
func (p *SitePage) NavigationVisible() bool {
	return p.WaitVisible(siteNavigation, 5000) == nil
}
