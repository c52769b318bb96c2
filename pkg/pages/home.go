package pages

import (
	"time"

	"github.com/playwright-community/playwright-go"
)

// Home page selectors.
const (
	homeWelcomeMessage    = ".welcome-message"
	homeUserProfile       = "#user-profile"
	homeLogoutButton      = "button[data-testid='logout']"
	homeNavigationMenu    = ".nav-menu"
	homeSearchBox         = "#search"
	homeNotificationsIcon = ".notifications-icon"
	homeSettingsLink      = "a[href*='settings']"
	homeProfileDropdown   = ".profile-dropdown"
	homeUserName          = ".user-name"
)

// HomePage is the page object for the dashboard shown after login.
type HomePage struct {
	*BasePage
}

// NewHomePage creates a home page object.
func NewHomePage(page playwright.Page, opts Options) *HomePage {
	return &HomePage{BasePage: NewBasePage(page, opts)}
}

// Open navigates to the dashboard.
func (p *HomePage) Open() error {
	return p.Navigate("/dashboard")
}

// WelcomeMessage returns the welcome banner text.
func (p *HomePage) WelcomeMessage() (string, error) {
	return p.Text(homeWelcomeMessage)
}

// WelcomeMessageVisible reports whether the welcome banner appears within
// the given timeout.
func (p *HomePage) WelcomeMessageVisible(timeout float64) bool {
	return p.WaitVisible(homeWelcomeMessage, timeout) == nil
}

// UserName returns the logged-in user's display name.
func (p *HomePage) UserName() (string, error) {
	return p.Text(homeUserName)
}

// Search fills the search box and submits with Enter.
func (p *HomePage) Search(query string) error {
	p.log.Infof("searching for %q", query)
	if err := p.Fill(homeSearchBox, query); err != nil {
		return err
	}
	return p.Press("Enter")
}

// Logout logs the user out, opening the profile dropdown first when the UI
// hides the logout button behind it.
func (p *HomePage) Logout() error {
	p.log.Infof("logging out")
	if p.IsVisible(homeProfileDropdown) {
		if err := p.Click(homeProfileDropdown); err != nil {
			return err
		}
		// Give the dropdown animation a moment
		time.Sleep(500 * time.Millisecond)
	}
	return p.Click(homeLogoutButton)
}

// IsLoggedIn reports whether the user profile widget is shown.
func (p *HomePage) IsLoggedIn(timeout float64) bool {
	return p.WaitVisible(homeUserProfile, timeout) == nil
}

// ClickNotifications opens the notifications panel.
func (p *HomePage) ClickNotifications() error {
	return p.Click(homeNotificationsIcon)
}

// ClickSettings follows the settings link.
func (p *HomePage) ClickSettings() error {
	return p.Click(homeSettingsLink)
}

// IsOpen reports whether the current URL is the dashboard.
func (p *HomePage) IsOpen() bool {
	return p.URLContains("dashboard") || p.URLContains("home")
}

// VerifyLoggedIn checks that the dashboard loaded and the user profile is
// visible. Returns nil on success.
func (p *HomePage) VerifyLoggedIn() error {
	if err := p.AssertURLContains("dashboard"); err != nil {
		return err
	}
	return p.WaitVisible(homeUserProfile, 5000)
}
