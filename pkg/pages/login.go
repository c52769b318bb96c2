package pages

import (
	"github.com/playwright-community/playwright-go"
)

// Login page selectors.
const (
	loginEmailInput         = "#email"
	loginPasswordInput      = "#password"
	loginSubmitButton       = "button[type='submit']"
	loginErrorMessage       = ".error-message"
	loginForgotPasswordLink = "a[href*='forgot-password']"
	loginRememberMeCheckbox = "#remember-me"
	loginSignupLink         = "a[href*='signup']"
)

// LoginPage is the page object for the login page.
type LoginPage struct {
	*BasePage
}

// NewLoginPage creates a login page object.
func NewLoginPage(page playwright.Page, opts Options) *LoginPage {
	return &LoginPage{BasePage: NewBasePage(page, opts)}
}

// Open navigates to the login page.
func (p *LoginPage) Open() error {
	return p.Navigate("/login")
}

// EnterEmail fills the email field.
func (p *LoginPage) EnterEmail(email string) error {
	return p.Fill(loginEmailInput, email)
}

// EnterPassword fills the password field.
func (p *LoginPage) EnterPassword(password string) error {
	return p.Fill(loginPasswordInput, password)
}

// Submit clicks the login button.
func (p *LoginPage) Submit() error {
	return p.Click(loginSubmitButton)
}

// Login fills the credentials and submits the form.
func (p *LoginPage) Login(email, password string) error {
	p.log.Infof("logging in as %s", email)
	if err := p.EnterEmail(email); err != nil {
		return err
	}
	if err := p.EnterPassword(password); err != nil {
		return err
	}
	return p.Submit()
}

// ErrorMessage returns the text of the error banner.
func (p *LoginPage) ErrorMessage() (string, error) {
	return p.Text(loginErrorMessage)
}

// ErrorMessageVisible reports whether the error banner appears within the
// given timeout.
func (p *LoginPage) ErrorMessageVisible(timeout float64) bool {
	return p.WaitVisible(loginErrorMessage, timeout) == nil
}

// LoginSucceeded reports whether the login redirected to the dashboard.
func (p *LoginPage) LoginSucceeded() bool {
	if err := p.WaitForURL("**/dashboard", 10000); err != nil {
		p.log.Warnf("login did not reach dashboard: %v", err)
		return false
	}
	return true
}

// CheckRememberMe checks the remember-me checkbox.
func (p *LoginPage) CheckRememberMe() error {
	return p.Check(loginRememberMeCheckbox)
}

// ClickForgotPassword follows the forgot-password link.
func (p *LoginPage) ClickForgotPassword() error {
	return p.Click(loginForgotPasswordLink)
}

// ClickSignup follows the signup link.
func (p *LoginPage) ClickSignup() error {
	return p.Click(loginSignupLink)
}

// IsOpen reports whether the current URL is the login page.
func (p *LoginPage) IsOpen() bool {
	return p.URLContains("login")
}
