package pages

import (
	"github.com/playwright-community/playwright-go"

	"github.com/entrhq/harbor/pkg/config"
)

// Registration page selectors.
const (
	regFirstNameInput       = "#firstName"
	regLastNameInput        = "#lastName"
	regEmailInput           = "#email"
	regPasswordInput        = "#password"
	regConfirmPasswordInput = "#confirmPassword"
	regPhoneInput           = "#phone"
	regAddressInput         = "#address"
	regTermsCheckbox        = "#terms"
	regSubmitButton         = "button[type='submit']"
	regSuccessMessage       = ".success-message"
	regErrorMessage         = ".error-message"
	regEmailError           = "#email-error"
	regPasswordError        = "#password-error"
	regLoginLink            = "a[href*='login']"
)

// RegistrationPage is the page object for the signup form.
type RegistrationPage struct {
	*BasePage
}

// NewRegistrationPage creates a registration page object.
func NewRegistrationPage(page playwright.Page, opts Options) *RegistrationPage {
	return &RegistrationPage{BasePage: NewBasePage(page, opts)}
}

// Open navigates to the registration page.
func (p *RegistrationPage) Open() error {
	return p.Navigate("/register")
}

// FillForm fills the registration form from a user record. Empty fields are
// skipped; the confirm-password field mirrors the password.
func (p *RegistrationPage) FillForm(user config.User) error {
	p.log.Infof("filling registration form for %s", user.Email)

	fields := []struct {
		selector string
		value    string
	}{
		{regFirstNameInput, user.FirstName},
		{regLastNameInput, user.LastName},
		{regEmailInput, user.Email},
		{regPasswordInput, user.Password},
		{regConfirmPasswordInput, user.Password},
		{regPhoneInput, user.Phone},
		{regAddressInput, user.Address},
	}

	for _, f := range fields {
		if f.value == "" {
			continue
		}
		if err := p.Fill(f.selector, f.value); err != nil {
			return err
		}
	}
	return nil
}

// AcceptTerms checks the terms and conditions box.
func (p *RegistrationPage) AcceptTerms() error {
	return p.Check(regTermsCheckbox)
}

// Submit clicks the register button.
func (p *RegistrationPage) Submit() error {
	return p.Click(regSubmitButton)
}

// Register fills the form, accepts the terms and submits.
func (p *RegistrationPage) Register(user config.User) error {
	if err := p.FillForm(user); err != nil {
		return err
	}
	if err := p.AcceptTerms(); err != nil {
		return err
	}
	return p.Submit()
}

// SuccessVisible reports whether the success banner appears within the
// given timeout.
func (p *RegistrationPage) SuccessVisible(timeout float64) bool {
	return p.WaitVisible(regSuccessMessage, timeout) == nil
}

// SuccessMessage returns the text of the success banner.
func (p *RegistrationPage) SuccessMessage() (string, error) {
	return p.Text(regSuccessMessage)
}

// ErrorMessage returns the text of the error banner.
func (p *RegistrationPage) ErrorMessage() (string, error) {
	return p.Text(regErrorMessage)
}

// ErrorVisible reports whether the error banner appears within the given
// timeout.
func (p *RegistrationPage) ErrorVisible(timeout float64) bool {
	return p.WaitVisible(regErrorMessage, timeout) == nil
}

// EmailError returns the inline email validation message.
func (p *RegistrationPage) EmailError() (string, error) {
	return p.Text(regEmailError)
}

// EmailErrorVisible reports whether the inline email validation message
// appears within the given timeout.
func (p *RegistrationPage) EmailErrorVisible(timeout float64) bool {
	return p.WaitVisible(regEmailError, timeout) == nil
}

// PasswordError returns the inline password validation message.
func (p *RegistrationPage) PasswordError() (string, error) {
	return p.Text(regPasswordError)
}

// PasswordErrorVisible reports whether the inline password validation
// message appears within the given timeout.
func (p *RegistrationPage) PasswordErrorVisible(timeout float64) bool {
	return p.WaitVisible(regPasswordError, timeout) == nil
}

// ClickLoginLink follows the login link for already-registered users.
func (p *RegistrationPage) ClickLoginLink() error {
	return p.Click(regLoginLink)
}

// IsOpen reports whether the current URL is the registration page.
func (p *RegistrationPage) IsOpen() bool {
	return p.URLContains("register")
}
