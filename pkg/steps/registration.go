package steps

import (
	"fmt"
	"strings"

	"github.com/cucumber/godog"

	"github.com/entrhq/harbor/pkg/config"
)

// registerRegistrationSteps binds the signup form sentences. Form data comes
// from the generator so every run registers a fresh user.
func (w *world) registerRegistrationSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^I am on the registration page$`, w.iAmOnTheRegistrationPage)
	ctx.Step(`^I fill in the registration form with valid data$`, w.iFillInTheRegistrationFormWithValidData)
	ctx.Step(`^I fill in the registration form with an already registered email$`, w.iFillInTheRegistrationFormWithRegisteredEmail)
	ctx.Step(`^I enter an invalid email format$`, w.iEnterAnInvalidEmailFormat)
	ctx.Step(`^I enter a weak password$`, w.iEnterAWeakPassword)
	ctx.Step(`^I accept the terms and conditions$`, w.iAcceptTheTermsAndConditions)
	ctx.Step(`^I submit the registration form$`, w.iSubmitTheRegistrationForm)

	ctx.Step(`^I should see a registration success message$`, w.iShouldSeeARegistrationSuccessMessage)
	ctx.Step(`^I should see registration error "([^"]*)"$`, w.iShouldSeeRegistrationError)
	ctx.Step(`^I should see an email validation error$`, w.iShouldSeeAnEmailValidationError)
	ctx.Step(`^I should see a password strength error$`, w.iShouldSeeAPasswordStrengthError)
}

func (w *world) iAmOnTheRegistrationPage() error {
	if err := w.registration.Open(); err != nil {
		return err
	}
	if !w.registration.IsOpen() {
		return fmt.Errorf("registration page did not open, current url: %s", w.registration.URL())
	}
	return nil
}

func (w *world) iFillInTheRegistrationFormWithValidData() error {
	user, err := w.suite.gen.User()
	if err != nil {
		return fmt.Errorf("failed to generate user: %w", err)
	}
	w.values["registered_email"] = user.Email
	return w.registration.FillForm(user)
}

// iFillInTheRegistrationFormWithRegisteredEmail generates fresh data but
// reuses the valid test user's email, so the duplicate check fires.
func (w *world) iFillInTheRegistrationFormWithRegisteredEmail() error {
	existing, ok := w.suite.cfg.TestUser("valid")
	if !ok {
		return fmt.Errorf("no %q user in test data", "valid")
	}

	user, err := w.suite.gen.User()
	if err != nil {
		return fmt.Errorf("failed to generate user: %w", err)
	}
	user.Email = existing.Email
	return w.registration.FillForm(user)
}

func (w *world) iEnterAnInvalidEmailFormat() error {
	return w.registration.FillForm(config.User{Email: "not-an-email"})
}

func (w *world) iEnterAWeakPassword() error {
	return w.registration.FillForm(config.User{Password: "123"})
}

func (w *world) iAcceptTheTermsAndConditions() error {
	return w.registration.AcceptTerms()
}

func (w *world) iSubmitTheRegistrationForm() error {
	return w.registration.Submit()
}

func (w *world) iShouldSeeARegistrationSuccessMessage() error {
	if !w.registration.SuccessVisible(10000) {
		return fmt.Errorf("registration success message not shown")
	}
	return nil
}

func (w *world) iShouldSeeRegistrationError(expected string) error {
	if !w.registration.ErrorVisible(5000) {
		return fmt.Errorf("registration error not shown")
	}
	actual, err := w.registration.ErrorMessage()
	if err != nil {
		return err
	}
	if !strings.Contains(strings.ToLower(actual), strings.ToLower(expected)) {
		return fmt.Errorf("registration error %q does not contain %q", actual, expected)
	}
	return nil
}

func (w *world) iShouldSeeAnEmailValidationError() error {
	if !w.registration.EmailErrorVisible(5000) {
		return fmt.Errorf("email validation error not shown")
	}
	return nil
}

func (w *world) iShouldSeeAPasswordStrengthError() error {
	if !w.registration.PasswordErrorVisible(5000) {
		return fmt.Errorf("password strength error not shown")
	}
	return nil
}
