package steps

import (
	"fmt"
	"strings"

	"github.com/cucumber/godog"
)

// registerLoginSteps binds the login and logout sentences.
func (w *world) registerLoginSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^I am on the login page$`, w.iAmOnTheLoginPage)
	ctx.Step(`^I am logged in$`, w.iAmLoggedIn)
	ctx.Step(`^I login with valid credentials$`, w.iLoginWithValidCredentials)
	ctx.Step(`^I login with invalid credentials$`, w.iLoginWithInvalidCredentials)
	ctx.Step(`^I enter email "([^"]*)" and password "([^"]*)"$`, w.iEnterEmailAndPassword)
	ctx.Step(`^I check the remember me checkbox$`, w.iCheckTheRememberMeCheckbox)
	ctx.Step(`^I click the login button$`, w.iClickTheLoginButton)
	ctx.Step(`^I click on the logout button$`, w.iClickOnTheLogoutButton)

	ctx.Step(`^I should be redirected to the dashboard$`, w.iShouldBeRedirectedToTheDashboard)
	ctx.Step(`^I should see a welcome message$`, w.iShouldSeeAWelcomeMessage)
	ctx.Step(`^I should see error message "([^"]*)"$`, w.iShouldSeeErrorMessage)
	ctx.Step(`^I should be redirected to the login page$`, w.iShouldBeRedirectedToTheLoginPage)
}

func (w *world) iAmOnTheLoginPage() error {
	if err := w.login.Open(); err != nil {
		return err
	}
	if !w.login.IsOpen() {
		return fmt.Errorf("login page did not open, current url: %s", w.login.URL())
	}
	return nil
}

// iAmLoggedIn is the Given form: open the login page, log in with the valid
// test user and verify the dashboard loaded.
func (w *world) iAmLoggedIn() error {
	if err := w.iAmOnTheLoginPage(); err != nil {
		return err
	}
	if err := w.iLoginWithValidCredentials(); err != nil {
		return err
	}
	return w.home.VerifyLoggedIn()
}

func (w *world) iLoginWithValidCredentials() error {
	user, ok := w.suite.cfg.TestUser("valid")
	if !ok {
		return fmt.Errorf("no %q user in test data", "valid")
	}
	return w.login.Login(user.Email, user.Password)
}

func (w *world) iLoginWithInvalidCredentials() error {
	user, ok := w.suite.cfg.TestUser("invalid")
	if !ok {
		user.Email = "nobody@invalid.example"
		user.Password = "wrong-password"
	}
	return w.login.Login(user.Email, user.Password)
}

func (w *world) iEnterEmailAndPassword(email, password string) error {
	if err := w.login.EnterEmail(email); err != nil {
		return err
	}
	return w.login.EnterPassword(password)
}

func (w *world) iCheckTheRememberMeCheckbox() error {
	return w.login.CheckRememberMe()
}

func (w *world) iClickTheLoginButton() error {
	return w.login.Submit()
}

func (w *world) iClickOnTheLogoutButton() error {
	return w.home.Logout()
}

func (w *world) iShouldBeRedirectedToTheDashboard() error {
	if !w.login.LoginSucceeded() {
		return fmt.Errorf("expected dashboard after login, current url: %s", w.login.URL())
	}
	return nil
}

func (w *world) iShouldSeeAWelcomeMessage() error {
	if !w.home.WelcomeMessageVisible(5000) {
		return fmt.Errorf("welcome message not shown")
	}
	return nil
}

func (w *world) iShouldSeeErrorMessage(expected string) error {
	if !w.login.ErrorMessageVisible(5000) {
		return fmt.Errorf("error message not shown")
	}
	actual, err := w.login.ErrorMessage()
	if err != nil {
		return err
	}
	if !strings.Contains(strings.ToLower(actual), strings.ToLower(expected)) {
		return fmt.Errorf("error message %q does not contain %q", actual, expected)
	}
	return nil
}

func (w *world) iShouldBeRedirectedToTheLoginPage() error {
	return w.login.AssertURLContains("login")
}
