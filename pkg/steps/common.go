package steps

import (
	"fmt"

	"github.com/cucumber/godog"

	"github.com/entrhq/harbor/pkg/a11y"
)

// registerCommonSteps binds the navigation, search, screenshot and
// accessibility sentences shared by every feature.
func (w *world) registerCommonSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^I navigate to "([^"]*)"$`, w.iNavigateTo)
	ctx.Step(`^I reload the page$`, w.iReloadThePage)
	ctx.Step(`^I go back$`, w.iGoBack)
	ctx.Step(`^the page title should contain "([^"]*)"$`, w.thePageTitleShouldContain)
	ctx.Step(`^the current URL should contain "([^"]*)"$`, w.theCurrentURLShouldContain)

	ctx.Step(`^I search for "([^"]*)"$`, w.iSearchFor)
	ctx.Step(`^I should see search results$`, w.iShouldSeeSearchResults)

	ctx.Step(`^I take a screenshot$`, w.iTakeAScreenshot)
	ctx.Step(`^I capture a screenshot named "([^"]*)"$`, w.iCaptureAScreenshotNamed)

	ctx.Step(`^the page should have no accessibility violations$`, w.thePageShouldHaveNoAccessibilityViolations)
}

func (w *world) iNavigateTo(url string) error {
	return w.base.Navigate(url)
}

func (w *world) iReloadThePage() error {
	return w.base.Reload()
}

func (w *world) iGoBack() error {
	return w.base.Back()
}

func (w *world) thePageTitleShouldContain(fragment string) error {
	return w.base.AssertTitleContains(fragment)
}

func (w *world) theCurrentURLShouldContain(fragment string) error {
	return w.base.AssertURLContains(fragment)
}

func (w *world) iSearchFor(query string) error {
	w.values["search_query"] = query
	return w.home.Search(query)
}

func (w *world) iShouldSeeSearchResults() error {
	if err := w.base.WaitVisible(".search-results, .results", 10000); err != nil {
		return fmt.Errorf("no search results for %q: %w", w.values["search_query"], err)
	}
	return nil
}

func (w *world) iTakeAScreenshot() error {
	_, err := w.base.CaptureScreenshot("")
	return err
}

func (w *world) iCaptureAScreenshotNamed(name string) error {
	path, err := w.base.CaptureScreenshot(name)
	if err != nil {
		return err
	}
	if _, err := w.suite.writer.AttachFile(path); err != nil {
		w.suite.log.Warnf("failed to attach screenshot %s: %v", path, err)
	}
	return nil
}

func (w *world) thePageShouldHaveNoAccessibilityViolations() error {
	audit, err := a11y.NewChecker().CheckPage(w.base.Page())
	if err != nil {
		return err
	}
	if audit.Total() > 0 {
		if _, err := w.suite.writer.AttachText("accessibility", audit.Report()); err != nil {
			w.suite.log.Warnf("failed to attach accessibility report: %v", err)
		}
		return fmt.Errorf("found %d accessibility violations:\n%s", audit.Total(), audit.Report())
	}
	return nil
}
