package steps

import (
	"fmt"
	"strings"

	"github.com/cucumber/godog"
)

// registerSiteSteps binds the public-site smoke sentences.
func (w *world) registerSiteSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^I open the public site$`, w.iOpenThePublicSite)
	ctx.Step(`^the page should be loaded$`, w.thePageShouldBeLoaded)
	ctx.Step(`^the page should have a title$`, w.thePageShouldHaveATitle)
	ctx.Step(`^the main heading should contain "([^"]*)"$`, w.theMainHeadingShouldContain)
	ctx.Step(`^the site logo should be visible$`, w.theSiteLogoShouldBeVisible)
	ctx.Step(`^the navigation menu should be visible$`, w.theNavigationMenuShouldBeVisible)
}

func (w *world) iOpenThePublicSite() error {
	return w.site.Open()
}

func (w *world) thePageShouldBeLoaded() error {
	if !w.site.IsLoaded() {
		return fmt.Errorf("page did not finish loading: %s", w.site.URL())
	}
	return nil
}

func (w *world) thePageShouldHaveATitle() error {
	if !w.site.HasTitle() {
		return fmt.Errorf("page has no title: %s", w.site.URL())
	}
	return nil
}

func (w *world) theMainHeadingShouldContain(fragment string) error {
	if !w.site.MainHeadingVisible() {
		return fmt.Errorf("no visible heading on %s", w.site.URL())
	}
	text, err := w.site.MainHeadingText()
	if err != nil {
		return err
	}
	if !strings.Contains(strings.ToLower(text), strings.ToLower(fragment)) {
		return fmt.Errorf("heading %q does not contain %q", text, fragment)
	}
	return nil
}

func (w *world) theSiteLogoShouldBeVisible() error {
	if !w.site.LogoVisible() {
		return fmt.Errorf("site logo not visible on %s", w.site.URL())
	}
	return nil
}

func (w *world) theNavigationMenuShouldBeVisible() error {
	if !w.site.NavigationVisible() {
		return fmt.Errorf("navigation menu not visible on %s", w.site.URL())
	}
	return nil
}
