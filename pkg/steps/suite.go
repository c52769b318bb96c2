// Package steps binds Gherkin sentences to page object calls and owns the
// browser lifecycle around scenarios: one browser per run, one context and
// page per scenario, a failure screenshot when a scenario fails.
package steps

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cucumber/godog"

	"github.com/entrhq/harbor/pkg/browser"
	"github.com/entrhq/harbor/pkg/config"
	"github.com/entrhq/harbor/pkg/data"
	"github.com/entrhq/harbor/pkg/logging"
	"github.com/entrhq/harbor/pkg/pages"
	"github.com/entrhq/harbor/pkg/perf"
	"github.com/entrhq/harbor/pkg/report"
)

// screenshotRetention is how long failure screenshots are kept.
const screenshotRetention = 7 * 24 * time.Hour

// Suite wires configuration, browser lifecycle and reporting into a godog
// test suite.
type Suite struct {
	cfg     *config.Config
	mgr     *browser.Manager
	shots   *report.Screenshots
	writer  *report.Writer
	monitor *perf.Monitor
	gen     *data.Generator
	log     *logging.Logger
}

// NewSuite creates the suite around the given configuration.
func NewSuite(cfg *config.Config) *Suite {
	log, _ := logging.NewLogger("steps")
	return &Suite{
		cfg:     cfg,
		mgr:     browser.NewManager(cfg),
		shots:   report.NewScreenshots(cfg.ScreenshotsDir()),
		writer:  report.NewWriter(cfg.ReportsDir()),
		monitor: perf.NewMonitor(),
		gen:     data.NewGenerator(),
		log:     log,
	}
}

// RunOptions selects what to run and how to report it.
type RunOptions struct {
	// Paths are feature files or directories. Empty means features/.
	Paths []string

	// Tags filters scenarios by tag expression.
	Tags string

	// Format is the godog output format (pretty, progress, cucumber, ...).
	Format string

	// Output receives the formatter output. Nil means stdout.
	Output io.Writer
}

// Run executes the BDD suite and returns the process exit code.
func Run(cfg *config.Config, opts RunOptions) int {
	suite := NewSuite(cfg)

	if len(opts.Paths) == 0 {
		opts.Paths = []string{"features"}
	}
	if opts.Format == "" {
		opts.Format = "pretty"
	}
	output := opts.Output
	if output == nil {
		output = os.Stdout
	}

	return godog.TestSuite{
		Name:                 "harbor",
		TestSuiteInitializer: suite.InitializeTestSuite,
		ScenarioInitializer:  suite.InitializeScenario,
		Options: &godog.Options{
			Format: opts.Format,
			Paths:  opts.Paths,
			Tags:   opts.Tags,
			Output: output,
			Strict: true,
		},
	}.Run()
}

// Writer exposes the report writer, for the CLI's result line.
func (s *Suite) Writer() *report.Writer { return s.writer }

// InitializeTestSuite registers run-scoped hooks: browser startup before the
// first scenario and teardown plus report output after the last.
func (s *Suite) InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		if err := s.cfg.EnsureDirs(); err != nil {
			s.log.Errorf("failed to prepare report directories: %v", err)
			return
		}

		if err := s.mgr.Start(); err != nil {
			s.log.Errorf("failed to start browser manager: %v", err)
			return
		}
		if _, err := s.mgr.Launch(browser.LaunchOptions{}); err != nil {
			s.log.Errorf("failed to launch browser: %v", err)
			return
		}

		s.monitor.Start()

		err := s.writer.WriteEnvironment(map[string]string{
			"Environment": s.cfg.Environment(),
			"Browser":     s.cfg.Browser(),
			"Base_URL":    s.cfg.BaseURL(),
			"Headless":    fmt.Sprintf("%v", s.cfg.Headless()),
			"Timeout":     fmt.Sprintf("%.0f", s.cfg.Timeout()),
		})
		if err != nil {
			s.log.Warnf("failed to write environment info: %v", err)
		}

		s.log.Infof("suite started (env=%s browser=%s)", s.cfg.Environment(), s.cfg.Browser())
	})

	ctx.AfterSuite(func() {
		metrics := s.monitor.Stop()
		if _, err := s.writer.AttachJSON("performance", metrics); err != nil {
			s.log.Warnf("failed to attach performance metrics: %v", err)
		}

		if _, err := s.shots.CleanupOlderThan(screenshotRetention); err != nil {
			s.log.Warnf("failed to clean up old screenshots: %v", err)
		}

		if err := s.writer.Finish(); err != nil {
			s.log.Errorf("failed to write run summary: %v", err)
		}

		if err := s.mgr.Shutdown(); err != nil {
			s.log.Errorf("failed to shut down browser manager: %v", err)
		}

		s.log.Infof("suite finished")
	})
}

// world carries the per-scenario state: the scenario's own browser context,
// page objects over it, and scratch values steps share.
type world struct {
	suite *Suite

	login        *pages.LoginPage
	home         *pages.HomePage
	registration *pages.RegistrationPage
	site         *pages.SitePage
	base         *pages.BasePage

	values  map[string]string
	started time.Time
}

// pageOptions builds the page object options for this run.
func (s *Suite) pageOptions() pages.Options {
	return pages.Options{
		BaseURL:     s.cfg.BaseURL(),
		Timeout:     s.cfg.Timeout(),
		Screenshots: s.shots,
	}
}

// siteURL returns the public site URL for smoke scenarios. The environment
// overlay may set site_url; otherwise the base URL is used.
func (s *Suite) siteURL() string {
	if v, ok := s.cfg.Value("site_url"); ok {
		if u, ok := v.(string); ok && u != "" {
			return u
		}
	}
	return s.cfg.BaseURL()
}

// InitializeScenario registers the scenario hooks and all step bindings.
// godog calls it once per scenario, so the world created here is isolated.
func (s *Suite) InitializeScenario(ctx *godog.ScenarioContext) {
	w := &world{suite: s}

	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		s.log.Infof("scenario started: %s", sc.Name)
		w.started = time.Now()
		w.values = make(map[string]string)

		ctxOpts := browser.ContextOptions{IgnoreHTTPSErrors: true}
		if mode := s.cfg.VideoMode(); mode != "off" && mode != "" {
			ctxOpts.RecordVideoDir = s.cfg.VideosDir()
		}
		if _, err := s.mgr.NewContext(ctxOpts); err != nil {
			return c, err
		}
		page, err := s.mgr.NewPage()
		if err != nil {
			return c, err
		}

		opts := s.pageOptions()
		w.login = pages.NewLoginPage(page, opts)
		w.home = pages.NewHomePage(page, opts)
		w.registration = pages.NewRegistrationPage(page, opts)
		w.site = pages.NewSitePage(page, s.siteURL(), opts)
		w.base = pages.NewBasePage(page, opts)

		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, scErr error) (context.Context, error) {
		result := report.ScenarioResult{
			Name:     sc.Name,
			Feature:  sc.Uri,
			Status:   report.StatusPassed,
			Duration: time.Since(w.started),
		}

		page := s.mgr.Page()
		if scErr != nil {
			result.Status = report.StatusFailed
			result.Error = scErr.Error()
			s.log.Errorf("scenario failed: %s: %v", sc.Name, scErr)

			if page != nil {
				if path, err := s.shots.CaptureFailure(page, sc.Name); err != nil {
					s.log.Warnf("failed to capture failure screenshot: %v", err)
				} else if _, err := s.writer.AttachFile(path); err != nil {
					s.log.Warnf("failed to attach failure screenshot: %v", err)
				}
			}
		} else if page != nil {
			if _, err := s.monitor.CaptureNavigationTiming(page); err != nil {
				s.log.Debugf("navigation timing unavailable: %v", err)
			}
		}

		s.writer.Record(result)

		if err := s.mgr.CloseContext(); err != nil {
			s.log.Warnf("failed to close scenario context: %v", err)
		}

		s.log.Infof("scenario finished: %s (%s)", sc.Name, result.Status)
		return c, scErr
	})

	w.registerCommonSteps(ctx)
	w.registerLoginSteps(ctx)
	w.registerRegistrationSteps(ctx)
	w.registerSiteSteps(ctx)
}
