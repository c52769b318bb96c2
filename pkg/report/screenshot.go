package report

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/spf13/afero"

	"github.com/entrhq/harbor/pkg/logging"
)

// Screenshots captures and manages page screenshots under a single
// directory. Failure captures get a FAILED_ prefix so they are easy to spot.
type Screenshots struct {
	fs  afero.Fs
	dir string
	log *logging.Logger
	now func() time.Time
}

// NewScreenshots creates a screenshot helper writing to dir.
func NewScreenshots(dir string) *Screenshots {
	return NewScreenshotsFs(afero.NewOsFs(), dir)
}

// NewScreenshotsFs creates a screenshot helper over an explicit filesystem.
func NewScreenshotsFs(fs afero.Fs, dir string) *Screenshots {
	log, _ := logging.NewLogger("screenshots")
	return &Screenshots{
		fs:  fs,
		dir: dir,
		log: log,
		now: time.Now,
	}
}

// Dir returns the screenshot directory.
func (s *Screenshots) Dir() string { return s.dir }

// Capture takes a screenshot of the current page. An empty name gets a
// timestamped one. Returns the path of the written file.
func (s *Screenshots) Capture(page playwright.Page, name string) (string, error) {
	return s.capture(page, name, false)
}

// CaptureFullPage takes a full-page screenshot.
func (s *Screenshots) CaptureFullPage(page playwright.Page, name string) (string, error) {
	return s.capture(page, name, true)
}

func (s *Screenshots) capture(page playwright.Page, name string, fullPage bool) (string, error) {
	path := filepath.Join(s.dir, s.fileName(name, "screenshot"))

	data, err := page.Screenshot(playwright.PageScreenshotOptions{
		FullPage: playwright.Bool(fullPage),
	})
	if err != nil {
		return "", fmt.Errorf("screenshot failed: %w", err)
	}

	if err := s.write(path, data); err != nil {
		return "", err
	}

	s.log.Infof("screenshot captured: %s", path)
	return path, nil
}

// CaptureElement takes a screenshot of the first element matching selector.
func (s *Screenshots) CaptureElement(page playwright.Page, selector, name string) (string, error) {
	path := filepath.Join(s.dir, s.fileName(name, "element"))

	data, err := page.Locator(selector).Screenshot(playwright.LocatorScreenshotOptions{})
	if err != nil {
		return "", fmt.Errorf("element screenshot failed for %s: %w", selector, err)
	}

	if err := s.write(path, data); err != nil {
		return "", err
	}

	s.log.Infof("element screenshot captured: %s", path)
	return path, nil
}

// CaptureFailure takes a full-page screenshot for a failed scenario or test.
func (s *Screenshots) CaptureFailure(page playwright.Page, testName string) (string, error) {
	timestamp := s.now().Format("20060102_150405")
	name := fmt.Sprintf("FAILED_%s_%s", sanitizeName(testName), timestamp)

	s.log.Warnf("capturing failure screenshot: %s", name)
	return s.CaptureFullPage(page, name)
}

// CleanupOlderThan removes screenshots older than the given age and returns
// how many were deleted.
func (s *Screenshots) CleanupOlderThan(age time.Duration) (int, error) {
	exists, err := afero.DirExists(s.fs, s.dir)
	if err != nil || !exists {
		return 0, err
	}

	entries, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read screenshot directory: %w", err)
	}

	cutoff := s.now().Add(-age)
	deleted := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".png") {
			continue
		}
		if entry.ModTime().Before(cutoff) {
			if err := s.fs.Remove(filepath.Join(s.dir, entry.Name())); err != nil {
				return deleted, fmt.Errorf("failed to remove %s: %w", entry.Name(), err)
			}
			deleted++
		}
	}

	if deleted > 0 {
		s.log.Infof("cleaned up %d old screenshots", deleted)
	}
	return deleted, nil
}

// fileName builds the final .png file name from a possibly empty name.
func (s *Screenshots) fileName(name, prefix string) string {
	if name == "" {
		name = fmt.Sprintf("%s_%s", prefix, s.now().Format("20060102_150405.000"))
	}
	name = sanitizeName(name)
	if !strings.HasSuffix(name, ".png") {
		name += ".png"
	}
	return name
}

func (s *Screenshots) write(path string, data []byte) error {
	if err := s.fs.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create screenshot directory: %w", err)
	}
	if err := afero.WriteFile(s.fs, path, data, 0640); err != nil {
		return fmt.Errorf("failed to write screenshot: %w", err)
	}
	return nil
}
