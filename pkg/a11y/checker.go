package a11y

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/playwright-community/playwright-go"

	"github.com/entrhq/harbor/pkg/logging"
)

// Audit holds accessibility violations grouped by category.
type Audit struct {
	MissingAltText  []string `json:"missing_alt_text"`
	MissingLabels   []string `json:"missing_labels"`
	HeadingProblems []string `json:"heading_problems"`
	MissingLandmark []string `json:"missing_landmarks"`
	KeyboardIssues  []string `json:"keyboard_issues"`
}

// Total returns the number of violations across all categories.
func (a Audit) Total() int {
	return len(a.MissingAltText) + len(a.MissingLabels) + len(a.HeadingProblems) +
		len(a.MissingLandmark) + len(a.KeyboardIssues)
}

// Report renders the audit as a readable text report.
func (a Audit) Report() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Accessibility audit: %d violations\n", a.Total())

	section := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		fmt.Fprintf(&b, "\n%s (%d):\n", title, len(items))
		for _, item := range items {
			fmt.Fprintf(&b, "  - %s\n", item)
		}
	}

	section("Images without alt text", a.MissingAltText)
	section("Inputs without labels", a.MissingLabels)
	section("Heading structure", a.HeadingProblems)
	section("Missing landmarks", a.MissingLandmark)
	section("Keyboard accessibility", a.KeyboardIssues)
	return b.String()
}

// Checker audits pages for common accessibility problems. It works on the
// rendered HTML snapshot, so dynamic content is included as the browser
// sees it.
type Checker struct {
	log *logging.Logger
}

// NewChecker creates an accessibility checker.
func NewChecker() *Checker {
	log, _ := logging.NewLogger("a11y")
	return &Checker{log: log}
}

// CheckPage audits the current content of a live page.
func (c *Checker) CheckPage(page playwright.Page) (Audit, error) {
	html, err := page.Content()
	if err != nil {
		return Audit{}, fmt.Errorf("failed to read page content: %w", err)
	}
	return c.Check(html)
}

// Check audits an HTML document.
func (c *Checker) Check(html string) (Audit, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Audit{}, fmt.Errorf("failed to parse html: %w", err)
	}

	audit := Audit{
		MissingAltText:  checkAltText(doc),
		MissingLabels:   checkFormLabels(doc),
		HeadingProblems: checkHeadings(doc),
		MissingLandmark: checkLandmarks(doc),
		KeyboardIssues:  checkKeyboard(doc),
	}

	c.log.Infof("accessibility audit complete: %d violations", audit.Total())
	return audit, nil
}

func checkAltText(doc *goquery.Document) []string {
	var violations []string
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		if _, ok := s.Attr("alt"); !ok {
			src, _ := s.Attr("src")
			if src == "" {
				src = "unknown"
			}
			violations = append(violations, fmt.Sprintf("image missing alt text: %s", src))
		}
	})
	return violations
}

func checkFormLabels(doc *goquery.Document) []string {
	var violations []string
	doc.Find("input").Each(func(_ int, s *goquery.Selection) {
		inputType, _ := s.Attr("type")
		if inputType == "hidden" {
			return
		}
		if _, ok := s.Attr("aria-label"); ok {
			return
		}
		if _, ok := s.Attr("aria-labelledby"); ok {
			return
		}

		id, _ := s.Attr("id")
		if id == "" {
			if name, ok := s.Attr("name"); ok {
				id = name
			}
		}
		if id == "" {
			violations = append(violations, "input without id/name and no label")
			return
		}
		if doc.Find(fmt.Sprintf("label[for=%q]", id)).Length() == 0 {
			violations = append(violations, fmt.Sprintf("input without label: %s", id))
		}
	})
	return violations
}

func checkHeadings(doc *goquery.Document) []string {
	var violations []string

	h1Count := doc.Find("h1").Length()
	switch {
	case h1Count == 0:
		violations = append(violations, "page missing h1 heading")
	case h1Count > 1:
		violations = append(violations, fmt.Sprintf("page has multiple h1 headings (%d)", h1Count))
	}

	prev := 0
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		tag := goquery.NodeName(s)
		level, err := strconv.Atoi(strings.TrimPrefix(tag, "h"))
		if err != nil {
			return
		}
		if prev > 0 && level > prev+1 {
			violations = append(violations, fmt.Sprintf("heading hierarchy skip: %s after h%d", tag, prev))
		}
		prev = level
	})

	return violations
}

func checkLandmarks(doc *goquery.Document) []string {
	var violations []string
	if doc.Find("main, [role=main]").Length() == 0 {
		violations = append(violations, "page missing main landmark")
	}
	if doc.Find("nav, [role=navigation]").Length() == 0 {
		violations = append(violations, "page missing navigation landmark")
	}
	return violations
}

func checkKeyboard(doc *goquery.Document) []string {
	var violations []string

	clickableDivs := 0
	doc.Find("div[onclick]").Each(func(_ int, s *goquery.Selection) {
		if _, ok := s.Attr("tabindex"); ok {
			return
		}
		if role, _ := s.Attr("role"); role == "button" {
			return
		}
		clickableDivs++
	})
	if clickableDivs > 0 {
		violations = append(violations, fmt.Sprintf("found %d clickable divs without keyboard support", clickableDivs))
	}

	emptyLinks := 0
	doc.Find("a").Each(func(_ int, s *goquery.Selection) {
		if _, ok := s.Attr("href"); !ok {
			emptyLinks++
		}
	})
	if emptyLinks > 0 {
		violations = append(violations, fmt.Sprintf("found %d links without href", emptyLinks))
	}

	return violations
}
