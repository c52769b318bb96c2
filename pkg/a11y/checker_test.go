package a11y

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func audit(t *testing.T, html string) Audit {
	t.Helper()
	a, err := NewChecker().Check(html)
	require.NoError(t, err)
	return a
}

func TestCleanPage(t *testing.T) {
	a := audit(t, `
<html><body>
  <nav><a href="/">Home</a></nav>
  <main>
    <h1>Welcome</h1>
    <h2>Section</h2>
    <img src="/logo.png" alt="Company logo">
    <label for="email">Email</label>
    <input id="email" type="text">
  </main>
</body></html>`)

	assert.Zero(t, a.Total(), a.Report())
}

func TestMissingAltText(t *testing.T) {
	a := audit(t, `<main><h1>x</h1><nav></nav><img src="/hero.png"><img src="/ok.png" alt=""></main>`)

	require.Len(t, a.MissingAltText, 1)
	assert.Contains(t, a.MissingAltText[0], "/hero.png")
}

func TestMissingFormLabels(t *testing.T) {
	a := audit(t, `
<main><h1>x</h1><nav></nav>
  <input id="email" type="text">
  <input type="hidden" name="csrf">
  <input type="text" aria-label="Search">
  <input type="text">
</main>`)

	require.Len(t, a.MissingLabels, 2)
	assert.Contains(t, a.MissingLabels[0], "email")
	assert.Contains(t, a.MissingLabels[1], "without id/name")
}

func TestHeadingStructure(t *testing.T) {
	a := audit(t, `<main><nav></nav><h2>No h1 here</h2><h5>Skipped levels</h5></main>`)

	assert.Contains(t, a.HeadingProblems, "page missing h1 heading")
	assert.Contains(t, a.HeadingProblems, "heading hierarchy skip: h5 after h2")
}

func TestMultipleH1(t *testing.T) {
	a := audit(t, `<main><nav></nav><h1>One</h1><h1>Two</h1></main>`)

	assert.Contains(t, a.HeadingProblems, "page has multiple h1 headings (2)")
}

func TestMissingLandmarks(t *testing.T) {
	a := audit(t, `<div><h1>Title</h1></div>`)

	assert.Contains(t, a.MissingLandmark, "page missing main landmark")
	assert.Contains(t, a.MissingLandmark, "page missing navigation landmark")
}

func TestLandmarkRoles(t *testing.T) {
	a := audit(t, `<div role="main"><h1>x</h1></div><div role="navigation"></div>`)

	assert.Empty(t, a.MissingLandmark)
}

func TestKeyboardIssues(t *testing.T) {
	a := audit(t, `
<main><h1>x</h1><nav></nav>
  <div onclick="go()">Click me</div>
  <div onclick="go()" tabindex="0">Fine</div>
  <div onclick="go()" role="button">Also fine</div>
  <a>Dead link</a>
</main>`)

	require.Len(t, a.KeyboardIssues, 2)
	assert.Contains(t, a.KeyboardIssues[0], "1 clickable divs")
	assert.Contains(t, a.KeyboardIssues[1], "1 links without href")
}

func TestReport(t *testing.T) {
	a := audit(t, `<div><img src="x.png"></div>`)

	report := a.Report()
	assert.Contains(t, report, "Accessibility audit:")
	assert.Contains(t, report, "Images without alt text")
}
