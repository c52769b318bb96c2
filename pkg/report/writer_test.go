package report

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterSummary(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := NewWriterFs(fs, "reports")

	w.Record(ScenarioResult{Name: "Successful login", Feature: "login", Status: StatusPassed, Duration: 2 * time.Second})
	w.Record(ScenarioResult{Name: "Wrong password", Feature: "login", Status: StatusFailed, Error: "error message not shown"})
	w.Record(ScenarioResult{Name: "Signup link", Feature: "login", Status: StatusSkipped})

	require.NoError(t, w.Finish())

	data, err := afero.ReadFile(fs, "reports/summary.json")
	require.NoError(t, err)

	var summary Summary
	require.NoError(t, json.Unmarshal(data, &summary))

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 1, summary.Passed)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 1, summary.Skipped)
	assert.Len(t, summary.Results, 3)
	assert.NotEmpty(t, summary.RunID)
	assert.False(t, summary.FinishedAt.IsZero())
}

func TestWriterSummaryCopy(t *testing.T) {
	w := NewWriterFs(afero.NewMemMapFs(), "reports")
	w.Record(ScenarioResult{Name: "one", Status: StatusPassed})

	s := w.Summary()
	s.Results[0].Name = "mutated"

	assert.Equal(t, "one", w.Summary().Results[0].Name)
}

func TestWriteEnvironment(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := NewWriterFs(fs, "reports")

	require.NoError(t, w.WriteEnvironment(map[string]string{
		"Browser":     "chromium",
		"Environment": "dev",
		"Base_URL":    "https://app.test",
	}))

	data, err := afero.ReadFile(fs, "reports/environment.properties")
	require.NoError(t, err)

	// Keys come out sorted for stable diffs
	assert.Equal(t, "Base_URL=https://app.test\nBrowser=chromium\nEnvironment=dev\n", string(data))
}

func TestAttachments(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := NewWriterFs(fs, "reports")

	path, err := w.AttachText("console output", "hello")
	require.NoError(t, err)
	assert.Equal(t, "reports/attachments/console_output.txt", path)

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	path, err = w.AttachJSON("metrics", map[string]int{"loads": 3})
	require.NoError(t, err)

	data, err = afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"loads": 3}`, string(data))
}

func TestAttachFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "tmp/trace.log", []byte("trace"), 0640))

	w := NewWriterFs(fs, "reports")
	path, err := w.AttachFile("tmp/trace.log")
	require.NoError(t, err)

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Equal(t, "trace", string(data))

	_, err = w.AttachFile("tmp/missing.log")
	assert.Error(t, err)
}
