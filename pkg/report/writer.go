package report

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/spf13/afero"

	"github.com/entrhq/harbor/pkg/logging"
)

// Status is the outcome of a scenario.
type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// ScenarioResult records the outcome of a single scenario.
type ScenarioResult struct {
	Name     string        `json:"name"`
	Feature  string        `json:"feature,omitempty"`
	Status   Status        `json:"status"`
	Duration time.Duration `json:"duration_ns"`
	Error    string        `json:"error,omitempty"`
}

// Summary aggregates the results of a run.
type Summary struct {
	RunID      string           `json:"run_id"`
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt time.Time        `json:"finished_at"`
	Total      int              `json:"total"`
	Passed     int              `json:"passed"`
	Failed     int              `json:"failed"`
	Skipped    int              `json:"skipped"`
	Results    []ScenarioResult `json:"results"`
}

// Writer collects scenario results and writes run artifacts: summary.json,
// environment.properties and attachments.
type Writer struct {
	fs      afero.Fs
	dir     string
	log     *logging.Logger
	mu      sync.Mutex
	summary Summary
}

// NewWriter creates a report writer rooted at dir on the OS filesystem.
func NewWriter(dir string) *Writer {
	return NewWriterFs(afero.NewOsFs(), dir)
}

// NewWriterFs creates a report writer over an explicit filesystem.
func NewWriterFs(fs afero.Fs, dir string) *Writer {
	log, _ := logging.NewLogger("report")
	return &Writer{
		fs:  fs,
		dir: dir,
		log: log,
		summary: Summary{
			RunID:     logging.GetRunID(),
			StartedAt: time.Now(),
		},
	}
}

// Record adds a scenario result to the summary.
func (w *Writer) Record(result ScenarioResult) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.summary.Results = append(w.summary.Results, result)
	w.summary.Total++
	switch result.Status {
	case StatusPassed:
		w.summary.Passed++
	case StatusFailed:
		w.summary.Failed++
	case StatusSkipped:
		w.summary.Skipped++
	}
}

// Summary returns a copy of the current summary.
func (w *Writer) Summary() Summary {
	w.mu.Lock()
	defer w.mu.Unlock()

	s := w.summary
	s.Results = append([]ScenarioResult(nil), w.summary.Results...)
	return s
}

// Finish stamps the end time and writes summary.json.
func (w *Writer) Finish() error {
	w.mu.Lock()
	w.summary.FinishedAt = time.Now()
	data, err := json.MarshalIndent(w.summary, "", "  ")
	w.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}

	if err := w.writeFile("summary.json", data); err != nil {
		return err
	}

	w.log.Infof("run summary written: %d total, %d passed, %d failed",
		w.summary.Total, w.summary.Passed, w.summary.Failed)
	return nil
}

// WriteEnvironment writes key=value pairs to environment.properties so the
// report carries the run's environment alongside its results.
func (w *Writer) WriteEnvironment(info map[string]string) error {
	keys := make([]string, 0, len(info))
	for k := range info {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s=%s\n", k, info[k])
	}

	return w.writeFile("environment.properties", []byte(b.String()))
}

// AttachText writes a text attachment and returns its path.
func (w *Writer) AttachText(name, text string) (string, error) {
	path := filepath.Join("attachments", sanitizeName(name)+".txt")
	if err := w.writeFile(path, []byte(text)); err != nil {
		return "", err
	}
	return filepath.Join(w.dir, path), nil
}

// AttachJSON writes a value as a JSON attachment and returns its path.
func (w *Writer) AttachJSON(name string, v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode attachment %s: %w", name, err)
	}

	path := filepath.Join("attachments", sanitizeName(name)+".json")
	if err := w.writeFile(path, data); err != nil {
		return "", err
	}
	return filepath.Join(w.dir, path), nil
}

// AttachFile copies an existing file into the attachments directory.
func (w *Writer) AttachFile(src string) (string, error) {
	data, err := afero.ReadFile(w.fs, src)
	if err != nil {
		return "", fmt.Errorf("failed to read attachment source %s: %w", src, err)
	}

	path := filepath.Join("attachments", filepath.Base(src))
	if err := w.writeFile(path, data); err != nil {
		return "", err
	}
	return filepath.Join(w.dir, path), nil
}

func (w *Writer) writeFile(rel string, data []byte) error {
	full := filepath.Join(w.dir, rel)
	if err := w.fs.MkdirAll(filepath.Dir(full), 0750); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}
	if err := afero.WriteFile(w.fs, full, data, 0640); err != nil {
		return fmt.Errorf("failed to write %s: %w", rel, err)
	}
	return nil
}

// sanitizeName makes a scenario or attachment name filesystem-safe.
func sanitizeName(name string) string {
	replacer := strings.NewReplacer(
		" ", "_",
		"/", "_",
		"\\", "_",
		":", "_",
		"\"", "",
		"'", "",
	)
	return replacer.Replace(name)
}
