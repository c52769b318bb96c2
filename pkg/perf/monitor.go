package perf

import (
	"fmt"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/tidwall/gjson"

	"github.com/entrhq/harbor/pkg/logging"
)

// NavigationTiming holds the browser's navigation timing for the current
// page, read from the Performance API.
type NavigationTiming struct {
	DOMContentLoaded time.Duration `json:"dom_content_loaded"`
	Load             time.Duration `json:"load"`
	ResponseEnd      time.Duration `json:"response_end"`
}

// Metrics is a snapshot of a monitoring window.
type Metrics struct {
	TotalDuration   time.Duration `json:"total_duration"`
	AveragePageLoad time.Duration `json:"average_page_load"`
	PageLoads       int           `json:"page_loads"`
	Timestamp       time.Time     `json:"timestamp"`
}

// Monitor tracks timing during a test run: overall wall clock and individual
// page load times.
type Monitor struct {
	mu        sync.Mutex
	log       *logging.Logger
	start     time.Time
	pageLoads []time.Duration
	history   []Metrics
}

// NewMonitor creates a performance monitor.
func NewMonitor() *Monitor {
	log, _ := logging.NewLogger("perf")
	return &Monitor{log: log}
}

// Start begins a monitoring window.
func (m *Monitor) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.start = time.Now()
	m.log.Infof("performance monitoring started")
}

// Stop ends the monitoring window and returns its metrics. Stopping without
// a Start returns zero metrics.
func (m *Monitor) Stop() Metrics {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.start.IsZero() {
		m.log.Warnf("monitoring was not started")
		return Metrics{}
	}

	metrics := Metrics{
		TotalDuration:   time.Since(m.start),
		AveragePageLoad: m.averageLocked(),
		PageLoads:       len(m.pageLoads),
		Timestamp:       time.Now(),
	}
	m.history = append(m.history, metrics)
	m.start = time.Time{}

	m.log.Infof("run took %s over %d page loads (avg load %s)",
		metrics.TotalDuration.Round(time.Millisecond), metrics.PageLoads,
		metrics.AveragePageLoad.Round(time.Millisecond))
	return metrics
}

// RecordPageLoad records one page load duration.
func (m *Monitor) RecordPageLoad(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pageLoads = append(m.pageLoads, d)
	m.log.Debugf("page load recorded: %s", d)
}

// AveragePageLoad returns the mean of recorded page loads.
func (m *Monitor) AveragePageLoad() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.averageLocked()
}

func (m *Monitor) averageLocked() time.Duration {
	if len(m.pageLoads) == 0 {
		return 0
	}
	var total time.Duration
	for _, d := range m.pageLoads {
		total += d
	}
	return total / time.Duration(len(m.pageLoads))
}

// History returns all metrics snapshots recorded so far.
func (m *Monitor) History() []Metrics {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Metrics(nil), m.history...)
}

// Reset clears all recorded data.
func (m *Monitor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.start = time.Time{}
	m.pageLoads = nil
	m.history = nil
}

// CaptureNavigationTiming reads the navigation timing entry of the current
// page and records its load time.
func (m *Monitor) CaptureNavigationTiming(page playwright.Page) (NavigationTiming, error) {
	result, err := page.Evaluate("() => JSON.stringify(performance.getEntriesByType('navigation')[0] || {})")
	if err != nil {
		return NavigationTiming{}, fmt.Errorf("failed to read navigation timing: %w", err)
	}

	raw, ok := result.(string)
	if !ok {
		return NavigationTiming{}, fmt.Errorf("unexpected navigation timing payload: %T", result)
	}

	timing := parseNavigationTiming(raw)
	if timing.Load > 0 {
		m.RecordPageLoad(timing.Load)
	}
	return timing, nil
}

// parseNavigationTiming extracts millisecond marks from a serialized
// PerformanceNavigationTiming entry.
func parseNavigationTiming(raw string) NavigationTiming {
	ms := func(key string) time.Duration {
		return time.Duration(gjson.Get(raw, key).Float() * float64(time.Millisecond))
	}
	return NavigationTiming{
		DOMContentLoaded: ms("domContentLoadedEventEnd"),
		Load:             ms("loadEventEnd"),
		ResponseEnd:      ms("responseEnd"),
	}
}
