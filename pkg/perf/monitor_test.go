package perf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStopWithoutStart(t *testing.T) {
	m := NewMonitor()
	assert.Equal(t, Metrics{}, m.Stop())
}

func TestMonitorWindow(t *testing.T) {
	m := NewMonitor()
	m.Start()
	m.RecordPageLoad(100 * time.Millisecond)
	m.RecordPageLoad(300 * time.Millisecond)

	metrics := m.Stop()

	assert.Equal(t, 2, metrics.PageLoads)
	assert.Equal(t, 200*time.Millisecond, metrics.AveragePageLoad)
	assert.Greater(t, metrics.TotalDuration, time.Duration(0))
	assert.Len(t, m.History(), 1)
}

func TestAverageWithNoLoads(t *testing.T) {
	m := NewMonitor()
	assert.Equal(t, time.Duration(0), m.AveragePageLoad())
}

func TestReset(t *testing.T) {
	m := NewMonitor()
	m.Start()
	m.RecordPageLoad(time.Second)
	m.Stop()

	m.Reset()

	assert.Equal(t, time.Duration(0), m.AveragePageLoad())
	assert.Empty(t, m.History())
}

func TestParseNavigationTiming(t *testing.T) {
	raw := `{"domContentLoadedEventEnd": 350.5, "loadEventEnd": 1200, "responseEnd": 180}`

	timing := parseNavigationTiming(raw)

	assert.Equal(t, 350500*time.Microsecond, timing.DOMContentLoaded)
	assert.Equal(t, 1200*time.Millisecond, timing.Load)
	assert.Equal(t, 180*time.Millisecond, timing.ResponseEnd)
}

func TestParseNavigationTimingEmpty(t *testing.T) {
	timing := parseNavigationTiming(`{}`)
	assert.Equal(t, NavigationTiming{}, timing)
}
