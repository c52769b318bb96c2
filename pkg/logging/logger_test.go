package logging

import (
	"os"
	"strings"
	"sync"
	"testing"
)

// setupTestDir points the package at a temp log directory and resets the
// run ID so each test gets a fresh log file.
func setupTestDir(t *testing.T) {
	t.Helper()

	tempDir := t.TempDir()

	configMu.Lock()
	origLogDir := logDir
	origMinLevel := minLevel
	configMu.Unlock()
	origRunID := runID

	configMu.Lock()
	logDir = tempDir
	minLevel = LevelDebug
	configMu.Unlock()
	runID = ""
	runIDOnce = sync.Once{}

	t.Cleanup(func() {
		configMu.Lock()
		logDir = origLogDir
		minLevel = origMinLevel
		configMu.Unlock()
		// A sync.Once must not be copied; rebuild its saved state instead.
		runIDOnce = sync.Once{}
		if origRunID != "" {
			runIDOnce.Do(func() {})
		}
		runID = origRunID
	})
}

func TestNewLogger(t *testing.T) {
	setupTestDir(t)

	logger, err := NewLogger("browser")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Close()

	if logger.component != "browser" {
		t.Errorf("Expected component 'browser', got %q", logger.component)
	}

	if logger.RunID() == "" {
		t.Error("Expected non-empty run ID")
	}

	if _, err := os.Stat(logger.LogPath()); os.IsNotExist(err) {
		t.Errorf("Log file does not exist at %s", logger.LogPath())
	}
}

func TestLoggerFormatting(t *testing.T) {
	setupTestDir(t)

	logger, err := NewLogger("steps")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Close()

	logger.Printf("Scenario %d started", 3)
	logger.Debugf("Debug message")
	logger.Infof("Info message")
	logger.Warnf("Warning message")
	logger.Errorf("Error message")

	content, err := os.ReadFile(logger.LogPath())
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}

	logContent := string(content)
	expectedPatterns := []string{
		"[steps] [INFO] Scenario 3 started",
		"[steps] [DEBUG] Debug message",
		"[steps] [INFO] Info message",
		"[steps] [WARN] Warning message",
		"[steps] [ERROR] Error message",
	}

	for _, pattern := range expectedPatterns {
		if !strings.Contains(logContent, pattern) {
			t.Errorf("Log content missing expected pattern: %q\nContent:\n%s", pattern, logContent)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	setupTestDir(t)

	configMu.Lock()
	minLevel = LevelWarn
	configMu.Unlock()

	logger, err := NewLogger("filtered")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Close()

	logger.Debugf("should be dropped")
	logger.Infof("should be dropped too")
	logger.Warnf("should appear")

	content, err := os.ReadFile(logger.LogPath())
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}

	logContent := string(content)
	if strings.Contains(logContent, "dropped") {
		t.Errorf("Filtered levels leaked into log:\n%s", logContent)
	}
	if !strings.Contains(logContent, "should appear") {
		t.Errorf("Warn entry missing from log:\n%s", logContent)
	}
}

func TestComponentsShareRunFile(t *testing.T) {
	setupTestDir(t)

	first, err := NewLogger("config")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	defer first.Close()

	second, err := NewLogger("report")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	defer second.Close()

	if first.LogPath() != second.LogPath() {
		t.Errorf("Expected shared log file, got %q and %q", first.LogPath(), second.LogPath())
	}
}

func TestFallbackLogger(t *testing.T) {
	setupTestDir(t)

	configMu.Lock()
	logDir = ""
	configMu.Unlock()

	logger, err := NewLogger("orphan")
	if err == nil {
		t.Fatal("Expected error when logging is not configured")
	}
	if logger == nil {
		t.Fatal("Expected fallback logger, got nil")
	}
	defer logger.Close()

	if logger.LogPath() != "" {
		t.Errorf("Expected empty log path in fallback mode, got %q", logger.LogPath())
	}

	// Must not panic when writing in fallback mode
	logger.Infof("fallback write")
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   LevelDebug,
		"info":    LevelInfo,
		"warn":    LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"bogus":   LevelInfo,
		"":        LevelInfo,
	}

	for name, want := range cases {
		if got := ParseLevel(name); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", name, got, want)
		}
	}
}
