package report

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestFileNameNormalization(t *testing.T) {
	s := NewScreenshotsFs(afero.NewMemMapFs(), "shots")
	s.now = fixedClock(time.Date(2026, 8, 24, 10, 30, 0, 0, time.UTC))

	assert.Equal(t, "login_error.png", s.fileName("login_error", "screenshot"))
	assert.Equal(t, "login_error.png", s.fileName("login_error.png", "screenshot"))
	assert.Equal(t, "wrong_password_case.png", s.fileName("wrong password/case", "screenshot"))
	assert.Equal(t, "screenshot_20260824_103000.000.png", s.fileName("", "screenshot"))
	assert.Equal(t, "element_20260824_103000.000.png", s.fileName("", "element"))
}

func TestCleanupOlderThan(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := NewScreenshotsFs(fs, "shots")

	now := time.Now()
	old := now.Add(-10 * 24 * time.Hour)

	for name, mtime := range map[string]time.Time{
		"old_one.png":  old,
		"old_two.png":  old,
		"recent.png":   now.Add(-time.Hour),
		"notes.txt":    old, // non-png files are left alone
	} {
		path := filepath.Join("shots", name)
		require.NoError(t, afero.WriteFile(fs, path, []byte("x"), 0640))
		require.NoError(t, fs.Chtimes(path, mtime, mtime))
	}

	deleted, err := s.CleanupOlderThan(7 * 24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)

	exists, err := afero.Exists(fs, "shots/recent.png")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = afero.Exists(fs, "shots/notes.txt")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = afero.Exists(fs, "shots/old_one.png")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCleanupMissingDirectory(t *testing.T) {
	s := NewScreenshotsFs(afero.NewMemMapFs(), "never-created")

	deleted, err := s.CleanupOlderThan(24 * time.Hour)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}
