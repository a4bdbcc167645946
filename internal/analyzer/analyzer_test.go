package analyzer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/atikulmunna/logscan/internal/config"
	"github.com/atikulmunna/logscan/internal/locator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAnalyzer(dir string) *Analyzer {
	cfg := config.Default()
	cfg.LogDirectory = dir
	a := New(cfg)
	a.now = func() time.Time { return time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC) }
	return a
}

func TestRunNoLogs(t *testing.T) {
	res, err := newAnalyzer(t.TempDir()).Run()
	require.NoError(t, err)

	assert.False(t, res.Found())
	assert.Empty(t, res.Report.Errors)
	assert.Empty(t, res.Report.Warnings)
	assert.Empty(t, res.Report.Performance)
	assert.Equal(t, 2026, res.AnalyzedAt.Year())
}

func TestRunClassifiesLatest(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app_debug_old.log"), []byte("ERROR stale"), 0644))
	time.Sleep(50 * time.Millisecond)

	content := "INFO start\nERROR disk full\nWARNING low memory\nPerformance Metrics\ncpu: 10%\nmem: 20%\ndone"
	latest := filepath.Join(dir, "app_debug_new.log")
	require.NoError(t, os.WriteFile(latest, []byte(content), 0644))

	res, err := newAnalyzer(dir).Run()
	require.NoError(t, err)

	assert.True(t, res.Found())
	assert.Equal(t, latest, res.Path)
	assert.False(t, res.Created.IsZero())
	assert.False(t, res.Modified.IsZero())
	assert.Equal(t, []string{"ERROR disk full"}, res.Report.Errors)
	assert.Equal(t, []string{"WARNING low memory"}, res.Report.Warnings)
	assert.Equal(t, []string{"Performance Metrics", "cpu: 10%", "mem: 20%", "done"}, res.Report.Performance)
	assert.Equal(t, 7, res.Summary.Lines)
	assert.Equal(t, 1, res.Summary.PerformanceBlocks)
}

func TestRunPropagatesDecodeError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app_debug_1.log"), []byte{0xff, 0xfe, 'E'}, 0644))

	_, err := newAnalyzer(dir).Run()
	assert.ErrorIs(t, err, locator.ErrInvalidUTF8)
}

func TestRunMissingDirectory(t *testing.T) {
	_, err := newAnalyzer(filepath.Join(t.TempDir(), "logs")).Run()
	assert.ErrorIs(t, err, os.ErrNotExist)
}
