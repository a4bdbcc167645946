package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atikulmunna/logscan/internal/locator"
	"github.com/atikulmunna/logscan/internal/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestAnalyzeNoLogs(t *testing.T) {
	out, err := execute(t, "--dir", t.TempDir())
	require.NoError(t, err)

	assert.Contains(t, out, output.NoLogMessage)
	assert.Equal(t, 3, strings.Count(out, "none found"))
}

func TestAnalyzeLatest(t *testing.T) {
	dir := t.TempDir()
	content := "INFO start\nERROR disk full\nWARNING low memory\nPerformance Metrics\ncpu: 10%\nmem: 20%\ndone"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app_debug_20261017_120000.log"), []byte(content), 0644))

	out, err := execute(t, "--dir", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "app_debug_20261017_120000.log")
	assert.Contains(t, out, "- ERROR disk full")
	assert.Contains(t, out, "- WARNING low memory")
	assert.Contains(t, out, "- Performance Metrics\n- cpu: 10%\n- mem: 20%\n- done\n")
}

func TestAnalyzeDecodeErrorFails(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app_debug_bad.log"), []byte("ERROR \xc3\x28"), 0644))

	_, err := execute(t, "--dir", dir)
	assert.ErrorIs(t, err, locator.ErrInvalidUTF8)
}

func TestAnalyzeMissingDirectoryFails(t *testing.T) {
	_, err := execute(t, "--dir", filepath.Join(t.TempDir(), "logs"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestAnalyzeRejectsArgs(t *testing.T) {
	_, err := execute(t, "--dir", t.TempDir(), "extra")
	assert.Error(t, err)
}
