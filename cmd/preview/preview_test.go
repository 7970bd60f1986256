package preview

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreviewHTMLToStdout(t *testing.T) {
	var stdout, stderr bytes.Buffer
	p := &Preview{Format: FormatHTML, Theme: "dark", Stdout: &stdout, Stderr: &stderr}

	require.NoError(t, p.Start())
	assert.Contains(t, stdout.String(), "<!DOCTYPE html>")
	assert.Contains(t, stdout.String(), "theme-dark")
	assert.Contains(t, stdout.String(), "rendering note page")
	assert.Contains(t, stderr.String(), "stdout")
}

func TestPreviewTextToFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.txt")
	var stderr bytes.Buffer
	p := &Preview{Format: FormatText, Out: out, Stderr: &stderr}

	require.NoError(t, p.Start())
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Caused by")
	assert.Contains(t, string(data), "connection refused")
	assert.Contains(t, stderr.String(), out)
}

func TestPreviewRejectsUnknownFormat(t *testing.T) {
	p := &Preview{Format: "pdf", Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	assert.Error(t, p.Start())
}

func TestPreviewRejectsUnknownTheme(t *testing.T) {
	p := &Preview{Theme: "sepia", Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	assert.Error(t, p.Start())
}
