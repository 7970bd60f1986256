package settings

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkDefaults(t *testing.T) {
	s := New()
	assert.Equal(t, "file:///srv/app/main.go", s.Link("/srv/app/main.go", 12))

	s.SetEditor("vscode")
	assert.Equal(t, "vscode://file//srv/app/main.go:12", s.Link("/srv/app/main.go", 12))

	s.SetEditor("unknown")
	assert.Equal(t, "file:///srv/app/main.go", s.Link("/srv/app/main.go", 12), "unknown editors fall back to file links")
}

func TestRegisterLinkTemplate(t *testing.T) {
	s := New()
	s.RegisterLinkTemplate("subl", "subl://open?url=file://{path}&line={lineno}")
	s.SetEditor("subl")

	assert.Equal(t, "subl://open?url=file:///a.go&line=3", s.Link("/a.go", 3))
}

func TestSetTheme(t *testing.T) {
	s := New()
	assert.Equal(t, Light, s.Theme())

	require.NoError(t, s.SetTheme("DARK"))
	assert.Equal(t, Dark, s.Theme())

	assert.Error(t, s.SetTheme("sepia"))
	assert.Equal(t, Dark, s.Theme(), "invalid theme keeps the previous one")
}

func TestLoadLinkTemplatesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "links.yaml")
	require.NoError(t, os.WriteFile(path, []byte("editor: zed\nlinks:\n  zed: \"zed://file/{path}:{line}\"\n"), 0o600))

	s := New()
	require.NoError(t, s.LoadLinkTemplates(path))

	assert.Equal(t, "zed", s.Editor())
	assert.Equal(t, "zed://file/x.go:9", s.Link("x.go", 9))
}

func TestLoadLinkTemplatesTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "links.toml")
	require.NoError(t, os.WriteFile(path, []byte("[links]\nnvim = \"nvim://{path}:{line}\"\n"), 0o600))

	s := New()
	require.NoError(t, s.LoadLinkTemplates(path))
	s.SetEditor("nvim")

	assert.Equal(t, "nvim://x.go:1", s.Link("x.go", 1))
}

func TestLoadLinkTemplatesErrors(t *testing.T) {
	s := New()
	assert.Error(t, s.LoadLinkTemplates(filepath.Join(t.TempDir(), "missing.yaml")))

	path := filepath.Join(t.TempDir(), "links.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o600))
	assert.Error(t, s.LoadLinkTemplates(path))
}

func TestFromConfig(t *testing.T) {
	s, err := FromConfig(Config{Theme: "dark", Editor: "vscode"})
	require.NoError(t, err)
	assert.Equal(t, Dark, s.Theme())
	assert.Equal(t, "vscode", s.Editor())

	_, err = FromConfig(Config{Theme: "neon"})
	assert.Error(t, err)
}

func TestConcurrentAccess(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.SetEditor("vscode")
			s.RegisterLinkTemplate("vscode", "vscode://file/{path}:{line}")
		}()
		go func() {
			defer wg.Done()
			_ = s.Link("/a.go", 1)
			_ = s.Theme()
		}()
	}
	wg.Wait()
	assert.Equal(t, "vscode", s.Editor())
}
