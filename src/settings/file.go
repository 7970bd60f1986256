package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// linkFile is the on-disk shape of a link templates file:
//
//	editor: zed
//	links:
//	  zed: "zed://file/{path}:{line}"
type linkFile struct {
	Editor string            `yaml:"editor" toml:"editor"`
	Links  map[string]string `yaml:"links" toml:"links"`
}

// LoadLinkTemplates registers the templates found in a YAML or TOML file,
// chosen by extension. A non-empty editor key also selects the editor.
func (s *Settings) LoadLinkTemplates(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading link templates: %w", err)
	}

	var file linkFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(content, &file); err != nil {
			return fmt.Errorf("parsing link templates %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(content, &file); err != nil {
			return fmt.Errorf("parsing link templates %s: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported link templates format %q", ext)
	}

	for editor, template := range file.Links {
		s.RegisterLinkTemplate(editor, template)
	}
	if file.Editor != "" {
		s.SetEditor(file.Editor)
	}
	return nil
}
