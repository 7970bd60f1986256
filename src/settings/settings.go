// Package settings holds the debug page presentation options: theme, the
// active editor and the editor link templates. A Settings value is written
// at startup and read on every render.
package settings

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
)

type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// DefaultEditor opens files with a plain file:// link.
const DefaultEditor = "none"

var builtinLinkTemplates = map[string]string{
	DefaultEditor: "file://{path}",
	"vscode":      "vscode://file/{path}:{line}",
	"goland":      "goland://open?file={path}&line={line}",
}

type Settings struct {
	mu     sync.RWMutex
	theme  Theme
	editor string
	links  map[string]string
}

// New returns light theme settings with the built-in link templates.
func New() *Settings {
	links := make(map[string]string, len(builtinLinkTemplates))
	for k, v := range builtinLinkTemplates {
		links[k] = v
	}
	return &Settings{theme: Light, editor: DefaultEditor, links: links}
}

// ParseTheme accepts "light" or "dark" in any case.
func ParseTheme(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case Light, "":
		return Light, nil
	case Dark:
		return Dark, nil
	}
	return "", fmt.Errorf("unknown theme %q, expected light or dark", s)
}

func (s *Settings) SetTheme(theme Theme) error {
	parsed, err := ParseTheme(string(theme))
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = parsed
	return nil
}

func (s *Settings) Theme() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// SetEditor selects the link template used for source links. An empty name
// selects DefaultEditor.
func (s *Settings) SetEditor(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultEditor
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editor = name
}

func (s *Settings) Editor() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.editor
}

// RegisterLinkTemplate adds or replaces the template for editor. The
// template may use {path} and {line} ({lineno} is accepted too).
//
// Example:
//
//	s.RegisterLinkTemplate("vscode", "vscode://file/{path}:{line}")
func (s *Settings) RegisterLinkTemplate(editor, template string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.links[editor] = template
}

// Link renders an open-file link for the active editor, falling back to
// the DefaultEditor template for unknown editors.
func (s *Settings) Link(path string, line int) string {
	s.mu.RLock()
	template, ok := s.links[s.editor]
	if !ok {
		template = s.links[DefaultEditor]
	}
	s.mu.RUnlock()

	n := strconv.Itoa(line)
	return strings.NewReplacer("{path}", path, "{line}", n, "{lineno}", n).Replace(template)
}
