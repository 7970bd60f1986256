package settings

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Debug         bool   `envconfig:"DEBUG" default:"false"`
	Theme         string `envconfig:"DEBUG_THEME" default:"light"`
	Editor        string `envconfig:"DEBUG_EDITOR" default:"none"`
	LinkTemplates string `envconfig:"DEBUG_LINK_TEMPLATES"` // path to a .yaml/.yml/.toml file
	FrameLimit    int    `envconfig:"DEBUG_FRAME_LIMIT" default:"15"`
	SourceContext int    `envconfig:"DEBUG_SOURCE_CONTEXT" default:"7"` // lines shown on each side of a frame
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}

// FromConfig builds Settings from config. An editor named in the link
// templates file overrides DEBUG_EDITOR.
func FromConfig(config Config) (*Settings, error) {
	s := New()
	if err := s.SetTheme(Theme(config.Theme)); err != nil {
		return nil, err
	}
	s.SetEditor(config.Editor)
	if config.LinkTemplates != "" {
		if err := s.LoadLinkTemplates(config.LinkTemplates); err != nil {
			return nil, err
		}
	}
	return s, nil
}
