// Package render turns a failure report into the HTML debug page or a
// plain-text traceback.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"tracepage/src/redact"
	"tracepage/src/report"
	"tracepage/src/settings"
)

// IndexTemplate is the full debug page.
const IndexTemplate = "index.html"

//go:embed templates/*.html
var templateFS embed.FS

// Renderer renders a report with a named template.
type Renderer interface {
	Render(name string, rep *report.Report) (string, error)
}

// HTML is the embedded template renderer.
type HTML struct {
	Settings *settings.Settings
	// Highlight is chosen from the report theme when nil.
	Highlight Highlighter
	Source    SourceLoader
	// SourceContext is the number of lines shown on each side of a frame.
	SourceContext int

	templates *template.Template
}

func NewHTML(s *settings.Settings, sourceContext int) *HTML {
	if s == nil {
		s = settings.New()
	}
	h := &HTML{Settings: s, Source: ReadSource, SourceContext: sourceContext}
	h.templates = template.Must(template.New("").Funcs(h.funcs(nil)).ParseFS(templateFS, "templates/*.html"))
	return h
}

func (h *HTML) Render(name string, rep *report.Report) (string, error) {
	if rep == nil {
		return "", fmt.Errorf("render %s: nil report", name)
	}

	highlight := h.Highlight
	if highlight == nil {
		highlight = Chroma(rep.Theme)
	}

	t, err := h.templates.Clone()
	if err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	t.Funcs(h.funcs(highlight))

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, rep); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

type codeLine struct {
	Number  int
	Code    template.HTML
	Current bool
}

func (h *HTML) funcs(highlight Highlighter) template.FuncMap {
	if highlight == nil {
		highlight = Escape
	}
	return template.FuncMap{
		// Editor links use schemes html/template would otherwise reject.
		"link": func(f report.Frame) template.URL {
			return template.URL(h.Settings.Link(f.File, f.Line))
		},
		"source": func(f report.Frame) []codeLine {
			if h.Source == nil || h.SourceContext <= 0 {
				return nil
			}
			var out []codeLine
			for _, l := range h.Source(f.File, f.Line, h.SourceContext) {
				out = append(out, codeLine{
					Number:  l.Number,
					Code:    template.HTML(highlight(l.Code, f.File)),
					Current: l.Current,
				})
			}
			return out
		},
		"revealable": func(v redact.Value) bool {
			return v.Mode == redact.Reveal
		},
		"lines": func(s string) []string {
			return strings.Split(s, "\n")
		},
		"add": func(a, b int) int { return a + b },
	}
}
