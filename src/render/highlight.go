package render

import (
	"html"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"tracepage/src/settings"
)

// Highlighter turns one line of source into HTML. Implementations must
// escape their input.
type Highlighter func(code, filename string) string

// Escape is the Highlighter used when highlighting is disabled.
func Escape(code, _ string) string {
	return html.EscapeString(code)
}

// Chroma returns a Highlighter with a style matching theme. Files without a
// known lexer are only escaped.
func Chroma(theme settings.Theme) Highlighter {
	style := styles.Get("xcode")
	if theme == settings.Dark {
		style = styles.Get("nord")
	}
	formatter := chromahtml.New(chromahtml.WithClasses(false), chromahtml.PreventSurroundingPre(true))

	return func(code, filename string) string {
		lexer := lexers.Match(filename)
		if lexer == nil {
			return Escape(code, filename)
		}
		iterator, err := chroma.Coalesce(lexer).Tokenise(nil, code)
		if err != nil {
			return Escape(code, filename)
		}

		var b strings.Builder
		if err := formatter.Format(&b, style, iterator); err != nil {
			return Escape(code, filename)
		}
		return strings.TrimSuffix(b.String(), "\n")
	}
}
