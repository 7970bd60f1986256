package render

import (
	"bufio"
	"os"
)

// SourceLine is one line of the code excerpt around a frame.
type SourceLine struct {
	Number  int
	Code    string
	Current bool
}

// SourceLoader returns up to context lines on each side of line. A file
// that cannot be read yields no lines.
type SourceLoader func(file string, line, context int) []SourceLine

// ReadSource loads the excerpt from disk.
func ReadSource(file string, line, context int) []SourceLine {
	f, err := os.Open(file)
	if err != nil {
		return nil
	}
	defer f.Close()

	first, last := line-context, line+context
	var out []SourceLine
	scanner := bufio.NewScanner(f)
	for n := 1; scanner.Scan(); n++ {
		if n < first {
			continue
		}
		if n > last {
			break
		}
		out = append(out, SourceLine{Number: n, Code: scanner.Text(), Current: n == line})
	}
	return out
}
