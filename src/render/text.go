package render

import (
	"fmt"
	"strings"

	"tracepage/src/report"
)

// PlainText formats the report as a raw traceback for non-browser clients.
// Nothing is redacted and no request data is included.
func PlainText(rep *report.Report) string {
	var b strings.Builder
	b.WriteString("Traceback (most recent call first):\n")

	for i, item := range rep.Stack {
		if i > 0 {
			b.WriteString("\nCaused by: ")
		}
		fmt.Fprintf(&b, "%s: %s\n", item.ExceptionClass, item.Message)
		for _, f := range item.Frames {
			fmt.Fprintf(&b, "  %s\n      %s:%d\n", f.Function, f.File, f.Line)
		}
		if item.Solution != "" {
			fmt.Fprintf(&b, "  Solution: %s\n", item.Solution)
		}
	}

	if len(rep.Stack) == 0 {
		fmt.Fprintf(&b, "%s: %s\n", rep.ExceptionClass, rep.Message)
	}
	return b.String()
}
