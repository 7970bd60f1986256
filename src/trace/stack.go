package trace

import (
	"runtime"
	"strings"
)

// Frame is a single captured call site.
type Frame struct {
	PC       uintptr
	File     string
	Line     int
	Function string // fully-qualified runtime name, e.g. "net/http.(*conn).serve"

	// Locals holds bindings the failing code chose to attach. Go cannot
	// introspect locals, so only the capture site carries them.
	Locals map[string]any
}

// StackTracer is implemented by errors that carry a captured stack,
// innermost frame first.
type StackTracer interface {
	StackTrace() []Frame
}

const maxDepth = 64

// Capture records the calling goroutine's stack, skipping skip frames above
// the caller of Capture.
func Capture(skip int) []Frame {
	return capture(skip + 1)
}

func capture(skip int) []Frame {
	pcs := make([]uintptr, maxDepth)
	// +2 skips runtime.Callers and capture itself.
	n := runtime.Callers(skip+2, pcs)
	if n == 0 {
		return nil
	}

	frames := runtime.CallersFrames(pcs[:n])
	out := make([]Frame, 0, n)
	for {
		fr, more := frames.Next()
		out = append(out, Frame{
			PC:       fr.PC,
			File:     fr.File,
			Line:     fr.Line,
			Function: fr.Function,
		})
		if !more {
			break
		}
	}
	return out
}

// trimPanic drops the runtime frames between a deferred recover and the
// function that panicked.
func trimPanic(frames []Frame) []Frame {
	idx := -1
	for i, f := range frames {
		if f.Function == "runtime.gopanic" {
			idx = i
		}
	}
	if idx < 0 {
		return frames
	}

	i := idx + 1
	for i < len(frames) && isRuntime(frames[i].Function) {
		i++
	}
	return frames[i:]
}

func isRuntime(function string) bool {
	return strings.HasPrefix(function, "runtime.") || strings.HasPrefix(function, "internal/runtime/")
}
