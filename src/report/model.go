package report

import (
	"tracepage/src/redact"
	"tracepage/src/settings"
)

// Entry is one key/value pair of the request snapshot or platform info.
type Entry struct {
	Key   string
	Value redact.Value
}

// Variable is a formatted local binding.
type Variable struct {
	Name  string
	Value string
}

type Frame struct {
	ID           string
	File         string
	RelativeFile string
	Line         int
	Function     string
	Symbol       string
	Package      string
	Vendor       bool
	Locals       []Variable
}

// StackItem is one error of the cause chain with its frames, innermost first.
type StackItem struct {
	ExceptionClass string
	Message        string
	Solution       string
	Frames         []Frame
}

// Snapshot is a copy of the request taken when the failure was caught.
type Snapshot struct {
	Method      string
	Path        string
	ContentType string
	Client      string
	PathParams  []Entry
	QueryParams []Entry
	Headers     []Entry
	Cookies     []Entry
	Session     []Entry
	State       []Entry
	AppState    []Entry
}

// Report is everything a renderer needs. It holds no references to the
// live request or response.
type Report struct {
	ExceptionClass string
	Message        string
	Solution       string
	Theme          settings.Theme
	// Stack is outermost error first.
	Stack       []StackItem
	Request     Snapshot
	Platform    []Entry
	Environment []Entry
}
