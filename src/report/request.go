package report

import (
	"net/http"
	"net/url"
)

// Param is a named path parameter.
type Param struct {
	Key   string
	Value string
}

// Request is the read-only view of an HTTP request the assembler needs.
// Implementations may fail or panic in any method; the assembler treats
// that field as empty.
type Request interface {
	Method() string
	Path() string
	RemoteAddr() string
	PathParams() []Param
	Query() url.Values
	Header() http.Header
	Cookies() []*http.Cookie
	// Session returns the session contents, or an error when the session
	// is unavailable.
	Session() (map[string]any, error)
	State() map[string]any
	AppState() map[string]any
}
