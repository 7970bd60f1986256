package middleware

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"tracepage/src/report"
)

// SessionFunc loads the session for a request. Errors leave the session
// section of the report empty.
type SessionFunc func(r *http.Request) (map[string]any, error)

// httpRequest adapts *http.Request to report.Request.
type httpRequest struct {
	r        *http.Request
	session  SessionFunc
	appState map[string]any
}

var _ report.Request = (*httpRequest)(nil)

func (h *httpRequest) Method() string     { return h.r.Method }
func (h *httpRequest) Path() string       { return h.r.URL.Path }
func (h *httpRequest) RemoteAddr() string { return h.r.RemoteAddr }

func (h *httpRequest) PathParams() []report.Param {
	rctx := chi.RouteContext(h.r.Context())
	if rctx == nil {
		return nil
	}
	params := make([]report.Param, 0, len(rctx.URLParams.Keys))
	for i, key := range rctx.URLParams.Keys {
		if i < len(rctx.URLParams.Values) {
			params = append(params, report.Param{Key: key, Value: rctx.URLParams.Values[i]})
		}
	}
	return params
}

func (h *httpRequest) Query() url.Values       { return h.r.URL.Query() }
func (h *httpRequest) Header() http.Header     { return h.r.Header.Clone() }
func (h *httpRequest) Cookies() []*http.Cookie { return h.r.Cookies() }

func (h *httpRequest) Session() (map[string]any, error) {
	if h.session == nil {
		return nil, nil
	}
	return h.session(h.r)
}

func (h *httpRequest) State() map[string]any {
	state, ok := GetStateFromContext(h.r.Context())
	if !ok {
		return nil
	}
	return state.Snapshot()
}

func (h *httpRequest) AppState() map[string]any {
	out := make(map[string]any, len(h.appState))
	for k, v := range h.appState {
		out[k] = v
	}
	return out
}
