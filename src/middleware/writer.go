package middleware

import (
	"bufio"
	"errors"
	"net"
	"net/http"
	"strconv"
	"sync"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// ErrResponseSealed is returned to handler writes that arrive after the
// failure response was sent.
var ErrResponseSealed = errors.New("response already sent by failure handler")

type phase int

const (
	forwarding phase = iota
	responseStarted
	failureCaught
	done
)

func (p phase) String() string {
	switch p {
	case responseStarted:
		return "response_started"
	case failureCaught:
		return "failure_caught"
	case done:
		return "done"
	default:
		return "forwarding"
	}
}

// trackingWriter records whether the handler committed a response. The
// started check and the failure response share one lock, so a response
// started concurrently with a failure is never followed by a second one.
type trackingWriter struct {
	mu      sync.Mutex
	ww      chimw.WrapResponseWriter
	phase   phase
	started bool
	sealed  bool
}

func newTrackingWriter(w http.ResponseWriter, r *http.Request) *trackingWriter {
	return &trackingWriter{ww: chimw.NewWrapResponseWriter(w, r.ProtoMajor)}
}

// Header returns a detached map once the writer is sealed, so a handler
// still running after its failure cannot touch the sent headers.
func (t *trackingWriter) Header() http.Header {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.sealed {
		return http.Header{}
	}
	return t.ww.Header()
}

func (t *trackingWriter) WriteHeader(code int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.sealed {
		return
	}
	// informational headers do not commit the response, except 101.
	if code >= 100 && code < 200 && code != http.StatusSwitchingProtocols {
		t.ww.WriteHeader(code)
		return
	}
	t.markStarted()
	t.ww.WriteHeader(code)
}

func (t *trackingWriter) Write(b []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.sealed {
		return 0, ErrResponseSealed
	}
	t.markStarted()
	return t.ww.Write(b)
}

func (t *trackingWriter) Flush() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.sealed {
		return
	}
	if f, ok := t.ww.(http.Flusher); ok {
		t.markStarted()
		f.Flush()
	}
}

func (t *trackingWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	hj, ok := t.ww.(http.Hijacker)
	if !ok || t.sealed {
		return nil, nil, http.ErrNotSupported
	}
	t.markStarted()
	return hj.Hijack()
}

// Unwrap lets http.ResponseController reach deadlines on the original writer.
func (t *trackingWriter) Unwrap() http.ResponseWriter {
	return t.ww.Unwrap()
}

func (t *trackingWriter) markStarted() {
	t.started = true
	if t.phase == forwarding {
		t.phase = responseStarted
	}
}

// Started reports whether the handler committed a response.
func (t *trackingWriter) Started() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.started
}

func (t *trackingWriter) Status() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ww.Status()
}

func (t *trackingWriter) caught() phase {
	t.mu.Lock()
	defer t.mu.Unlock()
	prev := t.phase
	t.phase = failureCaught
	return prev
}

func (t *trackingWriter) finish() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.phase = done
}

// respond sends the failure response unless the handler started one first.
// Afterwards the writer is sealed.
func (t *trackingWriter) respond(contentType string, body []byte) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.started || t.sealed {
		return false
	}
	t.started = true
	writeFailure(t.ww, contentType, body)
	if f, ok := t.ww.(http.Flusher); ok {
		f.Flush()
	}
	t.sealed = true
	return true
}

// writeFailure replaces any headers the handler set and writes a 500.
// Content-Length is set so the body survives the connection being closed
// when the panic is re-raised.
func writeFailure(w http.ResponseWriter, contentType string, body []byte) {
	h := w.Header()
	for k := range h {
		delete(h, k)
	}
	h.Set("Content-Type", contentType)
	h.Set("Content-Length", strconv.Itoa(len(body)))
	h.Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write(body)
}
