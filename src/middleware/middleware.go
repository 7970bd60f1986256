// Package middleware catches failures escaping HTTP handlers and answers
// them with the debug page (debug mode) or a generic 500, then re-raises
// the failure for the server and tests to observe.
//
// A request moves through forwarding, then either response_started or
// failure_caught, and ends in done. No state is shared between requests.
package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	logger "github.com/sirupsen/logrus"

	"tracepage/src/fallback"
	"tracepage/src/render"
	"tracepage/src/report"
	"tracepage/src/settings"
	"tracepage/src/trace"
)

// GenericMessage is the only body sent outside debug mode.
const GenericMessage = "Internal Server Error"

const (
	contentTypeHTML  = "text/html; charset=utf-8"
	contentTypePlain = "text/plain; charset=utf-8"
)

// ErrorHandlerFunc is a handler that reports failures by returning them.
type ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request) error

type Options struct {
	Debug     bool
	Settings  *settings.Settings
	Assembler *report.Assembler
	Renderer  render.Renderer
	// Template names the Renderer template, IndexTemplate by default.
	Template string
	AppState map[string]any
	Session  SessionFunc
	// KeepPanics disables re-panicking after the failure response. Only
	// meant for servers that cannot tolerate a re-raised panic.
	KeepPanics bool
	Log        *logger.Entry
}

type Middleware struct {
	opts Options
}

func New(opts Options) *Middleware {
	if opts.Settings == nil {
		opts.Settings = settings.New()
	}
	if opts.Assembler == nil {
		opts.Assembler = report.NewAssembler(opts.Settings, report.DefaultFrameLimit)
	}
	if opts.Renderer == nil {
		opts.Renderer = render.NewHTML(opts.Settings, 7)
	}
	if opts.Template == "" {
		opts.Template = render.IndexTemplate
	}
	if opts.Log == nil {
		opts.Log = logger.WithField("component", "tracepage")
	}
	return &Middleware{opts: opts}
}

// FromConfig builds a Middleware from the DEBUG_* environment settings.
func FromConfig(config settings.Config, appState map[string]any) (*Middleware, error) {
	s, err := settings.FromConfig(config)
	if err != nil {
		return nil, err
	}
	return New(Options{
		Debug:     config.Debug,
		Settings:  s,
		Assembler: report.NewAssembler(s, config.FrameLimit),
		Renderer:  render.NewHTML(s, config.SourceContext),
		AppState:  appState,
	}), nil
}

// WithSession returns a copy of m that reports sessions loaded by fn.
func (m *Middleware) WithSession(fn SessionFunc) *Middleware {
	opts := m.opts
	opts.Session = fn
	return &Middleware{opts: opts}
}

// Handler recovers panics from next. The panic is re-raised with its
// original value once the failure response is written.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if websocket.IsWebSocketUpgrade(r) {
			next.ServeHTTP(w, r)
			return
		}

		tw := newTrackingWriter(w, r)
		r = withState(r)
		defer func() {
			v := recover()
			if v == nil {
				tw.finish()
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}

			m.handle(tw, r, trace.Recovered(v))
			if !m.opts.KeepPanics {
				panic(v)
			}
		}()

		next.ServeHTTP(tw, r)
	})
}

// Wrap reports errors returned by next and returns them unchanged.
func (m *Middleware) Wrap(next ErrorHandlerFunc) ErrorHandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		if websocket.IsWebSocketUpgrade(r) {
			return next(w, r)
		}

		tw := newTrackingWriter(w, r)
		r = withState(r)
		err := next(tw, r)
		if err != nil {
			m.handle(tw, r, err)
		} else {
			tw.finish()
		}
		return err
	}
}

// HandleFailure writes the failure response for err to w. Callers must
// only use it when no response bytes were sent yet.
func (m *Middleware) HandleFailure(w http.ResponseWriter, r *http.Request, err error) {
	contentType, body := m.Response(r, err)
	writeFailure(w, contentType, body)
}

// Response builds the failure response body. It never panics.
func (m *Middleware) Response(r *http.Request, err error) (string, []byte) {
	if !m.opts.Debug {
		return contentTypePlain, []byte(GenericMessage)
	}

	rep := fallback.Must(nil, func() *report.Report { return m.opts.Assembler.Build(m.request(r), err) })
	if rep == nil {
		rep = &report.Report{ExceptionClass: report.QualifiedName(err), Message: report.Message(err)}
	}

	if wantsHTML(r) {
		page, renderErr := m.render(rep)
		if renderErr == nil {
			return contentTypeHTML, []byte(page)
		}
		m.opts.Log.WithError(renderErr).WithField("template", m.opts.Template).Warn("debug page rendering failed, sending plain text")
	}
	return contentTypePlain, []byte(render.PlainText(rep))
}

func (m *Middleware) render(rep *report.Report) (page string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("renderer panicked: %v", r)
		}
	}()
	return m.opts.Renderer.Render(m.opts.Template, rep)
}

func (m *Middleware) handle(tw *trackingWriter, r *http.Request, err error) {
	prev := tw.caught()
	defer tw.finish()

	log := m.opts.Log.WithFields(logger.Fields{
		"request_id":       requestID(r),
		"method":           r.Method,
		"path":             r.URL.Path,
		"error_class":      report.QualifiedName(err),
		"phase":            prev.String(),
		"debug":            m.opts.Debug,
		"response_started": tw.Started(),
	})

	if tw.Started() {
		log.WithField("status", tw.Status()).WithError(err).Error("request failed after the response started")
		return
	}

	contentType, body := m.Response(r, err)
	if !tw.respond(contentType, body) {
		log.WithError(err).Error("request failed, response started while the report was built")
		return
	}
	log.WithError(err).Error("request failed")
}

func (m *Middleware) request(r *http.Request) report.Request {
	return &httpRequest{r: r, session: m.opts.Session, appState: m.opts.AppState}
}

func wantsHTML(r *http.Request) bool {
	return strings.Contains(strings.Join(r.Header.Values("Accept"), ","), "text/html")
}

func requestID(r *http.Request) string {
	if id := r.Header.Get("X-Request-ID"); id != "" {
		return id
	}
	return uuid.NewString()
}
