package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	logger "github.com/sirupsen/logrus"

	"tracepage/src/handler"
	"tracepage/src/middleware"
	"tracepage/src/repository"
	"tracepage/src/trace"
)

// App holds what the demo routes need.
type App struct {
	Notes *repository.NoteRepository
	Debug *middleware.Middleware
}

// brokenStringer fails when formatted, to show degraded state values.
type brokenStringer struct{}

func (brokenStringer) String() string { panic("cannot stringify") }

func NewRouter(app *App) http.Handler {
	r := chi.NewRouter()
	r.Use(app.Debug.Handler)

	r.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.WithError(err).Error(" \"/health error")
		}
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		middleware.SetState(r, "token", "mytoken")
		middleware.SetState(r, "broken", brokenStringer{})
		panic("This is the first cause")
	})

	r.Get("/hint", app.handle(func(w http.ResponseWriter, r *http.Request) error {
		return trace.New("Template not found",
			trace.WithSolution("Check that the template exists and the loader is configured."))
	}))

	r.Get("/chain", app.handle(func(w http.ResponseWriter, r *http.Request) error {
		return raiseLevel1()
	}))

	r.Route("/notes", func(r chi.Router) {
		r.Post("/", app.handle(handler.CreateNoteHandler(app.Notes)))
		r.Get("/{noteID}", app.handle(handler.GetNoteHandler(app.Notes)))
	})

	return r
}

// handle adapts an error-returning handler to chi. The middleware has
// already answered by the time the error comes back.
func (a *App) handle(fn middleware.ErrorHandlerFunc) http.HandlerFunc {
	wrapped := a.Debug.Wrap(fn)
	return func(w http.ResponseWriter, r *http.Request) {
		if err := wrapped(w, r); err != nil {
			logger.WithError(err).Debugf("%s %s failed", r.Method, r.URL.Path)
		}
	}
}

func raiseLevel1() error {
	return trace.Wrap(raiseLevel2(), "This is the last cause")
}

func raiseLevel2() error {
	return trace.Wrap(errors.New("This is the first cause"), "This is the second cause",
		trace.WithLocals(map[string]any{"level": 2}))
}
