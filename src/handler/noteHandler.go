package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	logger "github.com/sirupsen/logrus"

	"tracepage/src/middleware"
	"tracepage/src/model"
	"tracepage/src/repository"
	"tracepage/src/trace"
)

type noteStore interface {
	Get(ctx context.Context, id uint) (*model.Note, error)
	Create(ctx context.Context, note *model.Note) error
}

// GetNoteHandler returns the note named by the noteID path parameter.
// Store failures are returned to the debug middleware.
func GetNoteHandler(repo noteStore) middleware.ErrorHandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		id, err := strconv.ParseUint(chi.URLParam(r, "noteID"), 10, 64)
		if err != nil {
			http.Error(w, "invalid noteID", http.StatusBadRequest)
			return nil
		}

		note, err := repo.Get(r.Context(), uint(id))
		if errors.Is(err, repository.ErrNoteNotFound) {
			http.Error(w, "note not found", http.StatusNotFound)
			return nil
		}
		if err != nil {
			return err
		}
		return writeJSON(w, http.StatusOK, note)
	}
}

// CreateNoteHandler stores a note from a JSON CreateNotePayload.
func CreateNoteHandler(repo noteStore) middleware.ErrorHandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		var payload model.CreateNotePayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "invalid payload", http.StatusBadRequest)
			return nil
		}
		if !payload.Normalize() {
			http.Error(w, "title is required", http.StatusBadRequest)
			return nil
		}

		note := &model.Note{Title: payload.Title, Body: payload.Body}
		if err := repo.Create(r.Context(), note); err != nil {
			return trace.Wrap(err, "handling note creation", trace.WithLocals(map[string]any{"payload": payload}))
		}
		return writeJSON(w, http.StatusCreated, note)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.WithError(err).Error("failed to encode response")
	}
	return nil
}
