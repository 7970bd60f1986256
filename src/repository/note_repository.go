package repository

import (
	"context"
	"errors"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"tracepage/src/database"
	"tracepage/src/model"
	"tracepage/src/trace"
)

// ErrNoteNotFound is returned by Get for unknown ids.
var ErrNoteNotFound = errors.New("note not found")

// NoteRepository handles persistence of notes.
type NoteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

func (r *NoteRepository) ready() error {
	if r.db == nil {
		return trace.New("notes database is not connected",
			trace.WithSkip(1),
			trace.WithSolution(database.ConnectionHint))
	}
	return nil
}

// Get loads one note.
func (r *NoteRepository) Get(ctx context.Context, id uint) (*model.Note, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}

	var note model.Note
	err := r.db.WithContext(ctx).First(&note, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoteNotFound
	}
	if err != nil {
		return nil, trace.Wrap(err, fmt.Sprintf("loading note %d", id),
			trace.WithLocals(map[string]any{"id": id}))
	}
	return &note, nil
}

// Create persists a new note.
func (r *NoteRepository) Create(ctx context.Context, note *model.Note) error {
	if err := r.ready(); err != nil {
		return err
	}

	logger.WithField("title", note.Title).Debug("Persisting note")
	if err := r.db.WithContext(ctx).Create(note).Error; err != nil {
		return trace.Wrap(err, "creating note", trace.WithLocals(map[string]any{"note": *note}))
	}
	return nil
}
