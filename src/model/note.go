package model

import (
	"strings"
	"time"
)

// Note is the demo application's only entity.
type Note struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Body      string    `gorm:"type:text" json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateNotePayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Normalize trims the payload and reports whether it is usable.
func (p *CreateNotePayload) Normalize() bool {
	p.Title = strings.TrimSpace(p.Title)
	p.Body = strings.TrimSpace(p.Body)
	return p.Title != ""
}
