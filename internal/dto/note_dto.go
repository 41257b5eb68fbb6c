package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateNoteRequest struct {
	Title   string  `json:"title" validate:"required,max=255"`
	Content string  `json:"content"`
	Status  *string `json:"status" validate:"omitempty,oneof=private draft public"`
}

type UpdateNoteRequest struct {
	Id      uuid.UUID
	Title   *string `json:"title" validate:"omitempty,min=1,max=255"`
	Content *string `json:"content"`
	Status  *string `json:"status" validate:"omitempty,oneof=private draft public"`
}

type AutosaveNoteRequest struct {
	Id      uuid.UUID
	Content string `json:"content"`
}

type AutosaveNoteResponse struct {
	Id        uuid.UUID `json:"id"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NoteResponse is the owner-facing note shape, shared by create, show,
// update and the publication transitions.
type NoteResponse struct {
	Id          uuid.UUID  `json:"id"`
	UserId      uuid.UUID  `json:"user_id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	Status      string     `json:"status"`
	PublishedAt *time.Time `json:"published_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
