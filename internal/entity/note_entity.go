package entity

import (
	"time"

	"github.com/google/uuid"
)

type NoteStatus string

const (
	NoteStatusPrivate NoteStatus = "private"
	NoteStatusDraft   NoteStatus = "draft"
	NoteStatusPublic  NoteStatus = "public"
)

func (s NoteStatus) IsValid() bool {
	switch s {
	case NoteStatusPrivate, NoteStatusDraft, NoteStatusPublic:
		return true
	}
	return false
}

// Note carries the publication state machine. PublishedAt is non-nil
// exactly when Status is public.
type Note struct {
	Id          uuid.UUID
	UserId      uuid.UUID
	Title       string
	Content     string
	Status      NoteStatus
	PublishedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (n *Note) IsPublic() bool {
	return n.Status == NoteStatusPublic
}
