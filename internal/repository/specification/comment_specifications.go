package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommentOfNote struct {
	NoteID uuid.UUID
}

func (s CommentOfNote) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("comments.note_id = ?", s.NoteID)
}

type CommentOwnedByUser struct {
	UserID uuid.UUID
}

func (s CommentOwnedByUser) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("comments.user_id = ?", s.UserID)
}
