package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NoteOwnedByUser struct {
	UserID uuid.UUID
}

func (s NoteOwnedByUser) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("notes.user_id = ?", s.UserID)
}

type NoteStatusIs struct {
	Status string
}

func (s NoteStatusIs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("notes.status = ?", s.Status)
}

// NotePublished selects notes visible on the shared feed. Both conditions
// are checked even though they move together, so a row with a half-applied
// state never leaks.
type NotePublished struct{}

func (s NotePublished) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("notes.status = ? AND notes.published_at IS NOT NULL", "public")
}

// NoteVisibleTo keeps notes the given user may read: their own, or live
// public ones.
type NoteVisibleTo struct {
	UserID uuid.UUID
}

func (s NoteVisibleTo) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("notes.user_id = ? OR (notes.status = ? AND notes.published_at IS NOT NULL)", s.UserID, "public")
}

// NoteTitleContains does a case-insensitive substring match on the title.
// Using ILIKE for Postgres.
type NoteTitleContains struct {
	Term string
}

func (s NoteTitleContains) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + s.Term + "%"
	return db.Where("notes.title ILIKE ?", pattern)
}
