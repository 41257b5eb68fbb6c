package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EngagementKey pins the unique (user, note, kind) triple.
type EngagementKey struct {
	UserID uuid.UUID
	NoteID uuid.UUID
	Kind   string
}

func (s EngagementKey) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("engagements.user_id = ? AND engagements.note_id = ? AND engagements.kind = ?", s.UserID, s.NoteID, s.Kind)
}

type EngagementByUser struct {
	UserID uuid.UUID
}

func (s EngagementByUser) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("engagements.user_id = ?", s.UserID)
}

type EngagementOfNote struct {
	NoteID uuid.UUID
}

func (s EngagementOfNote) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("engagements.note_id = ?", s.NoteID)
}

type EngagementKindIs struct {
	Kind string
}

func (s EngagementKindIs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("engagements.kind = ?", s.Kind)
}

// EngagementNoteVisibleTo joins the notes table and keeps only relations
// whose note the given user may still see: public ones or their own.
// Soft-deleted notes are excluded explicitly since the join bypasses the
// model scope.
type EngagementNoteVisibleTo struct {
	UserID uuid.UUID
}

func (s EngagementNoteVisibleTo) Apply(db *gorm.DB) *gorm.DB {
	return db.Joins("JOIN notes ON notes.id = engagements.note_id").
		Where("notes.deleted_at IS NULL").
		Where("notes.status = ? OR notes.user_id = ?", "public", s.UserID)
}
