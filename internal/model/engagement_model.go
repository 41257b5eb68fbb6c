package model

import (
	"time"

	"github.com/google/uuid"
)

// Engagement rows are hard-deleted on toggle-off. A soft-delete column would
// keep removed rows inside the unique index and block re-activation.
type Engagement struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_engagements_user_note_kind,priority:1"`
	NoteId    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_engagements_user_note_kind,priority:2;index"`
	Kind      string    `gorm:"type:varchar(20);not null;uniqueIndex:uk_engagements_user_note_kind,priority:3"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Engagement) TableName() string {
	return "engagements"
}
