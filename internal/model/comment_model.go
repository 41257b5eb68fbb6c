package model

import (
	"time"

	"github.com/google/uuid"
)

// Comment rows are hard-deleted. Children keep their ParentId when the
// parent goes away; the read side drops dangling branches from the tree.
type Comment struct {
	Id        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID  `gorm:"type:uuid;not null;index"`
	NoteId    uuid.UUID  `gorm:"type:uuid;not null;index"`
	ParentId  *uuid.UUID `gorm:"type:uuid;index"`
	Content   string     `gorm:"type:text;not null"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
}

func (Comment) TableName() string {
	return "comments"
}
