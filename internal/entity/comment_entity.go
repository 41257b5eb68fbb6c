package entity

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a flat row; the reply tree is rebuilt on read. ParentId, when
// set, points at an earlier comment on the same note. Deleting a parent
// leaves children in place with a dangling ParentId.
type Comment struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	NoteId    uuid.UUID
	ParentId  *uuid.UUID
	Content   string
	CreatedAt time.Time
}

func (c *Comment) IsReply() bool {
	return c.ParentId != nil
}
