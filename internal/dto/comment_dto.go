package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateCommentRequest struct {
	NoteId   uuid.UUID
	Content  string     `json:"content" validate:"required,max=2000"`
	ParentId *uuid.UUID `json:"parent_id"`
}

// CommentResponse is one node of the reply tree. Replies are ordered by
// creation time; a freshly created comment has an empty slice.
type CommentResponse struct {
	Id        uuid.UUID          `json:"id"`
	NoteId    uuid.UUID          `json:"note_id"`
	ParentId  *uuid.UUID         `json:"parent_id"`
	Content   string             `json:"content"`
	Author    AuthorResponse     `json:"author"`
	CreatedAt time.Time          `json:"created_at"`
	Replies   []*CommentResponse `json:"replies"`
}

// CommentListResponse carries the reconstructed forest. Total counts every
// comment on the note, including orphaned ones absent from the tree.
type CommentListResponse struct {
	Comments []*CommentResponse `json:"comments"`
	Total    int64              `json:"total"`
}
