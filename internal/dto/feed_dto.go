package dto

import (
	"time"

	"github.com/google/uuid"
)

// AuthorResponse is the display info attached to feed entries and comments.
// Name is the nickname when set, the username otherwise.
type AuthorResponse struct {
	Id        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	AvatarURL *string   `json:"avatar_url"`
}

type FeedItemResponse struct {
	Id             uuid.UUID      `json:"id"`
	Title          string         `json:"title"`
	ContentPreview string         `json:"content_preview"`
	Author         AuthorResponse `json:"author"`
	LikeCount      int64          `json:"like_count"`
	FavoriteCount  int64          `json:"favorite_count"`
	CommentCount   int64          `json:"comment_count"`
	PublishedAt    *time.Time     `json:"published_at"`
	CreatedAt      time.Time      `json:"created_at"`
}

// MyNoteItemResponse lists the caller's own notes, drafts included.
type MyNoteItemResponse struct {
	Id             uuid.UUID  `json:"id"`
	Title          string     `json:"title"`
	ContentPreview string     `json:"content_preview"`
	Status         string     `json:"status"`
	PublishedAt    *time.Time `json:"published_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type MyNotesQuery struct {
	Page     int
	PageSize int
	Search   string
	Status   string
}

// PublicNoteResponse is the anonymous-readable detail view of a published
// note.
type PublicNoteResponse struct {
	Id          uuid.UUID      `json:"id"`
	Title       string         `json:"title"`
	Content     string         `json:"content"`
	Author      AuthorResponse `json:"author"`
	PublishedAt *time.Time     `json:"published_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type AuthorProfileResponse struct {
	Id               uuid.UUID `json:"id"`
	Username         string    `json:"username"`
	Name             string    `json:"name"`
	AvatarURL        *string   `json:"avatar_url"`
	Bio              *string   `json:"bio"`
	PublicNotesCount int64     `json:"public_notes_count"`
	JoinedAt         time.Time `json:"joined_at"`
}
