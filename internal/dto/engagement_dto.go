package dto

import (
	"time"

	"github.com/google/uuid"
)

// EngagementStatusResponse is returned by both the toggle and the status
// read: the caller's current relation plus the note-wide count.
type EngagementStatusResponse struct {
	Active bool  `json:"active"`
	Count  int64 `json:"count"`
}

// FavoriteItemResponse is one entry of the caller's favorites listing.
// Only notes still visible to the caller appear.
type FavoriteItemResponse struct {
	NoteId         uuid.UUID      `json:"note_id"`
	Title          string         `json:"title"`
	ContentPreview string         `json:"content_preview"`
	Author         AuthorResponse `json:"author"`
	PublishedAt    *time.Time     `json:"published_at"`
	FavoritedAt    time.Time      `json:"favorited_at"`
}
