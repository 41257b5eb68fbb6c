package entity

import (
	"time"

	"github.com/google/uuid"
)

type EngagementKind string

const (
	EngagementKindLike     EngagementKind = "like"
	EngagementKindFavorite EngagementKind = "favorite"
)

func (k EngagementKind) IsValid() bool {
	return k == EngagementKindLike || k == EngagementKindFavorite
}

// Engagement is one like or favorite relation. The (UserId, NoteId, Kind)
// triple is unique, enforced by the database index.
type Engagement struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	NoteId    uuid.UUID
	Kind      EngagementKind
	CreatedAt time.Time
}
