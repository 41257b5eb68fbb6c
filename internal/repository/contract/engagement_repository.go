package contract

import (
	"context"
	"errors"

	"inkfeed-be/internal/entity"
	"inkfeed-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ErrDuplicate is returned by Create when the unique (user, note, kind)
// index rejects the row. Callers treat it as "relation already active".
var ErrDuplicate = errors.New("engagement already exists")

type EngagementRepository interface {
	Create(ctx context.Context, engagement *entity.Engagement) error
	// DeleteByKey removes the relation row and reports how many rows went
	// away. Zero means a concurrent request removed it first.
	DeleteByKey(ctx context.Context, userId, noteId uuid.UUID, kind entity.EngagementKind) (int64, error)
	DeleteAllOfNote(ctx context.Context, noteId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Engagement, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Engagement, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// CountGroupedByNote aggregates counts for a batch of notes in one
	// query; notes without rows are absent from the map.
	CountGroupedByNote(ctx context.Context, noteIds []uuid.UUID, kind entity.EngagementKind) (map[uuid.UUID]int64, error)
}
