package contract

import (
	"context"

	"inkfeed-be/internal/entity"
	"inkfeed-be/internal/repository/specification"

	"github.com/google/uuid"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	// Delete removes exactly the given row. Replies keep their parent_id
	// and fall out of the tree on the next read.
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAllOfNote(ctx context.Context, noteId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Comment, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Comment, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	CountGroupedByNote(ctx context.Context, noteIds []uuid.UUID) (map[uuid.UUID]int64, error)
}
