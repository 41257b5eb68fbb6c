package contract

import (
	"context"

	"inkfeed-be/internal/entity"
	"inkfeed-be/internal/repository/specification"
)

// UserRepository reads author profiles. Nothing in this service mutates
// users beyond seeding; the identity provider owns the account lifecycle.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
