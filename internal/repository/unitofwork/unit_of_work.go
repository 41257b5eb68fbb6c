package unitofwork

import (
	"context"

	"inkfeed-be/internal/repository"
	"inkfeed-be/internal/repository/contract"
)

// UnitOfWork scopes repository access to one request. After Begin, every
// accessor hands out a repository bound to the same transaction until
// Commit or Rollback.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	NoteRepository() contract.NoteRepository
	EngagementRepository() contract.EngagementRepository
	CommentRepository() contract.CommentRepository
	NotificationRepository() repository.NotificationRepository
}
