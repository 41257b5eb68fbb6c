package repository

import (
	"context"
	"errors"

	"inkfeed-be/internal/model"

	"github.com/google/uuid"
)

// ErrNotificationNotFound is returned by MarkAsRead when no row matches
// the (id, user) pair; rows of other users look absent on purpose.
var ErrNotificationNotFound = errors.New("notification not found")

// NotificationRepository works on models directly; the inbox rows are
// served to clients as stored.
type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *model.Notification) error
	GetNotificationsByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, int64, error)
	GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkAsRead(ctx context.Context, notificationID, userID uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
	// DeleteAllOfEntity clears inbox rows pointing at a removed entity,
	// part of the note deletion cascade.
	DeleteAllOfEntity(ctx context.Context, entityType string, entityID uuid.UUID) error
}
