package handler

import (
	"errors"

	"inkfeed-be/internal/apperror"
	"inkfeed-be/internal/dto"
	"inkfeed-be/internal/model"
	"inkfeed-be/internal/pkg/logger"
	"inkfeed-be/internal/pkg/serverutils"
	"inkfeed-be/internal/repository"
	"inkfeed-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type NotificationHandler struct {
	service *service.NotificationService
	logger  logger.ILogger
}

func NewNotificationHandler(service *service.NotificationService, log logger.ILogger) *NotificationHandler {
	return &NotificationHandler{
		service: service,
		logger:  log,
	}
}

// GetNotifications returns the user's notifications.
func (h *NotificationHandler) GetNotifications(c *fiber.Ctx) error {
	userID, err := h.currentUser(c)
	if err != nil {
		return err
	}

	page, pageSize := dto.NormalizePage(c.QueryInt("page", dto.DefaultPage), c.QueryInt("page_size", dto.DefaultPageSize))

	notifications, total, err := h.service.GetNotifications(c.UserContext(), userID, pageSize, dto.Offset(page, pageSize))
	if err != nil {
		return err
	}

	return c.JSON(serverutils.SuccessResponse("User notifications", dto.PageResponse[model.Notification]{
		List:     notifications,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}))
}

// GetUnreadCount returns the number of unread notifications.
func (h *NotificationHandler) GetUnreadCount(c *fiber.Ctx) error {
	userID, err := h.currentUser(c)
	if err != nil {
		return err
	}

	count, err := h.service.GetUnreadCount(c.UserContext(), userID)
	if err != nil {
		return err
	}

	return c.JSON(serverutils.SuccessResponse("Unread notifications count", fiber.Map{"count": count}))
}

// MarkAsRead marks a specific notification as read.
func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	userID, err := h.currentUser(c)
	if err != nil {
		return err
	}

	idStr := c.Params("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid ID"))
	}

	if err := h.service.MarkAsRead(c.UserContext(), id, userID); err != nil {
		if errors.Is(err, repository.ErrNotificationNotFound) {
			h.logger.Warn("NotificationHandler", "Mark-as-read on missing or foreign notification", map[string]interface{}{"notification_id": id, "user_id": userID})
			return apperror.NotFound("Notification not found")
		}
		return err
	}

	return c.JSON(serverutils.SuccessResponse[any]("Notification marked as read", nil))
}

// MarkAllAsRead marks all user's notifications as read.
func (h *NotificationHandler) MarkAllAsRead(c *fiber.Ctx) error {
	userID, err := h.currentUser(c)
	if err != nil {
		return err
	}

	if err := h.service.MarkAllAsRead(c.UserContext(), userID); err != nil {
		return err
	}

	return c.JSON(serverutils.SuccessResponse[any]("All notifications marked as read", nil))
}

// currentUser reads the caller set by the auth middleware. Assuming Auth
// middleware sets "user_id" in locals as a string.
func (h *NotificationHandler) currentUser(c *fiber.Ctx) (uuid.UUID, error) {
	userIDStr, ok := c.Locals("user_id").(string)
	if !ok {
		return uuid.Nil, apperror.Unauthenticated("Unauthorized")
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, apperror.Unauthenticated("Invalid user ID")
	}
	return userID, nil
}

// RegisterRoutes registers the notification routes.
func (h *NotificationHandler) RegisterRoutes(router fiber.Router) {
	notif := router.Group("/notification/v1")
	notif.Use(serverutils.JwtMiddleware)
	notif.Get("", h.GetNotifications)
	notif.Get("unread-count", h.GetUnreadCount)
	notif.Put(":id/read", h.MarkAsRead)
	notif.Put("read-all", h.MarkAllAsRead)
}
