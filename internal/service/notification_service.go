package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"inkfeed-be/internal/entity"
	"inkfeed-be/internal/model"
	"inkfeed-be/internal/pkg/logger"
	"inkfeed-be/internal/pkg/mailer"
	"inkfeed-be/internal/repository"
	"inkfeed-be/internal/repository/specification"
	"inkfeed-be/internal/repository/unitofwork"
	"inkfeed-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// notificationTemplate drives what an inbox row says for one event code.
// Placeholders in {braces} are filled from the enriched event payload.
type notificationTemplate struct {
	Title    string
	Template string
}

var notificationTemplates = map[string]notificationTemplate{
	events.TypeNotePublished:  {Title: "Note published", Template: `Your note "{title}" is now live`},
	events.TypeNoteLiked:      {Title: "New like", Template: `{actor} liked your note "{title}"`},
	events.TypeNoteFavorited:  {Title: "New favorite", Template: `{actor} added your note "{title}" to favorites`},
	events.TypeCommentCreated: {Title: "New comment", Template: `{actor} commented on "{title}"`},
}

// NotificationService records activity events into per-user inbox rows and
// serves them over REST. It consumes the in-process bus; losing a message
// loses a notification, never data.
type NotificationService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	repo       repository.NotificationRepository
	mailer     mailer.IEmailService
	logger     logger.ILogger
}

func NewNotificationService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	repo repository.NotificationRepository,
	emailService mailer.IEmailService,
	log logger.ILogger,
) *NotificationService {
	return &NotificationService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		repo:       repo,
		mailer:     emailService,
		logger:     log,
	}
}

// Start begins listening to the event bus.
func (s *NotificationService) Start(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to subscribe to event topic", map[string]interface{}{"error": err.Error(), "topic": s.topicName})
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	s.logger.Info("NotificationService", "Notification recorder started", map[string]interface{}{"topic": s.topicName})
	return nil
}

func (s *NotificationService) processMessage(ctx context.Context, msg *message.Message) {
	event, err := events.Unmarshal(msg.Payload)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to unmarshal event", map[string]interface{}{"error": err.Error()})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	if err := s.handleEvent(ctx, event); err != nil {
		s.logger.Error("NotificationService", fmt.Sprintf("Error handling event %s", event.EventType()), map[string]interface{}{"error": err.Error()})
		msg.Nack() // Nack for retriable errors
		return
	}

	msg.Ack()
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.BaseEvent) error {
	tpl, ok := notificationTemplates[event.EventType()]
	if !ok {
		s.logger.Warn("NotificationService", fmt.Sprintf("No template for event code '%s'", event.EventType()), nil)
		return nil
	}

	s.logger.Info("NotificationService", fmt.Sprintf("Processing event: %s", event.EventType()), map[string]interface{}{"type": event.EventType()})

	payload := event.Payload()
	noteId, ok := parseUUIDField(payload, "note_id")
	if !ok {
		s.logger.Warn("NotificationService", "Event carries no note_id, dropping", map[string]interface{}{"type": event.EventType()})
		return nil
	}
	actorId, _ := parseUUIDField(payload, "user_id")

	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: noteId})
	if err != nil {
		return err
	}
	if note == nil {
		// Note deleted between emit and consume? Drop.
		return nil
	}

	// Enrich the payload for templating
	data := make(map[string]interface{}, len(payload)+2)
	for k, v := range payload {
		data[k] = v
	}
	data["title"] = note.Title
	data["actor"] = "Someone"
	if actorId != uuid.Nil {
		actor, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: actorId})
		if err != nil {
			return err
		}
		if actor != nil {
			data["actor"] = actor.DisplayName()
		}
	}

	recipients, err := s.resolveRecipients(ctx, uow, event.EventType(), note, actorId, payload)
	if err != nil {
		return err
	}

	for _, userID := range recipients {
		notif := s.buildNotification(userID, actorId, tpl, event, note, data)

		if err := s.repo.CreateNotification(ctx, &notif); err != nil {
			s.logger.Error("NotificationService", fmt.Sprintf("Error saving notification for user %s", userID), map[string]interface{}{"error": err.Error()})
			continue
		}

		s.deliverEmail(ctx, uow, userID, &notif)
	}

	return nil
}

func (s *NotificationService) resolveRecipients(ctx context.Context, uow unitofwork.UnitOfWork, typeCode string, note *entity.Note, actorId uuid.UUID, payload map[string]interface{}) ([]uuid.UUID, error) {
	var userIDs []uuid.UUID

	switch typeCode {
	case events.TypeNotePublished:
		userIDs = append(userIDs, note.UserId)

	case events.TypeNoteLiked, events.TypeNoteFavorited:
		// Nobody needs to hear about their own like
		if note.UserId != actorId {
			userIDs = append(userIDs, note.UserId)
		}

	case events.TypeCommentCreated:
		if note.UserId != actorId {
			userIDs = append(userIDs, note.UserId)
		}
		// Replies also notify the parent comment's author
		if parentId, ok := parseUUIDField(payload, "parent_id"); ok {
			parent, err := uow.CommentRepository().FindOne(ctx, specification.ByID{ID: parentId})
			if err != nil {
				return nil, err
			}
			if parent != nil && parent.UserId != actorId && parent.UserId != note.UserId {
				userIDs = append(userIDs, parent.UserId)
			}
		}
	}

	return userIDs, nil
}

func (s *NotificationService) buildNotification(userID uuid.UUID, actorId uuid.UUID, tpl notificationTemplate, event events.BaseEvent, note *entity.Note, data map[string]interface{}) model.Notification {
	// Simple Template Engine
	msg := tpl.Template
	for k, v := range data {
		placeholder := fmt.Sprintf("{%s}", k)
		valStr := fmt.Sprintf("%v", v)
		msg = strings.ReplaceAll(msg, placeholder, valStr)
	}

	// Metadata - enrich with action_url for deep linking
	metaMap := make(map[string]interface{}, len(data)+1)
	for k, v := range data {
		metaMap[k] = v
	}
	metaMap["action_url"] = fmt.Sprintf("/notes/%s", note.Id)
	metaJSON, _ := json.Marshal(metaMap)

	var actorRef *uuid.UUID
	if actorId != uuid.Nil {
		actorRef = &actorId
	}
	noteId := note.Id

	return model.Notification{
		ID:         uuid.New(),
		UserID:     userID,
		ActorID:    actorRef,
		TypeCode:   event.EventType(),
		EntityType: "note",
		EntityID:   &noteId,
		Title:      tpl.Title,
		Message:    msg,
		Metadata:   datatypes.JSON(metaJSON),
		CreatedAt:  time.Now(),
		IsRead:     false,
	}
}

// deliverEmail forwards the row by mail when SMTP is wired and the user
// has an address. Pure best-effort.
func (s *NotificationService) deliverEmail(ctx context.Context, uow unitofwork.UnitOfWork, userID uuid.UUID, notif *model.Notification) {
	if s.mailer == nil {
		return
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userID})
	if err != nil || user == nil || user.Email == nil || *user.Email == "" {
		return
	}

	actionURL := ""
	if notif.EntityID != nil {
		actionURL = fmt.Sprintf("/notes/%s", notif.EntityID)
	}

	if err := s.mailer.SendNotification(*user.Email, notif.Title, notif.Message, actionURL); err != nil {
		s.logger.Warn("NotificationService", "Email delivery failed", map[string]interface{}{"error": err.Error(), "user_id": userID})
	}
}

func parseUUIDField(payload map[string]interface{}, key string) (uuid.UUID, bool) {
	str, ok := payload[key].(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(str)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// GetNotifications fetches notifications for a user.
func (s *NotificationService) GetNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, int64, error) {
	return s.repo.GetNotificationsByUserID(ctx, userID, limit, offset)
}

// GetUnreadCount fetches unread count.
func (s *NotificationService) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.GetUnreadCount(ctx, userID)
}

// MarkAsRead marks one of the user's notifications as read.
func (s *NotificationService) MarkAsRead(ctx context.Context, notificationID, userID uuid.UUID) error {
	return s.repo.MarkAsRead(ctx, notificationID, userID)
}

// MarkAllAsRead marks all notifications as read for a user.
func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}
