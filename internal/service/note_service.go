package service

import (
	"context"
	"fmt"
	"time"

	"inkfeed-be/internal/apperror"
	"inkfeed-be/internal/dto"
	"inkfeed-be/internal/entity"
	"inkfeed-be/internal/repository/specification"
	"inkfeed-be/internal/repository/unitofwork"
	"inkfeed-be/pkg/cache"
	"inkfeed-be/pkg/events"

	"github.com/google/uuid"
)

type INoteService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error)
	Publish(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error)
	SaveDraft(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error)
	Autosave(ctx context.Context, userId uuid.UUID, req *dto.AutosaveNoteRequest) (*dto.AutosaveNoteResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type noteService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	countCache       *cache.FeedCountCache
}

func NewNoteService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	countCache *cache.FeedCountCache,
) INoteService {
	return &noteService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		countCache:       countCache,
	}
}

func (c *noteService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	now := time.Now()
	status := entity.NoteStatusPrivate
	if req.Status != nil {
		status = entity.NoteStatus(*req.Status)
	}

	note := entity.Note{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     req.Title,
		Content:   req.Content,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	// Creating straight to public counts as publishing
	if status == entity.NoteStatusPublic {
		note.PublishedAt = &now
	}

	err := uow.NoteRepository().Create(ctx, &note)
	if err != nil {
		return nil, err
	}

	if note.IsPublic() {
		c.emitNotePublished(ctx, &note)
	}

	return mapNoteResponse(&note), nil
}

func (c *noteService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.NoteVisibleTo{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperror.NotFound("Note not found")
	}

	return mapNoteResponse(note), nil
}

func (c *noteService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.NoteOwnedByUser{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperror.NotFound("Note not found")
	}

	now := time.Now()
	wentPublic := false

	if req.Title != nil {
		note.Title = *req.Title
	}
	if req.Content != nil {
		note.Content = *req.Content
	}
	if req.Status != nil {
		status := entity.NoteStatus(*req.Status)
		if status == entity.NoteStatusPublic {
			if note.PublishedAt == nil {
				note.PublishedAt = &now
				wentPublic = true
			}
		} else {
			note.PublishedAt = nil
		}
		note.Status = status
	}
	note.UpdatedAt = now

	err = uow.NoteRepository().Update(ctx, note)
	if err != nil {
		return nil, err
	}

	if wentPublic {
		c.emitNotePublished(ctx, note)
	}

	return mapNoteResponse(note), nil
}

func (c *noteService) Publish(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.NoteOwnedByUser{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperror.NotFound("Note not found")
	}

	// Explicit publish always restamps, even on an already public note
	now := time.Now()
	note.Status = entity.NoteStatusPublic
	note.PublishedAt = &now
	note.UpdatedAt = now

	err = uow.NoteRepository().Update(ctx, note)
	if err != nil {
		return nil, err
	}

	c.emitNotePublished(ctx, note)

	return mapNoteResponse(note), nil
}

func (c *noteService) SaveDraft(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.NoteOwnedByUser{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperror.NotFound("Note not found")
	}

	now := time.Now()
	note.Status = entity.NoteStatusDraft
	note.PublishedAt = nil
	note.UpdatedAt = now

	err = uow.NoteRepository().Update(ctx, note)
	if err != nil {
		return nil, err
	}

	return mapNoteResponse(note), nil
}

func (c *noteService) Autosave(ctx context.Context, userId uuid.UUID, req *dto.AutosaveNoteRequest) (*dto.AutosaveNoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.NoteOwnedByUser{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperror.NotFound("Note not found")
	}

	// Content-only write from the editor; publication state stays put
	note.Content = req.Content
	note.UpdatedAt = time.Now()

	err = uow.NoteRepository().Update(ctx, note)
	if err != nil {
		return nil, err
	}

	return &dto.AutosaveNoteResponse{
		Id:        note.Id,
		UpdatedAt: note.UpdatedAt,
	}, nil
}

func (c *noteService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.NoteOwnedByUser{UserID: userId},
	)
	if err != nil {
		return err
	}
	if note == nil {
		return apperror.NotFound("Note not found")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.NoteRepository().Delete(ctx, id); err != nil {
		return err
	}

	if err := uow.EngagementRepository().DeleteAllOfNote(ctx, id); err != nil {
		return err
	}

	if err := uow.CommentRepository().DeleteAllOfNote(ctx, id); err != nil {
		return err
	}

	if err := uow.NotificationRepository().DeleteAllOfEntity(ctx, "note", id); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	c.countCache.Invalidate(ctx, id)
	return nil
}

// emitNotePublished tells the notification side a note went live. Failures
// are logged, never surfaced: the write already committed.
func (c *noteService) emitNotePublished(ctx context.Context, note *entity.Note) {
	if c.publisherService == nil {
		return
	}
	evt := events.BaseEvent{
		Type: events.TypeNotePublished,
		Data: map[string]interface{}{
			"title":   note.Title, // Template uses {title}
			"note_id": note.Id,
			"user_id": note.UserId,
		},
		OccurredAt: time.Now(),
	}
	if err := c.publisherService.PublishEvent(ctx, evt); err != nil {
		fmt.Printf("[WARN] Failed to publish NOTE_PUBLISHED event: %v\n", err)
	}
}

func mapNoteResponse(note *entity.Note) *dto.NoteResponse {
	return &dto.NoteResponse{
		Id:          note.Id,
		UserId:      note.UserId,
		Title:       note.Title,
		Content:     note.Content,
		Status:      string(note.Status),
		PublishedAt: note.PublishedAt,
		CreatedAt:   note.CreatedAt,
		UpdatedAt:   note.UpdatedAt,
	}
}
