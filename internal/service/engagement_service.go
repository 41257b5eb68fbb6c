package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"inkfeed-be/internal/apperror"
	"inkfeed-be/internal/dto"
	"inkfeed-be/internal/entity"
	"inkfeed-be/internal/repository/contract"
	"inkfeed-be/internal/repository/specification"
	"inkfeed-be/internal/repository/unitofwork"
	"inkfeed-be/pkg/cache"
	"inkfeed-be/pkg/events"
	"inkfeed-be/pkg/utils"

	"github.com/google/uuid"
)

type IEngagementService interface {
	Toggle(ctx context.Context, userId uuid.UUID, noteId uuid.UUID, kind entity.EngagementKind) (*dto.EngagementStatusResponse, error)
	Status(ctx context.Context, userId *uuid.UUID, noteId uuid.UUID, kind entity.EngagementKind) (*dto.EngagementStatusResponse, error)
	ListFavorites(ctx context.Context, userId uuid.UUID, page, pageSize int) (*dto.PageResponse[dto.FavoriteItemResponse], error)
}

type engagementService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	countCache       *cache.FeedCountCache
	authors          *authorResolver
}

func NewEngagementService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	countCache *cache.FeedCountCache,
	authors *authorResolver,
) IEngagementService {
	return &engagementService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		countCache:       countCache,
		authors:          authors,
	}
}

// Toggle flips the caller's like/favorite relation and reports the state
// after the flip. The unique index on (user_id, note_id, kind) is the
// source of truth: races with a concurrent identical request collapse into
// "already active" / "already inactive" instead of erroring.
func (c *engagementService) Toggle(ctx context.Context, userId uuid.UUID, noteId uuid.UUID, kind entity.EngagementKind) (*dto.EngagementStatusResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: noteId})
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperror.NotFound("Note not found")
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	existing, err := uow.EngagementRepository().FindOne(ctx, specification.EngagementKey{
		UserID: userId,
		NoteID: noteId,
		Kind:   string(kind),
	})
	if err != nil {
		return nil, err
	}

	active := false
	if existing == nil {
		engagement := entity.Engagement{
			Id:        uuid.New(),
			UserId:    userId,
			NoteId:    noteId,
			Kind:      kind,
			CreatedAt: time.Now(),
		}
		err := uow.EngagementRepository().Create(ctx, &engagement)
		if err != nil && !errors.Is(err, contract.ErrDuplicate) {
			return nil, err
		}
		// ErrDuplicate means a concurrent request won the insert; either
		// way the relation is active now
		active = true
	} else {
		// Zero rows affected means a concurrent request removed it first;
		// either way the relation is inactive now
		if _, err := uow.EngagementRepository().DeleteByKey(ctx, userId, noteId, kind); err != nil {
			return nil, err
		}
	}

	count, err := uow.EngagementRepository().Count(ctx,
		specification.EngagementOfNote{NoteID: noteId},
		specification.EngagementKindIs{Kind: string(kind)},
	)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	c.countCache.Invalidate(ctx, noteId)

	if active {
		c.emitEngagement(ctx, kind, noteId, userId)
	}

	return &dto.EngagementStatusResponse{
		Active: active,
		Count:  count,
	}, nil
}

// Status is the read-only half of Toggle. An anonymous caller gets
// active=false with the real count.
func (c *engagementService) Status(ctx context.Context, userId *uuid.UUID, noteId uuid.UUID, kind entity.EngagementKind) (*dto.EngagementStatusResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: noteId})
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperror.NotFound("Note not found")
	}

	active := false
	if userId != nil {
		existing, err := uow.EngagementRepository().FindOne(ctx, specification.EngagementKey{
			UserID: *userId,
			NoteID: noteId,
			Kind:   string(kind),
		})
		if err != nil {
			return nil, err
		}
		active = existing != nil
	}

	count, err := uow.EngagementRepository().Count(ctx,
		specification.EngagementOfNote{NoteID: noteId},
		specification.EngagementKindIs{Kind: string(kind)},
	)
	if err != nil {
		return nil, err
	}

	return &dto.EngagementStatusResponse{
		Active: active,
		Count:  count,
	}, nil
}

func (c *engagementService) ListFavorites(ctx context.Context, userId uuid.UUID, page, pageSize int) (*dto.PageResponse[dto.FavoriteItemResponse], error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	page, pageSize = dto.NormalizePage(page, pageSize)

	// Only favorites whose note the caller can still see: public or own
	filterSpecs := []specification.Specification{
		specification.EngagementByUser{UserID: userId},
		specification.EngagementKindIs{Kind: string(entity.EngagementKindFavorite)},
		specification.EngagementNoteVisibleTo{UserID: userId},
	}

	favorites, err := uow.EngagementRepository().FindAll(ctx, append(filterSpecs,
		specification.OrderBy{Field: "engagements.created_at", Desc: true},
		specification.Pagination{Limit: pageSize, Offset: dto.Offset(page, pageSize)},
	)...)
	if err != nil {
		return nil, err
	}

	total, err := uow.EngagementRepository().Count(ctx, filterSpecs...)
	if err != nil {
		return nil, err
	}

	noteIds := make([]uuid.UUID, 0, len(favorites))
	for _, favorite := range favorites {
		noteIds = append(noteIds, favorite.NoteId)
	}

	notesById := make(map[uuid.UUID]*entity.Note, len(noteIds))
	authorIds := make([]uuid.UUID, 0, len(noteIds))
	if len(noteIds) > 0 {
		notes, err := uow.NoteRepository().FindAll(ctx, specification.ByIDs{IDs: noteIds})
		if err != nil {
			return nil, err
		}
		for _, note := range notes {
			notesById[note.Id] = note
			authorIds = append(authorIds, note.UserId)
		}
	}

	authors, err := c.authors.Resolve(ctx, uow, authorIds)
	if err != nil {
		return nil, err
	}

	list := make([]dto.FavoriteItemResponse, 0, len(favorites))
	for _, favorite := range favorites {
		note, ok := notesById[favorite.NoteId]
		if !ok {
			continue
		}
		list = append(list, dto.FavoriteItemResponse{
			NoteId:         note.Id,
			Title:          note.Title,
			ContentPreview: utils.PreviewText(note.Content, utils.DefaultPreviewLimit),
			Author:         authors[note.UserId],
			PublishedAt:    note.PublishedAt,
			FavoritedAt:    favorite.CreatedAt,
		})
	}

	return &dto.PageResponse[dto.FavoriteItemResponse]{
		List:     list,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (c *engagementService) emitEngagement(ctx context.Context, kind entity.EngagementKind, noteId, userId uuid.UUID) {
	if c.publisherService == nil {
		return
	}

	eventType := events.TypeNoteLiked
	if kind == entity.EngagementKindFavorite {
		eventType = events.TypeNoteFavorited
	}

	evt := events.BaseEvent{
		Type: eventType,
		Data: map[string]interface{}{
			"note_id": noteId,
			"user_id": userId,
		},
		OccurredAt: time.Now(),
	}
	if err := c.publisherService.PublishEvent(ctx, evt); err != nil {
		fmt.Printf("[WARN] Failed to publish %s event: %v\n", eventType, err)
	}
}
