package service

import (
	"context"
	"net/http"

	"inkfeed-be/internal/apperror"
	"inkfeed-be/internal/dto"
	"inkfeed-be/internal/entity"
	"inkfeed-be/internal/repository/specification"
	"inkfeed-be/internal/repository/unitofwork"
	"inkfeed-be/pkg/cache"
	"inkfeed-be/pkg/utils"

	"github.com/google/uuid"
)

type IFeedService interface {
	Discover(ctx context.Context, page, pageSize int) (*dto.PageResponse[dto.FeedItemResponse], error)
	ShowPublic(ctx context.Context, noteId uuid.UUID) (*dto.PublicNoteResponse, error)
	MyNotes(ctx context.Context, userId uuid.UUID, query *dto.MyNotesQuery) (*dto.PageResponse[dto.MyNoteItemResponse], error)
	AuthorNotes(ctx context.Context, authorId uuid.UUID, page, pageSize int) (*dto.PageResponse[dto.FeedItemResponse], error)
	AuthorProfile(ctx context.Context, authorId uuid.UUID) (*dto.AuthorProfileResponse, error)
}

// feedService is read-only composition over notes, engagements, comments
// and users. It never writes; caches only shortcut what the database
// would answer anyway.
type feedService struct {
	uowFactory unitofwork.RepositoryFactory
	countCache *cache.FeedCountCache
	authors    *authorResolver
}

func NewFeedService(
	uowFactory unitofwork.RepositoryFactory,
	countCache *cache.FeedCountCache,
	authors *authorResolver,
) IFeedService {
	return &feedService{
		uowFactory: uowFactory,
		countCache: countCache,
		authors:    authors,
	}
}

func (c *feedService) Discover(ctx context.Context, page, pageSize int) (*dto.PageResponse[dto.FeedItemResponse], error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	page, pageSize = dto.NormalizePage(page, pageSize)

	notes, err := uow.NoteRepository().FindAll(ctx,
		specification.NotePublished{},
		specification.OrderBy{Field: "notes.published_at", Desc: true},
		specification.Pagination{Limit: pageSize, Offset: dto.Offset(page, pageSize)},
	)
	if err != nil {
		return nil, err
	}

	total, err := uow.NoteRepository().Count(ctx, specification.NotePublished{})
	if err != nil {
		return nil, err
	}

	return c.buildFeedPage(ctx, uow, notes, total, page, pageSize)
}

func (c *feedService) ShowPublic(ctx context.Context, noteId uuid.UUID) (*dto.PublicNoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: noteId},
		specification.NotePublished{},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperror.NotFound("Note not found")
	}

	authors, err := c.authors.Resolve(ctx, uow, []uuid.UUID{note.UserId})
	if err != nil {
		return nil, err
	}

	return &dto.PublicNoteResponse{
		Id:          note.Id,
		Title:       note.Title,
		Content:     note.Content,
		Author:      authors[note.UserId],
		PublishedAt: note.PublishedAt,
		CreatedAt:   note.CreatedAt,
		UpdatedAt:   note.UpdatedAt,
	}, nil
}

func (c *feedService) MyNotes(ctx context.Context, userId uuid.UUID, query *dto.MyNotesQuery) (*dto.PageResponse[dto.MyNoteItemResponse], error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	page, pageSize := dto.NormalizePage(query.Page, query.PageSize)

	filterSpecs := []specification.Specification{
		specification.NoteOwnedByUser{UserID: userId},
	}
	if query.Search != "" {
		filterSpecs = append(filterSpecs, specification.NoteTitleContains{Term: query.Search})
	}
	if query.Status != "" {
		if !entity.NoteStatus(query.Status).IsValid() {
			return nil, apperror.New(http.StatusBadRequest, apperror.CodeValidationFailed, "Unknown status filter")
		}
		filterSpecs = append(filterSpecs, specification.NoteStatusIs{Status: query.Status})
	}

	notes, err := uow.NoteRepository().FindAll(ctx, append(filterSpecs,
		specification.OrderBy{Field: "notes.updated_at", Desc: true},
		specification.Pagination{Limit: pageSize, Offset: dto.Offset(page, pageSize)},
	)...)
	if err != nil {
		return nil, err
	}

	total, err := uow.NoteRepository().Count(ctx, filterSpecs...)
	if err != nil {
		return nil, err
	}

	list := make([]dto.MyNoteItemResponse, 0, len(notes))
	for _, note := range notes {
		list = append(list, dto.MyNoteItemResponse{
			Id:             note.Id,
			Title:          note.Title,
			ContentPreview: utils.PreviewText(note.Content, utils.DefaultPreviewLimit),
			Status:         string(note.Status),
			PublishedAt:    note.PublishedAt,
			CreatedAt:      note.CreatedAt,
			UpdatedAt:      note.UpdatedAt,
		})
	}

	return &dto.PageResponse[dto.MyNoteItemResponse]{
		List:     list,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (c *feedService) AuthorNotes(ctx context.Context, authorId uuid.UUID, page, pageSize int) (*dto.PageResponse[dto.FeedItemResponse], error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	page, pageSize = dto.NormalizePage(page, pageSize)

	author, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: authorId})
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, apperror.NotFound("Author not found")
	}

	filterSpecs := []specification.Specification{
		specification.NoteOwnedByUser{UserID: authorId},
		specification.NotePublished{},
	}

	notes, err := uow.NoteRepository().FindAll(ctx, append(filterSpecs,
		specification.OrderBy{Field: "notes.published_at", Desc: true},
		specification.Pagination{Limit: pageSize, Offset: dto.Offset(page, pageSize)},
	)...)
	if err != nil {
		return nil, err
	}

	total, err := uow.NoteRepository().Count(ctx, filterSpecs...)
	if err != nil {
		return nil, err
	}

	return c.buildFeedPage(ctx, uow, notes, total, page, pageSize)
}

func (c *feedService) AuthorProfile(ctx context.Context, authorId uuid.UUID) (*dto.AuthorProfileResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	author, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: authorId})
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, apperror.NotFound("Author not found")
	}

	publicNotesCount, err := uow.NoteRepository().Count(ctx,
		specification.NoteOwnedByUser{UserID: authorId},
		specification.NotePublished{},
	)
	if err != nil {
		return nil, err
	}

	return &dto.AuthorProfileResponse{
		Id:               author.Id,
		Username:         author.Username,
		Name:             author.DisplayName(),
		AvatarURL:        author.AvatarURL,
		Bio:              author.Bio,
		PublicNotesCount: publicNotesCount,
		JoinedAt:         author.CreatedAt,
	}, nil
}

func (c *feedService) buildFeedPage(ctx context.Context, uow unitofwork.UnitOfWork, notes []*entity.Note, total int64, page, pageSize int) (*dto.PageResponse[dto.FeedItemResponse], error) {
	noteIds := make([]uuid.UUID, 0, len(notes))
	authorIds := make([]uuid.UUID, 0, len(notes))
	for _, note := range notes {
		noteIds = append(noteIds, note.Id)
		authorIds = append(authorIds, note.UserId)
	}

	counts, err := c.loadCounts(ctx, uow, noteIds)
	if err != nil {
		return nil, err
	}

	authors, err := c.authors.Resolve(ctx, uow, authorIds)
	if err != nil {
		return nil, err
	}

	list := make([]dto.FeedItemResponse, 0, len(notes))
	for _, note := range notes {
		noteCounts := counts[note.Id]
		list = append(list, dto.FeedItemResponse{
			Id:             note.Id,
			Title:          note.Title,
			ContentPreview: utils.PreviewText(note.Content, utils.DefaultPreviewLimit),
			Author:         authors[note.UserId],
			LikeCount:      noteCounts.Likes,
			FavoriteCount:  noteCounts.Favorites,
			CommentCount:   noteCounts.Comments,
			PublishedAt:    note.PublishedAt,
			CreatedAt:      note.CreatedAt,
		})
	}

	return &dto.PageResponse[dto.FeedItemResponse]{
		List:     list,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// loadCounts answers engagement tallies for a page of notes: cached
// entries first, then one grouped query per kind for the misses, which
// are written back with a short TTL. With no Redis configured every page
// hits the grouped queries and behaves identically.
func (c *feedService) loadCounts(ctx context.Context, uow unitofwork.UnitOfWork, noteIds []uuid.UUID) (map[uuid.UUID]cache.NoteCounts, error) {
	counts := c.countCache.GetMany(ctx, noteIds)

	var missing []uuid.UUID
	for _, id := range noteIds {
		if _, ok := counts[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return counts, nil
	}

	likes, err := uow.EngagementRepository().CountGroupedByNote(ctx, missing, entity.EngagementKindLike)
	if err != nil {
		return nil, err
	}
	favorites, err := uow.EngagementRepository().CountGroupedByNote(ctx, missing, entity.EngagementKindFavorite)
	if err != nil {
		return nil, err
	}
	comments, err := uow.CommentRepository().CountGroupedByNote(ctx, missing)
	if err != nil {
		return nil, err
	}

	fresh := make(map[uuid.UUID]cache.NoteCounts, len(missing))
	for _, id := range missing {
		noteCounts := cache.NoteCounts{
			Likes:     likes[id],
			Favorites: favorites[id],
			Comments:  comments[id],
		}
		counts[id] = noteCounts
		fresh[id] = noteCounts
	}
	c.countCache.SetMany(ctx, fresh)

	return counts, nil
}
