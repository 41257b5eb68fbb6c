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

type ICommentService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, commentId uuid.UUID) error
	ListTree(ctx context.Context, noteId uuid.UUID) (*dto.CommentListResponse, error)
}

type commentService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	countCache       *cache.FeedCountCache
	authors          *authorResolver
}

func NewCommentService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	countCache *cache.FeedCountCache,
	authors *authorResolver,
) ICommentService {
	return &commentService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		countCache:       countCache,
		authors:          authors,
	}
}

func (c *commentService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: req.NoteId})
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperror.NotFound("Note not found")
	}

	// A reply must point at a comment that actually sits on this note
	if req.ParentId != nil {
		parent, err := uow.CommentRepository().FindOne(ctx, specification.ByID{ID: *req.ParentId})
		if err != nil {
			return nil, err
		}
		if parent == nil || parent.NoteId != req.NoteId {
			return nil, apperror.InvalidParent("Parent comment not found on this note")
		}
	}

	comment := entity.Comment{
		Id:        uuid.New(),
		UserId:    userId,
		NoteId:    req.NoteId,
		ParentId:  req.ParentId,
		Content:   req.Content,
		CreatedAt: time.Now(),
	}

	err = uow.CommentRepository().Create(ctx, &comment)
	if err != nil {
		return nil, err
	}

	c.countCache.Invalidate(ctx, req.NoteId)
	c.emitCommentCreated(ctx, &comment)

	authors, err := c.authors.Resolve(ctx, uow, []uuid.UUID{userId})
	if err != nil {
		return nil, err
	}

	res := mapCommentResponse(&comment, authors[userId])
	return res, nil
}

func (c *commentService) Delete(ctx context.Context, userId uuid.UUID, commentId uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	comment, err := uow.CommentRepository().FindOne(ctx, specification.ByID{ID: commentId})
	if err != nil {
		return err
	}
	if comment == nil {
		return apperror.NotFound("Comment not found")
	}
	if comment.UserId != userId {
		return apperror.Forbidden("Only the comment author can delete it")
	}

	// Replies survive with a dangling parent_id and drop out of the tree
	// on the next read
	if err := uow.CommentRepository().Delete(ctx, commentId); err != nil {
		return err
	}

	c.countCache.Invalidate(ctx, comment.NoteId)
	return nil
}

func (c *commentService) ListTree(ctx context.Context, noteId uuid.UUID) (*dto.CommentListResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: noteId})
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperror.NotFound("Note not found")
	}

	comments, err := uow.CommentRepository().FindAll(ctx,
		specification.CommentOfNote{NoteID: noteId},
		specification.OrderBy{Field: "comments.created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	authorIds := make([]uuid.UUID, 0, len(comments))
	for _, comment := range comments {
		authorIds = append(authorIds, comment.UserId)
	}
	authors, err := c.authors.Resolve(ctx, uow, authorIds)
	if err != nil {
		return nil, err
	}

	return &dto.CommentListResponse{
		Comments: buildCommentForest(comments, authors),
		Total:    int64(len(comments)),
	}, nil
}

// buildCommentForest turns flat creation-ordered rows into the reply tree.
// First pass indexes every node, second pass attaches each node to its
// parent when that parent is present; nodes whose parent was deleted are
// counted but placed nowhere.
func buildCommentForest(comments []*entity.Comment, authors map[uuid.UUID]dto.AuthorResponse) []*dto.CommentResponse {
	nodes := make(map[uuid.UUID]*dto.CommentResponse, len(comments))
	for _, comment := range comments {
		nodes[comment.Id] = mapCommentResponse(comment, authors[comment.UserId])
	}

	roots := make([]*dto.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		node := nodes[comment.Id]
		if comment.ParentId == nil {
			roots = append(roots, node)
			continue
		}
		if parent, ok := nodes[*comment.ParentId]; ok {
			parent.Replies = append(parent.Replies, node)
		}
	}

	return roots
}

func mapCommentResponse(comment *entity.Comment, author dto.AuthorResponse) *dto.CommentResponse {
	return &dto.CommentResponse{
		Id:        comment.Id,
		NoteId:    comment.NoteId,
		ParentId:  comment.ParentId,
		Content:   comment.Content,
		Author:    author,
		CreatedAt: comment.CreatedAt,
		Replies:   []*dto.CommentResponse{},
	}
}

func (c *commentService) emitCommentCreated(ctx context.Context, comment *entity.Comment) {
	if c.publisherService == nil {
		return
	}

	data := map[string]interface{}{
		"note_id":    comment.NoteId,
		"comment_id": comment.Id,
		"user_id":    comment.UserId,
	}
	if comment.ParentId != nil {
		data["parent_id"] = *comment.ParentId
	}

	evt := events.BaseEvent{
		Type:       events.TypeCommentCreated,
		Data:       data,
		OccurredAt: time.Now(),
	}
	if err := c.publisherService.PublishEvent(ctx, evt); err != nil {
		fmt.Printf("[WARN] Failed to publish COMMENT_CREATED event: %v\n", err)
	}
}
