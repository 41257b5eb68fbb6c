package mapper

import (
	"inkfeed-be/internal/entity"
	"inkfeed-be/internal/model"
)

type CommentMapper struct{}

func NewCommentMapper() *CommentMapper {
	return &CommentMapper{}
}

func (m *CommentMapper) ToEntity(c *model.Comment) *entity.Comment {
	if c == nil {
		return nil
	}

	return &entity.Comment{
		Id:        c.Id,
		UserId:    c.UserId,
		NoteId:    c.NoteId,
		ParentId:  c.ParentId,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}

func (m *CommentMapper) ToModel(c *entity.Comment) *model.Comment {
	if c == nil {
		return nil
	}

	return &model.Comment{
		Id:        c.Id,
		UserId:    c.UserId,
		NoteId:    c.NoteId,
		ParentId:  c.ParentId,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}

func (m *CommentMapper) ToEntities(rows []*model.Comment) []*entity.Comment {
	entities := make([]*entity.Comment, len(rows))
	for i, c := range rows {
		entities[i] = m.ToEntity(c)
	}
	return entities
}
