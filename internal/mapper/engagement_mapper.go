package mapper

import (
	"inkfeed-be/internal/entity"
	"inkfeed-be/internal/model"
)

type EngagementMapper struct{}

func NewEngagementMapper() *EngagementMapper {
	return &EngagementMapper{}
}

func (m *EngagementMapper) ToEntity(e *model.Engagement) *entity.Engagement {
	if e == nil {
		return nil
	}

	return &entity.Engagement{
		Id:        e.Id,
		UserId:    e.UserId,
		NoteId:    e.NoteId,
		Kind:      entity.EngagementKind(e.Kind),
		CreatedAt: e.CreatedAt,
	}
}

func (m *EngagementMapper) ToModel(e *entity.Engagement) *model.Engagement {
	if e == nil {
		return nil
	}

	return &model.Engagement{
		Id:        e.Id,
		UserId:    e.UserId,
		NoteId:    e.NoteId,
		Kind:      string(e.Kind),
		CreatedAt: e.CreatedAt,
	}
}

func (m *EngagementMapper) ToEntities(rows []*model.Engagement) []*entity.Engagement {
	entities := make([]*entity.Engagement, len(rows))
	for i, e := range rows {
		entities[i] = m.ToEntity(e)
	}
	return entities
}
