package implementation

import (
	"context"
	"errors"

	"inkfeed-be/internal/entity"
	"inkfeed-be/internal/mapper"
	"inkfeed-be/internal/model"
	"inkfeed-be/internal/repository/contract"
	"inkfeed-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Postgres error code for unique_violation.
const pgUniqueViolation = "23505"

type EngagementRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.EngagementMapper
}

func NewEngagementRepository(db *gorm.DB) contract.EngagementRepository {
	return &EngagementRepositoryImpl{
		db:     db,
		mapper: mapper.NewEngagementMapper(),
	}
}

func (r *EngagementRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func (r *EngagementRepositoryImpl) Create(ctx context.Context, engagement *entity.Engagement) error {
	m := r.mapper.ToModel(engagement)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return contract.ErrDuplicate
		}
		return err
	}
	*engagement = *r.mapper.ToEntity(m)
	return nil
}

func (r *EngagementRepositoryImpl) DeleteByKey(ctx context.Context, userId, noteId uuid.UUID, kind entity.EngagementKind) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND note_id = ? AND kind = ?", userId, noteId, string(kind)).
		Delete(&model.Engagement{})
	return result.RowsAffected, result.Error
}

func (r *EngagementRepositoryImpl) DeleteAllOfNote(ctx context.Context, noteId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("note_id = ?", noteId).
		Delete(&model.Engagement{}).Error
}

func (r *EngagementRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Engagement, error) {
	var m model.Engagement
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *EngagementRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Engagement, error) {
	var models []*model.Engagement
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *EngagementRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Engagement{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *EngagementRepositoryImpl) CountGroupedByNote(ctx context.Context, noteIds []uuid.UUID, kind entity.EngagementKind) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(noteIds))
	if len(noteIds) == 0 {
		return counts, nil
	}

	var rows []struct {
		NoteId uuid.UUID
		Count  int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.Engagement{}).
		Select("note_id, COUNT(*) AS count").
		Where("note_id IN ? AND kind = ?", noteIds, string(kind)).
		Group("note_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.NoteId] = row.Count
	}
	return counts, nil
}
