package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/edulearn/edulearn-backend/internal/domain"
	"github.com/edulearn/edulearn-backend/internal/platform/logger"
)

type ResourceRepo interface {
	Create(ctx context.Context, tx *gorm.DB, resources []*types.Resource) ([]*types.Resource, error)
	GetByID(ctx context.Context, tx *gorm.DB, resourceID uuid.UUID) (*types.Resource, error)
	ListByCourse(ctx context.Context, tx *gorm.DB, courseID uuid.UUID, activeOnly bool) ([]*types.Resource, error)
	Save(ctx context.Context, tx *gorm.DB, resource *types.Resource) error
	Delete(ctx context.Context, tx *gorm.DB, resourceID uuid.UUID) error
}

type resourceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewResourceRepo(db *gorm.DB, baseLog *logger.Logger) ResourceRepo {
	return &resourceRepo{db: db, log: baseLog.With("repo", "ResourceRepo")}
}

func (rr *resourceRepo) resolve(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return rr.db
}

func (rr *resourceRepo) Create(ctx context.Context, tx *gorm.DB, resources []*types.Resource) ([]*types.Resource, error) {
	if len(resources) == 0 {
		return []*types.Resource{}, nil
	}
	if err := rr.resolve(tx).WithContext(ctx).Create(&resources).Error; err != nil {
		return nil, err
	}
	return resources, nil
}

func (rr *resourceRepo) GetByID(ctx context.Context, tx *gorm.DB, resourceID uuid.UUID) (*types.Resource, error) {
	var result types.Resource
	err := rr.resolve(tx).WithContext(ctx).
		Preload("Course").
		Where("id = ?", resourceID).
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (rr *resourceRepo) ListByCourse(ctx context.Context, tx *gorm.DB, courseID uuid.UUID, activeOnly bool) ([]*types.Resource, error) {
	q := rr.resolve(tx).WithContext(ctx).
		Where("course_id = ?", courseID)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var results []*types.Resource
	if err := q.Order("display_order ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *resourceRepo) Save(ctx context.Context, tx *gorm.DB, resource *types.Resource) error {
	return rr.resolve(tx).WithContext(ctx).Omit(clause.Associations).Save(resource).Error
}

func (rr *resourceRepo) Delete(ctx context.Context, tx *gorm.DB, resourceID uuid.UUID) error {
	return rr.resolve(tx).WithContext(ctx).
		Where("id = ?", resourceID).
		Delete(&types.Resource{}).Error
}
