package catalog

import (
	"context"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/edulearn/edulearn-backend/internal/domain"
	"github.com/edulearn/edulearn-backend/internal/platform/logger"
)

// CourseFilter narrows the public catalog listing. Zero values mean
// "no constraint".
type CourseFilter struct {
	Search   string
	Category types.Category
	Level    types.Level
	MinPrice *float64
	MaxPrice *float64
	Page     int
	Limit    int
}

type CategoryStat struct {
	Category      types.Category `json:"category"`
	Count         int64          `json:"count"`
	TotalStudents int64          `json:"totalStudents"`
	AverageRating float64        `json:"averageRating"`
}

type CourseRepo interface {
	Create(ctx context.Context, tx *gorm.DB, courses []*types.Course) ([]*types.Course, error)
	GetByID(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) (*types.Course, error)
	List(ctx context.Context, tx *gorm.DB, filter CourseFilter) ([]*types.Course, int64, error)
	ListByInstructor(ctx context.Context, tx *gorm.DB, instructorID uuid.UUID) ([]*types.Course, error)
	ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Course, error)
	Save(ctx context.Context, tx *gorm.DB, course *types.Course) error
	Delete(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) error
	AddStudents(ctx context.Context, tx *gorm.DB, courseID uuid.UUID, delta int) error
	SetRatingAggregate(ctx context.Context, tx *gorm.DB, courseID uuid.UUID, rating float64, total int64) error
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
	SumRevenue(ctx context.Context, tx *gorm.DB) (float64, error)
	CategoryStats(ctx context.Context, tx *gorm.DB) ([]CategoryStat, error)
}

type courseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCourseRepo(db *gorm.DB, baseLog *logger.Logger) CourseRepo {
	return &courseRepo{db: db, log: baseLog.With("repo", "CourseRepo")}
}

func (cr *courseRepo) resolve(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return cr.db
}

func (cr *courseRepo) Create(ctx context.Context, tx *gorm.DB, courses []*types.Course) ([]*types.Course, error) {
	if len(courses) == 0 {
		return []*types.Course{}, nil
	}
	if err := cr.resolve(tx).WithContext(ctx).Create(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (cr *courseRepo) GetByID(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) (*types.Course, error) {
	var result types.Course
	err := cr.resolve(tx).WithContext(ctx).
		Preload("Instructor").
		Where("id = ?", courseID).
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (cr *courseRepo) List(ctx context.Context, tx *gorm.DB, filter CourseFilter) ([]*types.Course, int64, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}

	q := cr.resolve(tx).WithContext(ctx).
		Model(&types.Course{}).
		Where("is_active = ?", true)

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Level != "" {
		q = q.Where("level = ?", filter.Level)
	}
	if filter.MinPrice != nil {
		q = q.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		q = q.Where("price <= ?", *filter.MaxPrice)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var results []*types.Course
	if err := q.
		Preload("Instructor").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

func (cr *courseRepo) ListByInstructor(ctx context.Context, tx *gorm.DB, instructorID uuid.UUID) ([]*types.Course, error) {
	var results []*types.Course
	if err := cr.resolve(tx).WithContext(ctx).
		Preload("Instructor").
		Where("instructor_id = ?", instructorID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *courseRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Course, error) {
	var results []*types.Course
	if err := cr.resolve(tx).WithContext(ctx).
		Preload("Instructor").
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *courseRepo) Save(ctx context.Context, tx *gorm.DB, course *types.Course) error {
	return cr.resolve(tx).WithContext(ctx).Omit(clause.Associations).Save(course).Error
}

func (cr *courseRepo) Delete(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) error {
	return cr.resolve(tx).WithContext(ctx).
		Where("id = ?", courseID).
		Delete(&types.Course{}).Error
}

func (cr *courseRepo) AddStudents(ctx context.Context, tx *gorm.DB, courseID uuid.UUID, delta int) error {
	return cr.resolve(tx).WithContext(ctx).
		Model(&types.Course{}).
		Where("id = ?", courseID).
		Update("students_enrolled", gorm.Expr("GREATEST(students_enrolled + ?, 0)", delta)).Error
}

func (cr *courseRepo) SetRatingAggregate(ctx context.Context, tx *gorm.DB, courseID uuid.UUID, rating float64, total int64) error {
	// One decimal place, matching what the API serves.
	rounded := math.Round(rating*10) / 10
	return cr.resolve(tx).WithContext(ctx).
		Model(&types.Course{}).
		Where("id = ?", courseID).
		Updates(map[string]interface{}{
			"rating":        rounded,
			"total_ratings": total,
		}).Error
}

func (cr *courseRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	var count int64
	err := cr.resolve(tx).WithContext(ctx).
		Model(&types.Course{}).
		Count(&count).Error
	return count, err
}

func (cr *courseRepo) SumRevenue(ctx context.Context, tx *gorm.DB) (float64, error) {
	var total float64
	err := cr.resolve(tx).WithContext(ctx).
		Model(&types.Course{}).
		Select("COALESCE(SUM(price * students_enrolled), 0)").
		Scan(&total).Error
	return total, err
}

func (cr *courseRepo) CategoryStats(ctx context.Context, tx *gorm.DB) ([]CategoryStat, error) {
	var rows []CategoryStat
	err := cr.resolve(tx).WithContext(ctx).
		Model(&types.Course{}).
		Select("category, COUNT(*) AS count, COALESCE(SUM(students_enrolled), 0) AS total_students, COALESCE(AVG(rating), 0) AS average_rating").
		Group("category").
		Scan(&rows).Error
	return rows, err
}
