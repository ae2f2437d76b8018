package rating

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/edulearn/edulearn-backend/internal/domain"
	"github.com/edulearn/edulearn-backend/internal/platform/logger"
)

// Aggregate is the raw mean and count over one course's ratings. The mean
// is unrounded; presentation rounding happens in the service layer.
type Aggregate struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

// ScoreCount is one bucket of a course's score distribution.
type ScoreCount struct {
	Score int   `json:"score"`
	Count int64 `json:"count"`
}

// CourseScoreCount is one score bucket of one course's distribution.
type CourseScoreCount struct {
	CourseID uuid.UUID `json:"courseId"`
	Score    int       `json:"score"`
	Count    int64     `json:"count"`
}

// CourseAggregate carries per-course rating rollups for analytics.
type CourseAggregate struct {
	CourseID uuid.UUID `json:"courseId"`
	Average  float64   `json:"average"`
	Count    int64     `json:"count"`
}

type RatingRepo interface {
	Create(ctx context.Context, tx *gorm.DB, ratings []*types.Rating) ([]*types.Rating, error)
	GetByUserAndCourse(ctx context.Context, tx *gorm.DB, userID, courseID uuid.UUID) (*types.Rating, error)
	ListByCourse(ctx context.Context, tx *gorm.DB, courseID uuid.UUID, page, limit int) ([]*types.Rating, int64, error)
	Save(ctx context.Context, tx *gorm.DB, rating *types.Rating) error
	Delete(ctx context.Context, tx *gorm.DB, ratingID uuid.UUID) error
	DeleteByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
	CourseIDsByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]uuid.UUID, error)
	AggregateByCourse(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) (Aggregate, error)
	DistributionByCourse(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) ([]ScoreCount, error)
	DistributionsByCourses(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) ([]CourseScoreCount, error)
	AggregatesByCourses(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) ([]CourseAggregate, error)
}

type ratingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRatingRepo(db *gorm.DB, baseLog *logger.Logger) RatingRepo {
	return &ratingRepo{db: db, log: baseLog.With("repo", "RatingRepo")}
}

func (rr *ratingRepo) resolve(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return rr.db
}

func (rr *ratingRepo) Create(ctx context.Context, tx *gorm.DB, ratings []*types.Rating) ([]*types.Rating, error) {
	if len(ratings) == 0 {
		return []*types.Rating{}, nil
	}
	if err := rr.resolve(tx).WithContext(ctx).Create(&ratings).Error; err != nil {
		return nil, err
	}
	return ratings, nil
}

func (rr *ratingRepo) GetByUserAndCourse(ctx context.Context, tx *gorm.DB, userID, courseID uuid.UUID) (*types.Rating, error) {
	var result types.Rating
	err := rr.resolve(tx).WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (rr *ratingRepo) ListByCourse(ctx context.Context, tx *gorm.DB, courseID uuid.UUID, page, limit int) ([]*types.Rating, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	query := rr.resolve(tx).WithContext(ctx).
		Model(&types.Rating{}).
		Where("course_id = ?", courseID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var results []*types.Rating
	if err := query.
		Preload("User").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

func (rr *ratingRepo) Save(ctx context.Context, tx *gorm.DB, rating *types.Rating) error {
	return rr.resolve(tx).WithContext(ctx).Omit(clause.Associations).Save(rating).Error
}

func (rr *ratingRepo) Delete(ctx context.Context, tx *gorm.DB, ratingID uuid.UUID) error {
	return rr.resolve(tx).WithContext(ctx).
		Where("id = ?", ratingID).
		Delete(&types.Rating{}).Error
}

func (rr *ratingRepo) DeleteByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	return rr.resolve(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&types.Rating{}).Error
}

func (rr *ratingRepo) CourseIDsByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := rr.resolve(tx).WithContext(ctx).
		Model(&types.Rating{}).
		Where("user_id = ?", userID).
		Pluck("course_id", &ids).Error
	return ids, err
}

func (rr *ratingRepo) AggregateByCourse(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) (Aggregate, error) {
	var result Aggregate
	err := rr.resolve(tx).WithContext(ctx).
		Model(&types.Rating{}).
		Select("COALESCE(AVG(score), 0) AS average, COUNT(*) AS count").
		Where("course_id = ?", courseID).
		Scan(&result).Error
	return result, err
}

func (rr *ratingRepo) DistributionByCourse(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) ([]ScoreCount, error) {
	var rows []ScoreCount
	err := rr.resolve(tx).WithContext(ctx).
		Model(&types.Rating{}).
		Select("score, COUNT(*) AS count").
		Where("course_id = ?", courseID).
		Group("score").
		Order("score").
		Scan(&rows).Error
	return rows, err
}

func (rr *ratingRepo) DistributionsByCourses(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) ([]CourseScoreCount, error) {
	if len(courseIDs) == 0 {
		return []CourseScoreCount{}, nil
	}
	var rows []CourseScoreCount
	err := rr.resolve(tx).WithContext(ctx).
		Model(&types.Rating{}).
		Select("course_id, score, COUNT(*) AS count").
		Where("course_id IN ?", courseIDs).
		Group("course_id, score").
		Order("course_id, score").
		Scan(&rows).Error
	return rows, err
}

func (rr *ratingRepo) AggregatesByCourses(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) ([]CourseAggregate, error) {
	if len(courseIDs) == 0 {
		return []CourseAggregate{}, nil
	}
	var rows []CourseAggregate
	err := rr.resolve(tx).WithContext(ctx).
		Model(&types.Rating{}).
		Select("course_id, COALESCE(AVG(score), 0) AS average, COUNT(*) AS count").
		Where("course_id IN ?", courseIDs).
		Group("course_id").
		Scan(&rows).Error
	return rows, err
}
