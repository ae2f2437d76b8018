package enrollment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/edulearn/edulearn-backend/internal/domain"
	"github.com/edulearn/edulearn-backend/internal/platform/logger"
)

// PeriodCount is one month or day bucket of an enrollment trend.
type PeriodCount struct {
	Period string `json:"period"`
	Count  int64  `json:"count"`
}

// CourseCompletion is the per-course completion rollup used by analytics.
type CourseCompletion struct {
	CourseID        uuid.UUID `json:"courseId"`
	Total           int64     `json:"totalEnrollments"`
	Completed       int64     `json:"completedEnrollments"`
	InProgress      int64     `json:"inProgressEnrollments"`
	NotStarted      int64     `json:"notStartedEnrollments"`
	AverageProgress float64   `json:"averageProgress"`
}

type EnrollmentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, enrollments []*types.Enrollment) ([]*types.Enrollment, error)
	GetByID(ctx context.Context, tx *gorm.DB, enrollmentID uuid.UUID) (*types.Enrollment, error)
	GetByUserAndCourse(ctx context.Context, tx *gorm.DB, userID, courseID uuid.UUID) (*types.Enrollment, error)
	ExistsPair(ctx context.Context, tx *gorm.DB, userID, courseID uuid.UUID) (bool, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Enrollment, error)
	ListCertified(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Enrollment, error)
	ListByCourse(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) ([]*types.Enrollment, error)
	Save(ctx context.Context, tx *gorm.DB, enrollment *types.Enrollment) error
	AddCompletedResource(ctx context.Context, tx *gorm.DB, enrollmentID, resourceID uuid.UUID) (bool, error)
	DeleteByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
	CountByCourses(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) (int64, error)
	MonthlyCounts(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID, since time.Time) ([]PeriodCount, error)
	DailyCounts(ctx context.Context, tx *gorm.DB, courseID uuid.UUID, since time.Time) ([]PeriodCount, error)
	CompletionByCourses(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) ([]CourseCompletion, error)
}

type enrollmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEnrollmentRepo(db *gorm.DB, baseLog *logger.Logger) EnrollmentRepo {
	return &enrollmentRepo{db: db, log: baseLog.With("repo", "EnrollmentRepo")}
}

func (er *enrollmentRepo) resolve(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return er.db
}

func (er *enrollmentRepo) Create(ctx context.Context, tx *gorm.DB, enrollments []*types.Enrollment) ([]*types.Enrollment, error) {
	if len(enrollments) == 0 {
		return []*types.Enrollment{}, nil
	}
	if err := er.resolve(tx).WithContext(ctx).Create(&enrollments).Error; err != nil {
		return nil, err
	}
	return enrollments, nil
}

func (er *enrollmentRepo) GetByID(ctx context.Context, tx *gorm.DB, enrollmentID uuid.UUID) (*types.Enrollment, error) {
	var result types.Enrollment
	err := er.resolve(tx).WithContext(ctx).
		Preload("User").
		Preload("Course").
		Preload("Course.Instructor").
		Preload("CompletedResources").
		Where("id = ?", enrollmentID).
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (er *enrollmentRepo) GetByUserAndCourse(ctx context.Context, tx *gorm.DB, userID, courseID uuid.UUID) (*types.Enrollment, error) {
	var result types.Enrollment
	err := er.resolve(tx).WithContext(ctx).
		Preload("User").
		Preload("Course").
		Preload("Course.Instructor").
		Preload("CompletedResources").
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

func (er *enrollmentRepo) ExistsPair(ctx context.Context, tx *gorm.DB, userID, courseID uuid.UUID) (bool, error) {
	var count int64
	if err := er.resolve(tx).WithContext(ctx).
		Model(&types.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (er *enrollmentRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Enrollment, error) {
	var results []*types.Enrollment
	if err := er.resolve(tx).WithContext(ctx).
		Preload("Course").
		Preload("Course.Instructor").
		Where("user_id = ?", userID).
		Order("enrolled_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (er *enrollmentRepo) ListCertified(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Enrollment, error) {
	var results []*types.Enrollment
	if err := er.resolve(tx).WithContext(ctx).
		Preload("Course").
		Preload("Course.Instructor").
		Where("user_id = ? AND certificate_issued = ?", userID, true).
		Order("certificate_issued_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (er *enrollmentRepo) ListByCourse(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) ([]*types.Enrollment, error) {
	var results []*types.Enrollment
	if err := er.resolve(tx).WithContext(ctx).
		Preload("User").
		Where("course_id = ?", courseID).
		Order("enrolled_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (er *enrollmentRepo) Save(ctx context.Context, tx *gorm.DB, enrollment *types.Enrollment) error {
	return er.resolve(tx).WithContext(ctx).Omit(clause.Associations).Save(enrollment).Error
}

// AddCompletedResource records a completion once per (enrollment, resource)
// pair. Returns false when the pair was already recorded.
func (er *enrollmentRepo) AddCompletedResource(ctx context.Context, tx *gorm.DB, enrollmentID, resourceID uuid.UUID) (bool, error) {
	transaction := er.resolve(tx).WithContext(ctx)

	var count int64
	if err := transaction.
		Model(&types.CompletedResource{}).
		Where("enrollment_id = ? AND resource_id = ?", enrollmentID, resourceID).
		Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	record := &types.CompletedResource{
		ID:           uuid.New(),
		EnrollmentID: enrollmentID,
		ResourceID:   resourceID,
		CompletedAt:  time.Now(),
	}
	if err := transaction.Create(record).Error; err != nil {
		return false, err
	}
	return true, nil
}

func (er *enrollmentRepo) DeleteByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	transaction := er.resolve(tx).WithContext(ctx)
	if err := transaction.
		Where("enrollment_id IN (?)", transaction.Session(&gorm.Session{NewDB: true}).
			Model(&types.Enrollment{}).
			Select("id").
			Where("user_id = ?", userID)).
		Delete(&types.CompletedResource{}).Error; err != nil {
		return err
	}
	return transaction.
		Where("user_id = ?", userID).
		Delete(&types.Enrollment{}).Error
}

func (er *enrollmentRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	var count int64
	err := er.resolve(tx).WithContext(ctx).
		Model(&types.Enrollment{}).
		Count(&count).Error
	return count, err
}

func (er *enrollmentRepo) CountByCourses(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) (int64, error) {
	if len(courseIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := er.resolve(tx).WithContext(ctx).
		Model(&types.Enrollment{}).
		Where("course_id IN ?", courseIDs).
		Count(&count).Error
	return count, err
}

func (er *enrollmentRepo) MonthlyCounts(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID, since time.Time) ([]PeriodCount, error) {
	if len(courseIDs) == 0 {
		return []PeriodCount{}, nil
	}
	var rows []PeriodCount
	err := er.resolve(tx).WithContext(ctx).
		Model(&types.Enrollment{}).
		Select("to_char(date_trunc('month', enrolled_at), 'YYYY-MM') AS period, COUNT(*) AS count").
		Where("course_id IN ? AND enrolled_at >= ?", courseIDs, since).
		Group("1").
		Order("1").
		Scan(&rows).Error
	return rows, err
}

func (er *enrollmentRepo) DailyCounts(ctx context.Context, tx *gorm.DB, courseID uuid.UUID, since time.Time) ([]PeriodCount, error) {
	var rows []PeriodCount
	err := er.resolve(tx).WithContext(ctx).
		Model(&types.Enrollment{}).
		Select("to_char(date_trunc('day', enrolled_at), 'YYYY-MM-DD') AS period, COUNT(*) AS count").
		Where("course_id = ? AND enrolled_at >= ?", courseID, since).
		Group("1").
		Order("1").
		Scan(&rows).Error
	return rows, err
}

func (er *enrollmentRepo) CompletionByCourses(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) ([]CourseCompletion, error) {
	if len(courseIDs) == 0 {
		return []CourseCompletion{}, nil
	}
	var rows []CourseCompletion
	err := er.resolve(tx).WithContext(ctx).
		Model(&types.Enrollment{}).
		Select(`course_id,
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE completion_status = 'completed') AS completed,
			COUNT(*) FILTER (WHERE completion_status = 'in_progress') AS in_progress,
			COUNT(*) FILTER (WHERE completion_status = 'not_started') AS not_started,
			COALESCE(AVG(progress), 0) AS average_progress`).
		Where("course_id IN ?", courseIDs).
		Group("course_id").
		Scan(&rows).Error
	return rows, err
}
