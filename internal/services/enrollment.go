package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	catalogrepo "github.com/edulearn/edulearn-backend/internal/data/repos/catalog"
	enrollrepo "github.com/edulearn/edulearn-backend/internal/data/repos/enrollment"
	types "github.com/edulearn/edulearn-backend/internal/domain"
	"github.com/edulearn/edulearn-backend/internal/platform/apierr"
	"github.com/edulearn/edulearn-backend/internal/platform/logger"
)

// ClampProgress folds any reported progress into the valid [0, 100] range.
func ClampProgress(progress float64) float64 {
	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}

// StatusForProgress derives the completion status from a clamped progress
// value. The mapping runs both directions: progress dropping below 100
// moves a completed enrollment back to in_progress.
func StatusForProgress(progress float64) types.EnrollmentStatus {
	switch {
	case progress <= 0:
		return types.EnrollmentNotStarted
	case progress >= 100:
		return types.EnrollmentCompleted
	default:
		return types.EnrollmentInProgress
	}
}

type EnrollmentService interface {
	Enroll(ctx context.Context, userID, courseID uuid.UUID) (*types.Enrollment, error)
	Get(ctx context.Context, userID, courseID uuid.UUID) (*types.Enrollment, error)
	GetByID(ctx context.Context, actor Identity, enrollmentID uuid.UUID) (*types.Enrollment, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*types.Enrollment, error)
	UpdateProgress(ctx context.Context, userID, courseID uuid.UUID, progress float64) (*types.Enrollment, error)
	UpdateProgressByID(ctx context.Context, actor Identity, enrollmentID uuid.UUID, progress float64, resourceID *uuid.UUID) (*types.Enrollment, error)
	MarkResourceComplete(ctx context.Context, userID, courseID, resourceID uuid.UUID) (*types.Enrollment, error)
}

type enrollmentService struct {
	db             *gorm.DB
	log            *logger.Logger
	enrollmentRepo enrollrepo.EnrollmentRepo
	courseRepo     catalogrepo.CourseRepo
	resourceRepo   catalogrepo.ResourceRepo
}

func NewEnrollmentService(
	db *gorm.DB,
	baseLog *logger.Logger,
	enrollmentRepo enrollrepo.EnrollmentRepo,
	courseRepo catalogrepo.CourseRepo,
	resourceRepo catalogrepo.ResourceRepo,
) EnrollmentService {
	return &enrollmentService{
		db:             db,
		log:            baseLog.With("service", "EnrollmentService"),
		enrollmentRepo: enrollmentRepo,
		courseRepo:     courseRepo,
		resourceRepo:   resourceRepo,
	}
}

// Enroll creates the (user, course) enrollment and bumps the course's
// student counter in the same transaction.
func (es *enrollmentService) Enroll(ctx context.Context, userID, courseID uuid.UUID) (*types.Enrollment, error) {
	course, err := es.courseRepo.GetByID(ctx, nil, courseID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if course == nil {
		return nil, apierr.NotFound("course_not_found", errors.New("course not found"))
	}
	if !course.IsActive {
		return nil, apierr.Validation("course_inactive", errors.New("course is not open for enrollment"))
	}

	var enrollment *types.Enrollment
	err = es.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := es.enrollmentRepo.ExistsPair(ctx, tx, userID, courseID)
		if err != nil {
			return apierr.Internal(err)
		}
		if exists {
			return apierr.Conflict("already_enrolled", errors.New("user is already enrolled in this course"))
		}

		now := time.Now()
		enrollment = &types.Enrollment{
			ID:           uuid.New(),
			UserID:       userID,
			CourseID:     courseID,
			EnrolledAt:   now,
			Progress:     0,
			Status:       types.EnrollmentNotStarted,
			LastAccessed: now,
		}
		if _, err := es.enrollmentRepo.Create(ctx, tx, []*types.Enrollment{enrollment}); err != nil {
			return apierr.Internal(fmt.Errorf("create enrollment: %w", err))
		}
		if err := es.courseRepo.AddStudents(ctx, tx, courseID, 1); err != nil {
			return apierr.Internal(fmt.Errorf("bump student counter: %w", err))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	es.log.Info("user enrolled", "userId", userID, "courseId", courseID)
	return es.enrollmentRepo.GetByID(ctx, nil, enrollment.ID)
}

func (es *enrollmentService) Get(ctx context.Context, userID, courseID uuid.UUID) (*types.Enrollment, error) {
	enrollment, err := es.enrollmentRepo.GetByUserAndCourse(ctx, nil, userID, courseID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if enrollment == nil {
		return nil, apierr.NotFound("enrollment_not_found", errors.New("user is not enrolled in this course"))
	}
	return enrollment, nil
}

// GetByID fetches one enrollment by its own id. Only the enrolled user
// and admins may read it.
func (es *enrollmentService) GetByID(ctx context.Context, actor Identity, enrollmentID uuid.UUID) (*types.Enrollment, error) {
	enrollment, err := es.enrollmentRepo.GetByID(ctx, nil, enrollmentID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if enrollment == nil {
		return nil, apierr.NotFound("enrollment_not_found", errors.New("enrollment not found"))
	}
	if enrollment.UserID != actor.UserID && actor.Role != types.RoleAdmin {
		return nil, apierr.Forbidden("not_enrollment_owner", errors.New("enrollment belongs to another user"))
	}
	return enrollment, nil
}

func (es *enrollmentService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*types.Enrollment, error) {
	enrollments, err := es.enrollmentRepo.ListByUser(ctx, nil, userID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return enrollments, nil
}

// UpdateProgress sets the reported progress, clamped to [0, 100], and
// re-derives the status. Regressions are accepted as-is.
func (es *enrollmentService) UpdateProgress(ctx context.Context, userID, courseID uuid.UUID, progress float64) (*types.Enrollment, error) {
	enrollment, err := es.Get(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	return es.applyProgress(ctx, enrollment, progress)
}

// UpdateProgressByID is the enrollment-id addressed variant of
// UpdateProgress. Only the enrolled user may write. A resource id, when
// present, must belong to the enrollment's course and is recorded as
// completed in the same transaction as the progress write.
func (es *enrollmentService) UpdateProgressByID(ctx context.Context, actor Identity, enrollmentID uuid.UUID, progress float64, resourceID *uuid.UUID) (*types.Enrollment, error) {
	enrollment, err := es.GetByID(ctx, actor, enrollmentID)
	if err != nil {
		return nil, err
	}
	if enrollment.UserID != actor.UserID {
		return nil, apierr.Forbidden("not_enrollment_owner", errors.New("enrollment belongs to another user"))
	}
	if resourceID != nil {
		if err := es.courseResource(ctx, enrollment.CourseID, *resourceID); err != nil {
			return nil, err
		}
	}

	enrollment.Progress = ClampProgress(progress)
	enrollment.Status = StatusForProgress(enrollment.Progress)
	enrollment.LastAccessed = time.Now()

	err = es.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if resourceID != nil {
			if _, err := es.enrollmentRepo.AddCompletedResource(ctx, tx, enrollment.ID, *resourceID); err != nil {
				return apierr.Internal(err)
			}
		}
		if err := es.enrollmentRepo.Save(ctx, tx, enrollment); err != nil {
			return apierr.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return es.enrollmentRepo.GetByID(ctx, nil, enrollment.ID)
}

// courseResource checks that the resource exists and belongs to the course.
func (es *enrollmentService) courseResource(ctx context.Context, courseID, resourceID uuid.UUID) error {
	resource, err := es.resourceRepo.GetByID(ctx, nil, resourceID)
	if err != nil {
		return apierr.Internal(err)
	}
	if resource == nil || resource.CourseID != courseID {
		return apierr.NotFound("resource_not_found", errors.New("resource does not belong to this course"))
	}
	return nil
}

func (es *enrollmentService) applyProgress(ctx context.Context, enrollment *types.Enrollment, progress float64) (*types.Enrollment, error) {
	enrollment.Progress = ClampProgress(progress)
	enrollment.Status = StatusForProgress(enrollment.Progress)
	enrollment.LastAccessed = time.Now()

	if err := es.enrollmentRepo.Save(ctx, nil, enrollment); err != nil {
		return nil, apierr.Internal(err)
	}
	return es.enrollmentRepo.GetByID(ctx, nil, enrollment.ID)
}

// MarkResourceComplete records one finished resource for the user's
// enrollment. The insert is deduplicated; progress is left untouched and
// stays whatever the user last reported.
func (es *enrollmentService) MarkResourceComplete(ctx context.Context, userID, courseID, resourceID uuid.UUID) (*types.Enrollment, error) {
	enrollment, err := es.Get(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}

	if err := es.courseResource(ctx, courseID, resourceID); err != nil {
		return nil, err
	}

	added, err := es.enrollmentRepo.AddCompletedResource(ctx, nil, enrollment.ID, resourceID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if added {
		enrollment.LastAccessed = time.Now()
		if err := es.enrollmentRepo.Save(ctx, nil, enrollment); err != nil {
			return nil, apierr.Internal(err)
		}
	}
	return es.enrollmentRepo.GetByID(ctx, nil, enrollment.ID)
}
