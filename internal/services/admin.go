package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	catalogrepo "github.com/edulearn/edulearn-backend/internal/data/repos/catalog"
	enrollrepo "github.com/edulearn/edulearn-backend/internal/data/repos/enrollment"
	ratingrepo "github.com/edulearn/edulearn-backend/internal/data/repos/rating"
	userrepo "github.com/edulearn/edulearn-backend/internal/data/repos/user"
	types "github.com/edulearn/edulearn-backend/internal/domain"
	"github.com/edulearn/edulearn-backend/internal/platform/apierr"
	"github.com/edulearn/edulearn-backend/internal/platform/logger"
)

type AdminService interface {
	ListUsers(ctx context.Context) ([]*types.User, error)
	SetUserActive(ctx context.Context, actor Identity, userID uuid.UUID, active bool) (*types.User, error)
	SetUserRole(ctx context.Context, actor Identity, userID uuid.UUID, role types.Role) (*types.User, error)
	DeleteUser(ctx context.Context, actor Identity, userID uuid.UUID) error
	ListCourses(ctx context.Context) ([]*types.Course, error)
}

type adminService struct {
	db             *gorm.DB
	log            *logger.Logger
	userRepo       userrepo.UserRepo
	courseRepo     catalogrepo.CourseRepo
	enrollmentRepo enrollrepo.EnrollmentRepo
	ratingRepo     ratingrepo.RatingRepo
}

func NewAdminService(
	db *gorm.DB,
	baseLog *logger.Logger,
	userRepo userrepo.UserRepo,
	courseRepo catalogrepo.CourseRepo,
	enrollmentRepo enrollrepo.EnrollmentRepo,
	ratingRepo ratingrepo.RatingRepo,
) AdminService {
	return &adminService{
		db:             db,
		log:            baseLog.With("service", "AdminService"),
		userRepo:       userRepo,
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
		ratingRepo:     ratingRepo,
	}
}

func (ads *adminService) ListUsers(ctx context.Context) ([]*types.User, error) {
	users, err := ads.userRepo.List(ctx, nil)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return users, nil
}

func (ads *adminService) SetUserActive(ctx context.Context, actor Identity, userID uuid.UUID, active bool) (*types.User, error) {
	if actor.UserID == userID {
		return nil, apierr.Validation("self_target", errors.New("admins cannot deactivate their own account"))
	}
	user, err := ads.requireUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := ads.userRepo.SetActive(ctx, nil, userID, active); err != nil {
		return nil, apierr.Internal(err)
	}
	user.IsActive = active
	ads.log.Info("user active flag changed", "userId", userID, "active", active, "actorId", actor.UserID)
	return user, nil
}

func (ads *adminService) SetUserRole(ctx context.Context, actor Identity, userID uuid.UUID, role types.Role) (*types.User, error) {
	if !role.Valid() {
		return nil, apierr.Validation("invalid_role", fmt.Errorf("unknown role %q", role))
	}
	if actor.UserID == userID {
		return nil, apierr.Validation("self_target", errors.New("admins cannot change their own role"))
	}
	user, err := ads.requireUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := ads.userRepo.SetRole(ctx, nil, userID, role); err != nil {
		return nil, apierr.Internal(err)
	}
	user.Role = role
	ads.log.Info("user role changed", "userId", userID, "role", role, "actorId", actor.UserID)
	return user, nil
}

// DeleteUser removes the user together with their enrollments and ratings.
// Student counters on affected courses are decremented in the same
// transaction so the cached totals stay consistent.
func (ads *adminService) DeleteUser(ctx context.Context, actor Identity, userID uuid.UUID) error {
	if actor.UserID == userID {
		return apierr.Validation("self_target", errors.New("admins cannot delete their own account"))
	}
	if _, err := ads.requireUser(ctx, userID); err != nil {
		return err
	}

	err := ads.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		enrollments, err := ads.enrollmentRepo.ListByUser(ctx, tx, userID)
		if err != nil {
			return apierr.Internal(err)
		}
		for _, e := range enrollments {
			if err := ads.courseRepo.AddStudents(ctx, tx, e.CourseID, -1); err != nil {
				return apierr.Internal(err)
			}
		}
		if err := ads.enrollmentRepo.DeleteByUser(ctx, tx, userID); err != nil {
			return apierr.Internal(err)
		}

		ratedCourseIDs, err := ads.ratingRepo.CourseIDsByUser(ctx, tx, userID)
		if err != nil {
			return apierr.Internal(err)
		}
		if err := ads.ratingRepo.DeleteByUser(ctx, tx, userID); err != nil {
			return apierr.Internal(err)
		}
		for _, courseID := range ratedCourseIDs {
			agg, err := ads.ratingRepo.AggregateByCourse(ctx, tx, courseID)
			if err != nil {
				return apierr.Internal(err)
			}
			average := 0.0
			if agg.Count > 0 {
				average = agg.Average
			}
			if err := ads.courseRepo.SetRatingAggregate(ctx, tx, courseID, average, agg.Count); err != nil {
				return apierr.Internal(err)
			}
		}

		return ads.userRepo.Delete(ctx, tx, userID)
	})
	if err != nil {
		return err
	}
	ads.log.Info("user deleted", "userId", userID, "actorId", actor.UserID)
	return nil
}

func (ads *adminService) ListCourses(ctx context.Context) ([]*types.Course, error) {
	courses, err := ads.courseRepo.ListAll(ctx, nil)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return courses, nil
}

func (ads *adminService) requireUser(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	user, err := ads.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if user == nil {
		return nil, apierr.NotFound("user_not_found", errors.New("user not found"))
	}
	return user, nil
}
