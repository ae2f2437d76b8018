package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	enrollrepo "github.com/edulearn/edulearn-backend/internal/data/repos/enrollment"
	userrepo "github.com/edulearn/edulearn-backend/internal/data/repos/user"
	types "github.com/edulearn/edulearn-backend/internal/domain"
	"github.com/edulearn/edulearn-backend/internal/platform/apierr"
	"github.com/edulearn/edulearn-backend/internal/platform/logger"
)

// ProfileUpdate carries the editable profile fields. Nil means unchanged.
type ProfileUpdate struct {
	Name   *string
	Avatar *string
}

// Profile is a user plus the course enrollments derived from the
// enrollment table, mirroring the embedded course list clients expect.
type Profile struct {
	*types.User
	EnrolledCourses []*types.Enrollment `json:"enrolledCourses"`
}

type UserService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, update ProfileUpdate) (*Profile, error)
	GetUserCourses(ctx context.Context, userID uuid.UUID) ([]*types.Enrollment, error)
}

type userService struct {
	db             *gorm.DB
	log            *logger.Logger
	userRepo       userrepo.UserRepo
	enrollmentRepo enrollrepo.EnrollmentRepo
}

func NewUserService(db *gorm.DB, baseLog *logger.Logger, userRepo userrepo.UserRepo, enrollmentRepo enrollrepo.EnrollmentRepo) UserService {
	return &userService{
		db:             db,
		log:            baseLog.With("service", "UserService"),
		userRepo:       userRepo,
		enrollmentRepo: enrollmentRepo,
	}
}

func (us *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	user, err := us.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if user == nil {
		return nil, apierr.NotFound("user_not_found", errors.New("user not found"))
	}
	enrollments, err := us.enrollmentRepo.ListByUser(ctx, nil, userID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return &Profile{User: user, EnrolledCourses: enrollments}, nil
}

func (us *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, update ProfileUpdate) (*Profile, error) {
	fields := map[string]interface{}{}
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, apierr.Validation("invalid_name", errors.New("name cannot be empty"))
		}
		fields["name"] = name
	}
	if update.Avatar != nil {
		fields["avatar"] = strings.TrimSpace(*update.Avatar)
	}
	if len(fields) == 0 {
		return nil, apierr.Validation("no_fields", errors.New("no updatable fields provided"))
	}

	if err := us.userRepo.UpdateProfile(ctx, nil, userID, fields); err != nil {
		return nil, apierr.Internal(err)
	}
	return us.GetProfile(ctx, userID)
}

func (us *userService) GetUserCourses(ctx context.Context, userID uuid.UUID) ([]*types.Enrollment, error) {
	enrollments, err := us.enrollmentRepo.ListByUser(ctx, nil, userID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return enrollments, nil
}
