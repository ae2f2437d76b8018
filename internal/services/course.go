package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	catalogrepo "github.com/edulearn/edulearn-backend/internal/data/repos/catalog"
	types "github.com/edulearn/edulearn-backend/internal/domain"
	"github.com/edulearn/edulearn-backend/internal/platform/apierr"
	"github.com/edulearn/edulearn-backend/internal/platform/logger"
)

// CourseInput carries the writable course fields for create and update.
type CourseInput struct {
	Title        string
	Description  string
	Duration     string
	Price        *float64
	Category     types.Category
	Level        types.Level
	ThumbnailURL string
	Objectives   []byte
	Requirements []byte
	Modules      []byte
}

type CourseService interface {
	List(ctx context.Context, filter catalogrepo.CourseFilter) ([]*types.Course, int64, error)
	Get(ctx context.Context, courseID uuid.UUID) (*types.Course, error)
	Create(ctx context.Context, actor Identity, input CourseInput) (*types.Course, error)
	Update(ctx context.Context, actor Identity, courseID uuid.UUID, input CourseInput) (*types.Course, error)
	Delete(ctx context.Context, actor Identity, courseID uuid.UUID) error
	ListOwned(ctx context.Context, actor Identity) ([]*types.Course, error)
}

type courseService struct {
	db         *gorm.DB
	log        *logger.Logger
	courseRepo catalogrepo.CourseRepo
}

func NewCourseService(db *gorm.DB, baseLog *logger.Logger, courseRepo catalogrepo.CourseRepo) CourseService {
	return &courseService{
		db:         db,
		log:        baseLog.With("service", "CourseService"),
		courseRepo: courseRepo,
	}
}

func (cs *courseService) List(ctx context.Context, filter catalogrepo.CourseFilter) ([]*types.Course, int64, error) {
	if filter.Category != "" && !filter.Category.Valid() {
		return nil, 0, apierr.Validation("invalid_category", fmt.Errorf("unknown category %q", filter.Category))
	}
	if filter.Level != "" && !filter.Level.Valid() {
		return nil, 0, apierr.Validation("invalid_level", fmt.Errorf("unknown level %q", filter.Level))
	}
	courses, total, err := cs.courseRepo.List(ctx, nil, filter)
	if err != nil {
		return nil, 0, apierr.Internal(err)
	}
	return courses, total, nil
}

func (cs *courseService) Get(ctx context.Context, courseID uuid.UUID) (*types.Course, error) {
	course, err := cs.courseRepo.GetByID(ctx, nil, courseID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if course == nil {
		return nil, apierr.NotFound("course_not_found", errors.New("course not found"))
	}
	return course, nil
}

func (cs *courseService) Create(ctx context.Context, actor Identity, input CourseInput) (*types.Course, error) {
	if !actor.Role.CanManageCourses() {
		return nil, apierr.Forbidden("instructor_required", errors.New("only instructors can create courses"))
	}
	if err := validateCourseInput(input, true); err != nil {
		return nil, err
	}

	course := &types.Course{
		ID:           uuid.New(),
		Title:        strings.TrimSpace(input.Title),
		Description:  strings.TrimSpace(input.Description),
		InstructorID: actor.UserID,
		Duration:     input.Duration,
		Category:     input.Category,
		Level:        input.Level,
		ThumbnailURL: input.ThumbnailURL,
		IsActive:     true,
		Objectives:   input.Objectives,
		Requirements: input.Requirements,
		Modules:      input.Modules,
	}
	if input.Price != nil {
		course.Price = *input.Price
	}

	if _, err := cs.courseRepo.Create(ctx, nil, []*types.Course{course}); err != nil {
		return nil, apierr.Internal(fmt.Errorf("create course: %w", err))
	}
	cs.log.Info("course created", "courseId", course.ID, "instructorId", actor.UserID)
	return cs.Get(ctx, course.ID)
}

func (cs *courseService) Update(ctx context.Context, actor Identity, courseID uuid.UUID, input CourseInput) (*types.Course, error) {
	course, err := cs.ownedCourse(ctx, actor, courseID)
	if err != nil {
		return nil, err
	}
	if err := validateCourseInput(input, false); err != nil {
		return nil, err
	}

	if title := strings.TrimSpace(input.Title); title != "" {
		course.Title = title
	}
	if desc := strings.TrimSpace(input.Description); desc != "" {
		course.Description = desc
	}
	if input.Duration != "" {
		course.Duration = input.Duration
	}
	if input.Price != nil {
		course.Price = *input.Price
	}
	if input.Category != "" {
		course.Category = input.Category
	}
	if input.Level != "" {
		course.Level = input.Level
	}
	if input.ThumbnailURL != "" {
		course.ThumbnailURL = input.ThumbnailURL
	}
	if input.Objectives != nil {
		course.Objectives = input.Objectives
	}
	if input.Requirements != nil {
		course.Requirements = input.Requirements
	}
	if input.Modules != nil {
		course.Modules = input.Modules
	}

	if err := cs.courseRepo.Save(ctx, nil, course); err != nil {
		return nil, apierr.Internal(err)
	}
	return course, nil
}

func (cs *courseService) Delete(ctx context.Context, actor Identity, courseID uuid.UUID) error {
	if _, err := cs.ownedCourse(ctx, actor, courseID); err != nil {
		return err
	}
	if err := cs.courseRepo.Delete(ctx, nil, courseID); err != nil {
		return apierr.Internal(err)
	}
	cs.log.Info("course deleted", "courseId", courseID, "actorId", actor.UserID)
	return nil
}

// ListOwned returns the actor's own courses; admins get the whole catalog.
func (cs *courseService) ListOwned(ctx context.Context, actor Identity) ([]*types.Course, error) {
	if actor.Role == types.RoleAdmin {
		courses, err := cs.courseRepo.ListAll(ctx, nil)
		if err != nil {
			return nil, apierr.Internal(err)
		}
		return courses, nil
	}
	courses, err := cs.courseRepo.ListByInstructor(ctx, nil, actor.UserID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return courses, nil
}

// ownedCourse loads the course and enforces owner-or-admin access.
func (cs *courseService) ownedCourse(ctx context.Context, actor Identity, courseID uuid.UUID) (*types.Course, error) {
	course, err := cs.courseRepo.GetByID(ctx, nil, courseID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if course == nil {
		return nil, apierr.NotFound("course_not_found", errors.New("course not found"))
	}
	if actor.Role != types.RoleAdmin && course.InstructorID != actor.UserID {
		return nil, apierr.Forbidden("not_course_owner", errors.New("course belongs to another instructor"))
	}
	return course, nil
}

func validateCourseInput(input CourseInput, create bool) error {
	if create {
		if strings.TrimSpace(input.Title) == "" {
			return apierr.Validation("missing_title", errors.New("title is required"))
		}
		if strings.TrimSpace(input.Description) == "" {
			return apierr.Validation("missing_description", errors.New("description is required"))
		}
		if input.Category == "" {
			return apierr.Validation("missing_category", errors.New("category is required"))
		}
		if input.Level == "" {
			return apierr.Validation("missing_level", errors.New("level is required"))
		}
	}
	if input.Category != "" && !input.Category.Valid() {
		return apierr.Validation("invalid_category", fmt.Errorf("unknown category %q", input.Category))
	}
	if input.Level != "" && !input.Level.Valid() {
		return apierr.Validation("invalid_level", fmt.Errorf("unknown level %q", input.Level))
	}
	if input.Price != nil && *input.Price < 0 {
		return apierr.Validation("invalid_price", errors.New("price cannot be negative"))
	}
	return nil
}
