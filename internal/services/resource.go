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

// ResourceInput carries the writable resource fields.
type ResourceInput struct {
	Title    string
	Type     types.ResourceType
	URL      string
	Duration string
	Pages    *int
	Order    *int
	IsActive *bool
}

type ResourceService interface {
	ListByCourse(ctx context.Context, actor *Identity, courseID uuid.UUID) ([]*types.Resource, error)
	Create(ctx context.Context, actor Identity, courseID uuid.UUID, input ResourceInput) (*types.Resource, error)
	Update(ctx context.Context, actor Identity, resourceID uuid.UUID, input ResourceInput) (*types.Resource, error)
	Delete(ctx context.Context, actor Identity, resourceID uuid.UUID) error
}

type resourceService struct {
	db           *gorm.DB
	log          *logger.Logger
	courseRepo   catalogrepo.CourseRepo
	resourceRepo catalogrepo.ResourceRepo
}

func NewResourceService(db *gorm.DB, baseLog *logger.Logger, courseRepo catalogrepo.CourseRepo, resourceRepo catalogrepo.ResourceRepo) ResourceService {
	return &resourceService{
		db:           db,
		log:          baseLog.With("service", "ResourceService"),
		courseRepo:   courseRepo,
		resourceRepo: resourceRepo,
	}
}

// ListByCourse returns a course's resources ordered by position. Owners and
// admins also see inactive resources; everyone else sees active ones only.
func (rs *resourceService) ListByCourse(ctx context.Context, actor *Identity, courseID uuid.UUID) ([]*types.Resource, error) {
	course, err := rs.courseRepo.GetByID(ctx, nil, courseID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if course == nil {
		return nil, apierr.NotFound("course_not_found", errors.New("course not found"))
	}

	activeOnly := true
	if actor != nil && (actor.Role == types.RoleAdmin || course.InstructorID == actor.UserID) {
		activeOnly = false
	}
	resources, err := rs.resourceRepo.ListByCourse(ctx, nil, courseID, activeOnly)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return resources, nil
}

func (rs *resourceService) Create(ctx context.Context, actor Identity, courseID uuid.UUID, input ResourceInput) (*types.Resource, error) {
	course, err := rs.courseRepo.GetByID(ctx, nil, courseID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if course == nil {
		return nil, apierr.NotFound("course_not_found", errors.New("course not found"))
	}
	if actor.Role != types.RoleAdmin && course.InstructorID != actor.UserID {
		return nil, apierr.Forbidden("not_course_owner", errors.New("course belongs to another instructor"))
	}

	if strings.TrimSpace(input.Title) == "" {
		return nil, apierr.Validation("missing_title", errors.New("title is required"))
	}
	if !input.Type.Valid() {
		return nil, apierr.Validation("invalid_type", fmt.Errorf("unknown resource type %q", input.Type))
	}
	if strings.TrimSpace(input.URL) == "" {
		return nil, apierr.Validation("missing_url", errors.New("url is required"))
	}

	resource := &types.Resource{
		ID:       uuid.New(),
		CourseID: courseID,
		Title:    strings.TrimSpace(input.Title),
		Type:     input.Type,
		URL:      strings.TrimSpace(input.URL),
		Duration: input.Duration,
		Pages:    input.Pages,
		Order:    1,
		IsActive: true,
	}
	if input.Order != nil {
		resource.Order = *input.Order
	}
	if input.IsActive != nil {
		resource.IsActive = *input.IsActive
	}

	if _, err := rs.resourceRepo.Create(ctx, nil, []*types.Resource{resource}); err != nil {
		return nil, apierr.Internal(fmt.Errorf("create resource: %w", err))
	}
	return resource, nil
}

func (rs *resourceService) Update(ctx context.Context, actor Identity, resourceID uuid.UUID, input ResourceInput) (*types.Resource, error) {
	resource, err := rs.ownedResource(ctx, actor, resourceID)
	if err != nil {
		return nil, err
	}

	if title := strings.TrimSpace(input.Title); title != "" {
		resource.Title = title
	}
	if input.Type != "" {
		if !input.Type.Valid() {
			return nil, apierr.Validation("invalid_type", fmt.Errorf("unknown resource type %q", input.Type))
		}
		resource.Type = input.Type
	}
	if url := strings.TrimSpace(input.URL); url != "" {
		resource.URL = url
	}
	if input.Duration != "" {
		resource.Duration = input.Duration
	}
	if input.Pages != nil {
		resource.Pages = input.Pages
	}
	if input.Order != nil {
		resource.Order = *input.Order
	}
	if input.IsActive != nil {
		resource.IsActive = *input.IsActive
	}

	if err := rs.resourceRepo.Save(ctx, nil, resource); err != nil {
		return nil, apierr.Internal(err)
	}
	return resource, nil
}

func (rs *resourceService) Delete(ctx context.Context, actor Identity, resourceID uuid.UUID) error {
	if _, err := rs.ownedResource(ctx, actor, resourceID); err != nil {
		return err
	}
	if err := rs.resourceRepo.Delete(ctx, nil, resourceID); err != nil {
		return apierr.Internal(err)
	}
	return nil
}

func (rs *resourceService) ownedResource(ctx context.Context, actor Identity, resourceID uuid.UUID) (*types.Resource, error) {
	resource, err := rs.resourceRepo.GetByID(ctx, nil, resourceID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if resource == nil {
		return nil, apierr.NotFound("resource_not_found", errors.New("resource not found"))
	}
	if actor.Role != types.RoleAdmin && (resource.Course == nil || resource.Course.InstructorID != actor.UserID) {
		return nil, apierr.Forbidden("not_course_owner", errors.New("resource belongs to another instructor's course"))
	}
	return resource, nil
}
