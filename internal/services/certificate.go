package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	enrollrepo "github.com/edulearn/edulearn-backend/internal/data/repos/enrollment"
	types "github.com/edulearn/edulearn-backend/internal/domain"
	"github.com/edulearn/edulearn-backend/internal/platform/apierr"
	"github.com/edulearn/edulearn-backend/internal/platform/logger"
)

type CertificateService interface {
	Issue(ctx context.Context, userID, courseID uuid.UUID) (*types.Enrollment, error)
	Get(ctx context.Context, userID, courseID uuid.UUID) (*types.Enrollment, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*types.Enrollment, error)
}

type certificateService struct {
	db             *gorm.DB
	log            *logger.Logger
	enrollmentRepo enrollrepo.EnrollmentRepo
}

func NewCertificateService(db *gorm.DB, baseLog *logger.Logger, enrollmentRepo enrollrepo.EnrollmentRepo) CertificateService {
	return &certificateService{
		db:             db,
		log:            baseLog.With("service", "CertificateService"),
		enrollmentRepo: enrollmentRepo,
	}
}

// Issue grants the completion certificate for a finished enrollment. A
// second call returns the already-issued certificate unchanged.
func (cs *certificateService) Issue(ctx context.Context, userID, courseID uuid.UUID) (*types.Enrollment, error) {
	enrollment, err := cs.enrollmentRepo.GetByUserAndCourse(ctx, nil, userID, courseID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if enrollment == nil {
		return nil, apierr.NotFound("enrollment_not_found", errors.New("user is not enrolled in this course"))
	}
	if enrollment.CertificateIssued {
		return enrollment, nil
	}
	if enrollment.Progress < 100 || enrollment.Status != types.EnrollmentCompleted {
		return nil, apierr.Validation("course_not_completed", errors.New("certificate requires a completed course"))
	}

	certID := uuid.NewString()
	now := time.Now()
	enrollment.CertificateIssued = true
	enrollment.CertificateIssuedAt = &now
	enrollment.CertificateID = certID
	enrollment.CertificateURL = fmt.Sprintf("/certificates/%s.png", certID)

	if err := cs.enrollmentRepo.Save(ctx, nil, enrollment); err != nil {
		return nil, apierr.Internal(err)
	}
	cs.log.Info("certificate issued", "userId", userID, "courseId", courseID, "certificateId", certID)
	return enrollment, nil
}

func (cs *certificateService) Get(ctx context.Context, userID, courseID uuid.UUID) (*types.Enrollment, error) {
	enrollment, err := cs.enrollmentRepo.GetByUserAndCourse(ctx, nil, userID, courseID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if enrollment == nil {
		return nil, apierr.NotFound("enrollment_not_found", errors.New("user is not enrolled in this course"))
	}
	if !enrollment.CertificateIssued {
		return nil, apierr.NotFound("certificate_not_found", errors.New("no certificate has been issued for this course"))
	}
	return enrollment, nil
}

func (cs *certificateService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*types.Enrollment, error) {
	enrollments, err := cs.enrollmentRepo.ListCertified(ctx, nil, userID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return enrollments, nil
}
