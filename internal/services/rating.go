package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	catalogrepo "github.com/edulearn/edulearn-backend/internal/data/repos/catalog"
	enrollrepo "github.com/edulearn/edulearn-backend/internal/data/repos/enrollment"
	ratingrepo "github.com/edulearn/edulearn-backend/internal/data/repos/rating"
	types "github.com/edulearn/edulearn-backend/internal/domain"
	"github.com/edulearn/edulearn-backend/internal/platform/apierr"
	"github.com/edulearn/edulearn-backend/internal/platform/logger"
)

// RoundRating rounds a raw mean to one decimal place for display and for
// the cached aggregate on the course row.
func RoundRating(mean float64) float64 {
	return math.Round(mean*10) / 10
}

// CourseRatings is one page of a course's reviews plus its aggregate.
type CourseRatings struct {
	Ratings      []*types.Rating         `json:"ratings"`
	Total        int64                   `json:"total"`
	Average      float64                 `json:"averageRating"`
	Distribution []ratingrepo.ScoreCount `json:"distribution"`
}

type RatingService interface {
	AddOrUpdate(ctx context.Context, userID, courseID uuid.UUID, score int, review string) (*types.Rating, error)
	Delete(ctx context.Context, userID, courseID uuid.UUID) error
	ListByCourse(ctx context.Context, courseID uuid.UUID, page, limit int) (*CourseRatings, error)
	GetUserRating(ctx context.Context, userID, courseID uuid.UUID) (*types.Rating, error)
}

type ratingService struct {
	db             *gorm.DB
	log            *logger.Logger
	ratingRepo     ratingrepo.RatingRepo
	enrollmentRepo enrollrepo.EnrollmentRepo
	courseRepo     catalogrepo.CourseRepo
}

func NewRatingService(
	db *gorm.DB,
	baseLog *logger.Logger,
	ratingRepo ratingrepo.RatingRepo,
	enrollmentRepo enrollrepo.EnrollmentRepo,
	courseRepo catalogrepo.CourseRepo,
) RatingService {
	return &ratingService{
		db:             db,
		log:            baseLog.With("service", "RatingService"),
		ratingRepo:     ratingRepo,
		enrollmentRepo: enrollmentRepo,
		courseRepo:     courseRepo,
	}
}

// AddOrUpdate upserts the caller's rating for a course. Only enrolled users
// may rate. IsVerified is decided once, at first submission, from whether
// the caller had completed the course at that moment.
func (rs *ratingService) AddOrUpdate(ctx context.Context, userID, courseID uuid.UUID, score int, review string) (*types.Rating, error) {
	if score < 1 || score > 5 {
		return nil, apierr.Validation("invalid_rating", fmt.Errorf("rating must be between 1 and 5, got %d", score))
	}
	review = strings.TrimSpace(review)
	if len(review) > types.MaxReviewLength {
		return nil, apierr.Validation("review_too_long", fmt.Errorf("review exceeds %d characters", types.MaxReviewLength))
	}

	course, err := rs.courseRepo.GetByID(ctx, nil, courseID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if course == nil {
		return nil, apierr.NotFound("course_not_found", errors.New("course not found"))
	}

	enrollment, err := rs.enrollmentRepo.GetByUserAndCourse(ctx, nil, userID, courseID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if enrollment == nil {
		return nil, apierr.Forbidden("not_enrolled", errors.New("only enrolled users can rate a course"))
	}

	var rating *types.Rating
	err = rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := rs.ratingRepo.GetByUserAndCourse(ctx, tx, userID, courseID)
		if err != nil {
			return apierr.Internal(err)
		}

		if existing != nil {
			existing.Score = score
			existing.Review = review
			if err := rs.ratingRepo.Save(ctx, tx, existing); err != nil {
				return apierr.Internal(err)
			}
			rating = existing
		} else {
			rating = &types.Rating{
				ID:         uuid.New(),
				UserID:     userID,
				CourseID:   courseID,
				Score:      score,
				Review:     review,
				IsVerified: enrollment.Status == types.EnrollmentCompleted,
			}
			if _, err := rs.ratingRepo.Create(ctx, tx, []*types.Rating{rating}); err != nil {
				return apierr.Internal(err)
			}
		}
		return rs.refreshCourseAggregate(ctx, tx, courseID)
	})
	if err != nil {
		return nil, err
	}
	return rating, nil
}

// Delete removes the caller's rating and recomputes the course aggregate.
// An empty rating set resets the aggregate to zeros.
func (rs *ratingService) Delete(ctx context.Context, userID, courseID uuid.UUID) error {
	rating, err := rs.ratingRepo.GetByUserAndCourse(ctx, nil, userID, courseID)
	if err != nil {
		return apierr.Internal(err)
	}
	if rating == nil {
		return apierr.NotFound("rating_not_found", errors.New("user has not rated this course"))
	}

	return rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := rs.ratingRepo.Delete(ctx, tx, rating.ID); err != nil {
			return apierr.Internal(err)
		}
		return rs.refreshCourseAggregate(ctx, tx, courseID)
	})
}

func (rs *ratingService) ListByCourse(ctx context.Context, courseID uuid.UUID, page, limit int) (*CourseRatings, error) {
	course, err := rs.courseRepo.GetByID(ctx, nil, courseID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if course == nil {
		return nil, apierr.NotFound("course_not_found", errors.New("course not found"))
	}

	ratings, total, err := rs.ratingRepo.ListByCourse(ctx, nil, courseID, page, limit)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	agg, err := rs.ratingRepo.AggregateByCourse(ctx, nil, courseID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	dist, err := rs.ratingRepo.DistributionByCourse(ctx, nil, courseID)
	if err != nil {
		return nil, apierr.Internal(err)
	}

	average := 0.0
	if agg.Count > 0 {
		average = RoundRating(agg.Average)
	}
	return &CourseRatings{
		Ratings:      ratings,
		Total:        total,
		Average:      average,
		Distribution: dist,
	}, nil
}

func (rs *ratingService) GetUserRating(ctx context.Context, userID, courseID uuid.UUID) (*types.Rating, error) {
	rating, err := rs.ratingRepo.GetByUserAndCourse(ctx, nil, userID, courseID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if rating == nil {
		return nil, apierr.NotFound("rating_not_found", errors.New("user has not rated this course"))
	}
	return rating, nil
}

// refreshCourseAggregate recomputes the cached rating columns on the course
// row from the rating table inside the caller's transaction.
func (rs *ratingService) refreshCourseAggregate(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) error {
	agg, err := rs.ratingRepo.AggregateByCourse(ctx, tx, courseID)
	if err != nil {
		return apierr.Internal(err)
	}
	average := 0.0
	if agg.Count > 0 {
		average = agg.Average
	}
	if err := rs.courseRepo.SetRatingAggregate(ctx, tx, courseID, average, agg.Count); err != nil {
		return apierr.Internal(err)
	}
	return nil
}
