package services

import (
	"context"
	"errors"
	"sort"
	"time"

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

const (
	trendMonths      = 12
	dailyTrendMonths = 6
	topCourses       = 5
)

// CourseSummary is one course's row in an instructor or admin dashboard.
type CourseSummary struct {
	CourseID           uuid.UUID               `json:"courseId"`
	Title              string                  `json:"title"`
	StudentsEnrolled   int64                   `json:"studentsEnrolled"`
	Revenue            float64                 `json:"revenue"`
	AverageRating      float64                 `json:"averageRating"`
	TotalRatings       int64                   `json:"totalRatings"`
	CompletionRate     float64                 `json:"completionRate"`
	AverageProgress    float64                 `json:"averageProgress"`
	RatingDistribution []ratingrepo.ScoreCount `json:"ratingDistribution,omitempty"`
}

// InstructorDashboard is the rollup over all of one instructor's courses.
type InstructorDashboard struct {
	TotalCourses      int64                    `json:"totalCourses"`
	TotalStudents     int64                    `json:"totalStudents"`
	TotalRevenue      float64                  `json:"totalRevenue"`
	AverageRating     float64                  `json:"averageRating"`
	Courses           []CourseSummary          `json:"courses"`
	TopCourses        []CourseSummary          `json:"topCourses"`
	RevenueByCategory map[string]float64       `json:"revenueByCategory"`
	EnrollmentTrend   []enrollrepo.PeriodCount `json:"enrollmentTrend"`
}

// StudentProgress is one roster row of a course's analytics view.
type StudentProgress struct {
	UserID     uuid.UUID              `json:"userId"`
	Name       string                 `json:"name"`
	Email      string                 `json:"email"`
	Progress   float64                `json:"progress"`
	Status     types.EnrollmentStatus `json:"status"`
	EnrolledAt time.Time              `json:"enrolledAt"`
}

// CourseAnalytics is the detailed view of a single course.
type CourseAnalytics struct {
	CourseID         uuid.UUID                `json:"courseId"`
	Title            string                   `json:"title"`
	StudentsEnrolled int64                    `json:"studentsEnrolled"`
	Revenue          float64                  `json:"revenue"`
	AverageRating    float64                  `json:"averageRating"`
	TotalRatings     int64                    `json:"totalRatings"`
	AverageProgress  float64                  `json:"averageProgress"`
	CompletionRate   float64                  `json:"completionRate"`
	StatusBreakdown  map[string]int64         `json:"statusBreakdown"`
	RatingBreakdown  []ratingrepo.ScoreCount  `json:"ratingBreakdown"`
	DailyEnrollments []enrollrepo.PeriodCount `json:"dailyEnrollments"`
	Students         []StudentProgress        `json:"students"`
}

// PlatformStats is the admin-wide rollup.
type PlatformStats struct {
	TotalUsers       int64                      `json:"totalUsers"`
	TotalCourses     int64                      `json:"totalCourses"`
	TotalEnrollments int64                      `json:"totalEnrollments"`
	TotalRevenue     float64                    `json:"totalRevenue"`
	UserGrowth       []userrepo.MonthCount      `json:"userGrowth"`
	CategoryStats    []catalogrepo.CategoryStat `json:"categoryStats"`
	TopCourses       []CourseSummary            `json:"topCourses"`
}

type AnalyticsService interface {
	InstructorDashboard(ctx context.Context, instructorID uuid.UUID) (*InstructorDashboard, error)
	CourseAnalytics(ctx context.Context, actor Identity, courseID uuid.UUID) (*CourseAnalytics, error)
	PlatformStats(ctx context.Context) (*PlatformStats, error)
}

type analyticsService struct {
	db             *gorm.DB
	log            *logger.Logger
	userRepo       userrepo.UserRepo
	courseRepo     catalogrepo.CourseRepo
	enrollmentRepo enrollrepo.EnrollmentRepo
	ratingRepo     ratingrepo.RatingRepo
}

func NewAnalyticsService(
	db *gorm.DB,
	baseLog *logger.Logger,
	userRepo userrepo.UserRepo,
	courseRepo catalogrepo.CourseRepo,
	enrollmentRepo enrollrepo.EnrollmentRepo,
	ratingRepo ratingrepo.RatingRepo,
) AnalyticsService {
	return &analyticsService{
		db:             db,
		log:            baseLog.With("service", "AnalyticsService"),
		userRepo:       userRepo,
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
		ratingRepo:     ratingRepo,
	}
}

func (ans *analyticsService) InstructorDashboard(ctx context.Context, instructorID uuid.UUID) (*InstructorDashboard, error) {
	courses, err := ans.courseRepo.ListByInstructor(ctx, nil, instructorID)
	if err != nil {
		return nil, apierr.Internal(err)
	}

	dashboard := &InstructorDashboard{
		Courses:           []CourseSummary{},
		TopCourses:        []CourseSummary{},
		RevenueByCategory: map[string]float64{},
		EnrollmentTrend:   []enrollrepo.PeriodCount{},
	}
	if len(courses) == 0 {
		return dashboard, nil
	}

	courseIDs := make([]uuid.UUID, 0, len(courses))
	for _, c := range courses {
		courseIDs = append(courseIDs, c.ID)
	}

	completions, err := ans.enrollmentRepo.CompletionByCourses(ctx, nil, courseIDs)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	completionByID := make(map[uuid.UUID]enrollrepo.CourseCompletion, len(completions))
	for _, c := range completions {
		completionByID[c.CourseID] = c
	}

	distributions, err := ans.ratingRepo.DistributionsByCourses(ctx, nil, courseIDs)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	distByID := make(map[uuid.UUID][]ratingrepo.ScoreCount, len(courses))
	for _, d := range distributions {
		distByID[d.CourseID] = append(distByID[d.CourseID], ratingrepo.ScoreCount{Score: d.Score, Count: d.Count})
	}

	ratedSum := 0.0
	ratedCount := 0
	for _, c := range courses {
		summary := summarizeCourse(c, completionByID[c.ID])
		summary.RatingDistribution = distByID[c.ID]
		dashboard.Courses = append(dashboard.Courses, summary)
		dashboard.TotalStudents += summary.StudentsEnrolled
		dashboard.TotalRevenue += summary.Revenue
		dashboard.RevenueByCategory[string(c.Category)] += summary.Revenue
		if c.TotalRatings > 0 {
			ratedSum += c.Rating
			ratedCount++
		}
	}
	dashboard.TotalCourses = int64(len(courses))
	if ratedCount > 0 {
		dashboard.AverageRating = RoundRating(ratedSum / float64(ratedCount))
	}
	dashboard.TopCourses = topByEnrollment(dashboard.Courses)

	since := time.Now().AddDate(0, -trendMonths, 0)
	trend, err := ans.enrollmentRepo.MonthlyCounts(ctx, nil, courseIDs, since)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	dashboard.EnrollmentTrend = trend
	return dashboard, nil
}

// topByEnrollment returns the five biggest courses without disturbing the
// caller's ordering.
func topByEnrollment(summaries []CourseSummary) []CourseSummary {
	top := make([]CourseSummary, len(summaries))
	copy(top, summaries)
	sort.Slice(top, func(i, j int) bool {
		return top[i].StudentsEnrolled > top[j].StudentsEnrolled
	})
	if len(top) > topCourses {
		top = top[:topCourses]
	}
	return top
}

func (ans *analyticsService) CourseAnalytics(ctx context.Context, actor Identity, courseID uuid.UUID) (*CourseAnalytics, error) {
	course, err := ans.courseRepo.GetByID(ctx, nil, courseID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if course == nil {
		return nil, apierr.NotFound("course_not_found", errors.New("course not found"))
	}
	if actor.Role != types.RoleAdmin && course.InstructorID != actor.UserID {
		return nil, apierr.Forbidden("not_course_owner", errors.New("course belongs to another instructor"))
	}

	completions, err := ans.enrollmentRepo.CompletionByCourses(ctx, nil, []uuid.UUID{courseID})
	if err != nil {
		return nil, apierr.Internal(err)
	}
	var completion enrollrepo.CourseCompletion
	if len(completions) > 0 {
		completion = completions[0]
	}

	dist, err := ans.ratingRepo.DistributionByCourse(ctx, nil, courseID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	daily, err := ans.enrollmentRepo.DailyCounts(ctx, nil, courseID, time.Now().AddDate(0, -dailyTrendMonths, 0))
	if err != nil {
		return nil, apierr.Internal(err)
	}

	enrollments, err := ans.enrollmentRepo.ListByCourse(ctx, nil, courseID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	roster := make([]StudentProgress, 0, len(enrollments))
	for _, e := range enrollments {
		row := StudentProgress{
			UserID:     e.UserID,
			Progress:   e.Progress,
			Status:     e.Status,
			EnrolledAt: e.EnrolledAt,
		}
		if e.User != nil {
			row.Name = e.User.Name
			row.Email = e.User.Email
		}
		roster = append(roster, row)
	}

	result := &CourseAnalytics{
		CourseID:         course.ID,
		Title:            course.Title,
		StudentsEnrolled: completion.Total,
		Revenue:          course.Price * float64(course.StudentsEnrolled),
		AverageRating:    course.Rating,
		TotalRatings:     int64(course.TotalRatings),
		AverageProgress:  RoundRating(completion.AverageProgress),
		StatusBreakdown: map[string]int64{
			string(types.EnrollmentNotStarted): completion.NotStarted,
			string(types.EnrollmentInProgress): completion.InProgress,
			string(types.EnrollmentCompleted):  completion.Completed,
		},
		RatingBreakdown:  dist,
		DailyEnrollments: daily,
		Students:         roster,
	}
	if completion.Total > 0 {
		result.CompletionRate = RoundRating(float64(completion.Completed) / float64(completion.Total) * 100)
	}
	return result, nil
}

func (ans *analyticsService) PlatformStats(ctx context.Context) (*PlatformStats, error) {
	totalUsers, err := ans.userRepo.Count(ctx, nil)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	totalCourses, err := ans.courseRepo.Count(ctx, nil)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	totalEnrollments, err := ans.enrollmentRepo.Count(ctx, nil)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	revenue, err := ans.courseRepo.SumRevenue(ctx, nil)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	growth, err := ans.userRepo.MonthlyCounts(ctx, nil, time.Now().AddDate(-1, 0, 0))
	if err != nil {
		return nil, apierr.Internal(err)
	}
	categories, err := ans.courseRepo.CategoryStats(ctx, nil)
	if err != nil {
		return nil, apierr.Internal(err)
	}

	courses, err := ans.courseRepo.ListAll(ctx, nil)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	sort.Slice(courses, func(i, j int) bool {
		return courses[i].StudentsEnrolled > courses[j].StudentsEnrolled
	})
	if len(courses) > topCourses {
		courses = courses[:topCourses]
	}
	top := make([]CourseSummary, 0, len(courses))
	for _, c := range courses {
		top = append(top, summarizeCourse(c, enrollrepo.CourseCompletion{}))
	}

	return &PlatformStats{
		TotalUsers:       totalUsers,
		TotalCourses:     totalCourses,
		TotalEnrollments: totalEnrollments,
		TotalRevenue:     revenue,
		UserGrowth:       growth,
		CategoryStats:    categories,
		TopCourses:       top,
	}, nil
}

func summarizeCourse(c *types.Course, completion enrollrepo.CourseCompletion) CourseSummary {
	summary := CourseSummary{
		CourseID:         c.ID,
		Title:            c.Title,
		StudentsEnrolled: int64(c.StudentsEnrolled),
		Revenue:          c.Price * float64(c.StudentsEnrolled),
		AverageRating:    c.Rating,
		TotalRatings:     int64(c.TotalRatings),
	}
	if completion.Total > 0 {
		summary.CompletionRate = RoundRating(float64(completion.Completed) / float64(completion.Total) * 100)
		summary.AverageProgress = RoundRating(completion.AverageProgress)
	}
	return summary
}
