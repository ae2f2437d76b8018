package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	enrollrepo "github.com/edulearn/edulearn-backend/internal/data/repos/enrollment"
	types "github.com/edulearn/edulearn-backend/internal/domain"
)

func TestSummarizeCourse(t *testing.T) {
	course := &types.Course{
		ID:               uuid.New(),
		Title:            "Distributed Systems",
		Price:            100,
		StudentsEnrolled: 12,
		Rating:           4.2,
		TotalRatings:     7,
	}
	completion := enrollrepo.CourseCompletion{
		CourseID:  course.ID,
		Total:     12,
		Completed: 3,
	}

	summary := summarizeCourse(course, completion)
	assert.Equal(t, course.ID, summary.CourseID)
	assert.Equal(t, int64(12), summary.StudentsEnrolled)
	assert.Equal(t, 1200.0, summary.Revenue)
	assert.Equal(t, 4.2, summary.AverageRating)
	assert.Equal(t, int64(7), summary.TotalRatings)
	assert.Equal(t, 25.0, summary.CompletionRate)
}

func TestSummarizeCourseNoEnrollments(t *testing.T) {
	course := &types.Course{ID: uuid.New(), Title: "Empty", Price: 50}
	summary := summarizeCourse(course, enrollrepo.CourseCompletion{})
	assert.Equal(t, 0.0, summary.Revenue)
	assert.Equal(t, 0.0, summary.CompletionRate)
}

func TestTopByEnrollment(t *testing.T) {
	summaries := make([]CourseSummary, 0, 7)
	for i := 0; i < 7; i++ {
		summaries = append(summaries, CourseSummary{
			Title:            "Course",
			StudentsEnrolled: int64(i * 10),
		})
	}

	top := topByEnrollment(summaries)
	assert.Len(t, top, 5)
	assert.Equal(t, int64(60), top[0].StudentsEnrolled)
	assert.Equal(t, int64(20), top[4].StudentsEnrolled)
	// input order untouched
	assert.Equal(t, int64(0), summaries[0].StudentsEnrolled)
}
