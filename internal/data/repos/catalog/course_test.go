package catalog

import (
	"context"
	"testing"

	"github.com/edulearn/edulearn-backend/internal/data/repos/testutil"
	types "github.com/edulearn/edulearn-backend/internal/domain"
)

func TestCourseRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewCourseRepo(db, testutil.Logger(t))
	ctx := context.Background()

	instructor := testutil.SeedUser(t, tx, types.RoleInstructor)

	created, err := repo.Create(ctx, tx, []*types.Course{
		{
			Title:        "Go for Backend Engineers",
			Description:  "HTTP services, databases and deployment.",
			InstructorID: instructor.ID,
			Category:     types.CategoryProgramming,
			Level:        types.LevelIntermediate,
			Price:        79.99,
			IsActive:     true,
		},
		{
			Title:        "Watercolor Basics",
			Description:  "An introduction to painting.",
			InstructorID: instructor.ID,
			Category:     types.CategoryDesign,
			Level:        types.LevelBeginner,
			Price:        19.99,
			IsActive:     true,
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("Create: expected 2 courses, got %d", len(created))
	}

	got, err := repo.GetByID(ctx, tx, created[0].ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || got.Instructor == nil || got.Instructor.ID != instructor.ID {
		t.Fatalf("GetByID: instructor not preloaded: %+v", got)
	}

	listed, total, err := repo.List(ctx, tx, CourseFilter{Search: "backend", Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("List (search): %v", err)
	}
	if total != 1 || len(listed) != 1 || listed[0].ID != created[0].ID {
		t.Fatalf("List (search): unexpected result: total=%d %+v", total, listed)
	}

	listed, total, err = repo.List(ctx, tx, CourseFilter{Category: types.CategoryDesign, Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("List (category): %v", err)
	}
	if total != 1 || listed[0].Category != types.CategoryDesign {
		t.Fatalf("List (category): unexpected result: %+v", listed)
	}

	if err := repo.AddStudents(ctx, tx, created[0].ID, 1); err != nil {
		t.Fatalf("AddStudents: %v", err)
	}
	if err := repo.AddStudents(ctx, tx, created[0].ID, -5); err != nil {
		t.Fatalf("AddStudents (negative): %v", err)
	}
	got, err = repo.GetByID(ctx, tx, created[0].ID)
	if err != nil {
		t.Fatalf("GetByID after AddStudents: %v", err)
	}
	if got.StudentsEnrolled != 0 {
		t.Fatalf("AddStudents: counter should floor at 0, got %d", got.StudentsEnrolled)
	}

	if err := repo.SetRatingAggregate(ctx, tx, created[0].ID, 4.333, 3); err != nil {
		t.Fatalf("SetRatingAggregate: %v", err)
	}
	got, err = repo.GetByID(ctx, tx, created[0].ID)
	if err != nil {
		t.Fatalf("GetByID after SetRatingAggregate: %v", err)
	}
	if got.Rating != 4.3 || got.TotalRatings != 3 {
		t.Fatalf("SetRatingAggregate: expected 4.3/3, got %v/%d", got.Rating, got.TotalRatings)
	}

	revenue, err := repo.SumRevenue(ctx, tx)
	if err != nil {
		t.Fatalf("SumRevenue: %v", err)
	}
	if revenue != 0 {
		t.Fatalf("SumRevenue: no enrollments yet, expected 0, got %v", revenue)
	}
}
