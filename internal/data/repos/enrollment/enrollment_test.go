package enrollment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/edulearn/edulearn-backend/internal/data/repos/testutil"
	types "github.com/edulearn/edulearn-backend/internal/domain"
)

func TestEnrollmentRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewEnrollmentRepo(db, testutil.Logger(t))
	ctx := context.Background()

	instructor := testutil.SeedUser(t, tx, types.RoleInstructor)
	student := testutil.SeedUser(t, tx, types.RoleStudent)
	course := testutil.SeedCourse(t, tx, instructor)
	resource := testutil.SeedResource(t, tx, course, 1)

	created, err := repo.Create(ctx, tx, []*types.Enrollment{
		{
			UserID:       student.ID,
			CourseID:     course.ID,
			EnrolledAt:   time.Now(),
			Status:       types.EnrollmentNotStarted,
			LastAccessed: time.Now(),
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("Create: expected 1 enrollment, got %d", len(created))
	}

	exists, err := repo.ExistsPair(ctx, tx, student.ID, course.ID)
	if err != nil {
		t.Fatalf("ExistsPair: %v", err)
	}
	if !exists {
		t.Fatalf("ExistsPair: expected true")
	}

	got, err := repo.GetByUserAndCourse(ctx, tx, student.ID, course.ID)
	if err != nil {
		t.Fatalf("GetByUserAndCourse: %v", err)
	}
	if got == nil || got.ID != created[0].ID {
		t.Fatalf("GetByUserAndCourse: unexpected result: %+v", got)
	}
	if got.Course == nil || got.Course.ID != course.ID {
		t.Fatalf("GetByUserAndCourse: course not preloaded")
	}

	added, err := repo.AddCompletedResource(ctx, tx, created[0].ID, resource.ID)
	if err != nil {
		t.Fatalf("AddCompletedResource: %v", err)
	}
	if !added {
		t.Fatalf("AddCompletedResource: expected first insert to report true")
	}
	added, err = repo.AddCompletedResource(ctx, tx, created[0].ID, resource.ID)
	if err != nil {
		t.Fatalf("AddCompletedResource (repeat): %v", err)
	}
	if added {
		t.Fatalf("AddCompletedResource (repeat): expected dedup to report false")
	}

	got.Progress = 100
	got.Status = types.EnrollmentCompleted
	if err := repo.Save(ctx, tx, got); err != nil {
		t.Fatalf("Save: %v", err)
	}

	listed, err := repo.ListByUser(ctx, tx, student.ID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(listed) != 1 || listed[0].Progress != 100 {
		t.Fatalf("ListByUser: unexpected result: %+v", listed)
	}

	stats, err := repo.CompletionByCourses(ctx, tx, []uuid.UUID{course.ID})
	if err != nil {
		t.Fatalf("CompletionByCourses: %v", err)
	}
	if len(stats) != 1 {
		t.Fatalf("CompletionByCourses: expected 1 row, got %d", len(stats))
	}
	if stats[0].Total != 1 || stats[0].Completed != 1 {
		t.Fatalf("CompletionByCourses: unexpected rollup: %+v", stats[0])
	}

	if err := repo.DeleteByUser(ctx, tx, student.ID); err != nil {
		t.Fatalf("DeleteByUser: %v", err)
	}
	exists, err = repo.ExistsPair(ctx, tx, student.ID, course.ID)
	if err != nil {
		t.Fatalf("ExistsPair after delete: %v", err)
	}
	if exists {
		t.Fatalf("ExistsPair after delete: expected false")
	}
}
