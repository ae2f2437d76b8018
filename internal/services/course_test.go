package services

import (
	"context"
	"testing"

	catalogrepo "github.com/edulearn/edulearn-backend/internal/data/repos/catalog"
	"github.com/edulearn/edulearn-backend/internal/data/repos/testutil"
	types "github.com/edulearn/edulearn-backend/internal/domain"
)

// Instructors see only the courses they teach; admins see the whole
// catalog.
func TestListOwnedCourses(t *testing.T) {
	tx := testutil.Tx(t, testutil.DB(t))
	log := testutil.Logger(t)
	ctx := context.Background()

	courses := catalogrepo.NewCourseRepo(tx, log)
	svc := NewCourseService(tx, log, courses)

	instructorA := testutil.SeedUser(t, tx, types.RoleInstructor)
	instructorB := testutil.SeedUser(t, tx, types.RoleInstructor)
	admin := testutil.SeedUser(t, tx, types.RoleAdmin)
	courseA := testutil.SeedCourse(t, tx, instructorA)
	testutil.SeedCourse(t, tx, instructorB)

	own, err := svc.ListOwned(ctx, Identity{UserID: instructorA.ID, Role: types.RoleInstructor})
	if err != nil {
		t.Fatalf("list as instructor: %v", err)
	}
	if len(own) != 1 || own[0].ID != courseA.ID {
		t.Fatalf("instructor list = %d courses, want only their own", len(own))
	}

	all, err := svc.ListOwned(ctx, Identity{UserID: admin.ID, Role: types.RoleAdmin})
	if err != nil {
		t.Fatalf("list as admin: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("admin list = %d courses, want 2", len(all))
	}
}
