package rating

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/edulearn/edulearn-backend/internal/data/repos/testutil"
	types "github.com/edulearn/edulearn-backend/internal/domain"
)

func TestRatingRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewRatingRepo(db, testutil.Logger(t))
	ctx := context.Background()

	instructor := testutil.SeedUser(t, tx, types.RoleInstructor)
	course := testutil.SeedCourse(t, tx, instructor)
	alice := testutil.SeedUser(t, tx, types.RoleStudent)
	bob := testutil.SeedUser(t, tx, types.RoleStudent)

	testutil.SeedRating(t, tx, alice, course, 5, true)
	bobRating := testutil.SeedRating(t, tx, bob, course, 4, false)

	got, err := repo.GetByUserAndCourse(ctx, tx, alice.ID, course.ID)
	if err != nil {
		t.Fatalf("GetByUserAndCourse: %v", err)
	}
	if got == nil || got.Score != 5 || !got.IsVerified {
		t.Fatalf("GetByUserAndCourse: unexpected result: %+v", got)
	}

	missing, err := repo.GetByUserAndCourse(ctx, tx, uuid.New(), course.ID)
	if err != nil {
		t.Fatalf("GetByUserAndCourse (missing): %v", err)
	}
	if missing != nil {
		t.Fatalf("GetByUserAndCourse (missing): expected nil, got %+v", missing)
	}

	agg, err := repo.AggregateByCourse(ctx, tx, course.ID)
	if err != nil {
		t.Fatalf("AggregateByCourse: %v", err)
	}
	if agg.Count != 2 || agg.Average != 4.5 {
		t.Fatalf("AggregateByCourse: expected avg 4.5 over 2, got %+v", agg)
	}

	dist, err := repo.DistributionByCourse(ctx, tx, course.ID)
	if err != nil {
		t.Fatalf("DistributionByCourse: %v", err)
	}
	if len(dist) != 2 || dist[0].Score != 4 || dist[0].Count != 1 {
		t.Fatalf("DistributionByCourse: unexpected buckets: %+v", dist)
	}

	listed, total, err := repo.ListByCourse(ctx, tx, course.ID, 1, 10)
	if err != nil {
		t.Fatalf("ListByCourse: %v", err)
	}
	if total != 2 || len(listed) != 2 {
		t.Fatalf("ListByCourse: expected 2 ratings, got total=%d len=%d", total, len(listed))
	}
	if listed[0].User == nil {
		t.Fatalf("ListByCourse: user not preloaded")
	}

	bobRating.Score = 2
	if err := repo.Save(ctx, tx, bobRating); err != nil {
		t.Fatalf("Save: %v", err)
	}
	agg, err = repo.AggregateByCourse(ctx, tx, course.ID)
	if err != nil {
		t.Fatalf("AggregateByCourse after edit: %v", err)
	}
	if agg.Average != 3.5 {
		t.Fatalf("AggregateByCourse after edit: expected avg 3.5, got %+v", agg)
	}

	if err := repo.Delete(ctx, tx, bobRating.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	agg, err = repo.AggregateByCourse(ctx, tx, course.ID)
	if err != nil {
		t.Fatalf("AggregateByCourse after delete: %v", err)
	}
	if agg.Count != 1 || agg.Average != 5 {
		t.Fatalf("AggregateByCourse after delete: got %+v", agg)
	}

	empty, err := repo.AggregateByCourse(ctx, tx, uuid.New())
	if err != nil {
		t.Fatalf("AggregateByCourse (empty): %v", err)
	}
	if empty.Count != 0 || empty.Average != 0 {
		t.Fatalf("AggregateByCourse (empty): expected zeros, got %+v", empty)
	}
}
