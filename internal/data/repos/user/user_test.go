package user

import (
	"context"
	"testing"

	"github.com/edulearn/edulearn-backend/internal/data/repos/testutil"
	types "github.com/edulearn/edulearn-backend/internal/domain"
)

func TestUserRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewUserRepo(db, testutil.Logger(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, tx, []*types.User{
		{
			Name:     "Repo Tester",
			Email:    "userrepo@example.com",
			Password: "hashed-pw",
			Role:     types.RoleStudent,
			IsActive: true,
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("Create: expected 1 user, got %d", len(created))
	}

	got, err := repo.GetByID(ctx, tx, created[0].ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || got.ID != created[0].ID {
		t.Fatalf("GetByID: unexpected result: %+v", got)
	}

	byEmail, err := repo.GetByEmail(ctx, tx, "userrepo@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if byEmail == nil || byEmail.ID != created[0].ID {
		t.Fatalf("GetByEmail: unexpected result: %+v", byEmail)
	}

	missing, err := repo.GetByEmail(ctx, tx, "does-not-exist@example.com")
	if err != nil {
		t.Fatalf("GetByEmail (missing): %v", err)
	}
	if missing != nil {
		t.Fatalf("GetByEmail (missing): expected nil, got %+v", missing)
	}

	exists, err := repo.EmailExists(ctx, tx, created[0].Email)
	if err != nil {
		t.Fatalf("EmailExists: %v", err)
	}
	if !exists {
		t.Fatalf("EmailExists: expected true")
	}

	if err := repo.UpdateProfile(ctx, tx, created[0].ID, map[string]interface{}{
		"name":   "Renamed Tester",
		"avatar": "https://cdn.example.com/a.png",
	}); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	got, err = repo.GetByID(ctx, tx, created[0].ID)
	if err != nil {
		t.Fatalf("GetByID after update: %v", err)
	}
	if got.Name != "Renamed Tester" || got.Avatar != "https://cdn.example.com/a.png" {
		t.Fatalf("UpdateProfile: fields not applied: %+v", got)
	}

	if err := repo.SetRole(ctx, tx, created[0].ID, types.RoleInstructor); err != nil {
		t.Fatalf("SetRole: %v", err)
	}
	if err := repo.SetActive(ctx, tx, created[0].ID, false); err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	got, err = repo.GetByID(ctx, tx, created[0].ID)
	if err != nil {
		t.Fatalf("GetByID after role change: %v", err)
	}
	if got.Role != types.RoleInstructor || got.IsActive {
		t.Fatalf("SetRole/SetActive: not applied: role=%s active=%v", got.Role, got.IsActive)
	}

	if err := repo.Delete(ctx, tx, created[0].ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	got, err = repo.GetByID(ctx, tx, created[0].ID)
	if err != nil {
		t.Fatalf("GetByID after delete: %v", err)
	}
	if got != nil {
		t.Fatalf("Delete: user still present: %+v", got)
	}
}
