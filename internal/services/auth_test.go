package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edulearn/edulearn-backend/internal/data/repos/testutil"
	types "github.com/edulearn/edulearn-backend/internal/domain"
	"github.com/edulearn/edulearn-backend/internal/platform/apierr"
)

// Register rejects bad input before it ever reaches the repository, so the
// service can run against nil dependencies here.
func TestRegisterValidation(t *testing.T) {
	svc := NewAuthService(nil, testutil.Logger(t), nil, "test-secret", time.Hour)
	ctx := context.Background()

	cases := []struct {
		name     string
		userName string
		email    string
		password string
		wantCode string
	}{
		{"empty name", "", "ana@example.com", "secret1", "missing_fields"},
		{"one character name", "X", "ana@example.com", "secret1", "invalid_name"},
		{"malformed email", "Ana Silva", "not-an-email", "secret1", "invalid_email"},
		{"email with display name", "Ana Silva", "Ana <ana@example.com>", "secret1", "invalid_email"},
		{"short password", "Ana Silva", "ana@example.com", "12345", "weak_password"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.Register(ctx, tc.userName, tc.email, tc.password, types.RoleStudent)
			require.Error(t, err)
			assert.Equal(t, tc.wantCode, apierr.Code(err))
			assert.Equal(t, 400, apierr.Status(err))
		})
	}
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	svc := NewAuthService(nil, testutil.Logger(t), nil, "test-secret", time.Hour)

	_, _, err := svc.Register(context.Background(), "Ana Silva", "ana@example.com", "secret1", types.RoleAdmin)
	require.Error(t, err)
	assert.Equal(t, "invalid_role", apierr.Code(err))
}
