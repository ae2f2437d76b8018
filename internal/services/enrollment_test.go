package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	types "github.com/edulearn/edulearn-backend/internal/domain"
)

func TestClampProgress(t *testing.T) {
	assert.Equal(t, 0.0, ClampProgress(-10))
	assert.Equal(t, 0.0, ClampProgress(0))
	assert.Equal(t, 42.5, ClampProgress(42.5))
	assert.Equal(t, 100.0, ClampProgress(100))
	assert.Equal(t, 100.0, ClampProgress(150))
}

func TestStatusForProgress(t *testing.T) {
	cases := []struct {
		progress float64
		want     types.EnrollmentStatus
	}{
		{-5, types.EnrollmentNotStarted},
		{0, types.EnrollmentNotStarted},
		{0.1, types.EnrollmentInProgress},
		{50, types.EnrollmentInProgress},
		{99.9, types.EnrollmentInProgress},
		{100, types.EnrollmentCompleted},
		{120, types.EnrollmentCompleted},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, StatusForProgress(tc.progress), "progress %v", tc.progress)
	}
}

func TestStatusRegressionAllowed(t *testing.T) {
	// Completion is not sticky: a lower report moves the status back.
	assert.Equal(t, types.EnrollmentCompleted, StatusForProgress(100))
	assert.Equal(t, types.EnrollmentInProgress, StatusForProgress(80))
	assert.Equal(t, types.EnrollmentNotStarted, StatusForProgress(0))
}
