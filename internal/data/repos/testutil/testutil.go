package testutil

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	types "github.com/edulearn/edulearn-backend/internal/domain"
	"github.com/edulearn/edulearn-backend/internal/platform/logger"
)

var errMissingDSN = errors.New("missing TEST_POSTGRES_DSN")

var (
	dbOnce sync.Once
	db     *gorm.DB
	dbErr  error

	logOnce sync.Once
	logg    *logger.Logger
	logErr  error
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logOnce.Do(func() {
		logg, logErr = logger.New("test")
	})
	if logErr != nil {
		tb.Fatalf("failed to init logger: %v", logErr)
	}
	return logg
}

func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	dbOnce.Do(func() {
		dsn := os.Getenv("TEST_POSTGRES_DSN")
		if dsn == "" {
			dbErr = errMissingDSN
			return
		}

		var err error
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			DisableForeignKeyConstraintWhenMigrating: true,
			Logger:                                   gormLogger.Default.LogMode(gormLogger.Silent),
		})
		if err != nil {
			dbErr = err
			return
		}

		if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
			dbErr = err
			return
		}

		if err := autoMigrateAll(db); err != nil {
			dbErr = err
			return
		}
	})

	if errors.Is(dbErr, errMissingDSN) {
		tb.Skip("set TEST_POSTGRES_DSN to run repo integration tests")
	}
	if dbErr != nil {
		tb.Fatalf("failed to init test db: %v", dbErr)
	}
	return db
}

func Tx(tb testing.TB, db *gorm.DB) *gorm.DB {
	tb.Helper()
	tx := db.Begin()
	if tx.Error != nil {
		tb.Fatalf("begin tx: %v", tx.Error)
	}
	tb.Cleanup(func() {
		_ = tx.Rollback().Error
	})
	return tx
}

func autoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&types.User{},
		&types.Course{},
		&types.Resource{},
		&types.Enrollment{},
		&types.CompletedResource{},
		&types.Rating{},
	)
}

// SeedUser inserts a user with a unique email inside tx.
func SeedUser(tb testing.TB, tx *gorm.DB, role types.Role) *types.User {
	tb.Helper()
	u := &types.User{
		ID:       uuid.New(),
		Name:     "Test User",
		Email:    fmt.Sprintf("user-%s@example.com", uuid.NewString()[:8]),
		Password: "hashed-password",
		Role:     role,
		IsActive: true,
	}
	if err := tx.Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

// SeedCourse inserts an active course owned by instructor inside tx.
func SeedCourse(tb testing.TB, tx *gorm.DB, instructor *types.User) *types.Course {
	tb.Helper()
	c := &types.Course{
		ID:           uuid.New(),
		Title:        "Test Course",
		Description:  "A course used by integration tests.",
		InstructorID: instructor.ID,
		Category:     types.CategoryProgramming,
		Level:        types.LevelBeginner,
		Price:        49.99,
		Duration:     "4 weeks",
		IsActive:     true,
	}
	if err := tx.Create(c).Error; err != nil {
		tb.Fatalf("seed course: %v", err)
	}
	return c
}

// SeedResource inserts an active resource at the given position inside tx.
func SeedResource(tb testing.TB, tx *gorm.DB, course *types.Course, order int) *types.Resource {
	tb.Helper()
	r := &types.Resource{
		ID:       uuid.New(),
		CourseID: course.ID,
		Title:    fmt.Sprintf("Resource %d", order),
		Type:     types.ResourceVideo,
		URL:      "https://cdn.example.com/resource.mp4",
		Duration: "10m",
		Order:    order,
		IsActive: true,
	}
	if err := tx.Create(r).Error; err != nil {
		tb.Fatalf("seed resource: %v", err)
	}
	return r
}

// SeedEnrollment inserts an enrollment for the (user, course) pair inside tx.
func SeedEnrollment(tb testing.TB, tx *gorm.DB, u *types.User, c *types.Course, progress float64, status types.EnrollmentStatus) *types.Enrollment {
	tb.Helper()
	e := &types.Enrollment{
		ID:           uuid.New(),
		UserID:       u.ID,
		CourseID:     c.ID,
		EnrolledAt:   time.Now(),
		Progress:     progress,
		Status:       status,
		LastAccessed: time.Now(),
	}
	if err := tx.Create(e).Error; err != nil {
		tb.Fatalf("seed enrollment: %v", err)
	}
	return e
}

// SeedRating inserts a rating for the (user, course) pair inside tx.
func SeedRating(tb testing.TB, tx *gorm.DB, u *types.User, c *types.Course, score int, verified bool) *types.Rating {
	tb.Helper()
	r := &types.Rating{
		ID:         uuid.New(),
		UserID:     u.ID,
		CourseID:   c.ID,
		Score:      score,
		Review:     "test review",
		IsVerified: verified,
	}
	if err := tx.Create(r).Error; err != nil {
		tb.Fatalf("seed rating: %v", err)
	}
	return r
}
