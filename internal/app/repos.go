package app

import (
	"gorm.io/gorm"

	catalogrepo "github.com/edulearn/edulearn-backend/internal/data/repos/catalog"
	enrollrepo "github.com/edulearn/edulearn-backend/internal/data/repos/enrollment"
	ratingrepo "github.com/edulearn/edulearn-backend/internal/data/repos/rating"
	userrepo "github.com/edulearn/edulearn-backend/internal/data/repos/user"
	"github.com/edulearn/edulearn-backend/internal/platform/logger"
)

type Repos struct {
	User       userrepo.UserRepo
	Course     catalogrepo.CourseRepo
	Resource   catalogrepo.ResourceRepo
	Enrollment enrollrepo.EnrollmentRepo
	Rating     ratingrepo.RatingRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:       userrepo.NewUserRepo(db, log),
		Course:     catalogrepo.NewCourseRepo(db, log),
		Resource:   catalogrepo.NewResourceRepo(db, log),
		Enrollment: enrollrepo.NewEnrollmentRepo(db, log),
		Rating:     ratingrepo.NewRatingRepo(db, log),
	}
}
