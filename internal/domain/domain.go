// Package domain aggregates the per-area model packages behind one import
// path so repos and services can refer to every entity as types.X.
package domain

import (
	"github.com/edulearn/edulearn-backend/internal/domain/catalog"
	"github.com/edulearn/edulearn-backend/internal/domain/enrollment"
	"github.com/edulearn/edulearn-backend/internal/domain/rating"
	"github.com/edulearn/edulearn-backend/internal/domain/user"
)

type User = user.User
type Role = user.Role

const (
	RoleStudent    = user.RoleStudent
	RoleInstructor = user.RoleInstructor
	RoleAdmin      = user.RoleAdmin
)

type Course = catalog.Course
type Category = catalog.Category
type Level = catalog.Level
type Resource = catalog.Resource
type ResourceType = catalog.ResourceType

const (
	CategoryProgramming = catalog.CategoryProgramming
	CategoryDataScience = catalog.CategoryDataScience
	CategoryDesign      = catalog.CategoryDesign
	CategoryBusiness    = catalog.CategoryBusiness
	CategoryLanguage    = catalog.CategoryLanguage
	CategoryOther       = catalog.CategoryOther

	LevelBeginner     = catalog.LevelBeginner
	LevelIntermediate = catalog.LevelIntermediate
	LevelAdvanced     = catalog.LevelAdvanced

	ResourceVideo      = catalog.ResourceVideo
	ResourcePDF        = catalog.ResourcePDF
	ResourceArticle    = catalog.ResourceArticle
	ResourceQuiz       = catalog.ResourceQuiz
	ResourceAssignment = catalog.ResourceAssignment
)

type Enrollment = enrollment.Enrollment
type EnrollmentStatus = enrollment.Status
type CompletedResource = enrollment.CompletedResource

const (
	EnrollmentNotStarted = enrollment.StatusNotStarted
	EnrollmentInProgress = enrollment.StatusInProgress
	EnrollmentCompleted  = enrollment.StatusCompleted
)

type Rating = rating.Rating

const MaxReviewLength = rating.MaxReviewLength
