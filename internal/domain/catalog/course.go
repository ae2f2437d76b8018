package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/edulearn/edulearn-backend/internal/domain/user"
)

type Category string

const (
	CategoryProgramming Category = "Programming"
	CategoryDataScience Category = "Data Science"
	CategoryDesign      Category = "Design"
	CategoryBusiness    Category = "Business"
	CategoryLanguage    Category = "Language"
	CategoryOther       Category = "Other"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryProgramming, CategoryDataScience, CategoryDesign,
		CategoryBusiness, CategoryLanguage, CategoryOther:
		return true
	}
	return false
}

type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

func (l Level) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

// Course is a catalog entry. Rating and TotalRatings are a cache of the
// rating table; StudentsEnrolled is a cache of the enrollment table. Both
// are maintained transactionally alongside their source of truth.
type Course struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title        string     `gorm:"not null;column:title" json:"title"`
	Description  string     `gorm:"not null;type:text;column:description" json:"description"`
	InstructorID uuid.UUID  `gorm:"type:uuid;not null;index;column:instructor_id" json:"instructorId"`
	Instructor   *user.User `gorm:"foreignKey:InstructorID;references:ID" json:"instructor,omitempty"`
	Duration     string     `gorm:"column:duration" json:"duration"`
	Price        float64    `gorm:"not null;column:price" json:"price"`
	Category     Category   `gorm:"not null;index:idx_course_category_level;column:category" json:"category"`
	Level        Level      `gorm:"not null;index:idx_course_category_level;column:level" json:"level"`
	ThumbnailURL string     `gorm:"column:thumbnail_url" json:"thumbnailUrl"`
	IsActive     bool       `gorm:"not null;default:true;index;column:is_active" json:"isActive"`

	StudentsEnrolled int     `gorm:"not null;default:0;column:students_enrolled" json:"studentsEnrolled"`
	Rating           float64 `gorm:"not null;default:0;column:rating" json:"rating"`
	TotalRatings     int     `gorm:"not null;default:0;column:total_ratings" json:"totalRatings"`

	// Opaque content payloads: the backend stores and serves these verbatim.
	Objectives   datatypes.JSON `gorm:"type:jsonb;column:objectives" json:"objectives,omitempty"`
	Requirements datatypes.JSON `gorm:"type:jsonb;column:requirements" json:"requirements,omitempty"`
	Modules      datatypes.JSON `gorm:"type:jsonb;column:modules" json:"modules,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updatedAt"`
}

func (Course) TableName() string { return "course" }
