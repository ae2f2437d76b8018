package catalog

import (
	"time"

	"github.com/google/uuid"
)

type ResourceType string

const (
	ResourceVideo      ResourceType = "video"
	ResourcePDF        ResourceType = "pdf"
	ResourceArticle    ResourceType = "article"
	ResourceQuiz       ResourceType = "quiz"
	ResourceAssignment ResourceType = "assignment"
)

func (t ResourceType) Valid() bool {
	switch t {
	case ResourceVideo, ResourcePDF, ResourceArticle, ResourceQuiz, ResourceAssignment:
		return true
	}
	return false
}

// Resource is a standalone learning unit attached to a course. It lives
// alongside the course's embedded module tree; the two representations are
// independent and both are served.
type Resource struct {
	ID       uuid.UUID    `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CourseID uuid.UUID    `gorm:"type:uuid;not null;index:idx_resource_course_order;column:course_id" json:"courseId"`
	Course   *Course      `gorm:"constraint:OnDelete:CASCADE;foreignKey:CourseID;references:ID" json:"course,omitempty"`
	Title    string       `gorm:"not null;column:title" json:"title"`
	Type     ResourceType `gorm:"not null;column:type" json:"type"`
	URL      string       `gorm:"not null;column:url" json:"url"`
	Duration string       `gorm:"column:duration" json:"duration"`
	Pages    *int         `gorm:"column:pages" json:"pages,omitempty"`
	Order    int          `gorm:"not null;default:1;index:idx_resource_course_order;column:display_order" json:"order"`
	IsActive bool         `gorm:"not null;default:true;column:is_active" json:"isActive"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updatedAt"`
}

func (Resource) TableName() string { return "resource" }
