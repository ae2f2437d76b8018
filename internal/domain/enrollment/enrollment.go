package enrollment

import (
	"time"

	"github.com/google/uuid"

	"github.com/edulearn/edulearn-backend/internal/domain/catalog"
	"github.com/edulearn/edulearn-backend/internal/domain/user"
)

type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Enrollment binds one user to one course. Progress drives Status; the
// transition is not one-way: lowering progress after completion moves the
// status back.
type Enrollment struct {
	ID       uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_enrollment_user_course;column:user_id" json:"userId"`
	User     *user.User      `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
	CourseID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_enrollment_user_course;index;column:course_id" json:"courseId"`
	Course   *catalog.Course `gorm:"foreignKey:CourseID;references:ID" json:"course,omitempty"`

	EnrolledAt   time.Time `gorm:"not null;default:now();column:enrolled_at" json:"enrolledAt"`
	Progress     float64   `gorm:"not null;default:0;column:progress" json:"progress"`
	Status       Status    `gorm:"not null;default:'not_started';column:completion_status" json:"completionStatus"`
	LastAccessed time.Time `gorm:"not null;default:now();column:last_accessed" json:"lastAccessed"`

	CompletedResources []CompletedResource `gorm:"foreignKey:EnrollmentID;references:ID" json:"completedResources,omitempty"`

	// Certificate sub-record: transitions once from unissued to issued and
	// is immutable afterwards.
	CertificateIssued   bool       `gorm:"not null;default:false;column:certificate_issued" json:"certificateIssued"`
	CertificateIssuedAt *time.Time `gorm:"column:certificate_issued_at" json:"certificateIssuedAt,omitempty"`
	CertificateID       string     `gorm:"column:certificate_id" json:"certificateId,omitempty"`
	CertificateURL      string     `gorm:"column:certificate_url" json:"certificateUrl,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updatedAt"`
}

func (Enrollment) TableName() string { return "enrollment" }

// CompletedResource records one completed learning unit per enrollment.
// The unique index makes repeat completions no-ops.
type CompletedResource struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	EnrollmentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_completed_enrollment_resource;column:enrollment_id" json:"enrollmentId"`
	ResourceID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_completed_enrollment_resource;column:resource_id" json:"resourceId"`
	CompletedAt  time.Time `gorm:"not null;default:now();column:completed_at" json:"completedAt"`
}

func (CompletedResource) TableName() string { return "completed_resource" }
