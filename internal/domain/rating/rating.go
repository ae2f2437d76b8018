package rating

import (
	"time"

	"github.com/google/uuid"

	"github.com/edulearn/edulearn-backend/internal/domain/catalog"
	"github.com/edulearn/edulearn-backend/internal/domain/user"
)

const MaxReviewLength = 1000

// Rating is one user's score for one course. IsVerified is set once at
// submission time (true iff the rater had completed the course) and is not
// re-evaluated on later edits.
type Rating struct {
	ID       uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_rating_user_course;column:user_id" json:"userId"`
	User     *user.User      `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
	CourseID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_rating_user_course;index:idx_rating_course_score;column:course_id" json:"courseId"`
	Course   *catalog.Course `gorm:"foreignKey:CourseID;references:ID" json:"course,omitempty"`

	Score      int    `gorm:"not null;index:idx_rating_course_score;column:score" json:"rating"`
	Review     string `gorm:"type:text;column:review" json:"review,omitempty"`
	IsVerified bool   `gorm:"not null;default:false;column:is_verified" json:"isVerified"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updatedAt"`
}

func (Rating) TableName() string { return "rating" }
