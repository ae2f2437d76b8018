package user

import (
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of platform roles. Authorization resolves against
// these variants at the middleware boundary, never by ad-hoc string checks
// inside handlers.
type Role string

const (
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleInstructor, RoleAdmin:
		return true
	}
	return false
}

// CanManageCourses reports whether the role may create courses and
// resources at all; per-course ownership is checked separately.
func (r Role) CanManageCourses() bool {
	return r == RoleInstructor || r == RoleAdmin
}

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name     string    `gorm:"not null;column:name" json:"name"`
	Email    string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Password string    `gorm:"not null;column:password" json:"-"`
	Role     Role      `gorm:"not null;default:'student';index;column:role" json:"role"`
	Avatar   string    `gorm:"column:avatar" json:"avatar"`
	IsActive bool      `gorm:"not null;default:true;column:is_active" json:"isActive"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updatedAt"`
}

func (User) TableName() string { return "user" }
