package user

import (
	"time"

	"gorm.io/gorm"

	"github.com/PatelKrunal-11/stride/internal/authz"
)

type User struct {
	gorm.Model
	Name     string `gorm:"not null" json:"name"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `json:"-"`
	Phone    string `json:"phone"`
	Role     string `gorm:"not null;default:coach" json:"role"`
}

// RoleValue maps the stored role column onto the authz role set.
func (u *User) RoleValue() authz.Role {
	r, ok := authz.ParseRole(u.Role)
	if !ok {
		return ""
	}
	return r
}

// RefreshToken is a persisted long-lived session token. Revoked rows stay
// around for auditing instead of being deleted on logout.
type RefreshToken struct {
	gorm.Model
	UserID    uint      `gorm:"index;not null"`
	Token     string    `gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	Revoked   bool      `gorm:"default:false"`
}
