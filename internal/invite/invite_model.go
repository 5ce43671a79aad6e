package invite

import (
	"time"

	"gorm.io/gorm"

	"github.com/PatelKrunal-11/stride/internal/student"
)

// ParentInvite links a parent account to a student once claimed. The
// invite code is single use: the claimed flag only ever flips false to
// true and ParentUserID is never overwritten.
type ParentInvite struct {
	gorm.Model
	CoachID      uint             `gorm:"not null;index" json:"coach_id"`
	StudentID    uint             `gorm:"not null;index" json:"student_id"`
	Student      *student.Student `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	InviteCode   string           `gorm:"uniqueIndex;not null" json:"invite_code"`
	ParentName   string           `json:"parent_name"`
	ParentEmail  string           `json:"parent_email"`
	ParentPhone  string           `json:"parent_phone"`
	Claimed      bool             `gorm:"not null;default:false" json:"claimed"`
	ClaimedAt    *time.Time       `json:"claimed_at,omitempty"`
	ExpiresAt    *time.Time       `json:"expires_at,omitempty"`
	ParentUserID *uint            `gorm:"index" json:"parent_user_id,omitempty"`
}

// Expired reports whether the invite can no longer be claimed because
// its expiry passed. Invites without an expiry never expire.
func (i *ParentInvite) Expired() bool {
	return i.ExpiresAt != nil && i.ExpiresAt.Before(time.Now())
}

type CreateInviteRequest struct {
	StudentID   uint   `json:"student_id" binding:"required"`
	ParentName  string `json:"parent_name" binding:"required"`
	ParentEmail string `json:"parent_email" binding:"omitempty,email"`
	ParentPhone string `json:"parent_phone"`
	ExpiryDays  int    `json:"expiry_days" binding:"omitempty,gt=0"`
}

type ClaimInviteRequest struct {
	InviteCode string `json:"invite_code" binding:"required"`
}

// InvitePreview is what validate returns so the app can show who the
// invite is for before the parent claims it.
type InvitePreview struct {
	InviteCode  string     `json:"invite_code"`
	StudentName string     `json:"student_name"`
	CoachName   string     `json:"coach_name"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}
