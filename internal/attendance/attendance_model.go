package attendance

import (
	"time"

	"gorm.io/gorm"
)

// Attendance is one student's record for one training day. The
// composite unique index makes writes idempotent per (student, date).
type Attendance struct {
	gorm.Model
	CoachID   uint      `gorm:"not null;index" json:"coach_id"`
	StudentID uint      `gorm:"not null;uniqueIndex:idx_student_date" json:"student_id"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:idx_student_date" json:"date"`
	Present   bool      `gorm:"not null;default:false" json:"present"`
	Late      bool      `gorm:"not null;default:false" json:"late"`
	Notes     string    `json:"notes,omitempty"`
}

type MarkAttendanceRequest struct {
	StudentID uint   `json:"student_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Present   *bool  `json:"present" binding:"required"`
	Late      bool   `json:"late"`
	Notes     string `json:"notes"`
}

type BulkAttendanceEntry struct {
	StudentID uint   `json:"student_id" binding:"required"`
	Present   *bool  `json:"present" binding:"required"`
	Late      bool   `json:"late"`
	Notes     string `json:"notes"`
}

type BulkMarkAttendanceRequest struct {
	Date    string                `json:"date" binding:"required"`
	Entries []BulkAttendanceEntry `json:"entries" binding:"required,min=1,dive"`
}
