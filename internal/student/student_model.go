// student/student_model.go
package student

import (
	"time"

	"gorm.io/gorm"

	"github.com/PatelKrunal-11/stride/internal/models"
)

// Student is a roster entry owned by a single coach. Ownership never
// transfers between coaches.
type Student struct {
	gorm.Model
	CoachID           uint                    `json:"coach_id" gorm:"index;not null"`
	Name              string                  `json:"name" gorm:"not null"`
	Gender            string                  `json:"gender"`
	DateOfBirth       *time.Time              `json:"date_of_birth,omitempty"`
	JoinedAt          *time.Time              `json:"joined_at,omitempty"`
	MedicalConditions string                  `json:"medical_conditions"`
	Allergies         string                  `json:"allergies"`
	Notes             string                  `json:"notes"`
	EmergencyContact  models.EmergencyContact `json:"emergency_contact" gorm:"type:jsonb"`
}

type CreateStudentRequest struct {
	Name              string                   `json:"name" binding:"required" example:"Alex Carter"`
	Gender            string                   `json:"gender" binding:"omitempty,oneof=male female other" example:"female"`
	DateOfBirth       *time.Time               `json:"date_of_birth,omitempty" example:"2012-05-14T00:00:00Z"`
	JoinedAt          *time.Time               `json:"joined_at,omitempty" example:"2025-09-01T00:00:00Z"`
	MedicalConditions string                   `json:"medical_conditions,omitempty" example:"Asthma"`
	Allergies         string                   `json:"allergies,omitempty" example:"Peanuts"`
	Notes             string                   `json:"notes,omitempty" example:"Sprints and long jump"`
	EmergencyContact  *models.EmergencyContact `json:"emergency_contact,omitempty"`
}

type UpdateStudentRequest struct {
	Name              *string                  `json:"name,omitempty" example:"Alex Carter"`
	Gender            *string                  `json:"gender,omitempty" binding:"omitempty,oneof=male female other" example:"female"`
	DateOfBirth       *time.Time               `json:"date_of_birth,omitempty"`
	JoinedAt          *time.Time               `json:"joined_at,omitempty"`
	MedicalConditions *string                  `json:"medical_conditions,omitempty"`
	Allergies         *string                  `json:"allergies,omitempty"`
	Notes             *string                  `json:"notes,omitempty"`
	EmergencyContact  *models.EmergencyContact `json:"emergency_contact,omitempty"`
}
