package event

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/PatelKrunal-11/stride/internal/student"
)

// EventType is the discipline of a training event. Running is scored on
// time (lower is better); every other discipline is scored on distance
// (higher is better).
type EventType string

const (
	TypeRunning  EventType = "running"
	TypeLongJump EventType = "long_jump"
	TypeHighJump EventType = "high_jump"
	TypeShotPut  EventType = "shot_put"
	TypeJavelin  EventType = "javelin"
	TypeDiscus   EventType = "discus"
)

// IsValid reports whether the event type is one of the known disciplines.
func (t EventType) IsValid() bool {
	switch t {
	case TypeRunning, TypeLongJump, TypeHighJump, TypeShotPut, TypeJavelin, TypeDiscus:
		return true
	}
	return false
}

// LowerIsBetter reports the scoring direction for the discipline.
func (t EventType) LowerIsBetter() bool {
	return t == TypeRunning
}

type EventStatus string

const (
	StatusPlanned    EventStatus = "planned"
	StatusInProgress EventStatus = "in_progress"
	StatusCompleted  EventStatus = "completed"
)

// Event is a scheduled training event owned by a coach. Status only ever
// moves forward: planned -> in_progress -> completed.
type Event struct {
	gorm.Model
	CoachID     uint        `json:"coach_id" gorm:"index;not null"`
	Name        string      `json:"name" gorm:"not null"`
	Type        EventType   `json:"type" gorm:"index;not null"`
	ScheduledAt time.Time   `json:"scheduled_at" gorm:"index"`
	Rounds      int         `json:"rounds" gorm:"not null;default:1"`
	Status      EventStatus `json:"status" gorm:"index;not null;default:'planned'"`
	StartedAt   *time.Time  `json:"started_at,omitempty"`   // Actual start time
	CompletedAt *time.Time  `json:"completed_at,omitempty"` // Set when the event is finished

	// Results holds the ranking snapshot captured when the event finishes.
	Results datatypes.JSON `json:"results,omitempty" gorm:"type:jsonb"`

	Participants []EventParticipant `json:"participants,omitempty" gorm:"foreignKey:EventID"`
}

// EventParticipant links a roster student to an event. A student appears
// at most once per event.
type EventParticipant struct {
	gorm.Model
	EventID   uint            `json:"event_id" gorm:"uniqueIndex:idx_event_participant;not null"`
	StudentID uint            `json:"student_id" gorm:"uniqueIndex:idx_event_participant;not null"`
	Student   student.Student `json:"student" gorm:"foreignKey:StudentID"`
}

// Performance is one recorded attempt for a participant in a round.
// Measurement keeps the raw text exactly as entered; Value is the
// normalized number used for comparisons.
type Performance struct {
	gorm.Model
	EventID      uint            `json:"event_id" gorm:"index;not null"`
	Event        *Event          `json:"event,omitempty" gorm:"foreignKey:EventID"`
	StudentID    uint            `json:"student_id" gorm:"index;not null"`
	Student      student.Student `json:"student" gorm:"foreignKey:StudentID"`
	Round        int             `json:"round" gorm:"not null;default:1"`
	Measurement  string          `json:"measurement" gorm:"not null"`
	Value        float64         `json:"value" gorm:"not null"`
	Rank         *int            `json:"rank,omitempty"`
	PersonalBest bool            `json:"personal_best" gorm:"default:false"`
}

// --- Request / response DTOs ---

type CreateEventRequest struct {
	Name           string    `json:"name" binding:"required" example:"100m Sprint Trials"`
	Type           EventType `json:"type" binding:"required,oneof=running long_jump high_jump shot_put javelin discus" example:"running"`
	ScheduledAt    time.Time `json:"scheduled_at" binding:"required" example:"2026-04-18T09:00:00Z"`
	Rounds         int       `json:"rounds,omitempty" binding:"omitempty,gt=0" example:"3"`
	ParticipantIDs []uint    `json:"participant_ids,omitempty"`
}

type UpdateEventRequest struct {
	Name        *string    `json:"name,omitempty" example:"100m Sprint Finals"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	Rounds      *int       `json:"rounds,omitempty" binding:"omitempty,gt=0"`
}

type AddParticipantsRequest struct {
	StudentIDs []uint `json:"student_ids" binding:"required,min=1"`
}

type RecordPerformanceRequest struct {
	StudentID   uint   `json:"student_id" binding:"required" example:"7"`
	Round       int    `json:"round,omitempty" binding:"omitempty,gt=0" example:"1"`
	Measurement string `json:"measurement" binding:"required" example:"12.8s"`
}

// RankedResult is one row of an event ranking. PerformanceID points at the
// best row the rank was assigned from.
type RankedResult struct {
	Rank          int     `json:"rank"`
	StudentID     uint    `json:"student_id"`
	StudentName   string  `json:"student_name,omitempty"`
	PerformanceID uint    `json:"performance_id"`
	Measurement   string  `json:"measurement"`
	Value         float64 `json:"value"`
	Round         int     `json:"round"`
	PersonalBest  bool    `json:"personal_best"`
}
