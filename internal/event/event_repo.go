package event

import (
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrInvalidTransition is returned when a lifecycle update finds the event
// in a state that does not allow the requested transition.
var ErrInvalidTransition = errors.New("event is not in a state that allows this transition")

// EventRepository defines the interface for event, participant and
// performance data operations
type EventRepository interface {
	CreateEvent(e *Event) error
	GetEventByID(id uint) (*Event, error)
	GetEventsByCoach(coachID uint, page, limit int, filters map[string]interface{}) ([]Event, int64, error)
	UpdateEvent(e *Event) error
	DeleteEvent(id uint) error

	// Lifecycle transitions are conditional updates keyed on the current
	// status so concurrent requests cannot double-apply them.
	StartEvent(eventID uint) error
	FinishEvent(eventID uint, results datatypes.JSON, ranks map[uint]int) error

	AddParticipant(p *EventParticipant) error
	RemoveParticipant(eventID, studentID uint) error
	GetParticipants(eventID uint) ([]EventParticipant, error)
	IsParticipant(eventID, studentID uint) (bool, error)

	CreatePerformance(p *Performance) error
	GetPerformancesByEvent(eventID uint) ([]Performance, error)
	CountPerformancesByEvent(eventID uint) (int64, error)
	GetPerformancesByStudent(studentID uint, page, limit int) ([]Performance, int64, error)
	GetStudentHistoryValues(studentID uint, eventType EventType) ([]float64, error)

	GetUpcomingByCoach(coachID uint, from, to time.Time, limit int) ([]Event, error)
	GetInProgressByCoach(coachID uint) ([]Event, error)
	GetRecentPersonalBests(coachID uint, limit int) ([]Performance, error)
}

type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new instance of EventRepository
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) CreateEvent(e *Event) error {
	return r.db.Create(e).Error
}

func (r *eventRepository) GetEventByID(id uint) (*Event, error) {
	var e Event
	if err := r.db.Preload("Participants.Student").First(&e, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *eventRepository) GetEventsByCoach(coachID uint, page, limit int, filters map[string]interface{}) ([]Event, int64, error) {
	var events []Event
	var total int64

	query := r.db.Model(&Event{}).Where("coach_id = ?", coachID)
	if status, ok := filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if eventType, ok := filters["type"]; ok {
		query = query.Where("type = ?", eventType)
	}

	query.Count(&total)
	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Order("scheduled_at desc").Find(&events).Error; err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

func (r *eventRepository) UpdateEvent(e *Event) error {
	return r.db.Save(e).Error
}

// DeleteEvent removes the event together with its performances and
// participant rows in one transaction.
func (r *eventRepository) DeleteEvent(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&Performance{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", id).Delete(&EventParticipant{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Event{}, id).Error
	})
}

func (r *eventRepository) StartEvent(eventID uint) error {
	now := time.Now()
	result := r.db.Model(&Event{}).
		Where("id = ? AND status = ?", eventID, StatusPlanned).
		Updates(map[string]interface{}{"status": StatusInProgress, "started_at": now})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInvalidTransition
	}
	return nil
}

// FinishEvent completes the event, stores the ranking snapshot and stamps
// each ranked best row with its rank, all in one transaction.
func (r *eventRepository) FinishEvent(eventID uint, results datatypes.JSON, ranks map[uint]int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		result := tx.Model(&Event{}).
			Where("id = ? AND status = ?", eventID, StatusInProgress).
			Updates(map[string]interface{}{"status": StatusCompleted, "completed_at": now, "results": results})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrInvalidTransition
		}

		for performanceID, rank := range ranks {
			if err := tx.Model(&Performance{}).Where("id = ?", performanceID).Update("rank", rank).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *eventRepository) AddParticipant(p *EventParticipant) error {
	return r.db.Create(p).Error
}

func (r *eventRepository) RemoveParticipant(eventID, studentID uint) error {
	result := r.db.Where("event_id = ? AND student_id = ?", eventID, studentID).Delete(&EventParticipant{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *eventRepository) GetParticipants(eventID uint) ([]EventParticipant, error) {
	var participants []EventParticipant
	if err := r.db.Preload("Student").Where("event_id = ?", eventID).Find(&participants).Error; err != nil {
		return nil, err
	}
	return participants, nil
}

func (r *eventRepository) IsParticipant(eventID, studentID uint) (bool, error) {
	var count int64
	err := r.db.Model(&EventParticipant{}).
		Where("event_id = ? AND student_id = ?", eventID, studentID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *eventRepository) CreatePerformance(p *Performance) error {
	return r.db.Create(p).Error
}

func (r *eventRepository) GetPerformancesByEvent(eventID uint) ([]Performance, error) {
	var performances []Performance
	if err := r.db.Preload("Student").Where("event_id = ?", eventID).Order("round asc, created_at asc").Find(&performances).Error; err != nil {
		return nil, err
	}
	return performances, nil
}

func (r *eventRepository) CountPerformancesByEvent(eventID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&Performance{}).Where("event_id = ?", eventID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *eventRepository) GetPerformancesByStudent(studentID uint, page, limit int) ([]Performance, int64, error) {
	var performances []Performance
	var total int64

	query := r.db.Model(&Performance{}).Where("student_id = ?", studentID)
	query.Count(&total)

	offset := (page - 1) * limit
	if err := query.Preload("Event").Offset(offset).Limit(limit).Order("created_at desc").Find(&performances).Error; err != nil {
		return nil, 0, err
	}
	return performances, total, nil
}

// GetStudentHistoryValues returns every normalized value the student has
// recorded across events of the given discipline, for personal-best checks.
func (r *eventRepository) GetStudentHistoryValues(studentID uint, eventType EventType) ([]float64, error) {
	var values []float64
	err := r.db.Model(&Performance{}).
		Joins("JOIN events ON events.id = performances.event_id").
		Where("performances.student_id = ? AND events.type = ? AND events.deleted_at IS NULL", studentID, eventType).
		Pluck("performances.value", &values).Error
	if err != nil {
		return nil, err
	}
	return values, nil
}

func (r *eventRepository) GetUpcomingByCoach(coachID uint, from, to time.Time, limit int) ([]Event, error) {
	var events []Event
	err := r.db.Where("coach_id = ? AND status = ? AND scheduled_at BETWEEN ? AND ?", coachID, StatusPlanned, from, to).
		Order("scheduled_at asc").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) GetInProgressByCoach(coachID uint) ([]Event, error) {
	var events []Event
	if err := r.db.Where("coach_id = ? AND status = ?", coachID, StatusInProgress).Order("started_at desc").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) GetRecentPersonalBests(coachID uint, limit int) ([]Performance, error) {
	var performances []Performance
	err := r.db.Preload("Student").
		Joins("JOIN events ON events.id = performances.event_id").
		Where("events.coach_id = ? AND performances.personal_best = ? AND events.deleted_at IS NULL", coachID, true).
		Order("performances.created_at desc").
		Limit(limit).
		Find(&performances).Error
	if err != nil {
		return nil, err
	}
	return performances, nil
}
