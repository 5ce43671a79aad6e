package attendance

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AttendanceRepository interface {
	UpsertAttendance(a *Attendance) error
	GetByCoachAndDate(coachID uint, date time.Time) ([]Attendance, error)
	GetByStudent(studentID uint, from, to time.Time) ([]Attendance, error)
	GetByCoachRange(coachID uint, from, to time.Time) ([]Attendance, error)
}

type gormAttendanceRepository struct {
	db *gorm.DB
}

func NewGormAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &gormAttendanceRepository{db: db}
}

// UpsertAttendance inserts the record or overwrites the existing one
// for the same (student, date), so re-marking a day is always safe.
func (r *gormAttendanceRepository) UpsertAttendance(a *Attendance) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "student_id"},
			{Name: "date"},
		},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"present":    a.Present,
			"late":       a.Late,
			"notes":      a.Notes,
			"updated_at": time.Now(),
		}),
	}).Create(a).Error
}

func (r *gormAttendanceRepository) GetByCoachAndDate(coachID uint, date time.Time) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.Where("coach_id = ? AND date = ?", coachID, date.Format("2006-01-02")).
		Order("student_id asc").
		Find(&rows).Error
	return rows, err
}

func (r *gormAttendanceRepository) GetByStudent(studentID uint, from, to time.Time) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.Where("student_id = ? AND date >= ? AND date < ?",
		studentID, from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("date desc").
		Find(&rows).Error
	return rows, err
}

func (r *gormAttendanceRepository) GetByCoachRange(coachID uint, from, to time.Time) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.Where("coach_id = ? AND date >= ? AND date < ?",
		coachID, from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("date asc").
		Find(&rows).Error
	return rows, err
}
