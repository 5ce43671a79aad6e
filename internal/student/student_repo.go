package student

import (
	"errors"

	"gorm.io/gorm"
)

// StudentRepository defines the interface for roster data operations
type StudentRepository interface {
	CreateStudent(s *Student) error
	GetStudentByID(id uint) (*Student, error)
	GetStudentsByCoach(coachID uint, page, limit int, search string) ([]Student, int64, error)
	GetStudentsByIDs(ids []uint) ([]Student, error)
	UpdateStudent(s *Student) error
	DeleteStudent(id uint) error
	CountByCoach(coachID uint) (int64, error)
}

type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository creates a new instance of StudentRepository
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) CreateStudent(s *Student) error {
	return r.db.Create(s).Error
}

func (r *studentRepository) GetStudentByID(id uint) (*Student, error) {
	var s Student
	if err := r.db.First(&s, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *studentRepository) GetStudentsByCoach(coachID uint, page, limit int, search string) ([]Student, int64, error) {
	var students []Student
	var total int64

	query := r.db.Model(&Student{}).Where("coach_id = ?", coachID)
	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	query.Count(&total)
	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Order("name asc").Find(&students).Error; err != nil {
		return nil, 0, err
	}
	return students, total, nil
}

func (r *studentRepository) GetStudentsByIDs(ids []uint) ([]Student, error) {
	var students []Student
	if len(ids) == 0 {
		return students, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

func (r *studentRepository) UpdateStudent(s *Student) error {
	return r.db.Save(s).Error
}

// DeleteStudent removes a student together with every dependent row
// (performances, event participations, attendance, parent invites) in one
// transaction. Dependents are hard-deleted; the student row itself keeps
// the usual soft delete.
func (r *studentRepository) DeleteStudent(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM performances WHERE student_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM event_participants WHERE student_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM attendances WHERE student_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM parent_invites WHERE student_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&Student{}, id).Error
	})
}

func (r *studentRepository) CountByCoach(coachID uint) (int64, error) {
	var total int64
	if err := r.db.Model(&Student{}).Where("coach_id = ?", coachID).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
