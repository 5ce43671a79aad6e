package invite

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/PatelKrunal-11/stride/internal/authz"
	"github.com/PatelKrunal-11/stride/internal/student"
)

// ErrAlreadyClaimed is returned when a conditional write loses the
// race: the invite was claimed, revoked or expired in the meantime.
var ErrAlreadyClaimed = errors.New("invite is no longer available")

type InviteRepository interface {
	CreateInvite(inv *ParentInvite) error
	GetInviteByID(id uint) (*ParentInvite, error)
	GetInviteByCode(code string) (*ParentInvite, error)
	GetInvitesByCoach(coachID uint, page, limit int) ([]ParentInvite, int64, error)
	ClaimInvite(inviteID, parentUserID uint) error
	RevokeInvite(inviteID uint) error
	GetCoachName(coachID uint) (string, error)
	GetStudentsByParent(parentUserID uint) ([]student.Student, error)
	IsParentLinked(parentUserID, studentID uint) (bool, error)
}

type gormInviteRepository struct {
	db *gorm.DB
}

func NewGormInviteRepository(db *gorm.DB) InviteRepository {
	return &gormInviteRepository{db: db}
}

func (r *gormInviteRepository) CreateInvite(inv *ParentInvite) error {
	return r.db.Create(inv).Error
}

func (r *gormInviteRepository) GetInviteByID(id uint) (*ParentInvite, error) {
	var inv ParentInvite
	err := r.db.Preload("Student").First(&inv, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &inv, nil
}

func (r *gormInviteRepository) GetInviteByCode(code string) (*ParentInvite, error) {
	var inv ParentInvite
	err := r.db.Preload("Student").Where("invite_code = ?", code).First(&inv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &inv, nil
}

func (r *gormInviteRepository) GetInvitesByCoach(coachID uint, page, limit int) ([]ParentInvite, int64, error) {
	var invites []ParentInvite
	var total int64

	query := r.db.Model(&ParentInvite{}).Where("coach_id = ?", coachID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Preload("Student").
		Order("created_at desc").
		Offset(offset).Limit(limit).
		Find(&invites).Error
	return invites, total, err
}

// transitionUnclaimed applies assignments to the invite only while it
// is still unclaimed, optionally also requiring it to be unexpired.
// RowsAffected 0 means another writer got there first; the row is left
// untouched.
func transitionUnclaimed(tx *gorm.DB, inviteID uint, mustBeUnexpired bool, assignments map[string]interface{}) error {
	query := tx.Model(&ParentInvite{}).Where("id = ? AND claimed = ?", inviteID, false)
	if mustBeUnexpired {
		query = query.Where("expires_at IS NULL OR expires_at > ?", time.Now())
	}
	result := query.Updates(assignments)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAlreadyClaimed
	}
	return nil
}

// ClaimInvite flips the invite to claimed and promotes the claimer to
// the parent role in one transaction. Exactly one of two concurrent
// claims can win; the loser sees ErrAlreadyClaimed.
func (r *gormInviteRepository) ClaimInvite(inviteID, parentUserID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		if err := transitionUnclaimed(tx, inviteID, true, map[string]interface{}{
			"claimed":        true,
			"claimed_at":     now,
			"parent_user_id": parentUserID,
		}); err != nil {
			return err
		}

		// Admins keep their role.
		return tx.Table("users").
			Where("id = ? AND role NOT IN ?", parentUserID, []string{string(authz.RoleParent), string(authz.RoleAdmin)}).
			Update("role", string(authz.RoleParent)).Error
	})
}

// RevokeInvite deletes an invite that has not been claimed yet. Expired
// invites can still be revoked; claimed ones never can, so a revoke
// cannot undo a concurrent claim.
func (r *gormInviteRepository) RevokeInvite(inviteID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := transitionUnclaimed(tx, inviteID, false, map[string]interface{}{
			"updated_at": time.Now(),
		}); err != nil {
			return err
		}
		return tx.Delete(&ParentInvite{}, inviteID).Error
	})
}

func (r *gormInviteRepository) GetCoachName(coachID uint) (string, error) {
	var name string
	err := r.db.Table("users").Select("name").Where("id = ?", coachID).Scan(&name).Error
	return name, err
}

// GetStudentsByParent returns the students linked to a parent through
// claimed invites.
func (r *gormInviteRepository) GetStudentsByParent(parentUserID uint) ([]student.Student, error) {
	var students []student.Student
	err := r.db.
		Joins("JOIN parent_invites ON parent_invites.student_id = students.id").
		Where("parent_invites.parent_user_id = ? AND parent_invites.claimed = ? AND parent_invites.deleted_at IS NULL",
			parentUserID, true).
		Find(&students).Error
	return students, err
}

func (r *gormInviteRepository) IsParentLinked(parentUserID, studentID uint) (bool, error) {
	var count int64
	err := r.db.Model(&ParentInvite{}).
		Where("parent_user_id = ? AND student_id = ? AND claimed = ?", parentUserID, studentID, true).
		Count(&count).Error
	return count > 0, err
}
