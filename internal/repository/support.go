package repository

import (
	"github.com/komunitech/komunitech/internal/domain/support"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SupportRepo interface {
	// CreateSupport returns ErrDuplicate when the (user, requirement) pair
	// already exists.
	CreateSupport(s *support.Support) error
	DeleteSupport(userID, requirementID uint) (int64, error)
	Exists(userID, requirementID uint) (bool, error)
	CountByRequirement(requirementID uint) (int64, error)
	ListByRequirement(requirementID uint, page Page) ([]support.Support, int64, error)
	ListByUser(userID uint, page Page) ([]support.Support, int64, error)
	WithTx(tx *gorm.DB) SupportRepo
}

type DBSupportRepo struct {
	db *gorm.DB
}

func NewSupportRepo(db *gorm.DB) *DBSupportRepo {
	return &DBSupportRepo{
		db: db,
	}
}

func (r *DBSupportRepo) CreateSupport(s *support.Support) error {
	return translate(r.db.Omit(clause.Associations).Create(s).Error)
}

func (r *DBSupportRepo) DeleteSupport(userID, requirementID uint) (int64, error) {
	res := r.db.Where("user_id = ? AND requirement_id = ?", userID, requirementID).Delete(&support.Support{})
	return res.RowsAffected, res.Error
}

func (r *DBSupportRepo) Exists(userID, requirementID uint) (bool, error) {
	var n int64
	err := r.db.Model(&support.Support{}).
		Where("user_id = ? AND requirement_id = ?", userID, requirementID).
		Count(&n).Error
	return n > 0, err
}

func (r *DBSupportRepo) CountByRequirement(requirementID uint) (int64, error) {
	var n int64
	err := r.db.Model(&support.Support{}).Where("requirement_id = ?", requirementID).Count(&n).Error
	return n, err
}

func (r *DBSupportRepo) ListByRequirement(requirementID uint, page Page) ([]support.Support, int64, error) {
	return r.list(r.db.Where("requirement_id = ?", requirementID), "User", page)
}

func (r *DBSupportRepo) ListByUser(userID uint, page Page) ([]support.Support, int64, error) {
	return r.list(r.db.Where("user_id = ?", userID), "Requirement", page)
}

func (r *DBSupportRepo) list(query *gorm.DB, preload string, page Page) ([]support.Support, int64, error) {
	var (
		out   []support.Support
		total int64
	)
	query = query.Model(&support.Support{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Preload(preload).Order("created_at DESC").Order("id DESC").
		Limit(page.Limit()).Offset(page.Offset()).
		Find(&out).Error
	return out, total, err
}

func (r *DBSupportRepo) WithTx(tx *gorm.DB) SupportRepo {
	if tx == nil {
		return r
	}
	return &DBSupportRepo{
		db: tx,
	}
}
