package repository

import (
	"github.com/komunitech/komunitech/internal/domain/requirement"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Support and comment totals are derived on every read.
const requirementWithCounts = "requirements.*, " +
	"(SELECT COUNT(*) FROM supports WHERE supports.requirement_id = requirements.id) AS support_count, " +
	"(SELECT COUNT(*) FROM comments WHERE comments.requirement_id = requirements.id) AS comment_count"

type RequirementQueryParams struct {
	ProjectID   *uint
	SubmitterID *uint
	CategoryID  *uint
	Status      *requirement.Status
	Priority    *requirement.Priority
	Search      string
	Sort        string
	Page        Page
}

type RequirementRepo interface {
	GetRequirementByID(id uint) (requirement.Requirement, error)
	CreateRequirement(r *requirement.Requirement) error
	UpdateRequirement(r *requirement.Requirement) error
	DeleteRequirement(id uint) error
	ListRequirements(params RequirementQueryParams) ([]requirement.Requirement, int64, error)
	IncrementViews(id uint) error
	WithTx(tx *gorm.DB) RequirementRepo
}

type DBRequirementRepo struct {
	db *gorm.DB
}

func NewRequirementRepo(db *gorm.DB) *DBRequirementRepo {
	return &DBRequirementRepo{
		db: db,
	}
}

func (r *DBRequirementRepo) GetRequirementByID(id uint) (requirement.Requirement, error) {
	var req requirement.Requirement
	err := r.db.Model(&requirement.Requirement{}).
		Select(requirementWithCounts).
		Preload("Submitter").Preload("Project").Preload("Category").
		Where("requirements.id = ?", id).
		Take(&req).Error
	return req, err
}

func (r *DBRequirementRepo) CreateRequirement(req *requirement.Requirement) error {
	return r.db.Omit(clause.Associations).Create(req).Error
}

func (r *DBRequirementRepo) UpdateRequirement(req *requirement.Requirement) error {
	return r.db.Omit(clause.Associations).Save(req).Error
}

// DeleteRequirement removes the requirement; comments and supports go with it
// through ON DELETE CASCADE.
func (r *DBRequirementRepo) DeleteRequirement(id uint) error {
	res := r.db.Delete(&requirement.Requirement{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *DBRequirementRepo) filter(params RequirementQueryParams) *gorm.DB {
	query := r.db.Model(&requirement.Requirement{})
	if params.ProjectID != nil {
		query = query.Where("requirements.project_id = ?", *params.ProjectID)
	}
	if params.SubmitterID != nil {
		query = query.Where("requirements.submitter_id = ?", *params.SubmitterID)
	}
	if params.CategoryID != nil {
		query = query.Where("requirements.category_id = ?", *params.CategoryID)
	}
	if params.Status != nil {
		query = query.Where("requirements.status = ?", *params.Status)
	}
	if params.Priority != nil {
		query = query.Where("requirements.priority = ?", *params.Priority)
	}
	if params.Search != "" {
		like := "%" + params.Search + "%"
		query = query.Where("LOWER(requirements.title) LIKE LOWER(?) OR LOWER(requirements.description) LIKE LOWER(?)", like, like)
	}
	return query
}

func (r *DBRequirementRepo) ListRequirements(params RequirementQueryParams) ([]requirement.Requirement, int64, error) {
	var (
		reqs  []requirement.Requirement
		total int64
	)
	if err := r.filter(params).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.filter(params).Select(requirementWithCounts).Preload("Submitter").Preload("Category")
	switch params.Sort {
	case requirement.SortSupport:
		query = query.Order("support_count DESC").Order("requirements.created_at DESC")
	case requirement.SortOldest:
		query = query.Order("requirements.created_at ASC")
	default:
		query = query.Order("requirements.created_at DESC")
	}
	err := query.Order("requirements.id DESC").
		Limit(params.Page.Limit()).Offset(params.Page.Offset()).
		Find(&reqs).Error
	return reqs, total, err
}

func (r *DBRequirementRepo) IncrementViews(id uint) error {
	return r.db.Model(&requirement.Requirement{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

func (r *DBRequirementRepo) WithTx(tx *gorm.DB) RequirementRepo {
	if tx == nil {
		return r
	}
	return &DBRequirementRepo{
		db: tx,
	}
}
