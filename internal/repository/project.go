package repository

import (
	"github.com/komunitech/komunitech/internal/domain/comment"
	"github.com/komunitech/komunitech/internal/domain/project"
	"github.com/komunitech/komunitech/internal/domain/requirement"
	"github.com/komunitech/komunitech/internal/domain/support"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProjectQueryParams struct {
	Status     *project.Status
	CategoryID *uint
	OwnerID    *uint
	Search     string
	Page       Page
}

type ProjectRepo interface {
	GetProjectByID(id uint) (project.Project, error)
	CreateProject(p *project.Project) error
	UpdateProject(p *project.Project) error
	DeleteProject(id uint) error
	ListProjects(params ProjectQueryParams) ([]project.Project, int64, error)
	IncrementViews(id uint) error
	GetProjectStats(id uint) (project.Stats, error)

	AddCollaborator(c *project.Collaborator) error
	RemoveCollaborator(projectID, userID uint) (int64, error)
	ListCollaborators(projectID uint) ([]project.Collaborator, error)
	IsCollaborator(projectID, userID uint) (bool, error)
	WithTx(tx *gorm.DB) ProjectRepo
}

type DBProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *DBProjectRepo {
	return &DBProjectRepo{
		db: db,
	}
}

func (r *DBProjectRepo) GetProjectByID(id uint) (project.Project, error) {
	var p project.Project
	err := r.db.Preload("Owner").Preload("Category").First(&p, id).Error
	return p, err
}

func (r *DBProjectRepo) CreateProject(p *project.Project) error {
	return r.db.Omit(clause.Associations).Create(p).Error
}

func (r *DBProjectRepo) UpdateProject(p *project.Project) error {
	return r.db.Omit(clause.Associations).Save(p).Error
}

func (r *DBProjectRepo) DeleteProject(id uint) error {
	res := r.db.Delete(&project.Project{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *DBProjectRepo) ListProjects(params ProjectQueryParams) ([]project.Project, int64, error) {
	var (
		projects []project.Project
		total    int64
	)
	query := r.db.Model(&project.Project{})
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.CategoryID != nil {
		query = query.Where("category_id = ?", *params.CategoryID)
	}
	if params.OwnerID != nil {
		query = query.Where("owner_id = ?", *params.OwnerID)
	}
	if params.Search != "" {
		like := "%" + params.Search + "%"
		query = query.Where("LOWER(title) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Preload("Owner").Preload("Category").
		Order("created_at DESC").Order("id DESC").
		Limit(params.Page.Limit()).Offset(params.Page.Offset()).
		Find(&projects).Error
	return projects, total, err
}

func (r *DBProjectRepo) IncrementViews(id uint) error {
	return r.db.Model(&project.Project{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

func (r *DBProjectRepo) GetProjectStats(id uint) (project.Stats, error) {
	stats := project.Stats{ProjectID: id}
	reqs := r.db.Model(&requirement.Requirement{}).Where("project_id = ?", id).Session(&gorm.Session{})

	if err := reqs.Count(&stats.RequirementCount).Error; err != nil {
		return stats, err
	}
	if err := reqs.Where("status = ?", requirement.StatusDone).Count(&stats.DoneCount).Error; err != nil {
		return stats, err
	}

	ids := r.db.Model(&requirement.Requirement{}).Select("id").Where("project_id = ?", id)
	if err := r.db.Model(&support.Support{}).Where("requirement_id IN (?)", ids).Count(&stats.SupportCount).Error; err != nil {
		return stats, err
	}
	if err := r.db.Model(&comment.Comment{}).Where("requirement_id IN (?)", ids).Count(&stats.CommentCount).Error; err != nil {
		return stats, err
	}

	if stats.RequirementCount > 0 {
		stats.CompletionPercent = float64(stats.DoneCount) * 100 / float64(stats.RequirementCount)
	}
	return stats, nil
}

func (r *DBProjectRepo) AddCollaborator(c *project.Collaborator) error {
	return translate(r.db.Omit(clause.Associations).Create(c).Error)
}

func (r *DBProjectRepo) RemoveCollaborator(projectID, userID uint) (int64, error) {
	res := r.db.Where("project_id = ? AND user_id = ?", projectID, userID).Delete(&project.Collaborator{})
	return res.RowsAffected, res.Error
}

func (r *DBProjectRepo) ListCollaborators(projectID uint) ([]project.Collaborator, error) {
	var cs []project.Collaborator
	err := r.db.Preload("User").Where("project_id = ?", projectID).Order("added_at ASC").Find(&cs).Error
	return cs, err
}

func (r *DBProjectRepo) IsCollaborator(projectID, userID uint) (bool, error) {
	var n int64
	err := r.db.Model(&project.Collaborator{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&n).Error
	return n > 0, err
}

func (r *DBProjectRepo) WithTx(tx *gorm.DB) ProjectRepo {
	if tx == nil {
		return r
	}
	return &DBProjectRepo{
		db: tx,
	}
}
