package repository

import (
	"time"

	"github.com/komunitech/komunitech/internal/domain/comment"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommentQueryParams struct {
	RequirementID *uint
	AuthorID      *uint
	Page          Page
}

type CommentRepo interface {
	GetCommentByID(id uint) (comment.Comment, error)
	CreateComment(c *comment.Comment) error
	UpdateComment(c *comment.Comment) error
	DeleteComment(id uint) error
	CountReplies(id uint) (int64, error)
	// ListByRequirement returns every comment of the requirement ordered by
	// creation time, oldest first.
	ListByRequirement(requirementID uint) ([]comment.Comment, error)
	ListComments(params CommentQueryParams) ([]comment.Comment, int64, error)
	GetCommentStats(requirementID *uint, since time.Time) (comment.Stats, error)
	WithTx(tx *gorm.DB) CommentRepo
}

type DBCommentRepo struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) *DBCommentRepo {
	return &DBCommentRepo{
		db: db,
	}
}

func (r *DBCommentRepo) GetCommentByID(id uint) (comment.Comment, error) {
	var c comment.Comment
	err := r.db.First(&c, id).Error
	return c, err
}

func (r *DBCommentRepo) CreateComment(c *comment.Comment) error {
	return r.db.Omit(clause.Associations).Create(c).Error
}

func (r *DBCommentRepo) UpdateComment(c *comment.Comment) error {
	return r.db.Omit(clause.Associations).Save(c).Error
}

func (r *DBCommentRepo) DeleteComment(id uint) error {
	return r.db.Delete(&comment.Comment{}, id).Error
}

func (r *DBCommentRepo) CountReplies(id uint) (int64, error) {
	var n int64
	err := r.db.Model(&comment.Comment{}).Where("parent_id = ?", id).Count(&n).Error
	return n, err
}

func (r *DBCommentRepo) ListByRequirement(requirementID uint) ([]comment.Comment, error) {
	var cs []comment.Comment
	err := r.db.Preload("Author").
		Where("requirement_id = ?", requirementID).
		Order("created_at ASC").Order("id ASC").
		Find(&cs).Error
	return cs, err
}

func (r *DBCommentRepo) ListComments(params CommentQueryParams) ([]comment.Comment, int64, error) {
	var (
		cs    []comment.Comment
		total int64
	)
	query := r.db.Model(&comment.Comment{})
	if params.RequirementID != nil {
		query = query.Where("requirement_id = ?", *params.RequirementID)
	}
	if params.AuthorID != nil {
		query = query.Where("author_id = ?", *params.AuthorID)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Preload("Author").
		Order("created_at DESC").Order("id DESC").
		Limit(params.Page.Limit()).Offset(params.Page.Offset()).
		Find(&cs).Error
	return cs, total, err
}

func (r *DBCommentRepo) GetCommentStats(requirementID *uint, since time.Time) (comment.Stats, error) {
	var stats comment.Stats
	base := r.db.Model(&comment.Comment{})
	if requirementID != nil {
		base = base.Where("requirement_id = ?", *requirementID)
	}
	base = base.Session(&gorm.Session{})

	if err := base.Count(&stats.Total).Error; err != nil {
		return stats, err
	}
	if err := base.Where("created_at >= ?", since).Count(&stats.Last24h).Error; err != nil {
		return stats, err
	}
	if err := base.Distinct("author_id").Count(&stats.UniqueCommenters).Error; err != nil {
		return stats, err
	}
	return stats, nil
}

func (r *DBCommentRepo) WithTx(tx *gorm.DB) CommentRepo {
	if tx == nil {
		return r
	}
	return &DBCommentRepo{
		db: tx,
	}
}
