package repository

import (
	"github.com/komunitech/komunitech/internal/domain/category"
	"github.com/komunitech/komunitech/internal/domain/project"
	"github.com/komunitech/komunitech/internal/domain/requirement"
	"gorm.io/gorm"
)

type CategoryRepo interface {
	GetCategoryByID(id uint) (category.Category, error)
	ListCategories() ([]category.Category, error)
	CreateCategory(c *category.Category) error
	UpdateCategory(c *category.Category) error
	DeleteCategory(id uint) error
	// UsageCount is the number of projects and requirements filed under the category.
	UsageCount(id uint) (int64, error)
	WithTx(tx *gorm.DB) CategoryRepo
}

type DBCategoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) *DBCategoryRepo {
	return &DBCategoryRepo{
		db: db,
	}
}

func (r *DBCategoryRepo) GetCategoryByID(id uint) (category.Category, error) {
	var c category.Category
	err := r.db.First(&c, id).Error
	return c, err
}

func (r *DBCategoryRepo) ListCategories() ([]category.Category, error) {
	var cats []category.Category
	err := r.db.Order("name ASC").Find(&cats).Error
	return cats, err
}

func (r *DBCategoryRepo) CreateCategory(c *category.Category) error {
	return translate(r.db.Create(c).Error)
}

func (r *DBCategoryRepo) UpdateCategory(c *category.Category) error {
	return translate(r.db.Save(c).Error)
}

func (r *DBCategoryRepo) DeleteCategory(id uint) error {
	return r.db.Delete(&category.Category{}, id).Error
}

func (r *DBCategoryRepo) UsageCount(id uint) (int64, error) {
	var projects, requirements int64
	if err := r.db.Model(&project.Project{}).Where("category_id = ?", id).Count(&projects).Error; err != nil {
		return 0, err
	}
	if err := r.db.Model(&requirement.Requirement{}).Where("category_id = ?", id).Count(&requirements).Error; err != nil {
		return 0, err
	}
	return projects + requirements, nil
}

func (r *DBCategoryRepo) WithTx(tx *gorm.DB) CategoryRepo {
	if tx == nil {
		return r
	}
	return &DBCategoryRepo{
		db: tx,
	}
}
