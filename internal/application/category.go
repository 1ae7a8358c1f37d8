package application

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/komunitech/komunitech/internal/domain/category"
	"github.com/komunitech/komunitech/internal/repository"
	"github.com/komunitech/komunitech/pkg/utils"
	"github.com/rs/zerolog"
)

type CategoryService struct {
	Repos *repository.Repos
	log   zerolog.Logger
}

func NewCategoryService(repos *repository.Repos, log zerolog.Logger) *CategoryService {
	return &CategoryService{
		Repos: repos,
		log:   log.With().Str("service", "category").Logger(),
	}
}

func (s *CategoryService) ListCategories() ([]category.Category, error) {
	return s.Repos.Category.ListCategories()
}

func (s *CategoryService) GetCategory(id uint) (*category.Category, error) {
	c, err := s.Repos.Category.GetCategoryByID(id)
	if err != nil {
		return nil, notFound(err, ErrCategoryNotFound)
	}
	return &c, nil
}

func (s *CategoryService) CreateCategory(c *gin.Context, actorID uint, input category.CreateCategoryDTO) (*category.Category, error) {
	cat := &category.Category{Name: input.Name}
	if input.Description != nil {
		cat.Description = *input.Description
	}

	err := s.Repos.ExecTx(func(tx *repository.Repos) error {
		if err := tx.Category.CreateCategory(cat); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return ErrCategoryExists
			}
			return err
		}
		return utils.LogAudit(c, tx.Audit, utils.AuditEntry{
			ActorID:    actorID,
			Action:     "create_category",
			EntityType: "category",
			EntityID:   cat.ID,
			After:      cat,
		})
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Uint("category_id", cat.ID).Str("name", cat.Name).Msg("category created")
	return cat, nil
}

func (s *CategoryService) UpdateCategory(c *gin.Context, actorID, id uint, input category.UpdateCategoryDTO) (*category.Category, error) {
	var out category.Category
	err := s.Repos.ExecTx(func(tx *repository.Repos) error {
		cat, err := tx.Category.GetCategoryByID(id)
		if err != nil {
			return notFound(err, ErrCategoryNotFound)
		}
		old := cat
		if input.Name != nil {
			cat.Name = *input.Name
		}
		if input.Description != nil {
			cat.Description = *input.Description
		}
		if err := tx.Category.UpdateCategory(&cat); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return ErrCategoryExists
			}
			return err
		}
		out = cat
		return utils.LogAudit(c, tx.Audit, utils.AuditEntry{
			ActorID:    actorID,
			Action:     "update_category",
			EntityType: "category",
			EntityID:   id,
			Before:     old,
			After:      cat,
		})
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCategory refuses while any project or requirement still uses it.
func (s *CategoryService) DeleteCategory(c *gin.Context, actorID, id uint) error {
	err := s.Repos.ExecTx(func(tx *repository.Repos) error {
		cat, err := tx.Category.GetCategoryByID(id)
		if err != nil {
			return notFound(err, ErrCategoryNotFound)
		}
		used, err := tx.Category.UsageCount(id)
		if err != nil {
			return err
		}
		if used > 0 {
			return ErrCategoryInUse
		}
		if err := tx.Category.DeleteCategory(id); err != nil {
			return err
		}
		return utils.LogAudit(c, tx.Audit, utils.AuditEntry{
			ActorID:    actorID,
			Action:     "delete_category",
			EntityType: "category",
			EntityID:   id,
			Before:     cat,
		})
	})
	if err != nil {
		return err
	}
	s.log.Info().Uint("category_id", id).Msg("category deleted")
	return nil
}
