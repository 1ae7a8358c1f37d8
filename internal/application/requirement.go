package application

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/komunitech/komunitech/internal/domain/notification"
	"github.com/komunitech/komunitech/internal/domain/requirement"
	"github.com/komunitech/komunitech/internal/repository"
	"github.com/komunitech/komunitech/pkg/utils"
	"github.com/rs/zerolog"
)

type RequirementService struct {
	Repos    *repository.Repos
	notifier *NotificationService
	log      zerolog.Logger
	now      func() time.Time
}

func NewRequirementService(repos *repository.Repos, notifier *NotificationService, log zerolog.Logger) *RequirementService {
	return &RequirementService{
		Repos:    repos,
		notifier: notifier,
		log:      log.With().Str("service", "requirement").Logger(),
		now:      time.Now,
	}
}

// CreateRequirement files a requirement against an active project and
// notifies the project owner.
func (s *RequirementService) CreateRequirement(projectID, submitterID uint, input requirement.CreateRequirementDTO) (*requirement.Requirement, error) {
	priority := input.Priority
	if priority == "" {
		priority = requirement.PriorityMedium
	}
	if !priority.Valid() {
		return nil, fmt.Errorf("%w: priority %q", ErrInvalidInput, priority)
	}

	r := &requirement.Requirement{
		Title:       input.Title,
		Description: input.Description,
		ProjectID:   projectID,
		SubmitterID: submitterID,
		CategoryID:  input.CategoryID,
		Status:      requirement.StatusSubmitted,
		Priority:    priority,
		ImageURL:    input.ImageURL,
	}

	var sent outbox
	err := s.Repos.ExecTx(func(tx *repository.Repos) error {
		p, err := tx.Project.GetProjectByID(projectID)
		if err != nil {
			return notFound(err, ErrProjectNotFound)
		}
		if !p.AcceptsRequirements() {
			return ErrProjectNotActive
		}
		if _, err := tx.Category.GetCategoryByID(input.CategoryID); err != nil {
			return notFound(err, ErrCategoryNotFound)
		}
		submitter, err := tx.User.GetUserByID(submitterID)
		if err != nil {
			return notFound(err, ErrUserNotFound)
		}

		if err := tx.Requirement.CreateRequirement(r); err != nil {
			return err
		}

		if p.OwnerID != submitterID {
			return sent.add(s.notifier.createTyped(tx, p.OwnerID, notification.TypeNewRequirement,
				requirementLink(r.ID), TemplateVars{"entity": p.Title, "user": submitter.Name}))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Publish(sent...)
	s.log.Info().
		Uint("requirement_id", r.ID).
		Uint("project_id", projectID).
		Uint("user_id", submitterID).
		Msg("requirement created")
	return r, nil
}

func (s *RequirementService) GetRequirement(id uint) (*requirement.Requirement, error) {
	r, err := s.Repos.Requirement.GetRequirementByID(id)
	if err != nil {
		return nil, notFound(err, ErrRequirementNotFound)
	}
	return &r, nil
}

// ViewRequirement bumps the view counter and returns the requirement.
func (s *RequirementService) ViewRequirement(id uint) (*requirement.Requirement, error) {
	if err := s.Repos.Requirement.IncrementViews(id); err != nil {
		return nil, err
	}
	return s.GetRequirement(id)
}

func (s *RequirementService) ListRequirements(params repository.RequirementQueryParams) ([]requirement.Requirement, int64, error) {
	return s.Repos.Requirement.ListRequirements(params)
}

func (s *RequirementService) ListProjectRequirements(projectID uint, params repository.RequirementQueryParams) ([]requirement.Requirement, int64, error) {
	if _, err := s.Repos.Project.GetProjectByID(projectID); err != nil {
		return nil, 0, notFound(err, ErrProjectNotFound)
	}
	params.ProjectID = &projectID
	return s.Repos.Requirement.ListRequirements(params)
}

// UpdateRequirement edits the requirement's content. Only the submitter or
// an admin may do so.
func (s *RequirementService) UpdateRequirement(actorID uint, isAdmin bool, id uint, input requirement.UpdateRequirementDTO) (*requirement.Requirement, error) {
	var out requirement.Requirement
	err := s.Repos.ExecTx(func(tx *repository.Repos) error {
		r, err := tx.Requirement.GetRequirementByID(id)
		if err != nil {
			return notFound(err, ErrRequirementNotFound)
		}
		if !isAdmin && r.SubmitterID != actorID {
			return fmt.Errorf("%w: only the submitter or an admin may edit this requirement", ErrForbidden)
		}

		if input.Title != nil {
			r.Title = *input.Title
		}
		if input.Description != nil {
			r.Description = *input.Description
		}
		if input.CategoryID != nil {
			if _, err := tx.Category.GetCategoryByID(*input.CategoryID); err != nil {
				return notFound(err, ErrCategoryNotFound)
			}
			r.CategoryID = *input.CategoryID
		}
		if input.Priority != nil {
			if !input.Priority.Valid() {
				return fmt.Errorf("%w: priority %q", ErrInvalidInput, *input.Priority)
			}
			r.Priority = *input.Priority
		}
		if input.ImageURL != nil {
			r.ImageURL = input.ImageURL
		}

		out = r
		return tx.Requirement.UpdateRequirement(&out)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Uint("requirement_id", id).Uint("user_id", actorID).Msg("requirement updated")
	return &out, nil
}

// UpdateStatus moves a requirement through its lifecycle. Admins, the
// project owner and project collaborators may change status.
func (s *RequirementService) UpdateStatus(c *gin.Context, actorID uint, isAdmin bool, id uint, status requirement.Status) (*requirement.Requirement, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: status %q", ErrInvalidInput, status)
	}

	var (
		out  requirement.Requirement
		sent outbox
	)
	err := s.Repos.ExecTx(func(tx *repository.Repos) error {
		r, err := tx.Requirement.GetRequirementByID(id)
		if err != nil {
			return notFound(err, ErrRequirementNotFound)
		}
		if !isAdmin {
			p, err := tx.Project.GetProjectByID(r.ProjectID)
			if err != nil {
				return notFound(err, ErrProjectNotFound)
			}
			ok, err := canManageProject(tx, &p, actorID)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: not allowed to change the status of this requirement", ErrForbidden)
			}
		}

		out, err = s.applyStatus(c, tx, actorID, r, status, &sent, true)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.notifier.Publish(sent...)
	return &out, nil
}

// BulkUpdateStatus changes the status of every listed requirement in one
// transaction. A missing id or storage failure leaves all of them unchanged.
func (s *RequirementService) BulkUpdateStatus(c *gin.Context, actorID uint, ids []uint, status requirement.Status) (int, error) {
	if !status.Valid() {
		return 0, fmt.Errorf("%w: status %q", ErrInvalidInput, status)
	}
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: no requirement ids given", ErrInvalidInput)
	}

	var sent outbox
	err := s.Repos.ExecTx(func(tx *repository.Repos) error {
		for _, id := range ids {
			r, err := tx.Requirement.GetRequirementByID(id)
			if err != nil {
				return notFound(err, fmt.Errorf("%w: %d", ErrRequirementNotFound, id))
			}
			if _, err := s.applyStatus(c, tx, actorID, r, status, &sent, false); err != nil {
				return err
			}
		}
		return utils.LogAudit(c, tx.Audit, utils.AuditEntry{
			ActorID:     actorID,
			Action:      "bulk_update_requirement_status",
			EntityType:  "requirement",
			After:       map[string]interface{}{"ids": ids, "status": status},
			Description: fmt.Sprintf("%d requirements set to %s", len(ids), status),
		})
	})
	if err != nil {
		s.log.Error().Err(err).Int("count", len(ids)).Msg("bulk status update rolled back")
		return 0, err
	}
	s.notifier.Publish(sent...)
	return len(ids), nil
}

// BulkDelete removes every listed requirement in one transaction.
func (s *RequirementService) BulkDelete(c *gin.Context, actorID uint, ids []uint) (int, error) {
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: no requirement ids given", ErrInvalidInput)
	}
	err := s.Repos.ExecTx(func(tx *repository.Repos) error {
		for _, id := range ids {
			if err := tx.Requirement.DeleteRequirement(id); err != nil {
				return notFound(err, fmt.Errorf("%w: %d", ErrRequirementNotFound, id))
			}
		}
		return utils.LogAudit(c, tx.Audit, utils.AuditEntry{
			ActorID:     actorID,
			Action:      "bulk_delete_requirements",
			EntityType:  "requirement",
			Before:      map[string]interface{}{"ids": ids},
			Description: fmt.Sprintf("%d requirements deleted", len(ids)),
		})
	})
	if err != nil {
		s.log.Error().Err(err).Int("count", len(ids)).Msg("bulk delete rolled back")
		return 0, err
	}
	s.log.Info().Int("count", len(ids)).Uint("user_id", actorID).Msg("requirements bulk deleted")
	return len(ids), nil
}

// DeleteRequirement removes a requirement with its comments and supports.
func (s *RequirementService) DeleteRequirement(c *gin.Context, actorID uint, isAdmin bool, id uint) error {
	err := s.Repos.ExecTx(func(tx *repository.Repos) error {
		r, err := tx.Requirement.GetRequirementByID(id)
		if err != nil {
			return notFound(err, ErrRequirementNotFound)
		}
		if !isAdmin && r.SubmitterID != actorID {
			return fmt.Errorf("%w: only the submitter or an admin may delete this requirement", ErrForbidden)
		}
		if err := tx.Requirement.DeleteRequirement(id); err != nil {
			return err
		}
		return utils.LogAudit(c, tx.Audit, utils.AuditEntry{
			ActorID:    actorID,
			Action:     "delete_requirement",
			EntityType: "requirement",
			EntityID:   id,
			Before:     r,
		})
	})
	if err != nil {
		return err
	}
	s.log.Info().Uint("requirement_id", id).Uint("user_id", actorID).Msg("requirement deleted")
	return nil
}

func (s *RequirementService) applyStatus(c *gin.Context, tx *repository.Repos, actorID uint, r requirement.Requirement, status requirement.Status, sent *outbox, audited bool) (requirement.Requirement, error) {
	before := r
	r.ApplyStatus(status, actorID, s.now())
	if err := tx.Requirement.UpdateRequirement(&r); err != nil {
		return r, err
	}

	if r.SubmitterID != actorID {
		err := sent.add(s.notifier.createTyped(tx, r.SubmitterID, notification.TypeStatusChange, requirementLink(r.ID),
			TemplateVars{"entity": r.Title, "status": string(status)}))
		if err != nil {
			return r, err
		}
	}

	if audited {
		err := utils.LogAudit(c, tx.Audit, utils.AuditEntry{
			ActorID:    actorID,
			Action:     "update_requirement_status",
			EntityType: "requirement",
			EntityID:   r.ID,
			Before:     map[string]interface{}{"status": before.Status},
			After:      map[string]interface{}{"status": r.Status},
		})
		if err != nil {
			return r, err
		}
	}

	s.log.Info().
		Uint("requirement_id", r.ID).
		Uint("user_id", actorID).
		Str("from", string(before.Status)).
		Str("to", string(status)).
		Msg("requirement status changed")
	return r, nil
}
