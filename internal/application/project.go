package application

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/komunitech/komunitech/internal/domain/notification"
	"github.com/komunitech/komunitech/internal/domain/project"
	"github.com/komunitech/komunitech/internal/repository"
	"github.com/komunitech/komunitech/pkg/utils"
	"github.com/rs/zerolog"
)

type ProjectService struct {
	Repos    *repository.Repos
	notifier *NotificationService
	log      zerolog.Logger
}

func NewProjectService(repos *repository.Repos, notifier *NotificationService, log zerolog.Logger) *ProjectService {
	return &ProjectService{
		Repos:    repos,
		notifier: notifier,
		log:      log.With().Str("service", "project").Logger(),
	}
}

// canManageProject reports whether actorID owns or collaborates on p.
func canManageProject(tx *repository.Repos, p *project.Project, actorID uint) (bool, error) {
	if p.OwnerID == actorID {
		return true, nil
	}
	return tx.Project.IsCollaborator(p.ID, actorID)
}

func (s *ProjectService) GetProject(id uint) (*project.Project, error) {
	p, err := s.Repos.Project.GetProjectByID(id)
	if err != nil {
		return nil, notFound(err, ErrProjectNotFound)
	}
	return &p, nil
}

// ViewProject bumps the view counter and returns the project.
func (s *ProjectService) ViewProject(id uint) (*project.Project, error) {
	if err := s.Repos.Project.IncrementViews(id); err != nil {
		return nil, err
	}
	return s.GetProject(id)
}

func (s *ProjectService) ListProjects(params repository.ProjectQueryParams) ([]project.Project, int64, error) {
	return s.Repos.Project.ListProjects(params)
}

func (s *ProjectService) CreateProject(c *gin.Context, ownerID uint, input project.CreateProjectDTO) (*project.Project, error) {
	p := &project.Project{
		Title:       input.Title,
		Description: input.Description,
		OwnerID:     ownerID,
		CategoryID:  input.CategoryID,
		Status:      project.StatusActive,
		ImageURL:    input.ImageURL,
	}

	err := s.Repos.ExecTx(func(tx *repository.Repos) error {
		if _, err := tx.Category.GetCategoryByID(input.CategoryID); err != nil {
			return notFound(err, ErrCategoryNotFound)
		}
		if err := tx.Project.CreateProject(p); err != nil {
			return err
		}
		return utils.LogAudit(c, tx.Audit, utils.AuditEntry{
			ActorID:    ownerID,
			Action:     "create_project",
			EntityType: "project",
			EntityID:   p.ID,
			After:      p,
		})
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Uint("project_id", p.ID).Uint("user_id", ownerID).Msg("project created")
	return p, nil
}

func (s *ProjectService) UpdateProject(c *gin.Context, actorID uint, isAdmin bool, id uint, input project.UpdateProjectDTO) (*project.Project, error) {
	var out project.Project
	err := s.Repos.ExecTx(func(tx *repository.Repos) error {
		p, err := tx.Project.GetProjectByID(id)
		if err != nil {
			return notFound(err, ErrProjectNotFound)
		}
		if err := s.authorize(tx, &p, actorID, isAdmin); err != nil {
			return err
		}
		old := p

		if input.Title != nil {
			p.Title = *input.Title
		}
		if input.Description != nil {
			p.Description = *input.Description
		}
		if input.CategoryID != nil {
			if _, err := tx.Category.GetCategoryByID(*input.CategoryID); err != nil {
				return notFound(err, ErrCategoryNotFound)
			}
			p.CategoryID = *input.CategoryID
			p.Category = nil
		}
		if input.ImageURL != nil {
			p.ImageURL = input.ImageURL
		}

		if err := tx.Project.UpdateProject(&p); err != nil {
			return err
		}
		out = p
		return utils.LogAudit(c, tx.Audit, utils.AuditEntry{
			ActorID:    actorID,
			Action:     "update_project",
			EntityType: "project",
			EntityID:   p.ID,
			Before:     old,
			After:      p,
		})
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Uint("project_id", id).Uint("user_id", actorID).Msg("project updated")
	return &out, nil
}

// UpdateProjectStatus changes the project status and notifies its
// collaborators.
func (s *ProjectService) UpdateProjectStatus(c *gin.Context, actorID uint, isAdmin bool, id uint, status project.Status) (*project.Project, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: status %q", ErrInvalidInput, status)
	}

	var (
		out  project.Project
		sent outbox
	)
	err := s.Repos.ExecTx(func(tx *repository.Repos) error {
		p, err := tx.Project.GetProjectByID(id)
		if err != nil {
			return notFound(err, ErrProjectNotFound)
		}
		if err := s.authorize(tx, &p, actorID, isAdmin); err != nil {
			return err
		}
		old := p.Status
		p.Status = status
		if err := tx.Project.UpdateProject(&p); err != nil {
			return err
		}
		out = p

		collaborators, err := tx.Project.ListCollaborators(p.ID)
		if err != nil {
			return err
		}
		link := fmt.Sprintf("/projects/%d", p.ID)
		for _, col := range collaborators {
			if col.UserID == actorID {
				continue
			}
			if err := sent.add(s.notifier.createTyped(tx, col.UserID, notification.TypeProjectUpdate, link,
				TemplateVars{"entity": p.Title})); err != nil {
				return err
			}
		}

		return utils.LogAudit(c, tx.Audit, utils.AuditEntry{
			ActorID:    actorID,
			Action:     "update_project_status",
			EntityType: "project",
			EntityID:   p.ID,
			Before:     map[string]interface{}{"status": old},
			After:      map[string]interface{}{"status": status},
		})
	})
	if err != nil {
		return nil, err
	}
	s.notifier.Publish(sent...)
	s.log.Info().Uint("project_id", id).Str("status", string(status)).Msg("project status changed")
	return &out, nil
}

// DeleteProject removes a project with everything filed under it. Only the
// owner or an admin may delete.
func (s *ProjectService) DeleteProject(c *gin.Context, actorID uint, isAdmin bool, id uint) error {
	err := s.Repos.ExecTx(func(tx *repository.Repos) error {
		p, err := tx.Project.GetProjectByID(id)
		if err != nil {
			return notFound(err, ErrProjectNotFound)
		}
		if !isAdmin && p.OwnerID != actorID {
			return fmt.Errorf("%w: only the owner or an admin may delete this project", ErrForbidden)
		}
		if err := tx.Project.DeleteProject(id); err != nil {
			return err
		}
		return utils.LogAudit(c, tx.Audit, utils.AuditEntry{
			ActorID:    actorID,
			Action:     "delete_project",
			EntityType: "project",
			EntityID:   id,
			Before:     p,
		})
	})
	if err != nil {
		return err
	}
	s.log.Info().Uint("project_id", id).Uint("user_id", actorID).Msg("project deleted")
	return nil
}

func (s *ProjectService) GetProjectStats(id uint) (project.Stats, error) {
	if _, err := s.Repos.Project.GetProjectByID(id); err != nil {
		return project.Stats{}, notFound(err, ErrProjectNotFound)
	}
	return s.Repos.Project.GetProjectStats(id)
}

func (s *ProjectService) AddCollaborator(c *gin.Context, actorID uint, isAdmin bool, projectID uint, input project.AddCollaboratorDTO) (*project.Collaborator, error) {
	role := input.Role
	if role == "" {
		role = project.RoleContributor
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: collaborator role %q", ErrInvalidInput, role)
	}

	col := &project.Collaborator{
		ProjectID: projectID,
		UserID:    input.UserID,
		Role:      role,
		AddedBy:   &actorID,
	}
	err := s.Repos.ExecTx(func(tx *repository.Repos) error {
		p, err := tx.Project.GetProjectByID(projectID)
		if err != nil {
			return notFound(err, ErrProjectNotFound)
		}
		if !isAdmin && p.OwnerID != actorID {
			return fmt.Errorf("%w: only the owner or an admin may manage collaborators", ErrForbidden)
		}
		if p.OwnerID == input.UserID {
			return fmt.Errorf("%w: the owner cannot be a collaborator", ErrInvalidInput)
		}
		if _, err := tx.User.GetUserByID(input.UserID); err != nil {
			return notFound(err, ErrUserNotFound)
		}
		if err := tx.Project.AddCollaborator(col); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return ErrCollaboratorExists
			}
			return err
		}
		return utils.LogAudit(c, tx.Audit, utils.AuditEntry{
			ActorID:    actorID,
			Action:     "add_collaborator",
			EntityType: "project",
			EntityID:   projectID,
			After:      col,
		})
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Uint("project_id", projectID).Uint("user_id", input.UserID).Msg("collaborator added")
	return col, nil
}

func (s *ProjectService) RemoveCollaborator(c *gin.Context, actorID uint, isAdmin bool, projectID, userID uint) error {
	return s.Repos.ExecTx(func(tx *repository.Repos) error {
		p, err := tx.Project.GetProjectByID(projectID)
		if err != nil {
			return notFound(err, ErrProjectNotFound)
		}
		if !isAdmin && p.OwnerID != actorID && userID != actorID {
			return fmt.Errorf("%w: only the owner or an admin may manage collaborators", ErrForbidden)
		}
		n, err := tx.Project.RemoveCollaborator(projectID, userID)
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("%w: collaborator", ErrNotFound)
		}
		return utils.LogAudit(c, tx.Audit, utils.AuditEntry{
			ActorID:    actorID,
			Action:     "remove_collaborator",
			EntityType: "project",
			EntityID:   projectID,
			Before:     map[string]interface{}{"user_id": userID},
		})
	})
}

func (s *ProjectService) ListCollaborators(projectID uint) ([]project.Collaborator, error) {
	if _, err := s.Repos.Project.GetProjectByID(projectID); err != nil {
		return nil, notFound(err, ErrProjectNotFound)
	}
	return s.Repos.Project.ListCollaborators(projectID)
}

func (s *ProjectService) authorize(tx *repository.Repos, p *project.Project, actorID uint, isAdmin bool) error {
	if isAdmin {
		return nil
	}
	ok, err := canManageProject(tx, p, actorID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: not allowed to manage this project", ErrForbidden)
	}
	return nil
}
