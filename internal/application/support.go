package application

import (
	"errors"
	"fmt"

	"github.com/komunitech/komunitech/internal/config"
	"github.com/komunitech/komunitech/internal/domain/notification"
	"github.com/komunitech/komunitech/internal/domain/support"
	"github.com/komunitech/komunitech/internal/repository"
	"github.com/rs/zerolog"
)

type SupportService struct {
	Repos    *repository.Repos
	cfg      config.EngagementConfig
	notifier *NotificationService
	log      zerolog.Logger
}

func NewSupportService(repos *repository.Repos, cfg config.EngagementConfig, notifier *NotificationService, log zerolog.Logger) *SupportService {
	return &SupportService{
		Repos:    repos,
		cfg:      cfg,
		notifier: notifier,
		log:      log.With().Str("service", "support").Logger(),
	}
}

// CreateSupport records userID's vote for a requirement, notifies the
// submitter and, when the new total is a multiple of the milestone
// threshold, the project owner.
func (s *SupportService) CreateSupport(requirementID, userID uint) (*support.Support, error) {
	var (
		created *support.Support
		sent    outbox
	)
	err := s.Repos.ExecTx(func(tx *repository.Repos) error {
		var err error
		created, _, err = s.create(tx, requirementID, userID, &sent)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.notifier.Publish(sent...)
	return created, nil
}

// RemoveSupport withdraws userID's vote.
func (s *SupportService) RemoveSupport(requirementID, userID uint) error {
	return s.Repos.ExecTx(func(tx *repository.Repos) error {
		_, err := s.remove(tx, requirementID, userID)
		return err
	})
}

func (s *SupportService) HasSupported(userID, requirementID uint) (bool, error) {
	return s.Repos.Support.Exists(userID, requirementID)
}

// ToggleSupport removes an existing vote or casts a new one.
func (s *SupportService) ToggleSupport(requirementID, userID uint) (support.ToggleResult, error) {
	var (
		result support.ToggleResult
		sent   outbox
	)
	err := s.Repos.ExecTx(func(tx *repository.Repos) error {
		exists, err := tx.Support.Exists(userID, requirementID)
		if err != nil {
			return err
		}
		if exists {
			result.Action = support.ActionUnsupported
			result.SupportCount, err = s.remove(tx, requirementID, userID)
			return err
		}
		result.Action = support.ActionSupported
		_, result.SupportCount, err = s.create(tx, requirementID, userID, &sent)
		return err
	})
	if err != nil {
		return support.ToggleResult{}, err
	}
	s.notifier.Publish(sent...)
	return result, nil
}

func (s *SupportService) SupportCount(requirementID uint) (int64, error) {
	return s.Repos.Support.CountByRequirement(requirementID)
}

func (s *SupportService) ListSupporters(requirementID uint, page repository.Page) ([]support.Support, int64, error) {
	if _, err := s.Repos.Requirement.GetRequirementByID(requirementID); err != nil {
		return nil, 0, notFound(err, ErrRequirementNotFound)
	}
	return s.Repos.Support.ListByRequirement(requirementID, page)
}

func (s *SupportService) ListUserSupports(userID uint, page repository.Page) ([]support.Support, int64, error) {
	return s.Repos.Support.ListByUser(userID, page)
}

func (s *SupportService) create(tx *repository.Repos, requirementID, userID uint, sent *outbox) (*support.Support, int64, error) {
	req, err := tx.Requirement.GetRequirementByID(requirementID)
	if err != nil {
		return nil, 0, notFound(err, ErrRequirementNotFound)
	}
	if req.SubmitterID == userID {
		return nil, 0, ErrSelfSupport
	}

	exists, err := tx.Support.Exists(userID, requirementID)
	if err != nil {
		return nil, 0, err
	}
	if exists {
		return nil, 0, ErrAlreadySupported
	}

	supporter, err := tx.User.GetUserByID(userID)
	if err != nil {
		return nil, 0, notFound(err, ErrUserNotFound)
	}

	sp := &support.Support{UserID: userID, RequirementID: requirementID}
	if err := tx.Support.CreateSupport(sp); err != nil {
		// a concurrent vote won the race for the unique index
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, 0, ErrAlreadySupported
		}
		return nil, 0, err
	}

	count, err := tx.Support.CountByRequirement(requirementID)
	if err != nil {
		return nil, 0, err
	}

	link := requirementLink(req.ID)
	err = sent.add(s.notifier.createTyped(tx, req.SubmitterID, notification.TypeSupport, link,
		TemplateVars{"entity": req.Title, "user": supporter.Name}))
	if err != nil {
		return nil, 0, err
	}

	if s.cfg.MilestoneThreshold > 0 && count%int64(s.cfg.MilestoneThreshold) == 0 {
		project, err := tx.Project.GetProjectByID(req.ProjectID)
		if err != nil {
			return nil, 0, notFound(err, ErrProjectNotFound)
		}
		err = sent.add(s.notifier.createTyped(tx, project.OwnerID, notification.TypeMilestone, link,
			TemplateVars{"entity": req.Title, "milestone": fmt.Sprintf("%d dukungan", count)}))
		if err != nil {
			return nil, 0, err
		}
		s.log.Info().Uint("requirement_id", requirementID).Int64("support_count", count).Msg("support milestone reached")
	}

	s.log.Info().
		Uint("requirement_id", requirementID).
		Uint("user_id", userID).
		Int64("support_count", count).
		Msg("support created")
	return sp, count, nil
}

func (s *SupportService) remove(tx *repository.Repos, requirementID, userID uint) (int64, error) {
	n, err := tx.Support.DeleteSupport(userID, requirementID)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, ErrSupportNotFound
	}
	count, err := tx.Support.CountByRequirement(requirementID)
	if err != nil {
		return 0, err
	}
	s.log.Info().
		Uint("requirement_id", requirementID).
		Uint("user_id", userID).
		Int64("support_count", count).
		Msg("support removed")
	return count, nil
}
