package application

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/komunitech/komunitech/internal/config"
	"github.com/komunitech/komunitech/internal/domain/comment"
	"github.com/komunitech/komunitech/internal/domain/notification"
	"github.com/komunitech/komunitech/internal/repository"
	"github.com/komunitech/komunitech/pkg/utils"
	"github.com/rs/zerolog"
)

type CommentService struct {
	Repos    *repository.Repos
	cfg      config.EngagementConfig
	notifier *NotificationService
	log      zerolog.Logger
	now      func() time.Time
}

func NewCommentService(repos *repository.Repos, cfg config.EngagementConfig, notifier *NotificationService, log zerolog.Logger) *CommentService {
	return &CommentService{
		Repos:    repos,
		cfg:      cfg,
		notifier: notifier,
		log:      log.With().Str("service", "comment").Logger(),
		now:      time.Now,
	}
}

type CreateCommentInput struct {
	Body          string
	RequirementID uint
	AuthorID      uint
	ParentID      *uint
	ImageURL      *string
}

// CreateComment adds a comment or reply. Replies must target a comment of
// the same requirement and may not nest deeper than MaxCommentDepth. The
// requirement submitter and, for replies, the parent author are notified.
func (s *CommentService) CreateComment(in CreateCommentInput) (*comment.Comment, error) {
	body := strings.TrimSpace(in.Body)
	if body == "" {
		return nil, fmt.Errorf("%w: comment body is empty", ErrInvalidInput)
	}

	c := &comment.Comment{
		Body:          body,
		RequirementID: in.RequirementID,
		AuthorID:      in.AuthorID,
		ParentID:      in.ParentID,
		ImageURL:      in.ImageURL,
	}

	var sent outbox
	err := s.Repos.ExecTx(func(tx *repository.Repos) error {
		req, err := tx.Requirement.GetRequirementByID(in.RequirementID)
		if err != nil {
			return notFound(err, ErrRequirementNotFound)
		}

		var parent *comment.Comment
		if in.ParentID != nil {
			p, err := tx.Comment.GetCommentByID(*in.ParentID)
			if err != nil {
				return notFound(err, ErrCommentNotFound)
			}
			if p.RequirementID != in.RequirementID {
				return fmt.Errorf("%w: parent comment %d belongs to another requirement", ErrInvalidReference, p.ID)
			}
			depth, err := s.depth(tx, &p)
			if err != nil {
				return err
			}
			if depth >= s.cfg.MaxCommentDepth {
				return fmt.Errorf("%w: limit is %d", ErrDepthExceeded, s.cfg.MaxCommentDepth)
			}
			parent = &p
		}

		author, err := tx.User.GetUserByID(in.AuthorID)
		if err != nil {
			return notFound(err, ErrUserNotFound)
		}

		if err := tx.Comment.CreateComment(c); err != nil {
			return err
		}

		link := requirementLink(req.ID)
		vars := TemplateVars{"entity": req.Title, "user": author.Name}
		notified := map[uint]bool{in.AuthorID: true}
		recipients := []uint{req.SubmitterID}
		if parent != nil {
			recipients = append(recipients, parent.AuthorID)
		}
		for _, uid := range recipients {
			if notified[uid] {
				continue
			}
			notified[uid] = true
			if err := sent.add(s.notifier.createTyped(tx, uid, notification.TypeComment, link, vars)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Publish(sent...)
	s.log.Info().
		Uint("comment_id", c.ID).
		Uint("requirement_id", c.RequirementID).
		Uint("user_id", c.AuthorID).
		Msg("comment created")
	return c, nil
}

// UpdateComment lets the author rewrite the body within the edit window.
func (s *CommentService) UpdateComment(commentID, editorID uint, body string) (*comment.Comment, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("%w: comment body is empty", ErrInvalidInput)
	}

	c, err := s.Repos.Comment.GetCommentByID(commentID)
	if err != nil {
		return nil, notFound(err, ErrCommentNotFound)
	}
	if !c.CanEdit(editorID, s.now(), s.cfg.CommentEditWindow) {
		return nil, ErrEditWindowClosed
	}

	c.Body = body
	c.IsEdited = true
	if err := s.Repos.Comment.UpdateComment(&c); err != nil {
		return nil, err
	}
	s.log.Info().Uint("comment_id", c.ID).Uint("user_id", editorID).Msg("comment updated")
	return &c, nil
}

// DeleteComment removes a comment for its author or an admin. A comment
// with replies is soft-deleted so the thread below it survives.
func (s *CommentService) DeleteComment(commentID, requesterID uint, isAdmin bool) (bool, error) {
	var soft bool
	err := s.Repos.ExecTx(func(tx *repository.Repos) error {
		var err error
		soft, err = s.delete(tx, commentID, requesterID, isAdmin)
		return err
	})
	if err != nil {
		return false, err
	}
	s.log.Info().
		Uint("comment_id", commentID).
		Uint("user_id", requesterID).
		Bool("soft", soft).
		Msg("comment deleted")
	return true, nil
}

func (s *CommentService) delete(tx *repository.Repos, commentID, requesterID uint, isAdmin bool) (bool, error) {
	c, err := tx.Comment.GetCommentByID(commentID)
	if err != nil {
		return false, notFound(err, ErrCommentNotFound)
	}
	if !isAdmin && c.AuthorID != requesterID {
		return false, fmt.Errorf("%w: only the author or an admin may delete this comment", ErrForbidden)
	}

	replies, err := tx.Comment.CountReplies(c.ID)
	if err != nil {
		return false, err
	}
	if replies > 0 {
		c.SoftDelete()
		return true, tx.Comment.UpdateComment(&c)
	}
	return false, tx.Comment.DeleteComment(c.ID)
}

// CommentDepth counts the ancestors of a comment; top-level comments are 0.
func (s *CommentService) CommentDepth(commentID uint) (int, error) {
	c, err := s.Repos.Comment.GetCommentByID(commentID)
	if err != nil {
		return 0, notFound(err, ErrCommentNotFound)
	}
	return s.depth(s.Repos, &c)
}

func (s *CommentService) depth(repos *repository.Repos, c *comment.Comment) (int, error) {
	depth := 0
	for c.ParentID != nil {
		parent, err := repos.Comment.GetCommentByID(*c.ParentID)
		if err != nil {
			return 0, notFound(err, ErrCommentNotFound)
		}
		depth++
		c = &parent
	}
	return depth, nil
}

// ListThreads returns the requirement's comments as reply trees, oldest
// first at every level.
func (s *CommentService) ListThreads(requirementID uint) ([]comment.Thread, error) {
	cs, err := s.listForRequirement(requirementID)
	if err != nil {
		return nil, err
	}
	return comment.BuildThreads(cs), nil
}

// ListFlat returns every comment of the requirement in creation order.
func (s *CommentService) ListFlat(requirementID uint) ([]comment.Comment, error) {
	return s.listForRequirement(requirementID)
}

func (s *CommentService) listForRequirement(requirementID uint) ([]comment.Comment, error) {
	if _, err := s.Repos.Requirement.GetRequirementByID(requirementID); err != nil {
		return nil, notFound(err, ErrRequirementNotFound)
	}
	cs, err := s.Repos.Comment.ListByRequirement(requirementID)
	if err != nil {
		return nil, err
	}
	if cs == nil {
		cs = []comment.Comment{}
	}
	return cs, nil
}

func (s *CommentService) ListUserComments(userID uint, page repository.Page) ([]comment.Comment, int64, error) {
	return s.Repos.Comment.ListComments(repository.CommentQueryParams{AuthorID: &userID, Page: page})
}

// RecentComments lists the newest comments, optionally narrowed to one
// requirement or author.
func (s *CommentService) RecentComments(limit int, requirementID, authorID *uint) ([]comment.Comment, error) {
	cs, _, err := s.Repos.Comment.ListComments(repository.CommentQueryParams{
		RequirementID: requirementID,
		AuthorID:      authorID,
		Page:          repository.Page{Page: 1, PerPage: limit},
	})
	return cs, err
}

func (s *CommentService) Stats(requirementID *uint) (comment.Stats, error) {
	return s.Repos.Comment.GetCommentStats(requirementID, s.now().Add(-24*time.Hour))
}

const (
	ModerateHide   = "hide"
	ModerateDelete = "delete"
)

// ModerateComment hides or deletes a comment on behalf of an admin and
// records the action in the audit log.
func (s *CommentService) ModerateComment(c *gin.Context, moderatorID, commentID uint, action, reason string) error {
	if action != ModerateHide && action != ModerateDelete {
		return fmt.Errorf("%w: unknown moderation action %q", ErrInvalidInput, action)
	}

	err := s.Repos.ExecTx(func(tx *repository.Repos) error {
		before, err := tx.Comment.GetCommentByID(commentID)
		if err != nil {
			return notFound(err, ErrCommentNotFound)
		}

		var after interface{}
		switch action {
		case ModerateHide:
			hidden := before
			hidden.Hide(reason)
			if err := tx.Comment.UpdateComment(&hidden); err != nil {
				return err
			}
			after = hidden
		case ModerateDelete:
			if _, err := s.delete(tx, commentID, moderatorID, true); err != nil {
				return err
			}
		}

		return utils.LogAudit(c, tx.Audit, utils.AuditEntry{
			ActorID:     moderatorID,
			Action:      "moderate_comment_" + action,
			EntityType:  "comment",
			EntityID:    commentID,
			Before:      before,
			After:       after,
			Description: reason,
		})
	})
	if err != nil {
		return err
	}
	s.log.Info().Uint("comment_id", commentID).Uint("user_id", moderatorID).Str("action", action).Msg("comment moderated")
	return nil
}

func requirementLink(id uint) string {
	return fmt.Sprintf("/requirements/%d", id)
}
