package application

import (
	"fmt"
	"time"

	"github.com/komunitech/komunitech/internal/domain/notification"
	"github.com/komunitech/komunitech/internal/realtime"
	"github.com/komunitech/komunitech/internal/repository"
	"github.com/rs/zerolog"
)

// TemplateVars fills {entity}, {user} and any extra placeholders of a typed
// notification.
type TemplateVars map[string]string

type NotificationService struct {
	Repos     *repository.Repos
	templates notification.Templates
	publisher realtime.Publisher
	log       zerolog.Logger
	now       func() time.Time
}

func NewNotificationService(repos *repository.Repos, publisher realtime.Publisher, log zerolog.Logger) *NotificationService {
	if publisher == nil {
		publisher = realtime.NoopPublisher{}
	}
	return &NotificationService{
		Repos:     repos,
		templates: notification.DefaultTemplates(),
		publisher: publisher,
		log:       log.With().Str("service", "notification").Logger(),
		now:       time.Now,
	}
}

func (s *NotificationService) CreateNotification(userID uint, typ notification.Type, title, message, link string) (*notification.Notification, error) {
	var n *notification.Notification
	err := s.Repos.ExecTx(func(tx *repository.Repos) error {
		var err error
		n, err = s.create(tx, userID, typ, title, message, link)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.Publish(*n)
	return n, nil
}

// CreateTypedNotification renders the template registered for typ with
// entity and actor names and vars.
func (s *NotificationService) CreateTypedNotification(userID uint, typ notification.Type, entityName, actorName, link string, vars TemplateVars) (*notification.Notification, error) {
	all := TemplateVars{"entity": entityName, "user": actorName}
	for k, v := range vars {
		all[k] = v
	}

	var n *notification.Notification
	err := s.Repos.ExecTx(func(tx *repository.Repos) error {
		var err error
		n, err = s.createTyped(tx, userID, typ, link, all)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.Publish(*n)
	return n, nil
}

// BulkCreate sends the same notification to every user in one transaction.
func (s *NotificationService) BulkCreate(userIDs []uint, typ notification.Type, title, message, link string) ([]notification.Notification, error) {
	if !typ.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, typ)
	}
	ns := make([]notification.Notification, 0, len(userIDs))
	for _, id := range userIDs {
		ns = append(ns, notification.Notification{UserID: id, Type: typ, Title: title, Message: message, Link: link})
	}

	err := s.Repos.ExecTx(func(tx *repository.Repos) error {
		for _, id := range userIDs {
			if _, err := tx.User.GetUserByID(id); err != nil {
				return notFound(err, fmt.Errorf("%w: %d", ErrUserNotFound, id))
			}
		}
		return tx.Notification.CreateNotifications(ns)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Int("count", len(ns)).Str("type", string(typ)).Msg("bulk notifications created")
	s.Publish(ns...)
	return ns, nil
}

func (s *NotificationService) MarkRead(notificationID, userID uint) (bool, error) {
	n, err := s.Repos.Notification.MarkRead(notificationID, userID)
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, ErrNotificationNotFound
	}
	return true, nil
}

func (s *NotificationService) MarkAllRead(userID uint) (int64, error) {
	n, err := s.Repos.Notification.MarkAllRead(userID)
	if err != nil {
		return 0, err
	}
	s.log.Info().Uint("user_id", userID).Int64("count", n).Msg("notifications marked read")
	return n, nil
}

func (s *NotificationService) ListUserNotifications(userID uint, unreadOnly bool, page repository.Page) ([]notification.Notification, int64, error) {
	return s.Repos.Notification.ListNotifications(repository.NotificationQueryParams{
		UserID:     userID,
		UnreadOnly: unreadOnly,
		Page:       page,
	})
}

func (s *NotificationService) UnreadCount(userID uint) (int64, error) {
	return s.Repos.Notification.CountUnread(userID)
}

func (s *NotificationService) DeleteNotification(notificationID, userID uint) error {
	n, err := s.Repos.Notification.DeleteNotification(notificationID, userID)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (s *NotificationService) Stats(userID *uint) (notification.Stats, error) {
	return s.Repos.Notification.GetNotificationStats(userID)
}

// PurgeOld deletes notifications older than retentionDays.
func (s *NotificationService) PurgeOld(retentionDays int) (int64, error) {
	if retentionDays < 0 {
		return 0, fmt.Errorf("%w: retention days must not be negative", ErrInvalidInput)
	}
	cutoff := s.now().AddDate(0, 0, -retentionDays)
	n, err := s.Repos.Notification.DeleteOlderThan(cutoff)
	if err != nil {
		return 0, err
	}
	s.log.Info().Int("retention_days", retentionDays).Int64("deleted", n).Msg("old notifications purged")
	return n, nil
}

// Publish pushes committed notifications to connected clients.
func (s *NotificationService) Publish(ns ...notification.Notification) {
	for _, n := range ns {
		s.publisher.Publish(n.UserID, realtime.Event{Type: "notification", Data: n})
	}
}

func (s *NotificationService) create(tx *repository.Repos, userID uint, typ notification.Type, title, message, link string) (*notification.Notification, error) {
	if !typ.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, typ)
	}
	if _, err := tx.User.GetUserByID(userID); err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}

	n := &notification.Notification{
		UserID:  userID,
		Type:    typ,
		Title:   title,
		Message: message,
		Link:    link,
	}
	if err := tx.Notification.CreateNotification(n); err != nil {
		return nil, err
	}
	s.log.Info().
		Uint("notification_id", n.ID).
		Uint("user_id", userID).
		Str("type", string(typ)).
		Msg("notification created")
	return n, nil
}

func (s *NotificationService) createTyped(tx *repository.Repos, userID uint, typ notification.Type, link string, vars TemplateVars) (*notification.Notification, error) {
	title, message, err := s.templates.Render(typ, vars)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, typ)
	}
	return s.create(tx, userID, typ, title, message, link)
}

// outbox collects notifications created inside a transaction so they can be
// published once it commits.
type outbox []notification.Notification

func (o *outbox) add(n *notification.Notification, err error) error {
	if err != nil {
		return err
	}
	*o = append(*o, *n)
	return nil
}
