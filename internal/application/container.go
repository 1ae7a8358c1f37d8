package application

import (
	"time"

	"github.com/komunitech/komunitech/internal/config"
	"github.com/komunitech/komunitech/internal/realtime"
	"github.com/komunitech/komunitech/internal/repository"
	"github.com/rs/zerolog"
)

type Options struct {
	Engagement config.EngagementConfig
	TokenTTL   time.Duration
	Publisher  realtime.Publisher
	Logger     zerolog.Logger
}

type Services struct {
	Audit        *AuditService
	User         *UserService
	Category     *CategoryService
	Project      *ProjectService
	Requirement  *RequirementService
	Comment      *CommentService
	Support      *SupportService
	Notification *NotificationService
	Stats        *StatsService
}

func New(repos *repository.Repos, opts Options) *Services {
	if opts.TokenTTL == 0 {
		opts.TokenTTL = 24 * time.Hour
	}
	notifier := NewNotificationService(repos, opts.Publisher, opts.Logger)
	return &Services{
		Audit:        NewAuditService(repos, opts.Logger),
		User:         NewUserService(repos, opts.TokenTTL, opts.Logger),
		Category:     NewCategoryService(repos, opts.Logger),
		Project:      NewProjectService(repos, notifier, opts.Logger),
		Requirement:  NewRequirementService(repos, notifier, opts.Logger),
		Comment:      NewCommentService(repos, opts.Engagement, notifier, opts.Logger),
		Support:      NewSupportService(repos, opts.Engagement, notifier, opts.Logger),
		Notification: notifier,
		Stats:        NewStatsService(repos, opts.Logger),
	}
}
