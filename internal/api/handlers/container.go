package handlers

import (
	"github.com/komunitech/komunitech/internal/application"
)

type Handlers struct {
	Audit        *AuditHandler
	User         *UserHandler
	Category     *CategoryHandler
	Project      *ProjectHandler
	Requirement  *RequirementHandler
	Comment      *CommentHandler
	Support      *SupportHandler
	Notification *NotificationHandler
	Stats        *StatsHandler
	Upload       *UploadHandler
	Stream       *NotificationStreamHandler
}

// New builds every handler. store may be nil when object storage is not
// configured; uploads then answer 503.
func New(svc *application.Services, store ImageUploader, hub Subscriber) *Handlers {
	return &Handlers{
		Audit:        NewAuditHandler(svc.Audit),
		User:         NewUserHandler(svc.User),
		Category:     NewCategoryHandler(svc.Category),
		Project:      NewProjectHandler(svc.Project),
		Requirement:  NewRequirementHandler(svc.Requirement),
		Comment:      NewCommentHandler(svc.Comment),
		Support:      NewSupportHandler(svc.Support),
		Notification: NewNotificationHandler(svc.Notification),
		Stats:        NewStatsHandler(svc.Stats),
		Upload:       NewUploadHandler(store),
		Stream:       NewNotificationStreamHandler(hub),
	}
}
