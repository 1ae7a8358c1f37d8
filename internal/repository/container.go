package repository

//go:generate mockgen -source=audit.go -destination=mock/audit_mock.go -package=mock
//go:generate mockgen -source=category.go -destination=mock/category_mock.go -package=mock
//go:generate mockgen -source=comment.go -destination=mock/comment_mock.go -package=mock
//go:generate mockgen -source=notification.go -destination=mock/notification_mock.go -package=mock
//go:generate mockgen -source=project.go -destination=mock/project_mock.go -package=mock
//go:generate mockgen -source=requirement.go -destination=mock/requirement_mock.go -package=mock
//go:generate mockgen -source=stats.go -destination=mock/stats_mock.go -package=mock
//go:generate mockgen -source=support.go -destination=mock/support_mock.go -package=mock
//go:generate mockgen -source=user.go -destination=mock/user_mock.go -package=mock

import (
	"gorm.io/gorm"
)

type Repos struct {
	User         UserRepo
	Category     CategoryRepo
	Project      ProjectRepo
	Requirement  RequirementRepo
	Comment      CommentRepo
	Support      SupportRepo
	Notification NotificationRepo
	Audit        AuditRepo
	Stats        StatsRepo

	db *gorm.DB
}

func NewRepositories(db *gorm.DB) *Repos {
	return &Repos{
		User:         NewUserRepo(db),
		Category:     NewCategoryRepo(db),
		Project:      NewProjectRepo(db),
		Requirement:  NewRequirementRepo(db),
		Comment:      NewCommentRepo(db),
		Support:      NewSupportRepo(db),
		Notification: NewNotificationRepo(db),
		Audit:        NewAuditRepo(db),
		Stats:        NewStatsRepo(db),
		db:           db,
	}
}

func (r *Repos) Begin() *gorm.DB {
	return r.db.Begin()
}

func (r *Repos) WithTx(tx *gorm.DB) *Repos {
	return &Repos{
		User:         r.User.WithTx(tx),
		Category:     r.Category.WithTx(tx),
		Project:      r.Project.WithTx(tx),
		Requirement:  r.Requirement.WithTx(tx),
		Comment:      r.Comment.WithTx(tx),
		Support:      r.Support.WithTx(tx),
		Notification: r.Notification.WithTx(tx),
		Audit:        r.Audit.WithTx(tx),
		Stats:        r.Stats.WithTx(tx),
		db:           tx,
	}
}

// ExecTx runs fn inside a transaction; any returned error rolls back every
// write fn made. Repos assembled without a database (mock-backed tests) run
// fn directly.
func (r *Repos) ExecTx(fn func(*Repos) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}
