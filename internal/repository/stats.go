package repository

import (
	"time"

	"github.com/komunitech/komunitech/internal/domain/comment"
	"github.com/komunitech/komunitech/internal/domain/notification"
	"github.com/komunitech/komunitech/internal/domain/project"
	"github.com/komunitech/komunitech/internal/domain/requirement"
	"github.com/komunitech/komunitech/internal/domain/stats"
	"github.com/komunitech/komunitech/internal/domain/support"
	"github.com/komunitech/komunitech/internal/domain/user"
	"gorm.io/gorm"
)

// CreatedTimes are the creation timestamps of rows inserted since a cutoff,
// per table, for bucketing into a daily series.
type CreatedTimes struct {
	Users        []time.Time
	Requirements []time.Time
	Comments     []time.Time
	Supports     []time.Time
}

type StatsRepo interface {
	Totals() (stats.Totals, error)
	RequirementsByStatus() (map[string]int64, error)
	CreatedSince(since time.Time) (CreatedTimes, error)
	UserStats(userID uint) (stats.UserStats, error)
	WithTx(tx *gorm.DB) StatsRepo
}

type DBStatsRepo struct {
	db *gorm.DB
}

func NewStatsRepo(db *gorm.DB) *DBStatsRepo {
	return &DBStatsRepo{db: db}
}

type countQuery struct {
	model interface{}
	where string
	args  []interface{}
	dest  *int64
}

func (r *DBStatsRepo) count(queries ...countQuery) error {
	for _, q := range queries {
		query := r.db.Model(q.model)
		if q.where != "" {
			query = query.Where(q.where, q.args...)
		}
		if err := query.Count(q.dest).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *DBStatsRepo) Totals() (stats.Totals, error) {
	var t stats.Totals
	err := r.count(
		countQuery{model: &user.User{}, dest: &t.Users},
		countQuery{model: &user.User{}, where: "is_active = ?", args: []interface{}{true}, dest: &t.ActiveUsers},
		countQuery{model: &project.Project{}, dest: &t.Projects},
		countQuery{model: &project.Project{}, where: "status = ?", args: []interface{}{project.StatusActive}, dest: &t.ActiveProjects},
		countQuery{model: &requirement.Requirement{}, dest: &t.Requirements},
		countQuery{model: &requirement.Requirement{}, where: "status = ?", args: []interface{}{requirement.StatusDone}, dest: &t.CompletedRequirements},
		countQuery{model: &comment.Comment{}, dest: &t.Comments},
		countQuery{model: &support.Support{}, dest: &t.Supports},
	)
	return t, err
}

func (r *DBStatsRepo) RequirementsByStatus() (map[string]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := r.db.Model(&requirement.Requirement{}).
		Select("status, COUNT(*) AS count").Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}

func (r *DBStatsRepo) CreatedSince(since time.Time) (CreatedTimes, error) {
	var ct CreatedTimes
	plucks := []struct {
		model interface{}
		dest  *[]time.Time
	}{
		{&user.User{}, &ct.Users},
		{&requirement.Requirement{}, &ct.Requirements},
		{&comment.Comment{}, &ct.Comments},
		{&support.Support{}, &ct.Supports},
	}
	for _, p := range plucks {
		if err := r.db.Model(p.model).Where("created_at >= ?", since).Pluck("created_at", p.dest).Error; err != nil {
			return ct, err
		}
	}
	return ct, nil
}

func (r *DBStatsRepo) UserStats(userID uint) (stats.UserStats, error) {
	var s stats.UserStats
	err := r.count(
		countQuery{model: &project.Project{}, where: "owner_id = ?", args: []interface{}{userID}, dest: &s.Projects},
		countQuery{model: &requirement.Requirement{}, where: "submitter_id = ?", args: []interface{}{userID}, dest: &s.Requirements},
		countQuery{model: &requirement.Requirement{}, where: "submitter_id = ? AND status = ?", args: []interface{}{userID, requirement.StatusDone}, dest: &s.CompletedRequirements},
		countQuery{model: &comment.Comment{}, where: "author_id = ?", args: []interface{}{userID}, dest: &s.Comments},
		countQuery{model: &support.Support{}, where: "user_id = ?", args: []interface{}{userID}, dest: &s.SupportsGiven},
		countQuery{model: &notification.Notification{}, where: "user_id = ? AND is_read = ?", args: []interface{}{userID, false}, dest: &s.UnreadNotifications},
	)
	if err != nil {
		return s, err
	}
	err = r.db.Model(&support.Support{}).
		Joins("JOIN requirements ON requirements.id = supports.requirement_id").
		Where("requirements.submitter_id = ?", userID).
		Count(&s.SupportsReceived).Error
	return s, err
}

func (r *DBStatsRepo) WithTx(tx *gorm.DB) StatsRepo {
	if tx == nil {
		return r
	}
	return &DBStatsRepo{db: tx}
}
