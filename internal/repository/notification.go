package repository

import (
	"time"

	"github.com/komunitech/komunitech/internal/domain/notification"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NotificationQueryParams struct {
	UserID     uint
	UnreadOnly bool
	Page       Page
}

type NotificationRepo interface {
	CreateNotification(n *notification.Notification) error
	CreateNotifications(ns []notification.Notification) error
	GetNotificationByID(id uint) (notification.Notification, error)
	MarkRead(id, userID uint) (int64, error)
	MarkAllRead(userID uint) (int64, error)
	ListNotifications(params NotificationQueryParams) ([]notification.Notification, int64, error)
	CountUnread(userID uint) (int64, error)
	DeleteNotification(id, userID uint) (int64, error)
	DeleteOlderThan(cutoff time.Time) (int64, error)
	GetNotificationStats(userID *uint) (notification.Stats, error)
	WithTx(tx *gorm.DB) NotificationRepo
}

type DBNotificationRepo struct {
	db *gorm.DB
}

func NewNotificationRepo(db *gorm.DB) *DBNotificationRepo {
	return &DBNotificationRepo{
		db: db,
	}
}

func (r *DBNotificationRepo) CreateNotification(n *notification.Notification) error {
	return r.db.Omit(clause.Associations).Create(n).Error
}

func (r *DBNotificationRepo) CreateNotifications(ns []notification.Notification) error {
	if len(ns) == 0 {
		return nil
	}
	return r.db.Omit(clause.Associations).Create(&ns).Error
}

func (r *DBNotificationRepo) GetNotificationByID(id uint) (notification.Notification, error) {
	var n notification.Notification
	err := r.db.First(&n, id).Error
	return n, err
}

// MarkRead flips one notification owned by userID. Already-read rows count
// as affected so the call is idempotent.
func (r *DBNotificationRepo) MarkRead(id, userID uint) (int64, error) {
	res := r.db.Model(&notification.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		UpdateColumn("is_read", true)
	return res.RowsAffected, res.Error
}

func (r *DBNotificationRepo) MarkAllRead(userID uint) (int64, error) {
	res := r.db.Model(&notification.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		UpdateColumn("is_read", true)
	return res.RowsAffected, res.Error
}

func (r *DBNotificationRepo) ListNotifications(params NotificationQueryParams) ([]notification.Notification, int64, error) {
	var (
		ns    []notification.Notification
		total int64
	)
	query := r.db.Model(&notification.Notification{}).Where("user_id = ?", params.UserID)
	if params.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at DESC").Order("id DESC").
		Limit(params.Page.Limit()).Offset(params.Page.Offset()).
		Find(&ns).Error
	return ns, total, err
}

func (r *DBNotificationRepo) CountUnread(userID uint) (int64, error) {
	var n int64
	err := r.db.Model(&notification.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&n).Error
	return n, err
}

func (r *DBNotificationRepo) DeleteNotification(id, userID uint) (int64, error) {
	res := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&notification.Notification{})
	return res.RowsAffected, res.Error
}

func (r *DBNotificationRepo) DeleteOlderThan(cutoff time.Time) (int64, error) {
	res := r.db.Where("created_at < ?", cutoff).Delete(&notification.Notification{})
	return res.RowsAffected, res.Error
}

func (r *DBNotificationRepo) GetNotificationStats(userID *uint) (notification.Stats, error) {
	stats := notification.Stats{ByType: map[notification.Type]int64{}}
	base := r.db.Model(&notification.Notification{})
	if userID != nil {
		base = base.Where("user_id = ?", *userID)
	}
	base = base.Session(&gorm.Session{})

	if err := base.Count(&stats.Total).Error; err != nil {
		return stats, err
	}
	if err := base.Where("is_read = ?", false).Count(&stats.Unread).Error; err != nil {
		return stats, err
	}

	var rows []struct {
		Type  notification.Type
		Count int64
	}
	if err := base.Select("type, COUNT(*) AS count").Group("type").Scan(&rows).Error; err != nil {
		return stats, err
	}
	for _, row := range rows {
		stats.ByType[row.Type] = row.Count
	}
	return stats, nil
}

func (r *DBNotificationRepo) WithTx(tx *gorm.DB) NotificationRepo {
	if tx == nil {
		return r
	}
	return &DBNotificationRepo{
		db: tx,
	}
}
