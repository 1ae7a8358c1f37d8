package notification

import (
	"time"

	"github.com/komunitech/komunitech/internal/domain/user"
)

type Type string

const (
	TypeComment        Type = "comment"
	TypeSupport        Type = "support"
	TypeStatusChange   Type = "status_change"
	TypeNewRequirement Type = "new_kebutuhan"
	TypeMilestone      Type = "milestone"
	TypeProjectUpdate  Type = "project_update"
)

func (t Type) Valid() bool {
	switch t {
	case TypeComment, TypeSupport, TypeStatusChange, TypeNewRequirement, TypeMilestone, TypeProjectUpdate:
		return true
	}
	return false
}

type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Type      Type      `gorm:"size:50;not null" json:"type"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Message   string    `gorm:"type:text" json:"message,omitempty"`
	Link      string    `gorm:"size:200" json:"link,omitempty"`
	IsRead    bool      `gorm:"not null;default:false;index" json:"is_read"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	User *user.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Notification) TableName() string {
	return "notifications"
}

type Stats struct {
	Total  int64          `json:"total"`
	Unread int64          `json:"unread"`
	ByType map[Type]int64 `json:"by_type"`
}
