package support

import (
	"time"

	"github.com/komunitech/komunitech/internal/domain/requirement"
	"github.com/komunitech/komunitech/internal/domain/user"
)

// Support is one user's vote for a requirement. The unique index on
// (user_id, requirement_id) is what guarantees at most one vote per pair.
type Support struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;uniqueIndex:idx_support_user_requirement" json:"user_id"`
	RequirementID uint      `gorm:"not null;uniqueIndex:idx_support_user_requirement;index" json:"requirement_id"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`

	User        *user.User               `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Requirement *requirement.Requirement `gorm:"foreignKey:RequirementID;constraint:OnDelete:CASCADE" json:"requirement,omitempty"`
}

func (Support) TableName() string {
	return "supports"
}

const (
	ActionSupported   = "supported"
	ActionUnsupported = "unsupported"
)

// ToggleResult reports what a toggle did and the count afterwards.
type ToggleResult struct {
	Action       string `json:"action"`
	SupportCount int64  `json:"support_count"`
}
