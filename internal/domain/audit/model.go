package audit

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog is an append-only record of an administrative or state-changing
// action. Rows are never updated; they are only purged by age.
type AuditLog struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      *uint          `gorm:"index" json:"user_id,omitempty"`
	Action      string         `gorm:"size:100;not null;index" json:"action"`
	EntityType  string         `gorm:"size:50;index" json:"entity_type,omitempty"`
	EntityID    *uint          `json:"entity_id,omitempty"`
	OldValue    datatypes.JSON `json:"old_value,omitempty" swaggertype:"object"`
	NewValue    datatypes.JSON `json:"new_value,omitempty" swaggertype:"object"`
	IPAddress   string         `gorm:"size:50" json:"ip_address,omitempty"`
	UserAgent   string         `gorm:"size:200" json:"user_agent,omitempty"`
	RequestID   string         `gorm:"size:36" json:"request_id,omitempty"`
	Description string         `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
