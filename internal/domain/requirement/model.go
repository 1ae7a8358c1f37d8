package requirement

import (
	"time"

	"github.com/komunitech/komunitech/internal/domain/category"
	"github.com/komunitech/komunitech/internal/domain/project"
	"github.com/komunitech/komunitech/internal/domain/user"
)

type Status string

const (
	StatusSubmitted  Status = "Submitted"
	StatusInProgress Status = "InProgress"
	StatusDone       Status = "Done"
	StatusRejected   Status = "Rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusSubmitted, StatusInProgress, StatusDone, StatusRejected:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Requirement is a need submitted by a community member against a project.
// SupportCount and CommentCount are never stored; repositories fill them
// from count(*) subqueries.
type Requirement struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:140;not null" json:"title"`
	Description string     `gorm:"type:text;not null" json:"description"`
	ProjectID   uint       `gorm:"not null;index" json:"project_id"`
	SubmitterID uint       `gorm:"not null;index" json:"submitter_id"`
	CategoryID  uint       `gorm:"not null;index" json:"category_id"`
	Status      Status     `gorm:"size:20;not null;default:Submitted;index" json:"status"`
	Priority    Priority   `gorm:"size:20;not null;default:Medium" json:"priority"`
	ImageURL    *string    `gorm:"size:255" json:"image_url,omitempty"`
	ViewCount   int        `gorm:"not null;default:0" json:"view_count"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
	ProcessedBy *uint      `json:"processed_by,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	SupportCount int64 `gorm:"->;-:migration" json:"support_count"`
	CommentCount int64 `gorm:"->;-:migration" json:"comment_count"`

	Project   *project.Project   `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"project,omitempty"`
	Submitter *user.User         `gorm:"foreignKey:SubmitterID;constraint:OnDelete:CASCADE" json:"submitter,omitempty"`
	Category  *category.Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT" json:"category,omitempty"`
}

func (Requirement) TableName() string {
	return "requirements"
}

// ApplyStatus moves the requirement to status and stamps the processing
// timestamps the transition implies.
func (r *Requirement) ApplyStatus(status Status, actorID uint, now time.Time) {
	if status == StatusInProgress && r.Status == StatusSubmitted {
		r.ProcessedAt = &now
		r.ProcessedBy = &actorID
	}
	if status == StatusDone && r.CompletedAt == nil {
		r.CompletedAt = &now
	}
	r.Status = status
}
