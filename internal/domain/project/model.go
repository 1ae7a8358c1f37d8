package project

import (
	"time"

	"github.com/komunitech/komunitech/internal/domain/category"
	"github.com/komunitech/komunitech/internal/domain/user"
)

type Status string

const (
	StatusActive    Status = "Active"
	StatusCompleted Status = "Completed"
	StatusClosed    Status = "Closed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusCompleted, StatusClosed:
		return true
	}
	return false
}

// Project groups the requirements the community submits for one initiative.
type Project struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:140;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	OwnerID     uint      `gorm:"not null;index" json:"owner_id"`
	CategoryID  uint      `gorm:"not null;index" json:"category_id"`
	Status      Status    `gorm:"size:20;not null;default:Active;index" json:"status"`
	ImageURL    *string   `gorm:"size:255" json:"image_url,omitempty"`
	ViewCount   int       `gorm:"not null;default:0" json:"view_count"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Owner    *user.User         `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"owner,omitempty"`
	Category *category.Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT" json:"category,omitempty"`
}

func (Project) TableName() string {
	return "projects"
}

// AcceptsRequirements reports whether new requirements may be filed.
func (p *Project) AcceptsRequirements() bool {
	return p.Status == StatusActive
}

type CollaboratorRole string

const (
	RoleContributor CollaboratorRole = "Contributor"
	RoleModerator   CollaboratorRole = "Moderator"
)

func (r CollaboratorRole) Valid() bool {
	return r == RoleContributor || r == RoleModerator
}

type Collaborator struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	ProjectID uint             `gorm:"not null;uniqueIndex:idx_project_collaborator" json:"project_id"`
	UserID    uint             `gorm:"not null;uniqueIndex:idx_project_collaborator;index" json:"user_id"`
	Role      CollaboratorRole `gorm:"size:20;not null;default:Contributor" json:"role"`
	AddedBy   *uint            `json:"added_by,omitempty"`
	AddedAt   time.Time        `gorm:"autoCreateTime" json:"added_at"`

	Project *Project   `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"-"`
	User    *user.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

func (Collaborator) TableName() string {
	return "project_collaborators"
}

// Stats summarises a project's requirements.
type Stats struct {
	ProjectID         uint    `json:"project_id"`
	RequirementCount  int64   `json:"requirement_count"`
	DoneCount         int64   `json:"done_count"`
	SupportCount      int64   `json:"support_count"`
	CommentCount      int64   `json:"comment_count"`
	CompletionPercent float64 `json:"completion_percent"`
}
