package user

import "time"

type Role string

const (
	RoleRegular   Role = "Regular"
	RoleAdmin     Role = "Admin"
	RoleDeveloper Role = "Developer"
)

func (r Role) Valid() bool {
	switch r {
	case RoleRegular, RoleAdmin, RoleDeveloper:
		return true
	}
	return false
}

// User is a registered community member.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:64;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:120;uniqueIndex;not null" json:"email"`
	Name         string    `gorm:"size:120;not null" json:"name"`
	PasswordHash string    `gorm:"size:200;not null" json:"-"`
	Role         Role      `gorm:"size:20;not null;default:Regular" json:"role"`
	Bio          string    `gorm:"type:text" json:"bio,omitempty"`
	AvatarURL    *string   `gorm:"size:255" json:"avatar_url,omitempty"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	LastSeen     time.Time `gorm:"autoCreateTime" json:"last_seen"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
