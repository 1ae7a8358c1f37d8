package comment

import (
	"time"

	"github.com/komunitech/komunitech/internal/domain/requirement"
	"github.com/komunitech/komunitech/internal/domain/user"
)

const (
	DeletedPlaceholder = "[Komentar ini telah dihapus]"
	hiddenPlaceholder  = "[Komentar ini disembunyikan oleh moderator]"
)

// Comment is a message on a requirement. ParentID is nil for top-level
// comments; replies always belong to the same requirement as their parent.
type Comment struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Body          string    `gorm:"type:text;not null" json:"body"`
	RequirementID uint      `gorm:"not null;index" json:"requirement_id"`
	AuthorID      uint      `gorm:"not null;index" json:"author_id"`
	ParentID      *uint     `gorm:"index" json:"parent_id,omitempty"`
	ImageURL      *string   `gorm:"size:255" json:"image_url,omitempty"`
	IsEdited      bool      `gorm:"not null;default:false" json:"is_edited"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Author      *user.User               `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
	Requirement *requirement.Requirement `gorm:"foreignKey:RequirementID;constraint:OnDelete:CASCADE" json:"-"`
	Parent      *Comment                 `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Comment) TableName() string {
	return "comments"
}

// CanEdit reports whether userID may still edit the comment at now.
func (c *Comment) CanEdit(userID uint, now time.Time, window time.Duration) bool {
	return c.AuthorID == userID && now.Sub(c.CreatedAt) < window
}

// SoftDelete replaces the content with the deletion placeholder, keeping
// the row so replies stay attached.
func (c *Comment) SoftDelete() {
	c.Body = DeletedPlaceholder
	c.ImageURL = nil
	c.IsEdited = true
}

func (c *Comment) Hide(reason string) {
	c.Body = hiddenPlaceholder
	if reason != "" {
		c.Body = "[Komentar ini disembunyikan oleh moderator: " + reason + "]"
	}
	c.ImageURL = nil
}

// Thread is a comment with its replies, oldest first.
type Thread struct {
	Comment
	Replies []Thread `json:"replies"`
}

// BuildThreads arranges comments (ordered by creation) into reply trees.
// Comments whose parent is absent from the slice are treated as roots.
func BuildThreads(comments []Comment) []Thread {
	present := make(map[uint]bool, len(comments))
	for _, c := range comments {
		present[c.ID] = true
	}
	children := make(map[uint][]Comment)
	var roots []Comment
	for _, c := range comments {
		if c.ParentID != nil && present[*c.ParentID] {
			children[*c.ParentID] = append(children[*c.ParentID], c)
			continue
		}
		roots = append(roots, c)
	}

	var build func(c Comment) Thread
	build = func(c Comment) Thread {
		t := Thread{Comment: c, Replies: []Thread{}}
		for _, child := range children[c.ID] {
			t.Replies = append(t.Replies, build(child))
		}
		return t
	}

	threads := make([]Thread, 0, len(roots))
	for _, r := range roots {
		threads = append(threads, build(r))
	}
	return threads
}

type Stats struct {
	Total            int64 `json:"total"`
	Last24h          int64 `json:"last_24h"`
	UniqueCommenters int64 `json:"unique_commenters"`
}
