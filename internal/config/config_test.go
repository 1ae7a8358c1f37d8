package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigEngagementOverrides(t *testing.T) {
	t.Setenv("MAX_COMMENT_DEPTH", "5")
	t.Setenv("COMMENT_EDIT_WINDOW", "600")
	t.Setenv("MILESTONE_THRESHOLD", "25")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test,")

	LoadConfig()

	assert.Equal(t, EngagementConfig{
		MaxCommentDepth:    5,
		CommentEditWindow:  10 * time.Minute,
		MilestoneThreshold: 25,
	}, Engagement())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, AllowedOrigins)
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("COMMENT_EDIT_WINDOW", "not-a-duration")
	LoadConfig()

	assert.Equal(t, 900*time.Second, CommentEditWindow)
	assert.Equal(t, 30, NotificationRetentionDays)
	assert.Equal(t, 365, AuditRetentionDays)
}
