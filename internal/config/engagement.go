package config

import "time"

// EngagementConfig carries the tunables of the comment, support and
// notification services. It is passed explicitly at construction.
type EngagementConfig struct {
	MaxCommentDepth    int
	CommentEditWindow  time.Duration
	MilestoneThreshold int
}

func DefaultEngagement() EngagementConfig {
	return EngagementConfig{
		MaxCommentDepth:    3,
		CommentEditWindow:  900 * time.Second,
		MilestoneThreshold: 10,
	}
}

// Engagement returns the values read by LoadConfig.
func Engagement() EngagementConfig {
	return EngagementConfig{
		MaxCommentDepth:    MaxCommentDepth,
		CommentEditWindow:  CommentEditWindow,
		MilestoneThreshold: MilestoneThreshold,
	}
}
