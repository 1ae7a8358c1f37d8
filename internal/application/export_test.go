package application

import "time"

// SetClock replaces the time source of every service that reads one.
func (s *Services) SetClock(now func() time.Time) {
	s.Audit.now = now
	s.Comment.now = now
	s.Requirement.now = now
	s.Notification.now = now
	s.Stats.now = now
}
