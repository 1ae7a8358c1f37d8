package application_test

import (
	"testing"
	"time"

	"github.com/komunitech/komunitech/internal/application"
	"github.com/komunitech/komunitech/internal/domain/comment"
	"github.com/komunitech/komunitech/internal/domain/notification"
	"github.com/komunitech/komunitech/internal/domain/requirement"
	"github.com/komunitech/komunitech/internal/domain/support"
	"github.com/komunitech/komunitech/internal/domain/user"
	"github.com/komunitech/komunitech/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedActivity pins every row to the fake clock, then adds a done
// requirement, two comments and one support from Other.
func seedActivity(t *testing.T, f *fixture) {
	t.Helper()
	w := f.world
	now := f.clock.Now()

	done := testutils.CreateRequirement(t, f.db, w.Project.ID, w.Submitter.ID, w.Category.ID)
	require.NoError(t, f.db.Model(&requirement.Requirement{}).Where("id = ?", done.ID).
		UpdateColumn("status", requirement.StatusDone).Error)

	f.comment(t, w.Other.ID, nil, "Setuju, perlu segera")
	old := f.comment(t, w.Other.ID, nil, "Sudah lama rusak")
	_, err := f.svc.Support.CreateSupport(w.Requirement.ID, w.Other.ID)
	require.NoError(t, err)

	for _, model := range []interface{}{&user.User{}, &requirement.Requirement{}, &comment.Comment{}, &support.Support{}} {
		require.NoError(t, f.db.Model(model).Where("1 = 1").UpdateColumn("created_at", now).Error)
	}
	require.NoError(t, f.db.Model(&user.User{}).Where("id = ?", w.Other.ID).
		UpdateColumns(map[string]interface{}{"created_at": now.AddDate(0, 0, -2), "is_active": false}).Error)
	require.NoError(t, f.db.Model(&comment.Comment{}).Where("id = ?", old.ID).
		UpdateColumn("created_at", now.AddDate(0, 0, -40)).Error)
}

func TestDashboard(t *testing.T) {
	f := newFixture(t)
	seedActivity(t, f)

	d, err := f.svc.Stats.Dashboard(7)
	require.NoError(t, err)

	assert.Equal(t, int64(4), d.Users)
	assert.Equal(t, int64(3), d.ActiveUsers)
	assert.Equal(t, int64(1), d.Projects)
	assert.Equal(t, int64(1), d.ActiveProjects)
	assert.Equal(t, int64(2), d.Requirements)
	assert.Equal(t, int64(1), d.CompletedRequirements)
	assert.Equal(t, int64(2), d.Comments)
	assert.Equal(t, int64(1), d.Supports)
	assert.Equal(t, map[string]int64{"Submitted": 1, "Done": 1}, d.RequirementsByStatus)

	require.Len(t, d.Daily, 7)
	now := f.clock.Now().UTC()
	today := d.Daily[6]
	assert.Equal(t, now.Format(time.DateOnly), today.Day)
	assert.Equal(t, now.AddDate(0, 0, -6).Format(time.DateOnly), d.Daily[0].Day)
	assert.Equal(t, int64(3), today.Users)
	assert.Equal(t, int64(2), today.Requirements)
	assert.Equal(t, int64(1), today.Comments)
	assert.Equal(t, int64(1), today.Supports)
	assert.Equal(t, int64(1), d.Daily[4].Users)

	var comments int64
	for _, day := range d.Daily {
		comments += day.Comments
	}
	assert.Equal(t, int64(1), comments, "comment older than the window stays out of the series")
}

func TestDashboard_DayBounds(t *testing.T) {
	f := newFixture(t)

	d, err := f.svc.Stats.Dashboard(0)
	require.NoError(t, err)
	assert.Len(t, d.Daily, application.DefaultStatsDays)

	d, err = f.svc.Stats.Dashboard(5000)
	require.NoError(t, err)
	assert.Len(t, d.Daily, application.MaxStatsDays)
}

func TestUserStats(t *testing.T) {
	f := newFixture(t)
	w := f.world
	seedActivity(t, f)

	s, err := f.svc.Stats.UserStats(w.Submitter.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), s.Projects)
	assert.Equal(t, int64(2), s.Requirements)
	assert.Equal(t, int64(1), s.CompletedRequirements)
	assert.Equal(t, int64(0), s.SupportsGiven)
	assert.Equal(t, int64(1), s.SupportsReceived)
	assert.Equal(t, f.count(t, &notification.Notification{}, "user_id = ? AND is_read = ?", w.Submitter.ID, false),
		s.UnreadNotifications)

	s, err = f.svc.Stats.UserStats(w.Other.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), s.Comments)
	assert.Equal(t, int64(1), s.SupportsGiven)
	assert.Equal(t, int64(0), s.SupportsReceived)

	s, err = f.svc.Stats.UserStats(w.Owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), s.Projects)

	_, err = f.svc.Stats.UserStats(9999)
	assert.ErrorIs(t, err, application.ErrUserNotFound)
}
