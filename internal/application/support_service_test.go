package application_test

import (
	"fmt"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/komunitech/komunitech/internal/application"
	"github.com/komunitech/komunitech/internal/config"
	"github.com/komunitech/komunitech/internal/domain/notification"
	"github.com/komunitech/komunitech/internal/domain/requirement"
	"github.com/komunitech/komunitech/internal/domain/support"
	"github.com/komunitech/komunitech/internal/domain/user"
	"github.com/komunitech/komunitech/internal/repository"
	"github.com/komunitech/komunitech/internal/repository/mock"
	"github.com/komunitech/komunitech/internal/testutils"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleSupport_RoundTrip(t *testing.T) {
	f := newFixture(t)
	w := f.world

	res, err := f.svc.Support.ToggleSupport(w.Requirement.ID, w.Other.ID)
	require.NoError(t, err)
	assert.Equal(t, support.ActionSupported, res.Action)
	assert.Equal(t, int64(1), res.SupportCount)

	has, err := f.svc.Support.HasSupported(w.Other.ID, w.Requirement.ID)
	require.NoError(t, err)
	assert.True(t, has)

	res, err = f.svc.Support.ToggleSupport(w.Requirement.ID, w.Other.ID)
	require.NoError(t, err)
	assert.Equal(t, support.ActionUnsupported, res.Action)
	assert.Equal(t, int64(0), res.SupportCount)

	has, err = f.svc.Support.HasSupported(w.Other.ID, w.Requirement.ID)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestCreateSupport_Rules(t *testing.T) {
	f := newFixture(t)
	w := f.world

	_, err := f.svc.Support.CreateSupport(w.Requirement.ID, w.Submitter.ID)
	assert.ErrorIs(t, err, application.ErrSelfSupport)
	assert.Equal(t, int64(0), f.count(t, &support.Support{}, ""))

	_, err = f.svc.Support.CreateSupport(9999, w.Other.ID)
	assert.ErrorIs(t, err, application.ErrNotFound)

	_, err = f.svc.Support.CreateSupport(w.Requirement.ID, w.Other.ID)
	require.NoError(t, err)
	_, err = f.svc.Support.CreateSupport(w.Requirement.ID, w.Other.ID)
	assert.ErrorIs(t, err, application.ErrAlreadySupported)
	assert.Equal(t, int64(1), f.count(t, &support.Support{}, ""))

	// the submitter heard about the single successful vote
	assert.Equal(t, int64(1), f.count(t, &notification.Notification{}, "user_id = ? AND type = ?", w.Submitter.ID, notification.TypeSupport))

	require.NoError(t, f.svc.Support.RemoveSupport(w.Requirement.ID, w.Other.ID))
	err = f.svc.Support.RemoveSupport(w.Requirement.ID, w.Other.ID)
	assert.ErrorIs(t, err, application.ErrNotFound)
}

func TestCreateSupport_Milestone(t *testing.T) {
	f := newFixture(t)
	w := f.world

	for i := 0; i < 10; i++ {
		u := testutils.CreateUser(t, f.db, fmt.Sprintf("warga%d", i), user.RoleRegular)
		_, err := f.svc.Support.CreateSupport(w.Requirement.ID, u.ID)
		require.NoError(t, err)

		milestones := f.count(t, &notification.Notification{}, "user_id = ? AND type = ?", w.Owner.ID, notification.TypeMilestone)
		if i < 9 {
			assert.Equal(t, int64(0), milestones, "no milestone at %d supports", i+1)
		} else {
			assert.Equal(t, int64(1), milestones)
		}
	}

	var n notification.Notification
	require.NoError(t, f.db.Where("user_id = ? AND type = ?", w.Owner.ID, notification.TypeMilestone).First(&n).Error)
	assert.Contains(t, n.Message, "10 dukungan")
	assert.Equal(t, fmt.Sprintf("/requirements/%d", w.Requirement.ID), n.Link)
}

func TestSupportCounter_MatchesRows(t *testing.T) {
	f := newFixture(t)
	w := f.world

	for _, u := range []user.User{w.Other, w.Owner, w.Admin} {
		_, err := f.svc.Support.CreateSupport(w.Requirement.ID, u.ID)
		require.NoError(t, err)
	}
	require.NoError(t, f.svc.Support.RemoveSupport(w.Requirement.ID, w.Owner.ID))

	r, err := f.svc.Requirement.GetRequirement(w.Requirement.ID)
	require.NoError(t, err)
	assert.Equal(t, f.count(t, &support.Support{}, "requirement_id = ?", w.Requirement.ID), r.SupportCount)
	assert.Equal(t, int64(2), r.SupportCount)

	n, err := f.svc.Support.SupportCount(w.Requirement.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	supporters, total, err := f.svc.Support.ListSupporters(w.Requirement.ID, repository.Page{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, supporters, 2)
}

// A concurrent vote can slip past the existence check and lose the race
// for the unique index; the service must still report AlreadySupported.
func TestCreateSupport_DuplicateRace(t *testing.T) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockReq := mock.NewMockRequirementRepo(ctrl)
	mockSupport := mock.NewMockSupportRepo(ctrl)
	mockUser := mock.NewMockUserRepo(ctrl)
	mockNotif := mock.NewMockNotificationRepo(ctrl)

	repos := &repository.Repos{
		Requirement:  mockReq,
		Support:      mockSupport,
		User:         mockUser,
		Notification: mockNotif,
	}
	notifier := application.NewNotificationService(repos, nil, zerolog.Nop())
	svc := application.NewSupportService(repos, config.DefaultEngagement(), notifier, zerolog.Nop())

	mockReq.EXPECT().GetRequirementByID(uint(7)).
		Return(requirement.Requirement{ID: 7, SubmitterID: 1, ProjectID: 3}, nil)
	mockSupport.EXPECT().Exists(uint(2), uint(7)).Return(false, nil)
	mockUser.EXPECT().GetUserByID(uint(2)).Return(user.User{ID: 2, Name: "Budi"}, nil)
	mockSupport.EXPECT().CreateSupport(gomock.Any()).Return(fmt.Errorf("insert: %w", repository.ErrDuplicate))
	mockNotif.EXPECT().CreateNotification(gomock.Any()).Times(0)

	_, err := svc.CreateSupport(7, 2)
	assert.ErrorIs(t, err, application.ErrAlreadySupported)
}
