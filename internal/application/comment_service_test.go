package application_test

import (
	"testing"
	"time"

	"github.com/komunitech/komunitech/internal/application"
	"github.com/komunitech/komunitech/internal/domain/comment"
	"github.com/komunitech/komunitech/internal/domain/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) comment(t *testing.T, authorID uint, parentID *uint, body string) *comment.Comment {
	t.Helper()
	c, err := f.svc.Comment.CreateComment(application.CreateCommentInput{
		Body:          body,
		RequirementID: f.world.Requirement.ID,
		AuthorID:      authorID,
		ParentID:      parentID,
	})
	require.NoError(t, err)
	return c
}

func TestCreateComment_DepthLimit(t *testing.T) {
	f := newFixture(t)
	w := f.world

	c0 := f.comment(t, w.Other.ID, nil, "level 0")
	c1 := f.comment(t, w.Owner.ID, &c0.ID, "level 1")
	c2 := f.comment(t, w.Other.ID, &c1.ID, "level 2")
	c3 := f.comment(t, w.Owner.ID, &c2.ID, "level 3")

	depth, err := f.svc.Comment.CommentDepth(c3.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, depth)

	before := f.count(t, &comment.Comment{}, "")
	_, err = f.svc.Comment.CreateComment(application.CreateCommentInput{
		Body:          "level 4",
		RequirementID: w.Requirement.ID,
		AuthorID:      w.Other.ID,
		ParentID:      &c3.ID,
	})
	assert.ErrorIs(t, err, application.ErrDepthExceeded)
	assert.Equal(t, before, f.count(t, &comment.Comment{}, ""))
}

func TestCreateComment_Validation(t *testing.T) {
	f := newFixture(t)
	w := f.world

	t.Run("empty body", func(t *testing.T) {
		_, err := f.svc.Comment.CreateComment(application.CreateCommentInput{
			Body: "   ", RequirementID: w.Requirement.ID, AuthorID: w.Other.ID,
		})
		assert.ErrorIs(t, err, application.ErrInvalidInput)
	})

	t.Run("missing requirement", func(t *testing.T) {
		_, err := f.svc.Comment.CreateComment(application.CreateCommentInput{
			Body: "halo", RequirementID: 9999, AuthorID: w.Other.ID,
		})
		assert.ErrorIs(t, err, application.ErrNotFound)
	})

	t.Run("missing parent", func(t *testing.T) {
		_, err := f.svc.Comment.CreateComment(application.CreateCommentInput{
			Body: "halo", RequirementID: w.Requirement.ID, AuthorID: w.Other.ID, ParentID: uintPtr(9999),
		})
		assert.ErrorIs(t, err, application.ErrNotFound)
	})

	t.Run("parent on another requirement", func(t *testing.T) {
		other, err := f.svc.Requirement.CreateRequirement(w.Project.ID, w.Other.ID, requirementInput(w.Category.ID))
		require.NoError(t, err)
		parent, err := f.svc.Comment.CreateComment(application.CreateCommentInput{
			Body: "di kebutuhan lain", RequirementID: other.ID, AuthorID: w.Other.ID,
		})
		require.NoError(t, err)

		_, err = f.svc.Comment.CreateComment(application.CreateCommentInput{
			Body: "balasan", RequirementID: w.Requirement.ID, AuthorID: w.Other.ID, ParentID: &parent.ID,
		})
		assert.ErrorIs(t, err, application.ErrInvalidReference)
	})
}

func TestCreateComment_Notifications(t *testing.T) {
	f := newFixture(t)
	w := f.world

	// comment by a bystander notifies the submitter only
	top := f.comment(t, w.Other.ID, nil, "setuju")
	assert.Equal(t, int64(1), f.count(t, &notification.Notification{}, "user_id = ? AND type = ?", w.Submitter.ID, notification.TypeComment))
	assert.Equal(t, 1, f.pub.count(w.Submitter.ID))

	// reply by the owner notifies the submitter and the parent author
	f.comment(t, w.Owner.ID, &top.ID, "terima kasih")
	assert.Equal(t, int64(2), f.count(t, &notification.Notification{}, "user_id = ?", w.Submitter.ID))
	assert.Equal(t, int64(1), f.count(t, &notification.Notification{}, "user_id = ?", w.Other.ID))

	// the submitter replying to their own thread notifies nobody but the parent author
	f.comment(t, w.Submitter.ID, &top.ID, "oke")
	assert.Equal(t, int64(2), f.count(t, &notification.Notification{}, "user_id = ?", w.Submitter.ID))
	assert.Equal(t, int64(2), f.count(t, &notification.Notification{}, "user_id = ?", w.Other.ID))

	// replying to yourself on a requirement you submitted is silent
	mine := f.comment(t, w.Submitter.ID, nil, "catatan")
	f.comment(t, w.Submitter.ID, &mine.ID, "tambahan")
	assert.Equal(t, int64(2), f.count(t, &notification.Notification{}, "user_id = ?", w.Submitter.ID))
}

func TestUpdateComment_EditWindow(t *testing.T) {
	f := newFixture(t)
	w := f.world

	c := f.comment(t, w.Other.ID, nil, "asli")
	require.NoError(t, f.db.Model(&comment.Comment{}).Where("id = ?", c.ID).
		UpdateColumn("created_at", f.clock.Now()).Error)

	f.clock.Advance(899 * time.Second)
	updated, err := f.svc.Comment.UpdateComment(c.ID, w.Other.ID, "diubah")
	require.NoError(t, err)
	assert.Equal(t, "diubah", updated.Body)
	assert.True(t, updated.IsEdited)

	_, err = f.svc.Comment.UpdateComment(c.ID, w.Owner.ID, "bukan milikku")
	assert.ErrorIs(t, err, application.ErrForbidden)

	f.clock.Advance(2 * time.Second)
	_, err = f.svc.Comment.UpdateComment(c.ID, w.Other.ID, "terlambat")
	assert.ErrorIs(t, err, application.ErrForbidden)

	var stored comment.Comment
	require.NoError(t, f.db.First(&stored, c.ID).Error)
	assert.Equal(t, "diubah", stored.Body)
}

func TestDeleteComment_SoftAndHard(t *testing.T) {
	f := newFixture(t)
	w := f.world

	parent := f.comment(t, w.Other.ID, nil, "induk")
	reply := f.comment(t, w.Owner.ID, &parent.ID, "balasan")
	leaf := f.comment(t, w.Other.ID, nil, "daun")

	_, err := f.svc.Comment.DeleteComment(parent.ID, w.Owner.ID, false)
	assert.ErrorIs(t, err, application.ErrForbidden)

	ok, err := f.svc.Comment.DeleteComment(parent.ID, w.Other.ID, false)
	require.NoError(t, err)
	assert.True(t, ok)

	var stored comment.Comment
	require.NoError(t, f.db.First(&stored, parent.ID).Error)
	assert.Equal(t, comment.DeletedPlaceholder, stored.Body)
	assert.Nil(t, stored.ImageURL)
	assert.True(t, stored.IsEdited)
	assert.Equal(t, int64(1), f.count(t, &comment.Comment{}, "id = ?", reply.ID))

	ok, err = f.svc.Comment.DeleteComment(leaf.ID, w.Admin.ID, true)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(0), f.count(t, &comment.Comment{}, "id = ?", leaf.ID))

	_, err = f.svc.Comment.DeleteComment(leaf.ID, w.Admin.ID, true)
	assert.ErrorIs(t, err, application.ErrNotFound)
}

func TestListComments_ThreadedAndFlat(t *testing.T) {
	f := newFixture(t)
	w := f.world

	a := f.comment(t, w.Other.ID, nil, "a")
	f.comment(t, w.Owner.ID, &a.ID, "a.1")
	b := f.comment(t, w.Owner.ID, nil, "b")
	a2 := f.comment(t, w.Submitter.ID, &a.ID, "a.2")
	f.comment(t, w.Other.ID, &a2.ID, "a.2.1")

	flat, err := f.svc.Comment.ListFlat(w.Requirement.ID)
	require.NoError(t, err)
	require.Len(t, flat, 5)
	for i := 1; i < len(flat); i++ {
		assert.False(t, flat[i].CreatedAt.Before(flat[i-1].CreatedAt))
	}

	threads, err := f.svc.Comment.ListThreads(w.Requirement.ID)
	require.NoError(t, err)
	require.Len(t, threads, 2)
	assert.Equal(t, a.ID, threads[0].ID)
	assert.Equal(t, b.ID, threads[1].ID)
	require.Len(t, threads[0].Replies, 2)
	assert.Equal(t, "a.1", threads[0].Replies[0].Body)
	require.Len(t, threads[0].Replies[1].Replies, 1)
	assert.Equal(t, "a.2.1", threads[0].Replies[1].Replies[0].Body)
	assert.Empty(t, threads[1].Replies)

	_, err = f.svc.Comment.ListThreads(9999)
	assert.ErrorIs(t, err, application.ErrNotFound)
}

func TestModerateComment(t *testing.T) {
	f := newFixture(t)
	w := f.world

	c := f.comment(t, w.Other.ID, nil, "spam")
	require.NoError(t, f.svc.Comment.ModerateComment(nil, w.Admin.ID, c.ID, application.ModerateHide, "iklan"))

	var stored comment.Comment
	require.NoError(t, f.db.First(&stored, c.ID).Error)
	assert.Contains(t, stored.Body, "iklan")
	assert.NotEqual(t, "spam", stored.Body)

	require.NoError(t, f.svc.Comment.ModerateComment(nil, w.Admin.ID, c.ID, application.ModerateDelete, "tetap spam"))
	assert.Equal(t, int64(0), f.count(t, &comment.Comment{}, "id = ?", c.ID))

	err := f.svc.Comment.ModerateComment(nil, w.Admin.ID, c.ID, "ban", "")
	assert.ErrorIs(t, err, application.ErrInvalidInput)
}

func TestCommentStats(t *testing.T) {
	f := newFixture(t)
	w := f.world

	f.comment(t, w.Other.ID, nil, "satu")
	f.comment(t, w.Other.ID, nil, "dua")
	f.comment(t, w.Owner.ID, nil, "tiga")

	stats, err := f.svc.Comment.Stats(&w.Requirement.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(3), stats.Last24h)
	assert.Equal(t, int64(2), stats.UniqueCommenters)
}
