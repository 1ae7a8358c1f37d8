package comment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func uintPtr(v uint) *uint { return &v }

func TestCanEdit(t *testing.T) {
	created := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	c := Comment{ID: 1, AuthorID: 7, CreatedAt: created}
	window := 900 * time.Second

	assert.True(t, c.CanEdit(7, created.Add(899*time.Second), window))
	assert.False(t, c.CanEdit(7, created.Add(900*time.Second), window))
	assert.False(t, c.CanEdit(7, created.Add(901*time.Second), window))
	assert.False(t, c.CanEdit(8, created.Add(time.Second), window))
}

func TestSoftDeleteAndHide(t *testing.T) {
	img := "http://img/x.png"
	c := Comment{Body: "hello", ImageURL: &img}
	c.SoftDelete()
	assert.Equal(t, DeletedPlaceholder, c.Body)
	assert.Nil(t, c.ImageURL)
	assert.True(t, c.IsEdited)

	h := Comment{Body: "spam", ImageURL: &img}
	h.Hide("iklan")
	assert.Equal(t, "[Komentar ini disembunyikan oleh moderator: iklan]", h.Body)
	assert.Nil(t, h.ImageURL)

	h.Hide("")
	assert.Equal(t, "[Komentar ini disembunyikan oleh moderator]", h.Body)
}

func TestBuildThreads(t *testing.T) {
	comments := []Comment{
		{ID: 1},
		{ID: 2, ParentID: uintPtr(1)},
		{ID: 3},
		{ID: 4, ParentID: uintPtr(2)},
		{ID: 5, ParentID: uintPtr(1)},
	}

	threads := BuildThreads(comments)
	if assert.Len(t, threads, 2) {
		assert.Equal(t, uint(1), threads[0].ID)
		assert.Equal(t, uint(3), threads[1].ID)
		assert.Empty(t, threads[1].Replies)

		replies := threads[0].Replies
		if assert.Len(t, replies, 2) {
			assert.Equal(t, uint(2), replies[0].ID)
			assert.Equal(t, uint(5), replies[1].ID)
			if assert.Len(t, replies[0].Replies, 1) {
				assert.Equal(t, uint(4), replies[0].Replies[0].ID)
			}
		}
	}

	assert.Empty(t, BuildThreads(nil))
}
