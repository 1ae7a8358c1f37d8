package application_test

import (
	"testing"

	"github.com/komunitech/komunitech/internal/application"
	"github.com/komunitech/komunitech/internal/domain/audit"
	"github.com/komunitech/komunitech/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangePassword(t *testing.T) {
	f := newFixture(t)

	u, err := f.svc.User.Register(user.RegisterInput{
		Username: "budi",
		Email:    "budi@example.com",
		Name:     "Budi Santoso",
		Password: "rahasia123",
	})
	require.NoError(t, err)

	err = f.svc.User.ChangePassword(nil, u.ID, "salah", "baru45678")
	assert.ErrorIs(t, err, application.ErrWrongPassword)
	assert.ErrorIs(t, err, application.ErrForbidden)
	_, _, _, err = f.svc.User.Login("budi", "rahasia123")
	require.NoError(t, err, "failed change keeps the old password")

	require.NoError(t, f.svc.User.ChangePassword(nil, u.ID, "rahasia123", "baru45678"))

	_, _, _, err = f.svc.User.Login("budi", "rahasia123")
	assert.ErrorIs(t, err, application.ErrInvalidCredentials)
	_, _, _, err = f.svc.User.Login("budi", "baru45678")
	require.NoError(t, err)

	var logs []audit.AuditLog
	require.NoError(t, f.db.Where("action = ?", "change_password").Find(&logs).Error)
	require.Len(t, logs, 1)
	require.NotNil(t, logs[0].UserID)
	assert.Equal(t, u.ID, *logs[0].UserID)
	assert.Empty(t, logs[0].OldValue)
	assert.Empty(t, logs[0].NewValue)

	err = f.svc.User.ChangePassword(nil, 9999, "x", "baru45678")
	assert.ErrorIs(t, err, application.ErrUserNotFound)
}
