package application_test

import (
	"testing"

	"github.com/komunitech/komunitech/internal/domain/audit"
	"github.com/komunitech/komunitech/internal/domain/category"
	"github.com/komunitech/komunitech/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditQueryAndPurge(t *testing.T) {
	f := newFixture(t)
	w := f.world

	_, err := f.svc.Category.CreateCategory(nil, w.Admin.ID, category.CreateCategoryDTO{Name: "Pendidikan"})
	require.NoError(t, err)
	_, err = f.svc.Category.CreateCategory(nil, w.Admin.ID, category.CreateCategoryDTO{Name: "Lingkungan"})
	require.NoError(t, err)

	action := "category"
	logs, total, err := f.svc.Audit.QueryAuditLogs(repository.AuditQueryParams{
		UserID: &w.Admin.ID,
		Action: &action,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, logs, 2)
	assert.True(t, logs[0].ID > logs[1].ID)
	assert.NotEmpty(t, logs[0].NewValue)

	require.NoError(t, f.db.Model(&audit.AuditLog{}).Where("id = ?", logs[1].ID).
		UpdateColumn("created_at", f.clock.Now().AddDate(-2, 0, 0)).Error)

	n, err := f.svc.Audit.PurgeOld(365)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, int64(1), f.count(t, &audit.AuditLog{}, ""))
}
