package repository_test

import (
	"errors"
	"testing"

	"github.com/komunitech/komunitech/internal/domain/requirement"
	"github.com/komunitech/komunitech/internal/domain/support"
	"github.com/komunitech/komunitech/internal/repository"
	"github.com/komunitech/komunitech/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgres_ConstraintsAndDuplicates(t *testing.T) {
	gdb := testutils.NewPostgresDB(t)
	require.NoError(t, gdb.Exec(`TRUNCATE users, categories, projects, project_collaborators, requirements,
		comments, supports, notifications, audit_logs RESTART IDENTITY CASCADE`).Error)
	w := testutils.SeedWorld(t, gdb)

	supports := repository.NewSupportRepo(gdb)
	require.NoError(t, supports.CreateSupport(&support.Support{UserID: w.Other.ID, RequirementID: w.Requirement.ID}))
	err := supports.CreateSupport(&support.Support{UserID: w.Other.ID, RequirementID: w.Requirement.ID})
	assert.True(t, errors.Is(err, repository.ErrDuplicate), "got %v", err)

	// rejected by chk_requirements_status
	err = gdb.Model(&requirement.Requirement{}).Where("id = ?", w.Requirement.ID).Update("status", "Archived").Error
	assert.Error(t, err)

	reqs := repository.NewRequirementRepo(gdb)
	got, err := reqs.GetRequirementByID(w.Requirement.ID)
	require.NoError(t, err)
	assert.Equal(t, requirement.StatusSubmitted, got.Status)
	assert.Equal(t, int64(1), got.SupportCount)

	assertSearchIgnoresCase(t, gdb, w)
}
