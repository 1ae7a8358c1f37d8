package application_test

import (
	"testing"

	"github.com/komunitech/komunitech/internal/application"
	"github.com/komunitech/komunitech/internal/domain/category"
	"github.com/komunitech/komunitech/internal/domain/notification"
	"github.com/komunitech/komunitech/internal/domain/project"
	"github.com/komunitech/komunitech/internal/domain/requirement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectLifecycle(t *testing.T) {
	f := newFixture(t)
	w := f.world

	p, err := f.svc.Project.CreateProject(nil, w.Other.ID, project.CreateProjectDTO{
		Title: "Bank Sampah", Description: "Pengelolaan sampah", CategoryID: w.Category.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, project.StatusActive, p.Status)

	title := "Bank Sampah Warga"
	_, err = f.svc.Project.UpdateProject(nil, w.Owner.ID, false, p.ID, project.UpdateProjectDTO{Title: &title})
	assert.ErrorIs(t, err, application.ErrForbidden)

	updated, err := f.svc.Project.UpdateProject(nil, w.Other.ID, false, p.ID, project.UpdateProjectDTO{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)

	viewed, err := f.svc.Project.ViewProject(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, viewed.ViewCount)

	assert.ErrorIs(t, f.svc.Project.DeleteProject(nil, w.Owner.ID, false, p.ID), application.ErrForbidden)
	require.NoError(t, f.svc.Project.DeleteProject(nil, w.Other.ID, false, p.ID))
	_, err = f.svc.Project.GetProject(p.ID)
	assert.ErrorIs(t, err, application.ErrNotFound)
}

func TestCollaborators(t *testing.T) {
	f := newFixture(t)
	w := f.world

	_, err := f.svc.Project.AddCollaborator(nil, w.Other.ID, false, w.Project.ID, project.AddCollaboratorDTO{UserID: w.Submitter.ID})
	assert.ErrorIs(t, err, application.ErrForbidden)

	col, err := f.svc.Project.AddCollaborator(nil, w.Owner.ID, false, w.Project.ID, project.AddCollaboratorDTO{UserID: w.Other.ID})
	require.NoError(t, err)
	assert.Equal(t, project.RoleContributor, col.Role)

	_, err = f.svc.Project.AddCollaborator(nil, w.Owner.ID, false, w.Project.ID, project.AddCollaboratorDTO{UserID: w.Other.ID})
	assert.ErrorIs(t, err, application.ErrConflict)

	_, err = f.svc.Project.UpdateProjectStatus(nil, w.Owner.ID, false, w.Project.ID, project.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, int64(1), f.count(t, &notification.Notification{}, "user_id = ? AND type = ?", w.Other.ID, notification.TypeProjectUpdate))

	cols, err := f.svc.Project.ListCollaborators(w.Project.ID)
	require.NoError(t, err)
	require.Len(t, cols, 1)

	require.NoError(t, f.svc.Project.RemoveCollaborator(nil, w.Owner.ID, false, w.Project.ID, w.Other.ID))
	err = f.svc.Project.RemoveCollaborator(nil, w.Owner.ID, false, w.Project.ID, w.Other.ID)
	assert.ErrorIs(t, err, application.ErrNotFound)
}

func TestProjectStats(t *testing.T) {
	f := newFixture(t)
	w := f.world

	second, err := f.svc.Requirement.CreateRequirement(w.Project.ID, w.Other.ID, requirementInput(w.Category.ID))
	require.NoError(t, err)
	_, err = f.svc.Requirement.UpdateStatus(nil, w.Owner.ID, false, second.ID, requirement.StatusDone)
	require.NoError(t, err)
	_, err = f.svc.Support.CreateSupport(w.Requirement.ID, w.Other.ID)
	require.NoError(t, err)

	stats, err := f.svc.Project.GetProjectStats(w.Project.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.RequirementCount)
	assert.Equal(t, int64(1), stats.DoneCount)
	assert.Equal(t, int64(1), stats.SupportCount)
	assert.InDelta(t, 50.0, stats.CompletionPercent, 0.001)
}

func TestDeleteOwner_CascadesProjects(t *testing.T) {
	f := newFixture(t)
	w := f.world

	require.NoError(t, f.svc.User.DeleteUser(nil, w.Admin.ID, w.Owner.ID))
	assert.Equal(t, int64(0), f.count(t, &project.Project{}, ""))
	assert.Equal(t, int64(0), f.count(t, &requirement.Requirement{}, ""))
}

func TestCategories(t *testing.T) {
	f := newFixture(t)
	w := f.world

	_, err := f.svc.Category.CreateCategory(nil, w.Admin.ID, category.CreateCategoryDTO{Name: w.Category.Name})
	assert.ErrorIs(t, err, application.ErrConflict)

	c, err := f.svc.Category.CreateCategory(nil, w.Admin.ID, category.CreateCategoryDTO{Name: "Kesehatan"})
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.Category.DeleteCategory(nil, w.Admin.ID, w.Category.ID), application.ErrForbidden)
	require.NoError(t, f.svc.Category.DeleteCategory(nil, w.Admin.ID, c.ID))
	assert.ErrorIs(t, f.svc.Category.DeleteCategory(nil, w.Admin.ID, c.ID), application.ErrNotFound)

	all, err := f.svc.Category.ListCategories()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
