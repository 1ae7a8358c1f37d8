package application_test

import (
	"testing"

	"github.com/komunitech/komunitech/internal/application"
	"github.com/komunitech/komunitech/internal/domain/audit"
	"github.com/komunitech/komunitech/internal/domain/comment"
	"github.com/komunitech/komunitech/internal/domain/notification"
	"github.com/komunitech/komunitech/internal/domain/project"
	"github.com/komunitech/komunitech/internal/domain/requirement"
	"github.com/komunitech/komunitech/internal/domain/support"
	"github.com/komunitech/komunitech/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requirementInput(categoryID uint) requirement.CreateRequirementDTO {
	return requirement.CreateRequirementDTO{
		Title:       "Lampu jalan",
		Description: "Lampu jalan di RT 3 mati",
		CategoryID:  categoryID,
	}
}

func TestCreateRequirement(t *testing.T) {
	f := newFixture(t)
	w := f.world

	r, err := f.svc.Requirement.CreateRequirement(w.Project.ID, w.Other.ID, requirementInput(w.Category.ID))
	require.NoError(t, err)
	assert.Equal(t, requirement.StatusSubmitted, r.Status)
	assert.Equal(t, requirement.PriorityMedium, r.Priority)
	assert.Equal(t, int64(1), f.count(t, &notification.Notification{}, "user_id = ? AND type = ?", w.Owner.ID, notification.TypeNewRequirement))

	// the owner filing on their own project is not notified
	_, err = f.svc.Requirement.CreateRequirement(w.Project.ID, w.Owner.ID, requirementInput(w.Category.ID))
	require.NoError(t, err)
	assert.Equal(t, int64(1), f.count(t, &notification.Notification{}, "user_id = ?", w.Owner.ID))

	_, err = f.svc.Project.UpdateProjectStatus(nil, w.Owner.ID, false, w.Project.ID, project.StatusClosed)
	require.NoError(t, err)
	_, err = f.svc.Requirement.CreateRequirement(w.Project.ID, w.Other.ID, requirementInput(w.Category.ID))
	assert.ErrorIs(t, err, application.ErrForbidden)

	_, err = f.svc.Requirement.CreateRequirement(9999, w.Other.ID, requirementInput(w.Category.ID))
	assert.ErrorIs(t, err, application.ErrNotFound)
}

func TestUpdateStatus(t *testing.T) {
	f := newFixture(t)
	w := f.world

	_, err := f.svc.Requirement.UpdateStatus(nil, w.Other.ID, false, w.Requirement.ID, requirement.StatusInProgress)
	assert.ErrorIs(t, err, application.ErrForbidden)

	r, err := f.svc.Requirement.UpdateStatus(nil, w.Owner.ID, false, w.Requirement.ID, requirement.StatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, requirement.StatusInProgress, r.Status)
	require.NotNil(t, r.ProcessedAt)
	require.NotNil(t, r.ProcessedBy)
	assert.Equal(t, w.Owner.ID, *r.ProcessedBy)
	assert.Nil(t, r.CompletedAt)

	r, err = f.svc.Requirement.UpdateStatus(nil, w.Admin.ID, true, w.Requirement.ID, requirement.StatusDone)
	require.NoError(t, err)
	assert.NotNil(t, r.CompletedAt)

	var n notification.Notification
	require.NoError(t, f.db.Where("user_id = ? AND type = ?", w.Submitter.ID, notification.TypeStatusChange).
		Order("id DESC").First(&n).Error)
	assert.Contains(t, n.Message, string(requirement.StatusDone))
	assert.Equal(t, int64(2), f.count(t, &notification.Notification{}, "user_id = ? AND type = ?", w.Submitter.ID, notification.TypeStatusChange))
	assert.Equal(t, int64(2), f.count(t, &audit.AuditLog{}, "action = ?", "update_requirement_status"))

	_, err = f.svc.Requirement.UpdateStatus(nil, w.Admin.ID, true, w.Requirement.ID, "Archived")
	assert.ErrorIs(t, err, application.ErrInvalidInput)
}

func TestUpdateStatus_Collaborator(t *testing.T) {
	f := newFixture(t)
	w := f.world

	_, err := f.svc.Project.AddCollaborator(nil, w.Owner.ID, false, w.Project.ID, project.AddCollaboratorDTO{UserID: w.Other.ID})
	require.NoError(t, err)

	_, err = f.svc.Requirement.UpdateStatus(nil, w.Other.ID, false, w.Requirement.ID, requirement.StatusRejected)
	require.NoError(t, err)
}

func TestBulkUpdateStatus_RollsBack(t *testing.T) {
	f := newFixture(t)
	w := f.world

	second, err := f.svc.Requirement.CreateRequirement(w.Project.ID, w.Other.ID, requirementInput(w.Category.ID))
	require.NoError(t, err)
	notificationsBefore := f.count(t, &notification.Notification{}, "")

	_, err = f.svc.Requirement.BulkUpdateStatus(nil, w.Admin.ID, []uint{w.Requirement.ID, second.ID, 9999}, requirement.StatusDone)
	assert.ErrorIs(t, err, application.ErrNotFound)

	assert.Equal(t, int64(2), f.count(t, &requirement.Requirement{}, "status = ?", requirement.StatusSubmitted))
	assert.Equal(t, notificationsBefore, f.count(t, &notification.Notification{}, ""))
	assert.Equal(t, int64(0), f.count(t, &audit.AuditLog{}, "action = ?", "bulk_update_requirement_status"))

	n, err := f.svc.Requirement.BulkUpdateStatus(nil, w.Admin.ID, []uint{w.Requirement.ID, second.ID}, requirement.StatusDone)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, int64(2), f.count(t, &requirement.Requirement{}, "status = ?", requirement.StatusDone))
	assert.Equal(t, int64(1), f.count(t, &audit.AuditLog{}, "action = ?", "bulk_update_requirement_status"))
}

func TestBulkDelete_RollsBack(t *testing.T) {
	f := newFixture(t)
	w := f.world

	second, err := f.svc.Requirement.CreateRequirement(w.Project.ID, w.Other.ID, requirementInput(w.Category.ID))
	require.NoError(t, err)

	_, err = f.svc.Requirement.BulkDelete(nil, w.Admin.ID, []uint{second.ID, 9999})
	assert.ErrorIs(t, err, application.ErrNotFound)
	assert.Equal(t, int64(2), f.count(t, &requirement.Requirement{}, ""))

	n, err := f.svc.Requirement.BulkDelete(nil, w.Admin.ID, []uint{w.Requirement.ID, second.ID})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, int64(0), f.count(t, &requirement.Requirement{}, ""))
}

func TestDeleteRequirement_Cascades(t *testing.T) {
	f := newFixture(t)
	w := f.world

	top := f.comment(t, w.Other.ID, nil, "komentar")
	f.comment(t, w.Owner.ID, &top.ID, "balasan")
	_, err := f.svc.Support.CreateSupport(w.Requirement.ID, w.Other.ID)
	require.NoError(t, err)

	err = f.svc.Requirement.DeleteRequirement(nil, w.Other.ID, false, w.Requirement.ID)
	assert.ErrorIs(t, err, application.ErrForbidden)

	require.NoError(t, f.svc.Requirement.DeleteRequirement(nil, w.Submitter.ID, false, w.Requirement.ID))
	assert.Equal(t, int64(0), f.count(t, &comment.Comment{}, ""))
	assert.Equal(t, int64(0), f.count(t, &support.Support{}, ""))

	_, err = f.svc.Requirement.GetRequirement(w.Requirement.ID)
	assert.ErrorIs(t, err, application.ErrNotFound)
}

func TestRequirementCounters(t *testing.T) {
	f := newFixture(t)
	w := f.world

	f.comment(t, w.Other.ID, nil, "satu")
	f.comment(t, w.Owner.ID, nil, "dua")
	_, err := f.svc.Support.CreateSupport(w.Requirement.ID, w.Owner.ID)
	require.NoError(t, err)

	r, err := f.svc.Requirement.ViewRequirement(w.Requirement.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), r.CommentCount)
	assert.Equal(t, int64(1), r.SupportCount)
	assert.Equal(t, 1, r.ViewCount)

	list, total, err := f.svc.Requirement.ListProjectRequirements(w.Project.ID, repository.RequirementQueryParams{
		Sort: requirement.SortSupport,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, int64(2), list[0].CommentCount)
	assert.Equal(t, int64(1), list[0].SupportCount)
}
