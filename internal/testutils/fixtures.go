package testutils

import (
	"fmt"
	"testing"

	"github.com/komunitech/komunitech/internal/domain/category"
	"github.com/komunitech/komunitech/internal/domain/project"
	"github.com/komunitech/komunitech/internal/domain/requirement"
	"github.com/komunitech/komunitech/internal/domain/user"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func CreateUser(t testing.TB, gdb *gorm.DB, username string, role user.Role) user.User {
	t.Helper()
	u := user.User{
		Username:     username,
		Email:        fmt.Sprintf("%s@example.com", username),
		Name:         username,
		PasswordHash: "x",
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, gdb.Create(&u).Error)
	return u
}

func CreateCategory(t testing.TB, gdb *gorm.DB, name string) category.Category {
	t.Helper()
	c := category.Category{Name: name}
	require.NoError(t, gdb.Create(&c).Error)
	return c
}

func CreateProject(t testing.TB, gdb *gorm.DB, ownerID, categoryID uint) project.Project {
	t.Helper()
	p := project.Project{
		Title:       "Desa Digital",
		Description: "Digitalisasi layanan desa",
		OwnerID:     ownerID,
		CategoryID:  categoryID,
		Status:      project.StatusActive,
	}
	require.NoError(t, gdb.Omit(clause.Associations).Create(&p).Error)
	return p
}

func CreateRequirement(t testing.TB, gdb *gorm.DB, projectID, submitterID, categoryID uint) requirement.Requirement {
	t.Helper()
	r := requirement.Requirement{
		Title:       "Perbaikan jalan",
		Description: "Jalan utama berlubang",
		ProjectID:   projectID,
		SubmitterID: submitterID,
		CategoryID:  categoryID,
		Status:      requirement.StatusSubmitted,
		Priority:    requirement.PriorityMedium,
	}
	require.NoError(t, gdb.Omit(clause.Associations).Create(&r).Error)
	return r
}

// World is a minimal populated schema: an admin, a project owner, a
// submitter with one requirement, and a bystander.
type World struct {
	Admin       user.User
	Owner       user.User
	Submitter   user.User
	Other       user.User
	Category    category.Category
	Project     project.Project
	Requirement requirement.Requirement
}

func SeedWorld(t testing.TB, gdb *gorm.DB) World {
	t.Helper()
	w := World{
		Admin:     CreateUser(t, gdb, "admin", user.RoleAdmin),
		Owner:     CreateUser(t, gdb, "owner", user.RoleRegular),
		Submitter: CreateUser(t, gdb, "submitter", user.RoleRegular),
		Other:     CreateUser(t, gdb, "other", user.RoleRegular),
		Category:  CreateCategory(t, gdb, "Infrastruktur"),
	}
	w.Project = CreateProject(t, gdb, w.Owner.ID, w.Category.ID)
	w.Requirement = CreateRequirement(t, gdb, w.Project.ID, w.Submitter.ID, w.Category.ID)
	return w
}
