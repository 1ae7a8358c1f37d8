package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/komunitech/komunitech/internal/application"
	"github.com/komunitech/komunitech/internal/config"
	"github.com/komunitech/komunitech/internal/domain/project"
	"github.com/komunitech/komunitech/internal/repository"
	"github.com/komunitech/komunitech/pkg/response"
	"github.com/komunitech/komunitech/pkg/utils"
)

type ProjectHandler struct {
	svc *application.ProjectService
}

func NewProjectHandler(svc *application.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

// ListProjects godoc
// @Summary List projects
// @Tags projects
// @Produce json
// @Param status query string false "Active, Completed or Closed"
// @Param category_id query int false "Category ID"
// @Param owner_id query int false "Owner ID"
// @Param q query string false "Search title and description"
// @Param page query int false "Page"
// @Param per_page query int false "Items per page"
// @Success 200 {object} response.Page[project.Project]
// @Router /projects [get]
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	page, perPage := utils.ParsePagination(c, config.ItemsPerPage)
	params := repository.ProjectQueryParams{
		CategoryID: utils.QueryUint(c, "category_id"),
		OwnerID:    utils.QueryUint(c, "owner_id"),
		Search:     c.Query("q"),
		Page:       repository.Page{Page: page, PerPage: perPage},
	}
	if s := project.Status(c.Query("status")); s != "" {
		params.Status = &s
	}

	projects, total, err := h.svc.ListProjects(params)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewPage(projects, page, perPage, total))
}

// GetProject godoc
// @Summary Get a project and count the view
// @Tags projects
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} project.Project
// @Failure 404 {object} response.ErrorResponse
// @Router /projects/{id} [get]
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}
	p, err := h.svc.ViewProject(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// GetProjectStats godoc
// @Summary Requirement, support and completion totals of a project
// @Tags projects
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} project.Stats
// @Router /projects/{id}/stats [get]
func (h *ProjectHandler) GetProjectStats(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}
	stats, err := h.svc.GetProjectStats(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// CreateProject godoc
// @Summary Create a project
// @Tags projects
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param input body project.CreateProjectDTO true "Project"
// @Success 201 {object} project.Project
// @Failure 400 {object} response.ErrorResponse
// @Router /projects [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	uid, _, ok := actor(c)
	if !ok {
		return
	}
	var input project.CreateProjectDTO
	if err := c.ShouldBind(&input); err != nil {
		badRequest(c, err)
		return
	}
	p, err := h.svc.CreateProject(c, uid, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// UpdateProject godoc
// @Summary Update a project
// @Tags projects
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Project ID"
// @Param input body project.UpdateProjectDTO true "Fields to change"
// @Success 200 {object} project.Project
// @Failure 403 {object} response.ErrorResponse
// @Router /projects/{id} [put]
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	uid, isAdmin, ok := actor(c)
	if !ok {
		return
	}
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}
	var input project.UpdateProjectDTO
	if err := c.ShouldBind(&input); err != nil {
		badRequest(c, err)
		return
	}
	p, err := h.svc.UpdateProject(c, uid, isAdmin, id, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpdateProjectStatus godoc
// @Summary Change a project's status
// @Tags projects
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Project ID"
// @Param input body project.UpdateStatusDTO true "New status"
// @Success 200 {object} project.Project
// @Router /projects/{id}/status [put]
func (h *ProjectHandler) UpdateProjectStatus(c *gin.Context) {
	uid, isAdmin, ok := actor(c)
	if !ok {
		return
	}
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}
	var input project.UpdateStatusDTO
	if err := c.ShouldBind(&input); err != nil {
		badRequest(c, err)
		return
	}
	p, err := h.svc.UpdateProjectStatus(c, uid, isAdmin, id, input.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DeleteProject godoc
// @Summary Delete a project with its requirements
// @Tags projects
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 204
// @Failure 403 {object} response.ErrorResponse
// @Router /projects/{id} [delete]
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	uid, isAdmin, ok := actor(c)
	if !ok {
		return
	}
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}
	if err := h.svc.DeleteProject(c, uid, isAdmin, id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListCollaborators godoc
// @Summary List project collaborators
// @Tags projects
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {array} project.Collaborator
// @Router /projects/{id}/collaborators [get]
func (h *ProjectHandler) ListCollaborators(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}
	cols, err := h.svc.ListCollaborators(id)
	if err != nil {
		writeError(c, err)
		return
	}
	if cols == nil {
		cols = []project.Collaborator{}
	}
	c.JSON(http.StatusOK, cols)
}

// AddCollaborator godoc
// @Summary Add a collaborator to a project
// @Tags projects
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Project ID"
// @Param input body project.AddCollaboratorDTO true "Collaborator"
// @Success 201 {object} project.Collaborator
// @Failure 409 {object} response.ErrorResponse "Already a collaborator"
// @Router /projects/{id}/collaborators [post]
func (h *ProjectHandler) AddCollaborator(c *gin.Context) {
	uid, isAdmin, ok := actor(c)
	if !ok {
		return
	}
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}
	var input project.AddCollaboratorDTO
	if err := c.ShouldBind(&input); err != nil {
		badRequest(c, err)
		return
	}
	col, err := h.svc.AddCollaborator(c, uid, isAdmin, id, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, col)
}

// RemoveCollaborator godoc
// @Summary Remove a collaborator from a project
// @Tags projects
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Param user_id path int true "User ID"
// @Success 204
// @Router /projects/{id}/collaborators/{user_id} [delete]
func (h *ProjectHandler) RemoveCollaborator(c *gin.Context) {
	uid, isAdmin, ok := actor(c)
	if !ok {
		return
	}
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}
	target, err := utils.ParseIDParam(c, "user_id")
	if err != nil {
		badRequest(c, err)
		return
	}
	if err := h.svc.RemoveCollaborator(c, uid, isAdmin, id, target); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
