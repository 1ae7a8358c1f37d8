package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/komunitech/komunitech/internal/application"
	"github.com/komunitech/komunitech/internal/config"
	"github.com/komunitech/komunitech/internal/domain/requirement"
	"github.com/komunitech/komunitech/internal/repository"
	"github.com/komunitech/komunitech/pkg/response"
	"github.com/komunitech/komunitech/pkg/utils"
)

type RequirementHandler struct {
	svc *application.RequirementService
}

func NewRequirementHandler(svc *application.RequirementService) *RequirementHandler {
	return &RequirementHandler{svc: svc}
}

func requirementQuery(c *gin.Context, perPageDefault int) (repository.RequirementQueryParams, int, int) {
	page, perPage := utils.ParsePagination(c, perPageDefault)
	params := repository.RequirementQueryParams{
		CategoryID:  utils.QueryUint(c, "category_id"),
		SubmitterID: utils.QueryUint(c, "submitter_id"),
		Search:      c.Query("q"),
		Sort:        c.DefaultQuery("sort", requirement.SortNewest),
		Page:        repository.Page{Page: page, PerPage: perPage},
	}
	if s := requirement.Status(c.Query("status")); s != "" {
		params.Status = &s
	}
	if p := requirement.Priority(c.Query("priority")); p != "" {
		params.Priority = &p
	}
	return params, page, perPage
}

// ListProjectRequirements godoc
// @Summary List a project's requirements
// @Tags requirements
// @Produce json
// @Param id path int true "Project ID"
// @Param status query string false "Submitted, InProgress, Done or Rejected"
// @Param priority query string false "Low, Medium or High"
// @Param sort query string false "newest, oldest or support"
// @Param page query int false "Page"
// @Param per_page query int false "Items per page"
// @Success 200 {object} response.Page[requirement.Requirement]
// @Failure 404 {object} response.ErrorResponse
// @Router /projects/{id}/requirements [get]
func (h *RequirementHandler) ListProjectRequirements(c *gin.Context) {
	projectID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}
	params, page, perPage := requirementQuery(c, config.ItemsPerPage)
	reqs, total, err := h.svc.ListProjectRequirements(projectID, params)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewPage(reqs, page, perPage, total))
}

// ListRequirements godoc
// @Summary List requirements across projects (admin)
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Page[requirement.Requirement]
// @Router /admin/requirements [get]
func (h *RequirementHandler) ListRequirements(c *gin.Context) {
	params, page, perPage := requirementQuery(c, config.ItemsPerPageAdmin)
	params.ProjectID = utils.QueryUint(c, "project_id")
	reqs, total, err := h.svc.ListRequirements(params)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewPage(reqs, page, perPage, total))
}

// GetRequirement godoc
// @Summary Get a requirement with its support and comment counts
// @Tags requirements
// @Produce json
// @Param id path int true "Requirement ID"
// @Success 200 {object} requirement.Requirement
// @Failure 404 {object} response.ErrorResponse
// @Router /requirements/{id} [get]
func (h *RequirementHandler) GetRequirement(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}
	r, err := h.svc.ViewRequirement(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// CreateRequirement godoc
// @Summary Submit a requirement to a project
// @Tags requirements
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Project ID"
// @Param input body requirement.CreateRequirementDTO true "Requirement"
// @Success 201 {object} requirement.Requirement
// @Failure 403 {object} response.ErrorResponse "Project not active"
// @Router /projects/{id}/requirements [post]
func (h *RequirementHandler) CreateRequirement(c *gin.Context) {
	uid, _, ok := actor(c)
	if !ok {
		return
	}
	projectID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}
	var input requirement.CreateRequirementDTO
	if err := c.ShouldBind(&input); err != nil {
		badRequest(c, err)
		return
	}
	r, err := h.svc.CreateRequirement(projectID, uid, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

// UpdateRequirement godoc
// @Summary Edit a requirement
// @Tags requirements
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Requirement ID"
// @Param input body requirement.UpdateRequirementDTO true "Fields to change"
// @Success 200 {object} requirement.Requirement
// @Router /requirements/{id} [put]
func (h *RequirementHandler) UpdateRequirement(c *gin.Context) {
	uid, isAdmin, ok := actor(c)
	if !ok {
		return
	}
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}
	var input requirement.UpdateRequirementDTO
	if err := c.ShouldBind(&input); err != nil {
		badRequest(c, err)
		return
	}
	r, err := h.svc.UpdateRequirement(uid, isAdmin, id, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// UpdateStatus godoc
// @Summary Change a requirement's status
// @Tags requirements
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Requirement ID"
// @Param input body requirement.UpdateStatusDTO true "New status"
// @Success 200 {object} requirement.Requirement
// @Router /requirements/{id}/status [put]
func (h *RequirementHandler) UpdateStatus(c *gin.Context) {
	uid, isAdmin, ok := actor(c)
	if !ok {
		return
	}
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}
	var input requirement.UpdateStatusDTO
	if err := c.ShouldBind(&input); err != nil {
		badRequest(c, err)
		return
	}
	r, err := h.svc.UpdateStatus(c, uid, isAdmin, id, input.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// DeleteRequirement godoc
// @Summary Delete a requirement with its comments and supports
// @Tags requirements
// @Security BearerAuth
// @Param id path int true "Requirement ID"
// @Success 204
// @Router /requirements/{id} [delete]
func (h *RequirementHandler) DeleteRequirement(c *gin.Context) {
	uid, isAdmin, ok := actor(c)
	if !ok {
		return
	}
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}
	if err := h.svc.DeleteRequirement(c, uid, isAdmin, id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// BulkUpdateStatus godoc
// @Summary Set the status of many requirements at once (admin)
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param input body requirement.BulkStatusDTO true "IDs and status"
// @Success 200 {object} response.CountResponse
// @Failure 404 {object} response.ErrorResponse "Unknown id, nothing changed"
// @Router /admin/requirements/bulk/status [put]
func (h *RequirementHandler) BulkUpdateStatus(c *gin.Context) {
	uid, _, ok := actor(c)
	if !ok {
		return
	}
	var input requirement.BulkStatusDTO
	if err := c.ShouldBind(&input); err != nil {
		badRequest(c, err)
		return
	}
	n, err := h.svc.BulkUpdateStatus(c, uid, input.IDs, input.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.CountResponse{Count: int64(n)})
}

// BulkDelete godoc
// @Summary Delete many requirements at once (admin)
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param input body requirement.BulkDeleteDTO true "IDs"
// @Success 200 {object} response.CountResponse
// @Router /admin/requirements/bulk/delete [post]
func (h *RequirementHandler) BulkDelete(c *gin.Context) {
	uid, _, ok := actor(c)
	if !ok {
		return
	}
	var input requirement.BulkDeleteDTO
	if err := c.ShouldBind(&input); err != nil {
		badRequest(c, err)
		return
	}
	n, err := h.svc.BulkDelete(c, uid, input.IDs)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.CountResponse{Count: int64(n)})
}
