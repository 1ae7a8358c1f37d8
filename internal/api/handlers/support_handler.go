package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/komunitech/komunitech/internal/application"
	"github.com/komunitech/komunitech/internal/config"
	"github.com/komunitech/komunitech/internal/repository"
	"github.com/komunitech/komunitech/pkg/response"
	"github.com/komunitech/komunitech/pkg/utils"
)

type SupportHandler struct {
	svc *application.SupportService
}

func NewSupportHandler(svc *application.SupportService) *SupportHandler {
	return &SupportHandler{svc: svc}
}

type SupportStatus struct {
	Supported    bool  `json:"supported"`
	SupportCount int64 `json:"support_count"`
}

// ToggleSupport godoc
// @Summary Support a requirement, or withdraw support if already given
// @Tags supports
// @Security BearerAuth
// @Produce json
// @Param id path int true "Requirement ID"
// @Success 200 {object} support.ToggleResult
// @Failure 400 {object} response.ErrorResponse "Own requirement"
// @Router /requirements/{id}/support/toggle [post]
func (h *SupportHandler) ToggleSupport(c *gin.Context) {
	uid, _, ok := actor(c)
	if !ok {
		return
	}
	reqID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}
	res, err := h.svc.ToggleSupport(reqID, uid)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// CreateSupport godoc
// @Summary Support a requirement
// @Tags supports
// @Security BearerAuth
// @Produce json
// @Param id path int true "Requirement ID"
// @Success 201 {object} support.Support
// @Failure 400 {object} response.ErrorResponse "Own requirement"
// @Failure 409 {object} response.ErrorResponse "Already supported"
// @Router /requirements/{id}/support [post]
func (h *SupportHandler) CreateSupport(c *gin.Context) {
	uid, _, ok := actor(c)
	if !ok {
		return
	}
	reqID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}
	s, err := h.svc.CreateSupport(reqID, uid)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, s)
}

// RemoveSupport godoc
// @Summary Withdraw support
// @Tags supports
// @Security BearerAuth
// @Param id path int true "Requirement ID"
// @Success 204
// @Failure 404 {object} response.ErrorResponse
// @Router /requirements/{id}/support [delete]
func (h *SupportHandler) RemoveSupport(c *gin.Context) {
	uid, _, ok := actor(c)
	if !ok {
		return
	}
	reqID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}
	if err := h.svc.RemoveSupport(reqID, uid); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetSupportStatus godoc
// @Summary Whether the caller supports a requirement, and the total
// @Tags supports
// @Security BearerAuth
// @Produce json
// @Param id path int true "Requirement ID"
// @Success 200 {object} SupportStatus
// @Router /requirements/{id}/support [get]
func (h *SupportHandler) GetSupportStatus(c *gin.Context) {
	uid, _, ok := actor(c)
	if !ok {
		return
	}
	reqID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}
	supported, err := h.svc.HasSupported(uid, reqID)
	if err != nil {
		writeError(c, err)
		return
	}
	count, err := h.svc.SupportCount(reqID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, SupportStatus{Supported: supported, SupportCount: count})
}

// ListSupporters godoc
// @Summary List who supports a requirement
// @Tags supports
// @Produce json
// @Param id path int true "Requirement ID"
// @Success 200 {object} response.Page[support.Support]
// @Router /requirements/{id}/supporters [get]
func (h *SupportHandler) ListSupporters(c *gin.Context) {
	reqID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}
	page, perPage := utils.ParsePagination(c, config.ItemsPerPage)
	list, total, err := h.svc.ListSupporters(reqID, repository.Page{Page: page, PerPage: perPage})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewPage(list, page, perPage, total))
}

// ListUserSupports godoc
// @Summary List requirements a user supports
// @Tags supports
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} response.Page[support.Support]
// @Router /users/{id}/supports [get]
func (h *SupportHandler) ListUserSupports(c *gin.Context) {
	userID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}
	page, perPage := utils.ParsePagination(c, config.ItemsPerPage)
	list, total, err := h.svc.ListUserSupports(userID, repository.Page{Page: page, PerPage: perPage})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewPage(list, page, perPage, total))
}
