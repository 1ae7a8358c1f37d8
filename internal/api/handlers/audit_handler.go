package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/komunitech/komunitech/internal/application"
	"github.com/komunitech/komunitech/internal/config"
	"github.com/komunitech/komunitech/internal/repository"
	"github.com/komunitech/komunitech/pkg/response"
	"github.com/komunitech/komunitech/pkg/utils"
)

type AuditHandler struct {
	svc *application.AuditService
}

func NewAuditHandler(svc *application.AuditService) *AuditHandler {
	return &AuditHandler{svc: svc}
}

// GetAuditLogs godoc
// @Summary Query audit logs (admin)
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param user_id query int false "Actor ID"
// @Param entity_type query string false "Entity type"
// @Param action query string false "Action substring"
// @Param start_time query string false "RFC3339 lower bound"
// @Param end_time query string false "RFC3339 upper bound"
// @Param page query int false "Page"
// @Param per_page query int false "Items per page"
// @Success 200 {object} response.Page[audit.AuditLog]
// @Failure 400 {object} response.ErrorResponse
// @Router /admin/audit-logs [get]
func (h *AuditHandler) GetAuditLogs(c *gin.Context) {
	page, perPage := utils.ParsePagination(c, config.ItemsPerPageAdmin)
	params := repository.AuditQueryParams{
		UserID: utils.QueryUint(c, "user_id"),
		Page:   repository.Page{Page: page, PerPage: perPage},
	}
	if v := c.Query("entity_type"); v != "" {
		params.EntityType = &v
	}
	if v := c.Query("action"); v != "" {
		params.Action = &v
	}
	if v := c.Query("start_time"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid start_time"})
			return
		}
		params.StartTime = &t
	}
	if v := c.Query("end_time"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid end_time"})
			return
		}
		params.EndTime = &t
	}

	logs, total, err := h.svc.QueryAuditLogs(params)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewPage(logs, page, perPage, total))
}
