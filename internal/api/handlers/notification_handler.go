package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/komunitech/komunitech/internal/application"
	"github.com/komunitech/komunitech/internal/config"
	"github.com/komunitech/komunitech/internal/domain/notification"
	"github.com/komunitech/komunitech/internal/repository"
	"github.com/komunitech/komunitech/pkg/response"
	"github.com/komunitech/komunitech/pkg/utils"
)

type NotificationHandler struct {
	svc *application.NotificationService
}

func NewNotificationHandler(svc *application.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

// ListNotifications godoc
// @Summary List the caller's notifications, newest first
// @Tags notifications
// @Security BearerAuth
// @Produce json
// @Param unread query bool false "Only unread"
// @Param page query int false "Page"
// @Param per_page query int false "Items per page"
// @Success 200 {object} response.Page[notification.Notification]
// @Router /notifications [get]
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	uid, _, ok := actor(c)
	if !ok {
		return
	}
	unread := false
	if v := utils.QueryBool(c, "unread"); v != nil {
		unread = *v
	}
	page, perPage := utils.ParsePagination(c, config.ItemsPerPageAdmin)
	ns, total, err := h.svc.ListUserNotifications(uid, unread, repository.Page{Page: page, PerPage: perPage})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewPage(ns, page, perPage, total))
}

// UnreadCount godoc
// @Summary Number of unread notifications
// @Tags notifications
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.CountResponse
// @Router /notifications/unread-count [get]
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	uid, _, ok := actor(c)
	if !ok {
		return
	}
	n, err := h.svc.UnreadCount(uid)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.CountResponse{Count: n})
}

// MarkRead godoc
// @Summary Mark one notification read
// @Tags notifications
// @Security BearerAuth
// @Produce json
// @Param id path int true "Notification ID"
// @Success 200 {object} response.MessageResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /notifications/{id}/read [put]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	uid, _, ok := actor(c)
	if !ok {
		return
	}
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}
	if _, err := h.svc.MarkRead(id, uid); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "notification marked read"})
}

// MarkAllRead godoc
// @Summary Mark every notification read
// @Tags notifications
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.CountResponse "Number of notifications changed"
// @Router /notifications/read-all [put]
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	uid, _, ok := actor(c)
	if !ok {
		return
	}
	n, err := h.svc.MarkAllRead(uid)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.CountResponse{Count: n})
}

// DeleteNotification godoc
// @Summary Delete one of the caller's notifications
// @Tags notifications
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 204
// @Failure 404 {object} response.ErrorResponse
// @Router /notifications/{id} [delete]
func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	uid, _, ok := actor(c)
	if !ok {
		return
	}
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}
	if err := h.svc.DeleteNotification(id, uid); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Stats godoc
// @Summary Notification totals by type (admin)
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param user_id query int false "Restrict to one user"
// @Success 200 {object} notification.Stats
// @Router /admin/notifications/stats [get]
func (h *NotificationHandler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(utils.QueryUint(c, "user_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Broadcast godoc
// @Summary Send one notification to many users (admin)
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param input body notification.BulkCreateDTO true "Recipients and content"
// @Success 201 {object} response.CountResponse
// @Router /admin/notifications/bulk [post]
func (h *NotificationHandler) Broadcast(c *gin.Context) {
	var input notification.BulkCreateDTO
	if err := c.ShouldBind(&input); err != nil {
		badRequest(c, err)
		return
	}
	ns, err := h.svc.BulkCreate(input.UserIDs, input.Type, input.Title, input.Message, input.Link)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.CountResponse{Count: int64(len(ns))})
}

// PurgeOld godoc
// @Summary Delete notifications older than the retention period (admin)
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param days query int false "Retention days"
// @Success 200 {object} response.CountResponse
// @Router /admin/notifications/purge [post]
func (h *NotificationHandler) PurgeOld(c *gin.Context) {
	days := config.NotificationRetentionDays
	if v := utils.QueryUint(c, "days"); v != nil {
		days = int(*v)
	}
	n, err := h.svc.PurgeOld(days)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.CountResponse{Count: n})
}
