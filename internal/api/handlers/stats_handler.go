package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/komunitech/komunitech/internal/application"
)

type StatsHandler struct {
	svc *application.StatsService
}

func NewStatsHandler(svc *application.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

// Dashboard godoc
// @Summary Platform totals and daily activity (admin)
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param days query int false "Days in the daily series (default 30, max 365)"
// @Success 200 {object} stats.Dashboard
// @Router /admin/stats [get]
func (h *StatsHandler) Dashboard(c *gin.Context) {
	days, _ := strconv.Atoi(c.Query("days"))
	d, err := h.svc.Dashboard(days)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// MyStats godoc
// @Summary Activity summary of the current user
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} stats.UserStats
// @Router /users/me/stats [get]
func (h *StatsHandler) MyStats(c *gin.Context) {
	uid, _, ok := actor(c)
	if !ok {
		return
	}
	s, err := h.svc.UserStats(uid)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}
