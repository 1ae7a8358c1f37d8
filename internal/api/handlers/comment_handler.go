package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/komunitech/komunitech/internal/application"
	"github.com/komunitech/komunitech/internal/config"
	"github.com/komunitech/komunitech/internal/domain/comment"
	"github.com/komunitech/komunitech/internal/repository"
	"github.com/komunitech/komunitech/pkg/response"
	"github.com/komunitech/komunitech/pkg/utils"
)

type CommentHandler struct {
	svc *application.CommentService
}

func NewCommentHandler(svc *application.CommentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

// ListComments godoc
// @Summary List a requirement's comments
// @Description threaded=true (default) nests replies under their parents; threaded=false returns creation order.
// @Tags comments
// @Produce json
// @Param id path int true "Requirement ID"
// @Param threaded query bool false "Nest replies"
// @Success 200 {array} comment.Thread
// @Failure 404 {object} response.ErrorResponse
// @Router /requirements/{id}/comments [get]
func (h *CommentHandler) ListComments(c *gin.Context) {
	reqID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}

	threaded := true
	if v := utils.QueryBool(c, "threaded"); v != nil {
		threaded = *v
	}
	if !threaded {
		cs, err := h.svc.ListFlat(reqID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, cs)
		return
	}

	threads, err := h.svc.ListThreads(reqID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, threads)
}

// CreateComment godoc
// @Summary Comment on a requirement or reply to a comment
// @Tags comments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Requirement ID"
// @Param input body comment.CreateCommentDTO true "Comment"
// @Success 201 {object} comment.Comment
// @Failure 400 {object} response.ErrorResponse "Invalid parent or depth exceeded"
// @Failure 404 {object} response.ErrorResponse
// @Router /requirements/{id}/comments [post]
func (h *CommentHandler) CreateComment(c *gin.Context) {
	uid, _, ok := actor(c)
	if !ok {
		return
	}
	reqID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}
	var input comment.CreateCommentDTO
	if err := c.ShouldBind(&input); err != nil {
		badRequest(c, err)
		return
	}
	cm, err := h.svc.CreateComment(application.CreateCommentInput{
		Body:          input.Body,
		RequirementID: reqID,
		AuthorID:      uid,
		ParentID:      input.ParentID,
		ImageURL:      input.ImageURL,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cm)
}

// UpdateComment godoc
// @Summary Edit own comment within the edit window
// @Tags comments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Comment ID"
// @Param input body comment.UpdateCommentDTO true "New body"
// @Success 200 {object} comment.Comment
// @Failure 403 {object} response.ErrorResponse "Not the author or window closed"
// @Router /comments/{id} [put]
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	uid, _, ok := actor(c)
	if !ok {
		return
	}
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}
	var input comment.UpdateCommentDTO
	if err := c.ShouldBind(&input); err != nil {
		badRequest(c, err)
		return
	}
	cm, err := h.svc.UpdateComment(id, uid, input.Body)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cm)
}

// DeleteComment godoc
// @Summary Delete a comment
// @Description Comments with replies are replaced by a placeholder instead of removed.
// @Tags comments
// @Security BearerAuth
// @Param id path int true "Comment ID"
// @Success 204
// @Failure 403 {object} response.ErrorResponse
// @Router /comments/{id} [delete]
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	uid, isAdmin, ok := actor(c)
	if !ok {
		return
	}
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}
	if _, err := h.svc.DeleteComment(id, uid, isAdmin); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListUserComments godoc
// @Summary List a user's comments
// @Tags comments
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} response.Page[comment.Comment]
// @Router /users/{id}/comments [get]
func (h *CommentHandler) ListUserComments(c *gin.Context) {
	userID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}
	page, perPage := utils.ParsePagination(c, config.ItemsPerPage)
	cs, total, err := h.svc.ListUserComments(userID, repository.Page{Page: page, PerPage: perPage})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewPage(cs, page, perPage, total))
}

// RecentComments godoc
// @Summary Newest comments (admin)
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param limit query int false "How many, default 10"
// @Param requirement_id query int false "Requirement ID"
// @Param user_id query int false "Author ID"
// @Success 200 {array} comment.Comment
// @Router /admin/comments/recent [get]
func (h *CommentHandler) RecentComments(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}
	cs, err := h.svc.RecentComments(limit, utils.QueryUint(c, "requirement_id"), utils.QueryUint(c, "user_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cs)
}

// CommentStats godoc
// @Summary Comment totals (admin)
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param requirement_id query int false "Requirement ID"
// @Success 200 {object} comment.Stats
// @Router /admin/comments/stats [get]
func (h *CommentHandler) CommentStats(c *gin.Context) {
	stats, err := h.svc.Stats(utils.QueryUint(c, "requirement_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ModerateComment godoc
// @Summary Hide or delete a comment (admin)
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Comment ID"
// @Param input body comment.ModerateDTO true "Action and reason"
// @Success 200 {object} response.MessageResponse
// @Router /admin/comments/{id}/moderate [post]
func (h *CommentHandler) ModerateComment(c *gin.Context) {
	uid, _, ok := actor(c)
	if !ok {
		return
	}
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}
	var input comment.ModerateDTO
	if err := c.ShouldBind(&input); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.svc.ModerateComment(c, uid, id, input.Action, input.Reason); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "comment " + input.Action + " done"})
}
