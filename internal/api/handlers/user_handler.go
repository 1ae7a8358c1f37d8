package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/komunitech/komunitech/internal/application"
	"github.com/komunitech/komunitech/internal/config"
	"github.com/komunitech/komunitech/internal/domain/user"
	"github.com/komunitech/komunitech/internal/repository"
	"github.com/komunitech/komunitech/pkg/response"
	"github.com/komunitech/komunitech/pkg/utils"
)

type UserHandler struct {
	svc *application.UserService
}

func NewUserHandler(svc *application.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param input body user.RegisterInput true "Registration data"
// @Success 201 {object} user.User
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse "Username or email taken"
// @Router /register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var input user.RegisterInput
	if err := c.ShouldBind(&input); err != nil {
		badRequest(c, err)
		return
	}
	u, err := h.svc.Register(input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

// Login godoc
// @Summary User login
// @Tags auth
// @Accept json
// @Produce json
// @Param input body user.LoginInput true "Credentials"
// @Success 200 {object} response.TokenResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse "Invalid username or password"
// @Failure 403 {object} response.ErrorResponse "Account inactive"
// @Router /login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var input user.LoginInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid input"})
		return
	}

	u, token, isAdmin, err := h.svc.Login(input.Username, input.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.TokenResponse{
		Token:    token,
		UserID:   u.ID,
		Username: u.Username,
		IsAdmin:  isAdmin,
	})
}

// Me godoc
// @Summary Current user profile
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} user.User
// @Router /users/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	uid, _, ok := actor(c)
	if !ok {
		return
	}
	u, err := h.svc.GetUser(uid)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// ChangePassword godoc
// @Summary Change own password
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param input body user.ChangePasswordInput true "Current and new password"
// @Success 200 {object} response.MessageResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse "Current password is incorrect"
// @Router /users/me/password [put]
func (h *UserHandler) ChangePassword(c *gin.Context) {
	uid, _, ok := actor(c)
	if !ok {
		return
	}
	var input user.ChangePasswordInput
	if err := c.ShouldBind(&input); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.svc.ChangePassword(c, uid, input.CurrentPassword, input.NewPassword); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "password changed"})
}

// GetUser godoc
// @Summary Get a user's public profile
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} user.User
// @Failure 404 {object} response.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}
	u, err := h.svc.GetUser(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// UpdateProfile godoc
// @Summary Update own profile
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param input body user.UpdateProfileInput true "Profile fields"
// @Success 200 {object} user.User
// @Router /users/{id} [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}
	var input user.UpdateProfileInput
	if err := c.ShouldBind(&input); err != nil {
		badRequest(c, err)
		return
	}
	u, err := h.svc.UpdateProfile(id, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// ListUsers godoc
// @Summary List users (admin)
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param q query string false "Search username, name or email"
// @Param active query bool false "Filter by active flag"
// @Param page query int false "Page"
// @Param per_page query int false "Items per page"
// @Success 200 {object} response.Page[user.User]
// @Router /admin/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	page, perPage := utils.ParsePagination(c, config.ItemsPerPageAdmin)
	users, total, err := h.svc.ListUsers(repository.UserQueryParams{
		Search:   c.Query("q"),
		IsActive: utils.QueryBool(c, "active"),
		Page:     repository.Page{Page: page, PerPage: perPage},
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewPage(users, page, perPage, total))
}

// UpdateRole godoc
// @Summary Change a user's role (admin)
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param input body user.UpdateRoleInput true "New role"
// @Success 200 {object} user.User
// @Router /admin/users/{id}/role [put]
func (h *UserHandler) UpdateRole(c *gin.Context) {
	uid, _, ok := actor(c)
	if !ok {
		return
	}
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}
	var input user.UpdateRoleInput
	if err := c.ShouldBind(&input); err != nil {
		badRequest(c, err)
		return
	}
	u, err := h.svc.UpdateUserRole(c, uid, id, input.Role)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// SetActive godoc
// @Summary Activate or deactivate a user (admin)
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param input body user.SetActiveInput true "Active flag"
// @Success 200 {object} user.User
// @Router /admin/users/{id}/active [put]
func (h *UserHandler) SetActive(c *gin.Context) {
	uid, _, ok := actor(c)
	if !ok {
		return
	}
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}
	var input user.SetActiveInput
	if err := c.ShouldBind(&input); err != nil {
		badRequest(c, err)
		return
	}
	u, err := h.svc.SetUserActive(c, uid, id, *input.Active)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// DeleteUser godoc
// @Summary Delete a user and everything they own (admin)
// @Tags admin
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 204
// @Router /admin/users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	uid, _, ok := actor(c)
	if !ok {
		return
	}
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}
	if err := h.svc.DeleteUser(c, uid, id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
