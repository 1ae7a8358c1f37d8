package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/komunitech/komunitech/internal/application"
	"github.com/komunitech/komunitech/internal/domain/category"
	"github.com/komunitech/komunitech/pkg/utils"
)

type CategoryHandler struct {
	svc *application.CategoryService
}

func NewCategoryHandler(svc *application.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

// ListCategories godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {array} category.Category
// @Router /categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	cats, err := h.svc.ListCategories()
	if err != nil {
		writeError(c, err)
		return
	}
	if cats == nil {
		cats = []category.Category{}
	}
	c.JSON(http.StatusOK, cats)
}

// CreateCategory godoc
// @Summary Create a category (admin)
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param input body category.CreateCategoryDTO true "Category"
// @Success 201 {object} category.Category
// @Failure 409 {object} response.ErrorResponse "Name already exists"
// @Router /admin/categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	uid, _, ok := actor(c)
	if !ok {
		return
	}
	var input category.CreateCategoryDTO
	if err := c.ShouldBind(&input); err != nil {
		badRequest(c, err)
		return
	}
	cat, err := h.svc.CreateCategory(c, uid, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}

// UpdateCategory godoc
// @Summary Update a category (admin)
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param input body category.UpdateCategoryDTO true "Fields to change"
// @Success 200 {object} category.Category
// @Router /admin/categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	uid, _, ok := actor(c)
	if !ok {
		return
	}
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}
	var input category.UpdateCategoryDTO
	if err := c.ShouldBind(&input); err != nil {
		badRequest(c, err)
		return
	}
	cat, err := h.svc.UpdateCategory(c, uid, id, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

// DeleteCategory godoc
// @Summary Delete an unused category (admin)
// @Tags admin
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Success 204
// @Failure 403 {object} response.ErrorResponse "Category in use"
// @Router /admin/categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	uid, _, ok := actor(c)
	if !ok {
		return
	}
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}
	if err := h.svc.DeleteCategory(c, uid, id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
