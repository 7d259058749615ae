package api

import (
	"github.com/gin-gonic/gin"
)

// CategoryHandler expense categories
type CategoryHandler struct{}

// NewCategoryHandler creates the category handler
func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

// CreateCategoryRequest create category request
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,max=50" example:"Travel"`
}

// List lists all categories
// @Summary List categories
// @Tags Categories
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]models.Category}
// @Router /api/v1/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := categoryRepo().List(c.Request.Context())
	if err != nil {
		respondError(c, err, "", "failed to list categories")
		return
	}
	Success(c, categories)
}

// Create adds a category
// @Summary Create category (admin)
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateCategoryRequest true "category"
// @Success 200 {object} Response{data=models.Category}
// @Failure 400 {object} Response
// @Failure 403 {object} Response
// @Router /api/v1/admin/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	category, err := categoryRepo().Create(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err, "", "failed to create category")
		return
	}
	SuccessWithMessage(c, "Category created", category)
}

// Delete removes a category; its expenses become uncategorised
// @Summary Delete category (admin)
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "category id"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /api/v1/admin/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		NotFound(c, "category not found")
		return
	}
	if err := categoryRepo().Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "category not found", "failed to delete category")
		return
	}
	SuccessWithMessage(c, "Category deleted", nil)
}
