package api

import (
	"expo/middleware"
	"expo/models"

	"github.com/gin-gonic/gin"
)

// AdminHandler account management for admins
type AdminHandler struct{}

// NewAdminHandler creates the admin handler
func NewAdminHandler() *AdminHandler {
	return &AdminHandler{}
}

// SetAdminRequest grant or revoke admin rights
type SetAdminRequest struct {
	IsAdmin bool `json:"is_admin"`
}

// UpdateUserStatusRequest lock or unlock an account
type UpdateUserStatusRequest struct {
	// active users can log in, locked ones cannot
	Status string `json:"status" binding:"required,oneof=active locked" example:"locked"`
}

// ListUsers lists all accounts
// @Summary List users (admin)
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]models.User}
// @Failure 403 {object} Response
// @Router /api/v1/admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := userRepo().List(c.Request.Context())
	if err != nil {
		respondError(c, err, "", "failed to list users")
		return
	}
	Success(c, users)
}

// SetAdmin grants or revokes admin rights
// @Summary Set admin flag (admin)
// @Description Admins cannot revoke their own rights
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "user id"
// @Param request body SetAdminRequest true "admin flag"
// @Success 200 {object} Response{data=models.User}
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /api/v1/admin/users/{id}/admin [put]
func (h *AdminHandler) SetAdmin(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		NotFound(c, "user not found")
		return
	}

	var req SetAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	if id == middleware.GetCurrentUserID(c) && !req.IsAdmin {
		BadRequest(c, "You cannot revoke your own admin rights.")
		return
	}

	user, err := userRepo().SetAdmin(c.Request.Context(), id, req.IsAdmin)
	if err != nil {
		respondError(c, err, "user not found", "failed to update user")
		return
	}
	SuccessWithMessage(c, "User updated", user)
}

// UpdateUserStatus locks or unlocks an account
// @Summary Set user status (admin)
// @Description Only active users can log in. Admins cannot change their own status.
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "user id"
// @Param request body UpdateUserStatusRequest true "status"
// @Success 200 {object} Response{data=models.User}
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /api/v1/admin/users/{id}/status [put]
func (h *AdminHandler) UpdateUserStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		NotFound(c, "user not found")
		return
	}

	if id == middleware.GetCurrentUserID(c) {
		BadRequest(c, "You cannot change your own status.")
		return
	}

	var req UpdateUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	user, err := userRepo().SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, err, "user not found", "failed to update user")
		return
	}
	message := "User unlocked"
	if user.Status == models.UserStatusLocked {
		message = "User locked"
	}
	SuccessWithMessage(c, message, user)
}
