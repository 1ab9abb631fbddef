package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gbtraders/storefront-api/internal/api/http/respond"
	"github.com/gbtraders/storefront-api/internal/auth/domain"
)

// CreateUser writes the user document right after signup.
// It never creates a dealer profile; dealers complete that separately.
func (h *Handler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "invalid request body", err)
		return
	}

	_, err := h.authService.CreateUser(c.Request.Context(), &domain.CreateUserRequest{
		UID:       req.UID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Country:   req.Country,
		Role:      req.Role,
	})
	if err != nil {
		respond.Failure(c, "create_user", "failed to create user", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "user created"})
}

// SetRole updates the role claim and the user document.
func (h *Handler) SetRole(c *gin.Context) {
	var req setRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "invalid request body", err)
		return
	}

	err := h.authService.SetRole(c.Request.Context(), req.UID, req.Role)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrUserNotFound):
		respond.NotFound(c, "user not found")
		return
	case errors.Is(err, domain.ErrInvalidRole):
		respond.BadRequest(c, "invalid role", nil)
		return
	default:
		respond.Failure(c, "set_role", "failed to set role", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "role set to " + req.Role})
}

// UpdateProfile merges the editable profile fields.
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "invalid request body", err)
		return
	}

	err := h.authService.UpdateProfile(c.Request.Context(), req.UID, &domain.UpdateProfileRequest{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Country:   req.Country,
		Role:      req.Role,
		Phone:     req.Phone,
		Location:  req.Location,
	})
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrUserNotFound):
		respond.NotFound(c, "user not found")
		return
	case errors.Is(err, domain.ErrInvalidRole):
		respond.BadRequest(c, "invalid role", nil)
		return
	default:
		respond.Failure(c, "update_profile", "failed to update profile", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "profile updated"})
}

// DeleteUser removes the user document and the identity record.
func (h *Handler) DeleteUser(c *gin.Context) {
	var req deleteUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "invalid request body", err)
		return
	}

	if err := h.authService.DeleteUser(c.Request.Context(), req.UID); err != nil {
		respond.Failure(c, "delete_user", "failed to delete user", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}
