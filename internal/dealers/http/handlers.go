package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gbtraders/storefront-api/internal/api/http/respond"
	"github.com/gbtraders/storefront-api/internal/auth"
	"github.com/gbtraders/storefront-api/internal/dealers/domain"
)

func (h *Handler) requireOwner(c *gin.Context) {
	uid := auth.UserFirebaseUID(c)
	if uid == "" {
		respond.Unauthorized(c, "user not authenticated")
		return
	}
	if uid != c.Param("uid") {
		respond.Forbidden(c, "not allowed to access this dealer profile")
		return
	}
	c.Next()
}

func (h *Handler) GetProfile(c *gin.Context) {
	profile, err := h.repo.GetDealerProfile(c.Request.Context(), c.Param("uid"))
	if errors.Is(err, domain.ErrDealerProfileNotFound) {
		respond.NotFound(c, "dealer profile not found")
		return
	}
	if err != nil {
		respond.Failure(c, "get_dealer_profile", "failed to get dealer profile", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

func (h *Handler) SaveProfile(c *gin.Context) {
	var req saveProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "invalid request body", err)
		return
	}

	profile := &domain.DealerProfile{
		UID:          c.Param("uid"),
		BusinessName: req.BusinessName,
		Email:        req.Email,
		Phone:        req.Phone,
		Logo:         req.Logo,
		Banner:       req.Banner,
		Address:      req.Address,
		City:         req.City,
		Country:      req.Country,
		Description:  req.Description,
		Website:      req.Website,
		Facebook:     req.Facebook,
		Instagram:    req.Instagram,
		Twitter:      req.Twitter,
	}
	if err := h.repo.SaveDealerProfile(c.Request.Context(), profile); err != nil {
		respond.Failure(c, "save_dealer_profile", "failed to save dealer profile", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

func (h *Handler) PatchProfile(c *gin.Context) {
	var req patchProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "invalid request body", err)
		return
	}

	uid := c.Param("uid")
	ctx := c.Request.Context()

	err := h.repo.UpdateDealerProfile(ctx, uid, req.fields())
	if errors.Is(err, domain.ErrDealerProfileNotFound) {
		respond.NotFound(c, "dealer profile not found")
		return
	}
	if err != nil {
		respond.Failure(c, "update_dealer_profile", "failed to update dealer profile", err)
		return
	}

	profile, err := h.repo.GetDealerProfile(ctx, uid)
	if err != nil {
		respond.Failure(c, "update_dealer_profile", "failed to reload dealer profile", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

func (h *Handler) ValidateProfile(c *gin.Context) {
	res, err := h.repo.ValidateDealerProfile(c.Request.Context(), c.Param("uid"))
	if err != nil {
		respond.Failure(c, "validate_dealer_profile", "failed to validate dealer profile", err)
		return
	}
	c.JSON(http.StatusOK, res)
}
