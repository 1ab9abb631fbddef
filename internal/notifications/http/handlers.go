package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gbtraders/storefront-api/internal/api/http/respond"
	"github.com/gbtraders/storefront-api/internal/auth"
	"github.com/gbtraders/storefront-api/internal/notifications/domain"
)

func (h *Handler) List(c *gin.Context) {
	uid := auth.UserFirebaseUID(c)
	if uid == "" {
		respond.Unauthorized(c, "user not authenticated")
		return
	}

	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respond.BadRequest(c, "invalid query", err)
		return
	}
	if q.Limit == 0 {
		q.Limit = 50
	}

	ctx := c.Request.Context()
	items, err := h.repo.ListForUser(ctx, uid, q.Unread, q.Limit)
	if err != nil {
		respond.Failure(c, "list_notifications", "failed to list notifications", err)
		return
	}
	unread, err := h.repo.UnreadCount(ctx, uid)
	if err != nil {
		respond.Failure(c, "list_notifications", "failed to count notifications", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": items, "unread": unread})
}

func (h *Handler) MarkRead(c *gin.Context) {
	uid := auth.UserFirebaseUID(c)
	if uid == "" {
		respond.Unauthorized(c, "user not authenticated")
		return
	}

	err := h.repo.MarkRead(c.Request.Context(), c.Param("id"), uid)
	if errors.Is(err, domain.ErrNotificationNotFound) {
		respond.NotFound(c, "notification not found")
		return
	}
	if err != nil {
		respond.Failure(c, "mark_notification_read", "failed to mark notification read", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) MarkAllRead(c *gin.Context) {
	uid := auth.UserFirebaseUID(c)
	if uid == "" {
		respond.Unauthorized(c, "user not authenticated")
		return
	}

	n, err := h.repo.MarkAllRead(c.Request.Context(), uid)
	if err != nil {
		respond.Failure(c, "mark_all_notifications_read", "failed to mark notifications read", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "updated": n})
}

func (h *Handler) Delete(c *gin.Context) {
	uid := auth.UserFirebaseUID(c)
	if uid == "" {
		respond.Unauthorized(c, "user not authenticated")
		return
	}

	err := h.repo.Delete(c.Request.Context(), c.Param("id"), uid)
	if errors.Is(err, domain.ErrNotificationNotFound) {
		respond.NotFound(c, "notification not found")
		return
	}
	if err != nil {
		respond.Failure(c, "delete_notification", "failed to delete notification", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// OfferEvent creates the notification for the other party of an offer.
func (h *Handler) OfferEvent(c *gin.Context) {
	uid := auth.UserFirebaseUID(c)
	if uid == "" {
		respond.Unauthorized(c, "user not authenticated")
		return
	}

	var req offerEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "invalid request body", err)
		return
	}

	actor := req.SellerID
	if req.Type == domain.TypeOfferReceived {
		actor = req.BuyerID
	}
	if actor != uid {
		respond.Forbidden(c, "only the acting party can report this offer event")
		return
	}

	n, err := h.service.Notify(c.Request.Context(), req.Type, domain.OfferEvent{
		OfferID:      req.OfferID,
		VehicleID:    req.VehicleID,
		VehicleTitle: req.VehicleTitle,
		VehicleImage: req.VehicleImage,
		OfferAmount:  req.OfferAmount,
		BuyerID:      req.BuyerID,
		BuyerName:    req.BuyerName,
		SellerID:     req.SellerID,
		SellerName:   req.SellerName,
	})
	if err != nil {
		respond.Failure(c, "offer_event", "failed to create notification", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"notification": n})
}
