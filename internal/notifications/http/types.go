package http

import (
	"github.com/gbtraders/storefront-api/internal/notifications/repository"
	"github.com/gbtraders/storefront-api/internal/notifications/service"
)

type Handler struct {
	repo    *repository.NotificationRepository
	service *service.NotificationService
}

func New(repo *repository.NotificationRepository, svc *service.NotificationService) *Handler {
	return &Handler{repo: repo, service: svc}
}

type listQuery struct {
	Unread bool `form:"unread"`
	Limit  int  `form:"limit" binding:"omitempty,min=1,max=100"`
}

// offerEventRequest is posted by the party whose action caused the event:
// the buyer for offer_received, the seller for accepted/declined.
type offerEventRequest struct {
	Type         string   `json:"type" binding:"required,oneof=offer_received offer_accepted offer_declined"`
	OfferID      string   `json:"offerId" binding:"required"`
	VehicleID    string   `json:"vehicleId" binding:"required"`
	VehicleTitle string   `json:"vehicleTitle"`
	VehicleImage string   `json:"vehicleImage" binding:"omitempty,url"`
	OfferAmount  *float64 `json:"offerAmount" binding:"omitempty,gt=0"`
	BuyerID      string   `json:"buyerId" binding:"required"`
	BuyerName    string   `json:"buyerName"`
	SellerID     string   `json:"sellerId" binding:"required,nefield=BuyerID"`
	SellerName   string   `json:"sellerName"`
}
