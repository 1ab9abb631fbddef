package domain

import (
	"errors"
	"time"
)

const Collection = "notifications"

// Notification types
const (
	TypeOfferReceived = "offer_received"
	TypeOfferAccepted = "offer_accepted"
	TypeOfferDeclined = "offer_declined"
)

var ErrNotificationNotFound = errors.New("notification not found")

type Notification struct {
	ID        string    `json:"id" firestore:"id"`
	UserID    string    `json:"userId" firestore:"userId"`
	Type      string    `json:"type" firestore:"type"`
	Title     string    `json:"title" firestore:"title"`
	Message   string    `json:"message" firestore:"message"`
	Data      Data      `json:"data" firestore:"data"`
	Read      bool      `json:"read" firestore:"read"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
}

// Data carries the offer reference plus denormalized fields for rendering.
type Data struct {
	OfferID      string   `json:"offerId" firestore:"offerId"`
	VehicleID    string   `json:"vehicleId" firestore:"vehicleId"`
	VehicleTitle string   `json:"vehicleTitle,omitempty" firestore:"vehicleTitle,omitempty"`
	VehicleImage string   `json:"vehicleImage,omitempty" firestore:"vehicleImage,omitempty"`
	OfferAmount  *float64 `json:"offerAmount,omitempty" firestore:"offerAmount,omitempty"`
	BuyerName    string   `json:"buyerName,omitempty" firestore:"buyerName,omitempty"`
	SellerName   string   `json:"sellerName,omitempty" firestore:"sellerName,omitempty"`
}

// OfferEvent is an offer state change between a buyer and a seller.
type OfferEvent struct {
	OfferID      string
	VehicleID    string
	VehicleTitle string
	VehicleImage string
	OfferAmount  *float64
	BuyerID      string
	BuyerName    string
	SellerID     string
	SellerName   string
}

func ValidType(t string) bool {
	switch t {
	case TypeOfferReceived, TypeOfferAccepted, TypeOfferDeclined:
		return true
	}
	return false
}
