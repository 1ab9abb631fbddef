package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gbtraders/storefront-api/internal/notifications/domain"
	"github.com/gbtraders/storefront-api/internal/notifications/repository"
	"github.com/gbtraders/storefront-api/internal/observability"
)

type NotificationService struct {
	repo *repository.NotificationRepository
}

func NewNotificationService(repo *repository.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

// NotifyOfferReceived tells the seller a buyer made an offer.
func (s *NotificationService) NotifyOfferReceived(ctx context.Context, ev domain.OfferEvent) (*domain.Notification, error) {
	buyer := orDefault(ev.BuyerName, "A buyer")
	msg := fmt.Sprintf("%s made an offer on %s", buyer, vehicleLabel(ev))
	if ev.OfferAmount != nil {
		msg = fmt.Sprintf("%s offered %s for %s", buyer, formatGBP(*ev.OfferAmount), vehicleLabel(ev))
	}
	return s.create(ctx, ev.SellerID, domain.TypeOfferReceived, "New offer received", msg, ev)
}

// NotifyOfferAccepted tells the buyer the seller accepted.
func (s *NotificationService) NotifyOfferAccepted(ctx context.Context, ev domain.OfferEvent) (*domain.Notification, error) {
	msg := fmt.Sprintf("%s accepted your offer on %s", orDefault(ev.SellerName, "The seller"), vehicleLabel(ev))
	return s.create(ctx, ev.BuyerID, domain.TypeOfferAccepted, "Offer accepted", msg, ev)
}

// NotifyOfferDeclined tells the buyer the seller declined.
func (s *NotificationService) NotifyOfferDeclined(ctx context.Context, ev domain.OfferEvent) (*domain.Notification, error) {
	msg := fmt.Sprintf("%s declined your offer on %s", orDefault(ev.SellerName, "The seller"), vehicleLabel(ev))
	return s.create(ctx, ev.BuyerID, domain.TypeOfferDeclined, "Offer declined", msg, ev)
}

// Notify dispatches on the notification type.
func (s *NotificationService) Notify(ctx context.Context, notificationType string, ev domain.OfferEvent) (*domain.Notification, error) {
	switch notificationType {
	case domain.TypeOfferReceived:
		return s.NotifyOfferReceived(ctx, ev)
	case domain.TypeOfferAccepted:
		return s.NotifyOfferAccepted(ctx, ev)
	case domain.TypeOfferDeclined:
		return s.NotifyOfferDeclined(ctx, ev)
	}
	return nil, fmt.Errorf("invalid notification type %q", notificationType)
}

func (s *NotificationService) create(ctx context.Context, recipient, notificationType, title, message string, ev domain.OfferEvent) (*domain.Notification, error) {
	if recipient == "" {
		return nil, fmt.Errorf("%s notification has no recipient", notificationType)
	}

	n := &domain.Notification{
		UserID:  recipient,
		Type:    notificationType,
		Title:   title,
		Message: message,
		Data: domain.Data{
			OfferID:      ev.OfferID,
			VehicleID:    ev.VehicleID,
			VehicleTitle: ev.VehicleTitle,
			VehicleImage: ev.VehicleImage,
			OfferAmount:  ev.OfferAmount,
			BuyerName:    ev.BuyerName,
			SellerName:   ev.SellerName,
		},
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}

	logger := observability.Op(ctx, "notify")
	logger.Debug().Str("type", notificationType).Str("offer_id", ev.OfferID).Msg("notification created")
	return n, nil
}

func vehicleLabel(ev domain.OfferEvent) string {
	if ev.VehicleTitle != "" {
		return ev.VehicleTitle
	}
	return "your vehicle"
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// formatGBP renders whole pounds with thousands separators, e.g. £12,500.
func formatGBP(amount float64) string {
	digits := strconv.FormatInt(int64(math.Round(math.Abs(amount))), 10)

	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}

	if amount < 0 {
		return "-£" + b.String()
	}
	return "£" + b.String()
}
