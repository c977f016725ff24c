package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/fiscalis/dgi-api/apperrors"
	"github.com/fiscalis/dgi-api/logger"
	"github.com/fiscalis/dgi-api/store"
	"github.com/fiscalis/dgi-api/types/business"
)

// NotificationService reads and acknowledges in-portal notifications.
// Notifications are only ever created as side effects of declaration,
// payment and enforcement events.
type NotificationService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewNotificationService creates a new notification service
func NewNotificationService(st *store.Store) *NotificationService {
	return &NotificationService{
		store:  st,
		logger: logger.Log,
	}
}

// List returns notifications, optionally filtered by taxpayer and read
// status, most recent first.
func (s *NotificationService) List(ctx context.Context, taxpayerID int64, status string) ([]business.Notification, error) {
	notifications := []business.Notification{}

	err := s.store.View(func(tx *store.Tx) error {
		for _, n := range tx.Notifications() {
			if taxpayerID != 0 && n.TaxpayerID != taxpayerID {
				continue
			}
			if status != "" && n.Status != status {
				continue
			}
			notifications = append(notifications, n)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sortNotificationsDesc(notifications)
	return notifications, nil
}

// MarkRead flips one notification to LU.
func (s *NotificationService) MarkRead(ctx context.Context, notificationID int64) (*business.Notification, error) {
	var updated business.Notification

	err := s.store.RunInTransaction(func(tx *store.Tx) error {
		ok := tx.UpdateNotification(notificationID, func(n *business.Notification) {
			n.Status = business.NotificationStatusRead
			updated = *n
		})
		if !ok {
			return apperrors.NotFound("Notification introuvable")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// MarkAllRead flips every unread notification to LU, scoped to one taxpayer
// when taxpayerID is non-zero. Returns how many were flipped.
func (s *NotificationService) MarkAllRead(ctx context.Context, taxpayerID int64) (int, error) {
	updated := 0

	err := s.store.RunInTransaction(func(tx *store.Tx) error {
		updated = tx.UpdateNotifications(
			func(n business.Notification) bool {
				if taxpayerID != 0 && n.TaxpayerID != taxpayerID {
					return false
				}
				return n.Status == business.NotificationStatusUnread
			},
			func(n *business.Notification) {
				n.Status = business.NotificationStatusRead
			},
		)
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("Notifications marked read",
		zap.Int64("taxpayer_id", taxpayerID),
		zap.Int("count", updated))

	return updated, nil
}
