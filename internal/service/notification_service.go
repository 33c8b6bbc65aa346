package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/shop-reviews/internal/events"
)

// NotificationService logs domain events for moderation and audit trails.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventUserRegistered, n.handleUserRegistered)
	n.dispatcher.Subscribe(events.EventReviewSubmitted, n.handleReviewSubmitted)
	n.dispatcher.Subscribe(events.EventReviewDeleted, n.handleReviewDeleted)
}

func (n *NotificationService) handleUserRegistered(_ context.Context, event events.Event) error {
	n.logger.Info("UserRegistered",
		zap.Int64("user_id", event.Actor.UserID),
		zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleReviewSubmitted(_ context.Context, event events.Event) error {
	n.logger.Info("ReviewSubmitted",
		zap.Int64("user_id", event.Actor.UserID),
		zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleReviewDeleted(_ context.Context, event events.Event) error {
	n.logger.Info("ReviewDeleted",
		zap.Int64("user_id", event.Actor.UserID),
		zap.Any("payload", event.Payload))
	return nil
}
