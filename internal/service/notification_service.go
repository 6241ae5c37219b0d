package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/launch-watch/internal/events"
)

// EventForwarder accepts events for asynchronous delivery.
type EventForwarder interface {
	Enqueue(event events.Event) bool
}

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	forwarder  EventForwarder
}

// NewNotificationService creates the service. forwarder may be nil when no sink is configured.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, forwarder EventForwarder) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		forwarder:  forwarder,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventLeadAppended, n.handleLeadAppended)
}

func (n *NotificationService) handleLeadAppended(ctx context.Context, event events.Event) error {
	n.logger.Info("LeadAppended",
		zap.String("event_id", event.ID),
		zap.String("sheet", event.Sheet))
	if n.forwarder == nil {
		return nil
	}
	if !n.forwarder.Enqueue(event) {
		n.logger.Warn("event queue full; dropping lead event", zap.String("event_id", event.ID))
	}
	return nil
}
