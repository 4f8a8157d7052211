package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/project-service/internal/config"
	"github.com/spec-kit/project-service/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventUserRegistered, n.handleWelcome)
	n.dispatcher.Subscribe(events.EventUserCreated, n.handleWelcome)
	for _, t := range []events.EventType{
		events.EventUserUpdated,
		events.EventUserDeleted,
		events.EventProjectCreated,
		events.EventProjectUpdated,
		events.EventProjectDeleted,
		events.EventTaskCreated,
		events.EventTaskUpdated,
		events.EventTaskDeleted,
	} {
		n.dispatcher.Subscribe(t, n.handleAudit)
	}
}

func (n *NotificationService) handleWelcome(ctx context.Context, event events.Event) error {
	n.logger.Info("user account created",
		zap.String("event_type", string(event.Type)),
		zap.Int64("user_id", event.ResourceID),
		zap.Any("actor", event.Actor))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleAudit(ctx context.Context, event events.Event) error {
	n.logger.Info("resource changed",
		zap.String("event_type", string(event.Type)),
		zap.Int64("resource_id", event.ResourceID),
		zap.Any("actor", event.Actor),
		zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.Int64("resource_id", event.ResourceID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.Int64("resource_id", event.ResourceID),
		zap.String("event_type", string(event.Type)))
}
