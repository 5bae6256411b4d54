package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/pokewiki/internal/config"
	"github.com/spec-kit/pokewiki/internal/events"
)

const notificationQueueSize = 64

// NotificationService emits notifications for account lifecycle events.
// Events are queued so the request goroutine never waits on delivery.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
	queue      chan events.Event
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
		queue:      make(chan events.Event, notificationQueueSize),
	}
}

// RegisterHandlers subscribes to account events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventAccountRegistered, n.enqueue)
	n.dispatcher.Subscribe(events.EventPasswordChanged, n.enqueue)
	n.dispatcher.Subscribe(events.EventProfileUpdated, n.enqueue)
}

// Run drains the queue until ctx is canceled.
func (n *NotificationService) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-n.queue:
			n.deliver(ctx, event)
		}
	}
}

func (n *NotificationService) enqueue(_ context.Context, event events.Event) {
	select {
	case n.queue <- event:
	default:
		n.logger.Warn("notification queue full, dropping event",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)))
	}
}

func (n *NotificationService) deliver(ctx context.Context, event events.Event) {
	switch event.Type {
	case events.EventAccountRegistered:
		n.logger.Info("AccountRegistered", zap.String("user_id", event.UserID))
		n.sendEmailNotificationStub(ctx, event)
	case events.EventPasswordChanged:
		n.logger.Info("PasswordChanged", zap.String("user_id", event.UserID))
		n.sendEmailNotificationStub(ctx, event)
	case events.EventProfileUpdated:
		n.logger.Info("ProfileUpdated", zap.String("user_id", event.UserID))
		n.sendWebhookNotificationStub(ctx, event)
	}
}

func (n *NotificationService) sendEmailNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("user_id", event.UserID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("user_id", event.UserID),
		zap.String("event_type", string(event.Type)))
}
