package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/library-service/internal/config"
	"github.com/spec-kit/library-service/internal/events"
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
	n.dispatcher.Subscribe(events.EventLoanCreated, n.handleLoanCreated)
	n.dispatcher.Subscribe(events.EventLoanCompleted, n.handleLoanCompleted)
	n.dispatcher.Subscribe(events.EventBookAdded, n.handleBookAdded)
	n.dispatcher.Subscribe(events.EventMemberRegistered, n.handleMemberRegistered)
}

func (n *NotificationService) handleLoanCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("LoanCreated", zap.String("transaction_id", event.SubjectID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleLoanCompleted(ctx context.Context, event events.Event) error {
	n.logger.Info("LoanCompleted", zap.String("transaction_id", event.SubjectID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleBookAdded(ctx context.Context, event events.Event) error {
	n.logger.Info("BookAdded", zap.String("book_id", event.SubjectID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleMemberRegistered(ctx context.Context, event events.Event) error {
	n.logger.Info("MemberRegistered", zap.String("member_id", event.SubjectID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("subject_id", event.SubjectID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("subject_id", event.SubjectID),
		zap.String("event_type", string(event.Type)))
}
