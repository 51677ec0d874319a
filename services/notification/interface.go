package notification

import (
	"context"
	"fmt"

	"swatrental/models"
	"swatrental/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Notifier publishes booking lifecycle events.
type Notifier interface {
	Publish(ctx context.Context, event models.BookingEvent) error
}

// AsynqNotifier enqueues events for the background worker.
type AsynqNotifier struct {
	client *asynq.Client
	logger *zap.Logger
}

func NewAsynqNotifier(client *asynq.Client, logger *zap.Logger) (*AsynqNotifier, error) {
	if client == nil {
		return nil, fmt.Errorf("notification service initialization error: asynq client is nil")
	}
	return &AsynqNotifier{client: client, logger: logger}, nil
}

func (n *AsynqNotifier) Publish(ctx context.Context, event models.BookingEvent) error {
	task, opts, err := tasks.NewBookingEventTask(event)
	if err != nil {
		return fmt.Errorf("Publish: could not build task: %w", err)
	}
	info, err := n.client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		return fmt.Errorf("Publish: failed to enqueue %s for booking %s: %w", event.Type, event.BookingID, err)
	}
	n.logger.Debug("booking event enqueued",
		zap.String("taskID", info.ID),
		zap.String("type", string(event.Type)),
		zap.String("bookingID", event.BookingID),
	)
	return nil
}

// LogNotifier writes events to the log only. Used when no queue is configured.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Publish(_ context.Context, event models.BookingEvent) error {
	title, body := Describe(event)
	n.logger.Info(title, zap.String("body", body), zap.String("bookingID", event.BookingID))
	return nil
}
